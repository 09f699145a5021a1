package domain

import (
	"encoding/json"
	"fmt"
)

// Coordinate - точка в градусах
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// City - запись каталога. Поля, которые сервис не интерпретирует (name, address и т.д.),
// хранятся в Attributes и возвращаются клиенту без изменений.
type City struct {
	GUID       string                     `json:"guid" db:"guid" validate:"required"`
	Latitude   float64                    `json:"latitude" db:"latitude" validate:"min=-90,max=90"`
	Longitude  float64                    `json:"longitude" db:"longitude" validate:"min=-180,max=180"`
	Tags       []string                   `json:"tags" db:"tags"`
	IsActive   bool                       `json:"isActive" db:"is_active"`
	Attributes map[string]json.RawMessage `json:"-" db:"-"`
}

// cityFields - ключи, которые City разбирает сам
var cityFields = []string{"guid", "latitude", "longitude", "tags", "isActive"}

type cityAlias City

func (c City) Coordinate() Coordinate {
	return Coordinate{Lat: c.Latitude, Lon: c.Longitude}
}

func (c City) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Name возвращает отображаемое имя, если оно есть в атрибутах
func (c City) Name() string {
	raw, ok := c.Attributes["name"]
	if !ok {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	return name
}

func (c *City) UnmarshalJSON(data []byte) error {
	var known cityAlias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range cityFields {
		delete(all, key)
	}
	if len(all) > 0 {
		known.Attributes = all
	}

	*c = City(known)
	return nil
}

func (c City) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Attributes)+len(cityFields))
	for key, raw := range c.Attributes {
		out[key] = raw
	}

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	out["guid"] = c.GUID
	out["latitude"] = c.Latitude
	out["longitude"] = c.Longitude
	out["tags"] = tags
	out["isActive"] = c.IsActive

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal city %s: %w", c.GUID, err)
	}
	return data, nil
}
