package dto

import "github.com/cities-geo-service/internal/domain"

// CitiesResponse - список городов (фильтр по тегу, результат поиска по радиусу)
type CitiesResponse struct {
	Cities []domain.City `json:"cities"`
}

// DistanceResponse - расстояние между городами в километрах
type DistanceResponse struct {
	From     domain.City `json:"from"`
	To       domain.City `json:"to"`
	Unit     string      `json:"unit"`
	Distance float64     `json:"distance"`
}

// AreaResponse - ссылка для опроса результата поиска
type AreaResponse struct {
	ResultsURL string `json:"resultsUrl"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status string          `json:"status"`
	Cities int             `json:"cities"`
	Jobs   domain.JobStats `json:"jobs"`
}
