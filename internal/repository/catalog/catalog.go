package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/geo"
)

const (
	// pointSize - сторона прямоугольника, которым город представлен в R-дереве
	pointSize = 1e-6

	// boxMarginKm расширяет область поиска, чтобы округлённое расстояние
	// на границе радиуса не терялось на префильтре
	boxMarginKm = 1.0

	treeMinChildren = 25
	treeMaxChildren = 50
)

// Catalog - неизменяемый каталог городов. После New только чтение, блокировки не нужны.
type Catalog struct {
	cities []domain.City
	index  map[string]int
	tree   *rtreego.Rtree
	raw    []byte
}

var _ repository.CityCatalog = (*Catalog)(nil)

type cityEntry struct {
	rect rtreego.Rect
	pos  int
}

func (e *cityEntry) Bounds() rtreego.Rect {
	return e.rect
}

// New строит каталог; порядок городов сохраняется, повтор guid - ошибка
func New(cities []domain.City) (*Catalog, error) {
	c := &Catalog{
		cities: make([]domain.City, len(cities)),
		index:  make(map[string]int, len(cities)),
		tree:   rtreego.NewTree(2, treeMinChildren, treeMaxChildren),
	}
	copy(c.cities, cities)

	for i, city := range c.cities {
		if _, dup := c.index[city.GUID]; dup {
			return nil, fmt.Errorf("duplicate city guid %q at position %d", city.GUID, i)
		}
		c.index[city.GUID] = i

		if !geo.ValidCoordinate(city.Coordinate()) {
			return nil, fmt.Errorf("city %q: coordinates out of range (%v, %v)", city.GUID, city.Latitude, city.Longitude)
		}

		rect, err := rtreego.NewRect(rtreego.Point{city.Longitude, city.Latitude}, []float64{pointSize, pointSize})
		if err != nil {
			return nil, fmt.Errorf("index city %q: %w", city.GUID, err)
		}
		c.tree.Insert(&cityEntry{rect: rect, pos: i})
	}

	return c, nil
}

func (c *Catalog) FindByID(id string) (domain.City, bool) {
	pos, ok := c.index[id]
	if !ok {
		return domain.City{}, false
	}
	return c.cities[pos], true
}

func (c *Catalog) Filter(pred func(domain.City) bool) []domain.City {
	result := make([]domain.City, 0)
	for _, city := range c.cities {
		if pred(city) {
			result = append(result, city)
		}
	}
	return result
}

func (c *Catalog) All() []domain.City {
	result := make([]domain.City, len(c.cities))
	copy(result, c.cities)
	return result
}

// Raw - исходный JSON-документ каталога, nil если источник его не хранит
// (например, PostgreSQL). Срез нельзя изменять.
func (c *Catalog) Raw() []byte {
	return c.raw
}

func (c *Catalog) Len() int {
	return len(c.cities)
}

// Nearby отбирает кандидатов по ограничивающему прямоугольнику в R-дереве.
// Если прямоугольник пересекает полюс или антимеридиан, возвращается весь каталог.
func (c *Catalog) Nearby(origin domain.Coordinate, radiusKm float64) []domain.City {
	box, ok := searchBox(origin, radiusKm)
	if !ok {
		return c.All()
	}

	hits := c.tree.SearchIntersect(box)
	positions := make([]int, 0, len(hits))
	for _, hit := range hits {
		positions = append(positions, hit.(*cityEntry).pos)
	}
	sort.Ints(positions)

	result := make([]domain.City, 0, len(positions))
	for _, pos := range positions {
		result = append(result, c.cities[pos])
	}
	return result
}

// searchBox - прямоугольник lon/lat, содержащий круг радиуса radiusKm (+ запас).
// Максимальное отклонение по долготе для круга с угловым радиусом d вокруг широты phi:
// asin(sin d / cos phi), пока круг не содержит полюс.
func searchBox(origin domain.Coordinate, radiusKm float64) (rtreego.Rect, bool) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return rtreego.Rect{}, false
	}

	angular := (radiusKm + boxMarginKm) / geo.EarthRadiusKm
	if angular >= math.Pi/2 {
		return rtreego.Rect{}, false
	}

	latDelta := geo.RadiansToDegrees(angular)
	minLat, maxLat := origin.Lat-latDelta, origin.Lat+latDelta
	if minLat <= -90 || maxLat >= 90 {
		return rtreego.Rect{}, false
	}

	spread := math.Sin(angular) / math.Cos(geo.DegreesToRadians(origin.Lat))
	if spread >= 1 {
		return rtreego.Rect{}, false
	}
	lonDelta := geo.RadiansToDegrees(math.Asin(spread))
	minLon, maxLon := origin.Lon-lonDelta, origin.Lon+lonDelta
	if minLon < -180 || maxLon > 180 {
		return rtreego.Rect{}, false
	}

	rect, err := rtreego.NewRect(rtreego.Point{minLon, minLat}, []float64{2 * lonDelta, 2 * latDelta})
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
