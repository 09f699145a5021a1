package dto

// CitiesByTagRequest - фильтр каталога по тегу и флагу активности
type CitiesByTagRequest struct {
	Tag      string `query:"tag"`
	IsActive string `query:"isActive"`
}

// Active - флаг активности; true только для литерала "true"
func (r CitiesByTagRequest) Active() bool {
	return r.IsActive == "true"
}

// DistanceRequest - расстояние между двумя городами каталога
type DistanceRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// AreaRequest - запуск асинхронного поиска городов в радиусе
type AreaRequest struct {
	From     string `query:"from" validate:"required"`
	Distance string `query:"distance" validate:"required,numeric"`
}
