package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/utils"
	"github.com/cities-geo-service/internal/usecase"
	"github.com/cities-geo-service/internal/usecase/dto"
)

const exportFilename = "all-cities.json"

// CityHandler - синхронные запросы к каталогу
type CityHandler struct {
	cityUC *usecase.CityUseCase
	logger *zap.Logger
}

// NewCityHandler - создание нового CityHandler
func NewCityHandler(cityUC *usecase.CityUseCase, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityUC: cityUC,
		logger: logger,
	}
}

// CitiesByTag godoc
// @Summary Города по тегу и статусу
// @Description Возвращает города, у которых есть тег и флаг isActive совпадает. isActive считается true только для значения "true".
// @Tags Cities
// @Produce json
// @Security BearerToken
// @Param tag query string true "Тег"
// @Param isActive query string false "Флаг активности" Enums(true, false)
// @Success 200 {object} dto.CitiesResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /cities-by-tag [get]
func (h *CityHandler) CitiesByTag(c *fiber.Ctx) error {
	var req dto.CitiesByTagRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	return utils.SendJSON(c, fiber.StatusOK, h.cityUC.FilterByTag(req))
}

// Distance godoc
// @Summary Расстояние между городами
// @Description Расстояние по большому кругу (haversine, R = 6371 км), округлённое до сотых
// @Tags Cities
// @Produce json
// @Param from query string true "GUID первого города"
// @Param to query string true "GUID второго города"
// @Success 200 {object} dto.DistanceResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /distance [get]
func (h *CityHandler) Distance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.cityUC.Distance(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, result)
}

// AllCities godoc
// @Summary Выгрузка каталога
// @Description Весь каталог одним JSON файлом
// @Tags Cities
// @Produce json
// @Success 200 {file} file "all-cities.json"
// @Failure 500 {object} utils.ErrorResponse
// @Router /all-cities [get]
func (h *CityHandler) AllCities(c *fiber.Ctx) error {
	data, err := h.cityUC.Export()
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+exportFilename)
	return c.Status(fiber.StatusOK).Send(data)
}
