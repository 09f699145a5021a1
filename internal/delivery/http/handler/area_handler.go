package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/utils"
	"github.com/cities-geo-service/internal/pkg/validator"
	"github.com/cities-geo-service/internal/usecase"
	"github.com/cities-geo-service/internal/usecase/dto"
)

const resultPath = "/area-result/"

// AreaHandler - асинхронный поиск городов в радиусе
type AreaHandler struct {
	runner *usecase.JobRunner
	logger *zap.Logger
}

// NewAreaHandler - создание нового AreaHandler
func NewAreaHandler(runner *usecase.JobRunner, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		runner: runner,
		logger: logger,
	}
}

// Submit godoc
// @Summary Запуск поиска в радиусе
// @Description Регистрирует задачу и сразу возвращает URL результата. Результат готов через фиксированную задержку (5 секунд по умолчанию).
// @Tags Area
// @Produce json
// @Param from query string true "GUID исходного города"
// @Param distance query number true "Радиус в километрах"
// @Success 202 {object} dto.AreaResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /area [get]
func (h *AreaHandler) Submit(c *fiber.Ctx) error {
	var req dto.AreaRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(validator.Fields(err)))
	}

	radius, err := strconv.ParseFloat(req.Distance, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}

	jobID, err := h.runner.Submit(c.UserContext(), req.From, radius)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusAccepted, dto.AreaResponse{
		ResultsURL: c.BaseURL() + resultPath + jobID,
	})
}

// Result godoc
// @Summary Результат поиска в радиусе
// @Description Не блокируется: 202 пока задача выполняется, 404 для неизвестного ID
// @Tags Area
// @Produce json
// @Param jobID path string true "ID задачи"
// @Success 200 {object} dto.CitiesResponse
// @Success 202 {object} utils.ErrorResponse "Результат ещё не готов"
// @Failure 404 {object} utils.ErrorResponse
// @Router /area-result/{jobID} [get]
func (h *AreaHandler) Result(c *fiber.Ctx) error {
	job, err := h.runner.Result(c.UserContext(), c.Params("jobID"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, dto.CitiesResponse{Cities: job.Result})
}
