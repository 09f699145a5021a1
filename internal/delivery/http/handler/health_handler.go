package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cities-geo-service/internal/pkg/utils"
	"github.com/cities-geo-service/internal/usecase"
	"github.com/cities-geo-service/internal/usecase/dto"
)

type HealthHandler struct {
	cityUC *usecase.CityUseCase
	runner *usecase.JobRunner
}

func NewHealthHandler(cityUC *usecase.CityUseCase, runner *usecase.JobRunner) *HealthHandler {
	return &HealthHandler{
		cityUC: cityUC,
		runner: runner,
	}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, dto.HealthResponse{
		Status: "healthy",
		Cities: h.cityUC.Count(),
		Jobs:   h.runner.Stats(c.UserContext()),
	})
}
