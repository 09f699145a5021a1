package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/utils"
)

// RateLimit - общий для всех клиентов token bucket
func RateLimit(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return utils.SendError(c, errors.ErrRateLimited)
		}
		return c.Next()
	}
}
