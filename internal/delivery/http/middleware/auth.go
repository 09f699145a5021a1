package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/utils"
)

// BearerAuth - проверка общего токена: заголовок Authorization должен
// совпадать с "bearer <token>" побайтно (с учётом регистра)
func BearerAuth(token string) fiber.Handler {
	expected := []byte("bearer " + token)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if subtle.ConstantTimeCompare([]byte(header), expected) != 1 {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}
