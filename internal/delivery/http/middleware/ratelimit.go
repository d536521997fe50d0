package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/ratelimit"
	"github.com/tour-microservice/internal/pkg/utils"
)

// RateLimit ограничивает частоту запросов с одного IP
func RateLimit(limiter *ratelimit.KeyedLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return utils.SendError(c, errors.ErrRateLimited)
		}
		return c.Next()
	}
}
