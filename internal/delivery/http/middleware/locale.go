package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tour-microservice/internal/domain"
)

const localeKey = "locale"

// Locale определяет язык запроса: ?lang имеет приоритет над Accept-Language
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("lang")
		if raw == "" {
			raw = c.Get(fiber.HeaderAcceptLanguage)
		}
		c.Locals(localeKey, domain.ParseLocale(raw))
		return c.Next()
	}
}

// LocaleFrom возвращает язык запроса, по умолчанию испанский
func LocaleFrom(c *fiber.Ctx) domain.Locale {
	if l, ok := c.Locals(localeKey).(domain.Locale); ok {
		return l
	}
	return domain.LocaleES
}
