package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/utils"
)

const adminSubjectKey = "admin_subject"

// AdminClaims - claims токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin проверяет Bearer JWT (HS256) и роль администратора.
// С пустым секретом отклоняет все запросы: подпись пустым ключом подделывается.
func RequireAdmin(secret, role string, logger *zap.Logger) fiber.Handler {
	if secret == "" {
		logger.Error("Admin JWT secret is empty, admin routes are disabled")
		return func(c *fiber.Ctx) error {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
	}

	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims := &AdminClaims{}
		parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !parsed.Valid {
			logger.Debug("Rejected admin token", zap.String("path", c.Path()), zap.Error(err))
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		if claims.Role != role {
			return utils.SendError(c, errors.ErrForbidden)
		}

		c.Locals(adminSubjectKey, claims.Subject)
		return c.Next()
	}
}

// AdminSubject возвращает sub из токена администратора
func AdminSubject(c *fiber.Ctx) string {
	sub, _ := c.Locals(adminSubjectKey).(string)
	return sub
}
