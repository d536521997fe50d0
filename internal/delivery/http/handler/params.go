package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
)

// parseID читает положительный числовой параметр пути
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID.WithDetails(map[string]interface{}{
			"param": name,
			"value": c.Params(name),
		})
	}
	return id, nil
}

// bindBody разбирает JSON-тело и проверяет теги validate
func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body").Wrap(err)
	}
	return validator.Validate(dst)
}

// bindQuery разбирает query-параметры и проверяет теги validate
func bindQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid query parameters").Wrap(err)
	}
	return validator.Validate(dst)
}

func pageMeta(total, limit, offset int) *utils.Meta {
	return &utils.Meta{Total: total, Limit: limit, Offset: offset}
}
