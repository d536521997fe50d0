package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/usecase/dto"
)

// ReferenceHandler - CRUD справочника (aerolineas, destinos, regalos, terminos)
type ReferenceHandler[T domain.Reference] struct {
	uc     ReferenceService[T]
	entity string
	logger *zap.Logger
}

// NewReferenceHandler - создание обработчика справочника; entity попадает в логи
func NewReferenceHandler[T domain.Reference](uc ReferenceService[T], entity string, logger *zap.Logger) *ReferenceHandler[T] {
	return &ReferenceHandler[T]{
		uc:     uc,
		entity: entity,
		logger: logger.With(zap.String("entity", entity)),
	}
}

// List godoc
// @Summary Список записей справочника
// @Description Фильтр q без учёта регистра по названию
// @Tags References
// @Produce json
// @Param q query string false "Фильтр"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Destination}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/destinations [get]
// @Router /api/v1/admin/destinations [get]
// @Router /api/v1/admin/airlines [get]
// @Router /api/v1/admin/gifts [get]
// @Router /api/v1/admin/terms [get]
func (h *ReferenceHandler[T]) List(c *fiber.Ctx) error {
	var req dto.ReferenceListRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	items, err := h.uc.List(c.Context(), req.Query)
	if err != nil {
		return utils.SendError(c, err)
	}
	if items == nil {
		items = []T{}
	}

	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// Get godoc
// @Summary Запись справочника
// @Tags References
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/destinations/{id} [get]
// @Router /api/v1/admin/airlines/{id} [get]
// @Router /api/v1/admin/gifts/{id} [get]
// @Router /api/v1/admin/terms/{id} [get]
func (h *ReferenceHandler[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, item, nil)
}

// Create godoc
// @Summary Создание записи справочника
// @Tags References
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/destinations [post]
// @Router /api/v1/admin/airlines [post]
// @Router /api/v1/admin/gifts [post]
// @Router /api/v1/admin/terms [post]
func (h *ReferenceHandler[T]) Create(c *fiber.Ctx) error {
	var entity T
	if err := bindBody(c, &entity); err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.uc.Create(c.Context(), &entity)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Reference created", zap.Int64("id", id))
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// Update godoc
// @Summary Обновление записи справочника
// @Tags References
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/destinations/{id} [put]
// @Router /api/v1/admin/airlines/{id} [put]
// @Router /api/v1/admin/gifts/{id} [put]
// @Router /api/v1/admin/terms/{id} [put]
func (h *ReferenceHandler[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var entity T
	if err := bindBody(c, &entity); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.Update(c.Context(), id, &entity); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}

// Delete godoc
// @Summary Удаление записи справочника
// @Description Запись, на которую ссылается хотя бы один тур, не удаляется (REFERENCE_IN_USE)
// @Tags References
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/admin/destinations/{id} [delete]
// @Router /api/v1/admin/airlines/{id} [delete]
// @Router /api/v1/admin/gifts/{id} [delete]
// @Router /api/v1/admin/terms/{id} [delete]
func (h *ReferenceHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Reference deleted", zap.Int64("id", id))
	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}
