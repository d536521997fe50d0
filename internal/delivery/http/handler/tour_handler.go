package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/usecase/dto"
)

// TourHandler - витрина туров и их редактирование в админке
type TourHandler struct {
	query  TourQueryService
	writer TourWriteService
	logger *zap.Logger
}

// NewTourHandler - создание нового TourHandler
func NewTourHandler(query TourQueryService, writer TourWriteService, logger *zap.Logger) *TourHandler {
	return &TourHandler{
		query:  query,
		writer: writer,
		logger: logger,
	}
}

// ListTours godoc
// @Summary Список туров
// @Description Опубликованные и не истёкшие туры с минимальной ценой (precio_desde) и ближайшим выездом
// @Tags Tours
// @Produce json
// @Param q query string false "Поиск по названию и описанию"
// @Param destino_id query int false "Фильтр по направлению"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.TourSummary}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/tours [get]
func (h *TourHandler) ListTours(c *fiber.Ctx) error {
	return h.list(c, false)
}

// AdminListTours godoc
// @Summary Все туры (админка)
// @Description Включая неопубликованные и истёкшие
// @Tags Admin Tours
// @Produce json
// @Security BearerAuth
// @Param q query string false "Поиск по названию и описанию"
// @Param destino_id query int false "Фильтр по направлению"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.TourSummary}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/tours [get]
func (h *TourHandler) AdminListTours(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *TourHandler) list(c *fiber.Ctx, includeExpired bool) error {
	var req dto.TourListRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	req.IncludeExpired = includeExpired

	result, err := h.query.ListTours(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Items, pageMeta(result.Total, result.Limit, result.Offset))
}

// GetTour godoc
// @Summary Карточка тура
// @Tags Tours
// @Produce json
// @Param slug path string true "Slug тура"
// @Success 200 {object} utils.SuccessResponse{data=dto.TourDetail}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/tours/{slug} [get]
func (h *TourHandler) GetTour(c *fiber.Ctx) error {
	detail, err := h.query.GetTourBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

// AdminGetTour godoc
// @Summary Тур по id (админка)
// @Tags Admin Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID тура"
// @Success 200 {object} utils.SuccessResponse{data=dto.TourDetail}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/tours/{id} [get]
func (h *TourHandler) AdminGetTour(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	detail, err := h.query.GetTourByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

// CreateTour godoc
// @Summary Создание тура
// @Description Сохраняет тур со всеми коллекциями в одной транзакции
// @Tags Admin Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TourRequest true "Агрегат тура"
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/tours [post]
func (h *TourHandler) CreateTour(c *fiber.Ctx) error {
	var req dto.TourRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.writer.Create(c.Context(), req.ToAggregate())
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Tour created", zap.Int64("tour_id", id))
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// UpdateTour godoc
// @Summary Обновление тура
// @Description Коллекции заменяются целиком; пустой список удаляет все строки
// @Tags Admin Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID тура"
// @Param request body dto.TourRequest true "Агрегат тура"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/tours/{id} [put]
func (h *TourHandler) UpdateTour(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.TourRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	id, err = h.writer.Update(c.Context(), id, req.ToAggregate())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}

// DeleteTour godoc
// @Summary Удаление тура
// @Tags Admin Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID тура"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/tours/{id} [delete]
func (h *TourHandler) DeleteTour(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.writer.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Tour deleted", zap.Int64("tour_id", id))
	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}
