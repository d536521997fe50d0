package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/delivery/http/middleware"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/usecase/dto"
)

// LeadHandler - контактная форма и список заявок
type LeadHandler struct {
	uc     LeadService
	logger *zap.Logger
}

// NewLeadHandler - создание нового LeadHandler
func NewLeadHandler(uc LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		uc:     uc,
		logger: logger,
	}
}

// Contact godoc
// @Summary Отправка контактной формы
// @Description Заявка сохраняется, агентство получает письмо на языке запроса
// @Tags Contact
// @Accept json
// @Produce json
// @Param lang query string false "Язык (es, en)"
// @Param Accept-Language header string false "Язык, если lang не передан"
// @Param request body dto.ContactRequest true "Заявка"
// @Success 201 {object} utils.SuccessResponse{data=domain.Lead}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /api/v1/contact [post]
func (h *LeadHandler) Contact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	lead, err := h.uc.Submit(c.Context(), req, middleware.LocaleFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, lead)
}

// ListLeads godoc
// @Summary Заявки (админка)
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Lead}
// @Router /api/v1/admin/leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.uc.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Items, pageMeta(result.Total, result.Limit, result.Offset))
}
