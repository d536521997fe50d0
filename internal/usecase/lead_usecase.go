package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase/dto"
)

// LeadUseCase - приём заявок с контактной формы
type LeadUseCase struct {
	leadRepo   repository.LeadRepository
	tourRepo   repository.TourReadRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewLeadUseCase - создание нового LeadUseCase
func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	tourRepo repository.TourReadRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *LeadUseCase {
	return &LeadUseCase{
		leadRepo:   leadRepo,
		tourRepo:   tourRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// Submit сохраняет заявку и публикует событие для воркера уведомлений.
// Ошибка публикации не отменяет заявку: она уже сохранена.
func (uc *LeadUseCase) Submit(ctx context.Context, req dto.ContactRequest, locale domain.Locale) (*domain.Lead, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	var tourTitle *string
	if req.TourID != nil {
		tour, err := uc.tourRepo.GetByID(ctx, *req.TourID)
		if stderrors.Is(err, errors.ErrTourNotFound) {
			return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
				"fields": map[string]interface{}{"tour_id": "exists"},
			})
		}
		if err != nil {
			return nil, err
		}
		tourTitle = &tour.Title
	}

	lead := &domain.Lead{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Message: strings.TrimSpace(req.Message),
		TourID:  req.TourID,
		Locale:  locale,
	}

	if _, err := uc.leadRepo.Create(ctx, lead); err != nil {
		uc.logger.Error("Failed to store lead", zap.Error(err))
		return nil, err
	}

	event := domain.NewLeadCreatedEvent(lead, tourTitle)
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamLeadCreated, event); err != nil {
		uc.logger.Warn("Failed to publish lead event",
			zap.Int64("lead_id", lead.ID),
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
	}

	uc.logger.Info("Lead received",
		zap.Int64("lead_id", lead.ID),
		zap.String("locale", string(locale)))
	return lead, nil
}

func (uc *LeadUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[domain.Lead], error) {
	limit := page.EffectiveLimit()
	leads, total, err := uc.leadRepo.List(ctx, limit, page.Offset)
	if err != nil {
		uc.logger.Error("Failed to list leads", zap.Error(err))
		return nil, err
	}

	resp := dto.NewListResponse(leads, total, limit, page.Offset)
	return &resp, nil
}
