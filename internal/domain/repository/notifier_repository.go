package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// LeadNotifier доставляет уведомление о новой заявке сотрудникам агентства
type LeadNotifier interface {
	NotifyLead(ctx context.Context, event domain.LeadCreatedEvent) error
}
