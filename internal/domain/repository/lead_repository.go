package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// LeadRepository - заявки из контактной формы
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lead, int, error)
}
