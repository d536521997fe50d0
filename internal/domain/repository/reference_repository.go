package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// ReferenceRepository - CRUD справочной таблицы (авиакомпании, направления, подарки, условия)
type ReferenceRepository[T domain.Reference] interface {
	// List возвращает все строки, упорядоченные по названию
	List(ctx context.Context) ([]T, error)

	GetByID(ctx context.Context, id int64) (*T, error)

	// Create вставляет строку; id назначает база
	Create(ctx context.Context, entity *T) (int64, error)

	Update(ctx context.Context, id int64, entity *T) error

	Delete(ctx context.Context, id int64) error

	// IsReferenced проверяет ссылки на запись из туров
	IsReferenced(ctx context.Context, id int64) (bool, error)
}
