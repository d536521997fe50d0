package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/validator"
)

// ReferenceUseCase - управление справочником (авиакомпании, направления, подарки, условия)
type ReferenceUseCase[T domain.Reference] struct {
	repo      repository.ReferenceRepository[T]
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	entity    string
}

// NewReferenceUseCase - создание нового ReferenceUseCase; entity попадает в логи и ошибки
func NewReferenceUseCase[T domain.Reference](
	repo repository.ReferenceRepository[T],
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	entity string,
) *ReferenceUseCase[T] {
	return &ReferenceUseCase[T]{
		repo:      repo,
		cacheRepo: cacheRepo,
		logger:    logger.With(zap.String("entity", entity)),
		entity:    entity,
	}
}

// List возвращает записи по порядку названия; query - подстрока без учёта регистра
func (uc *ReferenceUseCase[T]) List(ctx context.Context, query string) ([]T, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list references", zap.Error(err))
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nonNil(items), nil
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func matches(item domain.Reference, query string) bool {
	for _, field := range item.SearchText() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (uc *ReferenceUseCase[T]) Get(ctx context.Context, id int64) (*T, error) {
	return uc.repo.GetByID(ctx, id)
}

// Create сохраняет запись; id назначает база
func (uc *ReferenceUseCase[T]) Create(ctx context.Context, entity *T) (int64, error) {
	if err := validator.Validate(entity); err != nil {
		return 0, err
	}

	id, err := uc.repo.Create(ctx, entity)
	if err != nil {
		uc.logger.Error("Failed to create reference", zap.Error(err))
		return 0, err
	}

	uc.logger.Info("Reference created", zap.Int64("id", id))
	return id, nil
}

// Update меняет запись и сбрасывает кеш туров, в карточках которых видны названия
func (uc *ReferenceUseCase[T]) Update(ctx context.Context, id int64, entity *T) error {
	if err := validator.Validate(entity); err != nil {
		return err
	}

	if err := uc.repo.Update(ctx, id, entity); err != nil {
		uc.logger.Error("Failed to update reference", zap.Int64("id", id), zap.Error(err))
		return err
	}

	uc.invalidateTours(ctx)
	return nil
}

// Delete удаляет запись, если на неё не ссылается ни один тур
func (uc *ReferenceUseCase[T]) Delete(ctx context.Context, id int64) error {
	referenced, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to check references", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if referenced {
		uc.logger.Info("Delete rejected: record in use", zap.Int64("id", id))
		return errors.ErrReferenceInUse.WithDetails(map[string]interface{}{
			"entity": uc.entity,
			"id":     id,
		})
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete reference", zap.Int64("id", id), zap.Error(err))
		return err
	}

	uc.invalidateTours(ctx)
	uc.logger.Info("Reference deleted", zap.Int64("id", id))
	return nil
}

func (uc *ReferenceUseCase[T]) invalidateTours(ctx context.Context) {
	if err := uc.cacheRepo.DeleteByPrefix(ctx, tourCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate tour cache", zap.Error(err))
	}
}
