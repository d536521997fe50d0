package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/reconcile"
)

// maxSlugAttempts - сколько суффиксов -2, -3... пробуем до отказа
const maxSlugAttempts = 100

// TourSynchronizer сохраняет агрегат тура целиком в одной транзакции
type TourSynchronizer struct {
	txManager repository.TourTxManager
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewTourSynchronizer - создание нового TourSynchronizer
func NewTourSynchronizer(
	txManager repository.TourTxManager,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *TourSynchronizer {
	return &TourSynchronizer{
		txManager: txManager,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// Create вставляет тур и все дочерние коллекции. Повторный вызов с теми же
// данными создаёт второй тур со slug вида "<slug>-2".
func (s *TourSynchronizer) Create(ctx context.Context, agg domain.TourAggregate) (int64, error) {
	inheritDepartureDuration(&agg)
	if err := validateAggregate(&agg); err != nil {
		return 0, err
	}

	var tourID int64
	err := s.txManager.WithinTx(ctx, func(store repository.TourStore) error {
		uniq, err := uniqueSlug(ctx, store, baseSlug(agg.Tour), 0)
		if err != nil {
			return stepError("slug", err)
		}
		agg.Tour.Slug = uniq

		tourID, err = store.InsertTour(ctx, &agg.Tour)
		if err != nil {
			return stepError("insert_tour", err)
		}
		agg.Stamp(tourID)

		if len(agg.Destinations) > 0 {
			if err := store.InsertDestinations(ctx, agg.Destinations); err != nil {
				return stepError("insert_destinations", err)
			}
		}
		if len(agg.Departures) > 0 {
			if err := store.InsertDepartures(ctx, agg.Departures); err != nil {
				return stepError("insert_departures", err)
			}
		}
		if len(agg.Prices) > 0 {
			if err := store.InsertPrices(ctx, agg.Prices); err != nil {
				return stepError("insert_prices", err)
			}
		}
		if err := store.UpsertComponents(ctx, agg.Components); err != nil {
			return stepError("upsert_components", err)
		}
		if len(agg.Gifts) > 0 {
			if err := store.InsertGifts(ctx, agg.Gifts); err != nil {
				return stepError("insert_gifts", err)
			}
		}
		if len(agg.Photos) > 0 {
			if err := store.InsertPhotos(ctx, agg.Photos); err != nil {
				return stepError("insert_photos", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create tour", zap.String("title", agg.Tour.Title), zap.Error(err))
		return 0, err
	}

	s.invalidate(ctx)

	s.logger.Info("Tour created",
		zap.Int64("tour_id", tourID),
		zap.String("slug", agg.Tour.Slug),
		zap.Int("destinations", len(agg.Destinations)),
		zap.Int("prices", len(agg.Prices)),
	)
	return tourID, nil
}

// Update заменяет состояние тура: дочерние строки сверяются по стабильному ключу,
// неизменённые строки не переписываются, отсутствующие во входе удаляются.
func (s *TourSynchronizer) Update(ctx context.Context, tourID int64, agg domain.TourAggregate) (int64, error) {
	inheritDepartureDuration(&agg)
	if err := validateAggregate(&agg); err != nil {
		return 0, err
	}

	var oldSlug string
	err := s.txManager.WithinTx(ctx, func(store repository.TourStore) error {
		current, err := store.GetTourForUpdate(ctx, tourID)
		if err != nil {
			return stepError("load_tour", err)
		}
		oldSlug = current.Slug

		base := baseSlug(agg.Tour)
		if agg.Tour.Slug == "" && current.Title == agg.Tour.Title {
			base = current.Slug
		}
		uniq, err := uniqueSlug(ctx, store, base, tourID)
		if err != nil {
			return stepError("slug", err)
		}
		agg.Tour.Slug = uniq

		agg.Stamp(tourID)
		if err := store.UpdateTour(ctx, &agg.Tour); err != nil {
			return stepError("update_tour", err)
		}

		if err := syncDestinations(ctx, store, tourID, agg.Destinations); err != nil {
			return stepError("sync_destinations", err)
		}
		if err := syncDepartures(ctx, store, tourID, agg.Departures); err != nil {
			return stepError("sync_departures", err)
		}
		if err := syncPrices(ctx, store, tourID, agg.Prices); err != nil {
			return stepError("sync_prices", err)
		}
		if err := store.UpsertComponents(ctx, agg.Components); err != nil {
			return stepError("upsert_components", err)
		}
		if err := syncGifts(ctx, store, tourID, agg.Gifts); err != nil {
			return stepError("sync_gifts", err)
		}
		if err := syncPhotos(ctx, store, tourID, agg.Photos); err != nil {
			return stepError("sync_photos", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update tour", zap.Int64("tour_id", tourID), zap.Error(err))
		return 0, err
	}

	s.invalidate(ctx, tourIDKey(tourID), tourSlugKey(oldSlug), tourSlugKey(agg.Tour.Slug))

	s.logger.Info("Tour updated", zap.Int64("tour_id", tourID), zap.String("slug", agg.Tour.Slug))
	return tourID, nil
}

// Delete удаляет тур; дочерние строки удаляются каскадом
func (s *TourSynchronizer) Delete(ctx context.Context, tourID int64) error {
	var slugToDrop string
	err := s.txManager.WithinTx(ctx, func(store repository.TourStore) error {
		current, err := store.GetTourForUpdate(ctx, tourID)
		if err != nil {
			return stepError("load_tour", err)
		}
		slugToDrop = current.Slug

		if err := store.DeleteTour(ctx, tourID); err != nil {
			return stepError("delete_tour", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to delete tour", zap.Int64("tour_id", tourID), zap.Error(err))
		return err
	}

	s.invalidate(ctx, tourIDKey(tourID), tourSlugKey(slugToDrop))

	s.logger.Info("Tour deleted", zap.Int64("tour_id", tourID))
	return nil
}

func syncDestinations(ctx context.Context, store repository.TourStore, tourID int64, incoming []domain.TourDestination) error {
	existing, err := store.ListDestinations(ctx, tourID)
	if err != nil {
		return err
	}

	plan := reconcile.Diff(existing, incoming,
		func(d domain.TourDestination) (int64, bool) { return d.DestinationID, true },
		func(stored, next domain.TourDestination) bool { return stored.Order == next.Order },
	)

	if err := store.DeleteDestinations(ctx, tourID, plan.Delete); err != nil {
		return err
	}
	if len(plan.Update) > 0 {
		if err := store.UpdateDestinations(ctx, plan.Update); err != nil {
			return err
		}
	}
	if len(plan.Insert) > 0 {
		return store.InsertDestinations(ctx, plan.Insert)
	}
	return nil
}

func syncDepartures(ctx context.Context, store repository.TourStore, tourID int64, incoming []domain.Departure) error {
	existing, err := store.ListDepartures(ctx, tourID)
	if err != nil {
		return err
	}

	plan := reconcile.Diff(existing, incoming,
		func(d domain.Departure) (int64, bool) { return d.ID, d.ID > 0 },
		domain.Departure.SameAs,
	)

	if err := store.DeleteDepartures(ctx, tourID, plan.Delete); err != nil {
		return err
	}
	if len(plan.Update) > 0 {
		if err := store.UpdateDepartures(ctx, plan.Update); err != nil {
			return err
		}
	}
	if len(plan.Insert) > 0 {
		return store.InsertDepartures(ctx, plan.Insert)
	}
	return nil
}

func syncPrices(ctx context.Context, store repository.TourStore, tourID int64, incoming []domain.Price) error {
	existing, err := store.ListPrices(ctx, tourID)
	if err != nil {
		return err
	}

	plan := reconcile.Diff(existing, incoming,
		func(p domain.Price) (int64, bool) { return p.ID, p.ID > 0 },
		domain.Price.SameAs,
	)

	if err := store.DeletePrices(ctx, tourID, plan.Delete); err != nil {
		return err
	}
	if len(plan.Update) > 0 {
		if err := store.UpdatePrices(ctx, plan.Update); err != nil {
			return err
		}
	}
	if len(plan.Insert) > 0 {
		return store.InsertPrices(ctx, plan.Insert)
	}
	return nil
}

func syncGifts(ctx context.Context, store repository.TourStore, tourID int64, incoming []domain.TourGift) error {
	existing, err := store.ListGifts(ctx, tourID)
	if err != nil {
		return err
	}

	// у связи с подарком нет изменяемых полей
	plan := reconcile.Diff(existing, incoming,
		func(g domain.TourGift) (int64, bool) { return g.GiftID, true },
		func(_, _ domain.TourGift) bool { return true },
	)

	if err := store.DeleteGifts(ctx, tourID, plan.Delete); err != nil {
		return err
	}
	if len(plan.Insert) > 0 {
		return store.InsertGifts(ctx, plan.Insert)
	}
	return nil
}

func syncPhotos(ctx context.Context, store repository.TourStore, tourID int64, incoming []domain.TourPhoto) error {
	existing, err := store.ListPhotos(ctx, tourID)
	if err != nil {
		return err
	}

	plan := reconcile.Diff(existing, incoming,
		func(p domain.TourPhoto) (string, bool) { return p.URL, true },
		func(stored, next domain.TourPhoto) bool { return stored.Order == next.Order },
	)

	if err := store.DeletePhotos(ctx, tourID, plan.Delete); err != nil {
		return err
	}
	if len(plan.Update) > 0 {
		if err := store.UpdatePhotos(ctx, plan.Update); err != nil {
			return err
		}
	}
	if len(plan.Insert) > 0 {
		return store.InsertPhotos(ctx, plan.Insert)
	}
	return nil
}

// invalidate сбрасывает списки и переданные ключи карточек; ошибки кеша не фатальны
func (s *TourSynchronizer) invalidate(ctx context.Context, keys ...string) {
	if err := s.cacheRepo.DeleteByPrefix(ctx, tourListCachePrefix); err != nil {
		s.logger.Warn("Failed to invalidate tour lists", zap.Error(err))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cacheRepo.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate tour cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

// inheritDepartureDuration - новый выезд без длительности получает длительность тура;
// дальше она хранится в строке выезда и от тура не зависит
func inheritDepartureDuration(agg *domain.TourAggregate) {
	for i := range agg.Departures {
		d := &agg.Departures[i]
		if d.ID == 0 && d.DurationDays == 0 {
			d.DurationDays = agg.Tour.DurationDays
		}
	}
}

// validateAggregate проверяет агрегат до обращения к базе
func validateAggregate(agg *domain.TourAggregate) error {
	fields := make(map[string]interface{})

	agg.Tour.Title = strings.TrimSpace(agg.Tour.Title)
	if agg.Tour.Title == "" {
		fields["titulo"] = "required"
	}
	if agg.Tour.DurationDays < 0 {
		fields["duracion_dias"] = "min"
	}
	if agg.Tour.PublishedAt != nil && agg.Tour.ExpiresAt != nil && agg.Tour.ExpiresAt.Before(agg.Tour.PublishedAt.Time) {
		fields["fecha_caducidad"] = "gtefield=fecha_publicacion"
	}

	seenDest := make(map[int64]struct{}, len(agg.Destinations))
	for i, d := range agg.Destinations {
		if d.DestinationID <= 0 {
			fields[fmt.Sprintf("destinos[%d]", i)] = "min"
		}
		if _, dup := seenDest[d.DestinationID]; dup {
			fields[fmt.Sprintf("destinos[%d]", i)] = "unique"
		}
		seenDest[d.DestinationID] = struct{}{}
	}

	for i, d := range agg.Departures {
		if d.DurationDays < 0 {
			fields[fmt.Sprintf("salidas[%d].duracion_dias", i)] = "min"
		}
		if d.AvailableSlots != nil && *d.AvailableSlots < 0 {
			fields[fmt.Sprintf("salidas[%d].cupos_disponibles", i)] = "min"
		}
	}

	for i, p := range agg.Prices {
		if p.Amount < 0 {
			fields[fmt.Sprintf("precios[%d].precio", i)] = "min"
		} else if !p.FitsNumeric() {
			fields[fmt.Sprintf("precios[%d].precio", i)] = "numeric"
		}
		if !p.RoomType.Valid() {
			fields[fmt.Sprintf("precios[%d].tipo_habitacion", i)] = "oneof"
		}
		if !p.PaymentMethod.Valid() {
			fields[fmt.Sprintf("precios[%d].forma_pago", i)] = "oneof"
		}
	}

	seenGift := make(map[int64]struct{}, len(agg.Gifts))
	for i, g := range agg.Gifts {
		if _, dup := seenGift[g.GiftID]; dup || g.GiftID <= 0 {
			fields[fmt.Sprintf("regalos[%d]", i)] = "unique"
		}
		seenGift[g.GiftID] = struct{}{}
	}

	seenPhoto := make(map[string]struct{}, len(agg.Photos))
	for i, p := range agg.Photos {
		if _, dup := seenPhoto[p.URL]; dup || p.URL == "" {
			fields[fmt.Sprintf("fotos[%d]", i)] = "unique"
		}
		seenPhoto[p.URL] = struct{}{}
	}

	if len(fields) > 0 {
		return errors.ErrValidation.WithDetails(map[string]interface{}{"fields": fields})
	}
	return nil
}

// baseSlug - явный slug или производный от названия
func baseSlug(t domain.Tour) string {
	base := t.Slug
	if base == "" {
		base = t.Title
	}
	if s := slug.Make(base); s != "" {
		return s
	}
	return "tour"
}

// uniqueSlug подбирает свободный slug: base, base-2, base-3...
func uniqueSlug(ctx context.Context, store repository.TourStore, base string, excludeID int64) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := store.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.ErrConflict.WithDetails(map[string]interface{}{"slug": base})
}

// stepError помечает ошибку базы шагом агрегата, на котором она произошла
func stepError(step string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Code == errors.ErrDatabaseError.Code {
		return appErr.WithDetails(map[string]interface{}{"step": step})
	}
	return err
}
