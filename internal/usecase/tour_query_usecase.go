package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
)

// TourQueryUseCase - витрина туров с read-through кешем в Redis
type TourQueryUseCase struct {
	tourRepo    repository.TourReadRepository
	airlineRepo repository.ReferenceRepository[domain.Airline]
	termsRepo   repository.ReferenceRepository[domain.TermsAndConditions]
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	detailTTL   time.Duration
	listTTL     time.Duration
	now         func() time.Time
}

// NewTourQueryUseCase - создание нового TourQueryUseCase
func NewTourQueryUseCase(
	tourRepo repository.TourReadRepository,
	airlineRepo repository.ReferenceRepository[domain.Airline],
	termsRepo repository.ReferenceRepository[domain.TermsAndConditions],
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	detailTTL, listTTL time.Duration,
) *TourQueryUseCase {
	return &TourQueryUseCase{
		tourRepo:    tourRepo,
		airlineRepo: airlineRepo,
		termsRepo:   termsRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		detailTTL:   detailTTL,
		listTTL:     listTTL,
		now:         time.Now,
	}
}

func (uc *TourQueryUseCase) today() domain.Date {
	t := uc.now()
	return domain.NewDate(t.Year(), t.Month(), t.Day())
}

// ListTours возвращает карточки туров с минимальной ценой и ближайшим выездом
func (uc *TourQueryUseCase) ListTours(ctx context.Context, req dto.TourListRequest) (*dto.ListResponse[dto.TourSummary], error) {
	filter := domain.TourFilter{
		Search:        req.Search,
		DestinationID: req.DestinationID,
		OnlyListed:    !req.IncludeExpired,
		Today:         uc.today(),
		Limit:         req.EffectiveLimit(),
		Offset:        req.Offset,
	}

	key := tourListKey(filter)
	var cached dto.ListResponse[dto.TourSummary]
	if uc.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	tours, total, err := uc.tourRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list tours", zap.Error(err))
		return nil, err
	}

	ids := make([]int64, len(tours))
	for i, t := range tours {
		ids[i] = t.ID
	}

	var (
		destinations []domain.TourDestinationView
		departures   []domain.Departure
		prices       []domain.Price
		photos       []domain.TourPhoto
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		destinations, err = uc.tourRepo.DestinationsForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		departures, err = uc.tourRepo.DeparturesForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		prices, err = uc.tourRepo.PricesForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		photos, err = uc.tourRepo.PhotosForTours(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to load tour collections", zap.Error(err))
		return nil, err
	}

	destByTour := groupBy(destinations, func(d domain.TourDestinationView) int64 { return d.TourID })
	depByTour := groupBy(departures, func(d domain.Departure) int64 { return d.TourID })
	priceByTour := groupBy(prices, func(p domain.Price) int64 { return p.TourID })
	photoByTour := groupBy(photos, func(p domain.TourPhoto) int64 { return p.TourID })

	today := filter.Today
	items := make([]dto.TourSummary, 0, len(tours))
	for _, t := range tours {
		summary := dto.TourSummary{
			ID:            t.ID,
			Title:         t.Title,
			Slug:          t.Slug,
			DurationDays:  t.DurationDays,
			PublishedAt:   t.PublishedAt,
			ExpiresAt:     t.ExpiresAt,
			Destinations:  nonNil(destByTour[t.ID]),
			NextDeparture: nextDeparture(depByTour[t.ID], today),
			PriceFrom:     priceFrom(priceByTour[t.ID]),
		}
		if ph := photoByTour[t.ID]; len(ph) > 0 {
			cover := ph[0].URL
			summary.CoverPhoto = &cover
		}
		items = append(items, summary)
	}

	resp := dto.NewListResponse(items, total, filter.Limit, req.Offset)
	uc.setCached(ctx, key, resp, uc.listTTL)

	return &resp, nil
}

// GetTourBySlug - карточка для витрины; неопубликованные и истёкшие туры скрыты
func (uc *TourQueryUseCase) GetTourBySlug(ctx context.Context, slug string) (*dto.TourDetail, error) {
	detail, err := uc.detail(ctx, tourSlugKey(slug), func() (*domain.Tour, error) {
		return uc.tourRepo.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	if !detail.Tour.IsListed(uc.today()) {
		return nil, errors.ErrTourNotFound
	}
	return detail, nil
}

// GetTourByID - карточка для админки, без фильтра по датам
func (uc *TourQueryUseCase) GetTourByID(ctx context.Context, id int64) (*dto.TourDetail, error) {
	return uc.detail(ctx, tourIDKey(id), func() (*domain.Tour, error) {
		return uc.tourRepo.GetByID(ctx, id)
	})
}

func (uc *TourQueryUseCase) detail(ctx context.Context, key string, load func() (*domain.Tour, error)) (*dto.TourDetail, error) {
	var cached dto.TourDetail
	if uc.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	tour, err := load()
	if err != nil {
		if !stderrors.Is(err, errors.ErrTourNotFound) {
			uc.logger.Error("Failed to load tour", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}

	detail := dto.TourDetail{Tour: *tour}
	ids := []int64{tour.ID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		detail.Destinations, err = uc.tourRepo.DestinationsForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		detail.Departures, err = uc.tourRepo.DeparturesForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		detail.Prices, err = uc.tourRepo.PricesForTours(gctx, ids)
		return err
	})
	g.Go(func() error {
		components, err := uc.tourRepo.ComponentsForTours(gctx, ids)
		if err == nil && len(components) > 0 {
			detail.Components = components[0]
		}
		return err
	})
	g.Go(func() (err error) {
		detail.Gifts, err = uc.tourRepo.GiftsForTours(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		detail.Photos, err = uc.tourRepo.PhotosForTours(gctx, ids)
		return err
	})
	if tour.AirlineID != nil {
		g.Go(func() (err error) {
			detail.Airline, err = optionalReference(uc.airlineRepo.GetByID(gctx, *tour.AirlineID))
			return err
		})
	}
	if tour.TermsConditionsID != nil {
		g.Go(func() (err error) {
			detail.TermsConditions, err = optionalReference(uc.termsRepo.GetByID(gctx, *tour.TermsConditionsID))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to load tour detail", zap.Int64("tour_id", tour.ID), zap.Error(err))
		return nil, err
	}

	detail.Destinations = nonNil(detail.Destinations)
	detail.Departures = nonNil(detail.Departures)
	detail.Prices = nonNil(detail.Prices)
	detail.Gifts = nonNil(detail.Gifts)
	detail.Photos = nonNil(detail.Photos)
	detail.PriceFrom = priceFrom(detail.Prices)

	uc.setCached(ctx, key, detail, uc.detailTTL)
	return &detail, nil
}

// getCached читает JSON из кеша; любые ошибки кеша означают промах
func (uc *TourQueryUseCase) getCached(ctx context.Context, key string, dest interface{}) bool {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Cache read failed, falling back to database", zap.String("key", key), zap.Error(err))
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		uc.logger.Warn("Corrupted cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (uc *TourQueryUseCase) setCached(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		uc.logger.Warn("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, ttl); err != nil {
		uc.logger.Warn("Failed to write cache", zap.String("key", key), zap.Error(err))
	}
}

// priceFrom - минимальная цена или nil для пустого набора
func priceFrom(prices []domain.Price) *float64 {
	lowest, ok := domain.LowestPrice(prices)
	if !ok {
		return nil
	}
	return &lowest
}

// nextDeparture - ближайшая дата выезда не раньше today
func nextDeparture(departures []domain.Departure, today domain.Date) *domain.Date {
	var next *domain.Date
	for _, d := range departures {
		if d.DepartureDate == nil || d.DepartureDate.Before(today.Time) {
			continue
		}
		if next == nil || d.DepartureDate.Before(next.Time) {
			date := *d.DepartureDate
			next = &date
		}
	}
	return next
}

// optionalReference превращает NOT_FOUND справочника в пустое значение
func optionalReference[T any](item *T, err error) (*T, error) {
	if stderrors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	return item, err
}

func groupBy[T any](items []T, key func(T) int64) map[int64][]T {
	out := make(map[int64][]T)
	for _, item := range items {
		k := key(item)
		out[k] = append(out[k], item)
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
