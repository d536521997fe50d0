package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// TourStore - операции записи агрегата тура. Все методы выполняются в рамках
// одной транзакции, открытой TourTxManager.
type TourStore interface {
	// InsertTour вставляет скалярную строку тура и возвращает сгенерированный id
	InsertTour(ctx context.Context, tour *domain.Tour) (int64, error)

	// UpdateTour обновляет скалярные поля тура; ErrTourNotFound если строки нет
	UpdateTour(ctx context.Context, tour *domain.Tour) error

	// DeleteTour удаляет тур; дочерние строки удаляются каскадом
	DeleteTour(ctx context.Context, id int64) error

	// GetTourForUpdate блокирует строку тура до конца транзакции
	GetTourForUpdate(ctx context.Context, id int64) (*domain.Tour, error)

	// SlugTaken проверяет занятость slug другим туром
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	ListDestinations(ctx context.Context, tourID int64) ([]domain.TourDestination, error)
	InsertDestinations(ctx context.Context, rows []domain.TourDestination) error
	UpdateDestinations(ctx context.Context, rows []domain.TourDestination) error
	DeleteDestinations(ctx context.Context, tourID int64, destinationIDs []int64) error

	ListDepartures(ctx context.Context, tourID int64) ([]domain.Departure, error)
	InsertDepartures(ctx context.Context, rows []domain.Departure) error
	UpdateDepartures(ctx context.Context, rows []domain.Departure) error
	DeleteDepartures(ctx context.Context, tourID int64, ids []int64) error

	ListPrices(ctx context.Context, tourID int64) ([]domain.Price, error)
	InsertPrices(ctx context.Context, rows []domain.Price) error
	UpdatePrices(ctx context.Context, rows []domain.Price) error
	DeletePrices(ctx context.Context, tourID int64, ids []int64) error

	// UpsertComponents вставляет или заменяет единственную строку componentes_incluidos
	UpsertComponents(ctx context.Context, components domain.IncludedComponents) error

	ListGifts(ctx context.Context, tourID int64) ([]domain.TourGift, error)
	InsertGifts(ctx context.Context, rows []domain.TourGift) error
	DeleteGifts(ctx context.Context, tourID int64, giftIDs []int64) error

	ListPhotos(ctx context.Context, tourID int64) ([]domain.TourPhoto, error)
	InsertPhotos(ctx context.Context, rows []domain.TourPhoto) error
	UpdatePhotos(ctx context.Context, rows []domain.TourPhoto) error
	DeletePhotos(ctx context.Context, tourID int64, urls []string) error
}

// TourTxManager открывает транзакцию и передаёт TourStore, привязанный к ней.
// Если fn возвращает ошибку, транзакция откатывается.
type TourTxManager interface {
	WithinTx(ctx context.Context, fn func(store TourStore) error) error
}

// TourReadRepository - выборки для витрины и админки
type TourReadRepository interface {
	List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)

	DestinationsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourDestinationView, error)
	DeparturesForTours(ctx context.Context, tourIDs []int64) ([]domain.Departure, error)
	PricesForTours(ctx context.Context, tourIDs []int64) ([]domain.Price, error)
	ComponentsForTours(ctx context.Context, tourIDs []int64) ([]domain.IncludedComponents, error)
	GiftsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourGiftView, error)
	PhotosForTours(ctx context.Context, tourIDs []int64) ([]domain.TourPhoto, error)
}
