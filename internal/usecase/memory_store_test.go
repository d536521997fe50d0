package usecase_test

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
)

// memoryState - содержимое таблиц агрегата тура
type memoryState struct {
	nextID       int64
	tours        map[int64]domain.Tour
	destinations map[int64][]domain.TourDestination
	departures   map[int64][]domain.Departure
	prices       map[int64][]domain.Price
	components   map[int64]domain.IncludedComponents
	gifts        map[int64][]domain.TourGift
	photos       map[int64][]domain.TourPhoto
}

func (s memoryState) clone() memoryState {
	return memoryState{
		nextID:       s.nextID,
		tours:        maps.Clone(s.tours),
		destinations: cloneRows(s.destinations),
		departures:   cloneRows(s.departures),
		prices:       cloneRows(s.prices),
		components:   maps.Clone(s.components),
		gifts:        cloneRows(s.gifts),
		photos:       cloneRows(s.photos),
	}
}

func cloneRows[T any](m map[int64][]T) map[int64][]T {
	out := make(map[int64][]T, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// memoryTourDB - in-memory TourTxManager: транзакция работает со снимком,
// при ошибке снимок отбрасывается. failOn задаёт метод, который вернёт DATABASE_ERROR.
type memoryTourDB struct {
	mu     sync.Mutex
	state  memoryState
	failOn string
	// written - сколько строк изменил каждый метод записи в последней транзакции
	written map[string]int
}

func newMemoryTourDB() *memoryTourDB {
	return &memoryTourDB{
		state: memoryState{
			nextID:       1,
			tours:        map[int64]domain.Tour{},
			destinations: map[int64][]domain.TourDestination{},
			departures:   map[int64][]domain.Departure{},
			prices:       map[int64][]domain.Price{},
			components:   map[int64]domain.IncludedComponents{},
			gifts:        map[int64][]domain.TourGift{},
			photos:       map[int64][]domain.TourPhoto{},
		},
		written: map[string]int{},
	}
}

func (db *memoryTourDB) WithinTx(ctx context.Context, fn func(store repository.TourStore) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := &memoryTourStore{db: db, state: db.state.clone()}
	db.written = map[string]int{}
	if err := fn(tx); err != nil {
		return err
	}
	db.state = tx.state
	return nil
}

// snapshot возвращает копию текущего закоммиченного состояния
func (db *memoryTourDB) snapshot() memoryState {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.clone()
}

// aggregate собирает сохранённый тур в виде агрегата
func (db *memoryTourDB) aggregate(id int64) (domain.TourAggregate, bool) {
	s := db.snapshot()
	tour, ok := s.tours[id]
	if !ok {
		return domain.TourAggregate{}, false
	}
	return domain.TourAggregate{
		Tour:         tour,
		Destinations: s.destinations[id],
		Departures:   s.departures[id],
		Prices:       s.prices[id],
		Components:   s.components[id],
		Gifts:        s.gifts[id],
		Photos:       s.photos[id],
	}, true
}

type memoryTourStore struct {
	db    *memoryTourDB
	state memoryState
}

func (s *memoryTourStore) step(name string, rows int) error {
	if s.db.failOn == name {
		return errors.ErrDatabaseError
	}
	s.db.written[name] += rows
	return nil
}

func (s *memoryTourStore) newID() int64 {
	id := s.state.nextID
	s.state.nextID++
	return id
}

func (s *memoryTourStore) InsertTour(_ context.Context, tour *domain.Tour) (int64, error) {
	if err := s.step("InsertTour", 1); err != nil {
		return 0, err
	}
	t := *tour
	t.ID = s.newID()
	s.state.tours[t.ID] = t
	return t.ID, nil
}

func (s *memoryTourStore) UpdateTour(_ context.Context, tour *domain.Tour) error {
	if err := s.step("UpdateTour", 1); err != nil {
		return err
	}
	if _, ok := s.state.tours[tour.ID]; !ok {
		return errors.ErrTourNotFound
	}
	s.state.tours[tour.ID] = *tour
	return nil
}

func (s *memoryTourStore) DeleteTour(_ context.Context, id int64) error {
	if err := s.step("DeleteTour", 1); err != nil {
		return err
	}
	if _, ok := s.state.tours[id]; !ok {
		return errors.ErrTourNotFound
	}
	delete(s.state.tours, id)
	delete(s.state.destinations, id)
	delete(s.state.departures, id)
	delete(s.state.prices, id)
	delete(s.state.components, id)
	delete(s.state.gifts, id)
	delete(s.state.photos, id)
	return nil
}

func (s *memoryTourStore) GetTourForUpdate(_ context.Context, id int64) (*domain.Tour, error) {
	if err := s.step("GetTourForUpdate", 0); err != nil {
		return nil, err
	}
	t, ok := s.state.tours[id]
	if !ok {
		return nil, errors.ErrTourNotFound
	}
	return &t, nil
}

func (s *memoryTourStore) SlugTaken(_ context.Context, slug string, excludeID int64) (bool, error) {
	if err := s.step("SlugTaken", 0); err != nil {
		return false, err
	}
	for id, t := range s.state.tours {
		if t.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryTourStore) ListDestinations(_ context.Context, tourID int64) ([]domain.TourDestination, error) {
	return slices.Clone(s.state.destinations[tourID]), s.step("ListDestinations", 0)
}

func (s *memoryTourStore) InsertDestinations(_ context.Context, rows []domain.TourDestination) error {
	if err := s.step("InsertDestinations", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		r.ID = s.newID()
		s.state.destinations[r.TourID] = append(s.state.destinations[r.TourID], r)
	}
	return nil
}

func (s *memoryTourStore) UpdateDestinations(_ context.Context, rows []domain.TourDestination) error {
	if err := s.step("UpdateDestinations", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		stored := s.state.destinations[r.TourID]
		for i := range stored {
			if stored[i].DestinationID == r.DestinationID {
				stored[i].Order = r.Order
			}
		}
	}
	return nil
}

func (s *memoryTourStore) DeleteDestinations(_ context.Context, tourID int64, destinationIDs []int64) error {
	if err := s.step("DeleteDestinations", len(destinationIDs)); err != nil {
		return err
	}
	s.state.destinations[tourID] = slices.DeleteFunc(s.state.destinations[tourID], func(d domain.TourDestination) bool {
		return slices.Contains(destinationIDs, d.DestinationID)
	})
	return nil
}

func (s *memoryTourStore) ListDepartures(_ context.Context, tourID int64) ([]domain.Departure, error) {
	return slices.Clone(s.state.departures[tourID]), s.step("ListDepartures", 0)
}

func (s *memoryTourStore) InsertDepartures(_ context.Context, rows []domain.Departure) error {
	if err := s.step("InsertDepartures", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		r.ID = s.newID()
		s.state.departures[r.TourID] = append(s.state.departures[r.TourID], r)
	}
	return nil
}

func (s *memoryTourStore) UpdateDepartures(_ context.Context, rows []domain.Departure) error {
	if err := s.step("UpdateDepartures", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		stored := s.state.departures[r.TourID]
		for i := range stored {
			if stored[i].ID == r.ID {
				stored[i] = r
			}
		}
	}
	return nil
}

func (s *memoryTourStore) DeleteDepartures(_ context.Context, tourID int64, ids []int64) error {
	if err := s.step("DeleteDepartures", len(ids)); err != nil {
		return err
	}
	s.state.departures[tourID] = slices.DeleteFunc(s.state.departures[tourID], func(d domain.Departure) bool {
		return slices.Contains(ids, d.ID)
	})
	return nil
}

func (s *memoryTourStore) ListPrices(_ context.Context, tourID int64) ([]domain.Price, error) {
	return slices.Clone(s.state.prices[tourID]), s.step("ListPrices", 0)
}

func (s *memoryTourStore) InsertPrices(_ context.Context, rows []domain.Price) error {
	if err := s.step("InsertPrices", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		r.ID = s.newID()
		s.state.prices[r.TourID] = append(s.state.prices[r.TourID], r)
	}
	return nil
}

func (s *memoryTourStore) UpdatePrices(_ context.Context, rows []domain.Price) error {
	if err := s.step("UpdatePrices", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		stored := s.state.prices[r.TourID]
		for i := range stored {
			if stored[i].ID == r.ID {
				stored[i] = r
			}
		}
	}
	return nil
}

func (s *memoryTourStore) DeletePrices(_ context.Context, tourID int64, ids []int64) error {
	if err := s.step("DeletePrices", len(ids)); err != nil {
		return err
	}
	s.state.prices[tourID] = slices.DeleteFunc(s.state.prices[tourID], func(p domain.Price) bool {
		return slices.Contains(ids, p.ID)
	})
	return nil
}

func (s *memoryTourStore) UpsertComponents(_ context.Context, components domain.IncludedComponents) error {
	if err := s.step("UpsertComponents", 1); err != nil {
		return err
	}
	s.state.components[components.TourID] = components
	return nil
}

func (s *memoryTourStore) ListGifts(_ context.Context, tourID int64) ([]domain.TourGift, error) {
	return slices.Clone(s.state.gifts[tourID]), s.step("ListGifts", 0)
}

func (s *memoryTourStore) InsertGifts(_ context.Context, rows []domain.TourGift) error {
	if err := s.step("InsertGifts", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		r.ID = s.newID()
		s.state.gifts[r.TourID] = append(s.state.gifts[r.TourID], r)
	}
	return nil
}

func (s *memoryTourStore) DeleteGifts(_ context.Context, tourID int64, giftIDs []int64) error {
	if err := s.step("DeleteGifts", len(giftIDs)); err != nil {
		return err
	}
	s.state.gifts[tourID] = slices.DeleteFunc(s.state.gifts[tourID], func(g domain.TourGift) bool {
		return slices.Contains(giftIDs, g.GiftID)
	})
	return nil
}

func (s *memoryTourStore) ListPhotos(_ context.Context, tourID int64) ([]domain.TourPhoto, error) {
	return slices.Clone(s.state.photos[tourID]), s.step("ListPhotos", 0)
}

func (s *memoryTourStore) InsertPhotos(_ context.Context, rows []domain.TourPhoto) error {
	if err := s.step("InsertPhotos", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		r.ID = s.newID()
		s.state.photos[r.TourID] = append(s.state.photos[r.TourID], r)
	}
	return nil
}

func (s *memoryTourStore) UpdatePhotos(_ context.Context, rows []domain.TourPhoto) error {
	if err := s.step("UpdatePhotos", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		stored := s.state.photos[r.TourID]
		for i := range stored {
			if stored[i].URL == r.URL {
				stored[i].Order = r.Order
			}
		}
	}
	return nil
}

func (s *memoryTourStore) DeletePhotos(_ context.Context, tourID int64, urls []string) error {
	if err := s.step("DeletePhotos", len(urls)); err != nil {
		return err
	}
	s.state.photos[tourID] = slices.DeleteFunc(s.state.photos[tourID], func(p domain.TourPhoto) bool {
		return slices.Contains(urls, p.URL)
	})
	return nil
}
