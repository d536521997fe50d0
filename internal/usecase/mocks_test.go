package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tour-microservice/internal/domain"
)

// MockCacheRepository - мок для CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// newPermissiveCache - кеш, который всегда промахивается и принимает любые записи
func newPermissiveCache() *MockCacheRepository {
	c := &MockCacheRepository{}
	c.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	c.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	c.On("DeleteByPrefix", mock.Anything, mock.Anything).Return(nil).Maybe()
	return c
}

// MockTourReadRepository - мок для TourReadRepository
type MockTourReadRepository struct {
	mock.Mock
}

func (m *MockTourReadRepository) List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Tour), args.Int(1), args.Error(2)
}

func (m *MockTourReadRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourReadRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourReadRepository) DestinationsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourDestinationView, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourDestinationView), args.Error(1)
}

func (m *MockTourReadRepository) DeparturesForTours(ctx context.Context, tourIDs []int64) ([]domain.Departure, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Departure), args.Error(1)
}

func (m *MockTourReadRepository) PricesForTours(ctx context.Context, tourIDs []int64) ([]domain.Price, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *MockTourReadRepository) ComponentsForTours(ctx context.Context, tourIDs []int64) ([]domain.IncludedComponents, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncludedComponents), args.Error(1)
}

func (m *MockTourReadRepository) GiftsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourGiftView, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourGiftView), args.Error(1)
}

func (m *MockTourReadRepository) PhotosForTours(ctx context.Context, tourIDs []int64) ([]domain.TourPhoto, error) {
	args := m.Called(ctx, tourIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourPhoto), args.Error(1)
}

// MockReferenceRepository - мок для ReferenceRepository любой справочной сущности
type MockReferenceRepository[T domain.Reference] struct {
	mock.Mock
}

func (m *MockReferenceRepository[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockReferenceRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockReferenceRepository[T]) Create(ctx context.Context, entity *T) (int64, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferenceRepository[T]) Update(ctx context.Context, id int64, entity *T) error {
	args := m.Called(ctx, id, entity)
	return args.Error(0)
}

func (m *MockReferenceRepository[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceRepository[T]) IsReferenced(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBlogRepository - мок для BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Int(1), args.Error(2)
}

func (m *MockBlogRepository) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockBlogRepository) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockBlogRepository) CreatePost(ctx context.Context, post *domain.Post) (int64, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) DeletePost(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) PostSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockBlogRepository) AddComment(ctx context.Context, comment *domain.Comment) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) ListComments(ctx context.Context, postID int64, approvedOnly bool) ([]domain.Comment, error) {
	args := m.Called(ctx, postID, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockBlogRepository) ApproveComment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteComment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeadRepository - мок для LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) (int64, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Lead), args.Int(1), args.Error(2)
}

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockFileStorage - мок для FileStorage; содержимое загрузки сохраняется в Body
type MockFileStorage struct {
	mock.Mock
	Body []byte
}

func (m *MockFileStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.Body = data
	args := m.Called(ctx, key, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
