package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/usecase/dto"
)

type MockTourQueryService struct {
	mock.Mock
}

func (m *MockTourQueryService) ListTours(ctx context.Context, req dto.TourListRequest) (*dto.ListResponse[dto.TourSummary], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse[dto.TourSummary]), args.Error(1)
}

func (m *MockTourQueryService) GetTourBySlug(ctx context.Context, slug string) (*dto.TourDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TourDetail), args.Error(1)
}

func (m *MockTourQueryService) GetTourByID(ctx context.Context, id int64) (*dto.TourDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TourDetail), args.Error(1)
}

type MockTourWriteService struct {
	mock.Mock
}

func (m *MockTourWriteService) Create(ctx context.Context, agg domain.TourAggregate) (int64, error) {
	args := m.Called(ctx, agg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTourWriteService) Update(ctx context.Context, tourID int64, agg domain.TourAggregate) (int64, error) {
	args := m.Called(ctx, tourID, agg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTourWriteService) Delete(ctx context.Context, tourID int64) error {
	return m.Called(ctx, tourID).Error(0)
}

type MockReferenceService[T domain.Reference] struct {
	mock.Mock
}

func (m *MockReferenceService[T]) List(ctx context.Context, query string) ([]T, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockReferenceService[T]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockReferenceService[T]) Create(ctx context.Context, entity *T) (int64, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferenceService[T]) Update(ctx context.Context, id int64, entity *T) error {
	return m.Called(ctx, id, entity).Error(0)
}

func (m *MockReferenceService[T]) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListPosts(ctx context.Context, req dto.PostListRequest) (*dto.ListResponse[domain.Post], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse[domain.Post]), args.Error(1)
}

func (m *MockBlogService) GetPublishedPost(ctx context.Context, slug string) (*dto.PostDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostDetail), args.Error(1)
}

func (m *MockBlogService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockBlogService) CreatePost(ctx context.Context, req dto.PostRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogService) UpdatePost(ctx context.Context, id int64, req dto.PostRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockBlogService) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockBlogService) AddComment(ctx context.Context, postSlug string, req dto.CommentRequest) (*domain.Comment, error) {
	args := m.Called(ctx, postSlug, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockBlogService) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockBlogService) ApproveComment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogService) DeleteComment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Submit(ctx context.Context, req dto.ContactRequest, locale domain.Locale) (*domain.Lead, error) {
	args := m.Called(ctx, req, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[domain.Lead], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse[domain.Lead]), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
	Body []byte
}

func (m *MockUploadService) Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (*dto.UploadResponse, error) {
	m.Body, _ = io.ReadAll(body)
	args := m.Called(ctx, folder, filename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

// envelope - разобранный ответ utils.SendSuccess / SendError
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]int  `json:"meta"`
	Error *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}
