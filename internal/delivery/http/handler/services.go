package handler

import (
	"context"
	"io"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/usecase/dto"
)

// Интерфейсы use case'ов, которые вызывают обработчики

type TourQueryService interface {
	ListTours(ctx context.Context, req dto.TourListRequest) (*dto.ListResponse[dto.TourSummary], error)
	GetTourBySlug(ctx context.Context, slug string) (*dto.TourDetail, error)
	GetTourByID(ctx context.Context, id int64) (*dto.TourDetail, error)
}

type TourWriteService interface {
	Create(ctx context.Context, agg domain.TourAggregate) (int64, error)
	Update(ctx context.Context, tourID int64, agg domain.TourAggregate) (int64, error)
	Delete(ctx context.Context, tourID int64) error
}

type ReferenceService[T domain.Reference] interface {
	List(ctx context.Context, query string) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) (int64, error)
	Update(ctx context.Context, id int64, entity *T) error
	Delete(ctx context.Context, id int64) error
}

type BlogService interface {
	ListPosts(ctx context.Context, req dto.PostListRequest) (*dto.ListResponse[domain.Post], error)
	GetPublishedPost(ctx context.Context, slug string) (*dto.PostDetail, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	CreatePost(ctx context.Context, req dto.PostRequest) (int64, error)
	UpdatePost(ctx context.Context, id int64, req dto.PostRequest) error
	DeletePost(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]domain.Tag, error)
	AddComment(ctx context.Context, postSlug string, req dto.CommentRequest) (*domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
	ApproveComment(ctx context.Context, id int64) error
	DeleteComment(ctx context.Context, id int64) error
}

type LeadService interface {
	Submit(ctx context.Context, req dto.ContactRequest, locale domain.Locale) (*domain.Lead, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[domain.Lead], error)
}

type UploadService interface {
	Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (*dto.UploadResponse, error)
}
