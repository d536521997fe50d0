package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// BlogRepository определяет методы для работы с блогом
type BlogRepository interface {
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)

	// CreatePost сохраняет запись вместе с метками в одной транзакции
	CreatePost(ctx context.Context, post *domain.Post) (int64, error)

	// UpdatePost обновляет запись и сверяет набор меток
	UpdatePost(ctx context.Context, post *domain.Post) error

	DeletePost(ctx context.Context, id int64) error
	PostSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)

	ListTags(ctx context.Context) ([]domain.Tag, error)

	AddComment(ctx context.Context, comment *domain.Comment) (int64, error)
	ListComments(ctx context.Context, postID int64, approvedOnly bool) ([]domain.Comment, error)
	ApproveComment(ctx context.Context, id int64) error
	DeleteComment(ctx context.Context, id int64) error
}
