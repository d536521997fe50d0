package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase/dto"
)

// BlogUseCase - записи блога, метки и модерация комментариев
type BlogUseCase struct {
	blogRepo repository.BlogRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewBlogUseCase - создание нового BlogUseCase
func NewBlogUseCase(blogRepo repository.BlogRepository, logger *zap.Logger) *BlogUseCase {
	return &BlogUseCase{
		blogRepo: blogRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *BlogUseCase) ListPosts(ctx context.Context, req dto.PostListRequest) (*dto.ListResponse[domain.Post], error) {
	posts, total, err := uc.blogRepo.ListPosts(ctx, domain.PostFilter{
		TagSlug:       slug.Make(req.Tag),
		Search:        strings.TrimSpace(req.Search),
		PublishedOnly: !req.IncludeDrafts,
		Limit:         req.EffectiveLimit(),
		Offset:        req.Offset,
	})
	if err != nil {
		uc.logger.Error("Failed to list posts", zap.Error(err))
		return nil, err
	}

	resp := dto.NewListResponse(posts, total, req.EffectiveLimit(), req.Offset)
	return &resp, nil
}

// GetPublishedPost - запись для сайта с одобренными комментариями
func (uc *BlogUseCase) GetPublishedPost(ctx context.Context, postSlug string) (*dto.PostDetail, error) {
	post, err := uc.blogRepo.GetPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, errors.ErrPostNotFound
	}

	comments, err := uc.blogRepo.ListComments(ctx, post.ID, true)
	if err != nil {
		uc.logger.Error("Failed to load comments", zap.Int64("post_id", post.ID), zap.Error(err))
		return nil, err
	}

	return &dto.PostDetail{Post: *post, Comments: nonNil(comments)}, nil
}

func (uc *BlogUseCase) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return uc.blogRepo.GetPostByID(ctx, id)
}

func (uc *BlogUseCase) CreatePost(ctx context.Context, req dto.PostRequest) (int64, error) {
	if err := validator.Validate(&req); err != nil {
		return 0, err
	}

	post := uc.postFromRequest(req)
	postSlug, err := uc.uniquePostSlug(ctx, post.Slug, 0)
	if err != nil {
		return 0, err
	}
	post.Slug = postSlug

	id, err := uc.blogRepo.CreatePost(ctx, post)
	if err != nil {
		uc.logger.Error("Failed to create post", zap.String("slug", post.Slug), zap.Error(err))
		return 0, err
	}

	uc.logger.Info("Post created", zap.Int64("post_id", id), zap.String("slug", post.Slug))
	return id, nil
}

func (uc *BlogUseCase) UpdatePost(ctx context.Context, id int64, req dto.PostRequest) error {
	if err := validator.Validate(&req); err != nil {
		return err
	}

	current, err := uc.blogRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}

	post := uc.postFromRequest(req)
	post.ID = id
	if req.Slug == "" && req.Title == current.Title {
		post.Slug = current.Slug
	}
	// дата первой публикации не сдвигается при правках
	if post.Published && req.PublishedAt == nil && current.PublishedAt != nil {
		post.PublishedAt = current.PublishedAt
	}

	postSlug, err := uc.uniquePostSlug(ctx, post.Slug, id)
	if err != nil {
		return err
	}
	post.Slug = postSlug

	if err := uc.blogRepo.UpdatePost(ctx, post); err != nil {
		uc.logger.Error("Failed to update post", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (uc *BlogUseCase) DeletePost(ctx context.Context, id int64) error {
	if err := uc.blogRepo.DeletePost(ctx, id); err != nil {
		uc.logger.Error("Failed to delete post", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (uc *BlogUseCase) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := uc.blogRepo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(tags), nil
}

// AddComment сохраняет комментарий к опубликованной записи; он виден после одобрения
func (uc *BlogUseCase) AddComment(ctx context.Context, postSlug string, req dto.CommentRequest) (*domain.Comment, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	post, err := uc.blogRepo.GetPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, errors.ErrPostNotFound
	}

	comment := &domain.Comment{
		PostID:  post.ID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Content: strings.TrimSpace(req.Content),
	}
	id, err := uc.blogRepo.AddComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	comment.CreatedAt = uc.now()

	uc.logger.Info("Comment awaiting moderation", zap.Int64("post_id", post.ID), zap.Int64("comment_id", id))
	return comment, nil
}

func (uc *BlogUseCase) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := uc.blogRepo.ListComments(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	return nonNil(comments), nil
}

func (uc *BlogUseCase) ApproveComment(ctx context.Context, id int64) error {
	return uc.blogRepo.ApproveComment(ctx, id)
}

func (uc *BlogUseCase) DeleteComment(ctx context.Context, id int64) error {
	return uc.blogRepo.DeleteComment(ctx, id)
}

func (uc *BlogUseCase) postFromRequest(req dto.PostRequest) *domain.Post {
	post := &domain.Post{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug.Make(req.Slug),
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Author:      req.Author,
		Published:   req.Published,
		PublishedAt: req.PublishedAt,
	}
	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}
	if post.Published && post.PublishedAt == nil {
		now := uc.now()
		post.PublishedAt = &now
	}

	seen := make(map[string]struct{}, len(req.Tags))
	for _, name := range req.Tags {
		name = strings.TrimSpace(name)
		tagSlug := slug.Make(name)
		if tagSlug == "" {
			continue
		}
		if _, dup := seen[tagSlug]; dup {
			continue
		}
		seen[tagSlug] = struct{}{}
		post.Tags = append(post.Tags, domain.Tag{Name: name, Slug: tagSlug})
	}

	return post
}

func (uc *BlogUseCase) uniquePostSlug(ctx context.Context, base string, excludeID int64) (string, error) {
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := uc.blogRepo.PostSlugTaken(ctx, candidate, excludeID)
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
