package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/usecase/dto"
)

// BlogHandler - блог: записи, метки и комментарии
type BlogHandler struct {
	uc     BlogService
	logger *zap.Logger
}

// NewBlogHandler - создание нового BlogHandler
func NewBlogHandler(uc BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListPosts godoc
// @Summary Опубликованные записи блога
// @Tags Blog
// @Produce json
// @Param tag query string false "Метка (название или slug)"
// @Param q query string false "Поиск"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Post}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/blog/posts [get]
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	return h.listPosts(c, false)
}

// AdminListPosts godoc
// @Summary Все записи блога (админка)
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Метка"
// @Param q query string false "Поиск"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Post}
// @Router /api/v1/admin/blog/posts [get]
func (h *BlogHandler) AdminListPosts(c *fiber.Ctx) error {
	return h.listPosts(c, true)
}

func (h *BlogHandler) listPosts(c *fiber.Ctx, includeDrafts bool) error {
	var req dto.PostListRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	req.IncludeDrafts = includeDrafts

	result, err := h.uc.ListPosts(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Items, pageMeta(result.Total, result.Limit, result.Offset))
}

// GetPost godoc
// @Summary Запись блога с одобренными комментариями
// @Tags Blog
// @Produce json
// @Param slug path string true "Slug записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.PostDetail}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/blog/posts/{slug} [get]
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.uc.GetPublishedPost(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, post, nil)
}

// AdminGetPost godoc
// @Summary Запись блога по id (админка)
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=domain.Post}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/posts/{id} [get]
func (h *BlogHandler) AdminGetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	post, err := h.uc.GetPost(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, post, nil)
}

// ListTags godoc
// @Summary Метки блога
// @Tags Blog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Tag}
// @Router /api/v1/blog/tags [get]
func (h *BlogHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.uc.ListTags(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	return utils.SendSuccess(c, tags, &utils.Meta{Total: len(tags)})
}

// AddComment godoc
// @Summary Комментарий к записи
// @Description Комментарий появляется после одобрения модератором
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Slug записи"
// @Param request body dto.CommentRequest true "Комментарий"
// @Success 201 {object} utils.SuccessResponse{data=domain.Comment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /api/v1/blog/posts/{slug}/comments [post]
func (h *BlogHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CommentRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	comment, err := h.uc.AddComment(c.Context(), c.Params("slug"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, comment)
}

// CreatePost godoc
// @Summary Создание записи блога
// @Tags Admin Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostRequest true "Запись"
// @Success 201 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/posts [post]
func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	var req dto.PostRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.uc.CreatePost(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Post created", zap.Int64("post_id", id))
	return utils.SendCreated(c, dto.IDResponse{ID: id})
}

// UpdatePost godoc
// @Summary Обновление записи блога
// @Tags Admin Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body dto.PostRequest true "Запись"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/posts/{id} [put]
func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.PostRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.UpdatePost(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}

// DeletePost godoc
// @Summary Удаление записи блога
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/posts/{id} [delete]
func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.DeletePost(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}

// ListComments godoc
// @Summary Комментарии записи, включая неодобренные
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Comment}
// @Router /api/v1/admin/blog/posts/{id}/comments [get]
func (h *BlogHandler) ListComments(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	comments, err := h.uc.ListComments(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	return utils.SendSuccess(c, comments, &utils.Meta{Total: len(comments)})
}

// ApproveComment godoc
// @Summary Одобрение комментария
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID комментария"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/comments/{id}/approve [put]
func (h *BlogHandler) ApproveComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.ApproveComment(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}

// DeleteComment godoc
// @Summary Удаление комментария
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID комментария"
// @Success 200 {object} utils.SuccessResponse{data=dto.IDResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/blog/comments/{id} [delete]
func (h *BlogHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.uc.DeleteComment(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.IDResponse{ID: id}, nil)
}
