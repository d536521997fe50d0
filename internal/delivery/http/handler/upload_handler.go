package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/utils"
)

// UploadHandler - загрузка фото и PDF в хранилище
type UploadHandler struct {
	uc     UploadService
	logger *zap.Logger
}

// NewUploadHandler - создание нового UploadHandler
func NewUploadHandler(uc UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uc:     uc,
		logger: logger,
	}
}

// Upload godoc
// @Summary Загрузка файла
// @Description Допустимы JPEG, PNG, WebP и PDF; тип определяется по содержимому
// @Tags Admin Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Файл"
// @Param folder formData string false "Папка, например tours/cancun"
// @Success 201 {object} utils.SuccessResponse{data=dto.UploadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 413 {object} utils.ErrorResponse
// @Failure 415 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/admin/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, errors.ErrValidation.WithDetails(map[string]interface{}{
			"fields": map[string]string{"file": "required"},
		}))
	}

	file, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.String("filename", fh.Filename), zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	defer file.Close()

	result, err := h.uc.Upload(c.Context(), c.FormValue("folder"), fh.Filename, fh.Size, file)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}
