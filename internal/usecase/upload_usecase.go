package usecase

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
)

// sniffLen - сколько байт читаем для определения типа файла
const sniffLen = 3072

// allowedUploadTypes - допустимые типы и расширения ключей
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// UploadUseCase - загрузка фото туров и PDF в хранилище
type UploadUseCase struct {
	storage repository.FileStorage
	logger  *zap.Logger
	maxSize int64
	newKey  func() string
}

// NewUploadUseCase - создание нового UploadUseCase
func NewUploadUseCase(storage repository.FileStorage, logger *zap.Logger, maxSize int64) *UploadUseCase {
	return &UploadUseCase{
		storage: storage,
		logger:  logger,
		maxSize: maxSize,
		newKey:  func() string { return uuid.NewString() },
	}
}

// Upload проверяет размер и реальный тип содержимого, затем сохраняет объект
// под ключом <folder>/<uuid><ext>. Заявленный клиентом contentType не доверяется.
func (uc *UploadUseCase) Upload(ctx context.Context, folder, filename string, size int64, body io.Reader) (*dto.UploadResponse, error) {
	if size <= 0 {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"fields": map[string]interface{}{"file": "required"},
		})
	}
	if uc.maxSize > 0 && size > uc.maxSize {
		return nil, errors.ErrPayloadTooLarge.WithDetails(map[string]interface{}{
			"max_size": uc.maxSize,
			"size":     size,
		})
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.ErrInvalidRequest.Wrap(err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	contentType := baseMediaType(detected.String())
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		uc.logger.Info("Rejected upload",
			zap.String("filename", filename),
			zap.String("detected", detected.String()))
		return nil, errors.ErrUnsupportedMedia.WithDetails(map[string]interface{}{
			"content_type": contentType,
		})
	}

	key := path.Join(uploadFolder(folder), uc.newKey()+ext)
	reader := io.MultiReader(bytes.NewReader(head), body)

	url, err := uc.storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload file", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("File uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", size))

	return &dto.UploadResponse{
		URL:         url,
		Key:         key,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// uploadFolder нормализует папку; пустая превращается в "misc"
func uploadFolder(folder string) string {
	parts := strings.Split(folder, "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := slug.Make(p); s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return "misc"
	}
	return strings.Join(clean, "/")
}

func baseMediaType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
