package repository

import (
	"context"
	"io"
)

// FileStorage - бакет для фото и документов
type FileStorage interface {
	// Upload сохраняет объект и возвращает его публичный URL
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Delete удаляет объект по ключу
	Delete(ctx context.Context, key string) error
}
