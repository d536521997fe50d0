package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/config"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
)

type s3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3Storage создает хранилище файлов поверх S3-совместимого бакета.
// Endpoint и path-style нужны для MinIO и других совместимых сервисов.
func NewS3Storage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (repository.FileStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("Object storage configured",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint))

	return &s3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL(cfg),
		logger:        logger,
	}, nil
}

// publicBaseURL - адрес, по которому объекты доступны публично
func publicBaseURL(cfg *config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload сохраняет объект и возвращает его публичный URL
func (s *s3Storage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	// подпись запроса требует перематываемое тело; размер ограничен лимитом загрузки
	data, err := io.ReadAll(io.LimitReader(body, size))
	if err != nil {
		return "", errors.ErrInvalidRequest.Wrap(err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		s.logger.Error("Failed to put object", zap.String("key", key), zap.Error(err))
		return "", errors.ErrStorageError.Wrap(err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("Failed to delete object", zap.String("key", key), zap.Error(err))
		return errors.ErrStorageError.Wrap(err)
	}
	return nil
}
