package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Auth      AuthConfig
	Storage   StorageConfig
	SMTP      SMTPConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TourCacheTTL     time.Duration
	TourListCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// AuthConfig - параметры проверки JWT администратора
type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

// StorageConfig - S3 бакет для фото туров и PDF
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	MaxUploadSize   int64
	UsePathStyle    bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// TLS=false разрешает отправку без STARTTLS (локальный mailhog)
	TLS bool
}

type MailConfig struct {
	From     string
	FromName string
	NotifyTo []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TourCacheTTL:     time.Duration(viper.GetInt("TOUR_CACHE_TTL")) * time.Second,
			TourListCacheTTL: time.Duration(viper.GetInt("TOUR_LIST_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
			AdminRole: viper.GetString("AUTH_ADMIN_ROLE"),
		},
		Storage: StorageConfig{
			Bucket:          viper.GetString("STORAGE_BUCKET"),
			Region:          viper.GetString("STORAGE_REGION"),
			Endpoint:        viper.GetString("STORAGE_ENDPOINT"),
			AccessKeyID:     viper.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("STORAGE_SECRET_ACCESS_KEY"),
			PublicBaseURL:   viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			MaxUploadSize:   viper.GetInt64("STORAGE_MAX_UPLOAD_SIZE"),
			UsePathStyle:    viper.GetBool("STORAGE_USE_PATH_STYLE"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			TLS:      viper.GetBool("SMTP_TLS"),
		},
		Mail: MailConfig{
			From:     viper.GetString("MAIL_FROM"),
			FromName: viper.GetString("MAIL_FROM_NAME"),
			NotifyTo: parseList(viper.GetString("MAIL_NOTIFY_TO")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MinJWTSecretLength - минимальная длина ключа HS256
const MinJWTSecretLength = 32

// validate отклоняет конфигурацию, с которой админка открыта любому
func (c *Config) validate() error {
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	return nil
}

// applyDefaults заполняет значения, не заданные в окружении
func (c *Config) applyDefaults() {
	if c.Cache.TourCacheTTL == 0 {
		c.Cache.TourCacheTTL = 10 * time.Minute
	}
	if c.Cache.TourListCacheTTL == 0 {
		c.Cache.TourListCacheTTL = 2 * time.Minute
	}
	if c.Auth.AdminRole == "" {
		c.Auth.AdminRole = "admin"
	}
	if c.Storage.MaxUploadSize == 0 {
		c.Storage.MaxUploadSize = 10 << 20
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "lead-notification-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
