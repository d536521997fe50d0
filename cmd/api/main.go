package main

// @title Tour Microservice API
// @version 1.0.0
// @description Сервис туристического агентства: каталог туров с коллекциями (направления, выезды, цены, подарки, фото),
// @description справочники для админки, блог с модерацией комментариев, контактная форма и загрузка файлов в S3.
// @description
// @description Основные возможности:
// @description - Создание и обновление тура целиком в одной транзакции
// @description - Витрина туров с минимальной ценой (precio_desde) и ближайшим выездом
// @description - Справочники с защитой от удаления используемых записей
// @description - Заявки из контактной формы с уведомлением агентства по email

// @contact.name API Support
// @contact.email soporte@tour-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

//go:generate swag init -g cmd/api/main.go -o docs

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/tour-microservice/docs"
	"github.com/tour-microservice/internal/config"
	httpDelivery "github.com/tour-microservice/internal/delivery/http"
	"github.com/tour-microservice/internal/delivery/http/handler"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/infrastructure/storage"
	"github.com/tour-microservice/internal/pkg/logger"
	"github.com/tour-microservice/internal/repository/cache"
	"github.com/tour-microservice/internal/repository/postgres"
	redisRepo "github.com/tour-microservice/internal/repository/redis"
	"github.com/tour-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Tour Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 6. Object storage
	fileStorage, err := storage.NewS3Storage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize S3 storage", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 7. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)

	airlineRepo := postgres.NewReferenceRepository(db, postgres.AirlineTable())
	destinationRepo := postgres.NewReferenceRepository(db, postgres.DestinationTable())
	giftRepo := postgres.NewReferenceRepository(db, postgres.GiftTable())
	termsRepo := postgres.NewReferenceRepository(db, postgres.TermsTable())

	tourReadRepo := postgres.NewTourReadRepository(db)
	tourTxManager := postgres.NewTourTxManager(db)
	blogRepo := postgres.NewBlogRepository(db)
	leadRepo := postgres.NewLeadRepository(db)

	log.Info("Repositories initialized")

	// 8. Initialize Use Cases
	tourSync := usecase.NewTourSynchronizer(tourTxManager, cacheRepo, log)
	tourQueryUC := usecase.NewTourQueryUseCase(
		tourReadRepo,
		airlineRepo,
		termsRepo,
		cacheRepo,
		log,
		cfg.Cache.TourCacheTTL,
		cfg.Cache.TourListCacheTTL,
	)

	airlineUC := usecase.NewReferenceUseCase[domain.Airline](airlineRepo, cacheRepo, log, "aerolineas")
	destinationUC := usecase.NewReferenceUseCase[domain.Destination](destinationRepo, cacheRepo, log, "destinos")
	giftUC := usecase.NewReferenceUseCase[domain.Gift](giftRepo, cacheRepo, log, "regalos")
	termsUC := usecase.NewReferenceUseCase[domain.TermsAndConditions](termsRepo, cacheRepo, log, "terminos_condiciones")

	blogUC := usecase.NewBlogUseCase(blogRepo, log)
	leadUC := usecase.NewLeadUseCase(leadRepo, tourReadRepo, streamRepo, log)
	uploadUC := usecase.NewUploadUseCase(fileStorage, log, cfg.Storage.MaxUploadSize)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	handlers := httpDelivery.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}, log),
		Tours:        handler.NewTourHandler(tourQueryUC, tourSync, log),
		Airlines:     handler.NewReferenceHandler[domain.Airline](airlineUC, "aerolineas", log),
		Destinations: handler.NewReferenceHandler[domain.Destination](destinationUC, "destinos", log),
		Gifts:        handler.NewReferenceHandler[domain.Gift](giftUC, "regalos", log),
		Terms:        handler.NewReferenceHandler[domain.TermsAndConditions](termsUC, "terminos_condiciones", log),
		Blog:         handler.NewBlogHandler(blogUC, log),
		Leads:        handler.NewLeadHandler(leadUC, log),
		Uploads:      handler.NewUploadHandler(uploadUC, log),
	}

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, handlers)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go server.CleanupLimiter(bgCtx, time.Minute)

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")
	stopBackground()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
