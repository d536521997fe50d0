package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/config"
	"github.com/tour-microservice/internal/delivery/http/handler"
	"github.com/tour-microservice/internal/delivery/http/middleware"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/ratelimit"
	"github.com/tour-microservice/internal/pkg/utils"
)

// Handlers - обработчики, которые регистрирует сервер
type Handlers struct {
	Health       *handler.HealthHandler
	Tours        *handler.TourHandler
	Airlines     *handler.ReferenceHandler[domain.Airline]
	Destinations *handler.ReferenceHandler[domain.Destination]
	Gifts        *handler.ReferenceHandler[domain.Gift]
	Terms        *handler.ReferenceHandler[domain.TermsAndConditions]
	Blog         *handler.BlogHandler
	Leads        *handler.LeadHandler
	Uploads      *handler.UploadHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	limiter  *ratelimit.KeyedLimiter
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Tour Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit(cfg.Storage.MaxUploadSize),
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		limiter: ratelimit.NewKeyedLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.Burst,
		}),
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// bodyLimit оставляет запас под multipart-обёртку файла
func bodyLimit(maxUpload int64) int {
	const minLimit = 4 * 1024 * 1024
	limit := int(maxUpload) + 1024*1024
	if limit < minLimit {
		return minLimit
	}
	return limit
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.Locale())
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	api.Get("/health", h.Health.Health)

	// Витрина
	api.Get("/tours", h.Tours.ListTours)
	api.Get("/tours/:slug", h.Tours.GetTour)
	api.Get("/destinations", h.Destinations.List)

	api.Get("/blog/posts", h.Blog.ListPosts)
	api.Get("/blog/posts/:slug", h.Blog.GetPost)
	api.Get("/blog/tags", h.Blog.ListTags)

	limited := middleware.RateLimit(s.limiter)
	api.Post("/blog/posts/:slug/comments", limited, h.Blog.AddComment)
	api.Post("/contact", limited, h.Leads.Contact)

	// Админка
	admin := api.Group("/admin", middleware.RequireAdmin(s.config.Auth.JWTSecret, s.config.Auth.AdminRole, s.logger))

	admin.Get("/tours", h.Tours.AdminListTours)
	admin.Get("/tours/:id", h.Tours.AdminGetTour)
	admin.Post("/tours", h.Tours.CreateTour)
	admin.Put("/tours/:id", h.Tours.UpdateTour)
	admin.Delete("/tours/:id", h.Tours.DeleteTour)

	registerReference(admin.Group("/airlines"), h.Airlines)
	registerReference(admin.Group("/destinations"), h.Destinations)
	registerReference(admin.Group("/gifts"), h.Gifts)
	registerReference(admin.Group("/terms"), h.Terms)

	admin.Get("/blog/posts", h.Blog.AdminListPosts)
	admin.Post("/blog/posts", h.Blog.CreatePost)
	admin.Get("/blog/posts/:id", h.Blog.AdminGetPost)
	admin.Put("/blog/posts/:id", h.Blog.UpdatePost)
	admin.Delete("/blog/posts/:id", h.Blog.DeletePost)
	admin.Get("/blog/posts/:id/comments", h.Blog.ListComments)
	admin.Put("/blog/comments/:id/approve", h.Blog.ApproveComment)
	admin.Delete("/blog/comments/:id", h.Blog.DeleteComment)

	admin.Get("/leads", h.Leads.ListLeads)
	admin.Post("/uploads", h.Uploads.Upload)
}

func registerReference[T domain.Reference](r fiber.Router, h *handler.ReferenceHandler[T]) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// CleanupLimiter удаляет неактивные IP из лимитера, пока ctx не отменён
func (s *Server) CleanupLimiter(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Cleanup(); n > 0 {
				s.logger.Debug("Rate limiter cleanup", zap.Int("removed", n))
			}
		}
	}
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не отрендеренные обработчиками (404 маршрута, паника, лимит тела)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return utils.SendError(c, errors.ErrNotFound.WithMessage("Route not found"))
			case fiber.StatusRequestEntityTooLarge:
				return utils.SendError(c, errors.ErrPayloadTooLarge)
			case fiber.StatusMethodNotAllowed:
				return utils.SendError(c, errors.New("METHOD_NOT_ALLOWED", fe.Message, fe.Code))
			}
			if fe.Code < fiber.StatusInternalServerError {
				return utils.SendError(c, errors.New("HTTP_ERROR", fe.Message, fe.Code))
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, err)
	}
}
