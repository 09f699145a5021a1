package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cities-geo-service/internal/config"
	"github.com/cities-geo-service/internal/delivery/http/handler"
	"github.com/cities-geo-service/internal/delivery/http/middleware"
	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	cityHandler   *handler.CityHandler
	areaHandler   *handler.AreaHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	cityHandler *handler.CityHandler,
	areaHandler *handler.AreaHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Cities Geo Service",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		cityHandler:   cityHandler,
		areaHandler:   areaHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (тесты через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.app.Get("/health", s.healthHandler.Health)

	// Catalog
	s.app.Get("/cities-by-tag", middleware.BearerAuth(s.config.Auth.Token), s.cityHandler.CitiesByTag)
	s.app.Get("/distance", s.cityHandler.Distance)
	s.app.Get("/all-cities", s.cityHandler.AllCities)

	// Radius search
	area := []fiber.Handler{s.areaHandler.Submit}
	if s.config.RateLimitEnabled() {
		limiter := rate.NewLimiter(rate.Limit(s.config.RateLimit.PerSecond), s.config.RateLimit.Burst)
		area = append([]fiber.Handler{middleware.RateLimit(limiter)}, area...)
	}
	s.app.Get("/area", area...)
	s.app.Get("/area-result/:jobID", s.areaHandler.Result)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, 405, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: e.Message,
				Code:  "HTTP_ERROR",
			})
		}

		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
