package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/delivery/http/handler"
	"github.com/tourism-poi-service/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	poiHandler        *handler.POIHandler
	clusterHandler    *handler.ClusterHandler
	navigationHandler *handler.NavigationHandler
	trekHandler       *handler.TrekHandler
	mapHandler        *handler.MapHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	poiHandler *handler.POIHandler,
	clusterHandler *handler.ClusterHandler,
	navigationHandler *handler.NavigationHandler,
	trekHandler *handler.TrekHandler,
	mapHandler *handler.MapHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Tourism POI Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		poiHandler:        poiHandler,
		clusterHandler:    clusterHandler,
		navigationHandler: navigationHandler,
		trekHandler:       trekHandler,
		mapHandler:        mapHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
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

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// POI routes
	api.Post("/radius/poi", s.poiHandler.SearchByRadius)
	api.Post("/poi/all", s.poiHandler.LoadAll)
	api.Get("/poi/stats", s.poiHandler.GetStats)

	// Cluster routes
	api.Post("/clusters/features", s.clusterHandler.GetFeatures)

	// Navigation routes
	api.Post("/navigation/navigate", s.navigationHandler.Navigate)
	api.Post("/navigation/stop", s.navigationHandler.Stop)
	api.Get("/navigation/state", s.navigationHandler.GetState)

	// Trek routes
	api.Post("/trek/route", s.trekHandler.GetRoute)

	// Map surface state
	api.Get("/map/state", s.mapHandler.GetState)
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
