package main

// @title Tourism POI Service API
// @version 1.0.0
// @description Сервис для работы с точками интереса DATAtourisme. Предоставляет API для поиска POI в радиусе, агрегации точек с совпадающими координатами в кластерные фичи, навигации аватара по маршруту OSRM и извлечения геометрии треков.
// @description
// @description Основные возможности:
// @description - Поиск нормализованных POI в радиусе вокруг точки
// @description - Статистика пространственного индекса без загрузки записей
// @description - Кластерные GeoJSON-фичи для визуализации на карте
// @description - Симуляция движения аватара к цели со сглаживанием курса
// @description - Извлечение линии маршрута трека из его записи

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tourism-poi-service/docs"
	"github.com/tourism-poi-service/internal/config"
	httpDelivery "github.com/tourism-poi-service/internal/delivery/http"
	"github.com/tourism-poi-service/internal/delivery/http/handler"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/infrastructure/mapsurface"
	"github.com/tourism-poi-service/internal/infrastructure/osrm"
	"github.com/tourism-poi-service/internal/pkg/logger"
	"github.com/tourism-poi-service/internal/repository/cache"
	"github.com/tourism-poi-service/internal/repository/datatourisme"
	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/worker"
	"github.com/tourism-poi-service/internal/worker/navigation"
	"go.uber.org/zap"
)

// defaultMapCenter - стартовая позиция камеры до первой навигации (центр Франции)
var defaultMapCenter = domain.Coordinate{Lng: 2.2137, Lat: 46.2276}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Tourism POI Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis
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

	// 4. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 5. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	indexRepo := datatourisme.NewIndexRepository(&cfg.POI, cacheRepo, cfg.Cache.IndexCacheTTL, log)
	recordRepo := datatourisme.NewRecordRepository(&cfg.POI, cacheRepo, cfg.Cache.RecordCacheTTL, log)
	routingRepo := osrm.NewClient(&cfg.Routing, log)

	surface := mapsurface.NewBuffer(defaultMapCenter, 6, cfg.Cluster.MaxZoom, log)

	log.Info("Repositories initialized")

	// 6. Initialize Use Cases
	indexCache := usecase.NewIndexCache(indexRepo, log)

	poiUC := usecase.NewPOIUseCase(
		indexCache,
		recordRepo,
		&cfg.POI,
		log,
	)

	clusterUC := usecase.NewClusterUseCase(&cfg.Cluster, log)

	trekUC := usecase.NewTrekUseCase(poiUC, log)

	simulator := usecase.NewNavigationSimulator(
		routingRepo,
		surface,
		&cfg.Navigation,
		log,
	)

	log.Info("Use cases initialized")

	// 7. Initialize workers
	workerManager := worker.NewManager(log)
	workerManager.Register(navigation.NewMovementWorker(simulator, cfg.Navigation.UpdateInterval, log))

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Workers started")

	// 8. Initialize HTTP Handlers
	poiHandler := handler.NewPOIHandler(poiUC, log)
	clusterHandler := handler.NewClusterHandler(poiUC, clusterUC, log)
	navigationHandler := handler.NewNavigationHandler(simulator, log)
	trekHandler := handler.NewTrekHandler(trekUC, log)
	mapHandler := handler.NewMapHandler(surface, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		poiHandler,
		clusterHandler,
		navigationHandler,
		trekHandler,
		mapHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop workers
	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
