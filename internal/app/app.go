package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/handler"
	"github.com/wartimekillers/snapxchange/internal/metrics"
	"github.com/wartimekillers/snapxchange/internal/middleware"
	"github.com/wartimekillers/snapxchange/internal/order"
	"github.com/wartimekillers/snapxchange/internal/pricing"
	"github.com/wartimekillers/snapxchange/internal/rates"
	"github.com/wartimekillers/snapxchange/internal/service"
	"github.com/wartimekillers/snapxchange/pkg/cache"
)

type Application struct {
	config  *config.Config
	router  *gin.Engine
	logger  *zap.Logger
	redis   *cache.RedisClient
	metrics *metrics.Metrics
	server  *http.Server
}

func New(cfg *config.Config) *Application {
	logger := NewLogger(&cfg.Logging)
	m := metrics.New()

	exchangeService, redisClient := NewExchangeService(cfg, m, logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		logger.Info("Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("Running in DEBUG mode")
	}
	router := gin.New()
	currencyHandler := handler.NewCurrencyHandler(exchangeService)
	app := &Application{
		config:  cfg,
		router:  router,
		logger:  logger,
		redis:   redisClient,
		metrics: m,
	}
	app.setupMiddleware()
	app.setupRouter(currencyHandler)
	logger.Info("Application initialized",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Bool("redis_connected", redisClient != nil),
	)
	return app
}

// NewExchangeService собирает fetcher, кеш и сервис. Используется и сервером, и CLI.
// Без Redis сервис работает напрямую с API курсов.
func NewExchangeService(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*service.ExchangeService, *cache.RedisClient) {
	opts := []rates.Option{rates.WithMetrics(m)}

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis, logger)
		if err != nil {
			logger.Error("Failed to create Redis client", zap.Error(err))
		} else {
			redisClient = client
			opts = append(opts, rates.WithCache(client))
		}
	}

	fetcher := rates.NewFetcher(cfg.API, logger, opts...)
	svc := service.NewExchangeService(
		fetcher,
		pricing.NewPricer(cfg.Pricing),
		order.NewBuilder(cfg.Order),
		m,
		logger,
	)
	return svc, redisClient
}

// NewLogger - production (json) или development логгер нужного уровня
func NewLogger(cfg *config.LoggingConfig) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.Format == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	switch cfg.Level {
	case "debug":
		logger = logger.WithOptions(zap.IncreaseLevel(zap.DebugLevel))
	case "info":
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	case "warn":
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	case "error":
		logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	}
	return logger
}
func (a *Application) setupMiddleware() {
	a.router.Use(middleware.RecoveryMiddleware(a.logger))
	a.router.Use(middleware.LoggingMiddleware(a.logger, a.metrics))
	a.router.Use(middleware.CORSMiddleware())
	a.logger.Debug("Middleware configured")
}
func (a *Application) setupRouter(currencyHandler *handler.CurrencyHandler) {
	a.router.GET("/health", handler.HealthCheck)
	a.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{})))
	apiV1 := a.router.Group("/api/v1")
	apiV1.GET("/rates", currencyHandler.Rates)
	apiV1.GET("/convert", currencyHandler.Convert)
	apiV1.GET("/order", currencyHandler.Order)
	apiV1.GET("/order/redirect", currencyHandler.OrderRedirect)
	a.logger.Debug("Routes configured",
		zap.String("health", "GET /health"),
		zap.String("rates", "GET /api/v1/rates"),
		zap.String("convert", "GET /api/v1/convert"),
		zap.String("order", "GET /api/v1/order"),
	)
}

// Handler - роутер для тестов и встраивания
func (a *Application) Handler() http.Handler {
	return a.router
}

func (a *Application) Run() error {
	a.server = &http.Server{
		Addr:         a.config.Server.Addr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	// Канал для ошибки сервера
	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("🚀 Server starting",
			zap.String("address", a.server.Addr),
			zap.String("mode", a.config.Server.Mode),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Ждем либо ошибку сервера, либо сигнал shutdown
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		a.logger.Info("🛑 Received shutdown signal", zap.String("signal", sig.String()))
		a.Shutdown()
		return nil
	}
}

// Shutdown корректно останавливает сервер
func (a *Application) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}

	if a.redis != nil {
		a.redis.Close()
	}

	a.logger.Info("✅ Server stopped gracefully")
	a.logger.Sync()
}
