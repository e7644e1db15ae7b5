package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"huddle/internal/analysis"
	"huddle/internal/config"
	"huddle/internal/constants"
	"huddle/internal/dedup"
	"huddle/internal/directory"
	"huddle/internal/insights"
	"huddle/internal/logger"
	"huddle/internal/store"
	"huddle/internal/summarizer"
	"huddle/pkg/bootstrap"
	"huddle/pkg/health"
	"huddle/pkg/metrics"
	"huddle/pkg/middleware"
	"huddle/pkg/ratelimit"
)

type App struct {
	*bootstrap.Base
	redisConnector *bootstrap.RedisConnector
	redis          *redis.Client
	window         *store.Window
	service        *insights.Service
	server         *http.Server
	router         *gin.Engine
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	if sugaredLogger, ok := log.(*logger.SugaredLogger); ok {
		sugaredLogger.SetServiceName("insights-service")
	}
	return &App{
		Base:           bootstrap.NewBase(cfg, log),
		redisConnector: bootstrap.NewRedisConnector(cfg, log),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.initRedis(ctx); err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}

	if err := a.InitBroker("insights-service"); err != nil {
		return fmt.Errorf("failed to initialize broker: %w", err)
	}

	a.initService(ctx)

	metrics.RegisterAnalysisMetrics()
	metrics.RegisterBrokerMetrics()
	if a.redis != nil {
		metrics.RegisterDedupMetrics()
	}
	if a.Config.Directory.BaseURL != "" {
		metrics.RegisterDirectoryMetrics()
	}
	if a.Config.CircuitBreaker.Enabled {
		metrics.RegisterCircuitBreakerMetrics()
	}

	if err := a.initRouter(); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	if err := a.initServer(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	return nil
}

func (a *App) initRedis(ctx context.Context) error {
	rdb, err := a.redisConnector.InitRedis(ctx)
	if err != nil {
		return err
	}
	a.redis = rdb
	return nil
}

func (a *App) initService(ctx context.Context) {
	var dedupSvc *dedup.Service
	if a.redis != nil {
		repo := dedup.NewRepository(a.redis)
		if a.Config.CircuitBreaker.Enabled {
			repo = dedup.NewCircuitBreakerRepository(repo, a.Config.CircuitBreaker)
		}
		dedupSvc = dedup.NewService(repo, a.Config.Deduplication, a.Logger)
	} else {
		a.Logger.WarnwCtx(ctx, "Redis not configured, deduplication disabled")
	}

	var provider directory.Provider
	if a.Config.Directory.BaseURL != "" {
		provider = directory.NewAPIProvider(a.Config.Directory)
		if a.redis != nil {
			provider = directory.NewCacheProvider(a.redis, provider, a.Config.Directory.CacheTTLSeconds)
		}
		if a.Config.CircuitBreaker.Enabled {
			provider = directory.NewCircuitBreakerProvider(provider, a.Config.CircuitBreaker)
		}
	}
	resolver := directory.NewResolver(provider, a.Logger)

	var summ analysis.Summarizer
	if a.Config.Summarizer.Enabled && a.Config.Summarizer.APIKey != "" {
		summ = summarizer.NewOpenAISummarizer(a.Config.Summarizer, a.Logger)
		a.Logger.InfowCtx(ctx, "Summarizer enabled", "model", a.Config.Summarizer.Model)
	}

	engine := analysis.NewEngine(analysis.DefaultTaxonomy(), resolver, summ, a.Logger)
	a.window = store.NewWindow(a.Config.Analysis.WindowSize)
	a.service = insights.NewService(a.window, engine, dedupSvc, a.Config.Analysis, a.Logger)
}

func (a *App) initRouter() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(a.Logger))
	router.Use(middleware.LoggerMiddleware(a.Logger))
	router.Use(middleware.RequestIDMiddleware())

	if a.Config.RateLimit.Enabled {
		rateLimitConfig := ratelimit.RateLimitConfig{
			RPS:             a.Config.RateLimit.RPS,
			Burst:           a.Config.RateLimit.Burst,
			CleanupInterval: time.Duration(a.Config.RateLimit.CleanupInterval) * time.Second,
			MaxAge:          time.Duration(a.Config.RateLimit.MaxAge) * time.Second,
		}
		router.Use(ratelimit.RateLimitMiddleware(rateLimitConfig))
		a.Logger.InfowCtx(context.Background(), "Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
		metrics.RegisterRateLimitMetrics()
	}

	handler := insights.NewHandler(a.service, a.Logger)
	handler.RegisterRoutes(router)

	healthRegistry := health.NewCheckerRegistry()
	if a.redis != nil {
		healthRegistry.Register(health.NewRedisChecker(a.redis))
	}

	router.GET("/health", func(c *gin.Context) {
		h := healthRegistry.Check(c.Request.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.router = router
	return nil
}

func (a *App) initServer() error {
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler: a.router,
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfowCtx(ctx, "HTTP server starting", "port", a.Config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	topic := a.Config.Broker.Kafka.MessageTopic
	if topic == "" {
		topic = constants.DefaultMessageTopic
	}

	g.Go(func() error {
		a.Logger.InfowCtx(gCtx, "Starting message consumer", "topic", topic)
		return a.Consumer.Consume(gCtx, topic, a.service.HandleEvent)
	})

	// Unblock ListenAndServe once the group context is canceled, otherwise
	// g.Wait never returns.
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	runErr := g.Wait()

	if err := a.shutdown(ctx); err != nil {
		if runErr == nil || runErr == context.Canceled {
			return err
		}
	}
	return runErr
}

func (a *App) shutdown(ctx context.Context) error {
	return a.Shutdown(ctx, func(ctx context.Context) []error {
		return a.redisConnector.ShutdownRedis(a.redis)
	})
}
