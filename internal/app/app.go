package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/config"
	"github.com/yungbote/mealplan-gateway/internal/http"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	Metrics  *observability.Metrics
	Clients  Clients
	Services Services
	Router   *gin.Engine

	otelShutdown func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	logMode := "development"
	if cfg.Env == "production" || cfg.Env == "prod" {
		logMode = "production"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
		SampleRatio: cfg.Tracing.SampleRatio,
	})

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	clientset, err := wireClients(log, cfg, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}
	serviceset := wireServices(log, cfg, clientset, metrics)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Metrics:      metrics,
		Clients:      clientset,
		Services:     serviceset,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := http.NewServer(a.Log, http.ServerConfig{
		Addr:              a.Cfg.HTTP.Addr,
		ReadHeaderTimeout: a.Cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       a.Cfg.HTTP.IdleTimeout.Duration,
		ShutdownTimeout:   a.Cfg.HTTP.ShutdownTimeout.Duration,
	}, a.Router)
	return srv.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
