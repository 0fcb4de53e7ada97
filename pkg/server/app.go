package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"InvestLens/internal/domain/repository"
	"InvestLens/pkg/cache"
	"InvestLens/pkg/config"
	xhttp "InvestLens/pkg/http"
	applogger "InvestLens/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP server, cache, and the
// optional event publisher.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	cache      cache.Service
	publisher  repository.EventPublisher
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	cacheService cache.Service,
	publisher repository.EventPublisher,
	log *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		handler:   handler,
		cache:     cacheService,
		publisher: publisher,
		logger:    log,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	// When events are on, ship aggregated error logs through the same
	// publisher.
	if a.publisher != nil {
		if p, ok := a.publisher.(applogger.Publisher); ok {
			a.logger.AddCollector(&applogger.CollectionConfig{
				TimeInterval:   time.Minute,
				CountThreshold: 100,
				Topic:          a.cfg.Events.Topic + ".errors",
				Publisher:      p,
			})
		}
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.logger.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("event publisher close error", applogger.Error(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
