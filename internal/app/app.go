package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"resultguard/internal/adapter/web"
	"resultguard/internal/config"
	"resultguard/internal/platform/logger"
	"resultguard/internal/platform/metrics"
	"resultguard/internal/translate"
)

// App wires application components.
type App struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new App instance and loads configuration.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Env:          cfg.Env,
		ConsoleLevel: cfg.Log.ConsoleLevel,
		FileLevel:    cfg.Log.FileLevel,
		File:         cfg.Log.File,
		App:          "resultguard",
	})
	return &App{cfg: cfg, log: log, metrics: metrics.New(cfg.Metrics.Namespace)}, nil
}

// Router builds the gin engine with the failure advice installed.
func (a *App) Router() *gin.Engine {
	if a.cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	advice := web.NewAdvice(
		translate.New(translate.NewSlogLogger(a.log)),
		web.WithMetrics(a.metrics),
		web.WithMirrorStatus(a.cfg.HTTP.MirrorStatus),
	)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(web.RequestID(), advice.Middleware(), web.LimitBody(a.cfg.HTTP.MaxBodyBytes))
	r.NoRoute(advice.NoRoute())
	r.NoMethod(advice.NoMethod())

	r.GET("/healthz", func(c *gin.Context) { web.OK(c, gin.H{"status": "up"}) })
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	return r
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	defer func() { _ = logger.Close(a.log) }()
	a.log.Info("starting", slog.String("addr", a.cfg.HTTP.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		a.log.Error("server", slog.Any("err", err))
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
