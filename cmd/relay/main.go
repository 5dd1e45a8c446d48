package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/issafronov/playlistrelay/internal/app/config"
	"github.com/issafronov/playlistrelay/internal/app/handlers"
	"github.com/issafronov/playlistrelay/internal/app/router"
	"github.com/issafronov/playlistrelay/internal/app/service"
	"github.com/issafronov/playlistrelay/internal/app/youtube"
	"github.com/issafronov/playlistrelay/internal/middleware/logger"
	"github.com/issafronov/playlistrelay/internal/pprof"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := runServer(); err != nil {
		panic(err)
	}
}

// Router собирает маршрутизатор со всеми зависимостями из конфигурации
func Router(cfg *config.Config) (chi.Router, error) {
	client := youtube.NewClient(cfg.YouTubeBaseURL, cfg.UpstreamTimeout)
	svc := service.NewService(client, cfg.YouTubeAPIKey)
	h, err := handlers.NewHandler(svc)
	if err != nil {
		return nil, err
	}
	return router.New(h), nil
}

func runServer() error {
	cfg := config.LoadConfig()

	if err := logger.Initialize(cfg.LoggerLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	if cfg.YouTubeAPIKey == "" {
		logger.Log.Warn("YOUTUBE_API_KEY is not set, requests will fail until it is configured")
	}

	if cfg.PprofAddress != "" {
		ps, err := pprof.Start(cfg.PprofAddress)
		if err != nil {
			return err
		}
		defer ps.Shutdown(context.Background())
	}

	r, err := Router(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, &http.Server{Addr: cfg.Address(), Handler: r})
}

// serve блокируется до ошибки сервера или отмены ctx
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server is running", zap.String("address", "http://"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
