package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/handler"
	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository"
	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/core/services"
	"github.com/wadjakorntonsri/seo-redirects/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		JSON:       cfg.IsProduction(),
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("logger config unusable, falling back to zap production logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Repository
	repo, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer repo.Close()

	// Initialize Service
	service := services.NewRedirectService(repo, cfg.BaseURL, services.WithLogger(log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(cfg, service, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("storage", cfg.StorageDriver),
			zap.String("base_url", cfg.BaseURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
