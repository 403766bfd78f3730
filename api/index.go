package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/handler"
	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository"
	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/core/services"
	"github.com/wadjakorntonsri/seo-redirects/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, JSON: true})
	if err != nil {
		log = zap.NewNop()
	}

	// Note: on Vercel the local file store is ephemeral; use a remote STORAGE_DRIVER
	repo, err := repository.Open(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	service := services.NewRedirectService(repo, cfg.BaseURL, services.WithLogger(log))
	mux = handler.NewRouter(cfg, service, log)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
