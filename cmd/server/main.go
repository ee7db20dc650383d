package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/marketpos/backend/internal/api"
	"github.com/marketpos/backend/internal/config"
	"github.com/marketpos/backend/internal/service"
	"github.com/marketpos/backend/internal/storage/sqlite"
	"github.com/marketpos/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	server := api.NewServer(
		service.NewCatalogService(store),
		service.NewInvoiceService(store),
		service.NewAllocationService(store),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.Router(cfg.Server.CORSOrigins),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("Server starting", "app", cfg.App.Name, "address", cfg.Addr())
	if err := httpServer.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
