// Package server initializes and runs the hashing service: it connects the
// record store, wires repositories into services, and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shastore/shastore/internal/logging"
	"github.com/shastore/shastore/internal/server/config"
	"github.com/shastore/shastore/internal/server/httpapi"
	"github.com/shastore/shastore/internal/server/services"
	"github.com/shastore/shastore/internal/server/storage"
	"github.com/shastore/shastore/internal/server/ws"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.RepositoryManager
	server *httpapi.Server
}

// NewApp builds the full object graph. The store is constructed here and
// injected downward; nothing opens connections at package init.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := storage.NewMongoRepositoryManager(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("db bootstrap error: %w", err)
	}

	hashSvc := services.NewHashService(store.Hashes())
	userSvc := services.NewUserService(store.Users(), cfg)

	handler := httpapi.NewHandler(hashSvc, userSvc, ws.NewHub(), logger)
	srv := httpapi.NewServer(cfg, logger, httpapi.NewRouter(logger, handler))

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
		server: srv,
	}, nil
}

// Run blocks until the server stops, then releases the store.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "starting app", "addr", app.config.Addr)

	err := app.server.Run(ctx)

	if closeErr := app.store.Close(context.Background()); closeErr != nil {
		app.logger.Error(ctx, "closing record store", "error", closeErr.Error())
	}

	return err
}
