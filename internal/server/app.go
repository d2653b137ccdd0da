// Package server initializes and runs the ContactDesk backend: storage,
// business services, the websocket hub, and the HTTP endpoint, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/contactdesk/internal/logging"
	"github.com/dmitrijs2005/contactdesk/internal/server/config"
	"github.com/dmitrijs2005/contactdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/contactdesk/internal/server/services"
	"github.com/dmitrijs2005/contactdesk/internal/server/shared/db"
	"github.com/dmitrijs2005/contactdesk/internal/server/ws"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var (
		repos db.RepositoryManager
		err   error
	)
	if cfg.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN configured, using in-memory storage")
		repos = db.NewInMemoryRepositoryManager()
	} else {
		repos, err = db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	hub := ws.NewHub(logger)
	userService := services.NewUserService(repos, []byte(cfg.SecretKey), cfg.TokenTTL)
	contactService := services.NewContactService(repos, hub)

	handler := httpapi.NewHandler(userService, contactService, logger)
	router := httpapi.NewRouter(handler, []byte(cfg.SecretKey), hub)

	return &App{
		config: cfg,
		logger: logger,
		repos:  repos,
		server: &http.Server{Addr: cfg.Addr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	if conn := app.repos.Conn(); conn != nil {
		if err := conn.Close(); err != nil {
			return fmt.Errorf("db close error: %w", err)
		}
	}

	return nil
}
