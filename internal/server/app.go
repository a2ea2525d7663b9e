// Package server initializes and runs the task manager API: it opens the
// database, applies migrations, wires services into the HTTP server and
// shuts everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskmanager/internal/buildinfo"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/config"
	"github.com/dmitrijs2005/taskmanager/internal/server/httpserver"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskmanager/internal/server/services"
)

// Seams for tests.
var (
	openDB               = repomanager.OpenPostgres
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

var logOutput io.Writer = os.Stdout

type App struct {
	config *config.Config
	logger logging.Logger
}

// NewApp validates c and builds the configured logger.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(c.Logger, logOutput)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "version", buildinfo.Version())
	app.initSignalHandler(cancelFunc)

	db, err := openDB(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm, err := newRepositoryManager(db)
	if err != nil {
		return fmt.Errorf("repository manager init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	srv := app.newHTTPServer(db, rm)
	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) newHTTPServer(db *sql.DB, rm repomanager.RepositoryManager) *httpserver.Server {
	as := services.NewAuthService(db, rm, app.config)
	us := services.NewUserService(db, rm, as)
	ts := services.NewTaskService(db, rm)

	return httpserver.NewServer(httpserver.Options{
		Address:         app.config.EndpointAddrHTTP,
		CORSOrigins:     app.config.CORSOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, as, us, ts, db)
}
