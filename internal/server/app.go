// Package server assembles the task-list application: configuration,
// database, repositories, managers, and the HTTP front end, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/dkolesnikov/tasklist/internal/logging"
	"github.com/dkolesnikov/tasklist/internal/server/config"
	"github.com/dkolesnikov/tasklist/internal/server/handlers"
	"github.com/dkolesnikov/tasklist/internal/server/listing"
	"github.com/dkolesnikov/tasklist/internal/server/manager"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/repomanager"
	"github.com/dkolesnikov/tasklist/internal/server/security"
	"github.com/dkolesnikov/tasklist/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	web    *web.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	queries := listing.NewQueries(sqlx.NewDb(db, "pgx"))

	taskManager := manager.NewTaskManager(rm.Tasks(db), logger)
	userManager := manager.NewUserManager(db, rm, logger)

	srv := web.NewServer(
		cfg.EndpointAddrHTTP,
		logger,
		db,
		rm,
		handlers.NewTaskHandler(taskManager),
		handlers.NewUserHandler(userManager, hasher),
		queries,
		hasher,
		cfg.SecretKey,
		cfg.AccessTokenValidityDuration,
	)

	return &App{config: cfg, logger: logger, db: db, web: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
