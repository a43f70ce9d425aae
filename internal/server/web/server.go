// Package web exposes the task-list application over HTTP. Handlers accept
// classic HTML form submissions (application/x-www-form-urlencoded) and
// respond with JSON view models, so any front end can render them.
package web

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/logging"
	"github.com/dkolesnikov/tasklist/internal/server/handlers"
	"github.com/dkolesnikov/tasklist/internal/server/listing"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/repomanager"
	"github.com/dkolesnikov/tasklist/internal/server/security"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address       string
	logger        logging.Logger
	db            *sql.DB
	rm            repomanager.RepositoryManager
	tasks         *handlers.TaskHandler
	users         *handlers.UserHandler
	queries       *listing.Queries
	hasher        *security.PasswordHasher
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewServer(
	address string,
	logger logging.Logger,
	db *sql.DB,
	rm repomanager.RepositoryManager,
	tasks *handlers.TaskHandler,
	users *handlers.UserHandler,
	queries *listing.Queries,
	hasher *security.PasswordHasher,
	secretKey string,
	tokenValidity time.Duration,
) *Server {
	return &Server{
		address:       address,
		logger:        logger.With("module", "web_server"),
		db:            db,
		rm:            rm,
		tasks:         tasks,
		users:         users,
		queries:       queries,
		hasher:        hasher,
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(s.requestID())
	app.Use(s.authenticate())

	app.Post("/login", s.login)
	app.Post("/logout", s.logout)

	tasks := app.Group("/tasks", s.requireUser())
	tasks.Get("/", s.taskList)
	tasks.Post("/", s.taskCreate)
	tasks.Get("/:id/edit", s.taskEditPage)
	tasks.Post("/:id/edit", s.taskEdit)
	tasks.Post("/:id/toggle", s.taskToggle)
	tasks.Post("/:id/delete", s.taskDelete)

	admin := app.Group("/admin/users", s.requireUser(), s.requireAdmin())
	admin.Get("/", s.userList)
	admin.Post("/", s.userCreate)
	admin.Get("/:id/edit", s.userEditPage)
	admin.Post("/:id/edit", s.userEdit)
	admin.Post("/:id/delete", s.userDelete)

	return app
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	app := s.newApp()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return app.Listen(s.address)
}
