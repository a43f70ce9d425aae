package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkolesnikov/tasklist/internal/dbx"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/tasks"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Tasks(db dbx.DBTX) tasks.Repository
	Users(db dbx.DBTX) users.Repository
}
