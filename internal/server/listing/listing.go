// Package listing is the read side of the service: flattened task and user
// rows for list screens, built with squirrel and scanned through sqlx.
// It never returns entities, only presentation rows.
package listing

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// ErrUnknownFilter marks a status filter value outside the accepted set.
var ErrUnknownFilter = errors.New("unknown status filter")

// Task status filter values accepted from the query string.
const (
	StatusDone   = "done"
	StatusUndone = "undone"
)

// TaskRow is one task as shown on the list screen. Author and LastEditor
// are usernames and stay nil for anonymous tasks and never-edited tasks.
type TaskRow struct {
	ID         int64   `db:"id" json:"id"`
	Title      string  `db:"title" json:"title"`
	Content    string  `db:"content" json:"content"`
	IsDone     bool    `db:"is_done" json:"is_done"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
	UpdatedAt  string  `db:"updated_at" json:"updated_at"`
	Author     *string `db:"author" json:"author"`
	LastEditor *string `db:"last_editor" json:"last_editor"`
}

// UserRow is one account as shown on the admin list screen.
type UserRow struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

// TaskFilter narrows the task list. Status is "done", "undone" or empty for
// no filtering.
type TaskFilter struct {
	Status string
}

type Queries struct {
	db *sqlx.DB
}

func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{db: db}
}

// Tasks returns the task list, newest first.
func (q *Queries) Tasks(ctx context.Context, filter TaskFilter) ([]TaskRow, error) {
	builder := sq.Select(
		"t.id", "t.title", "t.content", "t.is_done",
		"to_char(t.created_at, 'YYYY-MM-DD HH24:MI:SS') AS created_at",
		"to_char(t.updated_at, 'YYYY-MM-DD HH24:MI:SS') AS updated_at",
		"a.username AS author",
		"e.username AS last_editor",
	).
		From("tasks t").
		LeftJoin("users a ON a.id = t.author_id").
		LeftJoin("users e ON e.id = t.last_editor_id").
		OrderBy("t.created_at DESC, t.id DESC").
		PlaceholderFormat(sq.Dollar)

	switch filter.Status {
	case StatusDone:
		builder = builder.Where(sq.Eq{"t.is_done": true})
	case StatusUndone:
		builder = builder.Where(sq.Eq{"t.is_done": false})
	case "":
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFilter, filter.Status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building task list query: %w", err)
	}

	rows := []TaskRow{}
	if err := q.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rows, nil
}

// Users returns all accounts ordered by username.
func (q *Queries) Users(ctx context.Context) ([]UserRow, error) {
	query, args, err := sq.Select("id", "username", "email").
		From("users").
		OrderBy("username").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user list query: %w", err)
	}

	rows := []UserRow{}
	if err := q.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rows, nil
}
