package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/dbx"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (created_at, updated_at, title, content, is_done, author_id)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.CreatedAt, task.UpdatedAt, task.Title, task.Content,
		task.IsDone, refID(task.Author)).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {

	query :=
		`UPDATE tasks
		 SET updated_at = $1, title = $2, content = $3, is_done = $4, last_editor_id = $5
		 WHERE id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		task.UpdatedAt, task.Title, task.Content, task.IsDone,
		refID(task.LastEditor), task.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	query := `DELETE FROM tasks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query :=
		`SELECT t.id, t.created_at, t.updated_at, t.title, t.content, t.is_done,
		        t.author_id, a.username, t.last_editor_id, e.username
		 FROM tasks t
		 LEFT JOIN users a ON a.id = t.author_id
		 LEFT JOIN users e ON e.id = t.last_editor_id
		 WHERE t.id = $1
		 `

	task := &models.Task{}
	var (
		authorID, editorID             sql.NullInt64
		authorUsername, editorUsername sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.CreatedAt, &task.UpdatedAt, &task.Title, &task.Content,
		&task.IsDone, &authorID, &authorUsername, &editorID, &editorUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if authorID.Valid {
		task.Author = &models.UserRef{ID: authorID.Int64, Username: authorUsername.String}
	}
	if editorID.Valid {
		task.LastEditor = &models.UserRef{ID: editorID.Int64, Username: editorUsername.String}
	}

	return task, nil
}

// refID maps an optional user reference to a nullable FK value.
func refID(ref *models.UserRef) any {
	if ref == nil {
		return nil
	}
	return ref.ID
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
