package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/dbx"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

// uniqueViolation is the Postgres error code raised when the username or
// email unique index rejects a row.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (created_at, updated_at, username, password_hash, email, roles)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.CreatedAt, user.UpdatedAt, user.Username, user.PasswordHash,
		user.Email, strings.Join(user.Roles, ",")).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {

	query :=
		`UPDATE users
		 SET updated_at = $1, username = $2, email = $3, roles = $4
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.UpdatedAt, user.Username, user.Email, strings.Join(user.Roles, ","), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {

	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, created_at, updated_at, username, password_hash, email, roles FROM users
		 WHERE id = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, created_at, updated_at, username, password_hash, email, roles FROM users
		 WHERE username = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var roles string

	err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt,
		&user.Username, &user.PasswordHash, &user.Email, &roles)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Roles = strings.Split(roles, ",")
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
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
