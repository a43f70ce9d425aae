package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(created_at,\s*updated_at,\s*username,\s*password_hash,\s*email,\s*roles\)`

	u := models.NewUser("alice", "alice@example.com")
	u.PasswordHash = "hash"

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1))
	mock.ExpectQuery(q).
		WithArgs(u.CreatedAt, u.UpdatedAt, "alice", "hash", "alice@example.com", models.RoleUser).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), models.NewUser("alice", "alice@example.com"))
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), models.NewUser("alice", "alice@example.com"))
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := models.NewUser("alice", "alice@example.com")
	u.ID = 1
	u.SetRoles([]string{models.RoleUser, models.RoleAdmin})

	q := `(?s)^UPDATE\s+users\s+SET\s+updated_at\s*=\s*\$1.*WHERE\s+id\s*=\s*\$5`
	mock.ExpectExec(q).
		WithArgs(u.UpdatedAt, "alice", "alice@example.com", "ROLE_USER,ROLE_ADMIN", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), u); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u := models.NewUser("alice", "alice@example.com")
	u.ID = 1
	if err := repo.Update(context.Background(), u); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+password_hash\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2`).
		WithArgs("newhash", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), 1, "newhash"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users`).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 9); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "username", "password_hash", "email", "roles",
	}).AddRow(int64(1), now, now, "alice", "hash", "alice@example.com", "ROLE_USER,ROLE_ADMIN")

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if !got.IsAdmin() {
		t.Fatalf("roles not decoded: %+v", got.Roles)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
