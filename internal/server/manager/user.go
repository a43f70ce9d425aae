package manager

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkolesnikov/tasklist/internal/dbx"
	"github.com/dkolesnikov/tasklist/internal/logging"
	"github.com/dkolesnikov/tasklist/internal/server/models"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/repomanager"
)

type UserManager struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
	now    func() time.Time
}

func NewUserManager(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *UserManager {
	return &UserManager{
		db:     db,
		rm:     rm,
		logger: logger.With("module", "user_manager"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new account. The password hash must already be set.
func (m *UserManager) Create(ctx context.Context, user *models.User) bool {
	if _, err := m.rm.Users(m.db).Create(ctx, user); err != nil {
		m.logger.Error(ctx, "user persistence error", "op", "create", "error", err)
		return false
	}
	return true
}

// Update stamps the edit time and commits profile changes; when
// newPasswordHash is non-empty the credential is rotated in the same
// transaction.
func (m *UserManager) Update(ctx context.Context, user *models.User, newPasswordHash string) bool {
	if err := user.SetUpdatedAt(m.now()); err != nil {
		m.logger.Error(ctx, "user timestamp error", "op", "update", "user_id", user.ID, "error", err)
		return false
	}

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.rm.Users(tx)
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		if newPasswordHash != "" {
			if err := repo.UpdatePassword(ctx, user.ID, newPasswordHash); err != nil {
				return err
			}
			user.PasswordHash = newPasswordHash
		}
		return nil
	})
	if err != nil {
		m.logger.Error(ctx, "user persistence error", "op", "update", "user_id", user.ID, "error", err)
		return false
	}
	return true
}

// Delete removes the account.
func (m *UserManager) Delete(ctx context.Context, user *models.User) bool {
	if err := m.rm.Users(m.db).Delete(ctx, user.ID); err != nil {
		m.logger.Error(ctx, "user persistence error", "op", "delete", "user_id", user.ID, "error", err)
		return false
	}
	return true
}
