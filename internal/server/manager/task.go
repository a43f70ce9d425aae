// Package manager translates handler intents into storage calls. Every
// method reports plain success or failure: storage errors are logged here
// with a contextual prefix and never reach the handlers, which only need a
// boolean to pick the right user-facing message.
package manager

import (
	"context"
	"time"

	"github.com/dkolesnikov/tasklist/internal/logging"
	"github.com/dkolesnikov/tasklist/internal/server/models"
	"github.com/dkolesnikov/tasklist/internal/server/repositories/tasks"
)

type TaskManager struct {
	repo   tasks.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewTaskManager(repo tasks.Repository, logger logging.Logger) *TaskManager {
	return &TaskManager{
		repo:   repo,
		logger: logger.With("module", "task_manager"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new task. The author must already be attached by the
// create handler; timestamps come from the constructor.
func (m *TaskManager) Create(ctx context.Context, task *models.Task) bool {
	if _, err := m.repo.Create(ctx, task); err != nil {
		m.logger.Error(ctx, "task persistence error", "op", "create", "error", err)
		return false
	}
	return true
}

// Update stamps the edit time and commits the task. An ordering violation
// here means the entity was built wrong and is logged as such.
func (m *TaskManager) Update(ctx context.Context, task *models.Task) bool {
	if err := task.SetUpdatedAt(m.now()); err != nil {
		m.logger.Error(ctx, "task timestamp error", "op", "update", "task_id", task.ID, "error", err)
		return false
	}
	if err := m.repo.Update(ctx, task); err != nil {
		m.logger.Error(ctx, "task persistence error", "op", "update", "task_id", task.ID, "error", err)
		return false
	}
	return true
}

// Toggle commits a done-flag flip. The flip itself already happened on the
// entity; this stamps the edit time and persists, same path as Update.
func (m *TaskManager) Toggle(ctx context.Context, task *models.Task) bool {
	if err := task.SetUpdatedAt(m.now()); err != nil {
		m.logger.Error(ctx, "task timestamp error", "op", "toggle", "task_id", task.ID, "error", err)
		return false
	}
	if err := m.repo.Update(ctx, task); err != nil {
		m.logger.Error(ctx, "task persistence error", "op", "toggle", "task_id", task.ID, "error", err)
		return false
	}
	return true
}

// Delete removes the task.
func (m *TaskManager) Delete(ctx context.Context, task *models.Task) bool {
	if err := m.repo.Delete(ctx, task.ID); err != nil {
		m.logger.Error(ctx, "task persistence error", "op", "delete", "task_id", task.ID, "error", err)
		return false
	}
	return true
}
