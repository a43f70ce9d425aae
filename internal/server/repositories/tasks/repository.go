package tasks

import (
	"context"

	"github.com/dkolesnikov/tasklist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
}
