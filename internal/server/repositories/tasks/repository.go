// Package tasks declares the repository contract for tasks. Every lookup is
// scoped by owner so one user can never reach another user's rows.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

type Repository interface {
	// Create inserts task and fills in its ID and timestamps.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// List returns ownerID's tasks narrowed, ordered and paged by q.
	List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error)

	// Get returns a single task. A missing task, or one owned by someone
	// else, yields common.ErrorNotFound.
	Get(ctx context.Context, ownerID string, id string) (*models.Task, error)

	// Update persists description and completed and bumps updated_at.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// Delete removes the task and returns it as it was.
	Delete(ctx context.Context, ownerID string, id string) (*models.Task, error)

	// DeleteByOwner removes all of ownerID's tasks.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
