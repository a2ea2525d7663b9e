package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements task CRUD. Every method is scoped to ownerID;
// tasks of other users behave exactly like missing ones.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, in models.NewTask) (*models.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		Description: in.Description,
		Completed:   in.Completed,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).List(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	task, err := s.repomanager.Tasks(s.db).Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOr(err, "error reading task")
	}
	return task, nil
}

// Update loads the task, applies patch and saves it. A missing task is
// reported before the patch is validated.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(task); err != nil {
		return nil, err
	}

	out, err := s.repomanager.Tasks(s.db).Update(ctx, task)
	if err != nil {
		return nil, notFoundOr(err, "error updating task")
	}
	return out, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	task, err := s.repomanager.Tasks(s.db).Delete(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOr(err, "error deleting task")
	}
	return task, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
