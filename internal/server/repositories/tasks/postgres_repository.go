package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

const taskColumns = `id, description, completed, owner_id, created_at, updated_at`

// sortColumns maps the public sort keys to table columns. Keys not listed
// here are ignored.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	if err := s.Scan(&t.ID, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (description, completed, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.Description, task.Completed, task.OwnerID).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// buildListQuery renders the listing statement for q. Sort columns come only
// from sortColumns, all values travel as placeholders.
func buildListQuery(ownerID string, q models.TaskQuery) (string, []any) {
	var b strings.Builder
	args := []any{ownerID}

	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`)

	if q.Completed != nil {
		args = append(args, *q.Completed)
		b.WriteString(` AND completed = $` + strconv.Itoa(len(args)))
	}

	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		b.WriteString(` ORDER BY ` + col + ` ` + dir + `, id`)
	} else {
		b.WriteString(` ORDER BY created_at, id`)
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		b.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		b.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
	}

	return b.String(), args
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string, q models.TaskQuery) ([]models.Task, error) {
	query, args := buildListQuery(ownerID, q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string, id string) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET description = $3, completed = $4, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.OwnerID, task.Description, task.Completed).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, id string) (*models.Task, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + taskColumns + `
		 `

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	query :=
		`DELETE FROM tasks
		 WHERE owner_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
