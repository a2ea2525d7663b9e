package tokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID string, token string) error {
	query :=
		`INSERT INTO user_tokens (user_id, token)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID string, token string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM user_tokens WHERE user_id = $1 AND token = $2)
		 `

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, token).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return ok, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID string, token string) error {
	query :=
		`DELETE FROM user_tokens
		 WHERE user_id = $1 AND token = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RemoveAll(ctx context.Context, userID string) (int64, error) {
	query :=
		`DELETE FROM user_tokens
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT token FROM user_tokens
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
