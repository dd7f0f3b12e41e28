package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO analyses (
    id, portfolio_id, user_id, status, progress, result, error,
    model_used, ai_generated, started_at, completed_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (portfolio_id) DO UPDATE SET
    id = EXCLUDED.id,
    status = EXCLUDED.status,
    progress = EXCLUDED.progress,
    result = EXCLUDED.result,
    error = EXCLUDED.error,
    model_used = EXCLUDED.model_used,
    ai_generated = EXCLUDED.ai_generated,
    started_at = EXCLUDED.started_at,
    completed_at = EXCLUDED.completed_at,
    updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.PortfolioID, a.UserID, a.Status, a.Progress,
		nullableJSON(a.Result), nullableString(a.Error),
		nullableString(a.ModelUsed), a.AIGenerated,
		a.StartedAt, a.CompletedAt, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByPortfolio(ctx context.Context, portfolioID string) (Analysis, error) {
	const query = `
SELECT id, portfolio_id, user_id, status, progress, result, error,
       model_used, ai_generated, started_at, completed_at, created_at, updated_at
FROM analyses
WHERE portfolio_id = $1
LIMIT 1`

	var a Analysis
	var result []byte
	var errMsg, modelUsed sql.NullString
	var startedAt, completedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, portfolioID).Scan(
		&a.ID, &a.PortfolioID, &a.UserID, &a.Status, &a.Progress,
		&result, &errMsg, &modelUsed, &a.AIGenerated,
		&startedAt, &completedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if len(result) > 0 {
		a.Result = json.RawMessage(result)
	}
	a.Error = errMsg.String
	a.ModelUsed = modelUsed.String
	if startedAt.Valid {
		t := startedAt.Time
		a.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return a, nil
}

func (r *PGRepo) UpdateProgress(ctx context.Context, id string, status string, progress int) error {
	const query = `UPDATE analyses SET status = $1, progress = $2, updated_at = now() WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, progress, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateResult(ctx context.Context, id string, result json.RawMessage, modelUsed string, aiGenerated bool, completedAt time.Time) error {
	const query = `
UPDATE analyses SET
    status = $1, progress = 100, result = $2, error = NULL,
    model_used = $3, ai_generated = $4, completed_at = $5, updated_at = now()
WHERE id = $6`
	res, err := r.DB.ExecContext(ctx, query, StatusCompleted, []byte(result), modelUsed, aiGenerated, completedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateFailure(ctx context.Context, id string, message string, completedAt time.Time) error {
	const query = `
UPDATE analyses SET status = $1, error = $2, completed_at = $3, updated_at = now()
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, StatusFailed, message, completedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ Repo = (*PGRepo)(nil)
