package batches

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, b Batch) error {
	const query = `
INSERT INTO batches (id, user_id, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, b.ID, b.UserID, b.Name, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Batch, error) {
	const query = `SELECT id, user_id, name, created_at, updated_at FROM batches WHERE id = $1 LIMIT 1`
	var b Batch
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Batch{}, ErrNotFound
		}
		return Batch{}, err
	}
	return b, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Batch, error) {
	const query = `
SELECT id, user_id, name, created_at, updated_at
FROM batches
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) AddItem(ctx context.Context, item Item) error {
	const query = `
INSERT INTO batch_items (id, batch_id, portfolio_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (batch_id, portfolio_id) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query, item.ID, item.BatchID, item.PortfolioID, item.CreatedAt)
	return err
}

func (r *PGRepo) ListItems(ctx context.Context, batchID string) ([]Item, error) {
	const query = `
SELECT id, batch_id, portfolio_id, created_at
FROM batch_items
WHERE batch_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.BatchID, &item.PortfolioID, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
