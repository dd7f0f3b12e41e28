package portfolios

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const portfolioColumns = `id, user_id, source_type, source_url, title, candidate_name, submission_context, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, p Portfolio) error {
	const query = `
INSERT INTO portfolios (
    id, user_id, source_type, source_url, title, candidate_name, submission_context, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.UserID, string(p.SourceType), p.SourceURL, p.Title,
		p.CandidateName, p.SubmissionContext, string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Portfolio, error) {
	const query = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE id = $1 LIMIT 1`
	p, err := scanPortfolio(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Portfolio{}, ErrNotFound
		}
		return Portfolio{}, err
	}
	return p, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID, submissionContext string, limit, offset int) ([]Portfolio, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE user_id = $1`
	args := []any{userID}
	if submissionContext != "" {
		query += ` AND submission_context = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, submissionContext, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM portfolios WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	const query = `
UPDATE portfolios SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3`
	res, err := r.DB.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *PGRepo) ForceStatus(ctx context.Context, id string, to Status) error {
	const query = `UPDATE portfolios SET status = $1, updated_at = now() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, string(to), id)
	return err
}

func (r *PGRepo) ListByStatus(ctx context.Context, status Status) ([]Portfolio, error) {
	const query = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE status = $1`
	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) AddFile(ctx context.Context, f File) error {
	const query = `
INSERT INTO portfolio_files (id, portfolio_id, file_name, content_type, size_bytes, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		f.ID, f.PortfolioID, f.FileName, f.ContentType, f.SizeBytes, f.StorageKey, f.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListFiles(ctx context.Context, portfolioID string) ([]File, error) {
	const query = `
SELECT id, portfolio_id, file_name, content_type, size_bytes, storage_key, created_at
FROM portfolio_files
WHERE portfolio_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.PortfolioID, &f.FileName, &f.ContentType, &f.SizeBytes, &f.StorageKey, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(row rowScanner) (Portfolio, error) {
	var p Portfolio
	var sourceType, status string
	err := row.Scan(
		&p.ID, &p.UserID, &sourceType, &p.SourceURL, &p.Title,
		&p.CandidateName, &p.SubmissionContext, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Portfolio{}, err
	}
	p.SourceType = SourceType(sourceType)
	p.Status = Status(status)
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
