package portfolios

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("portfolio not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for portfolios and their files.
type Repo interface {
	Create(ctx context.Context, p Portfolio) error
	GetByID(ctx context.Context, id string) (Portfolio, error)
	ListByUser(ctx context.Context, userID, submissionContext string, limit, offset int) ([]Portfolio, error)
	Delete(ctx context.Context, id string) error

	// SetStatus transitions a portfolio from an expected status and reports
	// whether the transition happened.
	SetStatus(ctx context.Context, id string, from, to Status) (bool, error)
	// ForceStatus sets a status unconditionally, for failure marking and sweeps.
	ForceStatus(ctx context.Context, id string, to Status) error
	ListByStatus(ctx context.Context, status Status) ([]Portfolio, error)

	AddFile(ctx context.Context, f File) error
	ListFiles(ctx context.Context, portfolioID string) ([]File, error)
}
