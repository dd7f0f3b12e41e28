package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("analysis not found")
	ErrNotReady = errors.New("analysis not completed")
)

// Repo persists analyses. One row per portfolio; Upsert replaces any
// previous run for the same portfolio.
type Repo interface {
	Upsert(ctx context.Context, a Analysis) error
	GetByPortfolio(ctx context.Context, portfolioID string) (Analysis, error)
	UpdateProgress(ctx context.Context, id string, status string, progress int) error
	UpdateResult(ctx context.Context, id string, result json.RawMessage, modelUsed string, aiGenerated bool, completedAt time.Time) error
	UpdateFailure(ctx context.Context, id string, message string, completedAt time.Time) error
}
