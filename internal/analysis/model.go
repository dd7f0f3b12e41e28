package analysis

import (
	"encoding/json"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis is one evaluation run for a portfolio. A portfolio has at
// most one analysis row; restarting replaces the previous run.
type Analysis struct {
	ID          string
	PortfolioID string
	UserID      string
	Status      string
	Progress    int
	Result      json.RawMessage
	Error       string
	ModelUsed   string
	AIGenerated bool
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
