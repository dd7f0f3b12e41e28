package batches

import "time"

// Batch groups recruiter bulk submissions so candidates can be ranked
// against each other once their analyses finish.
type Batch struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item links one portfolio into a batch.
type Item struct {
	ID          string
	BatchID     string
	PortfolioID string
	CreatedAt   time.Time
}
