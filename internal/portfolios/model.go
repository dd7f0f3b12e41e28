package portfolios

import "time"

// Status is the portfolio processing lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// SourceType says how a portfolio entered the system.
type SourceType string

const (
	SourceTypeURL     SourceType = "url"
	SourceTypeFile    SourceType = "file"
	SourceTypeBehance SourceType = "behance"
)

// Submission contexts. Recruiters submit candidates; designers submit themselves.
const (
	ContextDesigner  = "designer"
	ContextRecruiter = "recruiter"
)

// Portfolio represents a submitted portfolio owned by a user.
type Portfolio struct {
	ID                string
	UserID            string
	SourceType        SourceType
	SourceURL         string
	Title             string
	CandidateName     string
	SubmissionContext string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// File is one uploaded asset belonging to a portfolio.
type File struct {
	ID          string
	PortfolioID string
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
	CreatedAt   time.Time
}
