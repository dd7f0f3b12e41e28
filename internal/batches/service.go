package batches

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/analysis"
	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/shared/telemetry"
)

const maxBatchSize = 20

// Recommendation labels for ranked candidates.
const (
	RecommendAdvance  = "advance"
	RecommendConsider = "consider"
	RecommendPass     = "pass"
)

// Submission is one candidate URL in a bulk request.
type Submission struct {
	URL           string
	CandidateName string
}

// RankedItem is a batch item joined with its analysis outcome.
type RankedItem struct {
	PortfolioID    string
	CandidateName  string
	SourceURL      string
	Status         string
	OverallScore   float64
	Recommendation string
}

// BatchStatus aggregates per-item completion.
type BatchStatus struct {
	Batch     Batch
	Total     int
	Completed int
	Failed    int
	Pending   int
	Done      bool
	Items     []RankedItem
}

// Service contains business logic for recruiter batches.
type Service struct {
	Repo       Repo
	Portfolios *portfolios.Service
	Analyses   *analysis.Service
}

// Create submits every URL as a recruiter-context portfolio, starts an
// analysis for each, and records the batch.
func (s *Service) Create(ctx context.Context, userID, name string, submissions []Submission) (Batch, []RankedItem, error) {
	if len(submissions) == 0 {
		return Batch{}, nil, fmt.Errorf("%w: at least one url is required", ErrInvalidInput)
	}
	if len(submissions) > maxBatchSize {
		return Batch{}, nil, fmt.Errorf("%w: at most %d urls per batch", ErrInvalidInput, maxBatchSize)
	}

	now := time.Now().UTC()
	b := Batch{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Name == "" {
		b.Name = "Batch " + now.Format("2006-01-02")
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return Batch{}, nil, err
	}

	var items []RankedItem
	for _, sub := range submissions {
		p, err := s.Portfolios.SubmitURL(ctx, userID, sub.URL, "", sub.CandidateName, portfolios.ContextRecruiter)
		if err != nil {
			return Batch{}, nil, fmt.Errorf("submit %q: %w", sub.URL, err)
		}
		if err := s.Repo.AddItem(ctx, Item{
			ID:          uuid.NewString(),
			BatchID:     b.ID,
			PortfolioID: p.ID,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return Batch{}, nil, err
		}
		if _, err := s.Analyses.Start(ctx, userID, p.ID); err != nil {
			telemetry.Warn("batch.start_analysis_failed", map[string]any{
				"batch_id":     b.ID,
				"portfolio_id": p.ID,
				"error":        err.Error(),
			})
		}
		items = append(items, RankedItem{
			PortfolioID:   p.ID,
			CandidateName: p.CandidateName,
			SourceURL:     p.SourceURL,
			Status:        analysis.StatusProcessing,
		})
	}

	telemetry.Info("batch.created", map[string]any{
		"batch_id":   b.ID,
		"user_id":    userID,
		"item_count": len(items),
	})
	return b, items, nil
}

// List returns the user's batches, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Batch, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Status returns aggregate completion plus items ranked by overall
// score, highest first. Unfinished items sort last.
func (s *Service) Status(ctx context.Context, userID, batchID string) (BatchStatus, error) {
	b, err := s.Repo.GetByID(ctx, batchID)
	if err != nil {
		return BatchStatus{}, err
	}
	if b.UserID != userID {
		return BatchStatus{}, ErrNotFound
	}

	links, err := s.Repo.ListItems(ctx, batchID)
	if err != nil {
		return BatchStatus{}, err
	}

	status := BatchStatus{Batch: b, Total: len(links)}
	for _, link := range links {
		item := s.rankItem(ctx, userID, link.PortfolioID)
		switch item.Status {
		case analysis.StatusCompleted:
			status.Completed++
		case analysis.StatusFailed:
			status.Failed++
		default:
			status.Pending++
		}
		status.Items = append(status.Items, item)
	}
	status.Done = status.Pending == 0

	sort.SliceStable(status.Items, func(i, j int) bool {
		left, right := status.Items[i], status.Items[j]
		if (left.Status == analysis.StatusCompleted) != (right.Status == analysis.StatusCompleted) {
			return left.Status == analysis.StatusCompleted
		}
		return left.OverallScore > right.OverallScore
	})
	return status, nil
}

func (s *Service) rankItem(ctx context.Context, userID, portfolioID string) RankedItem {
	item := RankedItem{PortfolioID: portfolioID, Status: analysis.StatusPending}

	if p, err := s.Portfolios.Repo.GetByID(ctx, portfolioID); err == nil {
		item.CandidateName = p.CandidateName
		item.SourceURL = p.SourceURL
	}

	a, err := s.Analyses.Status(ctx, userID, portfolioID)
	if err != nil {
		return item
	}
	item.Status = a.Status
	if a.Status != analysis.StatusCompleted || len(a.Result) == 0 {
		return item
	}

	var parsed struct {
		OverallScore float64 `json:"overall_score"`
	}
	if err := json.Unmarshal(a.Result, &parsed); err != nil {
		return item
	}
	item.OverallScore = parsed.OverallScore
	item.Recommendation = recommendationFor(parsed.OverallScore)
	return item
}

func recommendationFor(overall float64) string {
	switch {
	case overall >= 80:
		return RecommendAdvance
	case overall >= 70:
		return RecommendConsider
	default:
		return RecommendPass
	}
}
