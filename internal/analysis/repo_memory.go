package analysis

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev and tests.
type MemoryRepo struct {
	mu sync.RWMutex
	// keyed by portfolio ID, one analysis per portfolio
	items map[string]Analysis
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Analysis)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, a Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.PortfolioID] = a
	return nil
}

func (r *MemoryRepo) GetByPortfolio(ctx context.Context, portfolioID string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[portfolioID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) UpdateProgress(ctx context.Context, id string, status string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, a := range r.items {
		if a.ID == id {
			a.Status = status
			a.Progress = progress
			a.UpdatedAt = time.Now().UTC()
			r.items[key] = a
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) UpdateResult(ctx context.Context, id string, result json.RawMessage, modelUsed string, aiGenerated bool, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, a := range r.items {
		if a.ID == id {
			a.Status = StatusCompleted
			a.Progress = 100
			a.Result = append(json.RawMessage(nil), result...)
			a.ModelUsed = modelUsed
			a.AIGenerated = aiGenerated
			a.Error = ""
			a.CompletedAt = &completedAt
			a.UpdatedAt = time.Now().UTC()
			r.items[key] = a
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) UpdateFailure(ctx context.Context, id string, message string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, a := range r.items {
		if a.ID == id {
			a.Status = StatusFailed
			a.Error = message
			a.CompletedAt = &completedAt
			a.UpdatedAt = time.Now().UTC()
			r.items[key] = a
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
