package portfolios

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Portfolio
	files map[string][]File // portfolioID -> files
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items: make(map[string]Portfolio),
		files: make(map[string][]File),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, p Portfolio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return Portfolio{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return Portfolio{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID, submissionContext string, limit, offset int) ([]Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var out []Portfolio
	for _, p := range r.items {
		if p.UserID != userID {
			continue
		}
		if submissionContext != "" && p.SubmissionContext != submissionContext {
			continue
		}
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Portfolio{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.files, id)
	return nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return false, ErrNotFound
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return true, nil
}

func (r *MemoryRepo) ForceStatus(ctx context.Context, id string, to Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return nil
}

func (r *MemoryRepo) ListByStatus(ctx context.Context, status Status) ([]Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Portfolio
	for _, p := range r.items {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepo) AddFile(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[f.PortfolioID] = append(r.files[f.PortfolioID], f)
	return nil
}

func (r *MemoryRepo) ListFiles(ctx context.Context, portfolioID string) ([]File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	files := r.files[portfolioID]
	out := make([]File, len(files))
	copy(out, files)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
