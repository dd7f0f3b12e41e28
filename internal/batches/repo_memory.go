package batches

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used in dev and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Batch
	links map[string][]Item
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items: make(map[string]Batch),
		links: make(map[string][]Item),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, b Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return Batch{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Batch
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) AddItem(ctx context.Context, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[item.BatchID] = append(r.links[item.BatchID], item)
	return nil
}

func (r *MemoryRepo) ListItems(ctx context.Context, batchID string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.links[batchID]))
	copy(out, r.links[batchID])
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
