package batches

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("batch not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo persists batches and their items.
type Repo interface {
	Create(ctx context.Context, b Batch) error
	GetByID(ctx context.Context, id string) (Batch, error)
	ListByUser(ctx context.Context, userID string) ([]Batch, error)
	AddItem(ctx context.Context, item Item) error
	ListItems(ctx context.Context, batchID string) ([]Item, error)
}
