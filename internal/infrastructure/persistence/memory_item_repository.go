package persistence

import (
	"context"
	"sync"

	"github.com/stockdash/backend/internal/domain/inventory"
)

// MemoryItemRepository keeps items in process memory.
// Readers get deep copies; writers serialize on the lock.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items []inventory.Item
}

// NewMemoryItemRepository creates an empty in-memory repository
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{}
}

// List returns a snapshot of all items in insertion order
func (r *MemoryItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.Item, len(r.items))
	for i := range r.items {
		out[i] = r.items[i].Clone()
	}
	return out, nil
}

// Get returns a copy of the item with the given id
func (r *MemoryItemRepository) Get(ctx context.Context, id string) (*inventory.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		item := r.items[idx].Clone()
		return &item, nil
	}
	return nil, inventory.ErrItemNotFound
}

// Insert assigns defaults and appends the item
func (r *MemoryItemRepository) Insert(ctx context.Context, item *inventory.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	item.AssignDefaults(len(r.items) + 1)
	r.items = append(r.items, item.Clone())
	return nil
}

// Update replaces the stored item with the same id
func (r *MemoryItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return inventory.ErrItemNotFound
	}
	r.items[idx] = item.Clone()
	return nil
}

func (r *MemoryItemRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
