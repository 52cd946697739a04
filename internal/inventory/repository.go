package inventory

import (
	"context"
	"sync"

	"github.com/pageza/freshkeep/backend/internal/models"
)

// Repository persists the whole inventory as one ordered collection.
// Load returns an empty slice when nothing has been saved yet.
type Repository interface {
	Load(ctx context.Context) ([]models.FoodItem, error)
	Save(ctx context.Context, items []models.FoodItem) error
}

// MemoryRepository keeps the saved collection in process memory
type MemoryRepository struct {
	mu    sync.Mutex
	items []models.FoodItem
	saves int
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a repository preloaded with items
func NewMemoryRepository(items ...models.FoodItem) *MemoryRepository {
	return &MemoryRepository{items: cloneItems(items)}
}

// Load returns a copy of the last saved collection
func (r *MemoryRepository) Load(ctx context.Context) ([]models.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneItems(r.items), nil
}

// Save replaces the stored collection
func (r *MemoryRepository) Save(ctx context.Context, items []models.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = cloneItems(items)
	r.saves++
	return nil
}

// Saves reports how many times Save has been called
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func cloneItems(items []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(items))
	copy(out, items)
	return out
}
