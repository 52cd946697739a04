// Package inventory holds the food item collection and keeps each item's
// expiry date consistent with its storage conditions.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// ErrPersist wraps repository failures. The in-memory change is kept when
// it is returned.
var ErrPersist = errors.New("failed to persist inventory")

// Operation names passed to observers
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Observer is notified after every mutation attempt
type Observer func(op string, err error)

// Store is the ordered food item collection. It loads the repository once
// on creation and saves the whole collection after every mutation.
type Store struct {
	mu        sync.RWMutex
	items     []models.FoodItem
	repo      Repository
	predictor *expiry.Predictor
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
	observers []Observer
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence diagnostics
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the clock used for addedDate
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides UUID generation
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithObserver registers a mutation observer
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// NewStore creates a store and loads the persisted collection
func NewStore(ctx context.Context, repo Repository, predictor *expiry.Predictor, opts ...StoreOption) (*Store, error) {
	s := &Store{
		repo:      repo,
		predictor: predictor,
		now:       predictor.Now,
		newID:     uuid.NewString,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	s.items = cloneItems(items)
	s.logger.Info("inventory loaded", zap.Int("items", len(s.items)))
	return s, nil
}

// Add assigns an id and addedDate, predicts the expiry date, appends the
// item and persists. Input bounds are the caller's responsibility.
func (s *Store) Add(ctx context.Context, in models.FoodItemInput) (models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.NewFoodItem(in)
	item.ID = s.newID()
	item.AddedDate = s.now()
	item.ExpiryDate = s.predictor.PredictItem(item)

	s.items = append(s.items, item)
	err := s.persist(ctx)
	s.notify(OpAdd, err)
	return item, err
}

// Update merges the patch into the item with the given id and recomputes
// its expiry date. An unknown id is a no-op and reports found=false.
func (s *Store) Update(ctx context.Context, id string, patch models.FoodItemPatch) (models.FoodItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.FoodItem{}, false, nil
	}

	item := s.items[idx]
	patch.Apply(&item)
	item.ExpiryDate = s.predictor.PredictItem(item)
	s.items[idx] = item

	err := s.persist(ctx)
	s.notify(OpUpdate, err)
	return item, true, err
}

// Delete removes the item with the given id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	err := s.persist(ctx)
	s.notify(OpDelete, err)
	return true, err
}

// List returns a snapshot of all items in insertion order
func (s *Store) List() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Get returns the item with the given id
func (s *Store) Get(id string) (models.FoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.FoodItem{}, false
	}
	return s.items[idx], true
}

// Len returns the number of items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Estimate predicts an expiry date for conditions without storing anything
func (s *Store) Estimate(c models.Conditions) time.Time {
	return s.predictor.Predict(c.FoodType, c.Celsius(), c.RelativeHumidity(), c.Packaging)
}

// Now reads the store's clock
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the write lock held
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, cloneItems(s.items)); err != nil {
		s.logger.Error("failed to save inventory", zap.Int("items", len(s.items)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) notify(op string, err error) {
	for _, o := range s.observers {
		o(op, err)
	}
}
