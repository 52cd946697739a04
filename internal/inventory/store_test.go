package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/mocks"
	"github.com/pageza/freshkeep/backend/internal/models"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestStore(t *testing.T, repo Repository, opts ...StoreOption) *Store {
	t.Helper()
	predictor := expiry.NewPredictor(expiry.WithSeed(11, 13), expiry.WithClock(func() time.Time { return testNow }))
	opts = append([]StoreOption{WithIDGenerator(sequentialIDs())}, opts...)
	store, err := NewStore(context.Background(), repo, predictor, opts...)
	require.NoError(t, err)
	return store
}

func milk() models.FoodItemInput {
	return models.FoodItemInput{
		Name:        "Milk",
		FoodType:    models.FoodTypeDairy,
		Temperature: models.Float(4),
		Humidity:    models.Float(50),
		Packaging:   models.PackagingSealed,
	}
}

func TestNewStoreLoadsRepository(t *testing.T) {
	existing := models.FoodItem{ID: "keep", Name: "Rice", FoodType: models.FoodTypeDry}
	store := newTestStore(t, NewMemoryRepository(existing))

	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, "keep", items[0].ID)
}

func TestNewStoreLoadError(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("disk gone"))

	predictor := expiry.NewPredictor()
	store, err := NewStore(context.Background(), repo, predictor)
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestStoreAdd(t *testing.T) {
	repo := NewMemoryRepository()
	store := newTestStore(t, repo)
	before := len(store.List())

	item, err := store.Add(context.Background(), milk())
	require.NoError(t, err)

	items := store.List()
	assert.Len(t, items, before+1)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, testNow, item.AddedDate)
	assert.Equal(t, models.FoodTypeDairy, item.FoodType)
	assert.True(t, item.ExpiryDate.After(testNow))
	assert.False(t, item.ExpiryDate.Before(testNow.AddDate(0, 0, 10)))
	assert.False(t, item.ExpiryDate.After(testNow.AddDate(0, 0, 14)))

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, saved)
	assert.Equal(t, 1, repo.Saves())
}

func TestStoreAddKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t, NewMemoryRepository())
	ctx := context.Background()

	for _, name := range []string{"Milk", "Bread", "Apples"} {
		in := milk()
		in.Name = name
		_, err := store.Add(ctx, in)
		require.NoError(t, err)
	}

	items := store.List()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Milk", "Bread", "Apples"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestStoreUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	store := newTestStore(t, repo)
	ctx := context.Background()

	added, err := store.Add(ctx, milk())
	require.NoError(t, err)

	warm := 25.0
	updated, found, err := store.Update(ctx, added.ID, models.FoodItemPatch{Temperature: &warm})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, added.AddedDate, updated.AddedDate)
	assert.Equal(t, added.Name, updated.Name)
	assert.Equal(t, added.Humidity, updated.Humidity)
	assert.Equal(t, added.Packaging, updated.Packaging)
	assert.Equal(t, 25.0, updated.Temperature)

	// dairy at 25°C: 10 * 0.3 * 1.0 * 1.2 = 3.6 nominal
	days := expiry.DaysRemaining(updated.ExpiryDate, testNow)
	assert.GreaterOrEqual(t, days, 3)
	assert.LessOrEqual(t, days, 4)

	saved, _ := repo.Load(ctx)
	assert.Equal(t, updated, saved[0])
}

func TestStoreUpdateAppliesZeroValues(t *testing.T) {
	store := newTestStore(t, NewMemoryRepository())
	ctx := context.Background()

	added, err := store.Add(ctx, milk())
	require.NoError(t, err)

	zero := 0.0
	updated, found, err := store.Update(ctx, added.ID, models.FoodItemPatch{Temperature: &zero, Humidity: &zero})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0.0, updated.Temperature)
	assert.Equal(t, 0.0, updated.Humidity)
}

func TestStoreUpdateUnknownIDIsNoop(t *testing.T) {
	repo := NewMemoryRepository()
	store := newTestStore(t, repo)

	name := "Ghost"
	_, found, err := store.Update(context.Background(), "missing", models.FoodItemPatch{Name: &name})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, store.List())
	assert.Equal(t, 0, repo.Saves())
}

func TestStoreDelete(t *testing.T) {
	repo := NewMemoryRepository()
	store := newTestStore(t, repo)
	ctx := context.Background()

	first, err := store.Add(ctx, milk())
	require.NoError(t, err)
	second, err := store.Add(ctx, milk())
	require.NoError(t, err)

	found, err := store.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, found)

	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)

	saved, _ := repo.Load(ctx)
	assert.Equal(t, items, saved)
}

func TestStoreDeleteUnknownIDIsNoop(t *testing.T) {
	store := newTestStore(t, NewMemoryRepository())
	ctx := context.Background()

	_, err := store.Add(ctx, milk())
	require.NoError(t, err)
	before := store.List()

	found, err := store.Delete(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, store.List())
}

func TestStorePersistFailureKeepsMemoryState(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("Load", mock.Anything).Return([]models.FoodItem{}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only filesystem"))

	var observed []string
	store := newTestStore(t, repo, WithObserver(func(op string, err error) {
		observed = append(observed, fmt.Sprintf("%s:%v", op, err != nil))
	}))

	item, err := store.Add(context.Background(), milk())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Contains(t, err.Error(), "read-only filesystem")

	got, ok := store.Get(item.ID)
	assert.True(t, ok)
	assert.Equal(t, item, got)
	assert.Equal(t, []string{"add:true"}, observed)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestStoreListIsACopy(t *testing.T) {
	store := newTestStore(t, NewMemoryRepository())
	_, err := store.Add(context.Background(), milk())
	require.NoError(t, err)

	items := store.List()
	items[0].Name = "changed"

	assert.Equal(t, "Milk", store.List()[0].Name)
}

func TestStoreConcurrentMutations(t *testing.T) {
	repo := NewMemoryRepository()
	store := newTestStore(t, repo)
	ctx := context.Background()

	const workers = 50
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			in := milk()
			in.Name = fmt.Sprintf("Milk %d", i)
			added, err := store.Add(ctx, in)
			if err != nil {
				errs <- err
				return
			}

			store.Query(ListOptions{Search: "milk", SortBy: SortByName}, testNow)
			store.List()

			warm := float64(i % 30)
			updated, found, err := store.Update(ctx, added.ID, models.FoodItemPatch{Temperature: &warm})
			if err != nil || !found || updated.Temperature != warm {
				errs <- fmt.Errorf("update %s: found=%v err=%v", added.ID, found, err)
				return
			}
			if _, ok := store.Get(added.ID); !ok {
				errs <- fmt.Errorf("item %s vanished", added.ID)
				return
			}

			removed, err := store.Delete(ctx, added.ID)
			if err != nil || !removed {
				errs <- fmt.Errorf("delete %s: removed=%v err=%v", added.ID, removed, err)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Zero(t, store.Len())
	assert.Equal(t, workers*3, repo.Saves())

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
