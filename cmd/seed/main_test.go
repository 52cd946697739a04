package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

func TestSampleItemsAreValid(t *testing.T) {
	for _, in := range sampleItems {
		assert.NoError(t, models.ValidateInput(in), in.Name)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := inventory.NewMemoryRepository(models.FoodItem{ID: "old", Name: "Old bread"})

	n, err := seed(ctx, repo, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(sampleItems)+1, n)

	n, err = seed(ctx, repo, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(sampleItems), n)

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, len(sampleItems))
	for _, item := range saved {
		assert.NotEqual(t, "old", item.ID)
		assert.NotEmpty(t, item.ID)
	}
}
