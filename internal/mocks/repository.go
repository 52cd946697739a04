package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/freshkeep/backend/internal/models"
)

// MockRepository is a mock implementation of the inventory Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) ([]models.FoodItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FoodItem), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, items []models.FoodItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}
