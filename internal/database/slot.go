// Package database implements inventory repositories. Every adapter stores
// the whole collection as one JSON array under a named slot.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// InventorySlot is one named, serialized inventory
type InventorySlot struct {
	Name      string    `gorm:"primaryKey;size:100"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the InventorySlot model
func (InventorySlot) TableName() string {
	return "inventory_slots"
}

// SlotRepository keeps the inventory in a SQL table row
type SlotRepository struct {
	db   *gorm.DB
	name string
}

var _ inventory.Repository = (*SlotRepository)(nil)

// NewSlotRepository creates a repository for the named slot
func NewSlotRepository(db *gorm.DB, name string) *SlotRepository {
	return &SlotRepository{db: db, name: name}
}

// Load reads the slot; a missing row is an empty inventory
func (r *SlotRepository) Load(ctx context.Context) ([]models.FoodItem, error) {
	var slot InventorySlot
	err := r.db.WithContext(ctx).First(&slot, "name = ?", r.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.FoodItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", r.name, err)
	}
	return decodeItems([]byte(slot.Payload))
}

// Save upserts the slot with the full collection
func (r *SlotRepository) Save(ctx context.Context, items []models.FoodItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}

	slot := InventorySlot{
		Name:      r.name,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", r.name, err)
	}
	return nil
}

func encodeItems(items []models.FoodItem) ([]byte, error) {
	if items == nil {
		items = []models.FoodItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}
	return data, nil
}

func decodeItems(data []byte) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return items, nil
}
