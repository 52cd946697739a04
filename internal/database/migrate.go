package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the tables the repositories need. Records inside a
// slot are stored as-is, so there is nothing to migrate beyond the table.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&InventorySlot{}); err != nil {
		return fmt.Errorf("failed to migrate inventory slots: %w", err)
	}
	return nil
}
