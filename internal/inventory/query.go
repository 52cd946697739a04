package inventory

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// Sort keys accepted by Query
const (
	SortByExpiryDate = "expiryDate"
	SortByName       = "name"
	SortByAddedDate  = "addedDate"
)

// StatusAll disables status filtering
const StatusAll = "all"

// ListOptions filters and orders the dashboard view of the inventory
type ListOptions struct {
	// Search matches a case-insensitive substring of the item name
	Search string
	// Status is "all", empty, or one of the freshness states
	Status string
	// SortBy is one of the SortBy* keys; anything else keeps insertion order
	SortBy string
}

// Query returns the items matching opts, evaluated against now
func (s *Store) Query(opts ListOptions, now time.Time) []models.FoodItem {
	return Filter(s.List(), opts, now)
}

// Filter applies opts to a snapshot. Sorting is stable so ties keep
// insertion order.
func Filter(items []models.FoodItem, opts ListOptions, now time.Time) []models.FoodItem {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	status := strings.ToLower(strings.TrimSpace(opts.Status))

	out := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if status != "" && status != StatusAll && string(expiry.StatusAt(item.ExpiryDate, now)) != status {
			continue
		}
		out = append(out, item)
	}

	switch opts.SortBy {
	case SortByExpiryDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		})
	case SortByName:
		// A Collator keeps scratch buffers, so each call gets its own
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByAddedDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AddedDate.After(out[j].AddedDate)
		})
	}
	return out
}
