// Package analytics derives inventory statistics from a snapshot. Nothing is
// cached; every report is computed from the items passed in.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// diverseCategoryCount is the category count above which the inventory is
// called diverse
const diverseCategoryCount = 3

// CategoryAverage is the mean days until expiry for one category
type CategoryAverage struct {
	Category models.FoodType `json:"category"`
	AvgDays  int             `json:"avgDays"`
}

// CategoryCount is the number of items in one category
type CategoryCount struct {
	Category models.FoodType `json:"category"`
	Count    int             `json:"count"`
}

// Report summarizes an inventory snapshot
type Report struct {
	Total           int                     `json:"total"`
	StatusCounts    map[models.Status]int   `json:"expiryStats"`
	CategoryCounts  map[models.FoodType]int `json:"categoryStats"`
	AverageDays     []CategoryAverage       `json:"avgExpiryByCategory"`
	Shortest        *CategoryAverage        `json:"shortestShelfLife,omitempty"`
	Longest         *CategoryAverage        `json:"longestShelfLife,omitempty"`
	Insights        []string                `json:"insights"`
	Recommendations []string                `json:"recommendations"`

	categoryOrder []models.FoodType
}

// Summarize builds a report for items relative to now. Categories appear in
// the order they first occur in items.
func Summarize(items []models.FoodItem, now time.Time) Report {
	r := Report{
		Total:           len(items),
		StatusCounts:    make(map[models.Status]int),
		CategoryCounts:  make(map[models.FoodType]int),
		AverageDays:     []CategoryAverage{},
		Insights:        []string{},
		Recommendations: []string{},
	}
	if len(items) == 0 {
		return r
	}

	totals := make(map[models.FoodType]int)
	for _, item := range items {
		days := expiry.DaysRemaining(item.ExpiryDate, now)
		r.StatusCounts[expiry.StatusForDays(days)]++

		if _, seen := r.CategoryCounts[item.FoodType]; !seen {
			r.categoryOrder = append(r.categoryOrder, item.FoodType)
		}
		r.CategoryCounts[item.FoodType]++
		totals[item.FoodType] += days
	}

	for _, category := range r.categoryOrder {
		avg := float64(totals[category]) / float64(r.CategoryCounts[category])
		r.AverageDays = append(r.AverageDays, CategoryAverage{
			Category: category,
			AvgDays:  int(math.Floor(avg + 0.5)),
		})
	}

	shortest, longest := r.AverageDays[0], r.AverageDays[0]
	for _, avg := range r.AverageDays[1:] {
		if avg.AvgDays < shortest.AvgDays {
			shortest = avg
		}
		if avg.AvgDays > longest.AvgDays {
			longest = avg
		}
	}
	r.Shortest = &shortest
	r.Longest = &longest

	r.Insights = r.buildInsights()
	r.Recommendations = r.buildRecommendations()
	return r
}

// TopCategories returns up to n categories by item count, largest first.
// Equal counts keep first-occurrence order.
func (r Report) TopCategories(n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(r.CategoryCounts))
	for _, category := range r.categoryOrder {
		out = append(out, CategoryCount{Category: category, Count: r.CategoryCounts[category]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return limit(out, n)
}

// SoonestCategories returns up to n category averages, soonest expiry first
func (r Report) SoonestCategories(n int) []CategoryAverage {
	out := make([]CategoryAverage, len(r.AverageDays))
	copy(out, r.AverageDays)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgDays < out[j].AvgDays
	})
	return limit(out, n)
}

func (r Report) buildInsights() []string {
	insights := []string{
		fmt.Sprintf("You have %d expired items and %d items that will expire within 2 days.",
			r.StatusCounts[models.StatusExpired], r.StatusCounts[models.StatusCritical]),
	}
	if r.Shortest != nil {
		insights = append(insights, fmt.Sprintf("Category with shortest shelf life: %s (%d days on average)",
			r.Shortest.Category, r.Shortest.AvgDays))
	}
	if r.Longest != nil {
		insights = append(insights, fmt.Sprintf("Category with longest shelf life: %s (%d days on average)",
			r.Longest.Category, r.Longest.AvgDays))
	}
	return insights
}

func (r Report) buildRecommendations() []string {
	recs := []string{}
	if n := r.StatusCounts[models.StatusExpired]; n > 0 {
		recs = append(recs, fmt.Sprintf("Dispose of %d expired items to maintain food safety.", n))
	}
	if n := r.StatusCounts[models.StatusCritical]; n > 0 {
		recs = append(recs, fmt.Sprintf("Prioritize consuming %d items that will expire within 2 days.", n))
	}
	if n := r.StatusCounts[models.StatusWarning]; n > 0 {
		recs = append(recs, fmt.Sprintf("Plan meals around %d items that will expire within 5 days.", n))
	}
	if n := len(r.CategoryCounts); n > diverseCategoryCount {
		recs = append(recs, fmt.Sprintf("You have a diverse inventory across %d categories.", n))
	}
	return recs
}

func limit[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
