package api

import (
	"time"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// FoodItemResponse is a stored item plus its freshness at request time
type FoodItemResponse struct {
	models.FoodItem
	Status        models.Status `json:"status"`
	DaysRemaining int           `json:"daysRemaining"`
}

// ListResponse wraps the dashboard listing
type ListResponse struct {
	Items []FoodItemResponse `json:"items"`
	Total int                `json:"total"`
}

// Option is one selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse lists the values the add form offers and its defaults
type OptionsResponse struct {
	FoodTypes []Option             `json:"foodTypes"`
	Packaging []Option             `json:"packaging"`
	Statuses  []models.Status      `json:"statuses"`
	SortKeys  []string             `json:"sortKeys"`
	Defaults  models.FoodItemInput `json:"defaults"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func newFoodItemResponse(item models.FoodItem, now time.Time) FoodItemResponse {
	days := expiry.DaysRemaining(item.ExpiryDate, now)
	return FoodItemResponse{
		FoodItem:      item,
		Status:        expiry.StatusForDays(days),
		DaysRemaining: days,
	}
}

func newOptionsResponse(sortKeys []string) OptionsResponse {
	resp := OptionsResponse{
		FoodTypes: make([]Option, 0, len(models.FoodTypes)),
		Packaging: make([]Option, 0, len(models.PackagingOptions)),
		Statuses:  models.Statuses,
		SortKeys:  sortKeys,
		Defaults:  models.DefaultInput(),
	}
	for _, ft := range models.FoodTypes {
		resp.FoodTypes = append(resp.FoodTypes, Option{Value: string(ft), Label: ft.Label()})
	}
	for _, p := range models.PackagingOptions {
		resp.Packaging = append(resp.Packaging, Option{Value: string(p), Label: p.Label()})
	}
	return resp
}

func newListResponse(items []models.FoodItem, now time.Time) ListResponse {
	out := make([]FoodItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newFoodItemResponse(item, now))
	}
	return ListResponse{Items: out, Total: len(out)}
}
