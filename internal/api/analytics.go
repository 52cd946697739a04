package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/freshkeep/backend/internal/analytics"
	"github.com/pageza/freshkeep/backend/internal/inventory"
)

// defaultTopN matches the five rows the analytics page shows per chart
const defaultTopN = 5

// AnalyticsResponse is the report plus its ranked views
type AnalyticsResponse struct {
	analytics.Report
	TopCategories     []analytics.CategoryCount   `json:"topCategories"`
	SoonestCategories []analytics.CategoryAverage `json:"soonestCategories"`
}

// AnalyticsHandler serves inventory statistics
type AnalyticsHandler struct {
	store *inventory.Store
}

// NewAnalyticsHandler creates a handler reading from store
func NewAnalyticsHandler(store *inventory.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// RegisterRoutes mounts GET /analytics on router
func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics", h.GetAnalytics)
}

// GetAnalytics summarizes the current inventory. ?top= sets the number of
// ranked categories.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	top := defaultTopN
	if v := c.Query("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "top must be a positive integer"})
			return
		}
		top = n
	}

	report := analytics.Summarize(h.store.List(), h.store.Now())
	c.JSON(http.StatusOK, AnalyticsResponse{
		Report:            report,
		TopCategories:     report.TopCategories(top),
		SoonestCategories: report.SoonestCategories(top),
	})
}
