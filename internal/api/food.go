package api

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

var sortKeys = []string{inventory.SortByExpiryDate, inventory.SortByName, inventory.SortByAddedDate}

// sortKey resolves a ?sort= value to its canonical key. Blank means the
// default expiry order.
func sortKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inventory.SortByExpiryDate, true
	}
	for _, key := range sortKeys {
		if strings.EqualFold(key, raw) {
			return key, true
		}
	}
	return "", false
}

// FoodHandler serves the inventory endpoints
type FoodHandler struct {
	store  *inventory.Store
	logger *zap.Logger
}

// NewFoodHandler creates a handler backed by store
func NewFoodHandler(store *inventory.Store, logger *zap.Logger) *FoodHandler {
	return &FoodHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes mounts the /foods routes on router
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.POST("", h.CreateFood)
		foods.POST("/estimate", h.EstimateFood)
		foods.GET("/:id", h.GetFood)
		foods.PATCH("/:id", h.UpdateFood)
		foods.DELETE("/:id", h.DeleteFood)
	}
}

// ListFoods returns the items matching ?q=, ?status= and ?sort=
func (h *FoodHandler) ListFoods(c *gin.Context) {
	opts := inventory.ListOptions{
		Search: c.Query("q"),
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
	}
	if opts.Status == "" {
		opts.Status = inventory.StatusAll
	}
	if opts.Status != inventory.StatusAll && !slices.Contains(models.Statuses, models.Status(opts.Status)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status filter " + opts.Status})
		return
	}

	sortBy, ok := sortKey(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown sort key " + c.Query("sort")})
		return
	}
	opts.SortBy = sortBy

	now := h.store.Now()
	c.JSON(http.StatusOK, newListResponse(h.store.Query(opts, now), now))
}

// GetFood returns one item
func (h *FoodHandler) GetFood(c *gin.Context) {
	item, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "food item not found"})
		return
	}
	c.JSON(http.StatusOK, newFoodItemResponse(item, h.store.Now()))
}

// CreateFood validates the input and adds a new item
func (h *FoodHandler) CreateFood(c *gin.Context) {
	var in models.FoodItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := models.ValidateInput(in); err != nil {
		h.respondInvalid(c, err)
		return
	}

	item, err := h.store.Add(c.Request.Context(), in)
	if err != nil {
		h.respondPersistError(c, err)
		return
	}

	h.logger.Info("food item added",
		zap.String("id", item.ID),
		zap.String("food_type", string(item.FoodType)),
		zap.Time("expiry_date", item.ExpiryDate),
	)
	c.JSON(http.StatusCreated, newFoodItemResponse(item, h.store.Now()))
}

// UpdateFood applies a partial update and recomputes the expiry date
func (h *FoodHandler) UpdateFood(c *gin.Context) {
	var patch models.FoodItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := models.ValidatePatch(patch); err != nil {
		h.respondInvalid(c, err)
		return
	}

	item, found, err := h.store.Update(c.Request.Context(), c.Param("id"), patch)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "food item not found"})
		return
	}
	if err != nil {
		h.respondPersistError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFoodItemResponse(item, h.store.Now()))
}

// DeleteFood removes an item. Deleting an unknown id succeeds.
func (h *FoodHandler) DeleteFood(c *gin.Context) {
	if _, err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondPersistError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OptionsHandler lists the enumerations the client needs to build forms
func OptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, newOptionsResponse(sortKeys))
}

func (h *FoodHandler) respondInvalid(c *gin.Context, err error) {
	var fields models.ValidationErrors
	if errors.As(err, &fields) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (h *FoodHandler) respondPersistError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, inventory.ErrPersist) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "change applied but could not be saved"})
		return
	}
	h.logger.Error("inventory operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
