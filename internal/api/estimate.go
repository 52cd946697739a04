package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// EstimateResponse previews the expiry of an item before it is added
type EstimateResponse struct {
	NominalDays float64       `json:"nominalDays"`
	MinDays     int           `json:"minDays"`
	MaxDays     int           `json:"maxDays"`
	ExpiryDate  time.Time     `json:"expiryDate"`
	Status      models.Status `json:"status"`
}

// EstimateFood previews the predicted expiry for the posted conditions
func (h *FoodHandler) EstimateFood(c *gin.Context) {
	var cond models.Conditions
	if err := c.ShouldBindJSON(&cond); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := models.ValidateConditions(cond); err != nil {
		h.respondInvalid(c, err)
		return
	}

	nominal := expiry.NominalDays(cond.FoodType, cond.Celsius(), cond.RelativeHumidity(), cond.Packaging)
	lo, hi := expiry.DayRange(cond.FoodType, cond.Celsius(), cond.RelativeHumidity(), cond.Packaging)
	expiryDate := h.store.Estimate(cond)

	c.JSON(http.StatusOK, EstimateResponse{
		NominalDays: math.Round(nominal*100) / 100,
		MinDays:     lo,
		MaxDays:     hi,
		ExpiryDate:  expiryDate,
		Status:      expiry.StatusAt(expiryDate, h.store.Now()),
	})
}
