package expiry

import (
	"math"
	"time"

	"github.com/pageza/freshkeep/backend/internal/models"
)

const (
	day = 24 * time.Hour

	criticalDays = 2
	warningDays  = 5
)

// DaysRemaining is the number of days until expiry, rounded up. Items that
// expired less than a day ago report 0.
func DaysRemaining(expiryDate, now time.Time) int {
	return int(math.Ceil(float64(expiryDate.Sub(now)) / float64(day)))
}

// StatusAt classifies an expiry date relative to now
func StatusAt(expiryDate, now time.Time) models.Status {
	return StatusForDays(DaysRemaining(expiryDate, now))
}

// StatusForDays maps a day count onto a freshness state
func StatusForDays(days int) models.Status {
	switch {
	case days < 0:
		return models.StatusExpired
	case days <= criticalDays:
		return models.StatusCritical
	case days <= warningDays:
		return models.StatusWarning
	default:
		return models.StatusGood
	}
}
