// Package expiry estimates food expiry dates from storage conditions and
// classifies how fresh an item is relative to a point in time.
package expiry

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pageza/freshkeep/backend/internal/models"
)

const (
	jitterMin  = 0.9
	jitterSpan = 0.2

	// minPredictedDays keeps every prediction strictly in the future even
	// for the harshest conditions (hot, humid, unpackaged seafood).
	minPredictedDays = 1
)

// Predictor turns storage conditions into a predicted expiry date. The
// random source and clock are injectable so tests can pin both.
type Predictor struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// Option configures a Predictor
type Option func(*Predictor)

// WithRand sets the source used for the jitter term
func WithRand(r *rand.Rand) Option {
	return func(p *Predictor) {
		p.rnd = r
	}
}

// WithSeed seeds a deterministic PCG source for the jitter term
func WithSeed(seed1, seed2 uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed1, seed2)))
}

// WithClock sets the function used to read the current time
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) {
		p.now = now
	}
}

// NewPredictor creates a Predictor. Without options it draws jitter from a
// randomly seeded source and reads the wall clock.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rnd == nil {
		p.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

// NominalDays is the shelf life in days before jitter and rounding
func NominalDays(foodType models.FoodType, temperature, humidity float64, packaging models.Packaging) float64 {
	return BaseDays(foodType) *
		TemperatureFactor(temperature) *
		HumidityFactor(humidity, foodType) *
		PackagingFactor(packaging)
}

// PredictDays returns the jittered shelf life rounded to whole days, never
// less than one day.
func (p *Predictor) PredictDays(foodType models.FoodType, temperature, humidity float64, packaging models.Packaging) int {
	days := roundHalfUp(NominalDays(foodType, temperature, humidity, packaging) * p.jitter())
	if days < minPredictedDays {
		return minPredictedDays
	}
	return days
}

// Predict returns the expiry timestamp: now plus the predicted whole days
func (p *Predictor) Predict(foodType models.FoodType, temperature, humidity float64, packaging models.Packaging) time.Time {
	days := p.PredictDays(foodType, temperature, humidity, packaging)
	return p.now().AddDate(0, 0, days)
}

// PredictItem computes the expiry date of an item from its storage conditions
func (p *Predictor) PredictItem(item models.FoodItem) time.Time {
	return p.Predict(item.FoodType, item.Temperature, item.Humidity, item.Packaging)
}

// Now reads the predictor's clock
func (p *Predictor) Now() time.Time {
	return p.now()
}

func (p *Predictor) jitter() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return jitterMin + p.rnd.Float64()*jitterSpan
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// DayRange returns the smallest and largest whole-day predictions the jitter
// can produce for the given conditions
func DayRange(foodType models.FoodType, temperature, humidity float64, packaging models.Packaging) (lo, hi int) {
	nominal := NominalDays(foodType, temperature, humidity, packaging)
	lo = max(roundHalfUp(nominal*jitterMin), minPredictedDays)
	hi = max(roundHalfUp(nominal*(jitterMin+jitterSpan)), minPredictedDays)
	return lo, hi
}
