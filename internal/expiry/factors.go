package expiry

import "github.com/pageza/freshkeep/backend/internal/models"

// defaultBaseDays applies to categories missing from baseShelfLife
const defaultBaseDays = 5

// baseShelfLife is the nominal shelf life in days at refrigerator
// temperature, mid humidity and plastic packaging.
var baseShelfLife = map[models.FoodType]float64{
	models.FoodTypeFruits:     7,
	models.FoodTypeVegetables: 5,
	models.FoodTypeDairy:      10,
	models.FoodTypeMeat:       3,
	models.FoodTypeSeafood:    2,
	models.FoodTypeBakery:     4,
	models.FoodTypePrepared:   3,
	models.FoodTypeCanned:     730,
	models.FoodTypeFrozen:     180,
	models.FoodTypeDry:        365,
}

var packagingFactors = map[models.Packaging]float64{
	models.PackagingVacuum:  1.5,
	models.PackagingSealed:  1.2,
	models.PackagingPlastic: 1.0,
	models.PackagingPaper:   0.8,
	models.PackagingNone:    0.6,
}

// BaseDays returns the nominal shelf life for a category
func BaseDays(foodType models.FoodType) float64 {
	if days, ok := baseShelfLife[foodType]; ok {
		return days
	}
	return defaultBaseDays
}

// TemperatureFactor scales shelf life by storage temperature in °C.
// 4°C (refrigerator) is the baseline.
func TemperatureFactor(celsius float64) float64 {
	switch {
	case celsius <= 0:
		return 1.5
	case celsius <= 4:
		return 1.0
	case celsius <= 10:
		return 0.7
	case celsius <= 20:
		return 0.5
	case celsius <= 30:
		return 0.3
	default:
		return 0.1
	}
}

// HumidityFactor scales shelf life by relative humidity. Dry goods keep
// best in low humidity and fresh produce in mid to high humidity.
func HumidityFactor(humidity float64, foodType models.FoodType) float64 {
	switch foodType {
	case models.FoodTypeDry, models.FoodTypeBakery, models.FoodTypeCanned:
		switch {
		case humidity <= 30:
			return 1.2
		case humidity <= 50:
			return 1.0
		case humidity <= 70:
			return 0.8
		default:
			return 0.6
		}
	case models.FoodTypeFruits, models.FoodTypeVegetables:
		switch {
		case humidity <= 30:
			return 0.7
		case humidity <= 50:
			return 0.9
		case humidity <= 70:
			return 1.0
		case humidity <= 90:
			return 0.9
		default:
			return 0.7
		}
	default:
		switch {
		case humidity <= 30:
			return 1.1
		case humidity <= 50:
			return 1.0
		case humidity <= 70:
			return 0.9
		default:
			return 0.8
		}
	}
}

// PackagingFactor scales shelf life by packaging; unknown packaging is neutral
func PackagingFactor(packaging models.Packaging) float64 {
	if f, ok := packagingFactors[packaging]; ok {
		return f
	}
	return 1.0
}
