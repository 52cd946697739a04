package models

import (
	"time"
)

// FoodType is the category a food item belongs to
type FoodType string

const (
	FoodTypeFruits     FoodType = "fruits"
	FoodTypeVegetables FoodType = "vegetables"
	FoodTypeDairy      FoodType = "dairy"
	FoodTypeMeat       FoodType = "meat"
	FoodTypeSeafood    FoodType = "seafood"
	FoodTypeBakery     FoodType = "bakery"
	FoodTypePrepared   FoodType = "prepared"
	FoodTypeCanned     FoodType = "canned"
	FoodTypeFrozen     FoodType = "frozen"
	FoodTypeDry        FoodType = "dry"
)

// FoodTypes lists every supported category in display order
var FoodTypes = []FoodType{
	FoodTypeFruits,
	FoodTypeVegetables,
	FoodTypeDairy,
	FoodTypeMeat,
	FoodTypeSeafood,
	FoodTypeBakery,
	FoodTypePrepared,
	FoodTypeCanned,
	FoodTypeFrozen,
	FoodTypeDry,
}

// Packaging describes how a food item is stored
type Packaging string

const (
	PackagingVacuum  Packaging = "vacuum"
	PackagingSealed  Packaging = "sealed"
	PackagingPlastic Packaging = "plastic"
	PackagingPaper   Packaging = "paper"
	PackagingNone    Packaging = "none"
)

// PackagingOptions lists every supported packaging in display order
var PackagingOptions = []Packaging{
	PackagingVacuum,
	PackagingSealed,
	PackagingPlastic,
	PackagingPaper,
	PackagingNone,
}

// Status is the freshness state derived from days remaining until expiry
type Status string

const (
	StatusExpired  Status = "expired"
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusGood     Status = "good"
)

// Statuses lists the freshness states from worst to best
var Statuses = []Status{StatusExpired, StatusCritical, StatusWarning, StatusGood}

// FoodItem is a tracked perishable item. ExpiryDate is always derived from
// the storage conditions and is never accepted from callers.
type FoodItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FoodType    FoodType  `json:"foodType"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Packaging   Packaging `json:"packaging"`
	Notes       string    `json:"notes,omitempty"`
	ExpiryDate  time.Time `json:"expiryDate"`
	AddedDate   time.Time `json:"addedDate"`
}

// FoodItemInput holds the caller-supplied fields of a new food item.
// Temperature and humidity are pointers so an absent key is rejected
// instead of read as zero.
type FoodItemInput struct {
	Name        string    `json:"name" validate:"notblank"`
	FoodType    FoodType  `json:"foodType" validate:"required,foodtype"`
	Temperature *float64  `json:"temperature" validate:"required,gte=-30,lte=50"`
	Humidity    *float64  `json:"humidity" validate:"required,gte=0,lte=100"`
	Packaging   Packaging `json:"packaging" validate:"required,packaging"`
	Notes       string    `json:"notes"`
}

// Conditions are the storage conditions an expiry estimate depends on
type Conditions struct {
	FoodType    FoodType  `json:"foodType" validate:"required,foodtype"`
	Temperature *float64  `json:"temperature" validate:"required,gte=-30,lte=50"`
	Humidity    *float64  `json:"humidity" validate:"required,gte=0,lte=100"`
	Packaging   Packaging `json:"packaging" validate:"required,packaging"`
}

// Celsius returns the temperature, or zero when it is unset
func (c Conditions) Celsius() float64 {
	return deref(c.Temperature)
}

// RelativeHumidity returns the humidity, or zero when it is unset
func (c Conditions) RelativeHumidity() float64 {
	return deref(c.Humidity)
}

// Float returns a pointer to v, for filling inputs in code
func Float(v float64) *float64 {
	return &v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FoodItemPatch is a partial update. Nil fields keep their current value.
type FoodItemPatch struct {
	Name        *string    `json:"name,omitempty" validate:"omitnil,notblank"`
	FoodType    *FoodType  `json:"foodType,omitempty" validate:"omitnil,foodtype"`
	Temperature *float64   `json:"temperature,omitempty" validate:"omitnil,gte=-30,lte=50"`
	Humidity    *float64   `json:"humidity,omitempty" validate:"omitnil,gte=0,lte=100"`
	Packaging   *Packaging `json:"packaging,omitempty" validate:"omitnil,packaging"`
	Notes       *string    `json:"notes,omitempty"`
}

// NewFoodItem copies the input fields into a record without identity or dates
func NewFoodItem(in FoodItemInput) FoodItem {
	return FoodItem{
		Name:        in.Name,
		FoodType:    in.FoodType,
		Temperature: deref(in.Temperature),
		Humidity:    deref(in.Humidity),
		Packaging:   in.Packaging,
		Notes:       in.Notes,
	}
}

// Apply merges the non-nil patch fields into the item
func (p FoodItemPatch) Apply(item *FoodItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.FoodType != nil {
		item.FoodType = *p.FoodType
	}
	if p.Temperature != nil {
		item.Temperature = *p.Temperature
	}
	if p.Humidity != nil {
		item.Humidity = *p.Humidity
	}
	if p.Packaging != nil {
		item.Packaging = *p.Packaging
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
}

// IsValid reports whether the food type is a known category
func (t FoodType) IsValid() bool {
	for _, ft := range FoodTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// IsValid reports whether the packaging is a known option
func (p Packaging) IsValid() bool {
	for _, opt := range PackagingOptions {
		if opt == p {
			return true
		}
	}
	return false
}
