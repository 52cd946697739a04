package models

var foodTypeLabels = map[FoodType]string{
	FoodTypeFruits:     "Fruits",
	FoodTypeVegetables: "Vegetables",
	FoodTypeDairy:      "Dairy",
	FoodTypeMeat:       "Meat",
	FoodTypeSeafood:    "Seafood",
	FoodTypeBakery:     "Bakery",
	FoodTypePrepared:   "Prepared Meals",
	FoodTypeCanned:     "Canned Goods",
	FoodTypeFrozen:     "Frozen Foods",
	FoodTypeDry:        "Dry Goods",
}

var packagingLabels = map[Packaging]string{
	PackagingVacuum:  "Vacuum Sealed",
	PackagingSealed:  "Sealed Container",
	PackagingPlastic: "Plastic Packaging",
	PackagingPaper:   "Paper Packaging",
	PackagingNone:    "No Packaging",
}

// Label returns the display name, or the raw value when unknown
func (t FoodType) Label() string {
	if l, ok := foodTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Label returns the display name, or the raw value when unknown
func (p Packaging) Label() string {
	if l, ok := packagingLabels[p]; ok {
		return l
	}
	return string(p)
}

// DefaultInput is the pre-filled add form: a fruit kept in a refrigerator
// at mid humidity in plastic.
func DefaultInput() FoodItemInput {
	return FoodItemInput{
		FoodType:    FoodTypeFruits,
		Temperature: Float(4),
		Humidity:    Float(50),
		Packaging:   PackagingPlastic,
	}
}
