// Command seed adds a handful of sample items to the configured inventory
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/logger"
	"github.com/pageza/freshkeep/backend/internal/models"
)

var sampleItems = []models.FoodItemInput{
	{Name: "Milk", FoodType: models.FoodTypeDairy, Temperature: models.Float(4), Humidity: models.Float(50), Packaging: models.PackagingSealed},
	{Name: "Strawberries", FoodType: models.FoodTypeFruits, Temperature: models.Float(4), Humidity: models.Float(90), Packaging: models.PackagingPlastic},
	{Name: "Spinach", FoodType: models.FoodTypeVegetables, Temperature: models.Float(2), Humidity: models.Float(95), Packaging: models.PackagingPlastic},
	{Name: "Chicken breast", FoodType: models.FoodTypeMeat, Temperature: models.Float(2), Humidity: models.Float(60), Packaging: models.PackagingVacuum},
	{Name: "Salmon fillet", FoodType: models.FoodTypeSeafood, Temperature: models.Float(1), Humidity: models.Float(70), Packaging: models.PackagingSealed},
	{Name: "Sourdough", FoodType: models.FoodTypeBakery, Temperature: models.Float(20), Humidity: models.Float(40), Packaging: models.PackagingPaper},
	{Name: "Lasagna", FoodType: models.FoodTypePrepared, Temperature: models.Float(4), Humidity: models.Float(50), Packaging: models.PackagingSealed, Notes: "leftovers"},
	{Name: "Chickpeas", FoodType: models.FoodTypeCanned, Temperature: models.Float(20), Humidity: models.Float(40), Packaging: models.PackagingSealed},
	{Name: "Peas", FoodType: models.FoodTypeFrozen, Temperature: models.Float(-18), Humidity: models.Float(30), Packaging: models.PackagingPlastic},
	{Name: "Rice", FoodType: models.FoodTypeDry, Temperature: models.Float(20), Humidity: models.Float(30), Packaging: models.PackagingSealed},
}

func main() {
	reset := flag.Bool("reset", false, "remove existing items before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(zl)

	ctx := context.Background()
	repo, closeRepo, err := database.NewRepository(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open storage", zap.Error(err))
	}
	defer closeRepo()

	n, err := seed(ctx, repo, *reset, zl)
	if err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
	zl.Info("seeded inventory", zap.Int("items", n))
}

// seed adds sampleItems through the store so each one gets an id and a
// predicted expiry date
func seed(ctx context.Context, repo inventory.Repository, reset bool, zl *zap.Logger) (int, error) {
	store, err := inventory.NewStore(ctx, repo, expiry.NewPredictor(), inventory.WithLogger(zl))
	if err != nil {
		return 0, err
	}

	if reset {
		for _, item := range store.List() {
			if _, err := store.Delete(ctx, item.ID); err != nil {
				return 0, err
			}
		}
	}

	for _, in := range sampleItems {
		if err := models.ValidateInput(in); err != nil {
			return 0, err
		}
		if _, err := store.Add(ctx, in); err != nil {
			return 0, err
		}
	}
	return store.Len(), nil
}
