// ABOUTME: Shared fixtures for services tests
// ABOUTME: Small synthetic catalogs and profiles with predictable nutrient values

package services

import (
	"fmt"

	"github.com/markalston/vegan-menu-optimizer/models"
)

func testProfile() models.UserProfile {
	return models.UserProfile{
		Age:           30,
		Gender:        models.GenderMale,
		WeightKg:      75,
		HeightCm:      180,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalMaintain,
	}
}

// testItem builds a vegan item with nutrients scaled by factor
func testItem(id string, cat models.MealCategory, factor float64) models.CatalogItem {
	return models.CatalogItem{
		ID:       id,
		Name:     "Item " + id,
		Category: cat,
		Nutrients: models.NutrientProfile{
			Calories:      700 * factor,
			Protein:       22 * factor,
			Carbohydrates: 100 * factor,
			Fat:           25 * factor,
			Fiber:         10 * factor,
			Iron:          6 * factor,
			Calcium:       350 * factor,
			Magnesium:     120 * factor,
			Zinc:          5 * factor,
			VitaminB12:    0.8 * factor,
			VitaminD:      5 * factor,
			VitaminB6:     0.5 * factor,
			Folate:        130 * factor,
			Omega3:        0.5 * factor,
			Omega6:        5 * factor,
			VitaminC:      30 * factor,
		},
		CostPerServing:  2.0 * factor,
		CarbonFootprint: 0.5,
		EcoScore:        85,
		EcoGrade:        "A",
		CookingMinutes:  15,
		Difficulty:      models.DifficultyEasy,
		Ingredients:     []string{"ingredient " + id, "shared base"},
		Vegan:           true,
	}
}

// testCatalogItems returns n varied items for each of breakfast, lunch and dinner
func testCatalogItems(n int) []models.CatalogItem {
	var items []models.CatalogItem
	for _, cat := range []models.MealCategory{models.CategoryBreakfast, models.CategoryLunch, models.CategoryDinner} {
		for i := 0; i < n; i++ {
			factor := 0.5 + float64(i)*0.25
			items = append(items, testItem(fmt.Sprintf("%s-%d", cat, i), cat, factor))
		}
	}
	return items
}

func poolsFor(items []models.CatalogItem) map[models.MealCategory][]models.CatalogItem {
	pools := make(map[models.MealCategory][]models.CatalogItem)
	for _, item := range items {
		pools[item.Category] = append(pools[item.Category], item)
	}
	return pools
}

// fakeCatalog satisfies CatalogSource
type fakeCatalog struct {
	items []models.CatalogItem
}

func (f *fakeCatalog) QueryByCategory(cat models.MealCategory, pred func(models.CatalogItem) bool) []models.CatalogItem {
	var out []models.CatalogItem
	for _, item := range f.items {
		if item.Category == cat && (pred == nil || pred(item)) {
			out = append(out, item)
		}
	}
	return out
}

func threeMeals() []models.MealCategory {
	return []models.MealCategory{models.CategoryBreakfast, models.CategoryLunch, models.CategoryDinner}
}

func smallConfig(seed uint64) OptimizerConfig {
	cfg := StandardOptimizerConfig()
	cfg.PopulationSize = 20
	cfg.Generations = 15
	cfg.Workers = 3
	cfg.Seed = seed
	return cfg
}
