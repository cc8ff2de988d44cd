// ABOUTME: Catalog item model for recipes and food items offered to the optimizer
// ABOUTME: Includes meal categories and eco-score letter grading

package models

import "strings"

// MealCategory tags the meal slot an item can fill
type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategorySnack     MealCategory = "snack"
)

// Valid reports whether c is a known category
func (c MealCategory) Valid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack:
		return true
	}
	return false
}

// Difficulty is the preparation difficulty tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// CatalogItem is a recipe or food item. Read-only for the duration of a run.
type CatalogItem struct {
	ID              string          `json:"id" bson:"id"`
	Name            string          `json:"name" bson:"name"`
	Category        MealCategory    `json:"category" bson:"category"`
	Nutrients       NutrientProfile `json:"nutrients" bson:"nutrients"`
	CostPerServing  float64         `json:"cost_per_serving" bson:"cost_per_serving"`
	CarbonFootprint float64         `json:"carbon_footprint" bson:"carbon_footprint"` // kg CO2e per 100 g
	EcoScore        float64         `json:"eco_score" bson:"eco_score"`               // 0-100
	EcoGrade        string          `json:"eco_grade" bson:"eco_grade"`               // A+..E
	NutriScore      string          `json:"nutri_score,omitempty" bson:"nutri_score,omitempty"`
	CookingMinutes  int             `json:"cooking_minutes" bson:"cooking_minutes"`
	Difficulty      Difficulty      `json:"difficulty" bson:"difficulty"`
	Allergens       []string        `json:"allergens,omitempty" bson:"allergens,omitempty"`
	Ingredients     []string        `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	Tags            []string        `json:"tags,omitempty" bson:"tags,omitempty"`
	Vegan           bool            `json:"vegan" bson:"vegan"`
	Source          string          `json:"source,omitempty" bson:"source,omitempty"`
}

// HasTag reports whether the item carries tag (case-insensitive)
func (i CatalogItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Eco grade thresholds on the 0-100 eco-score scale
var ecoGradeThresholds = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{75, "A"},
	{60, "B"},
	{40, "C"},
	{20, "D"},
}

// EcoGradeFor buckets a 0-100 eco-score into the six-point letter scale
func EcoGradeFor(score float64) string {
	for _, t := range ecoGradeThresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return "E"
}

// EcoScoreForGrade returns the bucket midpoint for a letter grade, or -1
// when the grade is unknown
func EcoScoreForGrade(grade string) float64 {
	switch strings.ToUpper(strings.TrimSpace(grade)) {
	case "A+":
		return 95
	case "A":
		return 82.5
	case "B":
		return 67.5
	case "C":
		return 50
	case "D":
		return 30
	case "E":
		return 10
	}
	return -1
}
