// ABOUTME: Tests for profile, preference and nutrient models
// ABOUTME: Validates normalization, defaults, validation errors and nutrient arithmetic

package models

import (
	"errors"
	"testing"
	"time"
)

func TestUserProfile_Normalize(t *testing.T) {
	p := UserProfile{Gender: " Female ", ActivityLevel: "VERY_ACTIVE"}.Normalize()

	if p.Gender != GenderFemale {
		t.Errorf("Expected gender female, got %q", p.Gender)
	}
	if p.ActivityLevel != ActivityVeryActive {
		t.Errorf("Expected very_active, got %q", p.ActivityLevel)
	}
	if p.Goal != GoalMaintain {
		t.Errorf("Expected default goal maintain, got %q", p.Goal)
	}
}

func TestUserProfile_Validate(t *testing.T) {
	valid := UserProfile{Age: 30, Gender: GenderMale, WeightKg: 75, HeightCm: 180, ActivityLevel: ActivityModerate}

	tests := []struct {
		name   string
		modify func(p *UserProfile)
		field  string
	}{
		{"valid", func(p *UserProfile) {}, ""},
		{"zero age", func(p *UserProfile) { p.Age = 0 }, "age"},
		{"negative weight", func(p *UserProfile) { p.WeightKg = -1 }, "weight_kg"},
		{"zero height", func(p *UserProfile) { p.HeightCm = 0 }, "height_cm"},
		{"unknown gender", func(p *UserProfile) { p.Gender = "other" }, "gender"},
		{"unknown activity", func(p *UserProfile) { p.ActivityLevel = "extreme" }, "activity_level"},
		{"unknown goal", func(p *UserProfile) { p.Goal = "bulk" }, "goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			err := p.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestPreferences_WithDefaults(t *testing.T) {
	p := Preferences{}.WithDefaults()

	if p.People != 1 || p.Days != 7 {
		t.Errorf("Expected 1 person for 7 days, got %d for %d", p.People, p.Days)
	}
	if p.BudgetTier != BudgetMedium || p.CookingTime != CookingMedium || p.Preset != PresetStandard {
		t.Errorf("Unexpected defaults: %+v", p)
	}
	if len(p.MealCategories) != 3 || p.MealCategories[0] != CategoryBreakfast {
		t.Errorf("Expected breakfast, lunch and dinner, got %v", p.MealCategories)
	}

	kept := Preferences{People: 4, MealCategories: []MealCategory{CategorySnack}}.WithDefaults()
	if kept.People != 4 || len(kept.MealCategories) != 1 {
		t.Errorf("Expected explicit values to be kept, got %+v", kept)
	}
}

func TestPreferences_Validate(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		field string
	}{
		{"defaults", Preferences{}, ""},
		{"max days", Preferences{Days: MaxDays}, ""},
		{"too many days", Preferences{Days: MaxDays + 1}, "days"},
		{"bad budget", Preferences{BudgetTier: "luxury"}, "budget_tier"},
		{"bad cooking time", Preferences{CookingTime: "slow"}, "cooking_time"},
		{"bad preset", Preferences{Preset: "turbo"}, "preset"},
		{"bad category", Preferences{MealCategories: []MealCategory{"brunch"}}, "meal_categories"},
		{"duplicate category", Preferences{MealCategories: []MealCategory{CategoryLunch, CategoryLunch}}, "meal_categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefs.WithDefaults().Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Expected ConfigurationError on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCookingTimeTier_MaxMinutes(t *testing.T) {
	if CookingQuick.MaxMinutes() != 20 {
		t.Errorf("Expected quick limit 20, got %d", CookingQuick.MaxMinutes())
	}
	if CookingMedium.MaxMinutes() != 45 {
		t.Errorf("Expected medium limit 45, got %d", CookingMedium.MaxMinutes())
	}
	if CookingElaborate.MaxMinutes() != 0 {
		t.Errorf("Expected no limit for elaborate, got %d", CookingElaborate.MaxMinutes())
	}
}

func TestNutrientProfile_Arithmetic(t *testing.T) {
	a := NutrientProfile{Calories: 500, Protein: 20, VitaminC: 10}
	b := NutrientProfile{Calories: 300, Protein: 10, Iron: 4}

	sum := a.Add(b)
	if sum.Calories != 800 || sum.Protein != 30 || sum.Iron != 4 || sum.VitaminC != 10 {
		t.Errorf("Unexpected sum: %+v", sum)
	}

	half := sum.Scale(0.5)
	if half.Calories != 400 || half.Iron != 2 {
		t.Errorf("Unexpected scaled profile: %+v", half)
	}
}

func TestNutrientProfile_GetCoversTrackedNutrients(t *testing.T) {
	p := NutrientProfile{
		Calories: 1, Protein: 2, Carbohydrates: 3, Fat: 4, Fiber: 5, Iron: 6, Calcium: 7, Magnesium: 8,
		Zinc: 9, VitaminB12: 10, VitaminD: 11, VitaminB6: 12, Folate: 13, Omega3: 14, Omega6: 15, VitaminC: 16,
	}

	for i, n := range TrackedNutrients {
		if got := p.Get(n); got != float64(i+1) {
			t.Errorf("Expected %s = %d, got %g", n, i+1, got)
		}
		if n.Unit() == "" {
			t.Errorf("Expected a unit for %s", n)
		}
	}
	if p.Get("sodium") != 0 {
		t.Error("Expected 0 for an untracked nutrient")
	}
}

func TestNutrientValues_Resolve(t *testing.T) {
	protein := 12.5
	negative := -3.0
	v := NutrientValues{Protein: &protein, Iron: &negative}

	p := v.Resolve()
	if p.Protein != 12.5 {
		t.Errorf("Expected protein 12.5, got %g", p.Protein)
	}
	if p.Iron != 0 || p.Calories != 0 {
		t.Errorf("Expected missing and negative values to resolve to 0, got %+v", p)
	}
}

func TestEcoGrades(t *testing.T) {
	tests := []struct {
		score float64
		grade string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.9, "A"},
		{75, "A"},
		{60, "B"},
		{40, "C"},
		{20, "D"},
		{19.9, "E"},
		{0, "E"},
	}
	for _, tt := range tests {
		if got := EcoGradeFor(tt.score); got != tt.grade {
			t.Errorf("EcoGradeFor(%g): expected %s, got %s", tt.score, tt.grade, got)
		}
	}

	if EcoGradeFor(EcoScoreForGrade("b")) != "B" {
		t.Error("Expected grade midpoint to map back to its grade")
	}
	if EcoScoreForGrade("Z") != -1 {
		t.Error("Expected -1 for an unknown grade")
	}
}

func TestCatalogItem_HasTag(t *testing.T) {
	item := CatalogItem{Tags: []string{"Gluten-Free", "high-protein"}}

	if !item.HasTag("gluten-free") {
		t.Error("Expected case-insensitive tag match")
	}
	if item.HasTag("nut-free") {
		t.Error("Expected no match for absent tag")
	}
}

func TestMenu_Totals(t *testing.T) {
	menu := Menu{Days: []DayPlan{
		{Day: 1, Meals: []Meal{{Nutrients: NutrientProfile{Calories: 400}}, {Nutrients: NutrientProfile{Calories: 600}}}},
		{Day: 2, Meals: []Meal{{Nutrients: NutrientProfile{Calories: 500}}}},
	}}

	if menu.MealCount() != 3 {
		t.Errorf("Expected 3 meals, got %d", menu.MealCount())
	}
	if menu.NutrientTotals().Calories != 1500 {
		t.Errorf("Expected 1500 kcal, got %g", menu.NutrientTotals().Calories)
	}
}

func TestErrors(t *testing.T) {
	err := NewConfigurationError("days", "must be at most 28, got 30")
	if err.Error() != "configuration error: days: must be at most 28, got 30" {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	cause := errors.New("timeout")
	degraded := &DegradedEnrichmentError{ItemID: "tofu", Err: cause}
	if !errors.Is(degraded, cause) {
		t.Error("Expected DegradedEnrichmentError to unwrap its cause")
	}
}

func TestSavedPlan_Summary(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	plan := SavedPlan{
		ID:          "p1",
		CreatedAt:   created,
		Preferences: Preferences{Days: 5, People: 2},
		Response: OptimizeResponse{
			OptimizationScore: 77,
			Analysis:          MenuAnalysis{EcoRating: "A"},
			Metadata:          Metadata{Preset: PresetEnhanced},
		},
	}

	s := plan.Summary()
	if s.ID != "p1" || !s.CreatedAt.Equal(created) || s.Days != 5 || s.People != 2 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.OptimizationScore != 77 || s.EcoRating != "A" || s.Preset != PresetEnhanced {
		t.Errorf("Unexpected summary scores: %+v", s)
	}
}
