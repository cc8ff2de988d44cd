// ABOUTME: Tests for the nutrient requirement calculator
// ABOUTME: Validates BMR formulas, goal factors, vegan multipliers and input validation

package services

import (
	"errors"
	"math"
	"testing"

	"github.com/markalston/vegan-menu-optimizer/models"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculate_MaleModerateExample(t *testing.T) {
	// BMR = 88.362 + 13.397*75 + 4.799*180 - 5.677*30 = 1786.647
	// TDEE = 1786.647 * 1.55 = 2769.30
	calc := NewRequirementsCalculator(0)
	targets, err := calc.Calculate(testProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !approxEqual(targets.BMR, 1786.647, 0.01) {
		t.Errorf("Expected BMR 1786.647, got %f", targets.BMR)
	}
	if !approxEqual(targets.TDEE, 2769.303, 0.01) {
		t.Errorf("Expected TDEE 2769.303, got %f", targets.TDEE)
	}
	if targets.GoalFactor != 1.0 {
		t.Errorf("Expected goal factor 1.0, got %f", targets.GoalFactor)
	}
	if !approxEqual(targets.Daily.Calories, targets.TDEE, 1e-9) {
		t.Errorf("Expected calories equal to TDEE for maintain, got %f", targets.Daily.Calories)
	}
	if !approxEqual(targets.Daily.Protein, 0.83*75, 1e-9) {
		t.Errorf("Expected protein 62.25, got %f", targets.Daily.Protein)
	}
	if !approxEqual(targets.Daily.Fat, 0.30*targets.Daily.Calories/9, 1e-9) {
		t.Errorf("Expected fat 30%% of kcal, got %f", targets.Daily.Fat)
	}
	if !approxEqual(targets.Daily.Iron, 11*1.8, 1e-9) {
		t.Errorf("Expected vegan iron 19.8, got %f", targets.Daily.Iron)
	}
	if !approxEqual(targets.Daily.Zinc, 11*1.5, 1e-9) {
		t.Errorf("Expected vegan zinc 16.5, got %f", targets.Daily.Zinc)
	}
	if targets.Daily.Fiber != 30 {
		t.Errorf("Expected fiber 30, got %f", targets.Daily.Fiber)
	}
}

func TestCalculate_FemaleTDEEIsLower(t *testing.T) {
	calc := NewRequirementsCalculator(0)
	male, err := calc.Calculate(testProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	female, err := calc.Calculate(models.UserProfile{
		Age:           28,
		Gender:        models.GenderFemale,
		WeightKg:      65,
		HeightCm:      165,
		ActivityLevel: models.ActivityModerate,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if female.TDEE >= male.TDEE {
		t.Errorf("Expected female TDEE %f < male TDEE %f", female.TDEE, male.TDEE)
	}
	if !approxEqual(female.BMR, 1438.578, 0.01) {
		t.Errorf("Expected female BMR 1438.578, got %f", female.BMR)
	}
	if !approxEqual(female.Daily.Iron, 16*1.8, 1e-9) {
		t.Errorf("Expected female vegan iron 28.8, got %f", female.Daily.Iron)
	}
	if female.Daily.Magnesium != 300 {
		t.Errorf("Expected female magnesium 300, got %f", female.Daily.Magnesium)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewRequirementsCalculator(0)
	first, _ := calc.Calculate(testProfile())
	for i := 0; i < 10; i++ {
		next, _ := calc.Calculate(testProfile())
		if next != first {
			t.Fatalf("Expected identical targets on run %d", i)
		}
	}
}

func TestCalculate_GoalFactors(t *testing.T) {
	tests := []struct {
		name       string
		loseFactor float64
		goal       models.Goal
		want       float64
	}{
		{"maintain", 0, models.GoalMaintain, 1.0},
		{"empty goal maintains", 0, "", 1.0},
		{"lose default", 0, models.GoalLose, 0.8},
		{"lose configured", 0.85, models.GoalLose, 0.85},
		{"gain", 0, models.GoalGain, 1.15},
		{"case insensitive", 0, "GAIN", 1.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			p.Goal = tt.goal
			targets, err := NewRequirementsCalculator(tt.loseFactor).Calculate(p)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if targets.GoalFactor != tt.want {
				t.Errorf("Expected goal factor %f, got %f", tt.want, targets.GoalFactor)
			}
			if !approxEqual(targets.Daily.Calories, targets.TDEE*tt.want, 1e-9) {
				t.Errorf("Expected calories %f, got %f", targets.TDEE*tt.want, targets.Daily.Calories)
			}
		})
	}
}

func TestCalculate_CarbohydrateFloor(t *testing.T) {
	p := models.UserProfile{Age: 80, Gender: models.GenderFemale, WeightKg: 35, HeightCm: 140, ActivityLevel: models.ActivitySedentary, Goal: models.GoalLose}
	targets, err := NewRequirementsCalculator(0).Calculate(p)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if targets.Daily.Carbohydrates < CarbohydrateFloorGrams {
		t.Errorf("Expected carbohydrates at least %d, got %f", CarbohydrateFloorGrams, targets.Daily.Carbohydrates)
	}
}

func TestCalculate_AgeOverrides(t *testing.T) {
	calc := NewRequirementsCalculator(0)

	older := models.UserProfile{Age: 55, Gender: models.GenderFemale, WeightKg: 60, HeightCm: 160, ActivityLevel: models.ActivityLight}
	targets, err := calc.Calculate(older)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !approxEqual(targets.Daily.Iron, 10*1.8, 1e-9) {
		t.Errorf("Expected post-50 female iron 18, got %f", targets.Daily.Iron)
	}
	if targets.Daily.Calcium != 1200 {
		t.Errorf("Expected calcium 1200 over 50, got %f", targets.Daily.Calcium)
	}
	if targets.Daily.VitaminD != 15 {
		t.Errorf("Expected vitamin D 15 at 55, got %f", targets.Daily.VitaminD)
	}

	elderly := older
	elderly.Age = 75
	targets, _ = calc.Calculate(elderly)
	if targets.Daily.VitaminD != 20 {
		t.Errorf("Expected vitamin D 20 over 70, got %f", targets.Daily.VitaminD)
	}
}

func TestCalculate_InvalidProfiles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.UserProfile)
		field  string
	}{
		{"zero age", func(p *models.UserProfile) { p.Age = 0 }, "age"},
		{"negative weight", func(p *models.UserProfile) { p.WeightKg = -1 }, "weight_kg"},
		{"zero height", func(p *models.UserProfile) { p.HeightCm = 0 }, "height_cm"},
		{"unknown gender", func(p *models.UserProfile) { p.Gender = "other" }, "gender"},
		{"unknown activity", func(p *models.UserProfile) { p.ActivityLevel = "extreme" }, "activity_level"},
		{"unknown goal", func(p *models.UserProfile) { p.Goal = "bulk" }, "goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.mutate(&p)
			_, err := NewRequirementsCalculator(0).Calculate(p)

			var cfgErr *models.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestCalculate_ImplausibleBiometrics(t *testing.T) {
	// Positive inputs whose formula result is not positive
	p := models.UserProfile{Age: 120, Gender: models.GenderMale, WeightKg: 1, HeightCm: 1, ActivityLevel: models.ActivitySedentary}
	_, err := NewRequirementsCalculator(0).Calculate(p)

	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}
