// ABOUTME: User biometric profile, dietary restrictions and menu preferences
// ABOUTME: Input shapes for requirement calculation and menu optimization

package models

import (
	"fmt"
	"strings"
)

// Gender selects the metabolic-rate formula branch
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel selects the TDEE multiplier
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal selects the energy adjustment applied to TDEE
type Goal string

const (
	GoalMaintain Goal = "maintain"
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
)

// UserProfile holds the biometric inputs for one optimization request
type UserProfile struct {
	Age           int           `json:"age" bson:"age"`
	Gender        Gender        `json:"gender" bson:"gender"`
	WeightKg      float64       `json:"weight_kg" bson:"weight_kg"`
	HeightCm      float64       `json:"height_cm" bson:"height_cm"`
	ActivityLevel ActivityLevel `json:"activity_level" bson:"activity_level"`
	Goal          Goal          `json:"goal,omitempty" bson:"goal,omitempty"`
}

// Normalize lowercases enum fields and fills the default goal
func (p UserProfile) Normalize() UserProfile {
	p.Gender = Gender(strings.ToLower(strings.TrimSpace(string(p.Gender))))
	p.ActivityLevel = ActivityLevel(strings.ToLower(strings.TrimSpace(string(p.ActivityLevel))))
	p.Goal = Goal(strings.ToLower(strings.TrimSpace(string(p.Goal))))
	if p.Goal == "" {
		p.Goal = GoalMaintain
	}
	return p
}

// Validate reports the first invalid biometric field as a ConfigurationError
func (p UserProfile) Validate() error {
	if p.Age <= 0 {
		return NewConfigurationError("age", fmt.Sprintf("must be positive, got %d", p.Age))
	}
	if p.WeightKg <= 0 {
		return NewConfigurationError("weight_kg", fmt.Sprintf("must be positive, got %g", p.WeightKg))
	}
	if p.HeightCm <= 0 {
		return NewConfigurationError("height_cm", fmt.Sprintf("must be positive, got %g", p.HeightCm))
	}
	switch p.Gender {
	case GenderMale, GenderFemale:
	default:
		return NewConfigurationError("gender", fmt.Sprintf("unsupported value %q (male, female)", p.Gender))
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
	default:
		return NewConfigurationError("activity_level", fmt.Sprintf("unsupported value %q", p.ActivityLevel))
	}
	switch p.Goal {
	case GoalMaintain, GoalLose, GoalGain, "":
	default:
		return NewConfigurationError("goal", fmt.Sprintf("unsupported value %q", p.Goal))
	}
	return nil
}

// DietaryRestrictions is a filter predicate input; never mutated by the optimizer
type DietaryRestrictions struct {
	Allergens           []string `json:"allergens,omitempty" bson:"allergens,omitempty"`
	Intolerances        []string `json:"intolerances,omitempty" bson:"intolerances,omitempty"`
	Preferences         []string `json:"preferences,omitempty" bson:"preferences,omitempty"`
	ExcludedIngredients []string `json:"excluded_ingredients,omitempty" bson:"excluded_ingredients,omitempty"`
}

// PreferenceVegan is always in force for this domain
const PreferenceVegan = "vegan"

// BudgetTier keys the cost ceiling
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// CookingTimeTier bounds preparation time per meal
type CookingTimeTier string

const (
	CookingQuick     CookingTimeTier = "quick"
	CookingMedium    CookingTimeTier = "medium"
	CookingElaborate CookingTimeTier = "elaborate"
)

// MaxMinutes returns the cooking time limit for the tier; 0 means unlimited
func (t CookingTimeTier) MaxMinutes() int {
	switch t {
	case CookingQuick:
		return 20
	case CookingMedium:
		return 45
	default:
		return 0
	}
}

// OptimizerPreset names a predefined optimizer configuration
type OptimizerPreset string

const (
	PresetStandard OptimizerPreset = "standard"
	PresetEnhanced OptimizerPreset = "enhanced"
)

// Preferences shape the generated menu
type Preferences struct {
	People         int             `json:"people" bson:"people"`
	BudgetTier     BudgetTier      `json:"budget_tier" bson:"budget_tier"`
	CookingTime    CookingTimeTier `json:"cooking_time" bson:"cooking_time"`
	Days           int             `json:"days" bson:"days"`
	MealCategories []MealCategory  `json:"meal_categories" bson:"meal_categories"`
	Preset         OptimizerPreset `json:"preset,omitempty" bson:"preset,omitempty"`
	Seed           uint64          `json:"seed,omitempty" bson:"seed,omitempty"`
}

// MaxDays caps the menu length accepted by the planner
const MaxDays = 28

// WithDefaults fills unset preference fields
func (p Preferences) WithDefaults() Preferences {
	if p.People <= 0 {
		p.People = 1
	}
	if p.Days <= 0 {
		p.Days = 7
	}
	if p.BudgetTier == "" {
		p.BudgetTier = BudgetMedium
	}
	if p.CookingTime == "" {
		p.CookingTime = CookingMedium
	}
	if len(p.MealCategories) == 0 {
		p.MealCategories = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner}
	}
	if p.Preset == "" {
		p.Preset = PresetStandard
	}
	return p
}

// Validate checks preference values after defaults are applied
func (p Preferences) Validate() error {
	if p.Days > MaxDays {
		return NewConfigurationError("days", fmt.Sprintf("must be at most %d, got %d", MaxDays, p.Days))
	}
	switch p.BudgetTier {
	case BudgetLow, BudgetMedium, BudgetHigh:
	default:
		return NewConfigurationError("budget_tier", fmt.Sprintf("unsupported value %q", p.BudgetTier))
	}
	switch p.CookingTime {
	case CookingQuick, CookingMedium, CookingElaborate:
	default:
		return NewConfigurationError("cooking_time", fmt.Sprintf("unsupported value %q", p.CookingTime))
	}
	switch p.Preset {
	case PresetStandard, PresetEnhanced:
	default:
		return NewConfigurationError("preset", fmt.Sprintf("unsupported value %q", p.Preset))
	}
	seen := make(map[MealCategory]bool)
	for _, c := range p.MealCategories {
		if !c.Valid() {
			return NewConfigurationError("meal_categories", fmt.Sprintf("unsupported category %q", c))
		}
		if seen[c] {
			return NewConfigurationError("meal_categories", fmt.Sprintf("duplicate category %q", c))
		}
		seen[c] = true
	}
	return nil
}

// RequirementTargets is the daily target vector for one profile
type RequirementTargets struct {
	BMR        float64         `json:"bmr" bson:"bmr"`
	TDEE       float64         `json:"tdee" bson:"tdee"`
	GoalFactor float64         `json:"goal_factor" bson:"goal_factor"`
	Daily      NutrientProfile `json:"daily" bson:"daily"`
	Gender     Gender          `json:"gender" bson:"gender"`
	Age        int             `json:"age" bson:"age"`
}
