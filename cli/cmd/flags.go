// ABOUTME: Shared flag groups for profile, preference and restriction input
// ABOUTME: Converts CLI flags into API request models

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// profileFlags holds biometric flags
type profileFlags struct {
	age      int
	gender   string
	weight   float64
	height   float64
	activity string
	goal     string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.age, "age", 30, "Age in years")
	cmd.Flags().StringVar(&p.gender, "gender", "female", "Gender (male, female)")
	cmd.Flags().Float64Var(&p.weight, "weight", 65, "Weight in kg")
	cmd.Flags().Float64Var(&p.height, "height", 168, "Height in cm")
	cmd.Flags().StringVar(&p.activity, "activity", "moderate", "Activity level (sedentary, light, moderate, active, very_active)")
	cmd.Flags().StringVar(&p.goal, "goal", "maintain", "Goal (maintain, lose, gain)")
}

func (p profileFlags) profile() models.UserProfile {
	return models.UserProfile{
		Age:           p.age,
		Gender:        models.Gender(p.gender),
		WeightKg:      p.weight,
		HeightCm:      p.height,
		ActivityLevel: models.ActivityLevel(p.activity),
		Goal:          models.Goal(p.goal),
	}
}

// planFlags holds preference and restriction flags for the plan command
type planFlags struct {
	people       int
	days         int
	budget       string
	cookingTime  string
	meals        []string
	preset       string
	seed         uint64
	allergens    []string
	intolerances []string
	exclude      []string
	prefer       []string
}

func (p *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.people, "people", 1, "Number of people")
	cmd.Flags().IntVar(&p.days, "days", 7, "Number of days")
	cmd.Flags().StringVar(&p.budget, "budget", "medium", "Budget tier (low, medium, high)")
	cmd.Flags().StringVar(&p.cookingTime, "cooking-time", "medium", "Cooking time (quick, medium, elaborate)")
	cmd.Flags().StringSliceVar(&p.meals, "meals", []string{"breakfast", "lunch", "dinner"}, "Meal categories per day")
	cmd.Flags().StringVar(&p.preset, "preset", "", "Optimizer preset (standard, enhanced); server default when empty")
	cmd.Flags().Uint64Var(&p.seed, "seed", 0, "Random seed for a reproducible menu (0 picks one)")
	cmd.Flags().StringSliceVar(&p.allergens, "allergens", nil, "Allergens to avoid")
	cmd.Flags().StringSliceVar(&p.intolerances, "intolerances", nil, "Intolerances to avoid")
	cmd.Flags().StringSliceVar(&p.exclude, "exclude", nil, "Ingredients to exclude")
	cmd.Flags().StringSliceVar(&p.prefer, "prefer", nil, "Required tags, e.g. gluten-free")
}

func (p planFlags) preferences() models.Preferences {
	cats := make([]models.MealCategory, 0, len(p.meals))
	for _, m := range p.meals {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			cats = append(cats, models.MealCategory(m))
		}
	}
	return models.Preferences{
		People:         p.people,
		Days:           p.days,
		BudgetTier:     models.BudgetTier(p.budget),
		CookingTime:    models.CookingTimeTier(p.cookingTime),
		MealCategories: cats,
		Preset:         models.OptimizerPreset(p.preset),
		Seed:           p.seed,
	}
}

func (p planFlags) restrictions() models.DietaryRestrictions {
	return models.DietaryRestrictions{
		Allergens:           p.allergens,
		Intolerances:        p.intolerances,
		ExcludedIngredients: p.exclude,
		Preferences:         p.prefer,
	}
}
