// ABOUTME: Presentable multi-day menu and its nutrition analysis report
// ABOUTME: Output of the formatter and analysis reporter

package models

// Meal is one filled slot of a day
type Meal struct {
	Category        MealCategory    `json:"category"`
	ItemID          string          `json:"item_id"`
	Name            string          `json:"name"`
	Servings        int             `json:"servings"`
	Ingredients     []string        `json:"ingredients"`
	Allergens       []string        `json:"allergens,omitempty"`
	CookingMinutes  int             `json:"cooking_minutes"`
	Difficulty      Difficulty      `json:"difficulty"`
	Cost            float64         `json:"cost"` // for all servings
	EcoScore        float64         `json:"eco_score"`
	EcoGrade        string          `json:"eco_grade"`
	CarbonFootprint float64         `json:"carbon_footprint"`
	NutriScore      string          `json:"nutri_score,omitempty"`
	Nutrients       NutrientProfile `json:"nutrients"` // per serving
	Instructions    string          `json:"instructions"`
	ImageURL        string          `json:"image_url,omitempty"`
	SourceURL       string          `json:"source_url,omitempty"`
}

// DayPlan holds the meals of one day in category order
type DayPlan struct {
	Day   int    `json:"day"`
	Meals []Meal `json:"meals"`
}

// Menu is the presentable multi-day plan
type Menu struct {
	Days      []DayPlan `json:"days"`
	People    int       `json:"people"`
	TotalCost float64   `json:"total_cost"`
}

// NutrientTotals sums per-serving nutrients across every meal of the menu
func (m Menu) NutrientTotals() NutrientProfile {
	var total NutrientProfile
	for _, d := range m.Days {
		for _, meal := range d.Meals {
			total = total.Add(meal.Nutrients)
		}
	}
	return total
}

// MealCount returns the number of filled slots
func (m Menu) MealCount() int {
	n := 0
	for _, d := range m.Days {
		n += len(d.Meals)
	}
	return n
}

// Warning severities for nutrient coverage
const (
	SeverityInsufficient = "insufficient"
	SeverityExcessive    = "excessive"
)

// NutrientWarning is an advisory coverage finding; it never blocks delivery
type NutrientWarning struct {
	Nutrient Nutrient `json:"nutrient"`
	Severity string   `json:"severity"`
	Coverage int      `json:"coverage"`
	Message  string   `json:"message"`
}

// MenuAnalysis reports coverage of daily targets for a menu
type MenuAnalysis struct {
	NutritionSummary       NutrientProfile   `json:"nutrition_summary"` // daily average per person
	DailyTotals            []NutrientProfile `json:"daily_totals"`
	Coverage               map[Nutrient]int  `json:"coverage"` // percent of daily target
	TotalCost              float64           `json:"total_cost"`
	AverageCarbonFootprint float64           `json:"average_carbon_footprint"`
	EcoRating              string            `json:"eco_rating"`
	Warnings               []NutrientWarning `json:"warnings"`
}
