// ABOUTME: Menu formatter and nutrition analysis reporter
// ABOUTME: Converts the best candidate into a day-by-day menu and computes coverage and warnings

package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// Coverage thresholds in percent of the daily target
const (
	InsufficientCoverage = 80
	ExcessiveCoverage    = 150
)

// FormatMenu turns a candidate into a presentable menu. Servings equal the
// number of people and meal cost covers every serving.
func FormatMenu(space *SearchSpace, c Candidate, prefs models.Preferences) models.Menu {
	people := prefs.People
	if people <= 0 {
		people = 1
	}

	menu := models.Menu{
		Days:   make([]models.DayPlan, space.Days),
		People: people,
	}
	for d := range menu.Days {
		menu.Days[d] = models.DayPlan{Day: d + 1, Meals: make([]models.Meal, 0, len(space.Categories))}
	}

	for slot, idx := range c.Genes {
		if idx < 0 || idx >= len(space.Items) {
			continue
		}
		item := space.Items[idx]
		meal := models.Meal{
			Category:        space.SlotCategory(slot),
			ItemID:          item.ID,
			Name:            item.Name,
			Servings:        people,
			Ingredients:     append([]string(nil), item.Ingredients...),
			Allergens:       append([]string(nil), item.Allergens...),
			CookingMinutes:  item.CookingMinutes,
			Difficulty:      item.Difficulty,
			Cost:            roundTo(item.CostPerServing*float64(people), 2),
			EcoScore:        item.EcoScore,
			EcoGrade:        item.EcoGrade,
			CarbonFootprint: item.CarbonFootprint,
			NutriScore:      item.NutriScore,
			Nutrients:       item.Nutrients,
			Instructions:    PlaceholderInstructions(item),
		}
		day := space.SlotDay(slot)
		menu.Days[day].Meals = append(menu.Days[day].Meals, meal)
		menu.TotalCost += item.CostPerServing * float64(people)
	}
	menu.TotalCost = roundTo(menu.TotalCost, 2)
	return menu
}

// PlaceholderInstructions is used when no recipe details are available
func PlaceholderInstructions(item models.CatalogItem) string {
	if len(item.Ingredients) == 0 {
		return fmt.Sprintf("Prepare %s (about %d minutes).", item.Name, item.CookingMinutes)
	}
	return fmt.Sprintf("Prepare %s with %s (about %d minutes).",
		item.Name, strings.Join(item.Ingredients, ", "), item.CookingMinutes)
}

// AnalyzeMenu reports per-person daily coverage of targets, cost and
// environmental rating. Warnings are advisory.
func AnalyzeMenu(menu models.Menu, targets models.RequirementTargets) models.MenuAnalysis {
	analysis := models.MenuAnalysis{
		DailyTotals: make([]models.NutrientProfile, len(menu.Days)),
		Coverage:    make(map[models.Nutrient]int),
		TotalCost:   menu.TotalCost,
		Warnings:    []models.NutrientWarning{},
	}

	var (
		totals   models.NutrientProfile
		carbon   float64
		ecoScore float64
		meals    int
	)
	for d, day := range menu.Days {
		var daily models.NutrientProfile
		for _, meal := range day.Meals {
			daily = daily.Add(meal.Nutrients)
			carbon += meal.CarbonFootprint
			ecoScore += mealEcoScore(meal)
			meals++
		}
		analysis.DailyTotals[d] = daily
		totals = totals.Add(daily)
	}

	if len(menu.Days) > 0 {
		analysis.NutritionSummary = totals.Scale(1 / float64(len(menu.Days)))
	}
	if meals > 0 {
		analysis.AverageCarbonFootprint = roundTo(carbon/float64(meals), 3)
		analysis.EcoRating = models.EcoGradeFor(ecoScore / float64(meals))
	} else {
		analysis.EcoRating = models.EcoGradeFor(0)
	}

	for _, n := range models.TrackedNutrients {
		target := targets.Daily.Get(n)
		if target <= 0 {
			continue
		}
		coverage := int(math.Round(100 * analysis.NutritionSummary.Get(n) / target))
		analysis.Coverage[n] = coverage
		switch {
		case coverage < InsufficientCoverage:
			analysis.Warnings = append(analysis.Warnings, models.NutrientWarning{
				Nutrient: n,
				Severity: models.SeverityInsufficient,
				Coverage: coverage,
				Message:  fmt.Sprintf("%s intake is below the daily target (%d%%)", nutrientLabel(n), coverage),
			})
		case coverage > ExcessiveCoverage:
			analysis.Warnings = append(analysis.Warnings, models.NutrientWarning{
				Nutrient: n,
				Severity: models.SeverityExcessive,
				Coverage: coverage,
				Message:  fmt.Sprintf("%s intake is well above the daily target (%d%%)", nutrientLabel(n), coverage),
			})
		}
	}
	return analysis
}

// OptimizationScore converts a fitness in [0,1] to a 0-100 score
func OptimizationScore(fitness float64) int {
	return int(math.Round(100 * clamp01(fitness)))
}

// mealEcoScore falls back to the grade midpoint when no numeric score is set
func mealEcoScore(m models.Meal) float64 {
	if m.EcoScore > 0 {
		return m.EcoScore
	}
	if s := models.EcoScoreForGrade(m.EcoGrade); s >= 0 {
		return s
	}
	return 0
}

func nutrientLabel(n models.Nutrient) string {
	s := strings.ReplaceAll(string(n), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
