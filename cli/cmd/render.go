// ABOUTME: Human-readable rendering of optimized menus
// ABOUTME: Shared by the plan and show commands

package cmd

import (
	"fmt"
	"strings"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/styles"
	"github.com/markalston/vegan-menu-optimizer/models"
)

const coverageBarWidth = 20

// formatMenuResponse renders the menu, coverage and run metadata
func formatMenuResponse(resp *models.OptimizeResponse) string {
	var b strings.Builder
	menu := resp.Menu

	b.WriteString(styles.Title.Render(fmt.Sprintf("Menu Plan: %d days for %d", len(menu.Days), menu.People)))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Plan ID: " + resp.ID))
	b.WriteString("\n\n")

	for _, day := range menu.Days {
		fmt.Fprintf(&b, "Day %d\n", day.Day)
		for _, meal := range day.Meals {
			fmt.Fprintf(&b, "  %-10s %-32s %4.0f kcal  $%6.2f  %3d min  %s\n",
				meal.Category, meal.Name, meal.Nutrients.Calories, meal.Cost, meal.CookingMinutes,
				styles.EcoStyle(meal.EcoGrade).Render(meal.EcoGrade))
		}
	}

	b.WriteString("\nDaily Coverage (per person)\n")
	b.WriteString("===========================\n")
	for _, n := range models.TrackedNutrients {
		pct, ok := resp.Analysis.Coverage[n]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-14s %s\n", n, styles.CoverageBar(pct, coverageBarWidth))
	}

	b.WriteString("\nSummary\n")
	b.WriteString("=======\n")
	fmt.Fprintf(&b, "  Total cost:          $%.2f\n", resp.Analysis.TotalCost)
	fmt.Fprintf(&b, "  Eco rating:          %s (avg %.2f kg CO2e)\n",
		styles.EcoStyle(resp.Analysis.EcoRating).Render(resp.Analysis.EcoRating), resp.Analysis.AverageCarbonFootprint)
	fmt.Fprintf(&b, "  Optimization score:  %d/100\n", resp.OptimizationScore)

	md := resp.Metadata
	fmt.Fprintf(&b, "  Search:              %s, %d generations, population %d, seed %d\n",
		md.Preset, md.Generations, md.PopulationSize, md.Seed)
	if len(md.FitnessHistory) > 0 {
		fmt.Fprintf(&b, "  Fitness:             %s\n", styles.Sparkline(md.FitnessHistory, 40, styles.Primary))
	}
	if md.Interrupted {
		b.WriteString("  " + styles.StatusWarning.Render("Search stopped early; showing best menu found") + "\n")
	}
	if !md.Enriched {
		b.WriteString("  " + styles.Subtitle.Render("Recipe details unavailable; instructions are placeholders") + "\n")
	}

	if len(resp.Analysis.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		b.WriteString("========\n")
		for _, warn := range resp.Analysis.Warnings {
			style := styles.StatusWarning
			if warn.Severity == models.SeverityExcessive {
				style = styles.StatusCritical
			}
			fmt.Fprintf(&b, "  %s %s\n", style.Render("!"), warn.Message)
		}
	}
	return b.String()
}
