// ABOUTME: Requirements command for the menu-optimizer CLI
// ABOUTME: Shows daily nutrient targets for a biometric profile

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/client"
	"github.com/markalston/vegan-menu-optimizer/cli/internal/styles"
	"github.com/markalston/vegan-menu-optimizer/models"
)

var requirementsProfile profileFlags

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Show daily nutrient targets",
	Long:  `Calculate daily energy and nutrient targets, adjusted for a vegan diet, from age, gender, weight, height and activity.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRequirements(ctx, os.Stdout, requirementsProfile.profile())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(requirementsCmd)
	requirementsProfile.register(requirementsCmd)
}

// runRequirements fetches targets for profile and returns exit code
func runRequirements(ctx context.Context, w io.Writer, profile models.UserProfile) int {
	c := client.New(GetAPIURL())

	targets, err := c.Requirements(ctx, profile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(targets)
		return 0
	}
	fmt.Fprint(w, formatRequirements(targets))
	return 0
}

func formatRequirements(t *models.RequirementTargets) string {
	s := styles.Title.Render("Daily Targets") + "\n\n"
	s += fmt.Sprintf("  BMR:    %7.0f kcal\n", t.BMR)
	s += fmt.Sprintf("  TDEE:   %7.0f kcal (goal factor %.2f)\n\n", t.TDEE, t.GoalFactor)
	for _, n := range models.TrackedNutrients {
		s += fmt.Sprintf("  %-14s %9.1f %s\n", n, t.Daily.Get(n), n.Unit())
	}
	return s
}
