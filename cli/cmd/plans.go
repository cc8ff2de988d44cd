// ABOUTME: Plans and show commands for the menu-optimizer CLI
// ABOUTME: Lists saved menu plans and displays one by id

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/client"
	"github.com/markalston/vegan-menu-optimizer/cli/internal/styles"
)

var plansLimit int

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List saved menu plans",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlans(ctx, os.Stdout, plansLimit)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show a saved menu plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(showCmd)
	plansCmd.Flags().IntVar(&plansLimit, "limit", 20, "Maximum number of plans to list")
}

// runPlans lists saved plans, newest first, and returns exit code
func runPlans(ctx context.Context, w io.Writer, limit int) int {
	if limit <= 0 {
		fmt.Fprintf(w, "Error: limit must be positive, got %d\n", limit)
		return 2
	}

	c := client.New(GetAPIURL())
	list, err := c.ListPlans(ctx, limit)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(list)
		return 0
	}
	fmt.Fprint(w, formatPlanList(list))
	return 0
}

func formatPlanList(list *client.PlanList) string {
	if list.Count == 0 {
		return "No saved plans\n"
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Saved Plans (%d)", list.Count)) + "\n\n")
	fmt.Fprintf(&b, "  %-36s %-20s %4s %6s %5s %4s %s\n", "ID", "CREATED", "DAYS", "PEOPLE", "SCORE", "ECO", "PRESET")
	for _, p := range list.Plans {
		fmt.Fprintf(&b, "  %-36s %-20s %4d %6d %5d %4s %s\n",
			p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Days, p.People,
			p.OptimizationScore, p.EcoRating, p.Preset)
	}
	return b.String()
}

// runShow prints a saved plan and returns exit code
func runShow(ctx context.Context, w io.Writer, id string) int {
	c := client.New(GetAPIURL())
	plan, err := c.GetPlan(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(plan)
		return 0
	}
	fmt.Fprintf(w, "Created: %s\n\n", plan.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprint(w, formatMenuResponse(&plan.Response))
	return 0
}
