// ABOUTME: Plan command for the menu-optimizer CLI
// ABOUTME: Requests an optimized menu from flags or an interactive wizard

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/client"
	"github.com/markalston/vegan-menu-optimizer/cli/internal/wizard"
	"github.com/markalston/vegan-menu-optimizer/models"
)

var (
	planProfile     profileFlags
	planOptions     planFlags
	planInteractive bool
	failOnWarnings  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an optimized vegan menu",
	Long: `Generate a multi-day vegan menu that balances nutrient coverage, cost,
environmental impact and variety.

Exit codes:
  0 - Menu generated
  1 - Menu generated with nutrient warnings (only with --fail-on-warnings)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		req := planRequest()
		if planInteractive {
			wiz := wizard.New(req)
			if err := wiz.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(os.Stdout, "Cancelled")
					return
				}
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
				os.Exit(2)
			}
			req = wiz.Request()
		}

		exitCode := runPlan(ctx, os.Stdout, req)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planProfile.register(planCmd)
	planOptions.register(planCmd)
	planCmd.Flags().BoolVarP(&planInteractive, "interactive", "i", false, "Enter profile and preferences in a form")
	planCmd.Flags().BoolVar(&failOnWarnings, "fail-on-warnings", false, "Exit 1 when the menu has nutrient warnings")
}

func planRequest() models.OptimizeRequest {
	return models.OptimizeRequest{
		Profile:      planProfile.profile(),
		Preferences:  planOptions.preferences(),
		Restrictions: planOptions.restrictions(),
	}
}

// runPlan requests a menu and returns exit code
func runPlan(ctx context.Context, w io.Writer, req models.OptimizeRequest) int {
	c := client.New(GetAPIURL())

	resp, err := c.Optimize(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(resp)
	} else {
		fmt.Fprint(w, formatMenuResponse(resp))
	}

	if failOnWarnings && len(resp.Analysis.Warnings) > 0 {
		return 1
	}
	return 0
}
