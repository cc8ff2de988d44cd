// ABOUTME: Health command for the menu-optimizer CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/vegan-menu-optimizer/cli/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the menu optimizer backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	out := fmt.Sprintf(`Backend:       %s
Status:        %s
Catalog items: %d
Plan store:    %s
Recipe API:    %s`, url, resp.Status, resp.CatalogItems, resp.PlanStore, resp.RecipeAPI)
	if resp.PlanStoreErr != "" {
		out += "\nStore error:   " + resp.PlanStoreErr
	}
	return out
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]interface{}{
		"backend":       url,
		"status":        resp.Status,
		"catalog_items": resp.CatalogItems,
		"plan_store":    resp.PlanStore,
		"recipe_api":    resp.RecipeAPI,
	}
	if resp.PlanStoreErr != "" {
		output["plan_store_error"] = resp.PlanStoreErr
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
