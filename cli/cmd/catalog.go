// ABOUTME: Catalog command for the menu-optimizer CLI
// ABOUTME: Lists recipes available to the optimizer

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

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog recipes",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCatalog(ctx, os.Stdout, catalogCategory)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only list one category (breakfast, lunch, dinner, snack)")
}

// runCatalog lists catalog items and returns exit code
func runCatalog(ctx context.Context, w io.Writer, category string) int {
	c := client.New(GetAPIURL())

	resp, err := c.Catalog(ctx, category)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(resp)
		return 0
	}
	fmt.Fprint(w, formatCatalog(resp))
	return 0
}

func formatCatalog(resp *client.CatalogResponse) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Catalog (%d items)", resp.Count)) + "\n\n")
	fmt.Fprintf(&b, "  %-26s %-10s %6s %8s %6s %4s %s\n", "ID", "CATEGORY", "KCAL", "PROTEIN", "COST", "ECO", "MIN")
	for _, item := range resp.Items {
		fmt.Fprintf(&b, "  %-26s %-10s %6.0f %7.1fg %6.2f %4s %d\n",
			item.ID, item.Category, item.Nutrients.Calories, item.Nutrients.Protein,
			item.CostPerServing, item.EcoGrade, item.CookingMinutes)
	}
	return b.String()
}
