// ABOUTME: Entry point for the menu-optimizer CLI
// ABOUTME: Command-line client for planning vegan menus against the optimizer API

package main

import (
	"fmt"
	"os"

	"github.com/markalston/vegan-menu-optimizer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
