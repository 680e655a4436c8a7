package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opsboard",
	Short: "E-commerce operations dashboard",
	Long: `opsboard serves an operations dashboard over a flat orders CSV.

Point it at a CSV export of your orders table and it renders sales,
product, inventory, marketing, and customer views with shared filters.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
