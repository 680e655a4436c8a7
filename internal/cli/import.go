package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"opsboard/internal/dataset"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV into a SQLite snapshot",
	Long: `Import an orders CSV into a SQLite database the dashboard can serve.

Examples:
  opsboard import --csv orders.csv --db orders.db`,
	RunE: runImport,
}

var (
	importCSV string
	importDB  string
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importCSV, "csv", "data.csv", "CSV file to import")
	importCmd.Flags().StringVar(&importDB, "db", "orders.db", "SQLite database to write")
}

func runImport(cmd *cobra.Command, args []string) error {
	ds, err := dataset.ReadCSV(importCSV)
	if err != nil {
		return fmt.Errorf("read %s: %w", importCSV, err)
	}

	db, err := dataset.OpenSQLite(importDB)
	if err != nil {
		return fmt.Errorf("open %s: %w", importDB, err)
	}
	defer db.Close()

	if err := dataset.ImportCSV(cmd.Context(), db, ds); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("Imported %d rows into %s", len(ds.Rows), importDB)
	if ds.Skipped > 0 {
		fmt.Printf(" (%d rows skipped for unparseable dates)", ds.Skipped)
	}
	fmt.Println()
	return nil
}
