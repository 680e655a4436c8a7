package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"opsboard/internal/dataset"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered rows to CSV or JSON",
	Long: `Export rows matching the given filters, like the dashboard's download
buttons but from the command line.

Examples:
  opsboard export --csv orders.csv --from 2024-01-01 --to 2024-03-31
  opsboard export --csv orders.csv --channel Online --format json -o q1.json`,
	RunE: runExport,
}

var (
	exportCSV      string
	exportFormat   string
	exportOutput   string
	exportFrom     string
	exportTo       string
	exportCategory string
	exportChannel  string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportCSV, "csv", "data.csv", "CSV file to read")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date (inclusive, YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date (inclusive, YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Filter by category")
	exportCmd.Flags().StringVar(&exportChannel, "channel", "", "Filter by channel")
}

func runExport(cmd *cobra.Command, args []string) error {
	ds, err := dataset.ReadCSV(exportCSV)
	if err != nil {
		return fmt.Errorf("read %s: %w", exportCSV, err)
	}

	var f dataset.Filter
	if f.From, err = parseFlagDate(exportFrom); err != nil {
		return err
	}
	if f.To, err = parseFlagDate(exportTo); err != nil {
		return err
	}
	f.Category = exportCategory
	f.Channel = exportChannel
	rows := ds.Select(f)

	var out io.Writer = os.Stdout
	if exportOutput != "" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer file.Close()
		out = file
	}

	switch exportFormat {
	case "csv":
		if err := dataset.WriteCSV(out, ds, rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}

	if exportOutput != "" {
		fmt.Printf("Wrote %d rows to %s\n", len(rows), exportOutput)
	}
	return nil
}

func parseFlagDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
