package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"opsboard/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the local dashboard server.

Examples:
  opsboard serve                      # serve OPSBOARD_DATA_PATH on :8080
  opsboard serve --port 3000          # listen on :3000
  opsboard serve --csv orders.csv     # serve a specific CSV`,
	RunE: runServe,
}

var (
	servePort int
	serveCSV  string
	serveDSN  string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides OPSBOARD_ADDR)")
	serveCmd.Flags().StringVar(&serveCSV, "csv", "", "CSV file to serve (overrides OPSBOARD_DATA_PATH)")
	serveCmd.Flags().StringVar(&serveDSN, "db", "", "SQLite DSN to serve (overrides OPSBOARD_DATA_DSN)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := app.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != 0 {
		cfg.Addr = fmt.Sprintf(":%d", servePort)
	}
	if serveCSV != "" {
		cfg.DataPath = serveCSV
	}
	if serveDSN != "" {
		cfg.DataDSN = serveDSN
	}
	return app.Run(cfg)
}
