package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - invoice ledger and numbering engine",
	Long: `Invoicer tracks invoices for a small business: it allocates unique,
monotonically increasing invoice numbers, computes amounts and due dates,
renders an invoice document from an xlsx template, and keeps a durable
ledger of all invoices with their payment status.

The ledger is a flat CSV file; documents are rendered next to it. Paths are
configured through environment variables (INVOICE_LEDGER_PATH,
INVOICE_TEMPLATE_PATH, INVOICE_OUTPUT_DIR), optionally via a .env file.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Invoicer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
