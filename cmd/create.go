package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/invoice"
	"invoicer/internal/logger"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice: allocate a number, render the document, record it",
	Long: `Create a new invoice. A unique invoice number (s1, s2, ...) is allocated,
the amount and due date are derived, the xlsx template is filled and saved
as invoice_<number>_<name>.xlsx, and the record is appended to the ledger
with status Outstanding.

The amount is floor(hours * rate) when both --hours and --rate are given,
else floor(--total) when given, else --amount as passed. The due date is
always the issue date plus 14 days.`,
	Example: `  # Hourly invoice: amount becomes 500
  invoicer create --name "Acme" --date 2024-01-01 --hours 10 --rate 50

  # Fixed-price invoice
  invoicer create --name "Acme" --date 2024-01-01 --total 1200 \
    --address "Main St 1" --city Amsterdam --postal-code 1011AB \
    --country NL --phone "+31 6 12345678" --description "Consulting"`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("name", "", "Billing party name")
	createCmd.Flags().String("date", "", "Issue date (YYYY-MM-DD)")
	createCmd.Flags().String("due-date", "", "Ignored: the due date is always issue date + 14 days")
	createCmd.Flags().Int64("amount", 0, "Amount in whole currency units (fallback when no hours/total)")
	createCmd.Flags().Float64("hours", 0, "Hours booked")
	createCmd.Flags().Float64("rate", 0, "Hourly rate")
	createCmd.Flags().Float64("total", 0, "Total amount (floored to whole units)")
	createCmd.Flags().String("address", "", "Billing address")
	createCmd.Flags().String("city", "", "Billing city")
	createCmd.Flags().String("postal-code", "", "Billing postal code")
	createCmd.Flags().String("country", "", "Billing country")
	createCmd.Flags().String("phone", "", "Billing phone number")
	createCmd.Flags().String("description", "", "Invoice description")

	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("date")
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("create")

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	composer, err := newComposer(cfg, store)
	if err != nil {
		return err
	}

	params := invoice.CreateParams{}
	params.Name, _ = cmd.Flags().GetString("name")
	params.Date, _ = cmd.Flags().GetString("date")
	params.DueDate, _ = cmd.Flags().GetString("due-date")
	params.Address, _ = cmd.Flags().GetString("address")
	params.City, _ = cmd.Flags().GetString("city")
	params.PostalCode, _ = cmd.Flags().GetString("postal-code")
	params.Country, _ = cmd.Flags().GetString("country")
	params.PhoneNumber, _ = cmd.Flags().GetString("phone")
	params.Description, _ = cmd.Flags().GetString("description")

	if cmd.Flags().Changed("amount") {
		v, _ := cmd.Flags().GetInt64("amount")
		params.Amount = &v
	}
	if cmd.Flags().Changed("hours") {
		v, _ := cmd.Flags().GetFloat64("hours")
		params.Hours = &v
	}
	if cmd.Flags().Changed("rate") {
		v, _ := cmd.Flags().GetFloat64("rate")
		params.HourlyRate = &v
	}
	if cmd.Flags().Changed("total") {
		v, _ := cmd.Flags().GetFloat64("total")
		params.Total = &v
	}

	log.Info().
		Str("name", params.Name).
		Str("date", params.Date).
		Msg("Creating invoice")

	path, err := composer.CreateInvoice(params)
	if err != nil {
		return err
	}

	fmt.Printf("Invoice created: %s\n", path)
	return nil
}
