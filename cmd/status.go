package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/pkg/models"
)

var statusCmd = &cobra.Command{
	Use:   "status [invoice-number] [Outstanding|Paid]",
	Short: "Update the payment status of an invoice",
	Long: `Set the payment status of the invoice with the given number. Without an
explicit status the invoice is marked Paid. Marking a paid invoice back to
Outstanding is allowed as a correction. Updating a number that does not
exist changes nothing.`,
	Example: `  # Mark as paid
  invoicer status s1

  # Revert a mistaken payment mark
  invoicer status s1 Outstanding`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	number := args[0]
	status := models.StatusPaid
	if len(args) == 2 {
		status = models.Status(args[1])
	}

	if len(store.Details(number)) == 0 {
		fmt.Printf("No invoice found with number %s.\n", number)
		return nil
	}

	if err := store.UpdateStatus(number, status); err != nil {
		return err
	}

	fmt.Printf("Invoice %s marked %s.\n", number, status)
	return nil
}
