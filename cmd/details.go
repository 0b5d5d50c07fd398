package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details [invoice-number]",
	Short: "Show the full ledger record of one invoice",
	Example: `  invoicer details s1`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	details := store.Details(args[0])
	if len(details) == 0 {
		fmt.Printf("No invoice found with number %s.\n", args[0])
		return nil
	}

	for _, inv := range details {
		date, _ := inv.Date.MarshalCSV()
		due, _ := inv.DueDate.MarshalCSV()

		fmt.Printf("Invoice Number: %s\n", inv.InvoiceNumber)
		fmt.Printf("Name:           %s\n", inv.Name)
		fmt.Printf("Description:    %s\n", inv.Description)
		fmt.Printf("Amount:         %d\n", inv.Amount)
		fmt.Printf("Date:           %s\n", date)
		fmt.Printf("Due Date:       %s\n", due)
		fmt.Printf("File Path:      %s\n", inv.FilePath)
		fmt.Printf("Address:        %s\n", inv.Address)
		fmt.Printf("City:           %s\n", inv.City)
		fmt.Printf("Postal Code:    %s\n", inv.PostalCode)
		fmt.Printf("Country:        %s\n", inv.Country)
		fmt.Printf("Phone Number:   %s\n", inv.PhoneNumber)
		fmt.Printf("Hourly Rate:    %g\n", inv.HourlyRate)
		fmt.Printf("Hours Booked:   %g\n", inv.HoursBooked)
		fmt.Printf("Status:         %s\n", inv.Status)
		fmt.Println()
	}
	return nil
}
