package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicer/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, optionally filtered by name",
	Example: `  # All invoices in issuance order
  invoicer list

  # Case-insensitive substring match on the billing name
  invoicer list --search acme`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("search", "s", "", "Filter by billing name (case-insensitive substring)")
}

func runList(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("search")
	var invoices []*models.Invoice
	if query == "" {
		invoices = store.Invoices()
	} else {
		invoices = store.Search(query)
	}

	if len(invoices) == 0 {
		fmt.Println("No invoices found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INVOICE\tNAME\tAMOUNT\tDATE\tDUE DATE\tSTATUS")
	for _, inv := range invoices {
		date, _ := inv.Date.MarshalCSV()
		due, _ := inv.DueDate.MarshalCSV()
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			inv.InvoiceNumber, inv.Name, inv.Amount, date, due, inv.Status)
	}
	return w.Flush()
}
