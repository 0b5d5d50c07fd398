package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show total received versus outstanding amounts",
	RunE:  runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)
}

func runTotals(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Printf("Total Received:    € %d\n", store.TotalReceived())
	fmt.Printf("Total Outstanding: € %d\n", store.TotalOutstanding())
	return nil
}
