package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "List payment reminders for overdue and soon-due invoices",
	Long: `Print one reminder line for every invoice that is overdue as of today,
and one for every invoice due exactly seven days from now.`,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	reminders := store.Reminders(time.Now())
	if len(reminders) == 0 {
		fmt.Println("No reminders.")
		return nil
	}
	for _, reminder := range reminders {
		fmt.Println(reminder)
	}
	return nil
}
