package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent publish history",
	Long:  `Lists recently committed edits, created pages, notes uploads, and mirror entries recorded in the local ledger.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	entries, err := historyStore.List(context.Background(), flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("%s  %-7s %q", entry.CreatedAt.Local().Format("2006-01-02 15:04"), entry.Action, entry.Title)
		if entry.Instructions > 0 {
			cmd.Printf(" (%d instruction(s))", entry.Instructions)
		}
		cmd.Println()
		if entry.URL != "" {
			cmd.Printf("                   %s\n", entry.URL)
		}
	}
	return nil
}
