package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled trades, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	settings, err := j.GetSettings()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	sym := settings.Currency.Symbol()
	fmt.Printf("%-26s %-19s %-6s %12s  %s\n", "ID", "Date", "Type", "Amount", "Description")
	for _, t := range trades {
		fmt.Printf("%-26s %-19s %-6s %12s  %s\n",
			t.ID,
			t.Date.Format("2006-01-02 15:04:05"),
			t.Type,
			fmt.Sprintf("%s%.2f", sym, t.Amount),
			t.Description)
	}
	return nil
}
