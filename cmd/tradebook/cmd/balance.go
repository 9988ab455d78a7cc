package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/stats"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current balance, optionally as a running series",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

var balanceSeries bool

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().BoolVarP(&balanceSeries, "series", "s", false, "print one cumulative balance per trade, oldest first")
}

func runBalance(cmd *cobra.Command, args []string) error {
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

	sym := settings.Currency.Symbol()

	if balanceSeries {
		for _, p := range stats.RunningBalanceSeries(trades, settings.InitialFund) {
			fmt.Printf("%s  %s%.2f\n", p.Date.Format("2006-01-02 15:04:05"), sym, p.Balance)
		}
		return nil
	}

	fmt.Printf("%s%.2f\n", sym, stats.TotalBalance(trades, settings.InitialFund))
	return nil
}
