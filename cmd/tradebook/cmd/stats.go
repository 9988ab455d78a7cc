package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly or monthly profit/loss buckets and a summary",
	Long: `Aggregate the journal into period buckets and overall performance.

Examples:
  tradebook stats
  tradebook stats --period monthly`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsPeriod string

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "weekly", "bucket period: weekly or monthly")
}

func runStats(cmd *cobra.Command, args []string) error {
	var key stats.KeyFunc
	switch statsPeriod {
	case "weekly":
		key = stats.WeekKey
	case "monthly":
		key = stats.MonthKey
	default:
		return fmt.Errorf("period must be weekly or monthly, got %q", statsPeriod)
	}

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

	buckets, order := stats.GroupBy(trades, key)
	stats.PrintBuckets(os.Stdout, buckets, order, settings)

	fmt.Println()
	stats.PrintSummary(os.Stdout, stats.Summarize(trades, settings))
	return nil
}
