package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pkg/id"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Long: `Record a profit or loss in the journal.

Amounts are magnitudes; the win/loss direction is carried by --type.

Examples:
  tradebook add --amount 200 --type profit --date 2024-01-05
  tradebook add --amount 50 --type loss --desc "stopped out early"`,
	RunE: runAdd,
}

var (
	addAmount string
	addType   string
	addDate   string
	addDesc   string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "trade amount, e.g. 125.50 (required)")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "profit or loss (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "trade date YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS (default now)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "optional description")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("type")
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(addAmount, 64)
	if err != nil {
		return fmt.Errorf("%w: amount %q is not a number", journal.ErrValidation, addAmount)
	}

	typ, err := journal.ParseTradeType(addType)
	if err != nil {
		return err
	}

	date := time.Now()
	if addDate != "" {
		date, err = parseDateArg(addDate)
		if err != nil {
			return err
		}
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec := journal.TradeRecord{
		ID:          id.New(),
		Date:        date,
		Amount:      amount,
		Type:        typ,
		Description: addDesc,
	}
	if err := j.InsertTrade(rec); err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	fmt.Printf("✓ Recorded %s of %.2f on %s (id %s)\n",
		typ, amount, date.Format("2006-01-02"), rec.ID)
	return nil
}

func parseDateArg(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad date %q", journal.ErrValidation, s)
}
