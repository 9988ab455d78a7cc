package stats

import (
	"fmt"
	"io"

	"github.com/rustyeddy/tradebook/journal"
)

// Summary is a lightweight overall view of the journal.
type Summary struct {
	Trades int
	Wins   int
	Losses int

	GrossProfit  float64
	GrossLoss    float64
	NetPL        float64
	WinRate      float64
	ProfitFactor float64

	InitialFund  float64
	TotalBalance float64
	Currency     journal.Currency
}

// Summarize computes the overall performance numbers in one pass.
func Summarize(trades []journal.TradeRecord, settings journal.Settings) Summary {
	s := Summary{
		Trades:      len(trades),
		InitialFund: settings.InitialFund,
		Currency:    settings.Currency,
	}

	for _, t := range trades {
		switch t.Type {
		case journal.Profit:
			s.Wins++
			s.GrossProfit += t.Amount
		case journal.Loss:
			s.Losses++
			s.GrossLoss += t.Amount
		}
	}

	s.NetPL = s.GrossProfit - s.GrossLoss
	s.TotalBalance = settings.InitialFund + s.NetPL
	s.WinRate = WinRate(trades)
	s.ProfitFactor = ProfitFactor(trades)
	return s
}

func PrintSummary(w io.Writer, s Summary) {
	sym := s.Currency.Symbol()

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Journal Summary")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Trades:        %d\n", s.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Gross Profit:  %s%.2f\n", sym, s.GrossProfit)
	fmt.Fprintf(w, "Gross Loss:    %s%.2f\n", sym, s.GrossLoss)
	fmt.Fprintf(w, "Net P/L:       %s%.2f\n", sym, s.NetPL)
	if s.Trades > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Fund:  %s%.2f\n", sym, s.InitialFund)
	fmt.Fprintf(w, "Balance:       %s%.2f\n", sym, s.TotalBalance)
	fmt.Fprintln(w)
}

// PrintBuckets renders period buckets in the order given.
func PrintBuckets(w io.Writer, buckets map[string]Bucket, order []string, settings journal.Settings) {
	sym := settings.Currency.Symbol()

	fmt.Fprintf(w, "%-10s %12s %12s %12s %7s\n", "Period", "Profit", "Loss", "Net", "Trades")
	fmt.Fprintln(w, "--------------------------------------------------------")
	for _, k := range order {
		b := buckets[k]
		fmt.Fprintf(w, "%-10s %12s %12s %12s %7d\n",
			k,
			fmt.Sprintf("%s%.2f", sym, b.Profit),
			fmt.Sprintf("%s%.2f", sym, b.Loss),
			fmt.Sprintf("%s%.2f", sym, b.Net),
			b.Count)
	}
}
