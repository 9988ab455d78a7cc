// Package stats computes derived views over a trade list: balances, weekly
// and monthly profit/loss buckets and overall performance numbers. Every
// function is pure; callers re-fetch the full list from the store after a
// mutation and recompute, there is no caching here.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradebook/journal"
)

// Bucket is the aggregated profit/loss summary for one period.
type Bucket struct {
	Profit float64 // sum of profit amounts, non-negative
	Loss   float64 // sum of loss amounts, non-negative
	Net    float64 // Profit - Loss
	Count  int
}

// BalancePoint is one step of the cumulative balance curve.
type BalancePoint struct {
	Date    time.Time
	Balance float64
}

// KeyFunc maps a trade date to its period label.
type KeyFunc func(time.Time) string

// TotalBalance is initialFund plus all profits minus all losses. The list
// order does not matter.
func TotalBalance(trades []journal.TradeRecord, initialFund float64) float64 {
	balance := initialFund
	for _, t := range trades {
		switch t.Type {
		case journal.Profit:
			balance += t.Amount
		case journal.Loss:
			balance -= t.Amount
		}
	}
	return balance
}

// WeekKey labels a date as "{year}-S{week}" with
// week = (dayOfYear - isoWeekday + 10) / 7, Monday=1..Sunday=7.
//
// The formula can produce week 0 or 53 around year boundaries. That matches
// the historical journal keys, so it stays as is; do not substitute ISO
// week-year arithmetic.
func WeekKey(date time.Time) string {
	wd := int(date.Weekday())
	if wd == 0 {
		wd = 7
	}
	week := (date.YearDay() - wd + 10) / 7
	return fmt.Sprintf("%d-S%d", date.Year(), week)
}

// MonthKey labels a date as "{year}-{month}", month zero-padded.
func MonthKey(date time.Time) string {
	return fmt.Sprintf("%d-%02d", date.Year(), int(date.Month()))
}

// GroupBy folds the trades into per-period buckets. The returned key slice
// preserves first-seen order of the input, so feeding the store's
// date-descending listing yields most-recent-period-first keys.
func GroupBy(trades []journal.TradeRecord, key KeyFunc) (map[string]Bucket, []string) {
	buckets := make(map[string]Bucket)
	var order []string

	for _, t := range trades {
		k := key(t.Date)
		b, ok := buckets[k]
		if !ok {
			order = append(order, k)
		}
		switch t.Type {
		case journal.Profit:
			b.Profit += t.Amount
		case journal.Loss:
			b.Loss += t.Amount
		}
		b.Net = b.Profit - b.Loss
		b.Count++
		buckets[k] = b
	}
	return buckets, order
}

// WinRate is the percentage of profitable trades, 0 for an empty list.
func WinRate(trades []journal.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.Type == journal.Profit {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// ProfitFactor is gross profit divided by gross loss. With zero gross loss
// it returns gross profit unchanged; treat that as a sentinel, not a ratio.
func ProfitFactor(trades []journal.TradeRecord) float64 {
	var profit, loss float64
	for _, t := range trades {
		switch t.Type {
		case journal.Profit:
			profit += t.Amount
		case journal.Loss:
			loss += t.Amount
		}
	}
	if loss == 0 {
		return profit
	}
	return profit / loss
}

// RunningBalanceSeries returns one cumulative balance point per trade in
// chronological order, starting from initialFund. The input is not
// mutated; the stable sort keeps equal dates in input order.
func RunningBalanceSeries(trades []journal.TradeRecord, initialFund float64) []BalancePoint {
	sorted := make([]journal.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, k int) bool {
		return sorted[i].Date.Before(sorted[k].Date)
	})

	points := make([]BalancePoint, 0, len(sorted))
	balance := initialFund
	for _, t := range sorted {
		switch t.Type {
		case journal.Profit:
			balance += t.Amount
		case journal.Loss:
			balance -= t.Amount
		}
		points = append(points, BalancePoint{Date: t.Date, Balance: balance})
	}
	return points
}
