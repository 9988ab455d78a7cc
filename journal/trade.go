// journal/trade.go
package journal

import (
	"fmt"
	"strings"
	"time"
)

// TradeType classifies a ledger entry as a win or a loss. The sign of the
// money moved is carried here, not on the amount.
type TradeType string

const (
	Profit TradeType = "profit"
	Loss   TradeType = "loss"
)

// ParseTradeType accepts "profit" or "loss", case-insensitively.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Profit):
		return Profit, nil
	case string(Loss):
		return Loss, nil
	default:
		return "", fmt.Errorf("%w: unknown trade type %q", ErrValidation, s)
	}
}

// TradeRecord is one journaled win or loss.
type TradeRecord struct {
	ID          string
	Date        time.Time
	Amount      float64 // magnitude only, never negative
	Type        TradeType
	Description string
}

// Validate checks the record invariants before it reaches storage.
func (t TradeRecord) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty trade id", ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: trade %s has no date", ErrValidation, t.ID)
	}
	if t.Amount < 0 {
		return fmt.Errorf("%w: trade %s amount %.2f is negative", ErrValidation, t.ID, t.Amount)
	}
	if t.Type != Profit && t.Type != Loss {
		return fmt.Errorf("%w: trade %s has unknown type %q", ErrValidation, t.ID, t.Type)
	}
	return nil
}

// Currency is the display currency for balances.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	MGA Currency = "MGA"
)

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	MGA: "Ar",
}

// ParseCurrency accepts USD, EUR or MGA, case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencySymbols[c]; !ok {
		return "", fmt.Errorf("%w: unknown currency %q", ErrValidation, s)
	}
	return c, nil
}

// Symbol returns the display symbol ($, €, Ar).
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// Settings is the singleton account configuration. The row always exists:
// the store seeds it with defaults at open and only ever updates it in place.
type Settings struct {
	InitialFund float64
	Currency    Currency
}

func (s Settings) Validate() error {
	if _, ok := currencySymbols[s.Currency]; !ok {
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, s.Currency)
	}
	return nil
}

// DefaultSettings returns the values seeded on first open.
func DefaultSettings() Settings {
	return Settings{
		InitialFund: 1000.0,
		Currency:    USD,
	}
}
