// Package backup serializes the full journal state (trades + settings) to a
// portable JSON snapshot and restores it. Restoring replaces all existing
// trades; a malformed document is rejected whole and the store keeps its
// pre-import state.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/journal"
)

// Trade dates travel timezone-naive as local wall clock, matching how the
// store persists them; export_date is RFC3339.
const dateLayout = "2006-01-02T15:04:05"

var naiveDateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05.999999999",
}

// Snapshot is the decoded form of a backup document.
type Snapshot struct {
	Trades     []journal.TradeRecord
	Settings   *journal.Settings // nil when the document carried none
	ExportDate time.Time
}

type snapshotWire struct {
	Trades     []tradeWire   `json:"trades"`
	Settings   *settingsWire `json:"settings,omitempty"`
	ExportDate string        `json:"export_date"`
}

// Required fields are pointers so a missing key is distinguishable from a
// zero value and fails the whole decode.
type tradeWire struct {
	ID          *string  `json:"id"`
	Date        *string  `json:"date"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Description string   `json:"description"`
}

type settingsWire struct {
	InitialFund float64 `json:"initial_fund"`
	Currency    string  `json:"currency"`
}

// Encode renders the snapshot as an indented JSON document.
func Encode(snap Snapshot) ([]byte, error) {
	wire := snapshotWire{
		Trades:     make([]tradeWire, 0, len(snap.Trades)),
		ExportDate: snap.ExportDate.Format(time.RFC3339),
	}

	for i := range snap.Trades {
		t := snap.Trades[i]
		id, date, amount, typ := t.ID, t.Date.In(time.Local).Format(dateLayout), t.Amount, string(t.Type)
		wire.Trades = append(wire.Trades, tradeWire{
			ID:          &id,
			Date:        &date,
			Amount:      &amount,
			Type:        &typ,
			Description: t.Description,
		})
	}

	if snap.Settings != nil {
		wire.Settings = &settingsWire{
			InitialFund: snap.Settings.InitialFund,
			Currency:    string(snap.Settings.Currency),
		}
	}

	return json.MarshalIndent(wire, "", "  ")
}

// Decode parses a backup document. Any missing or malformed trade field
// fails the whole document with ErrImport; nothing is skipped silently.
func Decode(data []byte) (Snapshot, error) {
	var wire snapshotWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", journal.ErrImport, err)
	}

	snap := Snapshot{}

	for i, tw := range wire.Trades {
		switch {
		case tw.ID == nil || *tw.ID == "":
			return Snapshot{}, fmt.Errorf("%w: trade %d: missing id", journal.ErrImport, i)
		case tw.Date == nil:
			return Snapshot{}, fmt.Errorf("%w: trade %d: missing date", journal.ErrImport, i)
		case tw.Amount == nil:
			return Snapshot{}, fmt.Errorf("%w: trade %d: missing amount", journal.ErrImport, i)
		case tw.Type == nil:
			return Snapshot{}, fmt.Errorf("%w: trade %d: missing type", journal.ErrImport, i)
		}

		date, err := parseDate(*tw.Date)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: trade %d: bad date %q", journal.ErrImport, i, *tw.Date)
		}
		typ, err := journal.ParseTradeType(*tw.Type)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: trade %d: bad type %q", journal.ErrImport, i, *tw.Type)
		}

		rec := journal.TradeRecord{
			ID:          *tw.ID,
			Date:        date,
			Amount:      *tw.Amount,
			Type:        typ,
			Description: tw.Description,
		}
		if err := rec.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: trade %d: %v", journal.ErrImport, i, err)
		}
		snap.Trades = append(snap.Trades, rec)
	}

	if wire.Settings != nil {
		cur, err := journal.ParseCurrency(wire.Settings.Currency)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: settings: bad currency %q", journal.ErrImport, wire.Settings.Currency)
		}
		snap.Settings = &journal.Settings{
			InitialFund: wire.Settings.InitialFund,
			Currency:    cur,
		}
	}

	if wire.ExportDate != "" {
		ts, err := time.Parse(time.RFC3339, wire.ExportDate)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: bad export_date %q", journal.ErrImport, wire.ExportDate)
		}
		snap.ExportDate = ts
	}

	return snap, nil
}

// Naive layouts are local wall clock, the zone the store writes dates in;
// parsing them as UTC would shift every instant by the local offset on
// restore. Zoned RFC3339 dates keep their own offset.
func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range naiveDateLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	var t time.Time
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, err
}
