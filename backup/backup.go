package backup

import (
	"fmt"
	"log"
	"time"

	"github.com/rustyeddy/tradebook/journal"
)

// Store is the slice of the journal store the codec needs.
type Store interface {
	ListTrades() ([]journal.TradeRecord, error)
	GetSettings() (journal.Settings, error)
	ReplaceAll(trades []journal.TradeRecord, settings *journal.Settings) error
}

// Export builds a snapshot of the full store state, stamped with the
// current time.
func Export(store Store) (Snapshot, error) {
	trades, err := store.ListTrades()
	if err != nil {
		return Snapshot{}, fmt.Errorf("export: %w", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		return Snapshot{}, fmt.Errorf("export: %w", err)
	}

	return Snapshot{
		Trades:     trades,
		Settings:   &settings,
		ExportDate: time.Now(),
	}, nil
}

// Import destructively replaces all trades with the snapshot's, and the
// settings too when the snapshot carries them. The swap happens in a single
// store transaction, so a failure leaves the pre-import state intact.
func Import(store Store, snap Snapshot) error {
	if err := store.ReplaceAll(snap.Trades, snap.Settings); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	log.Printf("imported %d trades from snapshot", len(snap.Trades))
	return nil
}
