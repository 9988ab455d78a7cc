package backup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradebook/journal"
)

func newTestStore(t *testing.T) *journal.SQLite {
	t.Helper()

	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func seedStore(t *testing.T, j *journal.SQLite) {
	t.Helper()

	assert.NoError(t, j.InsertTrade(journal.TradeRecord{
		ID:     "T1",
		Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount: 200,
		Type:   journal.Profit,
	}))
	assert.NoError(t, j.InsertTrade(journal.TradeRecord{
		ID:          "T2",
		Date:        time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		Amount:      50,
		Type:        journal.Loss,
		Description: "stopped out",
	}))
	assert.NoError(t, j.UpdateSettings(1000, journal.USD))
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	seedStore(t, j)

	before, err := j.ListTrades()
	assert.NoError(t, err)

	snap, err := Export(j)
	assert.NoError(t, err)
	assert.False(t, snap.ExportDate.IsZero())

	data, err := Encode(snap)
	assert.NoError(t, err)
	decoded, err := Decode(data)
	assert.NoError(t, err)

	assert.NoError(t, Import(j, decoded))

	after, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.True(t, after[i].Date.Equal(before[i].Date))
		assert.InDelta(t, before[i].Amount, after[i].Amount, 1e-9)
		assert.Equal(t, before[i].Type, after[i].Type)
		assert.Equal(t, before[i].Description, after[i].Description)
	}

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 1000.0, s.InitialFund, 1e-9)
	assert.Equal(t, journal.USD, s.Currency)
}

func TestImportReplacesExistingTrades(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	seedStore(t, j)

	settings := journal.Settings{InitialFund: 9999, Currency: journal.MGA}
	snap := Snapshot{
		Trades: []journal.TradeRecord{{
			ID:     "NEW",
			Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Amount: 10,
			Type:   journal.Profit,
		}},
		Settings: &settings,
	}

	assert.NoError(t, Import(j, snap))

	trades, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, "NEW", trades[0].ID)

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 9999.0, s.InitialFund, 1e-9)
	assert.Equal(t, journal.MGA, s.Currency)
}

func TestImportWithoutSettingsKeepsCurrent(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	assert.NoError(t, j.UpdateSettings(4321, journal.EUR))

	snap := Snapshot{
		Trades: []journal.TradeRecord{{
			ID:     "NEW",
			Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Amount: 10,
			Type:   journal.Profit,
		}},
	}
	assert.NoError(t, Import(j, snap))

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 4321.0, s.InitialFund, 1e-9)
	assert.Equal(t, journal.EUR, s.Currency)
}

func TestRoundTripPreservesInstantAcrossZones(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)

	// A date carrying a non-local offset must come back as the same
	// instant after export, encode, decode and import.
	est := time.FixedZone("EST", -5*3600)
	orig := time.Date(2024, 1, 5, 23, 0, 0, 0, est)
	assert.NoError(t, j.InsertTrade(journal.TradeRecord{
		ID:     "T1",
		Date:   orig,
		Amount: 200,
		Type:   journal.Profit,
	}))

	snap, err := Export(j)
	assert.NoError(t, err)

	data, err := Encode(snap)
	assert.NoError(t, err)
	decoded, err := Decode(data)
	assert.NoError(t, err)

	assert.NoError(t, Import(j, decoded))

	trades, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.True(t, trades[0].Date.Equal(orig),
		"round trip changed the instant by %v", trades[0].Date.Sub(orig))
}

func TestMalformedImportLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	j := newTestStore(t)
	seedStore(t, j)

	before, err := j.ListTrades()
	assert.NoError(t, err)

	// Decode rejects the document before the store is touched.
	doc := `{"trades": [{"id": "X", "date": "2024-01-05T00:00:00", "type": "profit"}]}`
	_, err = Decode([]byte(doc))
	assert.ErrorIs(t, err, journal.ErrImport)

	// A snapshot that fails inside the store transaction rolls back too.
	dup := Snapshot{Trades: []journal.TradeRecord{
		{ID: "D", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1, Type: journal.Profit},
		{ID: "D", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Amount: 2, Type: journal.Loss},
	}}
	assert.Error(t, Import(j, dup))

	after, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
}
