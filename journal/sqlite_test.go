package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestJournal(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func trade(id string, date time.Time, amount float64, typ TradeType) TradeRecord {
	return TradeRecord{ID: id, Date: date, Amount: amount, Type: typ}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestJournal(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','settings')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["settings"])
}

func TestSettingsSeededWithDefaults(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestInsertAndListOrdering(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)

	d1 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	// Two trades share d1; listing must keep their insertion order.
	assert.NoError(t, j.InsertTrade(trade("T1", d1, 200, Profit)))
	assert.NoError(t, j.InsertTrade(trade("T2", d2, 50, Loss)))
	assert.NoError(t, j.InsertTrade(trade("T3", d1, 75, Profit)))

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	assert.Equal(t, "T2", got[0].ID) // most recent date first
	assert.Equal(t, "T1", got[1].ID)
	assert.Equal(t, "T3", got[2].ID)

	assert.True(t, got[0].Date.Equal(d2))
	assert.InDelta(t, 50.0, got[0].Amount, 1e-9)
	assert.Equal(t, Loss, got[0].Type)
}

func TestInsertDuplicateID(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("T1", d, 10, Profit)))

	err := j.InsertTrade(trade("T1", d, 20, Loss))
	assert.ErrorIs(t, err, ErrDuplicateID)

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.InDelta(t, 10.0, got[0].Amount, 1e-9)
}

func TestInsertRejectsInvalid(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, j.InsertTrade(trade("", d, 10, Profit)), ErrValidation)
	assert.ErrorIs(t, j.InsertTrade(trade("T1", time.Time{}, 10, Profit)), ErrValidation)
	assert.ErrorIs(t, j.InsertTrade(trade("T1", d, -10, Profit)), ErrValidation)
	assert.ErrorIs(t, j.InsertTrade(trade("T1", d, 10, TradeType("draw"))), ErrValidation)

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("T1", d, 10, Profit)))
	assert.NoError(t, j.DeleteTrade("no-such-id"))

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	assert.NoError(t, j.DeleteTrade("T1"))
	got, err = j.ListTrades()
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("T1", d, 10, Profit)))

	updated := TradeRecord{
		ID:          "T1",
		Date:        d.Add(24 * time.Hour),
		Amount:      42.5,
		Type:        Loss,
		Description: "revised",
	}
	assert.NoError(t, j.UpdateTrade(updated))

	got, err := j.GetTrade("T1")
	assert.NoError(t, err)
	assert.True(t, got.Date.Equal(updated.Date))
	assert.InDelta(t, 42.5, got.Amount, 1e-9)
	assert.Equal(t, Loss, got.Type)
	assert.Equal(t, "revised", got.Description)
}

func TestUpdateAbsentIsNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err := j.UpdateTrade(trade("ghost", d, 10, Profit))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTradeAbsent(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)

	_, err := j.GetTrade("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)

	assert.NoError(t, j.UpdateSettings(2500, EUR))

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 2500.0, s.InitialFund, 1e-9)
	assert.Equal(t, EUR, s.Currency)
	assert.Equal(t, "€", s.Currency.Symbol())

	assert.ErrorIs(t, j.UpdateSettings(100, Currency("BTC")), ErrValidation)
}

func TestGetSettingsReseedsMissingRow(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)

	// Simulate a corrupted store with the singleton gone.
	_, err := j.db.Exec(`DELETE FROM settings`)
	assert.NoError(t, err)

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	// The repaired row is durable.
	s, err = j.GetSettings()
	assert.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestReplaceAll(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("OLD", d, 5, Loss)))

	next := []TradeRecord{
		trade("N1", d, 100, Profit),
		trade("N2", d.Add(time.Hour), 30, Loss),
	}
	settings := Settings{InitialFund: 5000, Currency: MGA}
	assert.NoError(t, j.ReplaceAll(next, &settings))

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "N2", got[0].ID)
	assert.Equal(t, "N1", got[1].ID)

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 5000.0, s.InitialFund, 1e-9)
	assert.Equal(t, MGA, s.Currency)
}

func TestReplaceAllKeepsSettingsWhenNil(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.UpdateSettings(1234, EUR))
	assert.NoError(t, j.ReplaceAll([]TradeRecord{trade("N1", d, 1, Profit)}, nil))

	s, err := j.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 1234.0, s.InitialFund, 1e-9)
	assert.Equal(t, EUR, s.Currency)
}

func TestReplaceAllRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	j, _ := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("KEEP", d, 10, Profit)))

	// Duplicate ids inside the replacement set fail mid-transaction.
	bad := []TradeRecord{
		trade("N1", d, 1, Profit),
		trade("N1", d, 2, Loss),
	}
	err := j.ReplaceAll(bad, nil)
	assert.Error(t, err)

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "KEEP", got[0].ID)
}

func TestDatesStoredAsNaiveLocalText(t *testing.T) {
	t.Parallel()

	j, path := newTestJournal(t)

	// Zone-bearing input: the stored text must be zone-free local wall
	// clock and the listed record the same instant.
	est := time.FixedZone("EST", -5*3600)
	orig := time.Date(2024, 1, 5, 23, 0, 0, 0, est)
	assert.NoError(t, j.InsertTrade(trade("T1", orig, 200, Profit)))

	got, err := j.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, got[0].Date.Equal(orig))
	assert.Equal(t, time.Local, got[0].Date.Location())

	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var stored string
	assert.NoError(t, db.QueryRow(`SELECT date FROM trades WHERE id = 'T1'`).Scan(&stored))
	assert.Equal(t, orig.In(time.Local).Format("2006-01-02 15:04:05"), stored)
	assert.NotContains(t, stored, "+")
	assert.NotContains(t, stored, "Z")
}

func TestDurabilityAcrossReopen(t *testing.T) {
	t.Parallel()

	j, path := newTestJournal(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, j.InsertTrade(trade("T1", d, 10, Profit)))
	assert.NoError(t, j.UpdateSettings(777, MGA))
	assert.NoError(t, j.Close())

	j2, err := NewSQLite(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j2.Close() })

	got, err := j2.ListTrades()
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	s, err := j2.GetSettings()
	assert.NoError(t, err)
	assert.InDelta(t, 777.0, s.InitialFund, 1e-9)
	assert.Equal(t, MGA, s.Currency)
}
