package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Dates persist as naive local wall-clock text at second precision. One
// fixed-width zone-free format keeps ORDER BY date lexicographic order
// identical to chronological order, regardless of the zone a caller's
// time.Time carried.
const dateLayout = "2006-01-02 15:04:05"

func encodeDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

func decodeDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// SQLite is the durable trade store. It owns the trades table and the
// settings singleton; all mutations are committed before returning.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the journal database at path, applies the
// schema and seeds the settings row with defaults if it is absent.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	def := DefaultSettings()
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO settings (id, initial_fund, currency) VALUES (1, ?, ?)`,
		def.InitialFund, string(def.Currency),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	return &SQLite{db: db}, nil
}

// InsertTrade adds a new record. The caller supplies the id (pkg/id
// ULIDs in practice); a colliding id fails with ErrDuplicateID.
func (j *SQLite) InsertTrade(t TradeRecord) error {
	if err := t.Validate(); err != nil {
		return err
	}

	_, err := j.db.Exec(`
		INSERT INTO trades (id, date, amount, type, description)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, encodeDate(t.Date), t.Amount, string(t.Type), t.Description,
	)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// ListTrades returns every record, most recent first. Records sharing a
// date come back in insertion order, so the listing is deterministic.
func (j *SQLite) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, date, amount, type, description
		FROM trades
		ORDER BY date DESC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var date, typ string
		if err := rows.Scan(&rec.ID, &date, &rec.Amount, &typ, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		if rec.Date, err = decodeDate(date); err != nil {
			return nil, fmt.Errorf("scan trade date: %w", err)
		}
		rec.Type = TradeType(typ)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return out, nil
}

// GetTrade returns a single record by id.
func (j *SQLite) GetTrade(id string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT id, date, amount, type, description
		FROM trades
		WHERE id = ?`, id)

	var rec TradeRecord
	var date, typ string
	err := row.Scan(&rec.ID, &date, &rec.Amount, &typ, &rec.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("%w: trade %q", ErrNotFound, id)
		}
		return TradeRecord{}, fmt.Errorf("get trade: %w", err)
	}
	if rec.Date, err = decodeDate(date); err != nil {
		return TradeRecord{}, fmt.Errorf("get trade date: %w", err)
	}
	rec.Type = TradeType(typ)
	return rec, nil
}

// UpdateTrade replaces the record matching t.ID. An unknown id fails with
// ErrNotFound rather than silently doing nothing.
func (j *SQLite) UpdateTrade(t TradeRecord) error {
	if err := t.Validate(); err != nil {
		return err
	}

	res, err := j.db.Exec(`
		UPDATE trades
		SET date = ?, amount = ?, type = ?, description = ?
		WHERE id = ?`,
		encodeDate(t.Date), t.Amount, string(t.Type), t.Description, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: trade %q", ErrNotFound, t.ID)
	}
	return nil
}

// DeleteTrade removes the record with the given id. Deleting an absent id
// is a no-op, not an error.
func (j *SQLite) DeleteTrade(id string) error {
	if _, err := j.db.Exec(`DELETE FROM trades WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return nil
}

// GetSettings returns the settings singleton. A missing row is repaired by
// re-seeding the defaults; only a failed repair surfaces ErrCorruptState.
func (j *SQLite) GetSettings() (Settings, error) {
	var s Settings
	var cur string
	err := j.db.QueryRow(`SELECT initial_fund, currency FROM settings WHERE id = 1`).
		Scan(&s.InitialFund, &cur)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := DefaultSettings()
			if _, err := j.db.Exec(
				`INSERT INTO settings (id, initial_fund, currency) VALUES (1, ?, ?)`,
				def.InitialFund, string(def.Currency),
			); err != nil {
				return Settings{}, fmt.Errorf("%w: reseed settings: %v", ErrCorruptState, err)
			}
			return def, nil
		}
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	s.Currency = Currency(cur)
	return s, nil
}

// UpdateSettings overwrites both fields of the singleton row.
func (j *SQLite) UpdateSettings(initialFund float64, currency Currency) error {
	s := Settings{InitialFund: initialFund, Currency: currency}
	if err := s.Validate(); err != nil {
		return err
	}

	if _, err := j.db.Exec(
		`UPDATE settings SET initial_fund = ?, currency = ? WHERE id = 1`,
		initialFund, string(currency),
	); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// ReplaceAll swaps the entire trade table for the given set inside one
// transaction, optionally overwriting settings. A failure anywhere rolls
// the whole thing back, so a bad import never leaves a half-cleared store.
func (j *SQLite) ReplaceAll(trades []TradeRecord, settings *Settings) error {
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if settings != nil {
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	for _, t := range trades {
		if _, err := tx.Exec(`
			INSERT INTO trades (id, date, amount, type, description)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, encodeDate(t.Date), t.Amount, string(t.Type), t.Description,
		); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}
	if settings != nil {
		if _, err := tx.Exec(
			`UPDATE settings SET initial_fund = ?, currency = ? WHERE id = 1`,
			settings.InitialFund, string(settings.Currency),
		); err != nil {
			return fmt.Errorf("replace settings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
