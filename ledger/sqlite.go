package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YroslavBochkov/investRobot/market"
)

const schema = `
CREATE TABLE IF NOT EXISTS fills (
	fill_id TEXT PRIMARY KEY,
	direction INTEGER NOT NULL,
	status TEXT NOT NULL,
	lots_requested INTEGER NOT NULL,
	lots_executed INTEGER NOT NULL,
	price REAL NOT NULL,
	amount REAL NOT NULL,
	commission REAL NOT NULL,
	currency TEXT NOT NULL,
	figi TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_time ON fills(time);
`

// SQLiteStore persists fills in a SQLite database, one row per fill.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts or replaces one fill.
func (s *SQLiteStore) Append(f Fill) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO fills
		(fill_id, direction, status, lots_requested, lots_executed, price, amount, commission, currency, figi, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, int(f.Direction), string(f.Status), f.LotsRequested, f.LotsExecuted,
		f.Price, f.Amount, f.Commission, f.Currency, f.FIGI, f.Time.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append fill %s: %w", f.ID, err)
	}
	return nil
}

// Load reads every stored fill back into a Ledger, in insertion
// (rowid) order so replay tie-breaks match the original recording.
func (s *SQLiteStore) Load() (*Ledger, error) {
	rows, err := s.db.Query(`
		SELECT fill_id, direction, status, lots_requested, lots_executed, price, amount, commission, currency, figi, time
		FROM fills ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load fills: %w", err)
	}
	defer rows.Close()

	l := New()
	for rows.Next() {
		var (
			f   Fill
			dir int
			st  string
			ts  string
		)
		if err := rows.Scan(&f.ID, &dir, &st, &f.LotsRequested, &f.LotsExecuted,
			&f.Price, &f.Amount, &f.Commission, &f.Currency, &f.FIGI, &ts); err != nil {
			return nil, fmt.Errorf("scan fill: %w: %v", ErrCorrupt, err)
		}
		f.Direction = market.Direction(dir)
		f.Status = Status(st)
		f.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse fill time: %w: %v", ErrCorrupt, err)
		}
		if err := l.Record(f); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load fills: %w", err)
	}
	return l, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
