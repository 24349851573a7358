package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/YroslavBochkov/investRobot/config"
	"github.com/YroslavBochkov/investRobot/ledger"
)

// ledgerPathFor derives a per-ticker store path, so each instrument's
// fill history lives in its own file: fills.json -> fills_SBER.json.
func ledgerPathFor(base, ticker string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + ticker + ext
}

// loadLedger reads the persisted fill history for a ticker. A store that
// does not exist yet is an empty history, not an error.
func loadLedger(cfg *config.Config, ticker string) (*ledger.Ledger, error) {
	switch cfg.Ledger.Type {
	case "json":
		book, err := ledger.LoadJSON(ledgerPathFor(cfg.Ledger.Path, ticker))
		if errors.Is(err, ledger.ErrNotFound) {
			return ledger.New(), nil
		}
		return book, err

	case "sqlite":
		store, err := ledger.OpenSQLite(ledgerPathFor(cfg.Ledger.DBPath, ticker))
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load()

	default:
		return nil, fmt.Errorf("unknown ledger type %q", cfg.Ledger.Type)
	}
}

// persistLedger writes the complete fill history for a ticker back to
// its store. The SQLite append is keyed by fill ID, so rewriting the
// full history is idempotent.
func persistLedger(cfg *config.Config, ticker string, book *ledger.Ledger) error {
	switch cfg.Ledger.Type {
	case "json":
		return book.SaveJSON(ledgerPathFor(cfg.Ledger.Path, ticker))

	case "sqlite":
		store, err := ledger.OpenSQLite(ledgerPathFor(cfg.Ledger.DBPath, ticker))
		if err != nil {
			return err
		}
		defer store.Close()
		for _, f := range book.Fills() {
			if err := store.Append(f); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown ledger type %q", cfg.Ledger.Type)
	}
}
