package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// WriteCSV exports fills to a CSV file for external analysis. The export
// is one-way; JSON and SQLite are the round-trip formats.
func WriteCSV(path string, fills []Fill) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"fill_id", "direction", "status", "lots_requested", "lots_executed",
		"price", "amount", "commission", "currency", "figi", "time",
	}); err != nil {
		return err
	}

	for _, fl := range fills {
		if err := w.Write([]string{
			fl.ID,
			fl.Direction.String(),
			string(fl.Status),
			strconv.Itoa(fl.LotsRequested),
			strconv.Itoa(fl.LotsExecuted),
			fmtF(fl.Price),
			fmtF(fl.Amount),
			fmtF(fl.Commission),
			fl.Currency,
			fl.FIGI,
			fl.Time.UTC().Format(time.RFC3339Nano),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
