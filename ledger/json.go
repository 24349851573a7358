package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound marks a missing ledger file. Callers may recover by
	// starting from an empty ledger; history is never fabricated.
	ErrNotFound = errors.New("ledger file not found")

	// ErrCorrupt marks an unreadable ledger file.
	ErrCorrupt = errors.New("ledger file corrupt")
)

// SaveJSON writes the ledger's fills to path. The format round-trips:
// LoadJSON on the written file yields an identical fill sequence.
func (l *Ledger) SaveJSON(path string) error {
	data, err := json.MarshalIndent(l.Fills(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a ledger previously written with SaveJSON.
func LoadJSON(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load ledger %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("load ledger %s: %w", path, err)
	}

	var fills []Fill
	if err := json.Unmarshal(data, &fills); err != nil {
		return nil, fmt.Errorf("load ledger %s: %w: %v", path, ErrCorrupt, err)
	}

	l := New()
	for _, f := range fills {
		if err := l.Record(f); err != nil {
			return nil, fmt.Errorf("load ledger %s: %w: %v", path, ErrCorrupt, err)
		}
	}
	return l, nil
}
