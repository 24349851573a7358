package ledger

import (
	"fmt"
	"sync"
)

// Ledger is an append-only store of fills keyed by fill ID. Recording a
// fill with an existing ID replaces it (brokers re-report order states as
// they progress from pending to filled). Insertion order is preserved so
// the replay sort stays stable on timestamp ties.
type Ledger struct {
	mu    sync.Mutex
	fills map[string]Fill
	order []string
}

func New() *Ledger {
	return &Ledger{fills: make(map[string]Fill)}
}

// Record appends or replaces a fill.
func (l *Ledger) Record(f Fill) error {
	if f.ID == "" {
		return fmt.Errorf("record fill: empty id")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.fills[f.ID]; !seen {
		l.order = append(l.order, f.ID)
	}
	l.fills[f.ID] = f
	return nil
}

// Fills returns all recorded fills in insertion order.
func (l *Ledger) Fills() []Fill {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Fill, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.fills[id])
	}
	return out
}

// Len returns the number of recorded fills.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
