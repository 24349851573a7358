package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YroslavBochkov/investRobot/market"
)

func TestLedgerRecordAndOrder(t *testing.T) {
	t.Parallel()

	l := New()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.Record(fill("b", market.Buy, 1, 100, t0)))
	require.NoError(t, l.Record(fill("a", market.Sell, 1, 101, t0.Add(time.Minute))))

	got := l.Fills()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestLedgerRejectsEmptyID(t *testing.T) {
	t.Parallel()

	l := New()
	assert.Error(t, l.Record(Fill{}))
}

func TestLedgerReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	l := New()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	pending := fill("x", market.Buy, 2, 0, t0)
	pending.Status = StatusPending
	pending.LotsExecuted = 0
	require.NoError(t, l.Record(pending))
	require.NoError(t, l.Record(fill("y", market.Buy, 1, 100, t0.Add(time.Second))))

	// Broker re-reports order x as filled; it keeps its slot.
	require.NoError(t, l.Record(fill("x", market.Buy, 2, 99, t0)))

	got := l.Fills()
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, StatusFilled, got[0].Status)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.json")
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	l := New()
	require.NoError(t, l.Record(fill("a", market.Buy, 2, 100.5, t0)))
	require.NoError(t, l.Record(fill("b", market.Sell, 1, 101.25, t0.Add(time.Minute))))
	require.NoError(t, l.SaveJSON(path))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, l.Fills(), loaded.Fills())
}

func TestLoadJSONMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadJSONCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadJSON(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.sqlite")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := fill("a", market.Buy, 2, 100.5, t0)
	b := fill("b", market.Sell, 1, 101.25, t0.Add(time.Minute))

	require.NoError(t, store.Append(a))
	require.NoError(t, store.Append(b))

	loaded, err := store.Load()
	require.NoError(t, err)

	got := loaded.Fills()
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.InDelta(t, a.Price, got[0].Price, 1e-9)
	assert.True(t, a.Time.Equal(got[0].Time))
	assert.Equal(t, b.Direction, got[1].Direction)
}
