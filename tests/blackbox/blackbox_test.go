//go:build blackbox

package blackbox

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, "investrobot version") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}

func TestBacktestProducesReport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	csvPath := writeCandlesCSV(t, dir)

	out := run(t, "--config", cfgPath, "backtest", "--csv", csvPath)

	for _, want := range []string{"Backtest SBER", "income", "final_position", "total_commission"} {
		if !strings.Contains(out, want) {
			t.Fatalf("backtest output missing %q:\n%s", want, out)
		}
	}
}

func TestSeedThenStats(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	run(t, "--config", cfgPath, "seed", "--ticker", "SBER", "--price", "100.5", "--lots", "2")

	// The seeded fill must be in the per-ticker JSON store.
	data, err := os.ReadFile(filepath.Join(dir, "fills_SBER.json"))
	if err != nil {
		t.Fatalf("read seeded ledger: %v", err)
	}
	var fills []map[string]any
	if err := json.Unmarshal(data, &fills); err != nil {
		t.Fatalf("parse seeded ledger: %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("want 1 seeded fill, got %d", len(fills))
	}

	out := run(t, "--config", cfgPath, "stats", "--ticker", "SBER", "--rows")
	for _, want := range []string{"Report SBER (1 fills)", "final_position"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestOptimizeRanksTunings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	csvPath := writeCandlesCSV(t, dir)

	out := run(t, "--config", cfgPath, "optimize", "--csv", csvPath, "--top", "3")
	if !strings.Contains(out, "Best tunings for SBER (24 trials)") {
		t.Fatalf("unexpected optimize output:\n%s", out)
	}
}
