package series

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `{
  "labels": ["Mon", "Tue", "Wed"],
  "datasets": [
    {"label": "Twitch", "data": [10, 20, 30]},
    {"label": "YouTube", "data": [5, 5, 5]}
  ]
}`

func TestParse(t *testing.T) {
	ts, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Steps() != 3 || len(ts.Datasets) != 2 {
		t.Fatalf("unexpected shape: %d steps, %d datasets", ts.Steps(), len(ts.Datasets))
	}
	if got := ts.DatasetLabels(); got[0] != "Twitch" || got[1] != "YouTube" {
		t.Fatalf("labels = %v", got)
	}
	if err := ts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v, ok := ts.Datasets[0].Value(2); !ok || v != 30 {
		t.Fatalf("Value(2) = %d,%v", v, ok)
	}
	if _, ok := ts.Datasets[0].Value(3); ok {
		t.Fatalf("Value past end should report false")
	}
}

func TestValidateRagged(t *testing.T) {
	ts := &TimeSeries{
		Labels:   []string{"a", "b"},
		Datasets: []Dataset{{Label: "short", Data: []int{1}}},
	}
	err := ts.Validate()
	if !errors.Is(err, ErrRagged) {
		t.Fatalf("expected ErrRagged, got %v", err)
	}
	if !strings.Contains(err.Error(), `"short" has 1 values`) {
		t.Fatalf("error lacks detail: %v", err)
	}
}

func TestEmpty(t *testing.T) {
	var nilSeries *TimeSeries
	if !nilSeries.Empty() || nilSeries.Steps() != 0 {
		t.Fatalf("nil series should be empty")
	}
	if !(&TimeSeries{Labels: []string{"x"}}).Empty() {
		t.Fatalf("series without datasets should be empty")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewers.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	ts, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ts.Steps() != 3 {
		t.Fatalf("steps = %d", ts.Steps())
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap ErrNotExist, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}
