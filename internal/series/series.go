// Package series holds the time-series datasets a visualization plays back.
package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrRagged reports a dataset whose value count differs from the label count.
var ErrRagged = errors.New("series: dataset length does not match labels")

// Dataset is one labeled series of integer values.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// Value returns the value at timestep i, or false when the dataset is short.
func (d Dataset) Value(i int) (int, bool) {
	if i < 0 || i >= len(d.Data) {
		return 0, false
	}
	return d.Data[i], true
}

// TimeSeries is a set of datasets sharing one ordered list of timestep labels.
type TimeSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Steps returns the number of timesteps.
func (ts *TimeSeries) Steps() int {
	if ts == nil {
		return 0
	}
	return len(ts.Labels)
}

// Empty reports whether there is nothing to play back.
func (ts *TimeSeries) Empty() bool {
	return ts == nil || len(ts.Labels) == 0 || len(ts.Datasets) == 0
}

// DatasetLabels returns the dataset labels in order.
func (ts *TimeSeries) DatasetLabels() []string {
	if ts == nil {
		return nil
	}
	out := make([]string, len(ts.Datasets))
	for i, d := range ts.Datasets {
		out[i] = d.Label
	}
	return out
}

// Validate checks that every dataset has exactly one value per label.
func (ts *TimeSeries) Validate() error {
	if ts == nil {
		return nil
	}
	var bad []string
	for _, d := range ts.Datasets {
		if len(d.Data) != len(ts.Labels) {
			bad = append(bad, fmt.Sprintf("%q has %d values", d.Label, len(d.Data)))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("%w (%d labels): %s", ErrRagged, len(ts.Labels), strings.Join(bad, ", "))
}

// Parse decodes a time series JSON document.
func Parse(r io.Reader) (*TimeSeries, error) {
	var ts TimeSeries
	if err := json.NewDecoder(r).Decode(&ts); err != nil {
		return nil, fmt.Errorf("series: decode: %w", err)
	}
	return &ts, nil
}

// Load reads and parses the file at path.
func Load(path string) (*TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: open %s: %w", path, err)
	}
	defer f.Close()

	ts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("series: parse %s: %w", path, err)
	}
	return ts, nil
}
