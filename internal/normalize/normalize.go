// Package normalize maps data values onto the unit interval.
package normalize

import (
	"fmt"
	"strings"

	"github.com/iburimskiy/data-ballpit/internal/series"
)

// Policy selects which range a dataset's values are measured against.
type Policy int

const (
	// PerDataset measures every dataset against its own min/max.
	PerDataset Policy = iota
	// Global measures every dataset against the min/max over all datasets.
	Global
)

func (p Policy) String() string {
	switch p {
	case PerDataset:
		return "per-dataset"
	case Global:
		return "global"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy accepts "per-dataset" (or "dataset", "local") and "global".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-dataset", "dataset", "local", "":
		return PerDataset, nil
	case "global":
		return Global, nil
	}
	return PerDataset, fmt.Errorf("normalize: unknown policy %q", s)
}

// Next cycles through the known policies.
func (p Policy) Next() Policy {
	if p == Global {
		return PerDataset
	}
	return Global
}

// Normalize is a clamped inverse lerp of v between min and max.
// A degenerate range (min == max) maps everything to 0.
func Normalize(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return clamp01((v - min) / (max - min))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Range is an inclusive min/max pair.
type Range struct {
	Min, Max int
}

// Of returns the range of values; false when values is empty.
func Of(values []int) (Range, bool) {
	if len(values) == 0 {
		return Range{}, false
	}
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		r = r.include(v)
	}
	return r, true
}

func (r Range) include(v int) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

func (r Range) union(o Range) Range {
	return r.include(o.Min).include(o.Max)
}

// Normalize maps v into [0,1] relative to r.
func (r Range) Normalize(v int) float64 {
	return Normalize(float64(v), float64(r.Min), float64(r.Max))
}

// Ranges returns one range per dataset of ts under the given policy.
// Datasets with no values get the zero Range.
func Ranges(ts *series.TimeSeries, p Policy) []Range {
	if ts == nil {
		return nil
	}
	out := make([]Range, len(ts.Datasets))
	var (
		all  Range
		seen bool
	)
	for i, d := range ts.Datasets {
		r, ok := Of(d.Data)
		if !ok {
			continue
		}
		out[i] = r
		if !seen {
			all, seen = r, true
		} else {
			all = all.union(r)
		}
	}
	if p == Global && seen {
		for i := range out {
			out[i] = all
		}
	}
	return out
}
