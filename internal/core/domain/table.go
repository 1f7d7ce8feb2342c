package domain

import (
	"fmt"
)

// StabilityInterval is one row of the radius-ratio stability table: the
// half-open ratio range [Lower, Upper) over which a given coordination
// number is the predicted stable packing.
type StabilityInterval struct {
	Lower              float64 `json:"lower"`
	Upper              float64 `json:"upper,omitempty"`
	Unbounded          bool    `json:"unbounded,omitempty"` // topmost row: Upper is ignored
	CoordinationNumber int     `json:"coordination_number"`
	Geometry           string  `json:"geometry"`
}

// Contains reports whether ratio falls inside the interval.
// Lower bounds are closed, upper bounds open.
func (si StabilityInterval) Contains(ratio float64) bool {
	if ratio < si.Lower {
		return false
	}
	return si.Unbounded || ratio < si.Upper
}

// Label renders the interval in mathematical notation, e.g. "[0.225, 0.414)".
func (si StabilityInterval) Label() string {
	if si.Unbounded {
		return fmt.Sprintf("[%.3f, ∞)", si.Lower)
	}
	return fmt.Sprintf("[%.3f, %.3f)", si.Lower, si.Upper)
}

// Table is an ordered sequence of stability intervals partitioning [0, ∞):
// sorted ascending by lower bound, contiguous, non-overlapping, with exactly
// one unbounded row at the top. Every non-negative ratio matches exactly one
// row of a valid table.
type Table []StabilityInterval

// Find returns the unique interval containing ratio.
// The second return value is false only if the table is malformed
// (Validate would have rejected it) or ratio is negative.
func (t Table) Find(ratio float64) (StabilityInterval, bool) {
	for _, si := range t {
		if si.Contains(ratio) {
			return si, true
		}
	}
	return StabilityInterval{}, false
}

// Validate machine-checks the partition invariant: the table must be
// non-empty, start at ratio 0, have strictly increasing contiguous bounds,
// a single unbounded row in last position, and a non-decreasing coordination
// number from row to row.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("stability table is empty")
	}
	if t[0].Lower != 0 {
		return fmt.Errorf("stability table must start at ratio 0, starts at %g", t[0].Lower)
	}

	for i, si := range t {
		last := i == len(t)-1

		if si.Geometry == "" {
			return fmt.Errorf("row %d: geometry name is empty", i)
		}
		if si.CoordinationNumber <= 0 {
			return fmt.Errorf("row %d: coordination number must be positive, got %d", i, si.CoordinationNumber)
		}
		if si.Unbounded != last {
			if si.Unbounded {
				return fmt.Errorf("row %d: unbounded interval must be the last row", i)
			}
			return fmt.Errorf("row %d: last row must be unbounded", i)
		}
		if !si.Unbounded && si.Upper <= si.Lower {
			return fmt.Errorf("row %d: upper bound %g not above lower bound %g", i, si.Upper, si.Lower)
		}

		if i == 0 {
			continue
		}
		prev := t[i-1]
		if prev.Upper != si.Lower {
			return fmt.Errorf("rows %d..%d: gap or overlap between upper bound %g and lower bound %g",
				i-1, i, prev.Upper, si.Lower)
		}
		if si.CoordinationNumber < prev.CoordinationNumber {
			return fmt.Errorf("rows %d..%d: coordination number decreases from %d to %d",
				i-1, i, prev.CoordinationNumber, si.CoordinationNumber)
		}
	}

	return nil
}

// MustTable builds a Table and panics if the partition invariant does not
// hold. Intended for package-level table definitions, where a malformed
// table is a programming error caught at startup.
func MustTable(rows ...StabilityInterval) Table {
	t := Table(rows)
	if err := t.Validate(); err != nil {
		panic("domain: invalid stability table: " + err.Error())
	}
	return t
}

// Pauling is the classical ionic radius-ratio stability table. The bounds
// are the published three-decimal roundings of the hard-sphere critical
// ratios (see internal/pkg/geometry for the exact derivations), extended
// downward with the NC 2 linear class so the partition covers [0, ∞).
var Pauling = MustTable(
	StabilityInterval{Lower: 0, Upper: 0.155, CoordinationNumber: 2, Geometry: "linear"},
	StabilityInterval{Lower: 0.155, Upper: 0.225, CoordinationNumber: 3, Geometry: "triangular planar"},
	StabilityInterval{Lower: 0.225, Upper: 0.414, CoordinationNumber: 4, Geometry: "tetrahedral"},
	StabilityInterval{Lower: 0.414, Upper: 0.732, CoordinationNumber: 6, Geometry: "octahedral"},
	StabilityInterval{Lower: 0.732, Upper: 1.0, CoordinationNumber: 8, Geometry: "cubic"},
	StabilityInterval{Lower: 1.0, Unbounded: true, CoordinationNumber: 12, Geometry: "close-packed"},
)
