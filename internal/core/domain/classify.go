package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveRadius is returned when a supplied radius is not a
	// positive length.
	ErrNonPositiveRadius = errors.New("radius must be a positive length")

	// ErrZeroAnionRadius is returned when the anion radius is zero and the
	// ratio is therefore undefined.
	ErrZeroAnionRadius = errors.New("anion radius is zero, ratio undefined")

	// ErrNoMatchingInterval is returned when a ratio matches no row of the
	// stability table. Unreachable for a table that passes Validate; kept as
	// a regression hook for table edits.
	ErrNoMatchingInterval = errors.New("ratio matches no stability interval")
)

// ClassificationResult is the outcome of one radius-ratio evaluation.
// Interval is the matched table row, so a caller can highlight it on a
// chart of the full table.
type ClassificationResult struct {
	Ratio              float64           `json:"ratio"`
	CoordinationNumber int               `json:"coordination_number"`
	Geometry           string            `json:"geometry"`
	Interval           StabilityInterval `json:"interval"`
}

// Classify computes the radius ratio r/R and resolves it against the table.
// Both radii must be strictly positive; a cation larger than the anion is
// unusual but allowed, the ratio is classified like any other value.
// Pure and deterministic: no I/O, no state, safe for concurrent use.
func (t Table) Classify(cationRadius, anionRadius float64) (*ClassificationResult, error) {
	if anionRadius == 0 {
		return nil, ErrZeroAnionRadius
	}
	if cationRadius <= 0 || anionRadius < 0 {
		return nil, fmt.Errorf("%w: r=%g Å, R=%g Å", ErrNonPositiveRadius, cationRadius, anionRadius)
	}

	ratio := cationRadius / anionRadius
	si, ok := t.Find(ratio)
	if !ok {
		return nil, fmt.Errorf("%w: r/R=%g", ErrNoMatchingInterval, ratio)
	}

	return &ClassificationResult{
		Ratio:              ratio,
		CoordinationNumber: si.CoordinationNumber,
		Geometry:           si.Geometry,
		Interval:           si,
	}, nil
}

// Classify evaluates a radius pair against the Pauling table.
func Classify(cationRadius, anionRadius float64) (*ClassificationResult, error) {
	return Pauling.Classify(cationRadius, anionRadius)
}
