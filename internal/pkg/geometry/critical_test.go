package geometry_test

import (
	"math"
	"testing"

	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/pkg/geometry"
)

func TestExactLimits(t *testing.T) {
	tests := []struct {
		nc   int
		want float64
	}{
		{3, 0.1547},
		{4, 0.2247},
		{6, 0.4142},
		{8, 0.7321},
		{12, 1.0},
	}

	for _, tt := range tests {
		got, ok := geometry.ExactLimit(tt.nc)
		if !ok {
			t.Errorf("ExactLimit(%d) not derivable", tt.nc)
			continue
		}
		if math.Abs(got-tt.want) > 5e-5 {
			t.Errorf("ExactLimit(%d) = %.6f, want ≈ %.4f", tt.nc, got, tt.want)
		}
	}
}

func TestExactLimit_UnderivableCoordinationNumbers(t *testing.T) {
	for _, nc := range []int{0, 1, 2, 5, 7} {
		if _, ok := geometry.ExactLimit(nc); ok {
			t.Errorf("ExactLimit(%d) should not be derivable", nc)
		}
	}
}

func TestTableBoundsMatchDerivations(t *testing.T) {
	// Every published lower bound of the stability table is a rounding of
	// its hard-sphere derivation.
	for _, iv := range domain.Pauling {
		exact, ok := geometry.ExactLimit(iv.CoordinationNumber)
		if !ok {
			continue // NC 2 has no contact limit
		}
		if math.Abs(exact-iv.Lower) > 5e-4 {
			t.Errorf("NC %d: table bound %g differs from derivation %.6f by more than 5e-4",
				iv.CoordinationNumber, iv.Lower, exact)
		}
	}
}
