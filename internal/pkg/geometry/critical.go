// Package geometry derives the critical radius ratios of the hard-sphere
// coordination model. Each value is the minimum r/R at which a central
// cation touches all anions of the given polyhedron without the anions
// overlapping; the stability table's published bounds are three-decimal
// roundings of these.
package geometry

import "math"

// TriangularLimit is the critical ratio for NC 3 (triangular planar
// coordination): 2/√3 − 1 ≈ 0.155.
func TriangularLimit() float64 { return 2/math.Sqrt(3) - 1 }

// TetrahedralLimit is the critical ratio for NC 4 (tetrahedral
// coordination): √(3/2) − 1 ≈ 0.225.
func TetrahedralLimit() float64 { return math.Sqrt(1.5) - 1 }

// OctahedralLimit is the critical ratio for NC 6 (octahedral
// coordination): √2 − 1 ≈ 0.414.
func OctahedralLimit() float64 { return math.Sqrt2 - 1 }

// CubicLimit is the critical ratio for NC 8 (cubic coordination):
// √3 − 1 ≈ 0.732.
func CubicLimit() float64 { return math.Sqrt(3) - 1 }

// ClosePackedLimit is the critical ratio for NC 12 (cuboctahedral
// close packing): equal spheres, exactly 1.
func ClosePackedLimit() float64 { return 1 }

// ExactLimit returns the exact critical ratio for a coordination number,
// or false for coordination numbers with no hard-sphere derivation here
// (NC 2 has no lower contact limit: two anions can always touch an
// arbitrarily small cation).
func ExactLimit(coordinationNumber int) (float64, bool) {
	switch coordinationNumber {
	case 3:
		return TriangularLimit(), true
	case 4:
		return TetrahedralLimit(), true
	case 6:
		return OctahedralLimit(), true
	case 8:
		return CubicLimit(), true
	case 12:
		return ClosePackedLimit(), true
	default:
		return 0, false
	}
}
