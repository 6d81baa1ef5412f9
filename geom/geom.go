// Package geom holds the geometry helpers shared by the path editing
// packages: approximate comparisons, map bounds and bounding boxes built
// from point sets.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MapHalfSize is the half extent of the square map area along each axis.
const MapHalfSize = 16384.0

const (
	// looseEpsilon is the tolerance below which two coordinates identify
	// the same point on the map.
	looseEpsilon = 1.0 / 128.0
	// strictEpsilon is the tolerance below which two scalar values are
	// considered unchanged.
	strictEpsilon = 1e-9
)

// ApproxEqual reports whether a and b are within the map point tolerance.
func ApproxEqual(a, b float64) bool { return math.Abs(a-b) < looseEpsilon }

// ApproxEqualStrict reports whether a and b are within the strict value
// tolerance.
func ApproxEqualStrict(a, b float64) bool { return math.Abs(a-b) < strictEpsilon }

// VecApproxEqual reports whether a and b identify the same point on the map.
func VecApproxEqual(a, b cp.Vector) bool {
	return ApproxEqual(a.X, b.X) && ApproxEqual(a.Y, b.Y)
}

// VecApproxEqualStrict reports whether a and b are the same point within the
// strict tolerance.
func VecApproxEqualStrict(a, b cp.Vector) bool {
	return ApproxEqualStrict(a.X, b.X) && ApproxEqualStrict(a.Y, b.Y)
}

// BBFromPoints returns the bounding box enclosing pts.
// Panics if pts is empty.
func BBFromPoints(pts []cp.Vector) cp.BB {
	if len(pts) == 0 {
		panic("no points to build a bounding box from")
	}

	bb := cp.BB{L: pts[0].X, B: pts[0].Y, R: pts[0].X, T: pts[0].Y}
	for _, p := range pts[1:] {
		bb.L = math.Min(bb.L, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.R = math.Max(bb.R, p.X)
		bb.T = math.Max(bb.T, p.Y)
	}

	return bb
}

// BBApproxEqual reports whether the sides of a and b coincide within the map
// point tolerance.
func BBApproxEqual(a, b cp.BB) bool {
	return ApproxEqual(a.L, b.L) && ApproxEqual(a.B, b.B) &&
		ApproxEqual(a.R, b.R) && ApproxEqual(a.T, b.T)
}

// OffsetBB returns bb moved by v.
func OffsetBB(bb cp.BB, v cp.Vector) cp.BB {
	return cp.BB{L: bb.L + v.X, B: bb.B + v.Y, R: bb.R + v.X, T: bb.T + v.Y}
}

// BumpedBB returns bb grown by amount on every side.
func BumpedBB(bb cp.BB, amount float64) cp.BB {
	return cp.BB{L: bb.L - amount, B: bb.B - amount, R: bb.R + amount, T: bb.T + amount}
}

// OutOfBounds reports whether v lies outside the map area.
func OutOfBounds(v cp.Vector) bool {
	return math.Abs(v.X) > MapHalfSize || math.Abs(v.Y) > MapHalfSize
}

// BBOutOfBounds reports whether any corner of bb lies outside the map area.
func BBOutOfBounds(bb cp.BB) bool {
	return OutOfBounds(cp.Vector{X: bb.L, Y: bb.B}) || OutOfBounds(cp.Vector{X: bb.R, Y: bb.T})
}

// Next returns the index after i in a ring of n elements.
func Next(i, n int) int {
	if i == n-1 {
		return 0
	}
	return i + 1
}

// Prev returns the index before i in a ring of n elements.
func Prev(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}
