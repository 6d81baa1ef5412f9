// Package grid implements the editor grid that path nodes snap to.
package grid

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Grid is a square editor grid. When Shifted is set the grid lines are
// offset by half a cell along both axes.
type Grid struct {
	Size    int
	Shifted bool
}

// Default returns the grid the editor starts with.
func Default() Grid { return Grid{Size: 64} }

// SnapPoint snaps p to the grid vertex away from the center of the cell
// containing it. The second return value is false when p is already on the
// grid.
func (g Grid) SnapPoint(p cp.Vector) (cp.Vector, bool) {
	center := g.cellCenter(p)
	snapped := cp.Vector{
		X: g.snapValueFromCenter(p.X, center.X),
		Y: g.snapValueFromCenter(p.Y, center.Y),
	}

	if snapped == p {
		return p, false
	}

	return snapped, true
}

// SnapPointFromCenter snaps p to the grid moving it away from center.
// The second return value is false when p is already on the grid.
func (g Grid) SnapPointFromCenter(p, center cp.Vector) (cp.Vector, bool) {
	snapped := cp.Vector{
		X: g.snapValueFromCenter(p.X, center.X),
		Y: g.snapValueFromCenter(p.Y, center.Y),
	}

	if snapped == p {
		return p, false
	}

	return snapped, true
}

// cellCenter returns the center of the grid cell containing p.
func (g Grid) cellCenter(p cp.Vector) cp.Vector {
	size := float64(g.Size)
	shift := 0.0
	if g.Shifted {
		shift = size / 2
	}

	cell := func(v float64) float64 {
		return math.Floor((v-shift)/size)*size + shift + size/2
	}

	return cp.Vector{X: cell(p.X), Y: cell(p.Y)}
}

// snapValueFromCenter rounds value to the grid line on the far side of
// center.
func (g Grid) snapValueFromCenter(value, center float64) float64 {
	size := float64(g.Size)

	var rounded float64
	if value < center {
		rounded = math.Floor(value)
	} else {
		rounded = math.Ceil(value)
	}

	if g.Shifted {
		half := size / 2
		div := rounded + half

		if math.Mod(div, size) == 0 {
			return rounded
		}

		result := math.Trunc(div/size) * size
		if value < 0 {
			result -= size
		}
		if value < center {
			result -= half
		} else {
			result += half
		}

		return result
	}

	if math.Mod(rounded, size) == 0 {
		return rounded
	}

	result := math.Trunc(value/size) * size
	if value < center {
		if value < 0 {
			result -= size
		}
	} else if value > 0 {
		result += size
	}

	return result
}
