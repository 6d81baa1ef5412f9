package path

import (
	"iter"
	"math"

	"github.com/jakecoffman/cp"
)

// vertexHighlightSide is the side of the square drawn around a node in the
// editor at camera scale 1.
const vertexHighlightSide = 5.0

// insideHighlight reports whether cursor falls within the picking square of
// a node drawn at pos.
func insideHighlight(pos, cursor cp.Vector, cameraScale float64) bool {
	half := vertexHighlightSide * cameraScale * 4 / 2
	return math.Abs(pos.X-cursor.X) <= half && math.Abs(pos.Y-cursor.Y) <= half
}

// NearbyNodes returns the nodes whose picking square contains cursorPos,
// paired with their selection status. The sequence is lazy and yields the
// nodes in index order.
func (p *Path) NearbyNodes(cursorPos, center cp.Vector, cameraScale float64) iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i, node := range p.nodes {
			if !insideHighlight(node.WorldPos(center), cursorPos, cameraScale) {
				continue
			}

			if !yield(i, node.selected) {
				return
			}
		}
	}
}
