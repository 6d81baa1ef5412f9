package path

import (
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
	"github.com/milkweed-games/waypath/grid"
)

// NodesMove records a drag of the selected nodes so it can be reapplied and
// reverted: the indexes of the moved nodes, the unselected neighbors they
// absorbed and the applied delta.
type NodesMove struct {
	Moved  []int
	Merged []IndexedPos
	Delta  cp.Vector
}

// HasMergedNodes reports whether the move absorbed any neighbor.
func (nm *NodesMove) HasMergedNodes() bool { return len(nm.Merged) > 0 }

// Combine extends nm with a later move of the same nodes and reports
// whether it could. Moves that merged nodes are never combined.
func (nm *NodesMove) Combine(other *NodesMove) bool {
	if nm.HasMergedNodes() || other.HasMergedNodes() {
		return false
	}

	nm.Delta = nm.Delta.Add(other.Delta)
	return true
}

// SnapGroup records the indexes of the nodes that a grid snap moved by the
// same delta.
type SnapGroup struct {
	Indexes []int
	Delta   cp.Vector
}

// CheckSelectedNodesMove checks whether the selected nodes can be moved by
// delta. Unselected neighbors that would end up coinciding with a moved
// node are recorded as merged. Returns StatusNone when there is no
// selection and StatusInvalid when a node would leave the map or the merges
// would leave fewer than two nodes.
func (p *Path) CheckSelectedNodesMove(delta cp.Vector) (NodesMove, CheckStatus) {
	moved := p.SelectedNodes()
	if moved == nil {
		return NodesMove{}, StatusNone
	}

	for _, idx := range moved {
		if geom.OutOfBounds(p.nodes[idx].pos.Add(delta)) {
			return NodesMove{}, StatusInvalid
		}
	}

	n := len(p.nodes)
	var merged []IndexedPos

	for _, i := range moved {
		pos := p.nodes[i].pos.Add(delta)

		for _, j := range [2]int{geom.Next(i, n), geom.Prev(i, n)} {
			neighbor := p.nodes[j]
			if neighbor.selected || !geom.VecApproxEqual(neighbor.pos, pos) {
				continue
			}

			// Two moved nodes absorbing the same neighbor would become
			// adjacent and coincident once it is gone.
			if slices.ContainsFunc(merged, func(m IndexedPos) bool { return m.Index == j }) {
				return NodesMove{}, StatusInvalid
			}

			merged = append(merged, IndexedPos{Pos: neighbor.pos, Index: j})
			break
		}
	}

	if n-len(merged) < 2 {
		return NodesMove{}, StatusInvalid
	}

	return NodesMove{Moved: moved, Merged: merged, Delta: delta}, StatusValid
}

// moveNode displaces the node at index by delta keeping the buckets aligned.
func (p *Path) moveNode(index int, delta cp.Vector) {
	prev := p.nodes[index].pos
	p.nodes[index].pos = prev.Add(delta)
	p.buckets.moveIndex(index, prev, p.nodes[index].pos)
}

// ApplySelectedNodesMove moves the nodes as recorded by
// CheckSelectedNodesMove, removing the merged neighbors.
// Panics if the resulting path is invalid.
func (p *Path) ApplySelectedNodesMove(nm *NodesMove) {
	for _, idx := range nm.Moved {
		p.moveNode(idx, nm.Delta)
	}

	for i := len(nm.Merged) - 1; i >= 0; i-- {
		p.removeNode(nm.Merged[i].Index)
	}

	p.updateBB()
	p.assertValid("ApplySelectedNodesMove")
}

// UndoNodesMove reverts a move applied with ApplySelectedNodesMove,
// restoring the merged neighbors.
// Panics if the resulting path is invalid.
func (p *Path) UndoNodesMove(nm *NodesMove) {
	for _, merged := range nm.Merged {
		p.insert(merged.Index, newNode(merged.Pos, false))
	}

	for _, idx := range nm.Moved {
		p.moveNode(idx, nm.Delta.Neg())
	}

	p.updateBB()
	p.assertValid("UndoNodesMove")
}

// Translate moves every node by delta.
// Panics if the resulting path is invalid.
func (p *Path) Translate(delta cp.Vector) {
	for i := range p.nodes {
		p.moveNode(i, delta)
	}

	p.updateBB()
	p.assertValid("Translate")
}

// MoveNodesAtIndexes moves the recorded node groups by their deltas. It is
// the reverse of SnapSelectedNodes when called with negated deltas.
// Panics if the resulting path is invalid.
func (p *Path) MoveNodesAtIndexes(groups []SnapGroup) {
	for _, group := range groups {
		for _, idx := range group.Indexes {
			p.moveNode(idx, group.Delta)
		}
	}

	p.updateBB()
	p.assertValid("MoveNodesAtIndexes")
}

// SnapSelectedNodes snaps the selected nodes to g, grouping them by the
// delta they were moved by. Returns nil when nothing moved or when the snap
// would make consecutive nodes coincide, in which case the path is left
// untouched.
func (p *Path) SnapSelectedNodes(g grid.Grid, center cp.Vector) []SnapGroup {
	var moved []SnapGroup

outer:
	for i := range p.nodes {
		if !p.nodes[i].selected {
			continue
		}

		world := p.nodes[i].WorldPos(center)
		snapped, ok := g.SnapPoint(world)
		if !ok {
			continue
		}

		delta := snapped.Sub(world)
		p.nodes[i].pos = p.nodes[i].pos.Add(delta)

		for k := range moved {
			if geom.VecApproxEqualStrict(moved[k].Delta, delta) {
				moved[k].Indexes = append(moved[k].Indexes, i)
				continue outer
			}
		}

		moved = append(moved, SnapGroup{Indexes: []int{i}, Delta: delta})
	}

	if len(moved) == 0 {
		return nil
	}

	if !p.nodesValid() {
		for _, group := range moved {
			for _, idx := range group.Indexes {
				p.nodes[idx].pos = p.nodes[idx].pos.Sub(group.Delta)
			}
		}

		return nil
	}

	for _, group := range moved {
		for _, idx := range group.Indexes {
			newPos := p.nodes[idx].pos
			p.buckets.moveIndex(idx, newPos.Sub(group.Delta), newPos)
		}
	}

	p.updateBB()
	return moved
}
