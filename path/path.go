// Package path implements the looping movement paths that entities of a
// level travel along: node editing with merge and validity checks,
// selection handling, grid snapping, kinematic parameter edits with
// reversible records and a movement simulator for editor previews.
package path

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
)

// CheckStatus classifies the outcome of an edit check.
type CheckStatus int

const (
	// StatusNone means the edit would not change anything.
	StatusNone CheckStatus = iota
	// StatusInvalid means the edit would produce an invalid path.
	StatusInvalid
	// StatusValid means the edit can be applied.
	StatusValid
)

func (s CheckStatus) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	}
	return fmt.Sprintf("CheckStatus(%d)", int(s))
}

// IndexedPos pairs the position of a node with its index. It records merged
// and deleted nodes so the edit can be reverted.
type IndexedPos struct {
	Pos   cp.Vector
	Index int
}

// Path is the travel route of an entity, a loop of at least two nodes each
// holding the kinematic parameters of the leg toward the next one. Node
// positions are relative to the center of the owning entity.
type Path struct {
	nodes   []Node
	bb      cp.BB
	buckets buckets
}

// New creates a path from the two starting points of the route and the
// center of the owning entity.
// Panics if the points coincide.
func New(a, b, center cp.Vector) *Path {
	if geom.VecApproxEqualStrict(a, b) {
		panic(fmt.Sprintf("points used to generate a new path are equal: %v", a))
	}

	n0 := newNodeFromWorld(a, false, center)
	n1 := newNodeFromWorld(b, false, center)

	bkts := buckets{}
	bkts.insert(0, n0.pos)
	bkts.insert(1, n1.pos)

	return &Path{
		nodes:   []Node{n0, n1},
		bb:      geom.BBFromPoints([]cp.Vector{n0.pos, n1.pos}),
		buckets: bkts,
	}
}

// FromNodes creates a path from prebuilt nodes.
// Panics if the nodes do not form a valid path.
func FromNodes(nodes []Node) *Path {
	bkts := buckets{}
	for i, node := range nodes {
		bkts.insert(i, node.pos)
	}

	p := &Path{
		nodes:   slices.Clone(nodes),
		bb:      nodesBB(nodes),
		buckets: bkts,
	}
	p.assertValid("FromNodes")

	return p
}

func nodesBB(nodes []Node) cp.BB {
	pts := make([]cp.Vector, len(nodes))
	for i, node := range nodes {
		pts[i] = node.pos
	}
	return geom.BBFromPoints(pts)
}

// Len returns the amount of nodes.
func (p *Path) Len() int { return len(p.nodes) }

// NodeAt returns a copy of the node at index.
func (p *Path) NodeAt(index int) Node { return p.nodes[index] }

// PosAt returns the position of the node at index relative to the center of
// the owning entity.
func (p *Path) PosAt(index int) cp.Vector { return p.nodes[index].pos }

// BB returns the cached box enclosing all the nodes, in coordinates
// relative to the center of the owning entity.
func (p *Path) BB() cp.BB { return p.bb }

// Nodes returns the nodes in order with their indexes.
func (p *Path) Nodes() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, node := range p.nodes {
			if !yield(i, node) {
				return
			}
		}
	}
}

// SelectedNodes returns the indexes of the selected nodes, nil if there is
// no selection.
func (p *Path) SelectedNodes() []int {
	var idxs []int
	for i, node := range p.nodes {
		if node.selected {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// SharedPositionGroups returns the node indexes grouped by position, used
// to label overlapping nodes as one.
func (p *Path) SharedPositionGroups() iter.Seq2[cp.Vector, []int] { return p.buckets.all() }

// insert adds node at index keeping the buckets aligned.
func (p *Path) insert(index int, node Node) {
	p.nodes = slices.Insert(p.nodes, index, node)
	p.buckets.insert(index, node.pos)
}

// removeNode deletes the node at index keeping the buckets aligned.
func (p *Path) removeNode(index int) {
	pos := p.nodes[index].pos
	p.nodes = slices.Delete(p.nodes, index, index+1)
	p.buckets.remove(index, pos)
}

func (p *Path) updateBB() { p.bb = nodesBB(p.nodes) }

// nodesValid reports whether all consecutive nodes have distinct positions.
func (p *Path) nodesValid() bool {
	n := len(p.nodes)
	if n < 2 {
		return false
	}

	for i := range p.nodes {
		if geom.VecApproxEqualStrict(p.nodes[geom.Prev(i, n)].pos, p.nodes[i].pos) {
			return false
		}
	}

	return true
}

// valid reports whether the path invariants hold: the cached box matches
// the nodes, consecutive nodes are distinct and every node is indexed in
// the bucket at its position.
func (p *Path) valid() bool {
	if !geom.BBApproxEqual(p.bb, nodesBB(p.nodes)) {
		return false
	}

	n := len(p.nodes)
	if n < 2 {
		return false
	}

	for i, node := range p.nodes {
		if geom.VecApproxEqualStrict(p.nodes[geom.Prev(i, n)].pos, node.pos) {
			return false
		}

		if !p.buckets.contains(i, node.pos) {
			return false
		}
	}

	return true
}

func (p *Path) assertValid(op string) {
	if !p.valid() {
		panic(op + " generated an invalid path")
	}
}

// isNodeAtIndexValid reports whether a node at pos can be inserted at index
// without coinciding with its would-be neighbors.
func (p *Path) isNodeAtIndexValid(pos cp.Vector, index int, center cp.Vector) bool {
	index %= len(p.nodes)

	return !geom.VecApproxEqual(pos, p.nodes[geom.Prev(index, len(p.nodes))].WorldPos(center)) &&
		!geom.VecApproxEqual(pos, p.nodes[index].WorldPos(center))
}

// TryInsertNodeAtIndex inserts a node with world position pos at index if it
// does not coincide with its neighbors, and reports whether it did.
func (p *Path) TryInsertNodeAtIndex(pos cp.Vector, index int, center cp.Vector) bool {
	if !p.isNodeAtIndexValid(pos, index, center) {
		return false
	}

	p.insert(index, newNodeFromWorld(pos, false, center))
	p.updateBB()
	p.assertValid("TryInsertNodeAtIndex")

	return true
}

// InsertNodeAtIndex inserts a node with world position pos at index.
// Panics if the node coincides with its neighbors.
func (p *Path) InsertNodeAtIndex(pos cp.Vector, index int, center cp.Vector) {
	if !p.TryInsertNodeAtIndex(pos, index, center) {
		panic("InsertNodeAtIndex generated an invalid path")
	}
}

// InsertNodesAtIndexes reinserts previously deleted nodes, selected, at
// their recorded positions and indexes.
// Panics if the resulting path is invalid.
func (p *Path) InsertNodesAtIndexes(nodes []IndexedPos) {
	for _, node := range nodes {
		p.insert(node.Index, newNode(node.Pos, true))
	}

	p.updateBB()
	p.assertValid("InsertNodesAtIndexes")
}

// RemoveNodesAtIndexes deletes the nodes at idxs, one at a time in the given
// order.
// Panics if the resulting path is invalid.
func (p *Path) RemoveNodesAtIndexes(idxs []int) {
	for _, idx := range idxs {
		p.removeNode(idx)
	}

	p.updateBB()
	p.assertValid("RemoveNodesAtIndexes")
}

// CheckSelectedNodesDeletion checks whether the selected nodes can be
// deleted. On StatusValid it returns the deleted nodes sorted by index, as
// needed to revert the deletion.
func (p *Path) CheckSelectedNodesDeletion() ([]IndexedPos, CheckStatus) {
	n := len(p.nodes)

	if n == 2 {
		for _, node := range p.nodes {
			if node.selected {
				return nil, StatusInvalid
			}
		}
		return nil, StatusNone
	}

	var toBeDeleted []IndexedPos

	for j, node := range p.nodes {
		if !node.selected {
			continue
		}

		vi := p.nodes[geom.Prev(j, n)]
		vk := p.nodes[geom.Next(j, n)]

		if !vi.selected && !vk.selected && geom.VecApproxEqual(vi.pos, vk.pos) {
			return nil, StatusInvalid
		}

		toBeDeleted = append(toBeDeleted, IndexedPos{Pos: node.pos, Index: j})
	}

	if len(toBeDeleted) == 0 {
		return nil, StatusNone
	}

	if n-len(toBeDeleted) < 2 {
		return nil, StatusInvalid
	}

	return toBeDeleted, StatusValid
}

// DeleteSelectedNodes removes the nodes recorded by
// CheckSelectedNodesDeletion.
// Panics if the resulting path is invalid.
func (p *Path) DeleteSelectedNodes(deletion []IndexedPos) {
	for i := len(deletion) - 1; i >= 0; i-- {
		p.removeNode(deletion[i].Index)
	}

	p.updateBB()
	p.assertValid("DeleteSelectedNodes")
}

// RedoSelectedNodesDeletion removes the selected nodes again after the
// deletion was undone.
// Panics if the resulting path is invalid.
func (p *Path) RedoSelectedNodesDeletion() {
	i := 0
	for i < len(p.nodes) {
		if p.nodes[i].selected {
			p.removeNode(i)
			continue
		}
		i++
	}

	p.updateBB()
	p.assertValid("RedoSelectedNodesDeletion")
}
