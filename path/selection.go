package path

import (
	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
)

// DeselectNodes deselects all the nodes and returns the indexes of the ones
// that were selected, nil if there was no selection.
func (p *Path) DeselectNodes() []int {
	var idxs []int
	for i := range p.nodes {
		if p.nodes[i].selected {
			idxs = append(idxs, i)
			p.nodes[i].selected = false
		}
	}
	return idxs
}

// ToggleNodeAtIndex toggles the selection of the node at index and reports
// whether it is now selected.
func (p *Path) ToggleNodeAtIndex(index int) bool {
	p.nodes[index].selected = !p.nodes[index].selected
	return p.nodes[index].selected
}

// ExclusivelySelectNodeAtIndex selects the node at index and deselects every
// other one. If the node was already selected nothing changes and
// alreadySelected is true; otherwise changed holds the toggled indexes, the
// picked node first.
func (p *Path) ExclusivelySelectNodeAtIndex(index int) (changed []int, alreadySelected bool) {
	if p.nodes[index].selected {
		return nil, true
	}

	p.nodes[index].selected = true
	changed = []int{index}

	for i := range p.nodes {
		if i == index || !p.nodes[i].selected {
			continue
		}

		changed = append(changed, i)
		p.nodes[i].selected = false
	}

	return changed, false
}

// SelectNodesInRange selects the nodes within range and returns the indexes
// of the ones whose selection changed, nil if none did. Already selected
// nodes outside the range stay selected.
func (p *Path) SelectNodesInRange(center cp.Vector, rng cp.BB) []int {
	var idxs []int
	for i := range p.nodes {
		if p.nodes[i].selected {
			continue
		}

		if rng.ContainsVect(p.nodes[i].WorldPos(center)) {
			p.nodes[i].selected = true
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// ExclusivelySelectNodesInRange makes the selection match the nodes within
// range and returns the indexes of the ones whose selection changed, nil if
// none did.
func (p *Path) ExclusivelySelectNodesInRange(center cp.Vector, rng cp.BB) []int {
	if !rng.Intersects(geom.OffsetBB(p.bb, center)) {
		return p.DeselectNodes()
	}

	var idxs []int
	for i := range p.nodes {
		selected := p.nodes[i].selected
		p.nodes[i].selected = rng.ContainsVect(p.nodes[i].WorldPos(center))

		if p.nodes[i].selected != selected {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// SelectAllNodes selects every node and returns the indexes of the ones that
// were not already selected, nil if none.
func (p *Path) SelectAllNodes() []int {
	var idxs []int
	for i := range p.nodes {
		if p.nodes[i].selected {
			continue
		}

		p.nodes[i].selected = true
		idxs = append(idxs, i)
	}
	return idxs
}
