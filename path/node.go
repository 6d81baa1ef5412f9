package path

import "github.com/jakecoffman/cp"

// Node is a waypoint of a Path. Its position is stored relative to the
// center of the owning entity.
type Node struct {
	pos      cp.Vector
	selected bool
	movement Movement
}

func newNode(pos cp.Vector, selected bool) Node {
	return Node{pos: pos, selected: selected, movement: DefaultMovement()}
}

func newNodeFromWorld(pos cp.Vector, selected bool, center cp.Vector) Node {
	return newNode(pos.Sub(center), selected)
}

// Pos returns the position of the node relative to the center of the owning
// entity.
func (n Node) Pos() cp.Vector { return n.pos }

// WorldPos returns the position of the node on the map.
func (n Node) WorldPos(center cp.Vector) cp.Vector { return n.pos.Add(center) }

// Selected reports whether the node is selected.
func (n Node) Selected() bool { return n.selected }

// Movement returns the travel parameters toward the next node.
func (n Node) Movement() Movement { return n.movement }
