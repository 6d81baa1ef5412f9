package level

import (
	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/path"
)

// Edit records returned by path operations are tagged with the id of the
// owning entity so that an undo history shared across the level can never
// apply them to the wrong path.

// NodesMovePayload is an owner-tagged node move.
type NodesMovePayload struct {
	ID   string
	Move path.NodesMove
}

// Apply replays the move on the entity path.
// Panics if e is not the tagged owner.
func (p *NodesMovePayload) Apply(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.ApplySelectedNodesMove(&p.Move)
}

// Undo reverts the move on the entity path.
// Panics if e is not the tagged owner.
func (p *NodesMovePayload) Undo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.UndoNodesMove(&p.Move)
}

// NodesDeletionPayload is an owner-tagged deletion of selected nodes.
type NodesDeletionPayload struct {
	ID       string
	Deletion []path.IndexedPos
}

// Apply deletes the recorded nodes from the entity path.
// Panics if e is not the tagged owner.
func (p *NodesDeletionPayload) Apply(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.DeleteSelectedNodes(p.Deletion)
}

// Undo reinserts the deleted nodes, selected.
// Panics if e is not the tagged owner.
func (p *NodesDeletionPayload) Undo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.InsertNodesAtIndexes(p.Deletion)
}

// Redo deletes the reinserted nodes again.
// Panics if e is not the tagged owner.
func (p *NodesDeletionPayload) Redo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.RedoSelectedNodesDeletion()
}

// SnapPayload is an owner-tagged grid snap.
type SnapPayload struct {
	ID     string
	Groups []path.SnapGroup
}

// Undo moves the snapped nodes back to their original positions.
// Panics if e is not the tagged owner.
func (p *SnapPayload) Undo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.MoveNodesAtIndexes(negated(p.Groups))
}

// Redo replays the snap.
// Panics if e is not the tagged owner.
func (p *SnapPayload) Redo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.MoveNodesAtIndexes(p.Groups)
}

func negated(groups []path.SnapGroup) []path.SnapGroup {
	out := make([]path.SnapGroup, len(groups))
	for i, g := range groups {
		out[i] = path.SnapGroup{Indexes: g.Indexes, Delta: g.Delta.Neg()}
	}
	return out
}

// MovementValueEditPayload is an owner-tagged bulk edit of one of the paired
// kinematic parameters. Undo and Redo receive the matching path methods so
// one payload type serves all four parameters.
type MovementValueEditPayload struct {
	ID   string
	Edit path.MovementValueEdit
}

// Undo reverts the edit through the given parameter-specific path method.
// Panics if e is not the tagged owner.
func (p *MovementValueEditPayload) Undo(e *Entity, undo func(*path.Path, path.MovementValueEdit)) {
	e.mustOwn(p.ID)
	undo(e.Path, p.Edit)
}

// Redo replays the edit through the given parameter-specific path method.
// Panics if e is not the tagged owner.
func (p *MovementValueEditPayload) Redo(e *Entity, redo func(*path.Path, path.MovementValueEdit)) {
	e.mustOwn(p.ID)
	redo(e.Path, p.Edit)
}

// StandbyValueEditPayload is an owner-tagged bulk edit of the standby times.
type StandbyValueEditPayload struct {
	ID   string
	Edit path.StandbyValueEdit
}

// Undo reverts the standby edit.
// Panics if e is not the tagged owner.
func (p *StandbyValueEditPayload) Undo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.UndoStandbyTimeEdit(p.Edit)
}

// Redo replays the standby edit.
// Panics if e is not the tagged owner.
func (p *StandbyValueEditPayload) Redo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.RedoStandbyTimeEdit(p.Edit)
}

// TranslatePayload is an owner-tagged whole-path translation.
type TranslatePayload struct {
	ID    string
	Delta cp.Vector
}

// Undo moves the path back.
// Panics if e is not the tagged owner.
func (p *TranslatePayload) Undo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.Translate(p.Delta.Neg())
}

// Redo replays the translation.
// Panics if e is not the tagged owner.
func (p *TranslatePayload) Redo(e *Entity) {
	e.mustOwn(p.ID)
	e.Path.Translate(p.Delta)
}
