package path

import "github.com/jakecoffman/cp"

// StandbyValueEdit groups the indexes of the edited nodes by the delta that
// was applied to their standby time.
type StandbyValueEdit map[float64][]int

// MovementValueEdit groups the indexes of the edited nodes by the applied
// delta pair: X is the delta of the edited value, Y the delta induced on
// the coupled opposite value.
type MovementValueEdit map[cp.Vector][]int

// movementParam describes one of the coupled kinematic parameters so the
// set/undo/redo logic can be shared between them.
type movementParam struct {
	get    func(*Movement) float64
	set    func(*Movement, float64) (cp.Vector, bool)
	getOpp func(*Movement) float64
	setOpp func(*Movement, float64) (cp.Vector, bool)
}

var (
	maxSpeedParam = movementParam{
		get:    func(m *Movement) float64 { return m.maxSpeed },
		set:    (*Movement).SetMaxSpeed,
		getOpp: func(m *Movement) float64 { return m.minSpeed },
		setOpp: (*Movement).SetMinSpeed,
	}
	minSpeedParam = movementParam{
		get:    func(m *Movement) float64 { return m.minSpeed },
		set:    (*Movement).SetMinSpeed,
		getOpp: func(m *Movement) float64 { return m.maxSpeed },
		setOpp: (*Movement).SetMaxSpeed,
	}
	accelParam = movementParam{
		get:    func(m *Movement) float64 { return m.accelTravelPercentage },
		set:    (*Movement).SetAccelTravelPercentage,
		getOpp: func(m *Movement) float64 { return m.decelTravelPercentage },
		setOpp: (*Movement).SetDecelTravelPercentage,
	}
	decelParam = movementParam{
		get:    func(m *Movement) float64 { return m.decelTravelPercentage },
		set:    (*Movement).SetDecelTravelPercentage,
		getOpp: func(m *Movement) float64 { return m.accelTravelPercentage },
		setOpp: (*Movement).SetAccelTravelPercentage,
	}
)

// setSelectedNodesParam applies value to the parameter on every selected
// node and groups the changed indexes by the applied delta.
func (p *Path) setSelectedNodesParam(param *movementParam, value float64) MovementValueEdit {
	edit := MovementValueEdit{}

	for i := range p.nodes {
		if !p.nodes[i].selected {
			continue
		}

		delta, ok := param.set(&p.nodes[i].movement, value)
		if !ok {
			continue
		}

		edit[delta] = append(edit[delta], i)
	}

	if len(edit) == 0 {
		return nil
	}

	return edit
}

// shiftParamEdit moves the parameter and its opposite by the recorded
// deltas multiplied by sign.
func (p *Path) shiftParamEdit(param *movementParam, edit MovementValueEdit, sign float64) {
	for delta, idxs := range edit {
		for _, i := range idxs {
			m := &p.nodes[i].movement
			value := param.get(m)
			opposite := param.getOpp(m)

			param.set(m, value+sign*delta.X)
			param.setOpp(m, opposite+sign*delta.Y)
		}
	}
}

// SetSelectedNodesMaxSpeed sets the max speed of the selected nodes and
// returns the applied deltas, nil if nothing changed.
func (p *Path) SetSelectedNodesMaxSpeed(value float64) MovementValueEdit {
	return p.setSelectedNodesParam(&maxSpeedParam, value)
}

// UndoMaxSpeedEdit reverts a max speed edit.
func (p *Path) UndoMaxSpeedEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&maxSpeedParam, edit, -1)
}

// RedoMaxSpeedEdit reapplies a max speed edit.
func (p *Path) RedoMaxSpeedEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&maxSpeedParam, edit, 1)
}

// SetSelectedNodesMinSpeed sets the min speed of the selected nodes and
// returns the applied deltas, nil if nothing changed.
func (p *Path) SetSelectedNodesMinSpeed(value float64) MovementValueEdit {
	return p.setSelectedNodesParam(&minSpeedParam, value)
}

// UndoMinSpeedEdit reverts a min speed edit.
func (p *Path) UndoMinSpeedEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&minSpeedParam, edit, -1)
}

// RedoMinSpeedEdit reapplies a min speed edit.
func (p *Path) RedoMinSpeedEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&minSpeedParam, edit, 1)
}

// SetSelectedNodesAccelTravelPercentage sets the accel travel fraction of
// the selected nodes and returns the applied deltas, nil if nothing
// changed.
func (p *Path) SetSelectedNodesAccelTravelPercentage(value float64) MovementValueEdit {
	return p.setSelectedNodesParam(&accelParam, value)
}

// UndoAccelTravelPercentageEdit reverts an accel travel fraction edit.
func (p *Path) UndoAccelTravelPercentageEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&accelParam, edit, -1)
}

// RedoAccelTravelPercentageEdit reapplies an accel travel fraction edit.
func (p *Path) RedoAccelTravelPercentageEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&accelParam, edit, 1)
}

// SetSelectedNodesDecelTravelPercentage sets the decel travel fraction of
// the selected nodes and returns the applied deltas, nil if nothing
// changed.
func (p *Path) SetSelectedNodesDecelTravelPercentage(value float64) MovementValueEdit {
	return p.setSelectedNodesParam(&decelParam, value)
}

// UndoDecelTravelPercentageEdit reverts a decel travel fraction edit.
func (p *Path) UndoDecelTravelPercentageEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&decelParam, edit, -1)
}

// RedoDecelTravelPercentageEdit reapplies a decel travel fraction edit.
func (p *Path) RedoDecelTravelPercentageEdit(edit MovementValueEdit) {
	p.shiftParamEdit(&decelParam, edit, 1)
}

// SetSelectedNodesStandbyTime sets the standby time of the selected nodes
// and returns the applied deltas, nil if nothing changed.
func (p *Path) SetSelectedNodesStandbyTime(value float64) StandbyValueEdit {
	edit := StandbyValueEdit{}

	for i := range p.nodes {
		if !p.nodes[i].selected {
			continue
		}

		delta, ok := p.nodes[i].movement.SetStandbyTime(value)
		if !ok {
			continue
		}

		edit[delta] = append(edit[delta], i)
	}

	if len(edit) == 0 {
		return nil
	}

	return edit
}

// UndoStandbyTimeEdit reverts a standby time edit.
func (p *Path) UndoStandbyTimeEdit(edit StandbyValueEdit) {
	for delta, idxs := range edit {
		for _, i := range idxs {
			m := &p.nodes[i].movement
			m.SetStandbyTime(m.standbyTime - delta)
		}
	}
}

// RedoStandbyTimeEdit reapplies a standby time edit.
func (p *Path) RedoStandbyTimeEdit(edit StandbyValueEdit) {
	for delta, idxs := range edit {
		for _, i := range idxs {
			m := &p.nodes[i].movement
			m.SetStandbyTime(m.standbyTime + delta)
		}
	}
}
