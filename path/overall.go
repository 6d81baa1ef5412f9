package path

// OverallValue accumulates a parameter across nodes, tracking whether it
// holds the same value for all of them.
type OverallValue struct {
	set        bool
	nonUniform bool
	value      float64
}

// Merge folds v into the accumulated value and reports whether the result
// is non uniform.
func (o *OverallValue) Merge(v float64) bool {
	switch {
	case !o.set:
		o.set = true
		o.value = v
	case !o.nonUniform && o.value != v:
		o.nonUniform = true
	}

	return o.nonUniform
}

// Value returns the accumulated value and whether it is uniform across all
// the merged nodes.
func (o OverallValue) Value() (float64, bool) { return o.value, o.set && !o.nonUniform }

// OverallMovement is the aggregate of the movement parameters of a set of
// nodes, used to fill the editor parameter panel for a multi selection.
type OverallMovement struct {
	MaxSpeed              OverallValue
	MinSpeed              OverallValue
	AccelTravelPercentage OverallValue
	DecelTravelPercentage OverallValue
	StandbyTime           OverallValue
}

// Stack folds m into the aggregate and reports whether every parameter has
// become non uniform, at which point stacking more values cannot change
// the outcome.
func (o *OverallMovement) Stack(m Movement) bool {
	nonUniform := o.MaxSpeed.Merge(m.maxSpeed)
	nonUniform = o.MinSpeed.Merge(m.minSpeed) && nonUniform
	nonUniform = o.AccelTravelPercentage.Merge(m.accelTravelPercentage) && nonUniform
	nonUniform = o.DecelTravelPercentage.Merge(m.decelTravelPercentage) && nonUniform
	nonUniform = o.StandbyTime.Merge(m.standbyTime) && nonUniform

	return nonUniform
}

// IsSome reports whether any movement was stacked.
func (o OverallMovement) IsSome() bool { return o.MaxSpeed.set }

// OverallSelectedNodesMovement aggregates the movement parameters of the
// selected nodes.
func (p *Path) OverallSelectedNodesMovement() OverallMovement {
	var overall OverallMovement

	for _, node := range p.nodes {
		if !node.selected {
			continue
		}

		if overall.Stack(node.movement) {
			break
		}
	}

	return overall
}
