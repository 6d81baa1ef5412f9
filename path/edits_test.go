package path

import (
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSetSelectedNodesMaxSpeed(t *testing.T) {
	t.Run("no_selection", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

		if edit := p.SetSelectedNodesMaxSpeed(100); edit != nil {
			t.Fatalf("expected no edit, got %v", edit)
		}
	})

	t.Run("groups_by_delta", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 20, Y: 0})
		selectNodes(p, 0, 1, 2)
		p.nodes[2].movement.SetMaxSpeed(30)

		edit := p.SetSelectedNodesMaxSpeed(100)
		if len(edit) != 2 {
			t.Fatalf("expected 2 delta groups, got %d", len(edit))
		}
		if got := edit[cp.Vector{X: 40, Y: 0}]; !slices.Equal(got, []int{0, 1}) {
			t.Fatalf("expected nodes 0 and 1 in the delta-40 group, got %v", got)
		}
		if got := edit[cp.Vector{X: 70, Y: 0}]; !slices.Equal(got, []int{2}) {
			t.Fatalf("expected node 2 in the delta-70 group, got %v", got)
		}
	})

	t.Run("value_already_set", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})
		selectNodes(p, 0, 1)

		if edit := p.SetSelectedNodesMaxSpeed(60); edit != nil {
			t.Fatalf("expected no edit for the current value, got %v", edit)
		}
	})
}

func TestMaxSpeedEditUndoRedo(t *testing.T) {
	p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})
	selectNodes(p, 0, 1)
	p.nodes[0].movement.SetMinSpeed(40)

	// Lowering max below node 0's min speed drags that min down with it.
	edit := p.SetSelectedNodesMaxSpeed(20)
	if edit == nil {
		t.Fatalf("expected an edit")
	}
	if got := p.NodeAt(0).Movement().MinSpeed(); got != 20 {
		t.Fatalf("expected the min speed clamped to 20, got %g", got)
	}

	p.UndoMaxSpeedEdit(edit)
	if got := p.NodeAt(0).Movement(); got.MaxSpeed() != 60 || got.MinSpeed() != 40 {
		t.Fatalf("expected max=60 min=40 after undo, got max=%g min=%g", got.MaxSpeed(), got.MinSpeed())
	}
	if got := p.NodeAt(1).Movement(); got.MaxSpeed() != 60 {
		t.Fatalf("expected max=60 after undo, got %g", got.MaxSpeed())
	}

	p.RedoMaxSpeedEdit(edit)
	if got := p.NodeAt(0).Movement(); got.MaxSpeed() != 20 || got.MinSpeed() != 20 {
		t.Fatalf("expected max=20 min=20 after redo, got max=%g min=%g", got.MaxSpeed(), got.MinSpeed())
	}
}

func TestAccelEditUndoRestoresDecel(t *testing.T) {
	p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})
	selectNodes(p, 0)
	p.nodes[0].movement.SetDecelTravelPercentage(0.8)

	edit := p.SetSelectedNodesAccelTravelPercentage(0.5)
	if edit == nil {
		t.Fatalf("expected an edit")
	}
	if got := p.NodeAt(0).Movement().DecelTravelPercentage(); !floatNear(got, 0.5) {
		t.Fatalf("expected the decel fraction clamped to 0.5, got %g", got)
	}

	p.UndoAccelTravelPercentageEdit(edit)
	got := p.NodeAt(0).Movement()
	if !floatNear(got.AccelTravelPercentage(), 0) || !floatNear(got.DecelTravelPercentage(), 0.8) {
		t.Fatalf("expected accel=0 decel=0.8 after undo, got accel=%g decel=%g",
			got.AccelTravelPercentage(), got.DecelTravelPercentage())
	}
}

func TestStandbyTimeEdit(t *testing.T) {
	p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 20, Y: 0})
	selectNodes(p, 0, 2)
	p.nodes[2].movement.SetStandbyTime(1)

	edit := p.SetSelectedNodesStandbyTime(3)
	if len(edit) != 2 {
		t.Fatalf("expected 2 delta groups, got %d", len(edit))
	}
	if got := edit[3.0]; !slices.Equal(got, []int{0}) {
		t.Fatalf("expected node 0 in the delta-3 group, got %v", got)
	}
	if got := edit[2.0]; !slices.Equal(got, []int{2}) {
		t.Fatalf("expected node 2 in the delta-2 group, got %v", got)
	}

	p.UndoStandbyTimeEdit(edit)
	if got := p.NodeAt(0).Movement().StandbyTime(); got != 0 {
		t.Fatalf("expected standby 0 after undo, got %g", got)
	}
	if got := p.NodeAt(2).Movement().StandbyTime(); got != 1 {
		t.Fatalf("expected standby 1 after undo, got %g", got)
	}

	p.RedoStandbyTimeEdit(edit)
	if got := p.NodeAt(2).Movement().StandbyTime(); got != 3 {
		t.Fatalf("expected standby 3 after redo, got %g", got)
	}
}

func TestOverallSelectedNodesMovement(t *testing.T) {
	t.Run("uniform", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})
		selectNodes(p, 0, 1)

		overall := p.OverallSelectedNodesMovement()
		if !overall.IsSome() {
			t.Fatalf("expected values to be stacked")
		}
		if v, uniform := overall.MaxSpeed.Value(); !uniform || v != 60 {
			t.Fatalf("expected uniform max speed 60, got %g uniform=%v", v, uniform)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})
		selectNodes(p, 0, 1)
		p.nodes[1].movement.SetMaxSpeed(80)

		overall := p.OverallSelectedNodesMovement()
		if _, uniform := overall.MaxSpeed.Value(); uniform {
			t.Fatalf("expected a non uniform max speed")
		}
		if v, uniform := overall.StandbyTime.Value(); !uniform || v != 0 {
			t.Fatalf("expected uniform standby 0, got %g uniform=%v", v, uniform)
		}
	})

	t.Run("no_selection", func(t *testing.T) {
		p := testPath(t, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

		if overall := p.OverallSelectedNodesMovement(); overall.IsSome() {
			t.Fatalf("expected no stacked values")
		}
	})
}

func floatNear(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
