package path

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestMovementSetters(t *testing.T) {
	cases := []struct {
		name      string
		setup     func(m *Movement)
		set       func(m *Movement) (cp.Vector, bool)
		wantDelta cp.Vector
		wantOk    bool
	}{
		{
			name: "max_speed_plain",
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetMaxSpeed(100)
			},
			wantDelta: cp.Vector{X: 40, Y: 0},
			wantOk:    true,
		},
		{
			name: "max_speed_unchanged",
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetMaxSpeed(60)
			},
			wantOk: false,
		},
		{
			name: "max_speed_clamps_min",
			setup: func(m *Movement) {
				m.SetMinSpeed(10)
			},
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetMaxSpeed(5)
			},
			wantDelta: cp.Vector{X: -55, Y: -5},
			wantOk:    true,
		},
		{
			name: "min_speed_raises_max",
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetMinSpeed(80)
			},
			wantDelta: cp.Vector{X: 80, Y: 20},
			wantOk:    true,
		},
		{
			name: "accel_clamps_decel",
			setup: func(m *Movement) {
				m.SetDecelTravelPercentage(0.8)
			},
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetAccelTravelPercentage(0.5)
			},
			wantDelta: cp.Vector{X: 0.5, Y: -0.3},
			wantOk:    true,
		},
		{
			name: "decel_clamps_accel",
			setup: func(m *Movement) {
				m.SetAccelTravelPercentage(0.6)
			},
			set: func(m *Movement) (cp.Vector, bool) {
				return m.SetDecelTravelPercentage(0.7)
			},
			wantDelta: cp.Vector{X: 0.7, Y: -0.3},
			wantOk:    true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := DefaultMovement()
			if c.setup != nil {
				c.setup(&m)
			}

			delta, ok := c.set(&m)
			if ok != c.wantOk {
				t.Fatalf("expected ok=%v, got %v", c.wantOk, ok)
			}
			if !ok {
				return
			}

			if !vecNear(delta, c.wantDelta) {
				t.Fatalf("expected delta %v, got %v", c.wantDelta, delta)
			}
		})
	}
}

func TestMovementSetterRoundTrip(t *testing.T) {
	m := DefaultMovement()
	m.SetMinSpeed(10)

	delta, ok := m.SetMaxSpeed(5)
	if !ok {
		t.Fatalf("expected the edit to apply")
	}

	// Walking the deltas back must restore both coupled values.
	m.SetMaxSpeed(m.MaxSpeed() - delta.X)
	m.SetMinSpeed(m.MinSpeed() - delta.Y)

	if m.MaxSpeed() != 60 || m.MinSpeed() != 10 {
		t.Fatalf("expected max=60 min=10 after revert, got max=%g min=%g", m.MaxSpeed(), m.MinSpeed())
	}
}

func TestMovementSetterPanics(t *testing.T) {
	cases := []struct {
		name string
		call func(m *Movement)
	}{
		{"max_speed_zero", func(m *Movement) { m.SetMaxSpeed(0) }},
		{"max_speed_negative", func(m *Movement) { m.SetMaxSpeed(-1) }},
		{"min_speed_negative", func(m *Movement) { m.SetMinSpeed(-1) }},
		{"accel_above_one", func(m *Movement) { m.SetAccelTravelPercentage(1.5) }},
		{"decel_negative", func(m *Movement) { m.SetDecelTravelPercentage(-0.1) }},
		{"standby_negative", func(m *Movement) { m.SetStandbyTime(-1) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected a panic")
				}
			}()

			m := DefaultMovement()
			c.call(&m)
		})
	}
}

func TestMovementStartSpeed(t *testing.T) {
	m := NewMovement(60, 0, 0, 15, 0)
	if got := m.StartSpeed(); got != 60 {
		t.Fatalf("expected start speed 60 without speed up, got %g", got)
	}

	m = NewMovement(60, 0.3, 0, 15, 0)
	if got := m.StartSpeed(); got != 15 {
		t.Fatalf("expected start speed 15 with speed up, got %g", got)
	}
}

func vecNear(a, b cp.Vector) bool {
	const eps = 1e-9
	return a.Sub(b).Length() < eps
}
