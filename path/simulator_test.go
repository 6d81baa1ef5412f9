package path

import (
	"testing"

	"github.com/jakecoffman/cp"
)

// kinematicPath builds a two node path with the same movement on both legs.
func kinematicPath(t *testing.T, m Movement, positions ...cp.Vector) *Path {
	t.Helper()

	nodes := make([]Node, len(positions))
	for i, pos := range positions {
		nodes[i] = Node{pos: pos, movement: m}
	}

	return FromNodes(nodes)
}

func TestSimulatorUniformSpeed(t *testing.T) {
	p := kinematicPath(t, NewMovement(10, 0, 0, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(0.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0), got %v", got)
	}

	// Reaches the target exactly, then starts traveling back.
	sim.Update(0.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 10, Y: 0}) {
		t.Fatalf("expected displacement (10,0), got %v", got)
	}

	sim.Update(0.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0) on the way back, got %v", got)
	}
}

func TestSimulatorAcceleration(t *testing.T) {
	// a = 0.5*(10^2-0)/(10*0.5) = 10 over the first half of the leg.
	p := kinematicPath(t, NewMovement(10, 0.5, 0.5, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(0.9)
	// v goes 0 -> 9, average 4.5, distance 4.05.
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 4.05, Y: 0}) {
		t.Fatalf("expected displacement (4.05,0), got %v", got)
	}
	if !floatNear(sim.speed, 9) {
		t.Fatalf("expected speed 9, got %g", sim.speed)
	}
}

func TestSimulatorPhaseEndsOnStepBoundary(t *testing.T) {
	// With accel and decel each covering half the leg, a 1s step ends
	// exactly when max speed is reached; the entity must stop at the
	// midpoint instead of skipping ahead.
	p := kinematicPath(t, NewMovement(10, 0.5, 0.5, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(1)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0), got %v", got)
	}
	if !floatNear(sim.speed, 10) {
		t.Fatalf("expected max speed at the phase boundary, got %g", sim.speed)
	}

	// The next second decelerates 10 -> 0 over the remaining half and ends
	// exactly on the target.
	sim.Update(1)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 10, Y: 0}) {
		t.Fatalf("expected arrival at (10,0), got %v", got)
	}
}

func TestSimulatorAccelerationOverflowCarries(t *testing.T) {
	// Acceleration ends after 1s at the midpoint; the remaining time is
	// spent at max speed.
	p := kinematicPath(t, NewMovement(10, 0.5, 0, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(1.2)
	// 5 units accelerating, then 0.2s at speed 10.
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 7, Y: 0}) {
		t.Fatalf("expected displacement (7,0), got %v", got)
	}
	if !floatNear(sim.speed, 10) {
		t.Fatalf("expected max speed after the speed up, got %g", sim.speed)
	}
}

func TestSimulatorStandby(t *testing.T) {
	p := kinematicPath(t, NewMovement(10, 0, 0, 0, 2),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(1)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 10, Y: 0}) {
		t.Fatalf("expected arrival at (10,0), got %v", got)
	}

	// Parked on the target for two seconds.
	sim.Update(1)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 10, Y: 0}) {
		t.Fatalf("expected no movement during standby, got %v", got)
	}

	// The leftover time after the standby runs out is spent traveling.
	sim.Update(1.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0) after the standby, got %v", got)
	}
}

func TestSimulatorLoopsWithinStepCap(t *testing.T) {
	p := kinematicPath(t, NewMovement(10, 0, 0, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	// Two full round trips in a single update.
	sim.Update(4)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{}) {
		t.Fatalf("expected to be back at the start, got %v", got)
	}

	sim.Update(2.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0) mid lap, got %v", got)
	}
}

func TestSimulatorDeceleration(t *testing.T) {
	// Uniform at 10 for the first half, then slowing toward 0; the decel
	// phase mirrors the acceleration math.
	p := kinematicPath(t, NewMovement(10, 0, 0.5, 0, 0),
		cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 0})

	sim := p.MovementSimulator("platform")

	sim.Update(0.5)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("expected displacement (5,0), got %v", got)
	}

	// d = 0.5*(0-100)/5 = -10; from v=10, 0.4s of slowing covers
	// 10*0.4 - 5*0.16 = 3.2.
	sim.Update(0.4)
	if got := sim.MovementVector(); !vecNear(got, cp.Vector{X: 8.2, Y: 0}) {
		t.Fatalf("expected displacement (8.2,0), got %v", got)
	}
	if !floatNear(sim.speed, 6) {
		t.Fatalf("expected speed 6 while slowing, got %g", sim.speed)
	}
}
