package path

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
)

// maxUpdateSteps caps the amount of travel phases a single Update call can
// cross. Each step consumes standby time, finishes a speed phase or arrives
// at a node, so the cap is only hit with degenerate time steps.
const maxUpdateSteps = 64

// accelInfo holds the acceleration of the current leg and the distance from
// its start at which the acceleration ends.
type accelInfo struct {
	accel float64
	end   float64
}

// decelInfo holds the deceleration of the current leg and the distances
// from its start at which the deceleration begins and ends.
type decelInfo struct {
	decel float64
	start float64
	end   float64
}

// MovementSimulator walks an entity along its path for editor previews.
// Positions are relative to the center of the owning entity, like the node
// positions themselves.
type MovementSimulator struct {
	id   string
	path *Path

	start cp.Vector
	pos   cp.Vector
	dir   cp.Vector

	targetIndex int
	current     Node
	target      Node

	// progress is the distance traveled from the current node along dir.
	progress       float64
	travelDistance float64
	standby        float64
	speed          float64

	accel *accelInfo
	decel *decelInfo
}

// MovementSimulator returns a simulator starting at the first node of the
// path. The id tags the simulator with the entity it animates.
func (p *Path) MovementSimulator(id string) *MovementSimulator {
	current := p.nodes[0]
	target := p.nodes[1]

	s := &MovementSimulator{
		id:          id,
		path:        p,
		start:       current.pos,
		pos:         current.pos,
		targetIndex: 1,
		current:     current,
		target:      target,
		speed:       current.movement.StartSpeed(),
	}
	s.dir, s.travelDistance, s.accel, s.decel = legValues(current, target)

	return s
}

// ID returns the id of the entity the simulator animates.
func (s *MovementSimulator) ID() string { return s.id }

// MovementVector returns the displacement from the first node of the path
// to the current position.
func (s *MovementSimulator) MovementVector() cp.Vector { return s.pos.Sub(s.start) }

// legValues computes the travel values of the leg between two nodes.
func legValues(current, target Node) (cp.Vector, float64, *accelInfo, *decelInfo) {
	distance := target.pos.Sub(current.pos)
	length := distance.Length()
	dir := distance.Mult(1 / length)

	maxSq := current.movement.maxSpeed * current.movement.maxSpeed
	minSq := current.movement.minSpeed * current.movement.minSpeed
	accelPct := current.movement.accelTravelPercentage
	decelPct := current.movement.decelTravelPercentage

	var accel *accelInfo
	if accelPct != 0 {
		accel = &accelInfo{
			accel: 0.5 * (maxSq - minSq) / (length * accelPct),
			end:   length * accelPct,
		}
	}

	var decel *decelInfo
	if decelPct != 0 {
		decel = &decelInfo{
			decel: 0.5 * (minSq - maxSq) / (length * decelPct),
			start: length - length*decelPct,
			end:   length,
		}
	}

	return dir, length, accel, decel
}

// phaseResult describes the outcome of one speed phase step.
type phaseResult int

const (
	// phaseOngoing means the phase lasts beyond the time step; the entity
	// moves at the returned average speed for the whole step.
	phaseOngoing phaseResult = iota
	// phasePassed means the phase was already over when the step began.
	phasePassed
	// phaseReupdate means the phase ended mid step and the returned
	// leftover time still has to be consumed.
	phaseReupdate
)

// setProgress places the entity at the given distance from the current node
// along the leg direction.
func (s *MovementSimulator) setProgress(progress float64) {
	s.progress = progress
	s.pos = s.current.pos.Add(s.dir.Mult(progress))
}

// advance moves the entity forward at the given average speed for dt.
func (s *MovementSimulator) advance(averageSpeed, dt float64) {
	s.progress += averageSpeed * dt
	s.pos = s.pos.Add(s.dir.Mult(dt * averageSpeed))
}

// phaseLeftoverTime returns how much of dt remains after reaching the phase
// boundary at end under constant acceleration a.
func (s *MovementSimulator) phaseLeftoverTime(end, a, dt float64) float64 {
	distance := end - s.progress
	discriminant := s.speed*s.speed + 2*a*distance
	if discriminant < 0 {
		discriminant = 0
	}
	final := math.Sqrt(discriminant)
	return dt - (final-s.speed)/a
}

// accelerationPhase steps the speed up phase of the leg.
func (s *MovementSimulator) accelerationPhase(dt float64) (phaseResult, float64) {
	if s.progress >= s.accel.end {
		return phasePassed, 0
	}

	final := s.speed + s.accel.accel*dt
	maxSpeed := s.current.movement.maxSpeed

	if final < maxSpeed {
		average := (final + s.speed) / 2
		s.speed = final
		return phaseOngoing, average
	}

	// Max speed reached on or before the step boundary: park at the phase
	// end and hand back the exact residual time.
	leftover := s.phaseLeftoverTime(s.accel.end, s.accel.accel, dt)
	s.setProgress(s.accel.end)
	s.speed = maxSpeed
	return phaseReupdate, leftover
}

// decelerationPhase steps the slow down phase of the leg.
func (s *MovementSimulator) decelerationPhase(dt float64) (phaseResult, float64) {
	if s.progress >= s.decel.end {
		return phasePassed, 0
	}

	final := s.speed + s.decel.decel*dt
	minSpeed := s.current.movement.minSpeed

	if final > minSpeed {
		average := (final + s.speed) / 2
		s.speed = final
		return phaseOngoing, average
	}

	// Min speed reached on or before the step boundary: park at the phase
	// end and hand back the exact residual time.
	leftover := s.phaseLeftoverTime(s.decel.end, s.decel.decel, dt)
	s.setProgress(s.decel.end)
	s.speed = minSpeed
	return phaseReupdate, leftover
}

// residualTime returns how much of dt remains after covering the distance
// to end at the given speed, and whether end is reached within dt.
func (s *MovementSimulator) residualTime(speed, end, dt float64) (float64, bool) {
	leftoverDistance := end - s.progress
	if speed*dt < leftoverDistance {
		return 0, false
	}

	return dt - leftoverDistance/speed, true
}

// Update advances the simulation by dt seconds, crossing standby pauses,
// speed phases and node arrivals as needed.
func (s *MovementSimulator) Update(dt float64) {
	for range maxUpdateSteps {
		if s.standby > 0 {
			s.standby -= dt
			if s.standby >= 0 {
				return
			}

			dt = -s.standby
			s.standby = 0
		}

		// Resolve the current speed phase into an average speed for this
		// step. No average means the entity is past every phase with the
		// target within reach.
		var average float64
		haveAverage := false
		reupdate := false

		switch {
		case s.accel == nil && s.decel == nil:
			average, haveAverage = s.speed, true

		case s.accel == nil:
			average, haveAverage, reupdate, dt = s.postAcceleration(dt)

		case s.decel == nil:
			switch result, v := s.accelerationPhase(dt); result {
			case phaseOngoing:
				average, haveAverage = v, true
			case phasePassed:
				average, haveAverage = s.speed, true
			case phaseReupdate:
				reupdate, dt = true, v
			}

		default:
			switch result, v := s.accelerationPhase(dt); result {
			case phaseOngoing:
				average, haveAverage = v, true
			case phasePassed:
				average, haveAverage, reupdate, dt = s.postAcceleration(dt)
			case phaseReupdate:
				reupdate, dt = true, v
			}
		}

		if reupdate {
			continue
		}

		if haveAverage {
			leftover, reached := s.residualTime(average, s.travelDistance, dt)
			if !reached {
				s.advance(average, dt)
				return
			}
			dt = leftover
		} else {
			dt = 0
		}

		// Arrived: park on the target and line up the next leg.
		s.setProgress(s.travelDistance)
		s.pos = s.target.pos
		s.standby = s.target.movement.standbyTime

		s.targetIndex = geom.Next(s.targetIndex, s.path.Len())
		s.current = s.target
		s.target = s.path.nodes[s.targetIndex]
		s.speed = s.current.movement.StartSpeed()
		s.dir, s.travelDistance, s.accel, s.decel = legValues(s.current, s.target)
		s.progress = 0

		if geom.ApproxEqualStrict(dt, 0) {
			return
		}
	}

	log.Printf("movement simulation for %q did not settle within %d steps, dropping %.6fs", s.id, maxUpdateSteps, dt)
}

// postAcceleration handles the stretch after the speed up phase on legs
// that slow down before the target: uniform motion up to the deceleration
// start, then the deceleration itself.
func (s *MovementSimulator) postAcceleration(dt float64) (average float64, haveAverage, reupdate bool, leftover float64) {
	if s.progress < s.decel.start {
		if left, reached := s.residualTime(s.speed, s.decel.start, dt); reached {
			s.setProgress(s.decel.start)
			return 0, false, true, left
		}

		return s.speed, true, false, dt
	}

	switch result, v := s.decelerationPhase(dt); result {
	case phaseOngoing:
		return v, true, false, dt
	case phaseReupdate:
		return 0, false, true, v
	}

	return 0, false, false, dt
}
