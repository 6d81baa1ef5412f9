package path

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milkweed-games/waypath/geom"
)

// Movement describes how an entity travels from one node to the next.
// Max speed is always higher than 0 and at least the min speed; the accel
// and decel travel percentages are values between 0 and 1 whose sum never
// exceeds 1.
type Movement struct {
	maxSpeed              float64
	minSpeed              float64
	accelTravelPercentage float64
	decelTravelPercentage float64
	standbyTime           float64
}

// DefaultMovement returns the movement assigned to newly created nodes.
func DefaultMovement() Movement { return Movement{maxSpeed: 60} }

// NewMovement returns a movement with the requested parameters.
// Panics if any value is out of range.
func NewMovement(maxSpeed, accelTravelPercentage, decelTravelPercentage, minSpeed, standbyTime float64) Movement {
	switch {
	case minSpeed < 0:
		panic("min speed is a negative value")
	case maxSpeed <= 0:
		panic("max speed is not higher than 0")
	case minSpeed > maxSpeed:
		panic("max speed is lower than min speed")
	case accelTravelPercentage < 0 || accelTravelPercentage > 1:
		panic("accel travel percentage is not within 0 and 1")
	case decelTravelPercentage < 0 || decelTravelPercentage > 1:
		panic("decel travel percentage is not within 0 and 1")
	case accelTravelPercentage+decelTravelPercentage > 1:
		panic("accel and decel percentages added are higher than 1")
	case standbyTime < 0:
		panic("standby time is a negative value")
	}

	return Movement{
		maxSpeed:              maxSpeed,
		minSpeed:              minSpeed,
		accelTravelPercentage: accelTravelPercentage,
		decelTravelPercentage: decelTravelPercentage,
		standbyTime:           standbyTime,
	}
}

// MaxSpeed returns the maximum travel speed.
func (m Movement) MaxSpeed() float64 { return m.maxSpeed }

// MinSpeed returns the minimum travel speed.
func (m Movement) MinSpeed() float64 { return m.minSpeed }

// AccelTravelPercentage returns the fraction of the travel spent
// accelerating from the minimum to the maximum speed.
func (m Movement) AccelTravelPercentage() float64 { return m.accelTravelPercentage }

// DecelTravelPercentage returns the fraction of the travel spent
// decelerating from the maximum to the minimum speed.
func (m Movement) DecelTravelPercentage() float64 { return m.decelTravelPercentage }

// StandbyTime returns the time that has to pass before the entity starts
// moving to the next node.
func (m Movement) StandbyTime() float64 { return m.standbyTime }

// SetMaxSpeed sets the maximum speed, lowering the minimum speed when needed
// to keep it within bounds. Returns the applied delta in X and the induced
// min speed delta in Y, and false if the value is unchanged.
// Panics if value is not higher than 0.
func (m *Movement) SetMaxSpeed(value float64) (cp.Vector, bool) {
	if geom.ApproxEqualStrict(value, m.maxSpeed) {
		return cp.Vector{}, false
	}

	if value <= 0 {
		panic(fmt.Sprintf("max speed %g is not higher than 0", value))
	}

	delta := value - m.maxSpeed
	m.maxSpeed = value

	opposite := math.Min(m.minSpeed, value)
	oppositeDelta := opposite - m.minSpeed
	m.minSpeed = opposite

	return cp.Vector{X: delta, Y: oppositeDelta}, true
}

// SetMinSpeed sets the minimum speed, raising the maximum speed when needed
// to keep it within bounds. Returns the applied delta in X and the induced
// max speed delta in Y, and false if the value is unchanged.
// Panics if value is negative.
func (m *Movement) SetMinSpeed(value float64) (cp.Vector, bool) {
	if geom.ApproxEqualStrict(value, m.minSpeed) {
		return cp.Vector{}, false
	}

	if value < 0 {
		panic(fmt.Sprintf("min speed %g is negative", value))
	}

	delta := value - m.minSpeed
	m.minSpeed = value

	opposite := math.Max(m.maxSpeed, value)
	oppositeDelta := opposite - m.maxSpeed
	m.maxSpeed = opposite

	return cp.Vector{X: delta, Y: oppositeDelta}, true
}

// SetAccelTravelPercentage sets the fraction of the travel dedicated to
// accelerating, shrinking the decel fraction when needed so that their sum
// stays at most 1. Returns the applied delta in X and the induced decel
// delta in Y, and false if the value is unchanged.
// Panics if value is not between 0 and 1.
func (m *Movement) SetAccelTravelPercentage(value float64) (cp.Vector, bool) {
	if geom.ApproxEqualStrict(value, m.accelTravelPercentage) {
		return cp.Vector{}, false
	}

	if value < 0 || value > 1 {
		panic(fmt.Sprintf("accel percentage %g is not within 0 and 1", value))
	}

	delta := value - m.accelTravelPercentage
	m.accelTravelPercentage = value

	opposite := math.Min(m.decelTravelPercentage, 1-value)
	oppositeDelta := opposite - m.decelTravelPercentage
	m.decelTravelPercentage = opposite

	return cp.Vector{X: delta, Y: oppositeDelta}, true
}

// SetDecelTravelPercentage sets the fraction of the travel dedicated to
// decelerating, shrinking the accel fraction when needed so that their sum
// stays at most 1. Returns the applied delta in X and the induced accel
// delta in Y, and false if the value is unchanged.
// Panics if value is not between 0 and 1.
func (m *Movement) SetDecelTravelPercentage(value float64) (cp.Vector, bool) {
	if geom.ApproxEqualStrict(value, m.decelTravelPercentage) {
		return cp.Vector{}, false
	}

	if value < 0 || value > 1 {
		panic(fmt.Sprintf("decel percentage %g is not within 0 and 1", value))
	}

	delta := value - m.decelTravelPercentage
	m.decelTravelPercentage = value

	opposite := math.Min(m.accelTravelPercentage, 1-value)
	oppositeDelta := opposite - m.accelTravelPercentage
	m.accelTravelPercentage = opposite

	return cp.Vector{X: delta, Y: oppositeDelta}, true
}

// SetStandbyTime sets the time the entity waits on a node before moving to
// the next one. Returns the applied delta and false if the value is
// unchanged.
// Panics if value is negative.
func (m *Movement) SetStandbyTime(value float64) (float64, bool) {
	if value < 0 {
		panic(fmt.Sprintf("standby time %g is negative", value))
	}

	if geom.ApproxEqualStrict(value, m.standbyTime) {
		return 0, false
	}

	delta := value - m.standbyTime
	m.standbyTime = value

	return delta, true
}

// StartSpeed returns the speed the entity leaves the node with: the max
// speed when there is no speed up phase, the min speed otherwise.
func (m Movement) StartSpeed() float64 {
	if m.accelTravelPercentage == 0 {
		return m.maxSpeed
	}
	return m.minSpeed
}
