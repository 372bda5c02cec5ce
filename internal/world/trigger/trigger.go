// Package trigger provides enter-area triggers for story beats.
package trigger

import (
	"chosenoffset.com/lookingback/internal/geom"
)

// DefaultRadius is the talk distance used by the story scenes.
const DefaultRadius = 55

// Proximity fires when two points come within Radius of each other.
type Proximity struct {
	Radius    float64
	SingleUse bool // If true, can only trigger once

	fired bool
}

// NewProximity creates a single-use trigger with the given radius.
func NewProximity(radius float64) *Proximity {
	return &Proximity{Radius: radius, SingleUse: true}
}

// Check evaluates the trigger for this tick. It returns true on the first
// call where a and b are closer than Radius and blocked is false. A blocked
// check never fires and never latches.
func (p *Proximity) Check(a, b geom.Point, blocked bool) bool {
	if blocked {
		return false
	}
	if p.SingleUse && p.fired {
		return false
	}
	if geom.Dist(a, b) >= p.Radius {
		return false
	}
	p.fired = true
	return true
}

// Fired reports whether the trigger has fired at least once.
func (p *Proximity) Fired() bool {
	return p.fired
}
