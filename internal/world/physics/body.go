// Package physics implements the arcade-style player body: velocity
// integration with per-axis separation against static rectangles.
package physics

import (
	"chosenoffset.com/lookingback/internal/geom"
)

// BodySize is the default edge length of the player hitbox.
const BodySize = 20

// Body is an axis-aligned box moved by velocity.
type Body struct {
	Pos   geom.Point // center
	HalfW float64
	HalfH float64
	Vel   geom.Point // pixels per second
}

// NewBody creates a 20×20 body centered on pos.
func NewBody(pos geom.Point) *Body {
	return &Body{Pos: pos, HalfW: BodySize / 2, HalfH: BodySize / 2}
}

// Rect returns the current hitbox.
func (b *Body) Rect() geom.Rect {
	return geom.Rect{X: b.Pos.X - b.HalfW, Y: b.Pos.Y - b.HalfH, W: b.HalfW * 2, H: b.HalfH * 2}
}

// SetVelocity replaces the velocity.
func (b *Body) SetVelocity(vx, vy float64) {
	b.Vel = geom.Pt(vx, vy)
}

// Stop zeroes the velocity.
func (b *Body) Stop() {
	b.Vel = geom.Point{}
}

// Step integrates dt seconds of motion. X is moved and separated first, then
// Y, then the body is clamped inside bounds. A zero-size bounds disables
// clamping.
func (b *Body) Step(dt float64, colliders []geom.Rect, bounds geom.Rect) {
	if dx := b.Vel.X * dt; dx != 0 {
		b.Pos.X += dx
		for _, c := range colliders {
			r := b.Rect()
			if !r.Overlaps(c) {
				continue
			}
			if dx > 0 {
				b.Pos.X = c.MinX() - b.HalfW
			} else {
				b.Pos.X = c.MaxX() + b.HalfW
			}
		}
	}

	if dy := b.Vel.Y * dt; dy != 0 {
		b.Pos.Y += dy
		for _, c := range colliders {
			r := b.Rect()
			if !r.Overlaps(c) {
				continue
			}
			if dy > 0 {
				b.Pos.Y = c.MinY() - b.HalfH
			} else {
				b.Pos.Y = c.MaxY() + b.HalfH
			}
		}
	}

	if bounds.W > 0 && bounds.H > 0 {
		b.Pos.X = geom.Clamp(b.Pos.X, bounds.MinX()+b.HalfW, bounds.MaxX()-b.HalfW)
		b.Pos.Y = geom.Clamp(b.Pos.Y, bounds.MinY()+b.HalfH, bounds.MaxY()-b.HalfH)
	}
}
