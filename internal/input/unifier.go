// Package input merges keyboard and virtual-joystick input into a single
// movement vector.
package input

import (
	"math"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

const (
	// Speed is the player walk speed in pixels per second.
	Speed = 130.0
	// Deadzone is the analog magnitude below which the axis is ignored.
	Deadzone = 0.18
	// DigitalThreshold converts an axis component into a direction flag.
	DigitalThreshold = 0.35
)

// Flags are the four digital directions.
type Flags struct {
	Up, Down, Left, Right bool
}

// Or merges two flag sets.
func (f Flags) Or(o Flags) Flags {
	return Flags{
		Up:    f.Up || o.Up,
		Down:  f.Down || o.Down,
		Left:  f.Left || o.Left,
		Right: f.Right || o.Right,
	}
}

// KeyState is the keyboard half of the input, read each tick.
type KeyState = Flags

// DigitalFromAxis derives direction flags from an analog axis.
func DigitalFromAxis(axis geom.Point) Flags {
	return Flags{
		Left:  axis.X < -DigitalThreshold,
		Right: axis.X > DigitalThreshold,
		Up:    axis.Y < -DigitalThreshold,
		Down:  axis.Y > DigitalThreshold,
	}
}

// Unifier holds the joystick axis and the flags derived from it. It is
// written by the joystick signal and read once per tick by the scene.
type Unifier struct {
	axis  geom.Point
	flags Flags
}

// NewUnifier creates a neutral unifier.
func NewUnifier() *Unifier {
	return &Unifier{}
}

// SetAxis stores a joystick reading. Non-finite components become 0 and
// finite ones are clamped to [-1, 1].
func (u *Unifier) SetAxis(x, y float64) {
	u.axis = geom.Pt(sanitize(x), sanitize(y))
	u.flags = DigitalFromAxis(u.axis)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return geom.Clamp(v, -1, 1)
}

// Axis returns the stored analog axis.
func (u *Unifier) Axis() geom.Point {
	return u.axis
}

// AxisFlags returns the flags derived from the stored axis.
func (u *Unifier) AxisFlags() Flags {
	return u.flags
}

// Reset returns to neutral. Called on pointer release, scene change and
// focus loss.
func (u *Unifier) Reset() {
	u.axis = geom.Point{}
	u.flags = Flags{}
}

// Velocity resolves this tick's movement. An active dialog freezes the
// player. An axis outside the deadzone gives proportional analog speed;
// otherwise keyboard and axis flags drive full-speed digital movement.
// Digital diagonals are not normalized.
func (u *Unifier) Velocity(keys KeyState, dialogActive bool) (vx, vy float64) {
	if dialogActive {
		return 0, 0
	}

	if math.Abs(u.axis.X) > Deadzone || math.Abs(u.axis.Y) > Deadzone {
		a := u.axis
		if l := a.Len(); l > 1 {
			a = a.Mul(1 / l)
		}
		return a.X * Speed, a.Y * Speed
	}

	f := keys.Or(u.flags)
	if f.Left {
		vx = -Speed
	} else if f.Right {
		vx = Speed
	}
	if f.Up {
		vy = -Speed
	} else if f.Down {
		vy = Speed
	}
	return vx, vy
}

// PollKeys reads the arrow keys and WASD.
func PollKeys(in render.InputManager) KeyState {
	if in == nil {
		return KeyState{}
	}
	return KeyState{
		Up:    in.IsKeyPressed(render.KeyUp) || in.IsKeyPressed(render.KeyW),
		Down:  in.IsKeyPressed(render.KeyDown) || in.IsKeyPressed(render.KeyS),
		Left:  in.IsKeyPressed(render.KeyLeft) || in.IsKeyPressed(render.KeyA),
		Right: in.IsKeyPressed(render.KeyRight) || in.IsKeyPressed(render.KeyD),
	}
}

// AdvancePressed reports the dialog advance gesture: Space, a left click or
// a new touch anywhere.
func AdvancePressed(in render.InputManager) bool {
	if in == nil {
		return false
	}
	if in.IsKeyJustPressed(render.KeySpace) {
		return true
	}
	_, _, ok := render.PointerJustPressed(in)
	return ok
}
