package overlay

import (
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

// DefaultJoystickSize is the diameter of the joystick base.
const DefaultJoystickSize = 128

const joystickMargin = 24

// JoystickMode controls when the joystick is shown.
type JoystickMode int

const (
	// JoystickAuto shows the joystick once a touch has been seen.
	JoystickAuto JoystickMode = iota
	JoystickAlways
	JoystickNever
)

func (m JoystickMode) String() string {
	switch m {
	case JoystickAuto:
		return "auto"
	case JoystickAlways:
		return "always"
	case JoystickNever:
		return "never"
	default:
		return fmt.Sprintf("JoystickMode(%d)", int(m))
	}
}

// ParseJoystickMode parses "auto", "always" or "never".
func ParseJoystickMode(s string) (JoystickMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return JoystickAuto, nil
	case "always":
		return JoystickAlways, nil
	case "never":
		return JoystickNever, nil
	}
	return JoystickAuto, fmt.Errorf("unknown joystick mode %q", s)
}

var (
	joyBase       = color4(0, 0, 0, 0.25)
	joyBaseBorder = render.WithAlpha(pink, 0.35)
	joyKnob       = render.WithAlpha(blush, 0.35)
	joyKnobBorder = render.WithAlpha(blush, 0.55)
)

// Joystick is the on-screen analog stick in the bottom-left corner. While
// it is dragged it reports the knob offset as an axis in [-1,1]²; on
// release it reports zero.
type Joystick struct {
	Size   float64
	Center geom.Point
	Mode   JoystickMode

	radius   float64
	knobSize float64
	knob     geom.Point

	dragging bool
	byTouch  bool
	touchID  render.TouchID
	seen     bool // a touch has been observed

	// OnChange receives every axis update.
	OnChange func(x, y float64)
}

// NewJoystick creates a joystick of the given base size. Sizes <= 0 use
// DefaultJoystickSize.
func NewJoystick(size float64, mode JoystickMode) *Joystick {
	if size <= 0 {
		size = DefaultJoystickSize
	}
	return &Joystick{
		Size:     size,
		Mode:     mode,
		Center:   geom.Pt(joystickMargin+size/2, ScreenHeight-joystickMargin-size/2),
		radius:   size * 0.38,
		knobSize: math.Round(size * 0.45),
	}
}

// Visible reports whether the joystick is drawn and accepts input.
func (j *Joystick) Visible() bool {
	switch j.Mode {
	case JoystickAlways:
		return true
	case JoystickNever:
		return false
	}
	return j.seen
}

// Dragging reports whether a pointer currently holds the knob.
func (j *Joystick) Dragging() bool { return j.dragging }

// Knob returns the knob offset from the center in pixels.
func (j *Joystick) Knob() geom.Point { return j.knob }

// Radius is the maximum knob travel.
func (j *Joystick) Radius() float64 { return j.radius }

// Contains reports whether (x, y) is on the joystick base.
func (j *Joystick) Contains(x, y int) bool {
	return j.Visible() && geom.Dist(geom.Pt(float64(x), float64(y)), j.Center) <= j.Size/2
}

// OwnsTouch reports whether id is the touch driving the knob.
func (j *Joystick) OwnsTouch(id render.TouchID) bool {
	return j.dragging && j.byTouch && j.touchID == id
}

// OwnsMouse reports whether the mouse is driving the knob.
func (j *Joystick) OwnsMouse() bool {
	return j.dragging && !j.byTouch
}

// Update tracks the pointer that grabbed the base.
func (j *Joystick) Update(in render.InputManager) {
	if in == nil {
		return
	}
	if j.Mode == JoystickAuto && !j.seen && len(in.JustPressedTouchIDs()) > 0 {
		j.seen = true
	}
	if !j.Visible() {
		if j.dragging {
			j.release()
		}
		return
	}

	if !j.dragging {
		j.grab(in)
		return
	}

	if j.byTouch {
		if in.IsTouchJustReleased(j.touchID) || !hasTouch(in, j.touchID) {
			j.release()
			return
		}
		x, y := in.TouchPosition(j.touchID)
		j.moveTo(x, y)
		return
	}
	if !in.IsMouseButtonPressed(render.MouseButtonLeft) {
		j.release()
		return
	}
	j.moveTo(in.GetCursorPosition())
}

func (j *Joystick) grab(in render.InputManager) {
	for _, id := range in.JustPressedTouchIDs() {
		x, y := in.TouchPosition(id)
		if j.Contains(x, y) {
			j.dragging, j.byTouch, j.touchID = true, true, id
			j.moveTo(x, y)
			return
		}
	}
	if in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := in.GetCursorPosition()
		if j.Contains(x, y) {
			j.dragging, j.byTouch = true, false
			j.moveTo(x, y)
		}
	}
}

// moveTo places the knob toward (x, y), clamped to the travel radius, and
// reports the normalized axis.
func (j *Joystick) moveTo(x, y int) {
	d := geom.Pt(float64(x), float64(y)).Sub(j.Center)
	if l := d.Len(); l > j.radius && l > 0 {
		d = d.Mul(j.radius / l)
	}
	j.knob = d
	j.emit(geom.Clamp(d.X/j.radius, -1, 1), geom.Clamp(d.Y/j.radius, -1, 1))
}

// Release ends a drag in progress. It reports whether one was active.
func (j *Joystick) Release() bool {
	if !j.dragging {
		return false
	}
	j.release()
	return true
}

func (j *Joystick) release() {
	j.dragging = false
	j.byTouch = false
	j.knob = geom.Point{}
	j.emit(0, 0)
}

func (j *Joystick) emit(x, y float64) {
	if j.OnChange != nil {
		j.OnChange(x, y)
	}
}

func hasTouch(in render.InputManager, id render.TouchID) bool {
	for _, t := range in.TouchIDs() {
		if t == id {
			return true
		}
	}
	return false
}

// Draw renders the base and knob.
func (j *Joystick) Draw(dst render.Image, r render.Renderer) {
	if !j.Visible() || r == nil {
		return
	}
	cx, cy := float32(j.Center.X), float32(j.Center.Y)
	r.FillCircle(dst, cx, cy, float32(j.Size/2), joyBase)
	r.StrokeCircle(dst, cx, cy, float32(j.Size/2), 1, joyBaseBorder)

	kx, ky := cx+float32(j.knob.X), cy+float32(j.knob.Y)
	r.FillCircle(dst, kx, ky, float32(j.knobSize/2), joyKnob)
	r.StrokeCircle(dst, kx, ky, float32(j.knobSize/2), 1, joyKnobBorder)
}
