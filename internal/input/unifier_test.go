package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/rendertest"
)

func TestDigitalFromAxis(t *testing.T) {
	tests := []struct {
		name string
		axis geom.Point
		want Flags
	}{
		{"neutral", geom.Pt(0, 0), Flags{}},
		{"at threshold", geom.Pt(0.35, -0.35), Flags{}},
		{"just past", geom.Pt(0.351, -0.351), Flags{Right: true, Up: true}},
		{"left down", geom.Pt(-1, 1), Flags{Left: true, Down: true}},
		{"weak", geom.Pt(0.2, 0.2), Flags{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DigitalFromAxis(tt.axis))
		})
	}
}

func TestSetAxisSanitizes(t *testing.T) {
	u := NewUnifier()

	u.SetAxis(math.NaN(), math.Inf(1))
	assert.Equal(t, geom.Point{}, u.Axis())
	assert.Equal(t, Flags{}, u.AxisFlags())

	u.SetAxis(3, -7)
	assert.Equal(t, geom.Pt(1, -1), u.Axis())
	assert.Equal(t, Flags{Right: true, Up: true}, u.AxisFlags())

	u.Reset()
	assert.Equal(t, geom.Point{}, u.Axis())
	assert.Equal(t, Flags{}, u.AxisFlags())
}

func TestVelocityDialogFreezes(t *testing.T) {
	u := NewUnifier()
	u.SetAxis(1, 0)
	vx, vy := u.Velocity(KeyState{Left: true}, true)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestVelocityAnalog(t *testing.T) {
	u := NewUnifier()

	u.SetAxis(0.5, 0)
	vx, vy := u.Velocity(KeyState{Left: true}, false)
	assert.InDelta(t, 65, vx, 1e-9, "axis wins over keys outside the deadzone")
	assert.Zero(t, vy)

	u.SetAxis(1, 1)
	vx, vy = u.Velocity(KeyState{}, false)
	assert.InDelta(t, Speed/math.Sqrt2, vx, 1e-9)
	assert.InDelta(t, Speed/math.Sqrt2, vy, 1e-9)
}

func TestVelocityDigital(t *testing.T) {
	u := NewUnifier()

	vx, vy := u.Velocity(KeyState{Left: true, Right: true, Down: true}, false)
	assert.Equal(t, -Speed, vx, "left wins over right")
	assert.Equal(t, Speed, vy)

	vx, vy = u.Velocity(KeyState{Up: true, Down: true, Right: true}, false)
	assert.Equal(t, Speed, vx)
	assert.Equal(t, -Speed, vy, "up wins over down")

	// Diagonals keep full speed on both axes.
	vx, vy = u.Velocity(KeyState{Up: true, Left: true}, false)
	assert.Equal(t, -Speed, vx)
	assert.Equal(t, -Speed, vy)

	// Inside the deadzone the axis is ignored entirely.
	u.SetAxis(0.1, -0.1)
	vx, vy = u.Velocity(KeyState{}, false)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestPollKeysAndAdvance(t *testing.T) {
	in := rendertest.NewInput()
	in.Held[render.KeyA] = true
	in.Held[render.KeyDown] = true

	assert.Equal(t, KeyState{Left: true, Down: true}, PollKeys(in))
	assert.False(t, AdvancePressed(in))

	in.Press(render.KeySpace)
	assert.True(t, AdvancePressed(in))
	in.EndFrame()

	in.Click(5, 5)
	assert.True(t, AdvancePressed(in))
	in.EndFrame()

	in.NewTouches = []render.TouchID{1}
	in.Touches[1] = [2]int{100, 100}
	assert.True(t, AdvancePressed(in))
}
