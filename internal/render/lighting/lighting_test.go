package lighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/rendertest"
)

func TestGlowPulse(t *testing.T) {
	g := NewGlow(192, 112, 28, render.Hex(0xFF8BC1), 0.15, 0.3, time.Second)
	assert.InDelta(t, 0.15, g.Alpha(), 1e-6)

	m := NewManager()
	m.Add("raina", g)
	m.Update(time.Second)
	assert.InDelta(t, 0.15*0.3, g.Alpha(), 1e-6)
	m.Update(time.Second)
	assert.InDelta(t, 0.15, g.Alpha(), 1e-6)
}

func TestManagerDraw(t *testing.T) {
	m := NewManager()
	m.Add("a", NewGlow(0, 0, 10, render.Hex(0xFF3354), 0.08, 0.2, time.Second))
	m.Add("b", NewGlow(0, 0, 10, render.Hex(0xFF3354), 0, 0.2, time.Second))
	assert.Equal(t, 2, m.Len())

	r := rendertest.NewRenderer()
	dst := rendertest.NewImage(800, 600)
	m.Draw(dst, r, geom.Point{})
	assert.Equal(t, 1, r.Circles, "transparent glows are skipped")
	assert.Zero(t, r.Rects)

	m.SetAmbient(2)
	assert.Equal(t, 1.0, m.Ambient())
	m.Draw(dst, r, geom.Point{})
	assert.Equal(t, 1, r.Rects)

	m.Remove("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	m.Clear()
	assert.Zero(t, m.Len())
}
