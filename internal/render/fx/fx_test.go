package fx

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render/rendertest"
)

func TestTweenForward(t *testing.T) {
	done := 0
	tw := NewTween(0, 10, time.Second)
	tw.OnComplete = func() { done++ }

	tw.Update(250 * time.Millisecond)
	assert.InDelta(t, 2.5, tw.Value(), 1e-6)
	assert.False(t, tw.Done())

	tw.Update(time.Second)
	assert.True(t, tw.Done())
	assert.Equal(t, 10.0, tw.Value())
	tw.Update(time.Second)
	assert.Equal(t, 1, done)

	tw.Reset()
	assert.Equal(t, 0.0, tw.Value())
}

func TestPulseYoyo(t *testing.T) {
	p := NewPulse(1, 0, 500*time.Millisecond, nil)
	p.Update(250 * time.Millisecond)
	assert.InDelta(t, 0.5, p.Value(), 1e-6)
	p.Update(250 * time.Millisecond)
	assert.InDelta(t, 0, p.Value(), 1e-6)
	p.Update(250 * time.Millisecond)
	assert.InDelta(t, 0.5, p.Value(), 1e-6)
	p.Update(250 * time.Millisecond)
	assert.InDelta(t, 1, p.Value(), 1e-6)

	p.Update(time.Hour)
	assert.False(t, p.Done())
}

func TestYoyoRepeatEndsAtStart(t *testing.T) {
	tw := &Tween{From: 0, To: 4, Duration: 100 * time.Millisecond, Yoyo: true, Repeat: 1}
	tw.Update(350 * time.Millisecond)
	assert.False(t, tw.Done())
	tw.Update(50 * time.Millisecond)
	assert.True(t, tw.Done())
	assert.Equal(t, 0.0, tw.Value())
}

func TestEases(t *testing.T) {
	for _, e := range []Ease{Linear, SineInOut, BackOut} {
		tw := &Tween{From: 0, To: 1, Duration: time.Second, Ease: e}
		assert.InDelta(t, 0, tw.Value(), 1e-6)
		tw.Update(time.Second)
		assert.InDelta(t, 1, tw.Value(), 1e-6)
	}

	sine := &Tween{From: 0, To: 1, Duration: time.Second, Ease: SineInOut}
	sine.Update(500 * time.Millisecond)
	assert.InDelta(t, 0.5, sine.Value(), 1e-6)

	back := &Tween{From: 0, To: 1, Duration: time.Second, Ease: BackOut}
	back.Update(700 * time.Millisecond)
	assert.Greater(t, back.Value(), 1.0, "overshoots before settling")
	assert.InDelta(t, 0.7, back.Progress(), 1e-9)
}

func TestTweenFollowsEaseCurve(t *testing.T) {
	tw := &Tween{From: 480, To: 484, Duration: 400 * time.Millisecond, Ease: SineInOut}
	for _, ms := range []int{50, 100, 150, 100} {
		tw.Update(time.Duration(ms) * time.Millisecond)
		p := float32(tw.Progress())
		assert.InDelta(t, float64(ease.InOutSine(p, 480, 4, 1)), tw.Value(), 1e-4)
	}
	assert.InDelta(t, 484, tw.Value(), 1e-4)
}

func TestCameraCentersSmallWorld(t *testing.T) {
	c := NewCamera(800, 600)
	c.SetBounds(geom.Rect{W: 480, H: 384})
	c.CenterOn(geom.Pt(100, 100))
	assert.Equal(t, geom.Pt(-160, -108), c.Scroll)

	c.Follow(geom.Pt(400, 300))
	assert.Equal(t, geom.Pt(-160, -108), c.Scroll)
	assert.Equal(t, geom.Pt(260, 208), c.ToScreen(geom.Pt(100, 100)))
}

func TestCameraFollowClampsToLargeWorld(t *testing.T) {
	c := NewCamera(100, 100)
	c.SetBounds(geom.Rect{W: 1000, H: 1000})
	c.CenterOn(geom.Pt(0, 0))
	assert.Equal(t, geom.Pt(0, 0), c.Scroll)

	c.Follow(geom.Pt(550, 50))
	// 10% of the way toward scroll.X = 500.
	assert.InDelta(t, 50, c.Scroll.X, 1e-6)
	assert.Equal(t, 0.0, c.Scroll.Y)

	c.CenterOn(geom.Pt(5000, 5000))
	assert.Equal(t, geom.Pt(900, 900), c.Scroll)
}

func TestCameraFades(t *testing.T) {
	c := NewCamera(800, 600)
	c.FadeIn(time.Second)
	assert.Equal(t, 1.0, c.FadeAlpha())
	c.Update(500 * time.Millisecond)
	assert.InDelta(t, 0.5, c.FadeAlpha(), 1e-6)
	c.Update(time.Second)
	assert.False(t, c.Fading())
	assert.Equal(t, 0.0, c.FadeAlpha())

	calls := 0
	require.True(t, c.FadeOut(time.Second, func() { calls++ }))
	assert.False(t, c.FadeOut(time.Second, func() { calls++ }), "second fade-out is ignored")
	c.Update(400 * time.Millisecond)
	assert.InDelta(t, 0.4, c.FadeAlpha(), 1e-6)
	c.Update(700 * time.Millisecond)
	c.Update(time.Second)
	assert.Equal(t, 1, calls)
	assert.True(t, c.FadedOut())
	assert.Equal(t, 1.0, c.FadeAlpha())

	r := rendertest.NewRenderer()
	c.DrawFade(rendertest.NewImage(800, 600), r)
	assert.Equal(t, 1, r.Rects)
}

func TestEmitterContinuous(t *testing.T) {
	e := NewEmitter(EmitterConfig{
		X:          Range{50, 750},
		Y:          Fixed(620),
		SpeedY:     Range{-50, -25},
		SpeedX:     Range{-15, 15},
		Lifespan:   5 * time.Second,
		Frequency:  600 * time.Millisecond,
		ScaleStart: 0.6, AlphaStart: 0.7,
	}, rand.New(rand.NewSource(1)))

	e.Update(time.Second)
	require.Equal(t, 1, e.Alive())
	p := e.Particles()[0]
	assert.Equal(t, 620.0, p.Pos.Y)
	assert.GreaterOrEqual(t, p.Pos.X, 50.0)
	assert.Less(t, p.Pos.X, 750.0)

	e.Update(200 * time.Millisecond)
	assert.Equal(t, 2, e.Alive())
	assert.Less(t, e.Particles()[0].Pos.Y, 620.0, "particles rise")

	e.Stop()
	e.Update(10 * time.Second)
	assert.Zero(t, e.Alive())
}

func TestEmitterExplode(t *testing.T) {
	tints := []color.Color{color.White}
	e := NewEmitter(EmitterConfig{
		Speed:      Range{50, 150},
		Lifespan:   3 * time.Second,
		ScaleStart: 1, AlphaStart: 1,
		Tints:      tints,
	}, rand.New(rand.NewSource(2)))
	assert.False(t, e.Emitting)

	e.Explode(30, 400, 400)
	require.Equal(t, 30, e.Alive())
	e.Update(time.Second)
	for _, p := range e.Particles() {
		d := geom.Dist(p.Pos, geom.Pt(400, 400))
		assert.InDelta(t, 100, d, 50.0001)
		assert.Equal(t, color.White, p.Tint)
	}

	dst := rendertest.NewImage(800, 600)
	e.Draw(dst, rendertest.NewImage(18, 18))
	assert.Equal(t, 30, dst.Draws)

	e.Update(2 * time.Second)
	assert.Zero(t, e.Alive())
}
