package fx

import (
	"image/color"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

// DefaultFollowLerp is the per-tick smoothing used when following a target.
const DefaultFollowLerp = 0.1

type fadeKind int

const (
	fadeNone fadeKind = iota
	fadeIn
	fadeOut
)

// Camera tracks the world scroll for a fixed-size viewport and owns the
// full-screen fade to black.
type Camera struct {
	ViewW, ViewH float64
	Scroll       geom.Point
	Lerp         float64

	bounds    geom.Rect
	hasBounds bool

	fade       fadeKind
	fadeDur    time.Duration
	fadeAt     time.Duration
	fadeCurve  *gween.Tween
	faded      bool // screen held black after a completed fade-out
	onFadedOut func()
}

// NewCamera returns a camera for a w×h viewport.
func NewCamera(w, h float64) *Camera {
	return &Camera{ViewW: w, ViewH: h, Lerp: DefaultFollowLerp}
}

// SetBounds limits scrolling to r. A world smaller than the viewport is
// centered on that axis.
func (c *Camera) SetBounds(r geom.Rect) {
	c.bounds = r
	c.hasBounds = true
	c.clamp()
}

// CenterOn snaps the view so p is in the middle.
func (c *Camera) CenterOn(p geom.Point) {
	c.Scroll = geom.Pt(p.X-c.ViewW/2, p.Y-c.ViewH/2)
	c.clamp()
}

// Follow moves the view a fraction of the way toward centering p.
func (c *Camera) Follow(p geom.Point) {
	lerp := c.Lerp
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	want := geom.Pt(p.X-c.ViewW/2, p.Y-c.ViewH/2)
	c.Scroll = c.Scroll.Add(want.Sub(c.Scroll).Mul(lerp))
	c.clamp()
}

func (c *Camera) clamp() {
	if !c.hasBounds {
		return
	}
	c.Scroll.X = clampAxis(c.Scroll.X, c.bounds.X, c.bounds.W, c.ViewW)
	c.Scroll.Y = clampAxis(c.Scroll.Y, c.bounds.Y, c.bounds.H, c.ViewH)
}

func clampAxis(v, start, size, view float64) float64 {
	if size <= view {
		return start + (size-view)/2
	}
	return geom.Clamp(v, start, start+size-view)
}

// ToScreen converts a world point to screen space.
func (c *Camera) ToScreen(p geom.Point) geom.Point {
	return p.Sub(c.Scroll)
}

// FadeIn starts a fade from black over d.
func (c *Camera) FadeIn(d time.Duration) {
	c.fade = fadeIn
	c.fadeDur = d
	c.fadeAt = 0
	c.fadeCurve = gween.New(1, 0, float32(d.Seconds()), ease.Linear)
	c.faded = false
	c.onFadedOut = nil
}

// FadeOut starts a fade to black over d and calls done once when it
// completes. It returns false, and does nothing, if a fade-out is already
// running or finished.
func (c *Camera) FadeOut(d time.Duration, done func()) bool {
	if c.fade == fadeOut || c.faded {
		return false
	}
	c.fade = fadeOut
	c.fadeDur = d
	c.fadeAt = 0
	c.fadeCurve = gween.New(0, 1, float32(d.Seconds()), ease.Linear)
	c.onFadedOut = done
	if d <= 0 {
		c.finishFade()
	}
	return true
}

// Update advances the running fade.
func (c *Camera) Update(dt time.Duration) {
	if c.fade == fadeNone {
		return
	}
	c.fadeAt += dt
	if c.fadeAt >= c.fadeDur {
		c.finishFade()
	}
}

func (c *Camera) finishFade() {
	kind := c.fade
	c.fade = fadeNone
	if kind != fadeOut {
		return
	}
	c.faded = true
	if done := c.onFadedOut; done != nil {
		c.onFadedOut = nil
		done()
	}
}

// Fading reports whether a fade is in progress.
func (c *Camera) Fading() bool { return c.fade != fadeNone }

// FadedOut reports whether a fade-out has completed.
func (c *Camera) FadedOut() bool { return c.faded }

// FadeAlpha is the opacity of the black overlay, 0 when fully visible.
func (c *Camera) FadeAlpha() float64 {
	if c.faded {
		return 1
	}
	if c.fade == fadeNone || c.fadeDur <= 0 {
		return 0
	}
	a, _ := c.fadeCurve.Set(float32(c.fadeAt.Seconds()))
	return float64(a)
}

// DrawFade covers the viewport with black at the current fade alpha.
func (c *Camera) DrawFade(dst render.Image, r render.Renderer) {
	a := c.FadeAlpha()
	if a <= 0 || r == nil {
		return
	}
	r.FillRect(dst, 0, 0, float32(c.ViewW), float32(c.ViewH), color.NRGBA{A: uint8(a * 255)})
}
