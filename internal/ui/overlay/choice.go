package overlay

import (
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/story"
)

// Dodge distances and the count after which the title changes.
const (
	DodgeMin      = 100.0
	DodgeMax      = 250.0
	InsistAfter   = 3
	acceptCenterY = 290
	dodgeCenterY  = 360
)

var choiceBackdrop = color4(10, 0, 5, 0.75)

// Choice is the final yes-or-yes prompt. The accept button confirms; the
// other one jumps away whenever the pointer reaches it.
type Choice struct {
	renderer render.Renderer
	rng      *rand.Rand
	text     story.Choice

	accept *button
	dodge  *button
	offset geom.Point
	dodges int

	visible  bool
	hovering bool
	pulse    *fx.Tween

	// OnAccept is called once when the accept button is pressed.
	OnAccept func()
}

// NewChoice creates a hidden choice prompt.
func NewChoice(r render.Renderer, text story.Choice, rng *rand.Rand) *Choice {
	return &Choice{
		renderer: r,
		rng:      rng,
		text:     text,
		accept: &button{
			label:  text.Accept,
			text:   render.TextOptions{Size: 11, Color: white, Font: render.FontBold},
			padX:   32,
			padY:   16,
			fill:   crimson,
			border: pink,
			center: geom.Pt(ScreenWidth/2, acceptCenterY),
		},
		dodge: &button{
			label:  text.Dodge,
			text:   render.TextOptions{Size: 9, Color: blush, Font: render.FontMono},
			padX:   24,
			padY:   12,
			fill:   render.WithAlpha(pink, 0.2),
			border: render.WithAlpha(pink, 0.4),
			center: geom.Pt(ScreenWidth/2, dodgeCenterY),
		},
		pulse: fx.NewPulse(1, 0.5, time.Second, fx.SineInOut),
	}
}

// Show presents the prompt with the dodge button back in place.
func (c *Choice) Show() {
	c.visible = true
	c.dodges = 0
	c.offset = geom.Point{}
	c.dodge.center = geom.Pt(ScreenWidth/2, dodgeCenterY)
	c.hovering = false
	c.pulse.Reset()
}

// Hide removes the prompt without confirming.
func (c *Choice) Hide() { c.visible = false }

// Visible reports whether the prompt is on screen.
func (c *Choice) Visible() bool { return c.visible }

// Dodges returns how many times the dodge button has moved.
func (c *Choice) Dodges() int { return c.dodges }

// DodgeOffset is the dodge button's displacement from its home position.
func (c *Choice) DodgeOffset() geom.Point { return c.offset }

// Title returns the line shown above the buttons.
func (c *Choice) Title() string {
	if c.dodges > InsistAfter {
		return c.text.Insist
	}
	return c.text.Prompt
}

// Update handles this tick's pointer input. It returns true on the tick the
// choice is accepted.
func (c *Choice) Update(in render.InputManager, dt time.Duration) bool {
	if !c.visible || in == nil || c.renderer == nil {
		return false
	}
	c.pulse.Update(dt)
	r := c.renderer

	cx, cy := in.GetCursorPosition()
	over := c.dodge.hit(r, cx, cy)
	if over && !c.hovering {
		c.jump()
		over = false
	}
	c.hovering = over
	if len(touchesIn(in, c.dodge.rect(r))) > 0 {
		c.jump()
	}

	if x, y, ok := render.PointerJustPressed(in); ok && c.accept.hit(r, x, y) {
		return c.confirm()
	}
	if in.IsKeyJustPressed(render.KeyEnter) {
		return c.confirm()
	}
	return false
}

// jump moves the dodge button 100 to 250 px from home at a random angle.
func (c *Choice) jump() {
	angle := c.rng.Float64() * 2 * math.Pi
	dist := DodgeMin + c.rng.Float64()*(DodgeMax-DodgeMin)
	c.offset = geom.Pt(math.Cos(angle)*dist, math.Sin(angle)*dist)
	c.dodge.center = geom.Pt(ScreenWidth/2, dodgeCenterY).Add(c.offset)
	c.dodges++
}

func (c *Choice) confirm() bool {
	c.visible = false
	if c.OnAccept != nil {
		c.OnAccept()
	}
	return true
}

func (c *Choice) Draw(dst render.Image) {
	if !c.visible || c.renderer == nil {
		return
	}
	r := c.renderer
	r.FillRect(dst, 0, 0, ScreenWidth, ScreenHeight, choiceBackdrop)

	title := render.TextOptions{Size: 12, Color: blush, Font: render.FontMono, Align: render.AlignCenter, Alpha: c.pulse.Value()}
	r.DrawText(dst, c.Title(), ScreenWidth/2, 210, title)

	c.accept.draw(dst, r)
	c.dodge.draw(dst, r)
}
