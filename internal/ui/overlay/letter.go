package overlay

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/ui/dialog"
)

// Letter timing and layout.
const (
	LetterDelay    = 300 * time.Millisecond
	LetterFadeIn   = 2 * time.Second
	LetterPopIn    = 1500 * time.Millisecond
	FloatingHearts = 20

	arrowScroll = 6.0  // pixels per tick while an arrow key is held
	wheelScroll = 30.0 // pixels per wheel notch
)

// floatingHeart is one heart drifting up behind the letter.
type floatingHeart struct {
	x        float64
	delay    time.Duration
	duration time.Duration
	size     float64
}

// letterLine is one laid-out line of the letter body.
type letterLine struct {
	text string
	opts render.TextOptions
	x    float64
	y    float64 // offset from the top of the content
}

// Letter is the closing love letter: a scrollable card over a dark backdrop
// with hearts floating up behind it.
type Letter struct {
	// Dimensions
	X, Y          float64
	Width, Height float64
	padding       float64

	renderer render.Renderer
	text     story.Letter
	hearts   []floatingHeart

	// Content
	lines         []letterLine
	contentHeight float64

	// State
	visible  bool
	elapsed  time.Duration
	pop      *fx.Tween
	scroll   float64
	dragging bool
	dragY    int
	dragTID  render.TouchID
	touchDrg bool

	// Visual settings
	backdrop   color.RGBA
	titleText  render.TextOptions
	bodyText   render.TextOptions
	accentText render.TextOptions
	closeText  render.TextOptions
	signText   render.TextOptions
	footerText render.TextOptions
}

// NewLetter creates a hidden letter. rng places the floating hearts.
func NewLetter(r render.Renderer, text story.Letter, rng *rand.Rand) *Letter {
	l := &Letter{
		X:          80,
		Y:          30,
		Width:      640,
		Height:     540,
		padding:    40,
		renderer:   r,
		text:       text,
		backdrop:   render.Hex(0x0a0003),
		titleText:  render.TextOptions{Size: 16, Color: rose, Font: render.FontBold, Align: render.AlignCenter},
		bodyText:   render.TextOptions{Size: 13, Color: paper, Font: render.FontSans, LineSpacing: 24},
		accentText: render.TextOptions{Size: 13, Color: blush, Font: render.FontSans, LineSpacing: 24},
		closeText:  render.TextOptions{Size: 13, Color: pink, Font: render.FontSans, Align: render.AlignEnd},
		signText:   render.TextOptions{Size: 13, Color: rose, Font: render.FontBold, Align: render.AlignEnd},
		footerText: render.TextOptions{Size: 9, Color: pink, Font: render.FontMono, Align: render.AlignCenter, Alpha: 0.6},
	}
	for i := 0; i < FloatingHearts; i++ {
		l.hearts = append(l.hearts, floatingHeart{
			x:        rng.Float64() * ScreenWidth,
			delay:    time.Duration(rng.Float64() * float64(5*time.Second)),
			duration: 4*time.Second + time.Duration(rng.Float64()*float64(4*time.Second)),
			size:     12 + rng.Float64()*16,
		})
	}
	return l
}

// Show lays the letter out and starts its entrance.
func (l *Letter) Show() {
	l.visible = true
	l.elapsed = 0
	l.scroll = 0
	l.pop = &fx.Tween{From: 0.8, To: 1, Duration: LetterPopIn, Ease: fx.BackOut}
	l.layout()
}

// Visible reports whether the letter is on screen.
func (l *Letter) Visible() bool { return l.visible }

// Scroll returns the current scroll offset in pixels.
func (l *Letter) Scroll() float64 { return l.scroll }

// MaxScroll is the largest useful scroll offset.
func (l *Letter) MaxScroll() float64 {
	return math.Max(0, l.contentHeight-(l.Height-2*l.padding))
}

// Opacity is the backdrop's fade-in progress in [0,1].
func (l *Letter) Opacity() float64 {
	t := l.elapsed - LetterDelay
	if t <= 0 {
		return 0
	}
	return math.Min(1, float64(t)/float64(LetterFadeIn))
}

func (l *Letter) layout() {
	l.lines = l.lines[:0]
	if l.renderer == nil {
		return
	}
	inner := l.Width - 2*l.padding
	y := 0.0

	add := func(text string, opts render.TextOptions, gap float64) {
		x := 0.0
		switch opts.Align {
		case render.AlignCenter:
			x = inner / 2
		case render.AlignEnd:
			x = inner
		}
		for _, line := range dialog.WrapText(l.renderer, text, inner, opts) {
			l.lines = append(l.lines, letterLine{text: line, opts: opts, x: x, y: y})
			y += opts.LineHeight()
		}
		y += gap
	}

	add(l.text.Title, l.titleText, 24)
	add(l.text.Greeting, l.bodyText, 12)
	for _, p := range l.text.Paragraphs {
		add(p, l.bodyText, 12)
	}
	if l.text.Highlight != "" {
		add(l.text.Highlight, l.accentText, 24)
	}
	add(l.text.Closing, l.closeText, 4)
	add(l.text.Signature, l.signText, 28)
	add(l.text.Footer, l.footerText, 0)
	l.contentHeight = y
}

// Update applies wheel, arrow-key and drag scrolling.
func (l *Letter) Update(in render.InputManager, dt time.Duration) {
	if !l.visible {
		return
	}
	l.elapsed += dt
	if l.elapsed > LetterDelay {
		l.pop.Update(dt)
	}
	if in == nil {
		return
	}

	_, wy := in.Wheel()
	l.scrollBy(-wy * wheelScroll)
	if in.IsKeyPressed(render.KeyUp) {
		l.scrollBy(-arrowScroll)
	}
	if in.IsKeyPressed(render.KeyDown) {
		l.scrollBy(arrowScroll)
	}
	page := l.Height - 2*l.padding
	if in.IsKeyJustPressed(render.KeyPageUp) {
		l.scrollBy(-page)
	}
	if in.IsKeyJustPressed(render.KeyPageDown) {
		l.scrollBy(page)
	}
	l.updateDrag(in)
}

// updateDrag scrolls with a held mouse button or a single finger.
func (l *Letter) updateDrag(in render.InputManager) {
	if !l.dragging {
		if in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
			_, l.dragY = in.GetCursorPosition()
			l.dragging, l.touchDrg = true, false
		} else if ids := in.JustPressedTouchIDs(); len(ids) > 0 {
			l.dragTID = ids[0]
			_, l.dragY = in.TouchPosition(ids[0])
			l.dragging, l.touchDrg = true, true
		}
		return
	}

	var y int
	if l.touchDrg {
		if in.IsTouchJustReleased(l.dragTID) {
			l.dragging = false
			return
		}
		_, y = in.TouchPosition(l.dragTID)
	} else {
		if !in.IsMouseButtonPressed(render.MouseButtonLeft) {
			l.dragging = false
			return
		}
		_, y = in.GetCursorPosition()
	}
	l.scrollBy(float64(l.dragY - y))
	l.dragY = y
}

func (l *Letter) scrollBy(d float64) {
	l.scroll = geom.Clamp(l.scroll+d, 0, l.MaxScroll())
}

// heartY returns the current height of heart h as it rises from below the
// screen, or false before its first appearance.
func (l *Letter) heartY(h floatingHeart) (float64, bool) {
	t := l.elapsed - h.delay
	if t < 0 {
		return 0, false
	}
	p := float64(t%h.duration) / float64(h.duration)
	p = p * p // ease in
	return ScreenHeight + 30 - p*(ScreenHeight+80), true
}

// Draw renders the backdrop, the hearts and the visible part of the card.
func (l *Letter) Draw(dst render.Image) {
	if !l.visible || l.renderer == nil {
		return
	}
	r := l.renderer
	fade := l.Opacity()
	if fade <= 0 {
		return
	}
	r.FillRect(dst, 0, 0, ScreenWidth, ScreenHeight, render.WithAlpha(l.backdrop, 0.92*fade))

	for _, h := range l.hearts {
		if y, ok := l.heartY(h); ok {
			r.DrawText(dst, "♥", h.x, y, render.TextOptions{Size: h.size, Color: rose, Font: render.FontSans, Alpha: 0.5 * fade})
		}
	}

	// Card, scaled about its center during the entrance.
	s := l.pop.Value()
	cw, ch := l.Width*s, l.Height*s
	cx, cy := l.X+(l.Width-cw)/2, l.Y+(l.Height-ch)/2
	r.FillRect(dst, float32(cx), float32(cy), float32(cw), float32(ch), render.WithAlpha(letterBox, fade))
	r.StrokeRect(dst, float32(cx), float32(cy), float32(cw), float32(ch), 2, render.WithAlpha(crimson, fade))

	corner := render.TextOptions{Size: 16, Color: rose, Font: render.FontSans, Alpha: fade}
	for _, p := range [][2]float64{{cx + 10, cy + 8}, {cx + cw - 22, cy + 8}, {cx + 10, cy + ch - 28}, {cx + cw - 22, cy + ch - 28}} {
		r.DrawText(dst, "♥", p[0], p[1], corner)
	}

	top := l.Y + l.padding
	bottom := l.Y + l.Height - l.padding
	for _, line := range l.lines {
		y := top + line.y - l.scroll
		if y < top || y+line.opts.LineHeight() > bottom+1 {
			continue
		}
		opts := line.opts
		a := opts.Alpha
		if a == 0 {
			a = 1
		}
		opts.Alpha = a * fade
		r.DrawText(dst, line.text, l.X+l.padding+line.x, y, opts)
	}
}
