package dialog

import (
	"math"
	"strings"
	"time"

	"chosenoffset.com/lookingback/internal/render"
)

// Box layout on the 800×600 logical screen.
const (
	BoxX      = 10
	BoxY      = 450
	BoxWidth  = 780
	BoxHeight = 140

	promptBlink = 500 * time.Millisecond
)

var (
	boxFill     = render.Hex(0x1a0005)
	boxBorder   = render.Hex(0xC00000)
	boxInner    = render.Hex(0xFF3354)
	speakerClr  = render.Hex(0xFF3354)
	bodyClr     = render.Hex(0xFFD5E0)
	promptClr   = render.Hex(0xFF6B96)
	speakerText = render.TextOptions{Size: 14, Color: speakerClr, Font: render.FontBold}
	bodyText    = render.TextOptions{Size: 11, Color: bodyClr, Font: render.FontMono, LineSpacing: 21}
)

// Box draws a Sequencer's state at the bottom of the screen.
type Box struct {
	renderer render.Renderer
	elapsed  time.Duration
}

// NewBox creates a dialog box view.
func NewBox(r render.Renderer) *Box {
	return &Box{renderer: r}
}

// Update advances the prompt blink.
func (b *Box) Update(dt time.Duration) {
	b.elapsed += dt
}

// promptAlpha follows a 500 ms linear yoyo between 1 and 0.
func (b *Box) promptAlpha() float64 {
	phase := float64(b.elapsed%(2*promptBlink)) / float64(promptBlink)
	return math.Abs(1 - phase)
}

// Draw renders the box if a run is active.
func (b *Box) Draw(dst render.Image, s *Sequencer) {
	if s == nil || !s.Active() || b.renderer == nil {
		return
	}
	r := b.renderer

	r.FillRect(dst, BoxX, BoxY, BoxWidth, BoxHeight, render.WithAlpha(boxFill, 0.93))
	r.StrokeRect(dst, BoxX, BoxY, BoxWidth, BoxHeight, 3, boxBorder)
	r.StrokeRect(dst, BoxX+3, BoxY+3, BoxWidth-6, BoxHeight-6, 1, render.WithAlpha(boxInner, 0.5))

	r.DrawText(dst, s.Speaker(), BoxX+16, BoxY+12, speakerText)

	lines := WrapText(r, s.Text(), BoxWidth-40, bodyText)
	r.DrawText(dst, strings.Join(lines, "\n"), BoxX+16, BoxY+38, bodyText)

	if s.PromptVisible() {
		opts := render.TextOptions{Size: 12, Color: promptClr, Font: render.FontSans, Alpha: b.promptAlpha()}
		if opts.Alpha <= 0 {
			return
		}
		r.DrawText(dst, "▼", BoxX+BoxWidth-30, BoxY+BoxHeight-22, opts)
	}
}

// WrapText breaks text into lines no wider than maxWidth as measured by r.
// Explicit newlines are kept. A single word wider than maxWidth gets its own
// line.
func WrapText(r render.Renderer, text string, maxWidth float64, opts render.TextOptions) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if w, _ := r.MeasureText(candidate, opts); w > maxWidth && current != "" {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
