// Package rendertest provides in-memory implementations of the render
// interfaces so game logic can be exercised without a window or GPU.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/lookingback/internal/render"
)

// Renderer records how many primitives were drawn and which strings were
// rendered. Text metrics assume a fixed advance of 0.6×size per rune.
type Renderer struct {
	Rects   int
	Circles int
	Texts   []string
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns an empty recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y float64, opts render.TextOptions) {
	r.Texts = append(r.Texts, text)
}

func (r *Renderer) MeasureText(text string, opts render.TextOptions) (width, height float64) {
	size := opts.Size
	if size <= 0 {
		size = 12
	}
	lines := 1
	longest, cur := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > longest {
			longest = cur
		}
	}
	return float64(longest) * size * 0.6, float64(lines) * opts.LineHeight()
}

// Image is a size-only image that counts the draws made onto it.
type Image struct {
	W, H  int
	Draws int
}

// NewImage creates a stub image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h}
}

func (i *Image) Bounds() image.Rectangle          { return image.Rect(0, 0, i.W, i.H) }
func (i *Image) Size() (int, int)                 { return i.W, i.H }
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{W: r.Dx(), H: r.Dy()}
}
func (i *Image) Fill(clr color.Color) {}
func (i *Image) Clear()               {}
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	i.Draws++
}
func (i *Image) Dispose() {}

// Input is a scripted InputManager. Tests set the exported fields between
// ticks; "just pressed" state is cleared by EndFrame.
type Input struct {
	Held        map[render.Key]bool
	Pressed     map[render.Key]bool
	Clicked     bool
	CursorX     int
	CursorY     int
	MouseDown   bool
	WheelY      float64
	Touches     map[render.TouchID][2]int
	NewTouches  []render.TouchID
	Released    map[render.TouchID]bool
	Unfocused   bool
}

var _ render.InputManager = (*Input)(nil)

// NewInput returns an input with nothing pressed.
func NewInput() *Input {
	return &Input{
		Held:     make(map[render.Key]bool),
		Pressed:  make(map[render.Key]bool),
		Touches:  make(map[render.TouchID][2]int),
		Released: make(map[render.TouchID]bool),
	}
}

// Press marks key as pressed this frame and held.
func (in *Input) Press(key render.Key) {
	in.Pressed[key] = true
	in.Held[key] = true
}

// Click simulates a left click at (x, y) this frame.
func (in *Input) Click(x, y int) {
	in.Clicked = true
	in.CursorX, in.CursorY = x, y
}

// EndFrame clears one-frame state.
func (in *Input) EndFrame() {
	in.Pressed = make(map[render.Key]bool)
	in.Clicked = false
	in.WheelY = 0
	in.NewTouches = nil
	for id := range in.Released {
		delete(in.Touches, id)
	}
	in.Released = make(map[render.TouchID]bool)
}

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.Held[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Pressed[key] }
func (in *Input) AnyKeyJustPressed() bool              { return len(in.Pressed) > 0 }
func (in *Input) GetCursorPosition() (int, int)        { return in.CursorX, in.CursorY }
func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && (in.MouseDown || in.Clicked)
}
func (in *Input) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && in.Clicked
}
func (in *Input) Wheel() (float64, float64) { return 0, in.WheelY }

func (in *Input) TouchIDs() []render.TouchID {
	ids := make([]render.TouchID, 0, len(in.Touches))
	for id := range in.Touches {
		ids = append(ids, id)
	}
	return ids
}
func (in *Input) JustPressedTouchIDs() []render.TouchID    { return in.NewTouches }
func (in *Input) IsTouchJustReleased(id render.TouchID) bool { return in.Released[id] }
func (in *Input) TouchPosition(id render.TouchID) (int, int) {
	p := in.Touches[id]
	return p[0], p[1]
}
func (in *Input) IsFocused() bool { return !in.Unfocused }
