// Package overlay holds the shell widgets drawn over the game canvas: the
// final choice prompt, the closing letter and the on-screen joystick.
package overlay

import (
	"image/color"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

// Logical screen the overlays lay themselves out on.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

var (
	crimson   = render.Hex(0xC00000)
	rose      = render.Hex(0xFF3354)
	pink      = render.Hex(0xFF6B96)
	blush     = render.Hex(0xFF8BC1)
	paper     = render.Hex(0xFFD5E0)
	letterBox = render.Hex(0x1a0005)
	white     = render.Hex(0xffffff)
)

// color4 builds a translucent color from 8-bit channels and an opacity.
func color4(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a * 255)}
}

// button is a text button with a fill and a border.
type button struct {
	label  string
	text   render.TextOptions
	padX   float64
	padY   float64
	fill   color.Color
	border color.Color
	center geom.Point
}

// rect returns the button's hit box for renderer r.
func (b *button) rect(r render.Renderer) geom.Rect {
	w, h := r.MeasureText(b.label, b.text)
	return geom.RectCentered(b.center, w+2*b.padX, h+2*b.padY)
}

func (b *button) hit(r render.Renderer, x, y int) bool {
	return b.rect(r).Contains(geom.Pt(float64(x), float64(y)))
}

func (b *button) draw(dst render.Image, r render.Renderer) {
	rc := b.rect(r)
	r.FillRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), b.fill)
	r.StrokeRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), 1, b.border)

	opts := b.text
	opts.Align = render.AlignCenter
	_, h := r.MeasureText(b.label, opts)
	r.DrawText(dst, b.label, b.center.X, b.center.Y-h/2, opts)
}

// touchesIn lists the touches that started this tick inside rc.
func touchesIn(in render.InputManager, rc geom.Rect) []render.TouchID {
	var ids []render.TouchID
	for _, id := range in.JustPressedTouchIDs() {
		x, y := in.TouchPosition(id)
		if rc.Contains(geom.Pt(float64(x), float64(y))) {
			ids = append(ids, id)
		}
	}
	return ids
}
