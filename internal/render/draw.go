package render

import "image/color"

// Sprite describes a centered, optionally scaled and tinted image draw.
type Sprite struct {
	X, Y   float64 // center on the destination
	ScaleX float64 // 0 means 1; negative flips
	ScaleY float64
	Angle  float64
	Alpha  float64 // 0 means opaque
	Tint   color.Color
	Blend  BlendMode
}

// DrawSprite draws src centered at (s.X, s.Y).
func DrawSprite(dst, src Image, s Sprite) {
	if dst == nil || src == nil {
		return
	}
	w, h := src.Size()
	sx, sy := s.ScaleX, s.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	opts := &DrawImageOptions{GeoM: NewGeoM(), Blend: s.Blend}
	opts.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	opts.GeoM.Scale(sx, sy)
	if s.Angle != 0 {
		opts.GeoM.Rotate(s.Angle)
	}
	opts.GeoM.Translate(s.X, s.Y)
	if s.Tint != nil {
		opts.ColorScale.ScaleWithColor(s.Tint)
	}
	if s.Alpha > 0 && s.Alpha < 1 {
		opts.ColorScale.ScaleAlpha(float32(s.Alpha))
	}
	dst.DrawImage(src, opts)
}

// DrawTiled fills the rectangle (x, y, w, h) with src repeated horizontally,
// shifted left by offset pixels. Used for parallax layers.
func DrawTiled(dst, src Image, x, y, w, h, offset float64) {
	if dst == nil || src == nil {
		return
	}
	tw, th := src.Size()
	if tw <= 0 || th <= 0 {
		return
	}
	sy := h / float64(th)
	shift := offset - float64(int(offset/float64(tw)))*float64(tw)
	for px := -shift; px < w; px += float64(tw) {
		opts := &DrawImageOptions{GeoM: NewGeoM()}
		opts.GeoM.Scale(1, sy)
		opts.GeoM.Translate(x+px, y)
		dst.DrawImage(src, opts)
	}
}

// WithAlpha returns clr with its alpha multiplied by a.
func WithAlpha(clr color.Color, a float64) color.NRGBA {
	r, g, b, al := clr.RGBA()
	if al == 0 {
		return color.NRGBA{}
	}
	// un-premultiply
	nr := uint8((r * 0xffff / al) >> 8)
	ng := uint8((g * 0xffff / al) >> 8)
	nb := uint8((b * 0xffff / al) >> 8)
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: nr, G: ng, B: nb, A: uint8(float64(al>>8) * a)}
}

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
