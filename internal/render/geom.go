package render

import "math"

// GeoM is a 2D affine transformation matrix:
//
//	| A  B  Tx |
//	| C  D  Ty |
//
// The zero value is not the identity; use NewGeoM or Reset.
type GeoM struct {
	a, b, c, d, tx, ty float64
	set                bool
}

// NewGeoM creates an identity matrix.
func NewGeoM() GeoM {
	return GeoM{a: 1, d: 1, set: true}
}

func (g *GeoM) init() {
	if !g.set {
		*g = NewGeoM()
	}
}

// Translate shifts the image by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.init()
	g.tx += tx
	g.ty += ty
}

// Scale scales the image by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	g.init()
	g.a *= sx
	g.b *= sx
	g.tx *= sx
	g.c *= sy
	g.d *= sy
	g.ty *= sy
}

// Rotate rotates the image by the given angle in radians.
func (g *GeoM) Rotate(angle float64) {
	g.init()
	sin, cos := math.Sincos(angle)
	a := cos*g.a - sin*g.c
	b := cos*g.b - sin*g.d
	tx := cos*g.tx - sin*g.ty
	c := sin*g.a + cos*g.c
	d := sin*g.b + cos*g.d
	ty := sin*g.tx + cos*g.ty
	g.a, g.b, g.c, g.d, g.tx, g.ty = a, b, c, d, tx, ty
}

// Reset resets the matrix to identity.
func (g *GeoM) Reset() {
	*g = NewGeoM()
}

// Apply transforms the point (x, y).
func (g GeoM) Apply(x, y float64) (float64, float64) {
	g.init()
	return g.a*x + g.b*y + g.tx, g.c*x + g.d*y + g.ty
}

// Elements returns the matrix values in row-major order.
func (g GeoM) Elements() (a, b, c, d, tx, ty float64) {
	g.init()
	return g.a, g.b, g.c, g.d, g.tx, g.ty
}
