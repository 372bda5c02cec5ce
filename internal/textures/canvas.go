package textures

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"chosenoffset.com/lookingback/internal/render"
)

// canvas wraps an RGBA image with alpha-blended shape primitives.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	// Make background transparent
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return &canvas{img: img}
}

// blend composites c with alpha a over the pixel at (x, y).
func (cv *canvas) blend(x, y int, c color.RGBA, a float64) {
	if !(image.Point{x, y}.In(cv.img.Rect)) || a <= 0 {
		return
	}
	if a >= 1 {
		cv.img.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 255})
		return
	}
	dst := cv.img.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		// dst is premultiplied, src is straight
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	cv.img.SetRGBA(x, y, color.RGBA{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(math.Round(255*a + float64(dst.A)*(1-a))),
	})
}

func (cv *canvas) fillRect(x, y, w, h int, c color.RGBA, a float64) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			cv.blend(px, py, c, a)
		}
	}
}

// fillCircle fills every pixel whose center lies within r of (cx, cy).
func (cv *canvas) fillCircle(cx, cy, r float64, c color.RGBA, a float64) {
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				cv.blend(px, py, c, a)
			}
		}
	}
}

// fillTriangle fills pixels whose centers fall inside the triangle.
func (cv *canvas) fillTriangle(p0, p1, p2 [2]float64, c color.RGBA, a float64) {
	minX := math.Floor(math.Min(p0[0], math.Min(p1[0], p2[0])))
	maxX := math.Ceil(math.Max(p0[0], math.Max(p1[0], p2[0])))
	minY := math.Floor(math.Min(p0[1], math.Min(p1[1], p2[1])))
	maxY := math.Ceil(math.Max(p0[1], math.Max(p1[1], p2[1])))

	edge := func(a, b [2]float64, x, y float64) float64 {
		return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
	}
	for py := int(minY); py < int(maxY); py++ {
		for px := int(minX); px < int(maxX); px++ {
			x, y := float64(px)+0.5, float64(py)+0.5
			e0 := edge(p0, p1, x, y)
			e1 := edge(p1, p2, x, y)
			e2 := edge(p2, p0, x, y)
			if (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0) {
				cv.blend(px, py, c, a)
			}
		}
	}
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateGradient creates a vertical gradient from top to bottom.
func CreateGradient(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		row := Mix(top, bottom, t)
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, row)
		}
	}
	return img
}

// Mix linearly interpolates between two colors.
func Mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// CreateAtlas lays images out left to right in rows of the given column
// count, each in a cell as large as the largest image.
func CreateAtlas(images []*image.RGBA, columns int) *image.RGBA {
	if columns <= 0 {
		columns = 1
	}
	cellW, cellH := 1, 1
	for _, img := range images {
		if img == nil {
			continue
		}
		b := img.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
	}
	rows := (len(images) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*cellW, max(rows, 1)*cellH))

	// Fill with transparent background
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	// Copy each image into the atlas
	for i, img := range images {
		if img == nil {
			continue
		}
		x := (i % columns) * cellW
		y := (i / columns) * cellH
		dest := image.Rect(x, y, x+img.Bounds().Dx(), y+img.Bounds().Dy())
		draw.Draw(atlas, dest, img, img.Bounds().Min, draw.Src)
	}
	return atlas
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

var hex = render.Hex
