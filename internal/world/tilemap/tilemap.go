// Package tilemap turns a grid of tile codes into drawable tiles and the
// static collision group the player body is resolved against.
package tilemap

import (
	"image/color"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
)

// TileSize is the edge length of one cell in pixels.
const TileSize = 32

// Tile codes used by the story maps.
const (
	WoodFloor  = 0
	Wall       = 1
	Grass      = 2
	Path       = 3
	Tree       = 4
	Furniture  = 5
	CafeFloor  = 6
	CafeWall   = 7
	Counter    = 8
	DoorMarker = 9
)

var palette = map[int]color.RGBA{
	WoodFloor:  render.Hex(0x8B7355),
	Wall:       render.Hex(0x4A3728),
	Grass:      render.Hex(0x3D8B37),
	Path:       render.Hex(0xC4B590),
	Tree:       render.Hex(0x1B5E20),
	Furniture:  render.Hex(0x5D4037),
	CafeFloor:  render.Hex(0xD7CCC8),
	CafeWall:   render.Hex(0x6D4C41),
	Counter:    render.Hex(0x4E342E),
	DoorMarker: render.Hex(0x795548),
}

var fallback = render.Hex(0x333333)

// ColorFor returns the display color of a tile code.
func ColorFor(code int) color.RGBA {
	if c, ok := palette[code]; ok {
		return c
	}
	return fallback
}

// IsSolid reports whether a tile code blocks movement.
func IsSolid(code int) bool {
	switch code {
	case Wall, Tree, Furniture, CafeWall, Counter:
		return true
	}
	return false
}

// Tile is one visual cell.
type Tile struct {
	Col, Row int
	Code     int
	Center   geom.Point
	Color    color.RGBA
}

// Map is a built tile grid.
type Map struct {
	Cols, Rows int
	Tiles      []Tile
	Colliders  []geom.Rect
}

// Build creates one tile per cell and one 32×32 collider per solid cell.
// The grid must be rectangular; every row is assumed to be as long as the
// first.
func Build(grid [][]int) *Map {
	m := &Map{Rows: len(grid)}
	if m.Rows > 0 {
		m.Cols = len(grid[0])
	}
	m.Tiles = make([]Tile, 0, m.Rows*m.Cols)

	for row, line := range grid {
		for col, code := range line {
			center := CellCenter(col, row)
			m.Tiles = append(m.Tiles, Tile{
				Col:    col,
				Row:    row,
				Code:   code,
				Center: center,
				Color:  ColorFor(code),
			})
			if IsSolid(code) {
				m.Colliders = append(m.Colliders, geom.RectCentered(center, TileSize, TileSize))
			}
		}
	}
	return m
}

// CellCenter returns the world position of the center of (col, row).
func CellCenter(col, row int) geom.Point {
	return geom.Pt(float64(col*TileSize+TileSize/2), float64(row*TileSize+TileSize/2))
}

// Bounds returns the world rectangle covered by the grid.
func (m *Map) Bounds() geom.Rect {
	return geom.Rect{W: float64(m.Cols * TileSize), H: float64(m.Rows * TileSize)}
}

// Draw renders every tile offset by the camera scroll. Tiles use tileImg
// (a white square) tinted with the tile color; without it they fall back to
// filled rectangles.
func (m *Map) Draw(dst render.Image, r render.Renderer, tileImg render.Image, scroll geom.Point) {
	if m == nil {
		return
	}
	for _, t := range m.Tiles {
		x := t.Center.X - scroll.X
		y := t.Center.Y - scroll.Y
		if tileImg != nil {
			render.DrawSprite(dst, tileImg, render.Sprite{X: x, Y: y, Tint: t.Color})
			continue
		}
		if r != nil {
			r.FillRect(dst, float32(x-TileSize/2), float32(y-TileSize/2), TileSize, TileSize, t.Color)
		}
	}
}
