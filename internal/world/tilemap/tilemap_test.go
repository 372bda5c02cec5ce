package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render/rendertest"
)

func TestBuildCollidersOnlyForSolidCells(t *testing.T) {
	grid := [][]int{
		{1, 0, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 42, 0},
	}
	m := Build(grid)

	require.Equal(t, 4, m.Cols)
	require.Equal(t, 3, m.Rows)
	assert.Len(t, m.Tiles, 12)

	var want []geom.Rect
	for row, line := range grid {
		for col, code := range line {
			if IsSolid(code) {
				want = append(want, geom.Rect{X: float64(col * 32), Y: float64(row * 32), W: 32, H: 32})
			}
		}
	}
	require.Len(t, want, 5, "codes 1, 4, 5, 7 and 8 are solid")
	assert.Equal(t, want, m.Colliders)

	for _, c := range m.Colliders {
		center := c.Center()
		col, row := int(center.X)/TileSize, int(center.Y)/TileSize
		assert.True(t, IsSolid(grid[row][col]), "collider at %d,%d", col, row)
		assert.Equal(t, CellCenter(col, row), center)
	}
}

func TestTileCentersAndColors(t *testing.T) {
	m := Build([][]int{{3, 99}})

	require.Len(t, m.Tiles, 2)
	assert.Equal(t, geom.Pt(16, 16), m.Tiles[0].Center)
	assert.Equal(t, geom.Pt(48, 16), m.Tiles[1].Center)
	assert.Equal(t, ColorFor(Path), m.Tiles[0].Color)
	assert.Equal(t, fallback, m.Tiles[1].Color)
	assert.Empty(t, m.Colliders)
}

func TestSolidSet(t *testing.T) {
	solid := map[int]bool{1: true, 4: true, 5: true, 7: true, 8: true}
	for code := -1; code <= 12; code++ {
		assert.Equal(t, solid[code], IsSolid(code), "code %d", code)
	}
}

func TestBounds(t *testing.T) {
	m := Build(make([][]int, 12))
	assert.Equal(t, 0.0, m.Bounds().W)

	grid := make([][]int, 12)
	for i := range grid {
		grid[i] = make([]int, 15)
	}
	m = Build(grid)
	assert.Equal(t, geom.Rect{W: 480, H: 384}, m.Bounds())
}

func TestDrawUsesTileImage(t *testing.T) {
	m := Build([][]int{{0, 1}, {2, 3}})
	r := rendertest.NewRenderer()
	dst := rendertest.NewImage(800, 600)

	m.Draw(dst, r, rendertest.NewImage(32, 32), geom.Point{})
	assert.Equal(t, 4, dst.Draws)
	assert.Equal(t, 0, r.Rects)

	m.Draw(dst, r, nil, geom.Point{})
	assert.Equal(t, 4, r.Rects)
}
