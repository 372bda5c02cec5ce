package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/world/tilemap"
)

const tick = 1.0 / 60

func TestFreeMovement(t *testing.T) {
	b := NewBody(geom.Pt(100, 100))
	b.SetVelocity(130, -130)
	for i := 0; i < 60; i++ {
		b.Step(tick, nil, geom.Rect{})
	}
	assert.InDelta(t, 230, b.Pos.X, 1e-6)
	assert.InDelta(t, -30, b.Pos.Y, 1e-6)
}

func TestStopsAgainstWall(t *testing.T) {
	// Player walks right into a wall column at col 3.
	m := tilemap.Build([][]int{
		{0, 0, 0, 1},
		{0, 0, 0, 1},
		{0, 0, 0, 1},
	})
	b := NewBody(tilemap.CellCenter(0, 1))
	b.SetVelocity(130, 0)
	for i := 0; i < 120; i++ {
		b.Step(tick, m.Colliders, m.Bounds())
	}

	assert.InDelta(t, 96-BodySize/2, b.Pos.X, 1e-9)
	assert.InDelta(t, 48, b.Pos.Y, 1e-9)
}

func TestSlidesAlongWall(t *testing.T) {
	// Moving diagonally into a wall to the north keeps the X motion.
	m := tilemap.Build([][]int{
		{1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})
	b := NewBody(geom.Pt(40, 48))
	b.SetVelocity(60, -130)
	for i := 0; i < 30; i++ {
		b.Step(tick, m.Colliders, m.Bounds())
	}

	assert.InDelta(t, 32+BodySize/2, b.Pos.Y, 1e-9)
	assert.InDelta(t, 70, b.Pos.X, 1e-6)
}

func TestClampToBounds(t *testing.T) {
	b := NewBody(geom.Pt(20, 20))
	b.SetVelocity(-500, -500)
	b.Step(1, nil, geom.Rect{W: 480, H: 384})
	assert.Equal(t, geom.Pt(10, 10), b.Pos)

	b.SetVelocity(5000, 5000)
	b.Step(1, nil, geom.Rect{W: 480, H: 384})
	assert.Equal(t, geom.Pt(470, 374), b.Pos)
}

func TestStop(t *testing.T) {
	b := NewBody(geom.Pt(50, 50))
	b.SetVelocity(130, 0)
	b.Stop()
	b.Step(1, nil, geom.Rect{})
	assert.Equal(t, geom.Pt(50, 50), b.Pos)
}
