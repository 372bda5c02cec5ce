package lighting

import (
	"image/color"
	"sort"
	"time"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
)

// Glow is a soft colored disc whose opacity pulses.
type Glow struct {
	X, Y      float64 // world position (in pixels)
	Radius    float64
	Color     color.RGBA
	FillAlpha float64 // base opacity of the disc
	Pulse     *fx.Tween
}

// NewGlow returns a glow whose opacity multiplier moves from 1 to peak and
// back over period, forever.
func NewGlow(x, y, radius float64, col color.RGBA, fillAlpha, peak float64, period time.Duration) *Glow {
	return &Glow{
		X: x, Y: y, Radius: radius, Color: col, FillAlpha: fillAlpha,
		Pulse: fx.NewPulse(1, peak, period, nil),
	}
}

// Alpha returns the glow's current effective opacity.
func (g *Glow) Alpha() float64 {
	a := g.FillAlpha
	if g.Pulse != nil {
		a *= g.Pulse.Value()
	}
	return a
}

// Manager handles all glows in a scene.
type Manager struct {
	glows map[string]*Glow
	// Ambient darkens the whole view: 0 leaves it untouched, 1 is black.
	ambient float64
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{glows: make(map[string]*Glow)}
}

// SetAmbient sets the overlay darkness applied before glows are drawn.
func (m *Manager) SetAmbient(level float64) {
	m.ambient = geom.Clamp(level, 0, 1)
}

// Ambient returns the current ambient darkness.
func (m *Manager) Ambient() float64 {
	return m.ambient
}

// Add registers g under id, replacing any glow with the same id.
func (m *Manager) Add(id string, g *Glow) {
	m.glows[id] = g
}

// Remove deletes the glow registered under id.
func (m *Manager) Remove(id string) {
	delete(m.glows, id)
}

// Get returns the glow registered under id.
func (m *Manager) Get(id string) (*Glow, bool) {
	g, ok := m.glows[id]
	return g, ok
}

// Len returns the number of glows.
func (m *Manager) Len() int {
	return len(m.glows)
}

// Clear removes all glows (called when a scene exits)
func (m *Manager) Clear() {
	m.glows = make(map[string]*Glow)
}

// Update advances every pulse.
func (m *Manager) Update(dt time.Duration) {
	for _, g := range m.glows {
		if g.Pulse != nil {
			g.Pulse.Update(dt)
		}
	}
}

// Draw renders the ambient overlay and then each glow offset by scroll, in
// id order so overlaps are stable between frames.
func (m *Manager) Draw(dst render.Image, r render.Renderer, scroll geom.Point) {
	if r == nil {
		return
	}
	if m.ambient > 0 {
		w, h := dst.Size()
		r.FillRect(dst, 0, 0, float32(w), float32(h), color.NRGBA{A: uint8(m.ambient * 255)})
	}

	ids := make([]string, 0, len(m.glows))
	for id := range m.glows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g := m.glows[id]
		a := g.Alpha()
		if a <= 0 {
			continue
		}
		r.FillCircle(dst, float32(g.X-scroll.X), float32(g.Y-scroll.Y), float32(g.Radius), render.WithAlpha(g.Color, a))
	}
}
