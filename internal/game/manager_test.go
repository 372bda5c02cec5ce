package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lookingback/internal/audio"
	"chosenoffset.com/lookingback/internal/config"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/rendertest"
	"chosenoffset.com/lookingback/internal/scene"
	"chosenoffset.com/lookingback/internal/signal"
)

func newTestManager(t *testing.T, start string) (*Manager, *rendertest.Input) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Game.StartScene = start
	cfg.Game.Seed = 7
	cfg.Input.Joystick = "always"

	in := rendertest.NewInput()
	m, err := NewManager(Options{
		Renderer: rendertest.NewRenderer(),
		Input:    in,
		Sound:    audio.NewSilentComposer(),
		Config:   cfg,
	})
	require.NoError(t, err)
	return m, in
}

func tick(t *testing.T, m *Manager, in *rendertest.Input) {
	t.Helper()
	require.NoError(t, m.Update())
	m.Draw(rendertest.NewImage(scene.ScreenWidth, scene.ScreenHeight))
	in.EndFrame()
}

// tickUntil taps Space every other tick until cond holds.
func tickUntil(t *testing.T, m *Manager, in *rendertest.Input, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit && !cond(); i++ {
		if i%2 == 0 {
			in.Press(render.KeySpace)
		}
		tick(t, m, in)
		delete(in.Held, render.KeySpace)
	}
	require.True(t, cond(), "condition not reached after %d ticks", limit)
}

func TestNewManagerValidates(t *testing.T) {
	_, err := NewManager(Options{})
	assert.ErrorIs(t, err, ErrNoRenderer)

	cfg := config.DefaultConfig()
	cfg.Game.StartScene = "AtticScene"
	_, err = NewManager(Options{Renderer: rendertest.NewRenderer(), Config: cfg})
	assert.ErrorIs(t, err, scene.ErrUnknownScene)

	cfg = config.DefaultConfig()
	cfg.Input.Joystick = "sometimes"
	_, err = NewManager(Options{Renderer: rendertest.NewRenderer(), Config: cfg})
	assert.Error(t, err)
}

func TestStartsAtConfiguredScene(t *testing.T) {
	m, in := newTestManager(t, scene.CafeScene)
	tick(t, m, in)
	require.NotNil(t, m.Director.Current())
	assert.Equal(t, scene.CafeScene, m.Director.Current().Name())
	assert.Positive(t, m.Context.Textures.Len(), "textures are loaded when boot is skipped")
	assert.Equal(t, PhasePlaying, m.Phase)
}

func TestFinalFlowThroughOverlays(t *testing.T) {
	m, in := newTestManager(t, scene.FinalScene)

	tickUntil(t, m, in, 2000, func() bool { return m.Phase == PhaseChoice })
	assert.True(t, m.Choice.Visible())

	// Scenes see nothing while the choice is up.
	in.Press(render.KeySpace)
	assert.False(t, m.gated.IsKeyJustPressed(render.KeySpace))
	in.EndFrame()

	in.Press(render.KeyEnter)
	tick(t, m, in)
	assert.Equal(t, PhasePlaying, m.Phase)

	tickUntil(t, m, in, 3000, func() bool { return m.Phase == PhaseLetter })
	assert.False(t, m.Choice.Visible())
	assert.True(t, m.Letter.Visible())
}

func TestJoystickDrivesPlayer(t *testing.T) {
	m, in := newTestManager(t, scene.HomeScene)
	tick(t, m, in)

	c := m.Joystick.Center
	in.Touches[1] = [2]int{int(c.X), int(c.Y)}
	in.NewTouches = []render.TouchID{1}
	tick(t, m, in)
	require.True(t, m.Joystick.Dragging())

	in.Touches[1] = [2]int{int(c.X) + 200, int(c.Y)}
	tick(t, m, in)
	assert.Empty(t, m.gated.TouchIDs(), "the joystick touch is hidden from scenes")
	assert.InDelta(t, 1.0, m.Context.Unifier.Axis().X, 1e-9)

	in.Released[1] = true
	tick(t, m, in)
	assert.False(t, m.Joystick.Dragging())
	assert.Zero(t, m.Context.Unifier.Axis())
}

func TestShowLetterReleasesJoystick(t *testing.T) {
	m, in := newTestManager(t, scene.HomeScene)
	tick(t, m, in)

	c := m.Joystick.Center
	in.Touches[1] = [2]int{int(c.X), int(c.Y) - 20}
	in.NewTouches = []render.TouchID{1}
	tick(t, m, in)
	require.True(t, m.Joystick.Dragging())

	m.Context.Signals.ShowLetter()
	m.pumpSignals()
	assert.Equal(t, PhaseLetter, m.Phase)
	assert.False(t, m.Joystick.Dragging())

	s, ok := m.Link.Core().Poll()
	require.True(t, ok)
	assert.Equal(t, signal.VirtualJoystick, s.Kind)
	assert.Zero(t, s.X)
	assert.Zero(t, s.Y)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "choice", PhaseChoice.String())
	assert.Equal(t, "letter", PhaseLetter.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
