// Package game is the host shell: it runs the scene Director on the
// Ebitengine loop and owns the overlays the scenes talk to through signals.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"chosenoffset.com/lookingback/internal/config"
	"chosenoffset.com/lookingback/internal/core/timers"
	"chosenoffset.com/lookingback/internal/input"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/scene"
	"chosenoffset.com/lookingback/internal/signal"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
	"chosenoffset.com/lookingback/internal/ui/overlay"
)

// ErrNoRenderer is returned by NewManager without a renderer.
var ErrNoRenderer = errors.New("game: renderer is required")

// Options wires the manager to its backend and content.
type Options struct {
	Renderer render.Renderer
	Input    render.InputManager
	Sound    scene.Sound // nil plays nothing
	Story    *story.Story
	Config   *config.Config
}

// Manager implements render.Game.
type Manager struct {
	Config   *config.Config
	Renderer render.Renderer
	InputMgr render.InputManager

	Director *scene.Director
	Context  *scene.Context
	Link     *signal.Link
	shell    *signal.Shell
	gated    *gatedInput

	Phase    Phase
	Choice   *overlay.Choice
	Letter   *overlay.Letter
	Joystick *overlay.Joystick

	elapsed time.Duration
}

// NewManager builds the scene context, registers the story scenes and
// requests the configured start scene.
func NewManager(opts Options) (*Manager, error) {
	if opts.Renderer == nil {
		return nil, ErrNoRenderer
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	st := opts.Story
	if st == nil {
		var err error
		if st, err = story.Default(); err != nil {
			return nil, fmt.Errorf("failed to load story: %w", err)
		}
	}
	mode, err := overlay.ParseJoystickMode(cfg.Input.Joystick)
	if err != nil {
		return nil, err
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := &Manager{
		Config:   cfg,
		Renderer: opts.Renderer,
		InputMgr: opts.Input,
		Director: scene.NewDirector(),
		Link:     signal.NewLink(signal.DefaultBuffer),
		Choice:   overlay.NewChoice(opts.Renderer, st.Choice, rng),
		Letter:   overlay.NewLetter(opts.Renderer, st.Letter, rng),
		Joystick: overlay.NewJoystick(cfg.Input.JoystickSize, mode),
	}
	m.shell = m.Link.Shell()
	m.gated = &gatedInput{InputManager: opts.Input, joystick: m.Joystick, phase: &m.Phase}

	m.Joystick.OnChange = m.shell.Joystick
	m.Choice.OnAccept = func() {
		m.shell.ChoiceMade()
		m.Phase = PhasePlaying
	}

	var in render.InputManager
	if opts.Input != nil {
		in = m.gated
	}
	m.Context = &scene.Context{
		Renderer: opts.Renderer,
		Input:    in,
		Sound:    opts.Sound,
		Textures: textures.NewSet(),
		Story:    st,
		Unifier:  input.NewUnifier(),
		Timers:   timers.NewScheduler(),
		Signals:  m.Link.Core(),
		Director: m.Director,
		Rand:     rng,
		TPS:      cfg.Game.TPS,
		Debug:    cfg.Game.Debug,
	}

	m.Director.RegisterStory()
	start := cfg.Game.StartScene
	if start == "" {
		start = scene.BootScene
	}
	if !m.Director.Has(start) {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, start)
	}
	if start != scene.BootScene {
		// Boot normally generates the textures.
		if err := m.Context.Textures.Load(opts.Renderer, textures.Generate(rng)); err != nil {
			return nil, fmt.Errorf("failed to load textures: %w", err)
		}
	}
	m.Director.Start(start)
	return m, nil
}

// Update runs one tick: joystick, scenes, then the overlays.
func (m *Manager) Update() error {
	dt := m.Context.Tick()
	m.elapsed += dt

	if m.Phase == PhasePlaying {
		m.Joystick.Update(m.InputMgr)
	}

	if err := m.Director.Update(m.Context); err != nil {
		return err
	}
	m.pumpSignals()

	switch m.Phase {
	case PhaseChoice:
		m.Choice.Update(m.InputMgr, dt)
	case PhaseLetter:
		m.Letter.Update(m.InputMgr, dt)
	}
	return nil
}

// pumpSignals applies every signal the scenes emitted this tick.
func (m *Manager) pumpSignals() {
	for {
		s, ok := m.shell.Poll()
		if !ok {
			return
		}
		switch s.Kind {
		case signal.ShowChoice:
			if m.Phase == PhasePlaying {
				m.Joystick.Release()
				m.Choice.Show()
				m.Phase = PhaseChoice
			}
		case signal.ShowLetter:
			m.Joystick.Release()
			m.Choice.Hide()
			m.Letter.Show()
			m.Phase = PhaseLetter
		default:
			log.Printf("game: unexpected signal %v", s.Kind)
		}
	}
}

// Layout keeps the logical screen fixed; Ebitengine scales it to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scene.ScreenWidth, scene.ScreenHeight
}
