// Package scene holds the story scenes and the Director that chains them.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"chosenoffset.com/lookingback/internal/core/timers"
	"chosenoffset.com/lookingback/internal/input"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/signal"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
)

// Scene names, in story order.
const (
	BootScene  = "BootScene"
	HomeScene  = "HomeScene"
	TownScene  = "TownScene"
	CafeScene  = "CafeScene"
	RideScene  = "RideScene"
	FinalScene = "FinalScene"
)

// ScreenWidth and ScreenHeight are the logical screen size.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// DefaultTPS is the tick rate scenes assume when the context leaves it unset.
const DefaultTPS = 60

// ErrUnknownScene is returned by Director.Update for a transition to a name
// with no registered factory.
var ErrUnknownScene = errors.New("unknown scene")

// Sound is the audio surface scenes use.
type Sound interface {
	PlayBGM(key string)
	StopBGM()
	FadeOutBGM(d time.Duration)
	PlayTypeSFX()
	PlayAdvanceSFX()
	PlayTransitionSFX()
	Unlock(ctx context.Context) <-chan error
}

// Scene is one step of the story.
type Scene interface {
	Name() string
	Enter(ctx *Context)
	Update(ctx *Context) error
	Draw(dst render.Image)
	Exit()
}

// ChoiceHandler is implemented by scenes that react to the shell's
// ChoiceMade signal.
type ChoiceHandler interface {
	ChoiceMade(ctx *Context)
}

// Context carries the shared services every scene needs.
type Context struct {
	Renderer render.Renderer
	Input    render.InputManager
	Sound    Sound
	Textures *textures.Set
	Story    *story.Story
	Unifier  *input.Unifier
	Timers   *timers.Scheduler
	Signals  *signal.Core
	Director *Director
	Rand     *rand.Rand
	TPS      int
	Debug    bool
}

// Tick is the fixed simulation step.
func (c *Context) Tick() time.Duration {
	tps := c.TPS
	if tps <= 0 {
		tps = DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// ensure fills in the services a scene cannot run without.
func (c *Context) ensure() {
	if c.Unifier == nil {
		c.Unifier = input.NewUnifier()
	}
	if c.Timers == nil {
		c.Timers = timers.NewScheduler()
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Textures == nil {
		c.Textures = textures.NewSet()
	}
}

// Start requests a transition to name on the next Update.
func (c *Context) Start(name string) {
	c.Director.Start(name)
}

// StoryScene returns the story entry for name, or an empty one.
func (c *Context) StoryScene(name string) *story.Scene {
	if c.Story == nil {
		return &story.Scene{}
	}
	sc, err := c.Story.Scene(name)
	if err != nil {
		log.Printf("scene %s: %v", name, err)
		return &story.Scene{}
	}
	return sc
}

// Factory builds a fresh scene.
type Factory func() Scene

// Director owns the active scene and applies transition requests.
type Director struct {
	factories map[string]Factory
	current   Scene
	pending   string
	requested bool

	// OnTransition observes every applied transition. from is empty for the
	// first scene.
	OnTransition func(from, to string)
}

// NewDirector returns a director with no scenes.
func NewDirector() *Director {
	return &Director{factories: make(map[string]Factory)}
}

// Register adds a scene factory under name.
func (d *Director) Register(name string, f Factory) {
	d.factories[name] = f
}

// RegisterStory registers the six story scenes.
func (d *Director) RegisterStory() {
	d.Register(BootScene, func() Scene { return NewBoot() })
	d.Register(HomeScene, func() Scene { return NewHome() })
	d.Register(TownScene, func() Scene { return NewTown() })
	d.Register(CafeScene, func() Scene { return NewCafe() })
	d.Register(RideScene, func() Scene { return NewRide() })
	d.Register(FinalScene, func() Scene { return NewFinal() })
}

// Has reports whether name is registered.
func (d *Director) Has(name string) bool {
	_, ok := d.factories[name]
	return ok
}

// Start records a transition request. The latest request before the next
// Update wins.
func (d *Director) Start(name string) {
	d.pending = name
	d.requested = true
}

// Current returns the active scene, or nil before the first transition.
func (d *Director) Current() Scene {
	return d.current
}

// Update applies a pending transition, routes inbound signals, advances the
// timers and ticks the active scene.
func (d *Director) Update(ctx *Context) error {
	ctx.ensure()
	if d.requested {
		if err := d.apply(ctx); err != nil {
			return err
		}
	}

	d.routeSignals(ctx)
	if ctx.Input != nil && !ctx.Input.IsFocused() {
		ctx.Unifier.Reset()
	}
	ctx.Timers.Advance(ctx.Tick())

	if d.current == nil {
		return nil
	}
	if err := d.current.Update(ctx); err != nil {
		return fmt.Errorf("%s: %w", d.current.Name(), err)
	}
	return nil
}

func (d *Director) apply(ctx *Context) error {
	name := d.pending
	d.requested = false
	d.pending = ""

	f, ok := d.factories[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	from := ""
	if d.current != nil {
		from = d.current.Name()
		d.current.Exit()
	}
	ctx.Unifier.Reset()
	if ctx.Debug {
		log.Printf("scene: dropping %d timers from %q", ctx.Timers.Active(), from)
	}
	ctx.Timers.Clear()

	next := f()
	d.current = next
	log.Printf("scene: %q -> %q", from, name)
	if d.OnTransition != nil {
		d.OnTransition(from, name)
	}
	next.Enter(ctx)
	return nil
}

func (d *Director) routeSignals(ctx *Context) {
	if ctx.Signals == nil {
		return
	}
	for {
		s, ok := ctx.Signals.Poll()
		if !ok {
			return
		}
		switch s.Kind {
		case signal.VirtualJoystick:
			ctx.Unifier.SetAxis(s.X, s.Y)
		case signal.ChoiceMade:
			if h, ok := d.current.(ChoiceHandler); ok {
				h.ChoiceMade(ctx)
			}
		}
	}
}

// Draw renders the active scene.
func (d *Director) Draw(dst render.Image) {
	if d.current != nil {
		d.current.Draw(dst)
	}
}
