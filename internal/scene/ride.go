package scene

import (
	"image/color"
	"log"
	"time"

	"chosenoffset.com/lookingback/internal/input"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
)

// layer is one horizontally scrolling band of the night city.
type layer struct {
	key    string
	y, h   float64
	speed  float64 // pixels per tick at 60 TPS
	offset float64
}

const (
	rideDialogDelay   = 2500 * time.Millisecond
	rideOutroDelay    = 3000 * time.Millisecond
	streetlightEvery  = 1800 * time.Millisecond
	streetlightTravel = 2500 * time.Millisecond
	streetlightY      = 420
	bikeX, bikeY      = 400, 480
)

var rideExit = exitPlan{next: FinalScene, bgmFade: 1500 * time.Millisecond, fadeOut: 2000 * time.Millisecond}

// Ride is the night motorcycle ride through the city. Nothing is steered;
// the world scrolls past while the dialog plays.
type Ride struct {
	stage
	content *story.Scene

	layers    []*layer
	lamps     []*fx.Tween
	scrolling bool
	bob       *fx.Tween

	stars    *fx.Emitter
	sparkles *fx.Emitter
	hearts   *fx.Emitter
}

// NewRide creates the ride scene.
func NewRide() *Ride {
	return &Ride{}
}

func (s *Ride) Name() string { return RideScene }

func (s *Ride) Enter(ctx *Context) {
	s.stage = newStage(ctx, 2000*time.Millisecond)
	if ctx.Sound != nil {
		ctx.Sound.PlayBGM("ride")
	}
	s.content = ctx.StoryScene(RideScene)

	s.layers = []*layer{
		{key: textures.SkyNight, y: 0, h: 200, speed: 0.2},
		{key: textures.BuildingsFar, y: 160, h: 200, speed: 0.6},
		{key: textures.BuildingsNear, y: 245, h: 250, speed: 1.8},
		{key: textures.RoadSurface, y: 455, h: 150, speed: 3.5},
	}
	s.scrolling = true

	s.bob = fx.NewPulse(bikeY, bikeY+4, 400*time.Millisecond, fx.SineInOut)
	s.stars = fx.NewEmitter(fx.EmitterConfig{
		X:          fx.Range{Min: 0, Max: ScreenWidth},
		Y:          fx.Range{Min: 0, Max: 150},
		Lifespan:   3 * time.Second,
		Frequency:  400 * time.Millisecond,
		ScaleStart: 0.8,
		AlphaStart: 0.6,
		Blend:      render.BlendAdditive,
	}, ctx.Rand)
	s.sparkles = fx.NewEmitter(fx.EmitterConfig{
		X:          fx.Range{Min: 0, Max: ScreenWidth},
		Y:          fx.Range{Min: 0, Max: 400},
		Lifespan:   2 * time.Second,
		Frequency:  80 * time.Millisecond,
		ScaleStart: 1.2,
		AlphaStart: 1,
		Blend:      render.BlendAdditive,
		Tints: []color.Color{
			render.Hex(0xffffff), render.Hex(0xFFFF88), render.Hex(0xFF8BC1), render.Hex(0xFF6B96),
		},
	}, ctx.Rand)
	s.sparkles.Stop()
	s.hearts = fx.NewEmitter(fx.EmitterConfig{
		X:          fx.Range{Min: 200, Max: 600},
		Y:          fx.Fixed(550),
		SpeedX:     fx.Range{Min: -10, Max: 10},
		SpeedY:     fx.Range{Min: -40, Max: -20},
		Lifespan:   3 * time.Second,
		Frequency:  400 * time.Millisecond,
		ScaleStart: 0.5,
		AlphaStart: 0.6,
	}, ctx.Rand)
	s.hearts.Stop()

	ctx.Timers.Every(streetlightEvery, s.spawnLamp)
	ctx.Timers.After(rideDialogDelay, func() {
		err := s.dialog.Start(s.content.Dialog("ride"), func() { s.outro(ctx) })
		if err != nil {
			log.Printf("scene %s: %v", RideScene, err)
		}
	})
}

func (s *Ride) spawnLamp() {
	if !s.scrolling {
		return
	}
	s.lamps = append(s.lamps, fx.NewTween(ScreenWidth+30, -40, streetlightTravel))
}

// outro lights up the sky, then stops the ride and leaves.
func (s *Ride) outro(ctx *Context) {
	s.sparkles.Emitting = true
	s.hearts.Emitting = true
	ctx.Timers.After(rideOutroDelay, func() {
		s.scrolling = false
		s.leave(ctx, rideExit)
	})
}

func (s *Ride) Update(ctx *Context) error {
	dt := ctx.Tick()
	s.dialog.Update(input.AdvancePressed(ctx.Input))

	if s.scrolling {
		ticks := dt.Seconds() * DefaultTPS
		for _, l := range s.layers {
			l.offset += l.speed * ticks
		}
	}

	live := s.lamps[:0]
	for _, t := range s.lamps {
		t.Update(dt)
		if !t.Done() {
			live = append(live, t)
		}
	}
	s.lamps = live

	s.bob.Update(dt)
	s.stars.Update(dt)
	s.sparkles.Update(dt)
	s.hearts.Update(dt)
	s.tick(dt)
	return nil
}

func (s *Ride) Draw(dst render.Image) {
	dst.Fill(s.content.BackgroundColor())
	for _, l := range s.layers {
		render.DrawTiled(dst, s.tex(l.key), 0, l.y, ScreenWidth, l.h, l.offset)
	}
	s.stars.Draw(dst, s.tex(textures.Star))

	for _, t := range s.lamps {
		render.DrawSprite(dst, s.tex(textures.Streetlight), render.Sprite{X: t.Value(), Y: streetlightY})
	}
	render.DrawSprite(dst, s.tex(textures.Motorcycle), render.Sprite{X: bikeX, Y: s.bob.Value(), ScaleX: 2, ScaleY: 2})

	s.sparkles.Draw(dst, s.tex(textures.Star))
	s.hearts.Draw(dst, s.tex(textures.Heart))
	drawLabel(s.renderer, dst, s.content.Label, 8)
	s.drawOverlay(dst)
}

func (s *Ride) Exit() {
	s.dialog.Hide()
}

// Scrolling reports whether the city is still moving.
func (s *Ride) Scrolling() bool { return s.scrolling }

// Lamps returns the number of streetlights on screen.
func (s *Ride) Lamps() int { return len(s.lamps) }
