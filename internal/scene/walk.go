package scene

import (
	"image/color"
	"log"
	"time"

	"chosenoffset.com/lookingback/internal/geom"
	"chosenoffset.com/lookingback/internal/input"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/lighting"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
	"chosenoffset.com/lookingback/internal/world/physics"
	"chosenoffset.com/lookingback/internal/world/tilemap"
	"chosenoffset.com/lookingback/internal/world/trigger"
)

// glowSpec is the pulsing halo drawn around the partner.
type glowSpec struct {
	radius    float64
	color     uint32
	fillAlpha float64
	peak      float64
	period    time.Duration
}

// walkConfig describes one of the tile-map scenes.
type walkConfig struct {
	name      string
	bgm       string
	fadeIn    time.Duration
	exit      exitPlan
	dialogKey string
	// dialogDelay starts the run on a timer; zero means the run starts when
	// the player walks up to the partner.
	dialogDelay time.Duration
	glow        *glowSpec
}

// Walk is a top-down scene where the player moves around a tile map.
type Walk struct {
	stage
	cfg walkConfig

	content *story.Scene
	tiles   *tilemap.Map
	player  *physics.Body
	partner *geom.Point
	near    *trigger.Proximity
	lights  *lighting.Manager
	bg      color.RGBA
	started bool
}

// NewHome is Luthfi's room; the monologue starts after 1.5 s.
func NewHome() *Walk {
	return &Walk{cfg: walkConfig{
		name:        HomeScene,
		bgm:         "home",
		fadeIn:      1500 * time.Millisecond,
		exit:        exitPlan{next: TownScene, bgmFade: time.Second, fadeOut: 1200 * time.Millisecond},
		dialogKey:   "intro",
		dialogDelay: 1500 * time.Millisecond,
	}}
}

// NewTown is the park where Raina waits on the path.
func NewTown() *Walk {
	return &Walk{cfg: walkConfig{
		name:      TownScene,
		bgm:       "town",
		fadeIn:    1200 * time.Millisecond,
		exit:      exitPlan{next: CafeScene, bgmFade: time.Second, fadeOut: 1200 * time.Millisecond},
		dialogKey: "meet",
		glow:      &glowSpec{radius: 28, color: 0xFF8BC1, fillAlpha: 0.15, peak: 0.3, period: time.Second},
	}}
}

// NewCafe is the café where Raina sits at a table.
func NewCafe() *Walk {
	return &Walk{cfg: walkConfig{
		name:      CafeScene,
		bgm:       "cafe",
		fadeIn:    1200 * time.Millisecond,
		exit:      exitPlan{next: RideScene, bgmFade: 1200 * time.Millisecond, fadeOut: 1500 * time.Millisecond},
		dialogKey: "date",
		glow:      &glowSpec{radius: 24, color: 0xFF8BC1, fillAlpha: 0.12, peak: 0.25, period: 1200 * time.Millisecond},
	}}
}

func (w *Walk) Name() string { return w.cfg.name }

func (w *Walk) Enter(ctx *Context) {
	w.stage = newStage(ctx, w.cfg.fadeIn)
	if ctx.Sound != nil {
		ctx.Sound.PlayBGM(w.cfg.bgm)
	}

	w.content = ctx.StoryScene(w.cfg.name)
	w.bg = w.content.BackgroundColor()
	if err := story.ValidateGrid(w.content.Map); err != nil {
		log.Printf("scene %s: %v", w.cfg.name, err)
		w.tiles = tilemap.Build(nil)
	} else {
		w.tiles = tilemap.Build(w.content.Map)
	}

	spawn := w.tiles.Bounds().Center()
	if w.content.Player != nil {
		spawn = w.content.Player.Point()
	}
	w.player = physics.NewBody(spawn)

	w.lights = lighting.NewManager()
	if w.content.Partner != nil {
		p := w.content.Partner.Point()
		w.partner = &p
		w.near = trigger.NewProximity(trigger.DefaultRadius)
		if g := w.cfg.glow; g != nil {
			w.lights.Add("partner", lighting.NewGlow(p.X, p.Y, g.radius, render.Hex(g.color), g.fillAlpha, g.peak, g.period))
		}
	}

	w.camera.SetBounds(w.tiles.Bounds())
	w.camera.CenterOn(w.player.Pos)

	if w.cfg.dialogDelay > 0 {
		ctx.Timers.After(w.cfg.dialogDelay, func() { w.startDialog(ctx) })
	}
}

func (w *Walk) startDialog(ctx *Context) {
	if w.started {
		return
	}
	w.started = true
	err := w.dialog.Start(w.content.Dialog(w.cfg.dialogKey), func() {
		w.leave(ctx, w.cfg.exit)
	})
	if err != nil {
		log.Printf("scene %s: %v", w.cfg.name, err)
	}
}

func (w *Walk) Update(ctx *Context) error {
	dt := ctx.Tick()
	state := w.dialog.Update(input.AdvancePressed(ctx.Input))

	vx, vy := ctx.Unifier.Velocity(input.PollKeys(ctx.Input), state.Active())
	w.player.SetVelocity(vx, vy)
	w.player.Step(dt.Seconds(), w.tiles.Colliders, w.tiles.Bounds())

	if w.partner != nil && w.cfg.dialogDelay == 0 {
		if w.near.Check(w.player.Pos, *w.partner, w.dialog.Active()) {
			w.startDialog(ctx)
		}
	}

	w.camera.Follow(w.player.Pos)
	w.lights.Update(dt)
	w.tick(dt)
	return nil
}

func (w *Walk) Draw(dst render.Image) {
	dst.Fill(w.bg)
	scroll := w.camera.Scroll

	w.tiles.Draw(dst, w.renderer, w.tex(textures.Tile), scroll)
	w.lights.Draw(dst, w.renderer, scroll)

	if w.partner != nil {
		p := w.camera.ToScreen(*w.partner)
		render.DrawSprite(dst, w.tex(textures.Raina), render.Sprite{X: p.X, Y: p.Y})
	}
	pp := w.camera.ToScreen(w.player.Pos)
	render.DrawSprite(dst, w.tex(textures.Luthfi), render.Sprite{X: pp.X, Y: pp.Y})

	if sign := w.content.Sign; sign != nil {
		sp := w.camera.ToScreen(geom.Pt(sign.X, sign.Y))
		drawCentered(w.renderer, dst, sign.Text, sp.X, sp.Y, render.TextOptions{Size: 9, Color: signColor, Font: render.FontMono})
	}
	drawLabel(w.renderer, dst, w.content.Label, 10)

	w.drawOverlay(dst)
}

func (w *Walk) Exit() {
	w.dialog.Hide()
	w.lights.Clear()
}

// Player returns the player body.
func (w *Walk) Player() *physics.Body { return w.player }

// Partner returns Raina's position, if she is in this scene.
func (w *Walk) Partner() (geom.Point, bool) {
	if w.partner == nil {
		return geom.Point{}, false
	}
	return *w.partner, true
}
