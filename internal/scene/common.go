package scene

import (
	"time"

	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/textures"
	"chosenoffset.com/lookingback/internal/ui/dialog"
)

var (
	labelColor = render.Hex(0xFF8BC1)
	signColor  = render.Hex(0xFFD5A0)
)

// exitPlan is how a scene leaves once its story beat is over.
type exitPlan struct {
	next     string
	bgmFade  time.Duration
	fadeOut  time.Duration
	silenced bool // skip the bgm fade and transition sound
}

// stage bundles what every scene draws with: the camera fade, the dialog
// and its box.
type stage struct {
	renderer render.Renderer
	textures *textures.Set
	camera   *fx.Camera
	dialog   *dialog.Sequencer
	box      *dialog.Box
	leaving  bool
}

func newStage(ctx *Context, fadeIn time.Duration) stage {
	cam := fx.NewCamera(ScreenWidth, ScreenHeight)
	if fadeIn > 0 {
		cam.FadeIn(fadeIn)
	}
	var sfx dialog.SFX
	if ctx.Sound != nil {
		sfx = ctx.Sound
	}
	return stage{
		renderer: ctx.Renderer,
		textures: ctx.Textures,
		camera:   cam,
		dialog:   dialog.NewSequencer(ctx.Timers, sfx),
		box:      dialog.NewBox(ctx.Renderer),
	}
}

// tick advances the per-frame animation shared by all scenes.
func (s *stage) tick(dt time.Duration) {
	s.camera.Update(dt)
	s.box.Update(dt)
}

// leave fades the music and the screen, then requests the next scene once.
func (s *stage) leave(ctx *Context, plan exitPlan) {
	if s.leaving {
		return
	}
	s.leaving = true
	if !plan.silenced && ctx.Sound != nil {
		ctx.Sound.FadeOutBGM(plan.bgmFade)
		ctx.Sound.PlayTransitionSFX()
	}
	s.camera.FadeOut(plan.fadeOut, func() {
		ctx.Start(plan.next)
	})
}

func (s *stage) tex(key string) render.Image {
	return s.textures.Get(key)
}

// drawOverlay draws the dialog box and the fade on top of everything.
func (s *stage) drawOverlay(dst render.Image) {
	s.box.Draw(dst, s.dialog)
	s.camera.DrawFade(dst, s.renderer)
}

// drawCentered draws text centered on (x, y) in both directions.
func drawCentered(r render.Renderer, dst render.Image, str string, x, y float64, opts render.TextOptions) {
	if r == nil {
		return
	}
	opts.Align = render.AlignCenter
	_, h := r.MeasureText(str, opts)
	r.DrawText(dst, str, x, y-h/2, opts)
}

// drawLabel draws the fixed scene label at the top of the screen.
func drawLabel(r render.Renderer, dst render.Image, label string, size float64) {
	if label == "" {
		return
	}
	drawCentered(r, dst, label, ScreenWidth/2, 20, render.TextOptions{Size: size, Color: labelColor, Font: render.FontMono})
}

// uploadGradient builds a full-screen vertical gradient texture.
func uploadGradient(r render.Renderer, top, bottom uint32) render.Image {
	if r == nil {
		return nil
	}
	img := textures.CreateGradient(ScreenWidth, ScreenHeight, render.Hex(top), render.Hex(bottom))
	return r.NewImageFromImage(img)
}
