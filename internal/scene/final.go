package scene

import (
	"context"
	"log"
	"time"

	"chosenoffset.com/lookingback/internal/input"
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/render/lighting"
	"chosenoffset.com/lookingback/internal/signal"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
)

const (
	finalDialogDelay = 1500 * time.Millisecond
	finalLetterDelay = 2000 * time.Millisecond
	finalFadeOut     = 2000 * time.Millisecond
	heartBurst       = 30
)

var (
	groundColor = render.Hex(0x1a1a2e)
	groundEdge  = render.Hex(0x222244)
)

// Final is the rooftop under the stars where Luthfi asks the question. The
// answer comes from the shell's choice overlay; the scene ends by asking
// the shell for the letter.
type Final struct {
	stage
	content *story.Scene
	signals *signal.Core

	bg     render.Image
	stars  *fx.Emitter
	burst  *fx.Emitter
	lights *lighting.Manager

	retried     bool
	unlock      <-chan error
	choiceShown bool
	answered    bool
	letterSent  bool
}

// NewFinal creates the final scene.
func NewFinal() *Final {
	return &Final{}
}

func (f *Final) Name() string { return FinalScene }

func (f *Final) Enter(ctx *Context) {
	f.stage = newStage(ctx, 2000*time.Millisecond)
	if ctx.Sound != nil {
		ctx.Sound.PlayBGM("final")
	}
	f.content = ctx.StoryScene(FinalScene)
	f.signals = ctx.Signals

	f.bg = uploadGradient(ctx.Renderer, 0x0a0020, 0x150008)
	f.stars = fx.NewEmitter(fx.EmitterConfig{
		X:          fx.Range{Min: 0, Max: ScreenWidth},
		Y:          fx.Range{Min: 0, Max: 300},
		Lifespan:   4 * time.Second,
		Frequency:  300 * time.Millisecond,
		ScaleStart: 0.5,
		AlphaStart: 0.7,
		AlphaEnd:   0.1,
		Blend:      render.BlendAdditive,
	}, ctx.Rand)
	f.burst = fx.NewEmitter(fx.EmitterConfig{
		Speed:      fx.Range{Min: 50, Max: 150},
		Lifespan:   3 * time.Second,
		ScaleStart: 1,
		AlphaStart: 1,
	}, ctx.Rand)

	f.lights = lighting.NewManager()
	f.lights.Add("couple", lighting.NewGlow(400, 420, 80, render.Hex(0xFF3354), 0.08, 0.2, 1500*time.Millisecond))

	ctx.Timers.After(finalDialogDelay, func() {
		err := f.dialog.Start(f.content.Dialog("question"), func() {
			f.dialog.Hide()
			f.choiceShown = true
			if f.signals != nil {
				f.signals.ShowChoice()
			}
		})
		if err != nil {
			log.Printf("scene %s: %v", FinalScene, err)
		}
	})
}

// ChoiceMade runs the answer once the choice prompt has been shown. Later or
// early signals are ignored.
func (f *Final) ChoiceMade(ctx *Context) {
	if !f.choiceShown || f.answered {
		return
	}
	f.answered = true
	err := f.dialog.Start(f.content.Dialog("answer"), func() {
		f.dialog.Hide()
		f.burst.Explode(heartBurst, 400, 400)
		ctx.Timers.After(finalLetterDelay, func() {
			f.camera.FadeOut(finalFadeOut, f.showLetter)
		})
	})
	if err != nil {
		log.Printf("scene %s: %v", FinalScene, err)
	}
}

func (f *Final) showLetter() {
	if f.letterSent {
		return
	}
	f.letterSent = true
	if f.signals != nil {
		f.signals.ShowLetter()
	}
}

func (f *Final) Update(ctx *Context) error {
	dt := ctx.Tick()
	f.retryMusic(ctx)
	f.dialog.Update(input.AdvancePressed(ctx.Input))

	f.stars.Update(dt)
	f.burst.Update(dt)
	f.lights.Update(dt)
	f.tick(dt)
	return nil
}

// retryMusic unlocks audio on the first key or pointer press and requests
// the track again, for players who arrive here with audio still locked.
func (f *Final) retryMusic(ctx *Context) {
	if !f.retried && ctx.Input != nil && ctx.Sound != nil {
		_, _, pointer := render.PointerJustPressed(ctx.Input)
		if pointer || ctx.Input.AnyKeyJustPressed() {
			f.retried = true
			f.unlock = ctx.Sound.Unlock(context.Background())
		}
	}
	if f.unlock == nil {
		return
	}
	select {
	case err := <-f.unlock:
		f.unlock = nil
		if err != nil {
			log.Printf("scene %s: audio unlock failed: %v", FinalScene, err)
			return
		}
		ctx.Sound.PlayBGM("final")
	default:
	}
}

func (f *Final) Draw(dst render.Image) {
	r := f.renderer
	if f.bg != nil {
		dst.DrawImage(f.bg, nil)
	} else {
		dst.Fill(f.content.BackgroundColor())
	}
	f.stars.Draw(dst, f.tex(textures.Star))

	if r != nil {
		r.FillRect(dst, 0, 450, ScreenWidth, 150, groundColor)
		r.FillRect(dst, 0, 448, ScreenWidth, 4, groundEdge)
	}
	f.lights.Draw(dst, r, f.camera.Scroll)

	lp, rp := f.content.Player, f.content.Partner
	if lp != nil {
		render.DrawSprite(dst, f.tex(textures.Luthfi), render.Sprite{X: lp.X, Y: lp.Y, ScaleX: 3, ScaleY: 3})
	}
	if rp != nil {
		render.DrawSprite(dst, f.tex(textures.Raina), render.Sprite{X: rp.X, Y: rp.Y, ScaleX: -3, ScaleY: 3})
	}

	f.burst.Draw(dst, f.tex(textures.Heart))
	drawLabel(r, dst, f.content.Label, 10)
	f.drawOverlay(dst)
}

func (f *Final) Exit() {
	f.dialog.Hide()
	f.lights.Clear()
}

// ChoiceShown reports whether the choice prompt was requested.
func (f *Final) ChoiceShown() bool { return f.choiceShown }

// Answered reports whether the choice was accepted.
func (f *Final) Answered() bool { return f.answered }
