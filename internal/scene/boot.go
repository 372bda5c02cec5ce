package scene

import (
	"context"
	"log"
	"time"

	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/render/fx"
	"chosenoffset.com/lookingback/internal/story"
	"chosenoffset.com/lookingback/internal/textures"
)

var (
	titleColor       = render.Hex(0xFF3354)
	titleStroke      = render.Hex(0x600000)
	subtitleColor    = render.Hex(0xFF8BC1)
	dedicationColor  = render.Hex(0xFF6B96)
	bootFadeOut      = time.Second
	bootBGMFade      = 500 * time.Millisecond
	promptBlinkCycle = 800 * time.Millisecond
)

// Boot generates the textures and shows the title screen. Space, a click or
// a tap unlocks audio and starts the story.
type Boot struct {
	stage
	title   story.Title
	bg      render.Image
	prompt  *fx.Tween
	hearts  *fx.Emitter
	pressed bool
	unlock  <-chan error
}

// NewBoot creates the title scene.
func NewBoot() *Boot {
	return &Boot{}
}

func (b *Boot) Name() string { return BootScene }

func (b *Boot) Enter(ctx *Context) {
	b.stage = newStage(ctx, 0)
	if ctx.Textures != nil && ctx.Textures.Len() == 0 {
		if err := ctx.Textures.Load(ctx.Renderer, textures.Generate(ctx.Rand)); err != nil {
			log.Printf("boot: %v", err)
		}
	}
	if ctx.Story != nil {
		b.title = ctx.Story.Title
	}

	b.bg = uploadGradient(ctx.Renderer, 0x1a0005, 0x0a0000)
	b.prompt = fx.NewPulse(1, 0.2, promptBlinkCycle, nil)
	b.hearts = fx.NewEmitter(fx.EmitterConfig{
		X:          fx.Range{Min: 50, Max: 750},
		Y:          fx.Fixed(620),
		SpeedX:     fx.Range{Min: -15, Max: 15},
		SpeedY:     fx.Range{Min: -50, Max: -25},
		Lifespan:   5 * time.Second,
		Frequency:  600 * time.Millisecond,
		ScaleStart: 0.6,
		AlphaStart: 0.7,
	}, ctx.Rand)
}

func (b *Boot) Update(ctx *Context) error {
	dt := ctx.Tick()
	b.prompt.Update(dt)
	b.hearts.Update(dt)
	b.tick(dt)

	if !b.pressed && startPressed(ctx.Input) {
		b.pressed = true
		if ctx.Sound != nil {
			b.unlock = ctx.Sound.Unlock(context.Background())
		} else {
			b.begin(ctx)
		}
	}

	if b.unlock != nil {
		select {
		case err := <-b.unlock:
			b.unlock = nil
			if err != nil {
				log.Printf("boot: audio unlock failed: %v", err)
			}
			b.begin(ctx)
		default:
		}
	}
	return nil
}

// begin plays the title theme and fades to the first story scene.
func (b *Boot) begin(ctx *Context) {
	if ctx.Sound != nil {
		ctx.Sound.PlayBGM("boot")
	}
	b.camera.FadeOut(bootFadeOut, func() {
		if ctx.Sound != nil {
			ctx.Sound.FadeOutBGM(bootBGMFade)
			ctx.Sound.PlayTransitionSFX()
		}
		ctx.Start(HomeScene)
	})
}

func startPressed(in render.InputManager) bool {
	if in == nil {
		return false
	}
	if in.IsKeyJustPressed(render.KeySpace) {
		return true
	}
	_, _, ok := render.PointerJustPressed(in)
	return ok
}

func (b *Boot) Draw(dst render.Image) {
	r := b.renderer
	if b.bg != nil {
		dst.DrawImage(b.bg, nil)
	}
	b.hearts.Draw(dst, b.tex(textures.Heart))

	heading := render.TextOptions{Size: 26, Color: titleStroke, Font: render.FontBold}
	for _, off := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		drawCentered(r, dst, b.title.Heading, 400+off[0], 180+off[1], heading)
	}
	heading.Color = titleColor
	drawCentered(r, dst, b.title.Heading, 400, 180, heading)

	drawCentered(r, dst, b.title.Subtitle, 400, 230, render.TextOptions{Size: 11, Color: subtitleColor, Font: render.FontMono})
	drawCentered(r, dst, b.title.Dedication, 400, 290, render.TextOptions{Size: 10, Color: dedicationColor, Font: render.FontMono})
	drawCentered(r, dst, b.title.Prompt, 400, 420, render.TextOptions{
		Size: 10, Color: dedicationColor, Font: render.FontMono, Alpha: b.prompt.Value(),
	})

	b.camera.DrawFade(dst, r)
}

func (b *Boot) Exit() {}
