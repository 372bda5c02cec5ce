package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/lookingback/internal/render"
)

var debugColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}

// Draw renders the active scene, then the overlays on top of it.
func (m *Manager) Draw(screen render.Image) {
	m.Director.Draw(screen)

	if m.Phase == PhasePlaying {
		m.Joystick.Draw(screen, m.Renderer)
	}
	m.Choice.Draw(screen)
	m.Letter.Draw(screen)

	if m.Config.Game.Debug {
		m.drawDebug(screen)
	}
}

func (m *Manager) drawDebug(screen render.Image) {
	name := "-"
	if cur := m.Director.Current(); cur != nil {
		name = cur.Name()
	}
	msg := fmt.Sprintf("%s  %s  %.1fs", name, m.Phase, m.elapsed.Seconds())
	m.Renderer.DrawText(screen, msg, 8, 580, render.TextOptions{
		Size:  10,
		Color: debugColor,
		Font:  render.FontMono,
	})
}
