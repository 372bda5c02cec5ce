package game

import (
	"chosenoffset.com/lookingback/internal/render"
	"chosenoffset.com/lookingback/internal/ui/overlay"
)

// gatedInput is the input the scenes see. While an overlay is modal the
// scenes see nothing; otherwise pointer presses that belong to the joystick
// are hidden so they do not also advance the dialog.
type gatedInput struct {
	render.InputManager
	joystick *overlay.Joystick
	phase    *Phase
}

func (g *gatedInput) blocked() bool { return *g.phase != PhasePlaying }

func (g *gatedInput) IsKeyPressed(key render.Key) bool {
	return !g.blocked() && g.InputManager.IsKeyPressed(key)
}

func (g *gatedInput) IsKeyJustPressed(key render.Key) bool {
	return !g.blocked() && g.InputManager.IsKeyJustPressed(key)
}

func (g *gatedInput) AnyKeyJustPressed() bool {
	return !g.blocked() && g.InputManager.AnyKeyJustPressed()
}

func (g *gatedInput) IsMouseButtonPressed(b render.MouseButton) bool {
	if g.blocked() || g.joystick.OwnsMouse() {
		return false
	}
	return g.InputManager.IsMouseButtonPressed(b)
}

func (g *gatedInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	if g.blocked() || g.joystick.OwnsMouse() {
		return false
	}
	return g.InputManager.IsMouseButtonJustPressed(b)
}

func (g *gatedInput) Wheel() (float64, float64) {
	if g.blocked() {
		return 0, 0
	}
	return g.InputManager.Wheel()
}

func (g *gatedInput) TouchIDs() []render.TouchID {
	if g.blocked() {
		return nil
	}
	return g.filter(g.InputManager.TouchIDs())
}

func (g *gatedInput) JustPressedTouchIDs() []render.TouchID {
	if g.blocked() {
		return nil
	}
	return g.filter(g.InputManager.JustPressedTouchIDs())
}

func (g *gatedInput) filter(ids []render.TouchID) []render.TouchID {
	var out []render.TouchID
	for _, id := range ids {
		if !g.joystick.OwnsTouch(id) {
			out = append(out, id)
		}
	}
	return out
}
