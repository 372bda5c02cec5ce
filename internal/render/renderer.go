package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image
	NewImageFromImage(src image.Image) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y float64, opts TextOptions)
	MeasureText(text string, opts TextOptions) (width, height float64)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Sub-image extraction
	SubImage(r image.Rectangle) Image

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)

	// Resource management
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM       GeoM
	ColorScale ColorScale
	Blend      BlendMode
}

// BlendMode selects how source pixels combine with the destination.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// ColorScale multiplies source colors per channel. The zero value is treated
// as identity so a bare DrawImageOptions draws the image untouched.
type ColorScale struct {
	R, G, B, A float32
	set        bool
}

// ScaleAlpha multiplies all channels by a (premultiplied alpha).
func (c *ColorScale) ScaleAlpha(a float32) {
	c.init()
	c.R *= a
	c.G *= a
	c.B *= a
	c.A *= a
}

// ScaleWithColor multiplies the scale by clr, used for tinting.
func (c *ColorScale) ScaleWithColor(clr color.Color) {
	c.init()
	r, g, b, a := clr.RGBA()
	if a == 0 {
		c.R, c.G, c.B, c.A = 0, 0, 0, 0
		return
	}
	c.R *= float32(r) / 0xffff
	c.G *= float32(g) / 0xffff
	c.B *= float32(b) / 0xffff
	c.A *= float32(a) / 0xffff
}

// IsIdentity reports whether the scale leaves colors untouched.
func (c ColorScale) IsIdentity() bool {
	return !c.set || (c.R == 1 && c.G == 1 && c.B == 1 && c.A == 1)
}

// Values returns the per-channel multipliers.
func (c ColorScale) Values() (r, g, b, a float32) {
	if !c.set {
		return 1, 1, 1, 1
	}
	return c.R, c.G, c.B, c.A
}

func (c *ColorScale) init() {
	if !c.set {
		c.R, c.G, c.B, c.A = 1, 1, 1, 1
		c.set = true
	}
}

// Font selects one of the embedded typefaces.
type Font int

const (
	FontMono Font = iota
	FontSans
	FontBold
)

// Align controls horizontal placement of text relative to x.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// TextOptions describe how a string is drawn.
type TextOptions struct {
	Size        float64
	Color       color.Color
	Font        Font
	Align       Align
	LineSpacing float64 // pixels between baselines; 0 means Size*1.4
	Alpha       float64 // 0 means opaque
}

// LineHeight returns the distance between consecutive lines.
func (o TextOptions) LineHeight() float64 {
	if o.LineSpacing > 0 {
		return o.LineSpacing
	}
	return o.Size * 1.4
}

// InputManager handles input from the user (keyboard, mouse, touch).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	AnyKeyJustPressed() bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	Wheel() (dx, dy float64)

	// Touch input
	TouchIDs() []TouchID
	JustPressedTouchIDs() []TouchID
	IsTouchJustReleased(id TouchID) bool
	TouchPosition(id TouchID) (x, y int)

	// IsFocused reports whether the window currently has input focus.
	IsFocused() bool
}

// TouchID identifies one finger for the lifetime of a touch.
type TouchID int

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyPageUp
	KeyPageDown
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// PointerJustPressed reports a left click or a new touch this tick, and
// where it happened.
func PointerJustPressed(in InputManager) (x, y int, ok bool) {
	if in.IsMouseButtonJustPressed(MouseButtonLeft) {
		x, y = in.GetCursorPosition()
		return x, y, true
	}
	if ids := in.JustPressedTouchIDs(); len(ids) > 0 {
		x, y = in.TouchPosition(ids[0])
		return x, y, true
	}
	return 0, 0, false
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	SetFullscreen(fullscreen bool)
	SetTPS(tps int)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
