package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/lookingback/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct {
	sources map[render.Font]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

type faceKey struct {
	font render.Font
	size float64
}

// NewRenderer creates a new Ebiten-based render. The Go fonts are embedded,
// so a failure here means the binary itself is broken.
func NewRenderer() (render.Renderer, error) {
	r := &EbitenRenderer{
		sources: make(map[render.Font]*text.GoTextFaceSource),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
	for font, ttf := range map[render.Font][]byte{
		render.FontMono: gomono.TTF,
		render.FontSans: goregular.TTF,
		render.FontBold: gobold.TTF,
	} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to load font %d: %w", font, err)
		}
		r.sources[font] = src
	}
	log.Printf("[Font] Go Mono, Go Regular, Go Bold (embedded)")
	return r, nil
}

// NewImage creates a new image with the given dimensions.
func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(width, height)}
}

// NewImageFromImage uploads a CPU-side image (e.g. a generated texture).
func (r *EbitenRenderer) NewImageFromImage(src image.Image) render.Image {
	return &EbitenImage{img: ebiten.NewImageFromImage(src)}
}

// FillRect draws a filled rectangle on the destination image.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

// StrokeRect draws a rectangle outline on the destination image.
func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

// FillCircle draws a filled circle on the destination image.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

// StrokeCircle draws a circle outline on the destination image.
func (r *EbitenRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(unwrap(dst), x, y, radius, strokeWidth, clr, true)
}

// DrawText draws text with its top edge at y. Align decides whether x is
// the left edge, the center or the right edge of each line.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y float64, opts render.TextOptions) {
	if str == "" {
		return
	}
	face := r.face(opts)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = opts.LineHeight()
	switch opts.Align {
	case render.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case render.AlignEnd:
		op.PrimaryAlign = text.AlignEnd
	}
	clr := opts.Color
	if clr == nil {
		clr = color.White
	}
	op.ColorScale.ScaleWithColor(clr)
	if opts.Alpha > 0 && opts.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(opts.Alpha))
	}
	text.Draw(unwrap(dst), str, face, op)
}

// MeasureText measures the width and height of text drawn with opts.
func (r *EbitenRenderer) MeasureText(str string, opts render.TextOptions) (width, height float64) {
	return text.Measure(str, r.face(opts), opts.LineHeight())
}

func (r *EbitenRenderer) face(opts render.TextOptions) *text.GoTextFace {
	size := opts.Size
	if size <= 0 {
		size = 12
	}
	key := faceKey{font: opts.Font, size: size}
	if f, ok := r.faces[key]; ok {
		return f
	}
	src, ok := r.sources[opts.Font]
	if !ok {
		src = r.sources[render.FontMono]
	}
	f := &text.GoTextFace{Source: src, Size: size}
	r.faces[key] = f
	return f
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

func unwrap(img render.Image) *ebiten.Image {
	return img.(*EbitenImage).img
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// SubImage returns a sub-image of the image.
func (i *EbitenImage) SubImage(r image.Rectangle) render.Image {
	return &EbitenImage{img: i.img.SubImage(r).(*ebiten.Image)}
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawImage draws the source image onto this image.
func (i *EbitenImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	srcImg := unwrap(src)

	if opts == nil {
		i.img.DrawImage(srcImg, nil)
		return
	}

	ebitenOpts := &ebiten.DrawImageOptions{}
	a, b, c, d, tx, ty := opts.GeoM.Elements()
	ebitenOpts.GeoM.SetElement(0, 0, a)
	ebitenOpts.GeoM.SetElement(0, 1, b)
	ebitenOpts.GeoM.SetElement(1, 0, c)
	ebitenOpts.GeoM.SetElement(1, 1, d)
	ebitenOpts.GeoM.SetElement(0, 2, tx)
	ebitenOpts.GeoM.SetElement(1, 2, ty)

	if !opts.ColorScale.IsIdentity() {
		r, g, b, a := opts.ColorScale.Values()
		ebitenOpts.ColorScale.Scale(r, g, b, a)
	}
	if opts.Blend == render.BlendAdditive {
		ebitenOpts.Blend = ebiten.BlendLighter
	}

	i.img.DrawImage(srcImg, ebitenOpts)
}

// GetEbitenImage returns the underlying ebiten.Image.
// This is useful for interop with ebiten-specific code.
func (i *EbitenImage) GetEbitenImage() *ebiten.Image {
	return i.img
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct {
	touches []ebiten.TouchID
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	return ebiten.IsKeyPressed(keyToEbitenKey(key))
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// AnyKeyJustPressed reports whether any key went down this frame.
func (m *EbitenInputManager) AnyKeyJustPressed() bool {
	return len(inpututil.AppendJustPressedKeys(nil)) > 0
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustPressed returns whether the button went down this frame.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// Wheel returns the scroll offset for this frame.
func (m *EbitenInputManager) Wheel() (dx, dy float64) {
	return ebiten.Wheel()
}

// TouchIDs returns the fingers currently on the screen.
func (m *EbitenInputManager) TouchIDs() []render.TouchID {
	m.touches = ebiten.AppendTouchIDs(m.touches[:0])
	return convertTouchIDs(m.touches)
}

// JustPressedTouchIDs returns the fingers that touched down this frame.
func (m *EbitenInputManager) JustPressedTouchIDs() []render.TouchID {
	return convertTouchIDs(inpututil.AppendJustPressedTouchIDs(nil))
}

// IsTouchJustReleased reports whether the finger lifted this frame.
func (m *EbitenInputManager) IsTouchJustReleased(id render.TouchID) bool {
	return inpututil.IsTouchJustReleased(ebiten.TouchID(id))
}

// TouchPosition returns the position of a touch.
func (m *EbitenInputManager) TouchPosition(id render.TouchID) (x, y int) {
	return ebiten.TouchPosition(ebiten.TouchID(id))
}

// IsFocused reports whether the window has focus.
func (m *EbitenInputManager) IsFocused() bool {
	return ebiten.IsFocused()
}

func convertTouchIDs(ids []ebiten.TouchID) []render.TouchID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]render.TouchID, len(ids))
	for i, id := range ids {
		out[i] = render.TouchID(id)
	}
	return out
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyW:
		return ebiten.KeyW
	case render.KeyA:
		return ebiten.KeyA
	case render.KeyS:
		return ebiten.KeyS
	case render.KeyD:
		return ebiten.KeyD
	case render.KeyUp:
		return ebiten.KeyArrowUp
	case render.KeyDown:
		return ebiten.KeyArrowDown
	case render.KeyLeft:
		return ebiten.KeyArrowLeft
	case render.KeyRight:
		return ebiten.KeyArrowRight
	case render.KeySpace:
		return ebiten.KeySpace
	case render.KeyEnter:
		return ebiten.KeyEnter
	case render.KeyEscape:
		return ebiten.KeyEscape
	case render.KeyPageUp:
		return ebiten.KeyPageUp
	case render.KeyPageDown:
		return ebiten.KeyPageDown
	default:
		return 0
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetFullscreen toggles fullscreen mode.
func (e *EbitenEngine) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// SetTPS sets the fixed update rate.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game   render.Game
	screen EbitenImage
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.screen.img = screen
	a.game.Draw(&a.screen)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
