package render

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrTerminated is returned from Game.Update to end the run loop cleanly.
var ErrTerminated = errors.New("game terminated")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image
	NewImageFromImage(src image.Image) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, w, h float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillEllipse(dst Image, cx, cy, rx, ry float32, rotation float64, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

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
	GeoM GeoM

	// Alpha scales the source opacity; zero means opaque.
	Alpha float32
}

// GeoM is a 2D affine transform applied to source pixels:
//
//	x' = A*x + B*y + Tx
//	y' = C*x + D*y + Ty
//
// The zero value is the identity.
type GeoM struct {
	a1, b, c, d1 float64 // a and d stored minus one so the zero value is identity
	tx, ty       float64
}

// Element returns the matrix entry at row i, column j of the 2x3 matrix.
func (g *GeoM) Element(i, j int) float64 {
	switch {
	case i == 0 && j == 0:
		return g.a1 + 1
	case i == 0 && j == 1:
		return g.b
	case i == 0 && j == 2:
		return g.tx
	case i == 1 && j == 0:
		return g.c
	case i == 1 && j == 1:
		return g.d1 + 1
	case i == 1 && j == 2:
		return g.ty
	}
	return 0
}

// Translate shifts the image by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.tx += tx
	g.ty += ty
}

// Scale scales the image by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	a, d := g.a1+1, g.d1+1
	g.a1 = a*sx - 1
	g.b *= sx
	g.c *= sy
	g.d1 = d*sy - 1
	g.tx *= sx
	g.ty *= sy
}

// Rotate rotates the image by the given angle in radians.
func (g *GeoM) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	a, b, c, d := g.a1+1, g.b, g.c, g.d1+1
	g.a1 = cos*a - sin*c - 1
	g.b = cos*b - sin*d
	g.c = sin*a + cos*c
	g.d1 = sin*b + cos*d - 1
	g.tx, g.ty = cos*g.tx-sin*g.ty, sin*g.tx+cos*g.ty
}

// Reset resets the matrix to identity.
func (g *GeoM) Reset() {
	*g = GeoM{}
}

// Apply transforms a point.
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return (g.a1+1)*x + g.b*y + g.tx, g.c*x + (g.d1+1)*y + g.ty
}

// InputSink receives device events from a backend. *input.Aggregator
// satisfies it.
type InputSink interface {
	KeyDown(name string)
	KeyUp(name string)
	MouseMove(dx, dy float64)
	SetPointerLock(locked bool)
	TouchStart(id int, x, y float64)
	TouchMove(id int, x, y float64)
	TouchEnd(id int)
}

// InputManager polls the backend's devices and forwards what changed since the
// last poll to a sink.
type InputManager interface {
	Poll(sink InputSink)
	PointerLocked() bool
	ReleasePointer()
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

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// Backend bundles the pieces a frontend needs from one graphics library.
type Backend struct {
	Renderer Renderer
	Input    InputManager
	Engine   Engine
}
