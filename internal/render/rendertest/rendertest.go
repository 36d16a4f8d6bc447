// Package rendertest provides a recording renderer for tests that assert on
// draw order rather than pixels.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/deepdive/internal/render"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // "fill", "rect", "circle", "stroke-circle", "ellipse", "line", "text", "image"
	Tag   string // set by the caller via Renderer.Tag
	X, Y  float64
	W, H  float64
	Color color.Color
	Text  string
}

// Image is a fake surface that records what is drawn onto it.
type Image struct {
	W, H     int
	Ops      []Op
	disposed bool
}

// NewImage creates a recording surface of the given size.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h}
}

// Bounds returns the surface rectangle.
func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }

// Size returns the surface dimensions.
func (i *Image) Size() (int, int) { return i.W, i.H }

// Fill records a full-surface fill.
func (i *Image) Fill(clr color.Color) {
	i.Ops = append(i.Ops, Op{Kind: "fill", W: float64(i.W), H: float64(i.H), Color: clr})
}

// Clear forgets recorded operations.
func (i *Image) Clear() { i.Ops = nil }

// DrawImage records a blit at the transformed origin.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := Op{Kind: "image"}
	if opts != nil {
		op.X, op.Y = opts.GeoM.Apply(0, 0)
	}
	if src != nil {
		w, h := src.Size()
		op.W, op.H = float64(w), float64(h)
	}
	i.Ops = append(i.Ops, op)
}

// Dispose marks the image as released.
func (i *Image) Dispose() { i.disposed = true }

// Disposed reports whether Dispose was called.
func (i *Image) Disposed() bool { return i.disposed }

// Kinds returns the recorded op kinds in order.
func (i *Image) Kinds() []string {
	out := make([]string, len(i.Ops))
	for n, op := range i.Ops {
		out[n] = op.Kind
	}
	return out
}

// Tagged returns the recorded ops carrying tag.
func (i *Image) Tagged(tag string) []Op {
	var out []Op
	for _, op := range i.Ops {
		if op.Tag == tag {
			out = append(out, op)
		}
	}
	return out
}

// Renderer records shape calls onto *Image targets. The current tag is stamped
// on every op so tests can tell which stage drew what.
type Renderer struct {
	tag string
}

// NewRenderer creates a recording renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Tag sets the label stamped on subsequent ops.
func (r *Renderer) Tag(tag string) { r.tag = tag }

func (r *Renderer) record(dst render.Image, op Op) {
	img, ok := dst.(*Image)
	if !ok || img == nil {
		return
	}
	op.Tag = r.tag
	img.Ops = append(img.Ops, op)
}

// NewImage creates a new recording image.
func (r *Renderer) NewImage(w, h int) render.Image { return NewImage(w, h) }

// NewImageFromImage creates a recording image with src's size.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	r.record(dst, Op{Kind: "rect", X: float64(x), Y: float64(y), W: float64(w), H: float64(h), Color: clr})
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.record(dst, Op{Kind: "circle", X: float64(x), Y: float64(y), W: float64(radius * 2), H: float64(radius * 2), Color: clr})
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius, width float32, clr color.Color) {
	r.record(dst, Op{Kind: "stroke-circle", X: float64(x), Y: float64(y), W: float64(radius * 2), H: float64(radius * 2), Color: clr})
}

func (r *Renderer) FillEllipse(dst render.Image, cx, cy, rx, ry float32, rotation float64, clr color.Color) {
	r.record(dst, Op{Kind: "ellipse", X: float64(cx), Y: float64(cy), W: float64(rx * 2), H: float64(ry * 2), Color: clr})
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, width float32, clr color.Color) {
	r.record(dst, Op{Kind: "line", X: float64(x0), Y: float64(y0), W: float64(x1 - x0), H: float64(y1 - y0), Color: clr})
}

func (r *Renderer) DrawText(dst render.Image, s string, x, y int, clr color.Color, scale float64) {
	r.record(dst, Op{Kind: "text", X: float64(x), Y: float64(y), Color: clr, Text: s})
}

func (r *Renderer) MeasureText(s string, scale float64) (int, int) {
	return len(s) * 7, 13
}
