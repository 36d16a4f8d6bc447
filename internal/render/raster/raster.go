// Package raster is a CPU renderer backed by image.RGBA. The terminal frontend
// draws into it and then blits the pixels as character cells.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/deepdive/internal/render"
)

// Renderer draws onto *Image surfaces.
type Renderer struct{}

// NewRenderer creates a software renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Image is an RGBA pixel buffer.
type Image struct {
	px *image.RGBA
}

// NewImage allocates a transparent image.
func NewImage(w, h int) *Image {
	return &Image{px: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// Pixels exposes the backing buffer.
func (i *Image) Pixels() *image.RGBA { return i.px }

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle { return i.px.Bounds() }

// Size returns the width and height of the image.
func (i *Image) Size() (int, int) {
	b := i.px.Bounds()
	return b.Dx(), b.Dy()
}

// Fill replaces every pixel with clr.
func (i *Image) Fill(clr color.Color) {
	draw.Draw(i.px, i.px.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// Clear makes the image transparent.
func (i *Image) Clear() {
	clear(i.px.Pix)
}

// Dispose is a no-op; the buffer is garbage collected.
func (i *Image) Dispose() {}

// DrawImage composites src through opts.GeoM using nearest-neighbour sampling.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	s, ok := src.(*Image)
	if !ok {
		return
	}
	var geo render.GeoM
	alpha := float32(1)
	if opts != nil {
		geo = opts.GeoM
		if opts.Alpha > 0 {
			alpha = opts.Alpha
		}
	}

	sb := s.px.Bounds()
	// Bounding box of the transformed source.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [][2]float64{{0, 0}, {float64(sb.Dx()), 0}, {0, float64(sb.Dy())}, {float64(sb.Dx()), float64(sb.Dy())}} {
		x, y := geo.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	a, b, tx := geo.Element(0, 0), geo.Element(0, 1), geo.Element(0, 2)
	c, d, ty := geo.Element(1, 0), geo.Element(1, 1), geo.Element(1, 2)
	det := a*d - b*c
	if det == 0 {
		return
	}

	area := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).Intersect(i.px.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			// Invert the affine transform at the pixel centre.
			px, py := float64(x)+0.5-tx, float64(y)+0.5-ty
			sx := (d*px - b*py) / det
			sy := (-c*px + a*py) / det
			ix, iy := int(math.Floor(sx))+sb.Min.X, int(math.Floor(sy))+sb.Min.Y
			if !(image.Point{ix, iy}).In(sb) {
				continue
			}
			sc := s.px.RGBAAt(ix, iy)
			if alpha < 1 {
				sc = scaleAlpha(sc, alpha)
			}
			blend(i.px, x, y, sc)
		}
	}
}

// NewImage creates a new image with the given dimensions.
func (r *Renderer) NewImage(w, h int) render.Image { return NewImage(w, h) }

// NewImageFromImage copies src into a new buffer.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	draw.Draw(img.px, img.px.Bounds(), src, b.Min, draw.Src)
	return img
}

// FillRect fills an axis-aligned rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	px := pixels(dst)
	if px == nil || w <= 0 || h <= 0 {
		return
	}
	rect := image.Rect(int(math.Floor(float64(x))), int(math.Floor(float64(y))),
		int(math.Ceil(float64(x+w))), int(math.Ceil(float64(y+h))))
	draw.Draw(px, rect.Intersect(px.Bounds()), image.NewUniform(clr), image.Point{}, draw.Over)
}

// FillCircle fills a circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.FillEllipse(dst, x, y, radius, radius, 0, clr)
}

// StrokeCircle draws a ring of the given width.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius, width float32, clr color.Color) {
	px := pixels(dst)
	if px == nil || radius <= 0 {
		return
	}
	c := toRGBA(clr)
	outer := float64(radius + width/2)
	inner := math.Max(0, float64(radius-width/2))
	cx, cy := float64(x), float64(y)
	area := image.Rect(int(cx-outer)-1, int(cy-outer)-1, int(cx+outer)+2, int(cy+outer)+2).Intersect(px.Bounds())
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for pxx := area.Min.X; pxx < area.Max.X; pxx++ {
			d := math.Hypot(float64(pxx)+0.5-cx, float64(py)+0.5-cy)
			if d <= outer && d >= inner {
				blend(px, pxx, py, c)
			}
		}
	}
}

// FillEllipse fills an ellipse rotated by rotation radians.
func (r *Renderer) FillEllipse(dst render.Image, cx, cy, rx, ry float32, rotation float64, clr color.Color) {
	px := pixels(dst)
	if px == nil || rx <= 0 || ry <= 0 {
		return
	}
	c := toRGBA(clr)
	sinR, cosR := math.Sincos(rotation)
	ext := float64(max(rx, ry))
	fcx, fcy := float64(cx), float64(cy)
	area := image.Rect(int(fcx-ext)-1, int(fcy-ext)-1, int(fcx+ext)+2, int(fcy+ext)+2).Intersect(px.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			dx, dy := float64(x)+0.5-fcx, float64(y)+0.5-fcy
			// Rotate into the ellipse's frame.
			ex := dx*cosR + dy*sinR
			ey := -dx*sinR + dy*cosR
			if (ex*ex)/float64(rx*rx)+(ey*ey)/float64(ry*ry) <= 1 {
				blend(px, x, y, c)
			}
		}
	}
}

// StrokeLine draws a line of the given width.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, width float32, clr color.Color) {
	px := pixels(dst)
	if px == nil {
		return
	}
	c := toRGBA(clr)
	half := math.Max(0.5, float64(width)/2)
	ax, ay, bx, by := float64(x0), float64(y0), float64(x1), float64(y1)
	area := image.Rect(
		int(math.Min(ax, bx)-half)-1, int(math.Min(ay, by)-half)-1,
		int(math.Max(ax, bx)+half)+2, int(math.Max(ay, by)+half)+2,
	).Intersect(px.Bounds())

	vx, vy := bx-ax, by-ay
	lenSq := vx*vx + vy*vy
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			qx, qy := float64(x)+0.5-ax, float64(y)+0.5-ay
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, (qx*vx+qy*vy)/lenSq))
			}
			if math.Hypot(qx-t*vx, qy-t*vy) <= half {
				blend(px, x, y, c)
			}
		}
	}
}

// DrawText draws text with the 7x13 bitmap face. y is the top of the line.
// Scales other than 1 are approximated by the unscaled face.
func (r *Renderer) DrawText(dst render.Image, s string, x, y int, clr color.Color, scale float64) {
	px := pixels(dst)
	if px == nil {
		return
	}
	d := &font.Drawer{
		Dst:  px,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

// MeasureText returns the pixel extent of s.
func (r *Renderer) MeasureText(s string, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w := font.MeasureString(basicfont.Face7x13, s).Ceil()
	return int(float64(w) * scale), int(13 * scale)
}

func pixels(dst render.Image) *image.RGBA {
	if img, ok := dst.(*Image); ok && img != nil {
		return img.px
	}
	return nil
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func scaleAlpha(c color.RGBA, a float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}

// blend composites a premultiplied colour over one pixel.
func blend(dst *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 0 {
		return
	}
	if c.A == 0xff {
		dst.SetRGBA(x, y, c)
		return
	}
	d := dst.RGBAAt(x, y)
	inv := uint32(0xff - c.A)
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(uint32(c.R) + uint32(d.R)*inv/0xff),
		G: uint8(uint32(c.G) + uint32(d.G)*inv/0xff),
		B: uint8(uint32(c.B) + uint32(d.B)*inv/0xff),
		A: uint8(uint32(c.A) + uint32(d.A)*inv/0xff),
	})
}
