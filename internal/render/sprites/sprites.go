// Package sprites holds the palette for world props and generates the few
// billboard images the raycaster blits.
package sprites

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"chosenoffset.com/deepdive/internal/world/entity"
)

// Palette defines the colours of everything drawn on top of the terrain.
var Palette = struct {
	Limestone   color.NRGBA
	Metal       color.NRGBA
	Quartz      color.NRGBA
	Peeper      color.NRGBA
	Bladderfish color.NRGBA
	Kelp        color.NRGBA
	CoralFan    color.NRGBA

	PodHull   color.NRGBA
	PodWindow color.NRGBA
	PodLight  color.NRGBA
	Guide     color.NRGBA
	GuideLine color.NRGBA

	WreckHull   color.NRGBA
	WreckRust   color.NRGBA
	WreckLights color.NRGBA

	Sun    color.NRGBA
	Planet color.NRGBA
	Wave   color.NRGBA

	Particle     color.NRGBA
	Hand         color.NRGBA
	Finger       color.NRGBA
	ReticleFill  color.NRGBA
	ReticleCross color.NRGBA
}{
	Limestone:   color.NRGBA{140, 140, 145, 255},
	Metal:       color.NRGBA{180, 100, 50, 255},
	Quartz:      color.NRGBA{200, 220, 255, 179},
	Peeper:      color.NRGBA{255, 200, 90, 230},
	Bladderfish: color.NRGBA{180, 220, 200, 200},
	Kelp:        color.NRGBA{40, 140, 70, 220},
	CoralFan:    color.NRGBA{230, 90, 140, 220},

	PodHull:   color.NRGBA{200, 50, 60, 255},
	PodWindow: color.NRGBA{100, 150, 200, 255},
	PodLight:  color.NRGBA{255, 200, 100, 230},
	Guide:     color.NRGBA{0, 255, 100, 204},
	GuideLine: color.NRGBA{0, 255, 100, 128},

	WreckHull:   color.NRGBA{150, 150, 160, 255},
	WreckRust:   color.NRGBA{120, 70, 50, 255},
	WreckLights: color.NRGBA{255, 170, 60, 255},

	Sun:    color.NRGBA{255, 255, 200, 230},
	Planet: color.NRGBA{180, 120, 200, 153},
	Wave:   color.NRGBA{100, 180, 255, 77},

	Particle:     color.NRGBA{200, 230, 255, 51},
	Hand:         color.NRGBA{200, 170, 140, 230},
	Finger:       color.NRGBA{180, 150, 120, 230},
	ReticleFill:  color.NRGBA{0, 255, 0, 77},
	ReticleCross: color.NRGBA{0, 255, 0, 153},
}

// Shape is how a point entity is drawn.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeFish
	ShapeFrond
)

// Style returns the colour and shape for an entity type.
func Style(t entity.Type) (color.NRGBA, Shape) {
	switch t {
	case entity.Limestone:
		return Palette.Limestone, ShapeSquare
	case entity.Metal:
		return Palette.Metal, ShapeCircle
	case entity.Quartz:
		return Palette.Quartz, ShapeCircle
	case entity.Peeper:
		return Palette.Peeper, ShapeFish
	case entity.Bladderfish:
		return Palette.Bladderfish, ShapeFish
	case entity.Kelp:
		return Palette.Kelp, ShapeFrond
	case entity.CoralFan:
		return Palette.CoralFan, ShapeFrond
	default:
		return Palette.WreckHull, ShapeSquare
	}
}

// WreckSize is the pixel size of the generated wreck billboard.
const (
	WreckWidth  = 256
	WreckHeight = 128
)

// Wreck draws the crashed ship silhouette: a listing hull with a broken bow,
// rust streaks and a few lit portholes, on a transparent background.
func Wreck() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, WreckWidth, WreckHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)

	hull := Palette.WreckHull
	for x := 0; x < WreckWidth; x++ {
		t := float64(x) / WreckWidth
		// Deck line slopes down toward the stern; the bow is snapped off.
		top := int(30 + 40*t + 6*math.Sin(t*9))
		bottom := WreckHeight - 8
		if t > 0.82 {
			top += int((t - 0.82) * 300)
		}
		for y := max(top, 0); y < bottom; y++ {
			c := hull
			if (x/9+y/23)%7 == 0 {
				c = Palette.WreckRust
			}
			img.Set(x, y, Darken(c, 0.7+0.3*float64(bottom-y)/float64(bottom-top+1)))
		}
	}

	// Superstructure
	for y := 12; y < 40; y++ {
		for x := 40; x < 90; x++ {
			img.Set(x, y, Darken(hull, 0.85))
		}
	}

	// Portholes
	for i := 0; i < 8; i++ {
		cx, cy := 50+i*20, 60+i*3
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				if dx*dx+dy*dy <= 4 {
					img.Set(cx+dx, cy+dy, Palette.WreckLights)
				}
			}
		}
	}
	return img
}

// Pod draws a small front view of the lifepod.
func Pod() *image.RGBA {
	const w, h = 48, 64
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x-w/2)/(w/2), float64(y-h/2)/(h/2)
			if dx*dx+dy*dy <= 1 {
				img.Set(x, y, Palette.PodHull)
			}
		}
	}
	for y := h / 4; y < h/4+h/3; y++ {
		for x := w / 4; x < w/4+w/2; x++ {
			img.Set(x, y, Palette.PodWindow)
		}
	}
	return img
}

// Darken returns a darker version of a color
func Darken(c color.NRGBA, factor float64) color.NRGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.NRGBA, factor float64) color.NRGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.NRGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

// WithAlpha replaces the alpha channel.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return c
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// GenerateAndSave writes every generated billboard into dir.
func GenerateAndSave(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sprite directory: %w", err)
	}
	images := []struct {
		name string
		img  image.Image
	}{
		{"wreck.png", Wreck()},
		{"pod.png", Pod()},
	}
	var written []string
	for _, it := range images {
		path := filepath.Join(dir, it.name)
		if err := SavePNG(it.img, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", it.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
