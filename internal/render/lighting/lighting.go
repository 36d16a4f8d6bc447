// Package lighting computes the depth-dependent ambient colours, fog and
// material shading the raycaster paints with.
package lighting

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/deepdive/internal/world/terrain"
)

// Config holds the tuning for ambient light.
type Config struct {
	// DepthScale is the depth in metres at which the water is fully dark.
	DepthScale float64 `json:"depth_scale"`

	// FloorShade multiplies the upper ambient tone for the lower gradient stop.
	FloorShade float64 `json:"floor_shade"`
}

// DefaultConfig returns the stock ambient tuning.
func DefaultConfig() Config {
	return Config{DepthScale: 30, FloorShade: 0.3}
}

var (
	ShallowWater = rgb(10, 40, 80)
	DeepWater    = rgb(3, 15, 35)

	SkyTop     = rgb(50, 100, 180)
	SkyMid     = rgb(100, 150, 220)
	SkyHorizon = rgb(150, 200, 255)
	AirFog     = rgb(100, 150, 220)

	SurfaceWaterTop    = rgb(20, 100, 180)
	SurfaceWaterBottom = rgb(10, 60, 120)
)

// materialColors are the base seabed tones.
var materialColors = map[terrain.Material]colorful.Color{
	terrain.Sand:  rgb(180, 165, 120),
	terrain.Coral: rgb(255, 100, 70),
	terrain.Grass: rgb(50, 130, 50),
	terrain.Rock:  rgb(90, 90, 95),
	terrain.Kelp:  rgb(40, 110, 60),
}

// MaterialColor returns the base colour of a seabed material.
func MaterialColor(m terrain.Material) colorful.Color {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return materialColors[terrain.Rock]
}

// DepthFactor maps a signed depth to [0, 1]: 0 at the surface, 1 at scale
// metres and below. Non-finite input yields 1.
func DepthFactor(y, scale float64) float64 {
	if scale <= 0 || math.IsNaN(y) || math.IsInf(y, 0) {
		return 1
	}
	return math.Max(0, math.Min(1, math.Abs(y)/scale))
}

// Ambient is the colour environment for one frame.
type Ambient struct {
	Underwater bool
	Depth      float64 // depth factor in [0,1]

	Top, Bottom colorful.Color // background gradient stops
	Fog         colorful.Color
}

// AmbientAt returns the ambient colours for a camera at height y.
func AmbientAt(y float64, cfg Config) Ambient {
	depth := DepthFactor(y, cfg.DepthScale)
	if y >= 0 {
		return Ambient{Depth: depth, Top: SkyTop, Bottom: SkyHorizon, Fog: AirFog}
	}
	top := ShallowWater.BlendRgb(DeepWater, depth)
	return Ambient{
		Underwater: true,
		Depth:      depth,
		Top:        top,
		Bottom:     Scale(top, cfg.FloorShade),
		Fog:        top,
	}
}

// Shade darkens base by shade and then fogs it toward fog by amount.
// Both factors are clamped to [0, 1].
func Shade(base colorful.Color, shade, fogAmount float64, fog colorful.Color) colorful.Color {
	shade = clamp01(shade)
	fogAmount = clamp01(fogAmount)
	return Scale(base, shade).BlendRgb(fog, fogAmount).Clamped()
}

// Scale multiplies every channel by k.
func Scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Gradient samples a two-stop gradient at t in [0, 1].
func Gradient(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, clamp01(t))
}

// NRGBA converts to a straight-alpha colour with alpha in [0, 1].
func NRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// Opaque converts to an opaque colour.
func Opaque(c colorful.Color) color.NRGBA {
	return NRGBA(c, 1)
}

// VignetteAlpha is the edge darkness of the underwater vignette.
func VignetteAlpha(depth float64) float64 {
	return 0.3 + clamp01(depth)*0.4
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
