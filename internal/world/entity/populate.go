package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

// Seabed answers elevation queries. *terrain.Field satisfies it.
type Seabed interface {
	HeightAt(x, z float64) (float64, terrain.Material)
	Bounds() (minX, minZ, maxX, maxZ float64)
}

// PopulateConfig controls initial entity placement.
type PopulateConfig struct {
	Counts map[Type]int `json:"counts"`

	// Scatter radius around the escape pod
	Spread float64 `json:"spread"`

	// Landmark positions (x, y, z)
	PodPos   [3]float64 `json:"pod_pos"`
	WreckPos [3]float64 `json:"wreck_pos"`
}

// DefaultPopulateConfig places the pod in the safe basin and the wreck to the
// north east, with resources scattered around them.
func DefaultPopulateConfig() PopulateConfig {
	return PopulateConfig{
		Counts: map[Type]int{
			Limestone:   30,
			Metal:       20,
			Quartz:      20,
			Peeper:      10,
			Bladderfish: 8,
			Kelp:        30,
			CoralFan:    20,
		},
		Spread:   55,
		PodPos:   [3]float64{60, 0, 60},
		WreckPos: [3]float64{80, 0, 20},
	}
}

// spawnOrder fixes iteration over Counts so placement is reproducible.
var spawnOrder = []Type{Limestone, Metal, Quartz, Peeper, Bladderfish, Kelp, CoralFan}

// Populate builds the starting registry. Landmarks come first, then each type
// in a fixed order. Resources and flora rest just above the seabed; fauna hover
// between the seabed and the surface.
func Populate(rng *core.RNG, bed Seabed, cfg PopulateConfig) *Registry {
	reg := NewRegistry()

	reg.Add(Entity{Kind: KindLandmark, Type: EscapePod, Label: "Lifepod 5", Pos: vec(cfg.PodPos)})
	reg.Add(Entity{Kind: KindLandmark, Type: Wreck, Label: "Aurora", Pos: vec(cfg.WreckPos)})

	minX, minZ, maxX, maxZ := bed.Bounds()
	cx, cz := cfg.PodPos[0], cfg.PodPos[2]

	for _, t := range spawnOrder {
		for range cfg.Counts[t] {
			ang := rng.Range(0, 2*math.Pi)
			dist := math.Sqrt(rng.Float64()) * cfg.Spread
			x := clamp(cx+math.Sin(ang)*dist, minX, maxX-1e-6)
			z := clamp(cz+math.Cos(ang)*dist, minZ, maxZ-1e-6)
			floor, _ := bed.HeightAt(x, z)

			var y float64
			switch t.Kind() {
			case KindFauna:
				y = floor + 2 + rng.Float64()*math.Max(0, -floor-3)
			case KindFlora:
				y = floor + 1
			default:
				y = floor + 0.5
			}

			reg.Add(Entity{Kind: t.Kind(), Type: t, Pos: mgl64.Vec3{x, y, z}})
		}
	}
	return reg
}

func vec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
