// Package terrain provides the seabed height field: a grid of elevations and
// surface materials generated once per session and sampled by the integrator
// and the raycaster.
package terrain

import (
	"fmt"
	"math"

	"chosenoffset.com/deepdive/internal/core"
)

// Material is the surface tag of a terrain cell.
type Material uint8

const (
	Sand Material = iota
	Rock
	Coral
	Kelp
	Grass
)

// String returns the material name.
func (m Material) String() string {
	switch m {
	case Sand:
		return "sand"
	case Rock:
		return "rock"
	case Coral:
		return "coral"
	case Kelp:
		return "kelp"
	case Grass:
		return "grass"
	default:
		return fmt.Sprintf("material(%d)", m)
	}
}

// Cell is a single sample of the height field.
type Cell struct {
	Height   float64
	Material Material
}

// Config controls world size and the shape of the seabed.
type Config struct {
	Size     int     `json:"size"`      // Cells per side
	CellSize float64 `json:"cell_size"` // World units per cell

	// Basin around the landing site
	BasinX          float64 `json:"basin_x"`
	BasinZ          float64 `json:"basin_z"`
	BasinRadius     float64 `json:"basin_radius"`
	CenterElevation float64 `json:"center_elevation"`
	EdgeElevation   float64 `json:"edge_elevation"`

	// Undulating seabed outside the basin
	NoiseScale  float64 `json:"noise_scale"`
	NoiseOffset float64 `json:"noise_offset"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the landing-site layout: a 25 unit basin at (60, 60)
// inside a 160x160 seabed.
func DefaultConfig() Config {
	return Config{
		Size:            160,
		CellSize:        1,
		BasinX:          60,
		BasinZ:          60,
		BasinRadius:     25,
		CenterElevation: -2,
		EdgeElevation:   -5,
		NoiseScale:      0.6,
		NoiseOffset:     -5,
		Seed:            4546,
	}
}

// Validate reports configuration values the generator cannot work with.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("terrain size must be positive, got %d", c.Size)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("terrain cell size must be positive, got %v", c.CellSize)
	}
	if c.BasinRadius < 0 {
		return fmt.Errorf("basin radius must not be negative, got %v", c.BasinRadius)
	}
	return nil
}

// Formula is the closed-form elevation at (x, z). It is a pure function of its
// inputs: the same coordinate always yields the same height.
func (c Config) Formula(x, z float64) float64 {
	d := math.Hypot(x-c.BasinX, z-c.BasinZ)
	if d < c.BasinRadius {
		return c.CenterElevation + (d/c.BasinRadius)*(c.EdgeElevation-c.CenterElevation)
	}
	n1 := math.Sin(x*0.08) * math.Cos(z*0.08)
	n2 := math.Sin(x*0.04+z*0.04) * 2.5
	n3 := math.Sin(x*0.015) * math.Cos(z*0.015) * 5
	return (n1+n2+n3)*c.NoiseScale + c.NoiseOffset
}

// InBasin reports whether (x, z) lies inside the landing basin.
func (c Config) InBasin(x, z float64) bool {
	return math.Hypot(x-c.BasinX, z-c.BasinZ) < c.BasinRadius
}

// Field is a grid-backed height field. Heights are stored on grid vertices and
// bilinearly interpolated; materials are stored per cell. Both are fixed once
// Generate returns.
type Field struct {
	cfg       Config
	heights   []float64  // (Size+1)^2 vertices, row-major by z
	materials []Material // Size^2 cells, row-major by z
}

// Generate builds the grid in O(Size²). Material tiebreaks are drawn from a
// generator seeded with cfg.Seed and cached per cell, so lookups never
// re-randomize.
func Generate(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.Size
	f := &Field{
		cfg:       cfg,
		heights:   make([]float64, (n+1)*(n+1)),
		materials: make([]Material, n*n),
	}

	for iz := 0; iz <= n; iz++ {
		for ix := 0; ix <= n; ix++ {
			f.heights[iz*(n+1)+ix] = cfg.Formula(float64(ix)*cfg.CellSize, float64(iz)*cfg.CellSize)
		}
	}

	rng := core.NewRNG(cfg.Seed)
	for iz := 0; iz < n; iz++ {
		for ix := 0; ix < n; ix++ {
			cx := (float64(ix) + 0.5) * cfg.CellSize
			cz := (float64(iz) + 0.5) * cfg.CellSize
			f.materials[iz*n+ix] = pickMaterial(cfg, cx, cz, cfg.Formula(cx, cz), rng.Float64())
		}
	}

	return f, nil
}

// pickMaterial chooses a surface tag from elevation bands, using roll in [0,1)
// to break ties inside a band.
func pickMaterial(cfg Config, x, z, elevation, roll float64) Material {
	if cfg.InBasin(x, z) {
		return Sand
	}
	switch {
	case elevation >= -4.5:
		if roll < 0.55 {
			return Coral
		}
		return Rock
	case elevation >= -6.5:
		switch {
		case roll < 0.4:
			return Rock
		case roll < 0.7:
			return Kelp
		default:
			return Grass
		}
	default:
		if roll < 0.5 {
			return Sand
		}
		return Kelp
	}
}

// Config returns the configuration the field was generated from.
func (f *Field) Config() Config { return f.cfg }

// Bounds returns the world-space extent covered by the grid.
func (f *Field) Bounds() (minX, minZ, maxX, maxZ float64) {
	extent := float64(f.cfg.Size) * f.cfg.CellSize
	return 0, 0, extent, extent
}

// InBounds reports whether (x, z) lies inside the generated grid.
func (f *Field) InBounds(x, z float64) bool {
	minX, minZ, maxX, maxZ := f.Bounds()
	return x >= minX && z >= minZ && x < maxX && z < maxZ
}

// Lookup samples the grid. ok is false outside the grid (and for non-finite
// coordinates); callers treat that as "no terrain".
func (f *Field) Lookup(x, z float64) (Cell, bool) {
	if !f.InBounds(x, z) {
		return Cell{}, false
	}

	n := f.cfg.Size
	gx := x / f.cfg.CellSize
	gz := z / f.cfg.CellSize
	ix := min(int(gx), n-1)
	iz := min(int(gz), n-1)
	tx := gx - float64(ix)
	tz := gz - float64(iz)

	stride := n + 1
	h00 := f.heights[iz*stride+ix]
	h10 := f.heights[iz*stride+ix+1]
	h01 := f.heights[(iz+1)*stride+ix]
	h11 := f.heights[(iz+1)*stride+ix+1]
	h0 := h00 + (h10-h00)*tx
	h1 := h01 + (h11-h01)*tx

	return Cell{
		Height:   h0 + (h1-h0)*tz,
		Material: f.materials[iz*n+ix],
	}, true
}

// HeightAt returns the elevation and material at (x, z). Outside the grid it
// falls back to the closed-form formula with Rock, which is still
// deterministic.
func (f *Field) HeightAt(x, z float64) (float64, Material) {
	if c, ok := f.Lookup(x, z); ok {
		return c.Height, c.Material
	}
	return f.cfg.Formula(x, z), Rock
}

// ClampToBounds returns the nearest coordinate that lies inside the grid.
func (f *Field) ClampToBounds(x, z float64) (float64, float64) {
	minX, minZ, maxX, maxZ := f.Bounds()
	// Keep strictly inside the half-open extent.
	eps := f.cfg.CellSize * 1e-6
	return math.Max(minX, math.Min(maxX-eps, x)), math.Max(minZ, math.Min(maxZ-eps, z))
}
