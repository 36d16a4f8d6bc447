// Package raycast renders the first-person view: one ray per screen column
// marched across the terrain height field, then billboarded entities and
// landmarks, then underwater post effects and the reticle.
package raycast

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/render/lighting"
	"chosenoffset.com/deepdive/internal/render/sprites"
	"chosenoffset.com/deepdive/internal/settings"
	"chosenoffset.com/deepdive/internal/world/entity"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

// Terrain is the height field as seen by the raycaster. Lookup reports false
// outside the generated grid; such samples are treated as empty water.
type Terrain interface {
	Lookup(x, z float64) (terrain.Cell, bool)
}

// Config holds the projection constants.
type Config struct {
	Clearance   float64 `json:"clearance"`    // hit threshold between eye and seabed
	WallScale   float64 `json:"wall_scale"`   // k in height = screen / (dist * k)
	PitchScale  float64 `json:"pitch_scale"`  // pixels per radian of pitch for terrain
	EntityScale float64 `json:"entity_scale"` // pixels per unit of dy/dist and pitch for billboards

	EntityMinSize float64 `json:"entity_min_size"`
	EntitySizeK   float64 `json:"entity_size_k"` // prop size is max(min, k/dist)

	PropVisibility  float64 `json:"prop_visibility"`
	PodVisibility   float64 `json:"pod_visibility"`
	WreckVisibility float64 `json:"wreck_visibility"`
	WreckMinY       float64 `json:"wreck_min_y"` // wreck is only visible above this height

	BearingMargin float64 `json:"bearing_margin"`
	WreckMargin   float64 `json:"wreck_margin"`
	GuideDistance float64 `json:"guide_distance"` // pod label and guide line beyond this

	Lighting lighting.Config `json:"lighting"`
}

// DefaultConfig returns the stock projection constants.
func DefaultConfig() Config {
	return Config{
		Clearance:       1.5,
		WallScale:       0.5,
		PitchScale:      250,
		EntityScale:     200,
		EntityMinSize:   8,
		EntitySizeK:     50,
		PropVisibility:  30,
		PodVisibility:   40,
		WreckVisibility: 100,
		WreckMinY:       -5,
		BearingMargin:   0.5,
		WreckMargin:     0.3,
		GuideDistance:   5,
		Lighting:        lighting.DefaultConfig(),
	}
}

// View is everything one frame reads. It is a snapshot; the renderer never
// writes back to the world.
type View struct {
	Player   player.State
	Settings settings.Settings
	Terrain  Terrain
	Entities []entity.Entity
	Time     time.Duration // since session start, drives wave animation
}

// Sprite is an entity that survived culling, with its screen projection.
type Sprite struct {
	Entity entity.Entity
	Proj   Projection
}

// FrameStats counts what a frame did.
type FrameStats struct {
	Columns   int
	Hits      int
	Projected int
	Culled    int // skipped by the visibility cutoff before projection
	Particles int
}

// stageTagger is implemented by recording renderers in tests.
type stageTagger interface {
	Tag(stage string)
}

// Renderer draws frames through a backend-neutral render.Renderer.
type Renderer struct {
	gfx render.Renderer
	cfg Config
	rng *core.RNG

	wreck render.Image
}

// New creates a raycaster. rng drives particle placement.
func New(gfx render.Renderer, cfg Config, rng *core.RNG) *Renderer {
	if rng == nil {
		rng = core.NewRNG(1)
	}
	return &Renderer{gfx: gfx, cfg: cfg, rng: rng}
}

// Config returns the projection constants.
func (r *Renderer) Config() Config { return r.cfg }

func (r *Renderer) stage(name string) {
	if t, ok := r.gfx.(stageTagger); ok {
		t.Tag(name)
	}
}

// Render draws one frame of v onto dst. A nil or empty surface is skipped.
func (r *Renderer) Render(dst render.Image, v View) FrameStats {
	var stats FrameStats
	if dst == nil || r.gfx == nil {
		return stats
	}
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return stats
	}

	set := v.Settings.Normalized()
	prof := set.Profile()
	amb := lighting.AmbientAt(v.Player.Pos.Y(), r.cfg.Lighting)
	cam := CameraFor(v.Player, set.FOV, w, h)

	r.stage("background")
	r.drawBackground(dst, v, amb, w, h)

	r.stage("terrain")
	if v.Terrain != nil {
		r.drawColumns(dst, v, cam, amb, prof, &stats)
	}

	r.stage("entities")
	list, culled := r.DrawList(v, w, h)
	stats.Culled = culled
	stats.Projected = len(list)
	for _, s := range list {
		r.drawSprite(dst, cam, s)
	}

	r.stage("post")
	if amb.Underwater {
		stats.Particles = r.drawPostEffects(dst, v, amb, prof, w, h)
	}

	r.stage("reticle")
	r.drawReticle(dst, w, h)
	r.stage("")
	return stats
}

// DrawList returns the entities to draw in registry order, with projections.
// Entities past their visibility distance are dropped before any projection
// is computed; the second result counts them.
func (r *Renderer) DrawList(v View, w, h int) ([]Sprite, int) {
	cam := CameraFor(v.Player, v.Settings.Normalized().FOV, w, h)
	var out []Sprite
	culled := 0
	for _, e := range v.Entities {
		limit, margin := r.visibility(e, v.Player)
		if limit <= 0 || e.HorizontalDist(cam.Pos) >= limit {
			culled++
			continue
		}
		p, ok := Project(cam, e.Pos, margin, r.cfg.EntityScale)
		if !ok {
			continue
		}
		if e.Kind != entity.KindLandmark && (p.X < -50 || p.X > float64(w)+50) {
			continue
		}
		out = append(out, Sprite{Entity: e, Proj: p})
	}
	return out, culled
}

// visibility returns the cutoff distance and bearing margin for e.
func (r *Renderer) visibility(e entity.Entity, p player.State) (float64, float64) {
	switch e.Type {
	case entity.EscapePod:
		return r.cfg.PodVisibility, r.cfg.BearingMargin
	case entity.Wreck:
		if p.Pos.Y() <= r.cfg.WreckMinY {
			return 0, 0
		}
		return r.cfg.WreckVisibility, r.cfg.WreckMargin
	default:
		return r.cfg.PropVisibility, r.cfg.BearingMargin
	}
}

// backgroundBands is the number of strips used to approximate a gradient.
const backgroundBands = 24

func (r *Renderer) drawBackground(dst render.Image, v View, amb lighting.Ambient, w, h int) {
	fw := float32(w)
	half := float64(h) / 2

	if amb.Underwater {
		r.gradient(dst, 0, float64(h), fw, amb.Top, amb.Bottom, 1)
		return
	}

	// Sky over the top half, the sea from the water line down.
	p := v.Player
	r.gradient(dst, 0, half/2, fw, lighting.SkyTop, lighting.SkyMid, 1)
	r.gradient(dst, half/2, half, fw, lighting.SkyMid, lighting.SkyHorizon, 1)
	r.gfx.FillRect(dst, 0, float32(half), fw, float32(half), lighting.Opaque(lighting.AirFog))

	r.gfx.FillCircle(dst, fw*0.75, float32(half*0.3), 40, sprites.Palette.Sun)
	r.gfx.FillCircle(dst, fw*0.15, float32(half*0.4), 60, sprites.Palette.Planet)

	waterLine := half - p.Pos.Y()*80 + p.Rot.Pitch*r.cfg.PitchScale
	if waterLine < float64(h) {
		top := math.Max(0, waterLine)
		r.gradient(dst, top, float64(h), fw, lighting.SurfaceWaterTop, lighting.SurfaceWaterBottom, 0.8)
	}

	ms := float64(v.Time.Milliseconds())
	for i := 0; i < 5; i++ {
		fi := float64(i)
		waveY := waterLine + math.Sin(ms/500+fi*30)*3
		waveX := math.Mod(ms/50+fi*50, float64(w))
		r.gfx.FillEllipse(dst, float32(waveX), float32(waveY), 30, 8, 0, sprites.Palette.Wave)
	}
}

// gradient paints a vertical two-stop gradient between y0 and y1 in bands.
func (r *Renderer) gradient(dst render.Image, y0, y1 float64, w float32, top, bottom colorful.Color, alpha float64) {
	if y1 <= y0 {
		return
	}
	band := (y1 - y0) / backgroundBands
	for i := 0; i < backgroundBands; i++ {
		t := float64(i) / (backgroundBands - 1)
		c := lighting.NRGBA(lighting.Gradient(top, bottom, t), alpha)
		// Overlap by a pixel so bands never leave seams.
		r.gfx.FillRect(dst, 0, float32(y0+float64(i)*band), w, float32(band+1), c)
	}
}

// drawColumns casts one ray per stride of screen columns, left to right.
func (r *Renderer) drawColumns(dst render.Image, v View, cam Camera, amb lighting.Ambient, prof settings.Profile, stats *FrameStats) {
	w, h := cam.Width, cam.Height
	fh := float64(h)
	half := fh / 2
	stride := max(1, prof.ColumnStride)
	steps := max(2, prof.MarchSteps)
	fwd, right := cam.Rot.Forward(), cam.Rot.Right()
	spread := math.Tan(cam.FOV / 2)

	for x := 0; x < w; x += stride {
		stats.Columns++
		cameraX := 2*float64(x)/float64(w) - 1
		dir := fwd.Add(right.Mul(cameraX * spread))

		for step := 1; step < steps; step++ {
			dist := float64(step) / float64(steps) * prof.RenderDistance
			sx := cam.Pos.X() + dir.X()*dist
			sz := cam.Pos.Z() + dir.Y()*dist
			cell, ok := v.Terrain.Lookup(sx, sz)
			if !ok {
				continue
			}
			if cam.Pos.Y()-cell.Height >= r.cfg.Clearance {
				continue
			}

			wallH := math.Min(fh, fh/(dist*r.cfg.WallScale))
			top := half - wallH/2 + cam.Rot.Pitch*r.cfg.PitchScale
			shade := 1 - float64(step)/float64(steps)*0.7
			fog := math.Min(1, dist/prof.RenderDistance)
			c := lighting.Shade(lighting.MaterialColor(cell.Material), shade, fog, amb.Fog)
			r.gfx.FillRect(dst, float32(x), float32(top), float32(stride), float32(wallH), lighting.Opaque(c))
			stats.Hits++
			break
		}
	}
}

func (r *Renderer) drawSprite(dst render.Image, cam Camera, s Sprite) {
	switch s.Entity.Type {
	case entity.EscapePod:
		r.drawPod(dst, cam, s)
	case entity.Wreck:
		r.drawWreck(dst, cam, s)
	default:
		r.drawProp(dst, s)
	}
}

func (r *Renderer) drawProp(dst render.Image, s Sprite) {
	size := math.Max(r.cfg.EntityMinSize, r.cfg.EntitySizeK/s.Proj.Dist)
	x, y := float32(s.Proj.X), float32(s.Proj.Y)
	fs := float32(size)
	clr, shape := sprites.Style(s.Entity.Type)

	switch shape {
	case sprites.ShapeSquare:
		r.gfx.FillRect(dst, x-fs/2, y-fs/2, fs, fs, clr)
	case sprites.ShapeCircle:
		r.gfx.FillCircle(dst, x, y, fs/2, clr)
	case sprites.ShapeFish:
		r.gfx.FillEllipse(dst, x, y, fs/2, fs/4, 0, clr)
		r.gfx.FillCircle(dst, x+fs/4, y-fs/16, fs/12+1, sprites.Darken(clr, 0.3))
	case sprites.ShapeFrond:
		r.gfx.FillEllipse(dst, x, y-fs/2, fs/5, fs, 0, clr)
	}
}

func (r *Renderer) drawPod(dst render.Image, cam Camera, s Sprite) {
	d := s.Proj.Dist
	pw := math.Max(20, 120/d)
	ph := math.Max(30, 180/d)
	x, y := s.Proj.X, s.Proj.Y

	r.gfx.FillRect(dst, float32(x-pw/2), float32(y), float32(pw), float32(ph), sprites.Palette.PodHull)
	r.gfx.FillRect(dst, float32(x-pw/4), float32(y+ph*0.2), float32(pw/2), float32(ph*0.25), sprites.Palette.PodWindow)
	r.gfx.FillCircle(dst, float32(x), float32(y), float32(math.Max(2, pw/10)), sprites.Palette.PodLight)

	if d <= r.cfg.GuideDistance {
		return
	}
	label := fmt.Sprintf("%s [%dm]", s.Entity.Label, int(math.Round(d)))
	tw, _ := r.gfx.MeasureText(label, 1)
	r.gfx.DrawText(dst, label, int(x)-tw/2, int(y)-14, sprites.Palette.Guide, 1)
	cx, cy := float32(cam.Width)/2, float32(cam.Height)/2
	r.gfx.StrokeLine(dst, cx, cy, float32(x), float32(y), 1, sprites.Palette.GuideLine)
}

func (r *Renderer) drawWreck(dst render.Image, cam Camera, s Sprite) {
	if r.wreck == nil {
		r.wreck = r.gfx.NewImageFromImage(sprites.Wreck())
	}
	d := s.Proj.Dist
	ww := math.Max(100, 800/d)
	wh := math.Max(50, 400/d)
	half := float64(cam.Height) / 2
	y := half - wh/2 + cam.Rot.Pitch*r.cfg.EntityScale
	if cam.Pos.Y() > 0 {
		y -= cam.Pos.Y() * 30
	}

	op := &render.DrawImageOptions{}
	op.GeoM.Scale(ww/sprites.WreckWidth, wh/sprites.WreckHeight)
	op.GeoM.Translate(s.Proj.X-ww/2, y)
	op.Alpha = float32(1 - 0.5*d/r.cfg.WreckVisibility)
	dst.DrawImage(r.wreck, op)

	if d > r.cfg.GuideDistance && s.Entity.Label != "" {
		tw, _ := r.gfx.MeasureText(s.Entity.Label, 1)
		r.gfx.DrawText(dst, s.Entity.Label, int(s.Proj.X)-tw/2, int(y)-14, sprites.Palette.WreckLights, 1)
	}
}

// drawPostEffects paints particles, the vignette and the hand. It returns the
// number of particles drawn.
func (r *Renderer) drawPostEffects(dst render.Image, v View, amb lighting.Ambient, prof settings.Profile, w, h int) int {
	fw, fh := float64(w), float64(h)
	for i := 0; i < prof.Particles; i++ {
		px, py := r.rng.Range(0, fw), r.rng.Range(0, fh)
		size := r.rng.Range(0.5, 3.5)
		r.gfx.FillCircle(dst, float32(px), float32(py), float32(size), sprites.Palette.Particle)
	}

	r.drawVignette(dst, amb.Depth, w, h)
	r.drawHand(dst, v.Player.HandPhase, w, h)
	return prof.Particles
}

// vignetteRings is how many strokes approximate the radial gradient.
const vignetteRings = 16

func (r *Renderer) drawVignette(dst render.Image, depth float64, w, h int) {
	cx, cy := float64(w)/2, float64(h)/2
	radius := float64(w) * 0.6
	if radius <= 0 {
		return
	}
	edge := lighting.VignetteAlpha(depth)
	corner := math.Hypot(cx, cy)
	width := radius / vignetteRings

	// Transparent at the centre, full edge alpha at radius and beyond.
	for rr := width / 2; rr < math.Max(radius, corner)+width; rr += width {
		a := edge * math.Min(1, rr/radius)
		clr := color.NRGBA{A: uint8(math.Round(a * a / edge * 255))}
		if clr.A == 0 {
			continue
		}
		r.gfx.StrokeCircle(dst, float32(cx), float32(cy), float32(rr), float32(width+1), clr)
	}
}

func (r *Renderer) drawHand(dst render.Image, phase float64, w, h int) {
	handY := float64(h) - 100 + math.Sin(phase)*15
	handX := float64(w)/2 + math.Cos(phase*1.5)*40

	r.gfx.FillEllipse(dst, float32(handX), float32(handY), 25, 35, math.Pi/6, sprites.Palette.Hand)
	for i := 0; i < 5; i++ {
		fx := handX + float64(i-2)*8 + math.Cos(phase)*3
		fy := handY + 30 + math.Sin(phase)*5
		r.gfx.FillRect(dst, float32(fx), float32(fy), 5, 20, sprites.Palette.Finger)
	}
}

func (r *Renderer) drawReticle(dst render.Image, w, h int) {
	cx, cy := float32(w)/2, float32(h)/2
	r.gfx.FillCircle(dst, cx, cy, 4, sprites.Palette.ReticleFill)
	r.gfx.StrokeLine(dst, cx-15, cy, cx+15, cy, 2, sprites.Palette.ReticleCross)
	r.gfx.StrokeLine(dst, cx, cy-15, cx, cy+15, 2, sprites.Palette.ReticleCross)
}

// Dispose releases images created by the renderer.
func (r *Renderer) Dispose() {
	if r.wreck != nil {
		r.wreck.Dispose()
		r.wreck = nil
	}
}
