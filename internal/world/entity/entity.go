// Package entity holds everything placed in the world besides terrain:
// collectible resources, wandering fauna, static flora and landmarks.
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/inventory"
)

// Kind classifies entities by how the player can interact with them.
type Kind int

const (
	KindResource Kind = iota
	KindFauna
	KindFlora
	KindLandmark
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindFauna:
		return "fauna"
	case KindFlora:
		return "flora"
	case KindLandmark:
		return "landmark"
	default:
		return "unknown"
	}
}

// Type names a concrete entity variety.
type Type string

const (
	Limestone   Type = "limestone"
	Metal       Type = "metal"
	Quartz      Type = "quartz"
	Peeper      Type = "peeper"
	Bladderfish Type = "bladderfish"
	Kelp        Type = "kelp"
	CoralFan    Type = "coral-fan"
	EscapePod   Type = "escape-pod"
	Wreck       Type = "wreck"
)

// Kind returns the kind a type belongs to.
func (t Type) Kind() Kind {
	switch t {
	case Limestone, Metal, Quartz:
		return KindResource
	case Peeper, Bladderfish:
		return KindFauna
	case Kelp, CoralFan:
		return KindFlora
	default:
		return KindLandmark
	}
}

// Entity is a single thing in the world. Pos is (x, y, z) with y the signed
// depth; Home is where fauna wander around.
type Entity struct {
	ID    int
	Kind  Kind
	Type  Type
	Pos   mgl64.Vec3
	Home  mgl64.Vec3
	Label string
}

// HorizontalDist returns the distance to p ignoring depth.
func (e Entity) HorizontalDist(p mgl64.Vec3) float64 {
	return math.Hypot(e.Pos.X()-p.X(), e.Pos.Z()-p.Z())
}

// items maps collectible resource types to their inventory representation.
var items = map[Type]inventory.Item{
	Limestone: {ID: "limestone", Name: "Limestone", Icon: "🪨", Category: inventory.CategoryMaterial},
	Metal:     {ID: "metal", Name: "Metal Salvage", Icon: "⚙️", Category: inventory.CategoryMaterial},
	Quartz:    {ID: "quartz", Name: "Quartz", Icon: "💎", Category: inventory.CategoryMaterial},
}

// ItemFor returns the inventory item a collected entity of type t becomes.
func ItemFor(t Type) (inventory.Item, bool) {
	it, ok := items[t]
	return it, ok
}

// Registry is an ordered collection of entities. Order is insertion order and
// is preserved by Remove so draw order stays stable across frames.
type Registry struct {
	entities []Entity
	nextID   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Add inserts an entity, assigning an id when e.ID is zero. The kind is
// derived from the type when left unset on a non-resource.
func (r *Registry) Add(e Entity) int {
	if e.ID == 0 {
		e.ID = r.nextID
	}
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	if e.Kind == KindResource && e.Type.Kind() != KindResource {
		e.Kind = e.Type.Kind()
	}
	if e.Home == (mgl64.Vec3{}) {
		e.Home = e.Pos
	}
	r.entities = append(r.entities, e)
	return e.ID
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// All returns a snapshot of every entity in registry order.
func (r *Registry) All() []Entity {
	out := make([]Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// Get finds an entity by id.
func (r *Registry) Get(id int) (Entity, bool) {
	for _, e := range r.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Count returns how many entities of type t remain.
func (r *Registry) Count(t Type) int {
	n := 0
	for _, e := range r.entities {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Near returns entities whose horizontal distance to pos is within radius.
func (r *Registry) Near(pos mgl64.Vec3, radius float64) []Entity {
	var out []Entity
	for _, e := range r.entities {
		if e.HorizontalDist(pos) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// Nearest returns the closest entity of the given kind within h horizontally
// and v vertically of pos.
func (r *Registry) Nearest(pos mgl64.Vec3, h, v float64, kind Kind) (Entity, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range r.entities {
		if e.Kind != kind {
			continue
		}
		d := e.HorizontalDist(pos)
		if d >= h || math.Abs(e.Pos.Y()-pos.Y()) >= v {
			continue
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Entity{}, false
	}
	return r.entities[best], true
}

// Remove deletes the entity with the given id. It returns false when no such
// entity exists.
func (r *Registry) Remove(id int) bool {
	for i, e := range r.entities {
		if e.ID == id {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Landmark returns the first landmark of type t.
func (r *Registry) Landmark(t Type) (Entity, bool) {
	for _, e := range r.entities {
		if e.Kind == KindLandmark && e.Type == t {
			return e, true
		}
	}
	return Entity{}, false
}

// WanderConfig tunes fauna drift.
type WanderConfig struct {
	Speed float64 `json:"speed"` // units per second
	Leash float64 `json:"leash"` // max distance from home
}

// DefaultWanderConfig returns gentle drift around each home point.
func DefaultWanderConfig() WanderConfig {
	return WanderConfig{Speed: 0.6, Leash: 6}
}

// Wander nudges every fauna entity by a random step of at most Speed*dt,
// pulling it back toward home once it strays past the leash.
func (r *Registry) Wander(rng *core.RNG, cfg WanderConfig, dt float64) {
	if dt <= 0 || rng == nil {
		return
	}
	step := cfg.Speed * dt
	for i := range r.entities {
		e := &r.entities[i]
		if e.Kind != KindFauna {
			continue
		}

		heading := rng.Range(0, 2*math.Pi)
		delta := mgl64.Vec3{math.Sin(heading) * step, rng.Range(-0.2, 0.2) * step, math.Cos(heading) * step}
		next := e.Pos.Add(delta)

		if off := next.Sub(e.Home); cfg.Leash > 0 && off.Len() > cfg.Leash {
			next = e.Home.Add(off.Normalize().Mul(cfg.Leash))
		}
		e.Pos = next
	}
}
