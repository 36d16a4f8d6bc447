package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

func TestAddAssignsIDsAndKinds(t *testing.T) {
	r := NewRegistry()
	a := r.Add(Entity{Type: Metal, Pos: mgl64.Vec3{1, -4, 1}})
	b := r.Add(Entity{Type: Peeper, Pos: mgl64.Vec3{2, -3, 2}})

	if a == b {
		t.Fatalf("Expected distinct ids, got %d twice", a)
	}
	e, ok := r.Get(b)
	if !ok {
		t.Fatal("Expected to find peeper")
	}
	if e.Kind != KindFauna {
		t.Errorf("Expected fauna kind, got %v", e.Kind)
	}
	if e.Home != e.Pos {
		t.Errorf("Expected home to default to spawn position, got %v", e.Home)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	r := NewRegistry()
	ids := []int{
		r.Add(Entity{Type: Limestone}),
		r.Add(Entity{Type: Metal}),
		r.Add(Entity{Type: Quartz}),
	}

	if !r.Remove(ids[1]) {
		t.Fatal("Expected remove to succeed")
	}
	if r.Remove(ids[1]) {
		t.Error("Expected second remove of the same id to fail")
	}

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(all))
	}
	if all[0].Type != Limestone || all[1].Type != Quartz {
		t.Errorf("Expected limestone then quartz, got %v then %v", all[0].Type, all[1].Type)
	}
}

func TestNearestRespectsBothRanges(t *testing.T) {
	r := NewRegistry()
	r.Add(Entity{Type: Metal, Pos: mgl64.Vec3{2.5, -4, 0}})
	r.Add(Entity{Type: Quartz, Pos: mgl64.Vec3{1, -10, 0}}) // too deep
	r.Add(Entity{Type: Limestone, Pos: mgl64.Vec3{5, -4, 0}}) // too far

	got, ok := r.Nearest(mgl64.Vec3{0, -4, 0}, 3, 2, KindResource)
	if !ok {
		t.Fatal("Expected a resource in range")
	}
	if got.Type != Metal {
		t.Errorf("Expected metal, got %v", got.Type)
	}

	if _, ok := r.Nearest(mgl64.Vec3{50, -4, 50}, 3, 2, KindResource); ok {
		t.Error("Expected no resource far away")
	}
}

func TestItemFor(t *testing.T) {
	for _, typ := range []Type{Limestone, Metal, Quartz} {
		it, ok := ItemFor(typ)
		if !ok {
			t.Fatalf("Expected item for %v", typ)
		}
		if it.ID != string(typ) {
			t.Errorf("Expected id %q, got %q", typ, it.ID)
		}
	}
	if _, ok := ItemFor(Peeper); ok {
		t.Error("Expected fauna to have no item")
	}
}

func TestWanderStaysOnLeash(t *testing.T) {
	r := NewRegistry()
	id := r.Add(Entity{Type: Bladderfish, Pos: mgl64.Vec3{10, -5, 10}})
	rock := r.Add(Entity{Type: Metal, Pos: mgl64.Vec3{20, -5, 20}})

	cfg := WanderConfig{Speed: 5, Leash: 2}
	rng := core.NewRNG(7)
	for i := 0; i < 500; i++ {
		r.Wander(rng, cfg, 0.5)
	}

	fish, _ := r.Get(id)
	if d := fish.Pos.Sub(fish.Home).Len(); d > cfg.Leash+1e-9 {
		t.Errorf("Expected fish within leash %v, got %v", cfg.Leash, d)
	}
	metal, _ := r.Get(rock)
	if metal.Pos != (mgl64.Vec3{20, -5, 20}) {
		t.Errorf("Expected resources to stay put, got %v", metal.Pos)
	}
}

func TestPopulateIsDeterministic(t *testing.T) {
	field, err := terrain.Generate(terrain.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to generate terrain: %v", err)
	}
	cfg := DefaultPopulateConfig()

	a := Populate(core.NewRNG(1), field, cfg).All()
	b := Populate(core.NewRNG(1), field, cfg).All()
	if len(a) != len(b) {
		t.Fatalf("Expected equal populations, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Expected identical entity %d, got %+v and %+v", i, a[i], b[i])
		}
	}

	reg := Populate(core.NewRNG(1), field, cfg)
	if _, ok := reg.Landmark(EscapePod); !ok {
		t.Error("Expected escape pod landmark")
	}
	if _, ok := reg.Landmark(Wreck); !ok {
		t.Error("Expected wreck landmark")
	}
	if got := reg.Count(Metal); got != cfg.Counts[Metal] {
		t.Errorf("Expected %d metal, got %d", cfg.Counts[Metal], got)
	}
}
