package sprites

import (
	"image/png"
	"os"
	"testing"

	"chosenoffset.com/deepdive/internal/world/entity"
)

func TestWreckHasOpaqueHullAndTransparentSky(t *testing.T) {
	img := Wreck()
	if got := img.RGBAAt(WreckWidth/2, WreckHeight-10); got.A == 0 {
		t.Error("Expected opaque hull near the keel")
	}
	if got := img.RGBAAt(WreckWidth-5, 2); got.A != 0 {
		t.Errorf("Expected transparent sky above the bow, got %v", got)
	}
}

func TestStyleCoversEveryPropType(t *testing.T) {
	for _, typ := range []entity.Type{entity.Limestone, entity.Metal, entity.Quartz, entity.Peeper, entity.Bladderfish, entity.Kelp, entity.CoralFan} {
		c, _ := Style(typ)
		if c.A == 0 {
			t.Errorf("Expected visible colour for %v", typ)
		}
	}
	if _, shape := Style(entity.Limestone); shape != ShapeSquare {
		t.Errorf("Expected limestone drawn as a square, got %v", shape)
	}
}

func TestGenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	paths, err := GenerateAndSave(dir)
	if err != nil {
		t.Fatalf("Failed to generate sprites: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(paths))
	}
	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatalf("Failed to open %s: %v", paths[0], err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Expected a valid PNG, got %v", err)
	}
}

func TestDarkenLighten(t *testing.T) {
	c := Palette.Metal
	if d := Darken(c, 0.5); d.R != c.R/2 || d.A != c.A {
		t.Errorf("Expected half red with same alpha, got %v", d)
	}
	if l := Lighten(c, 1); l.R != 255 || l.G != 255 || l.B != 255 {
		t.Errorf("Expected white, got %v", l)
	}
}

func TestPodPaintsWindowOverHull(t *testing.T) {
	img := Pod()
	want := Palette.PodWindow
	if got := img.RGBAAt(24, 20); got.R != want.R || got.G != want.G || got.B != want.B || got.A != 255 {
		t.Errorf("Expected window colour %v, got %v", want, got)
	}
	if got := img.RGBAAt(24, 60); got.R != Palette.PodHull.R || got.A != 255 {
		t.Errorf("Expected hull colour %v, got %v", Palette.PodHull, got)
	}
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("Expected transparent corner, got %v", got)
	}
}
