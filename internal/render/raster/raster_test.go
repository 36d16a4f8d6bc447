package raster

import (
	"image/color"
	"testing"

	"chosenoffset.com/deepdive/internal/render"
)

var red = color.RGBA{255, 0, 0, 255}

func TestFillRectClipsToBounds(t *testing.T) {
	r := NewRenderer()
	img := NewImage(10, 10)
	r.FillRect(img, -5, -5, 8, 8, red)

	if got := img.Pixels().RGBAAt(2, 2); got != red {
		t.Errorf("Expected red at (2,2), got %v", got)
	}
	if got := img.Pixels().RGBAAt(4, 4); got.A != 0 {
		t.Errorf("Expected transparent at (4,4), got %v", got)
	}
}

func TestFillEllipseCoversCentre(t *testing.T) {
	r := NewRenderer()
	img := NewImage(40, 40)
	r.FillEllipse(img, 20, 20, 10, 4, 0, red)

	if got := img.Pixels().RGBAAt(20, 20); got != red {
		t.Errorf("Expected centre filled, got %v", got)
	}
	if got := img.Pixels().RGBAAt(20, 27); got.A != 0 {
		t.Errorf("Expected outside minor axis empty, got %v", got)
	}
	if got := img.Pixels().RGBAAt(28, 20); got != red {
		t.Errorf("Expected inside major axis filled, got %v", got)
	}
}

func TestBlendHalfAlpha(t *testing.T) {
	r := NewRenderer()
	img := NewImage(4, 4)
	img.Fill(color.RGBA{0, 0, 255, 255})
	r.FillRect(img, 0, 0, 4, 4, color.NRGBA{255, 0, 0, 128})

	got := img.Pixels().RGBAAt(1, 1)
	if got.R < 120 || got.R > 136 || got.B < 120 || got.B > 136 {
		t.Errorf("Expected an even red/blue mix, got %v", got)
	}
}

func TestDrawImageTranslate(t *testing.T) {
	src := NewImage(2, 2)
	src.Fill(red)
	dst := NewImage(10, 10)

	opts := &render.DrawImageOptions{}
	opts.GeoM.Scale(2, 2)
	opts.GeoM.Translate(5, 5)
	dst.DrawImage(src, opts)

	if got := dst.Pixels().RGBAAt(8, 8); got != red {
		t.Errorf("Expected red at (8,8), got %v", got)
	}
	if got := dst.Pixels().RGBAAt(4, 4); got.A != 0 {
		t.Errorf("Expected (4,4) untouched, got %v", got)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	r := NewRenderer()
	img := NewImage(60, 20)
	r.DrawText(img, "DEPTH", 2, 2, color.White, 1)

	lit := 0
	for _, v := range img.Pixels().Pix {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Expected text to mark pixels")
	}
	if w, h := r.MeasureText("DEPTH", 1); w != 35 || h != 13 {
		t.Errorf("Expected 35x13, got %dx%d", w, h)
	}
}
