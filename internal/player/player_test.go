package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestForwardAndRightAreOrthogonal(t *testing.T) {
	for _, yaw := range []float64{0, 0.5, math.Pi / 2, 2, -3, 10} {
		r := Rotation{Yaw: yaw}
		f, rt := r.Forward(), r.Right()
		if d := f.Dot(rt); math.Abs(d) > 1e-12 {
			t.Errorf("Expected orthogonal vectors at yaw %v, got dot %v", yaw, d)
		}
		if math.Abs(f.Len()-1) > 1e-12 || math.Abs(rt.Len()-1) > 1e-12 {
			t.Errorf("Expected unit vectors at yaw %v", yaw)
		}
	}

	// Yaw 0 faces +z and right is +x.
	r := Rotation{}
	if r.Forward() != (mgl64.Vec2{0, 1}) || r.Right() != (mgl64.Vec2{1, 0}) {
		t.Errorf("Expected forward +z and right +x, got %v and %v", r.Forward(), r.Right())
	}
}

func TestDepthAndUnderwater(t *testing.T) {
	p := New(mgl64.Vec3{0, -12, 0})
	if !p.Underwater() {
		t.Error("Expected player to be underwater")
	}
	if p.Depth() != 12 {
		t.Errorf("Expected depth 12, got %v", p.Depth())
	}

	p.Pos[1] = 0.5
	if p.Underwater() || p.Depth() != 0 {
		t.Errorf("Expected surfaced player at depth 0, got %v", p.Depth())
	}
}
