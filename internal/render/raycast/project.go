package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/player"
)

// Projection is where a world point lands on screen.
type Projection struct {
	X, Y    float64 // screen position
	Dist    float64 // horizontal distance from the camera
	Bearing float64 // angle from the view direction, in (-pi, pi]
}

// Camera is the pose and lens used for projection.
type Camera struct {
	Pos    mgl64.Vec3
	Rot    player.Rotation
	FOV    float64
	Width  int
	Height int
}

// CameraFor builds a camera from player state.
func CameraFor(p player.State, fov float64, w, h int) Camera {
	return Camera{Pos: p.Pos, Rot: p.Rot, FOV: fov, Width: w, Height: h}
}

// Bearing returns the horizontal angle from the camera's forward direction to
// target, normalized to (-pi, pi]. The angle is measured in the same frame as
// the forward vector (sin yaw, cos yaw), so a point straight ahead has
// bearing zero and points to the right are positive. This is atan2(dx, dz)
// rather than atan2(dz, dx), which would be offset by a quarter turn.
func Bearing(cam Camera, target mgl64.Vec3) float64 {
	dx, dz := target.X()-cam.Pos.X(), target.Z()-cam.Pos.Z()
	return normalizeAngle(math.Atan2(dx, dz) - cam.Rot.Yaw)
}

// Project maps target to the screen. It reports false when the point is
// behind the camera, outside the field of view plus margin, or too close to
// project stably. scale converts the vertical angle to pixels and is also
// applied to pitch.
func Project(cam Camera, target mgl64.Vec3, margin, scale float64) (Projection, bool) {
	dx, dz := target.X()-cam.Pos.X(), target.Z()-cam.Pos.Z()
	dist := math.Hypot(dx, dz)
	if dist < 1e-6 || cam.Width <= 0 || cam.Height <= 0 {
		return Projection{}, false
	}

	bearing := Bearing(cam, target)
	if math.Abs(bearing) > cam.FOV/2+margin || math.Abs(bearing) >= math.Pi/2 {
		return Projection{}, false
	}

	w, h := float64(cam.Width), float64(cam.Height)
	dy := target.Y() - cam.Pos.Y()
	return Projection{
		X:       w/2 + math.Tan(bearing)*w/(2*math.Tan(cam.FOV/2)),
		Y:       h/2 - (dy/dist)*scale + cam.Rot.Pitch*scale,
		Dist:    dist,
		Bearing: bearing,
	}, true
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
