package scene

import (
	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/geometry"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
)

// Scene bundles the world geometry with the camera parameters and the
// background gradient colors. Construction happens once per render
// request; everything here is read-only during rendering.
type Scene struct {
	World        *geometry.Scene
	CameraConfig renderer.CameraConfig
	TopColor     core.Vec3 // Background gradient at direction.y = +1
	BottomColor  core.Vec3 // Background gradient at direction.y = -1
}

// Hit delegates to the world geometry
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return s.World.Hit(ray, tMin, tMax)
}

// BackgroundColors returns the sky gradient colors
func (s *Scene) BackgroundColors() (top, bottom core.Vec3) {
	return s.TopColor, s.BottomColor
}

// defaultCamera is the camera shared by the built-in scenes:
// at the origin, looking down -Z, 90 degree vertical field of view.
func defaultCamera(aspectRatio float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: aspectRatio,
	}
}
