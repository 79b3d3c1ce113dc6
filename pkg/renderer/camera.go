package renderer

import (
	"math"

	"github.com/go-trace-lab/spheretracer/pkg/core"
)

// CameraConfig contains the extrinsic and optical camera parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position in world space
	LookAt      core.Vec3 // Point the camera is aimed at
	Up          core.Vec3 // World-space up reference for the basis
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera maps normalized image-plane coordinates to world-space rays.
// All viewport geometry is derived once at construction; GetRay is a
// pure function of its arguments afterwards.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from the given configuration.
// The viewport rectangle sits at unit focal distance along the view axis.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backward, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GetRay generates a ray for normalized coordinates (s, t) where
// 0 <= s,t <= 1. s=0 is the left edge of the image, t=0 the bottom edge.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
