package core

import "math/rand"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter produces a scattered ray and attenuation for an incoming ray.
	// Returns false when the ray is absorbed and the path terminates.
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Per-channel energy attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, always opposing the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The outward normal is flipped for back-face hits so the stored normal
// always opposes the incoming ray.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Hittable interface for anything a ray can intersect
type Hittable interface {
	// Hit tests the ray against the object within (tMin, tMax]
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}
