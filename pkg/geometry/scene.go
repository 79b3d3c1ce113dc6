package geometry

import (
	"github.com/go-trace-lab/spheretracer/pkg/core"
)

// Scene is an ordered collection of hittable objects.
// Order matters only when two hits land at exactly the same t:
// a later object overrides an earlier one only when strictly closer.
type Scene struct {
	Objects []core.Hittable
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// Add appends an object to the scene
func (s *Scene) Add(object core.Hittable) {
	s.Objects = append(s.Objects, object)
}

// Hit finds the closest intersection across all objects within (tMin, tMax].
// The scan shrinks tMax to the closest hit found so far, so each object
// only reports hits that improve on the current best.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range s.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			// Keep the earlier object on an exact tie
			if closestHit != nil && hit.T >= closestHit.T {
				continue
			}
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
