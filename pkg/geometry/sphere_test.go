package geometry

import (
	"math"
	"testing"

	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/material"
)

func testMaterial() core.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			// The reported normal must always oppose the incoming ray
			if hit.Normal.Dot(tt.rayDirection) >= 0 {
				t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, tt.rayDirection)
			}
		})
	}
}

// A sphere of radius r centered two radii down the ray must be hit at
// distance exactly r, with the normal parallel to (hit point - center).
func TestSphere_Hit_RoundTripDistance(t *testing.T) {
	radii := []float64{0.5, 1.0, 2.5, 100.0}

	for _, r := range radii {
		origin := core.NewVec3(1, 2, 3)
		direction := core.NewVec3(0, 0, -1)
		center := origin.Add(direction.Multiply(2 * r))
		sphere := NewSphere(center, r, testMaterial())

		ray := core.NewRay(origin, direction)
		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

		if !isHit {
			t.Fatalf("radius %f: expected hit", r)
		}
		if math.Abs(hit.T-r) > 1e-9*r {
			t.Errorf("radius %f: expected t=%f, got t=%f", r, r, hit.T)
		}

		// Normal parallel to (point - center): cross product vanishes
		toPoint := hit.Point.Subtract(center)
		if toPoint.Cross(hit.Normal).Length() > 1e-9 {
			t.Errorf("radius %f: normal %v not parallel to point-center %v", r, hit.Normal, toPoint)
		}
	}
}

func TestSphere_Hit_DegenerateRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"zero radius", 0.0},
		{"negative radius", -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, -1), tt.radius, testMaterial())
			// Ray aimed straight at the center
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

			if _, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
				t.Error("Degenerate sphere must never intersect")
			}
		})
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Both roots (t=1 and t=3) are below tMin: no hit
	if _, isHit := sphere.Hit(ray, 5.0, 1000.0); isHit {
		t.Error("Expected no hit when both roots are below tMin")
	}

	// Both roots are above tMax: no hit
	if _, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Error("Expected no hit when both roots are above tMax")
	}

	// The near root is excluded, the far root is in range
	hit, isHit := sphere.Hit(ray, 2.0, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on far root")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Far root should be a back-face hit")
	}
}
