package scene

import (
	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/geometry"
	"github.com/go-trace-lab/spheretracer/pkg/material"
)

// NewDefaultScene creates the four-sphere showcase scene: a large diffuse
// ground sphere, a diffuse center sphere, and two metal spheres with
// different roughness.
func NewDefaultScene(aspectRatio float64) *Scene {
	world := geometry.NewScene()

	// Materials are shared by reference; many spheres may point at the
	// same instance.
	matGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.1))
	matCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	matLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	matRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	world.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100.0, matGround))
	world.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, matCenter))
	world.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, matLeft))
	world.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, matRight))

	return &Scene{
		World:        world,
		CameraConfig: defaultCamera(aspectRatio),
		TopColor:     core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:  core.NewVec3(1.0, 1.0, 1.0),
	}
}
