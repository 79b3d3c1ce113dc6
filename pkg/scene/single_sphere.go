package scene

import (
	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/geometry"
	"github.com/go-trace-lab/spheretracer/pkg/material"
)

// NewSingleSphereScene creates a minimal scene: one diffuse sphere in
// front of the camera against the sky gradient.
func NewSingleSphereScene(aspectRatio float64) *Scene {
	world := geometry.NewScene()
	world.Add(geometry.NewSphere(
		core.NewVec3(0, 0, -1), 0.5,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)),
	))

	return &Scene{
		World:        world,
		CameraConfig: defaultCamera(aspectRatio),
		TopColor:     core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:  core.NewVec3(1.0, 1.0, 1.0),
	}
}
