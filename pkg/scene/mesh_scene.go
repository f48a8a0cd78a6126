package scene

import (
	"fmt"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/geometry"
	"github.com/rt1we/go-raytracer/pkg/loaders"
	"github.com/rt1we/go-raytracer/pkg/material"
	"github.com/rt1we/go-raytracer/pkg/renderer"
)

// NewMeshScene loads a glTF model and places it on a checkered ground
// plane under the sky gradient. The camera frames the mesh based on its
// bounding box.
func NewMeshScene(path string) (*Scene, error) {
	mat := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	mesh, err := loaders.LoadGLTF(path, mat)
	if err != nil {
		return nil, fmt.Errorf("mesh scene: %w", err)
	}

	bbox := mesh.BoundingBox()
	center := bbox.Center()
	size := bbox.Size()
	extent := max(size.X, max(size.Y, size.Z))
	if extent <= 0 {
		return nil, fmt.Errorf("mesh scene: degenerate bounding box in %q", path)
	}

	s := NewScene(renderer.CameraConfig{
		Center:      center.Add(core.NewVec3(extent*1.2, extent*0.8, extent*1.6)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 16.0 / 9.0,
	})
	s.Sampling = renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}

	ground := material.NewTexturedLambertian(
		material.NewChecker(extent/4, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	groundY := bbox.Min.Y - extent*1000 - extent*0.001
	s.Add(
		mesh,
		geometry.NewSphere(core.NewVec3(center.X, groundY, center.Z), extent*1000, ground),
	)

	return s, nil
}
