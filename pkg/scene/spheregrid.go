package scene

import (
	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/geometry"
	"github.com/rt1we/go-raytracer/pkg/material"
	"github.com/rt1we/go-raytracer/pkg/renderer"
)

// NewSphereGridScene creates the book-cover scene: a grid of small random
// spheres around three large feature spheres, with depth of field and
// motion blur on the small matte spheres. The same seed always produces
// the same scene.
func NewSphereGridScene(seed int64) *Scene {
	s := NewScene(renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  1,
	})
	s.Sampling = renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            seed,
	}

	sampler := core.NewSeededSampler(seed)

	ground := material.NewTexturedLambertian(
		material.NewChecker(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	avoid := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(avoid).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Matte, drifting upward during the shutter interval
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				mat := material.NewLambertian(albedo)
				center1 := center.Add(core.NewVec3(0, 0.5*sampler.Get1D(), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, mat))
			case chooseMat < 0.95:
				// Metal
				albedo := sampler.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				fuzz := 0.5 * sampler.Get1D()
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// Glass
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
