package integrator

import (
	"math"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// Epsilon offsets the minimum hit distance above zero so scattered rays
// don't re-hit the surface they left ("shadow acne")
const Epsilon = 0.001

// PathTracer implements unidirectional Monte Carlo path tracing: each ray
// is followed through scatter events until it is absorbed, escapes to the
// background, or exhausts the depth budget
type PathTracer struct{}

// NewPathTracer creates a new path tracing integrator
func NewPathTracer() *PathTracer {
	return &PathTracer{}
}

// RayColor computes the color for a single ray by recursive light transport
func (pt *PathTracer) RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	// Depth budget exhausted, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		return scene.Background(ray)
	}

	// Emitted light from the hit material, if any
	colorEmitted := emittedLight(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, scene, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}
