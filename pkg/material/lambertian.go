package material

import (
	"github.com/rt1we/go-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a texture
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The scattered direction is the surface normal plus a uniform random unit
// vector, which matches cosine-weighted reflection off the surface.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// Catch the degenerate case where the random vector cancels the normal
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	scattered := core.Ray{Origin: hit.Point, Direction: scatterDirection, Time: rayIn.Time}
	attenuation := l.Albedo.Evaluate(core.NewVec2(hit.U, hit.V), hit.Point)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}
