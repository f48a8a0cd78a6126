package integrator

import (
	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// Scene is the view of a scene the integrator needs: intersection queries
// and a background color for rays that escape. Declared here to avoid a
// circular import with the scene package.
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	Background(ray core.Ray) core.Vec3
}

// Integrator computes the color contribution of a single ray
type Integrator interface {
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3
}
