package material

import (
	"math"

	"github.com/rt1we/go-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point.
	// UV is used for surface textures, point for procedural textures.
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker provides a procedural 3D checkerboard pattern
type Checker struct {
	Scale float64     // Size of one checker cell in world units
	Even  ColorSource // Color for even cells
	Odd   ColorSource // Color for odd cells
}

// NewChecker creates a checkerboard pattern from two solid colors
func NewChecker(scale float64, even, odd core.Vec3) *Checker {
	return &Checker{
		Scale: scale,
		Even:  NewSolidColor(even),
		Odd:   NewSolidColor(odd),
	}
}

// Evaluate returns the checker color for the cell containing the point
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	inv := 1.0 / c.Scale
	sum := int(math.Floor(point.X*inv)) + int(math.Floor(point.Y*inv)) + int(math.Floor(point.Z*inv))
	if sum%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
