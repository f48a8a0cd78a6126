package geometry

import (
	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection within (tMin, tMax), or false
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns the axis-aligned bounding box of the shape
	// over the full shutter interval
	BoundingBox() core.AABB
}
