package geometry

import (
	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// List is a flat aggregate of shapes. It is itself a Shape, so lists can
// nest inside other aggregates or a BVH.
type List struct {
	Shapes []Shape
}

// NewList creates a list from the given shapes
func NewList(shapes ...Shape) *List {
	return &List{Shapes: shapes}
}

// Add appends a shape to the list
func (l *List) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Hit tests all children and returns the nearest hit. The search interval's
// upper bound shrinks to the nearest hit so far, so later children only
// report closer intersections.
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all child bounding boxes
func (l *List) BoundingBox() core.AABB {
	if len(l.Shapes) == 0 {
		return core.AABB{}
	}

	box := l.Shapes[0].BoundingBox()
	for _, shape := range l.Shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
