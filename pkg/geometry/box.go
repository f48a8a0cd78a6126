package geometry

import (
	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3 // Center point of the box
	Size     core.Vec3 // Half-extents along each axis
	Rotation core.Vec3 // Rotation angles in radians (X, Y, Z)
	Material material.Material
	faces    [6]*Quad  // The 6 quad faces
	bbox     core.AABB // Cached bounding box
}

// NewBox creates a new box with the given center, half-extents, rotation, and
// material. Rotation is in radians around X, Y, Z axes (applied in that order).
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, mat material.Material) *Box {
	return NewBox(center, size, core.NewVec3(0, 0, 0), mat)
}

// generateFaces creates the 6 quad faces of the box
func (b *Box) generateFaces() {
	// The 8 corners of a unit box centered at the origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	// Scale by half-extents, rotate, translate to center
	for i := range corners {
		corners[i] = core.NewVec3(
			corners[i].X*b.Size.X,
			corners[i].Y*b.Size.Y,
			corners[i].Z*b.Size.Z,
		)
		corners[i] = corners[i].Rotate(b.Rotation)
		corners[i] = corners[i].Add(b.Center)
	}

	// Each face is a corner plus two edge vectors, normals facing outward
	b.faces[0] = NewQuad(corners[4], corners[5].Subtract(corners[4]), corners[7].Subtract(corners[4]), b.Material) // front (Z+)
	b.faces[1] = NewQuad(corners[1], corners[0].Subtract(corners[1]), corners[2].Subtract(corners[1]), b.Material) // back (Z-)
	b.faces[2] = NewQuad(corners[5], corners[1].Subtract(corners[5]), corners[6].Subtract(corners[5]), b.Material) // right (X+)
	b.faces[3] = NewQuad(corners[0], corners[4].Subtract(corners[0]), corners[3].Subtract(corners[0]), b.Material) // left (X-)
	b.faces[4] = NewQuad(corners[7], corners[6].Subtract(corners[7]), corners[3].Subtract(corners[7]), b.Material) // top (Y+)
	b.faces[5] = NewQuad(corners[0], corners[1].Subtract(corners[0]), corners[4].Subtract(corners[0]), b.Material) // bottom (Y-)

	b.bbox = b.faces[0].BoundingBox()
	for _, face := range b.faces[1:] {
		b.bbox = b.bbox.Union(face.BoundingBox())
	}
}

// Hit tests if a ray intersects any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}
