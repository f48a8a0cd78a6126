package geometry

import (
	"fmt"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray
// intersection via an internal BVH
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	bbox      core.AABB
	material  material.Material
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices in faces forms one triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	triangles := make([]Shape, 0, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]

		if i0 < 0 || i0 >= len(vertices) ||
			i1 < 0 || i1 >= len(vertices) ||
			i2 < 0 || i2 >= len(vertices) {
			return nil, fmt.Errorf("face %d references vertex out of range", i)
		}

		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat))
	}

	mesh := &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
		material:  mat,
	}
	mesh.bbox = mesh.bvh.BoundingBox()

	return mesh, nil
}

// Hit tests if a ray intersects any triangle in the mesh
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the overall bounding box of the mesh
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bbox
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}
