package geometry

import (
	"math"
	"testing"

	"github.com/rt1we/go-raytracer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit quad in the XY plane at z=0
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
	}{
		{"center hit", core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1), true},
		{"corner hit", core.NewVec3(0.01, 0.01, 5), core.NewVec3(0, 0, -1), true},
		{"outside alpha", core.NewVec3(1.5, 0.5, 5), core.NewVec3(0, 0, -1), false},
		{"outside beta", core.NewVec3(0.5, -0.5, 5), core.NewVec3(0, 0, -1), false},
		{"parallel ray", core.NewVec3(0.5, 0.5, 5), core.NewVec3(1, 0, 0), false},
		{"behind origin", core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isHit := quad.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000)
			if isHit != tt.expectHit {
				t.Errorf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
		})
	}
}

func TestQuad_HitRecord(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), testMaterial())
	ray := core.NewRay(core.NewVec3(0.5, 1.0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := quad.Hit(ray, 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-5.0) > 1e-9 {
		t.Errorf("Expected t=5, got %f", hit.T)
	}
	if math.Abs(hit.U-0.25) > 1e-9 || math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected (u,v)=(0.25,0.5), got (%f,%f)", hit.U, hit.V)
	}
	if !hit.FrontFace {
		t.Error("Ray against the normal should hit the front face")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestQuad_BoundingBoxNotDegenerate(t *testing.T) {
	// Axis-aligned quad has zero extent along its normal; the box must
	// still have positive volume for BVH slab tests
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial())
	box := quad.BoundingBox()

	size := box.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		t.Errorf("Expected padded box, got size %v", size)
	}
}
