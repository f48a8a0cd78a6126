package geometry

import (
	"math"
	"testing"

	"github.com/rt1we/go-raytracer/pkg/core"
)

func TestBox_Hit(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), testMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{"front face", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), true, 4},
		{"right face", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), true, 4},
		{"top face", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), true, 4},
		{"miss above", core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestBox_HitFromInside(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), testMaterial())

	hit, isHit := box.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit from inside")
	}
	if hit.FrontFace {
		t.Error("Hit from inside should be a back face")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
}

func TestBox_Rotated(t *testing.T) {
	// 45 degrees around Y: the box corner swings into the ray's path
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0), testMaterial())

	// Straight down the Z axis still hits
	if _, isHit := box.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 1000); !isHit {
		t.Error("Expected hit through the rotated box center")
	}

	// The rotated diagonal reaches sqrt(2) along X, past the unrotated extent
	if _, isHit := box.Hit(core.NewRay(core.NewVec3(1.3, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 1000); !isHit {
		t.Error("Expected hit on the swung-out corner region")
	}

	// But not past the diagonal
	if _, isHit := box.Hit(core.NewRay(core.NewVec3(1.5, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 1000); isHit {
		t.Error("Expected miss beyond the rotated diagonal")
	}
}

func TestBox_BoundingBox(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(1, 2, 3), core.NewVec3(1, 2, 3), testMaterial())
	bb := box.BoundingBox()

	// Padded slightly by the quad boxes
	if bb.Min.X > 0 || bb.Max.X < 2 || bb.Min.Y > 0 || bb.Max.Y < 4 || bb.Min.Z > 0 || bb.Max.Z < 6 {
		t.Errorf("Bounding box does not cover the solid: min=%v max=%v", bb.Min, bb.Max)
	}
}
