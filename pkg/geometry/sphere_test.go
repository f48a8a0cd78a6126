package geometry

import (
	"math"
	"testing"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/material"
)

func testMaterial() material.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected frontFace=%v, got %v", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_PicksSmallestRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	// Entry point at t=4, exit at t=6
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected nearest root t=4, got t=%f", hit.T)
	}
}

func TestSphere_Hit_FallsBackToFarRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Excluding the entry point at t=4 should yield the exit point at t=6
	hit, isHit := sphere.Hit(ray, 5.0, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on far root")
	}
	if math.Abs(hit.T-6.0) > 1e-9 {
		t.Errorf("Expected far root t=6, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Exit point should be a back face hit")
	}
}

func TestSphere_Hit_RespectsTMax(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, 3.0); isHit {
		t.Error("Expected miss when both roots are beyond tMax")
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name      string
		point     core.Vec3
		expectedU float64
		expectedV float64
	}{
		{"north pole", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"south pole", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"equator +x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"equator -x", core.NewVec3(-1, 0, 0), 0.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := sphereUV(tt.point)
			if math.Abs(u-tt.expectedU) > 1e-9 || math.Abs(v-tt.expectedV) > 1e-9 {
				t.Errorf("Expected (%f,%f), got (%f,%f)", tt.expectedU, tt.expectedV, u, v)
			}
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, testMaterial())
	box := sphere.BoundingBox()

	if box.Min != core.NewVec3(0.5, 1.5, 2.5) || box.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Got min=%v max=%v", box.Min, box.Max)
	}
}

func TestSphere_NegativeRadiusBoundingBox(t *testing.T) {
	// Hollow glass spheres use negative radii; the box must stay valid
	sphere := NewSphere(core.NewVec3(0, 0, 0), -0.45, testMaterial())
	if !sphere.BoundingBox().IsValid() {
		t.Error("Negative radius sphere should still have a valid bounding box")
	}
}

func TestSphere_NegativeRadiusFlipsNormals(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	// Geometric normal points inward, so the outer surface reads as back face
	if hit.FrontFace {
		t.Error("Expected back face on the outside of a negative radius sphere")
	}
}
