package material

import (
	"testing"

	"github.com/rt1we/go-raytracer/pkg/core"
)

func testHit(normal core.Vec3) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		T:         1.0,
		FrontFace: true,
	}
}

func TestLambertian_AlwaysScatters(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(42)
	hit := testHit(core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 1))

	for i := 0; i < 100; i++ {
		result, scattered := mat.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian should always scatter")
		}
		if result.Scattered.Direction.NearZero() {
			t.Fatal("Scattered direction should never be near zero")
		}
	}
}

func TestLambertian_Attenuation(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.1)
	mat := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	result, _ := mat.Scatter(ray, testHit(core.NewVec3(0, 1, 0)), sampler)
	if result.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
	}
}

func TestLambertian_PreservesRayTime(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(42)
	ray := core.NewRayAt(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.6)

	result, _ := mat.Scatter(ray, testHit(core.NewVec3(0, 1, 0)), sampler)
	if result.Scattered.Time != 0.6 {
		t.Errorf("Expected scattered ray time 0.6, got %f", result.Scattered.Time)
	}
}

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	mat := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewSeededSampler(42)
	normal := core.NewVec3(0, 1, 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Normal plus a unit vector can graze but never point into the surface
	for i := 0; i < 1000; i++ {
		result, _ := mat.Scatter(ray, testHit(normal), sampler)
		if result.Scattered.Direction.Dot(normal) < -1e-9 {
			t.Fatalf("Scatter %d points into the surface", i)
		}
	}
}

func TestChecker_Pattern(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewChecker(1.0, even, odd)

	uv := core.NewVec2(0, 0)
	if got := checker.Evaluate(uv, core.NewVec3(0.5, 0.5, 0.5)); got != even {
		t.Errorf("Expected even color at origin cell, got %v", got)
	}
	if got := checker.Evaluate(uv, core.NewVec3(1.5, 0.5, 0.5)); got != odd {
		t.Errorf("Expected odd color one cell over, got %v", got)
	}
	if got := checker.Evaluate(uv, core.NewVec3(1.5, 1.5, 0.5)); got != even {
		t.Errorf("Expected even color two cells over, got %v", got)
	}
}
