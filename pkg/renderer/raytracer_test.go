package renderer

import (
	"math"
	"testing"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/geometry"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// testScene is a minimal renderer.Scene for driver tests
type testScene struct {
	camera     *Camera
	shapes     *geometry.List
	background core.Vec3
}

func newTestScene(t *testing.T, background core.Vec3, shapes ...geometry.Shape) *testScene {
	t.Helper()
	camera, err := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &testScene{
		camera:     camera,
		shapes:     geometry.NewList(shapes...),
		background: background,
	}
}

func (s *testScene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.shapes.Hit(ray, tMin, tMax)
}

func (s *testScene) Background(ray core.Ray) core.Vec3 {
	return s.background
}

func (s *testScene) GetCamera() *Camera {
	return s.camera
}

func testConfig() SamplingConfig {
	return SamplingConfig{
		Width:           32,
		Height:          32,
		SamplesPerPixel: 4,
		MaxDepth:        10,
		Seed:            42,
		TileSize:        8,
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SamplingConfig)
	}{
		{"zero width", func(c *SamplingConfig) { c.Width = 0 }},
		{"negative height", func(c *SamplingConfig) { c.Height = -1 }},
		{"zero samples", func(c *SamplingConfig) { c.SamplesPerPixel = 0 }},
		{"zero depth", func(c *SamplingConfig) { c.MaxDepth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}

	if err := testConfig().Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
}

func TestNewRaytracer_RejectsUnpreparedScene(t *testing.T) {
	scene := &testScene{shapes: geometry.NewList()}
	if _, err := NewRaytracer(scene, testConfig(), nil); err == nil {
		t.Error("Expected error for scene without a camera")
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) *Framebuffer {
		scene := newTestScene(t, core.NewVec3(0.5, 0.6, 0.7),
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(1.5, 0, -4), 1, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.2)),
		)
		config := testConfig()
		config.NumWorkers = workers

		rt, err := NewRaytracer(scene, config, core.NewNopLogger())
		if err != nil {
			t.Fatal(err)
		}
		fb, _, err := rt.Render()
		if err != nil {
			t.Fatal(err)
		}
		return fb
	}

	reference := render(1)
	for _, workers := range []int{2, 8} {
		fb := render(workers)
		for i := range reference.Pixels {
			if fb.Pixels[i] != reference.Pixels[i] {
				t.Fatalf("Pixel %d differs with %d workers: %v vs %v",
					i, workers, fb.Pixels[i], reference.Pixels[i])
			}
		}
	}
}

func TestRender_SameSeedSameImage(t *testing.T) {
	render := func() *Framebuffer {
		scene := newTestScene(t, core.NewVec3(0.2, 0.2, 0.2),
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDielectric(1.5)))

		rt, err := NewRaytracer(scene, testConfig(), nil)
		if err != nil {
			t.Fatal(err)
		}
		fb, _, err := rt.Render()
		if err != nil {
			t.Fatal(err)
		}
		return fb
	}

	a, b := render(), render()
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("Pixel %d differs between identical renders", i)
		}
	}
}

func TestRender_DifferentSeedsDiffer(t *testing.T) {
	render := func(seed int64) *Framebuffer {
		scene := newTestScene(t, core.NewVec3(0.5, 0.5, 0.5),
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
		config := testConfig()
		config.Seed = seed

		rt, err := NewRaytracer(scene, config, nil)
		if err != nil {
			t.Fatal(err)
		}
		fb, _, err := rt.Render()
		if err != nil {
			t.Fatal(err)
		}
		return fb
	}

	a, b := render(1), render(2)
	same := true
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical noisy images")
	}
}

func TestRender_EmptySceneIsBackground(t *testing.T) {
	// One sample per pixel makes the average exact: every pixel must be
	// exactly the gamma-corrected background
	background := core.NewVec3(0.25, 0.36, 0.49)
	scene := newTestScene(t, background)

	config := testConfig()
	config.SamplesPerPixel = 1

	rt, err := NewRaytracer(scene, config, nil)
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	expected := background.GammaCorrect(2.0)
	for i, p := range fb.Pixels {
		if p != expected {
			t.Fatalf("Pixel %d: expected %v, got %v", i, expected, p)
		}
	}
}

func TestRender_SphereAgainstUniformBackground(t *testing.T) {
	// A matte sphere dead ahead: the center pixel picks up the sphere,
	// the corners see only the background
	background := core.NewVec3(0.5, 0.5, 0.5)
	scene := newTestScene(t, background,
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2))))

	config := testConfig()
	config.SamplesPerPixel = 1

	rt, err := NewRaytracer(scene, config, nil)
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	expectedBg := background.GammaCorrect(2.0)
	for _, corner := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}} {
		if got := fb.At(corner[0], corner[1]); got != expectedBg {
			t.Errorf("Corner %v: expected background %v, got %v", corner, expectedBg, got)
		}
	}

	center := fb.At(16, 16)
	if center == expectedBg {
		t.Error("Center pixel should differ from the background")
	}
	if center == (core.Vec3{}) {
		t.Error("Lit matte sphere should not render black")
	}
}

func TestRender_BlackBackgroundUnlitSceneIsBlack(t *testing.T) {
	scene := newTestScene(t, core.Vec3{},
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))))

	rt, err := NewRaytracer(scene, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	// No emitters and a black background: nothing can contribute light
	for i, p := range fb.Pixels {
		if p != (core.Vec3{}) {
			t.Fatalf("Pixel %d should be black, got %v", i, p)
		}
	}
}

func TestRender_EmissiveLightsTheScene(t *testing.T) {
	scene := newTestScene(t, core.Vec3{},
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(core.NewVec3(4, 4, 4))))

	rt, err := NewRaytracer(scene, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	center := fb.At(16, 16)
	if center == (core.Vec3{}) {
		t.Error("Pixel facing an emitter should not be black")
	}
	// Clamped after gamma correction
	if center.X > 1 || center.Y > 1 || center.Z > 1 {
		t.Errorf("Pixel values should be clamped to [0,1], got %v", center)
	}
}

func TestRender_StatsAndCallback(t *testing.T) {
	scene := newTestScene(t, core.NewVec3(0.5, 0.5, 0.5))
	config := testConfig()

	rt, err := NewRaytracer(scene, config, nil)
	if err != nil {
		t.Fatal(err)
	}

	var updates int
	var lastCompleted int
	rt.OnTileComplete = func(u TileUpdate) {
		updates++
		if u.Completed <= lastCompleted {
			t.Errorf("Completed counter not increasing: %d after %d", u.Completed, lastCompleted)
		}
		lastCompleted = u.Completed
		if u.Image == nil {
			t.Error("Tile update missing image")
		}
	}

	_, stats, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	wantTiles := 16 // 32x32 image, 8x8 tiles
	if stats.TileCount != wantTiles || updates != wantTiles {
		t.Errorf("Expected %d tiles and callbacks, got %d and %d", wantTiles, stats.TileCount, updates)
	}
	if stats.TotalPixels != 32*32 {
		t.Errorf("Expected %d pixels, got %d", 32*32, stats.TotalPixels)
	}
	if stats.TotalSamples != int64(32*32*config.SamplesPerPixel) {
		t.Errorf("Expected %d samples, got %d", 32*32*config.SamplesPerPixel, stats.TotalSamples)
	}
}

func TestRender_PixelsAreFinite(t *testing.T) {
	scene := newTestScene(t, core.NewVec3(0.7, 0.8, 0.9),
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, -101, -3), 100, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)))

	rt, err := NewRaytracer(scene, testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range fb.Pixels {
		if !p.IsFinite() {
			t.Fatalf("Pixel %d is not finite: %v", i, p)
		}
		if p.X < 0 || p.X > 1 || math.IsNaN(p.Luminance()) {
			t.Fatalf("Pixel %d out of range: %v", i, p)
		}
	}
}
