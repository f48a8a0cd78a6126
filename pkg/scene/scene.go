package scene

import (
	"fmt"
	"sort"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/geometry"
	"github.com/rt1we/go-raytracer/pkg/material"
	"github.com/rt1we/go-raytracer/pkg/renderer"
)

// Scene contains all elements needed for rendering: geometry, a camera
// configuration, sampling defaults, and a background gradient.
//
// A scene is built by adding shapes, then Preprocess constructs the camera
// and the BVH. After preprocessing the scene satisfies renderer.Scene.
type Scene struct {
	CameraConfig renderer.CameraConfig
	Sampling     renderer.SamplingConfig

	// Background gradient, interpolated by ray direction Y
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3

	shapes []geometry.Shape
	camera *renderer.Camera
	bvh    *geometry.BVH
}

// NewScene creates an empty scene with the given camera configuration
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		CameraConfig:     cameraConfig,
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Add appends shapes to the scene. Must be called before Preprocess.
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.shapes = append(s.shapes, shapes...)
}

// Shapes returns the shapes added so far
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// Preprocess validates the scene and builds the acceleration structures.
// Safe to call more than once; each call rebuilds from the current shapes.
func (s *Scene) Preprocess() error {
	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.camera = camera

	if len(s.shapes) > 0 {
		s.bvh = geometry.NewBVH(s.shapes)
	}

	return nil
}

// GetCamera returns the preprocessed camera, or nil before Preprocess
func (s *Scene) GetCamera() *renderer.Camera {
	return s.camera
}

// Hit tests a ray against the scene geometry
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if s.bvh == nil {
		return nil, false
	}
	return s.bvh.Hit(ray, tMin, tMax)
}

// Background returns the gradient color for a ray that escapes the scene
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return s.BackgroundBottom.Lerp(s.BackgroundTop, t)
}

// GetSamplingConfig returns the scene's default sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.Sampling
}

// builders maps scene names to constructors for the built-in scenes
var builders = map[string]func() (*Scene, error){
	"default": func() (*Scene, error) { return NewDefaultScene(), nil },
	"spheregrid": func() (*Scene, error) {
		return NewSphereGridScene(42), nil
	},
	"cornell": func() (*Scene, error) { return NewCornellScene(), nil },
}

// ByName returns a built-in scene by name
func ByName(name string) (*Scene, error) {
	builder, found := builders[name]
	if !found {
		return nil, fmt.Errorf("scene: unknown scene %q (available: %v)", name, Names())
	}
	return builder()
}

// Names lists the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
