package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/integrator"
)

// DefaultTileSize is the tile edge length used when none is configured
const DefaultTileSize = 64

// SamplingConfig contains rendering quality parameters
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Monte Carlo samples per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base RNG seed; renders with the same seed are bit-identical
	NumWorkers      int   // Worker goroutines (0 = one per CPU)
	TileSize        int   // Tile edge length in pixels (0 = DefaultTileSize)
}

// Validate checks the configuration for values that would make rendering
// meaningless or crash
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("render: image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("render: samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("render: max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Scene provides the renderer's view of a scene: geometry queries for the
// integrator plus the camera that generates primary rays
type Scene interface {
	integrator.Scene
	GetCamera() *Camera
}

// RenderStats accumulates statistics for a completed render
type RenderStats struct {
	Width        int
	Height       int
	TotalPixels  int64
	TotalSamples int64
	TileCount    int
	Duration     time.Duration
}

// TileUpdate describes one completed tile, delivered to the progress
// callback in completion order
type TileUpdate struct {
	Tile      *Tile
	Image     *image.RGBA
	Completed int
	Total     int
}

// Raytracer renders a scene to a framebuffer using tiled parallel
// path tracing
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger

	// OnTileComplete, if set, is called from the gather goroutine as each
	// tile finishes. Calls are serialized.
	OnTileComplete func(TileUpdate)
}

// NewRaytracer creates a raytracer for the given scene and configuration
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, fmt.Errorf("render: scene is nil")
	}
	if scene.GetCamera() == nil {
		return nil, fmt.Errorf("render: scene has no camera (missing Preprocess?)")
	}
	if logger == nil {
		logger = core.NewNopLogger()
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracer(),
		logger:     logger,
	}, nil
}

// Render renders the full image and returns the framebuffer with
// gamma-corrected colors in [0,1]
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	start := time.Now()

	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, %d tiles",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles))

	pool := NewWorkerPool(rt.config.NumWorkers, len(tiles), rt.renderTile)
	pool.Start()

	for _, tile := range tiles {
		pool.Submit(TileTask{Tile: tile, Framebuffer: fb})
	}

	stats := RenderStats{
		Width:     rt.config.Width,
		Height:    rt.config.Height,
		TileCount: len(tiles),
	}

	var firstErr error
	for completed := 0; completed < len(tiles); completed++ {
		result := <-pool.Results()
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}

		stats.TotalSamples += result.Samples
		stats.TotalPixels += int64(result.Tile.Bounds.Dx() * result.Tile.Bounds.Dy())

		if rt.OnTileComplete != nil {
			rt.OnTileComplete(TileUpdate{
				Tile:      result.Tile,
				Image:     fb.RGBAForBounds(result.Tile.Bounds),
				Completed: completed + 1,
				Total:     len(tiles),
			})
		}
	}
	pool.Close()

	if firstErr != nil {
		return nil, stats, firstErr
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render complete in %v (%d samples)", stats.Duration, stats.TotalSamples)

	return fb, stats, nil
}

// renderTile renders one tile with its own deterministic sampler. Tiles
// write to disjoint framebuffer regions, so no locking is needed.
func (rt *Raytracer) renderTile(task TileTask) TileResult {
	sampler := core.NewSeededSampler(task.Tile.Seed)
	camera := rt.scene.GetCamera()
	bounds := task.Tile.Bounds

	width := float64(rt.config.Width)
	height := float64(rt.config.Height)
	sampleScale := 1.0 / float64(rt.config.SamplesPerPixel)

	var samples int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var accum core.Vec3

			for s := 0; s < rt.config.SamplesPerPixel; s++ {
				jitter := sampler.Get2D()
				u := (float64(x) + jitter.X) / width
				// Framebuffer row 0 is the top; camera t runs bottom-up
				v := (float64(rt.config.Height-1-y) + jitter.Y) / height

				ray := camera.GetRay(u, v, sampler)
				sample := rt.integrator.RayColor(ray, rt.scene, sampler, rt.config.MaxDepth)

				// Drop non-finite samples rather than poisoning the pixel
				if sample.IsFinite() {
					accum = accum.Add(sample)
				}
				samples++
			}

			color := accum.Multiply(sampleScale).GammaCorrect(2.0).Clamp(0, 1)
			task.Framebuffer.Set(x, y, color)
		}
	}

	return TileResult{Tile: task.Tile, Samples: samples}
}
