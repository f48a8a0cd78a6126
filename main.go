package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/output"
	"github.com/rt1we/go-raytracer/pkg/renderer"
	"github.com/rt1we/go-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: 'default', 'spheregrid', 'cornell', or 'mesh'")
	meshPath := flag.String("mesh", "", "Path to a .gltf/.glb model (scene 'mesh' only)")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = scene default)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	outDir := flag.String("out", "output", "Output directory")
	ppm := flag.Bool("ppm", false, "Also write a plain-text PPM (P3) file")
	archive := flag.Bool("archive", false, "Also write a full-precision render archive")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracing Renderer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default    - Three spheres (matte, glass, metal) under a sky gradient")
		fmt.Println("  spheregrid - Grid of random spheres with depth of field and motion blur")
		fmt.Println("  cornell    - Cornell box with an area light")
		fmt.Println("  mesh       - A glTF model on a checkered ground (requires -mesh)")
		fmt.Println()
		fmt.Println("Output is saved to <out>/<scene>/render_<timestamp>.png")
		return
	}

	selectedScene, err := buildScene(*sceneType, *meshPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Apply command line overrides on top of the scene defaults
	config := selectedScene.GetSamplingConfig()
	if *width > 0 {
		config.Width = *width
	}
	if *height > 0 {
		config.Height = *height
	}
	if *samples > 0 {
		config.SamplesPerPixel = *samples
	}
	if *depth > 0 {
		config.MaxDepth = *depth
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	config.NumWorkers = *workers

	// Keep the camera aspect in sync with the output resolution
	selectedScene.CameraConfig.AspectRatio = float64(config.Width) / float64(config.Height)

	if err := selectedScene.Preprocess(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger := core.NewStdoutLogger()
	rt, err := renderer.NewRaytracer(selectedScene, config, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fb, stats, err := rt.Render()
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveOutputs(fb, stats, *sceneType, *outDir, *ppm, *archive); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// buildScene creates the requested scene
func buildScene(sceneType, meshPath string) (*scene.Scene, error) {
	if sceneType == "mesh" {
		if meshPath == "" {
			return nil, fmt.Errorf("scene 'mesh' requires -mesh <path>")
		}
		return scene.NewMeshScene(meshPath)
	}
	return scene.ByName(sceneType)
}

// saveOutputs writes the rendered framebuffer in the requested formats
func saveOutputs(fb *renderer.Framebuffer, stats renderer.RenderStats, sceneType, outDir string, ppm, archive bool) error {
	dir := filepath.Join(outDir, sceneType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	pngPath := filepath.Join(dir, fmt.Sprintf("render_%s.png", timestamp))

	if err := output.WritePNGFile(pngPath, fb); err != nil {
		return err
	}
	fmt.Printf("Image saved to: %s\n", pngPath)

	if ppm {
		ppmPath := strings.TrimSuffix(pngPath, ".png") + ".ppm"
		if err := output.WritePPMFile(ppmPath, fb, false); err != nil {
			return err
		}
		fmt.Printf("PPM saved to: %s\n", ppmPath)
	}

	if archive {
		writer, _, err := output.NewArchiveWriter(dir, sceneType)
		if err != nil {
			return err
		}
		if err := writer.AppendFramebuffer(fb); err != nil {
			writer.Close()
			return err
		}
		if err := writer.AppendEvent("renderComplete", stats); err != nil {
			writer.Close()
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
		fmt.Printf("Archive saved to: %s\n", writer.Directory())
	}

	return nil
}
