package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-trace-lab/spheretracer/pkg/export"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
	"github.com/go-trace-lab/spheretracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'single-sphere'")
	width := flag.Int("width", 400, "Image width in pixels")
	height := flag.Int("height", 225, "Image height in pixels")
	samples := flag.Int("samples", 50, "Samples per pixel")
	depth := flag.Int("depth", 25, "Maximum ray bounce depth")
	seed := flag.Int64("seed", 42, "Base RNG seed")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	output := flag.String("output", "output", "Output directory")
	publish := flag.Bool("publish", false, "Upload results to S3 (configured via environment)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sphere Tracer")
		fmt.Println("Usage: spheretracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default       - Four-sphere scene: diffuse ground/center, two metals")
		fmt.Println("  single-sphere - One diffuse sphere against the sky gradient")
		fmt.Println()
		fmt.Println("Output is saved to <output>/<scene>/render_<timestamp>.{hdr,png}")
		return
	}

	aspectRatio := float64(*width) / float64(*height)
	selectedScene, err := createScene(*sceneType, aspectRatio)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderer.Config{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		Seed:            *seed,
		NumWorkers:      *workers,
		RowsPerBand:     16,
	}

	camera := renderer.NewCamera(selectedScene.CameraConfig)
	rt := renderer.NewRenderer(selectedScene, camera, config, nil)

	fmt.Printf("Rendering %s scene at %dx%d, %d samples/pixel...\n",
		*sceneType, *width, *height, *samples)

	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v (%.1f samples/pixel average)\n",
		stats.Elapsed, stats.AverageSamples)

	outputDir := filepath.Join(*output, *sceneType)
	name := fmt.Sprintf("render_%s", time.Now().Format("20060102_150405"))

	paths, err := export.Save(outputDir, name, fb, export.DefaultSaveOptions())
	if err != nil {
		fmt.Printf("Export failed: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Printf("Saved %s\n", p)
	}

	if *publish {
		publisher, err := export.NewPublisherFromEnv()
		if err != nil {
			fmt.Printf("Publish setup failed: %v\n", err)
			os.Exit(1)
		}
		if publisher == nil {
			fmt.Println("Publishing requested but S3 is not configured; skipping")
			return
		}
		keys, err := publisher.Publish(context.Background(), paths)
		if err != nil {
			fmt.Printf("Publish failed: %v\n", err)
			os.Exit(1)
		}
		for _, key := range keys {
			fmt.Printf("Uploaded %s\n", key)
		}
	}
}

// createScene builds a scene by name
func createScene(sceneType string, aspectRatio float64) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(aspectRatio), nil
	case "single-sphere":
		return scene.NewSingleSphereScene(aspectRatio), nil
	default:
		return nil, fmt.Errorf("unknown scene type: %q", sceneType)
	}
}
