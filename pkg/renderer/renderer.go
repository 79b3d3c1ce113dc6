package renderer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-trace-lab/spheretracer/pkg/core"
)

// tMinHit is the lower bound of the hit interval. A small positive value
// keeps scattered rays from re-hitting the surface they originate on
// (shadow acne).
const tMinHit = 0.001

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration for one pass
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-band RNG streams
	NumWorkers      int   // Number of parallel workers (0 = CPU count)
	RowsPerBand     int   // Rows per work unit (0 = default)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        25,
		Seed:            42,
		RowsPerBand:     16,
	}
}

// Validate checks the configuration before a pass starts.
// A pass either renders the whole buffer or rejects its inputs here;
// there are no partial renders.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("renderer: invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("renderer: samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("renderer: max depth must be non-negative, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports with the scene package
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
	BackgroundColors() (top, bottom core.Vec3)
}

// Renderer runs the sampling loop for one scene/camera pair.
// Scene, camera and config are read-only for the duration of a pass.
type Renderer struct {
	scene  Scene
	camera *Camera
	config Config
	logger core.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(scene Scene, camera *Camera, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		scene:  scene,
		camera: camera,
		config: config,
		logger: logger,
	}
}

// Config returns the renderer's configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render runs a full pass and returns the finished linear frame buffer.
// Cancellation via ctx is honored between row bands; a cancelled pass
// returns the context error and no buffer.
func (r *Renderer) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	return r.renderPass(ctx, nil)
}

// renderPass renders all bands through the worker pool. When bandCallback
// is non-nil it is invoked once per completed band, from a single
// goroutine, with a copy of the band's pixels.
func (r *Renderer) renderPass(ctx context.Context, bandCallback func(BandUpdate)) (*FrameBuffer, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	fb := NewFrameBuffer(r.config.Width, r.config.Height)
	bands := NewBandGrid(r.config.Height, r.config.RowsPerBand, r.config.Seed)

	pool := NewWorkerPool(r, r.config.NumWorkers, len(bands))
	pool.Start(ctx)

	for _, band := range bands {
		pool.Submit(bandTask{Band: band, FB: fb})
	}

	// Collect results; keep draining after a failure so the pool can
	// shut down cleanly.
	var firstErr error
	totalSamples := 0
	for i := 0; i < len(bands); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("renderer: worker pool closed unexpectedly")
			break
		}
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		totalSamples += result.Samples

		if bandCallback != nil {
			band := bands[result.BandID]
			bandCallback(BandUpdate{
				BandID: band.ID,
				Y0:     band.Y0,
				Y1:     band.Y1,
				Width:  r.config.Width,
				Pixels: fb.Rows(band.Y0, band.Y1),
			})
		}
	}
	pool.Stop()

	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	stats := RenderStats{
		TotalPixels:  r.config.Width * r.config.Height,
		TotalSamples: totalSamples,
		Elapsed:      time.Since(startTime),
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return fb, stats, nil
}

// renderBand renders rows [band.Y0, band.Y1) into the frame buffer.
// Bands cover disjoint rows, so no synchronization is needed on fb.
// Cancellation is checked between rows.
func (r *Renderer) renderBand(ctx context.Context, band *Band, fb *FrameBuffer) (int, error) {
	width := r.config.Width
	height := r.config.Height
	samples := 0

	for y := band.Y0; y < band.Y1; y++ {
		select {
		case <-ctx.Done():
			return samples, ctx.Err()
		default:
		}

		// Camera t runs bottom-up while buffer rows run top-down
		jBottom := height - 1 - y

		for x := 0; x < width; x++ {
			colorAccum := core.Vec3{}

			for sample := 0; sample < r.config.SamplesPerPixel; sample++ {
				// Jitter within the pixel before normalizing to (s, t)
				s := (float64(x) + band.Random.Float64()) / float64(width)
				t := (float64(jBottom) + band.Random.Float64()) / float64(height)

				ray := r.camera.GetRay(s, t)
				colorAccum = colorAccum.Add(r.rayColor(ray, r.config.MaxDepth, band.Random))
			}

			// Arithmetic mean over the samples, stored linear
			fb.Set(x, y, colorAccum.Multiply(1.0/float64(r.config.SamplesPerPixel)))
			samples += r.config.SamplesPerPixel
		}
	}

	return samples, nil
}

// rayColor returns the color for a ray by recursive scattering
func (r *Renderer) rayColor(ray core.Ray, depth int, random *rand.Rand) core.Vec3 {
	// Path terminated: no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := r.scene.Hit(ray, tMinHit, math.Inf(1))
	if !isHit {
		return r.backgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(r.rayColor(scatter.Scattered, depth-1, random))
}

// backgroundGradient returns the sky color for a ray that missed the scene
func (r *Renderer) backgroundGradient(ray core.Ray) core.Vec3 {
	topColor, bottomColor := r.scene.BackgroundColors()

	unitDirection := ray.Direction.Normalize()

	// Map direction.y from [-1,1] to [0,1] and blend bottom to top
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottomColor.Lerp(topColor, t)
}
