package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-trace-lab/spheretracer/pkg/display"
	"github.com/go-trace-lab/spheretracer/pkg/export"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
	"github.com/go-trace-lab/spheretracer/pkg/scene"
)

// app hosts a render job inside the ebiten update/draw loop.
// The kernel runs in the background via RenderAsync; the app only
// drains its channels and blits completed bands.
type app struct {
	scene     *scene.Scene
	config    renderer.Config
	outputDir string

	img       *image.RGBA   // Display-referred copy of the render
	screenImg *ebiten.Image // GPU texture the window draws

	bands   <-chan renderer.BandUpdate
	results <-chan renderer.Result
	cancel  context.CancelFunc

	fb        *renderer.FrameBuffer // Finished buffer, nil while rendering
	rendering bool
	renders   int
	status    string
}

func newApp(s *scene.Scene, config renderer.Config, outputDir string) *app {
	a := &app{
		scene:     s,
		config:    config,
		outputDir: outputDir,
		img:       image.NewRGBA(image.Rect(0, 0, config.Width, config.Height)),
		screenImg: ebiten.NewImage(config.Width, config.Height),
	}
	a.startRender()
	return a
}

// startRender launches a background render job. Each re-render shifts
// the base seed so the noise pattern visibly changes.
func (a *app) startRender() {
	if a.cancel != nil {
		a.cancel()
	}

	config := a.config
	config.Seed += int64(a.renders)
	a.renders++

	camera := renderer.NewCamera(a.scene.CameraConfig)
	rt := renderer.NewRenderer(a.scene, camera, config, nil)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.bands, a.results = rt.RenderAsync(ctx)
	a.rendering = true
	a.fb = nil
	a.status = "rendering..."
}

func (a *app) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.cancel != nil {
			a.cancel()
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !a.rendering {
		a.startRender()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && a.fb != nil {
		a.save()
	}

	a.drainUpdates()
	return nil
}

// drainUpdates applies every pending band update and, when the job is
// done, takes ownership of the finished frame buffer.
func (a *app) drainUpdates() {
	for {
		select {
		case update, ok := <-a.bands:
			if !ok {
				a.bands = nil
				continue
			}
			band := display.Convert(update.Pixels, update.Width, update.Y1-update.Y0, display.DefaultOptions())
			rect := image.Rect(0, update.Y0, update.Width, update.Y1)
			draw.Draw(a.img, rect, band, image.Point{}, draw.Src)
		case result, ok := <-a.results:
			if !ok {
				a.results = nil
				continue
			}
			a.rendering = false
			if result.Err != nil {
				a.status = fmt.Sprintf("render failed: %v", result.Err)
				continue
			}
			a.fb = result.FrameBuffer
			a.img = display.ToRGBA(a.fb, display.DefaultOptions())
			a.status = fmt.Sprintf("done in %v (%.0f spp) - R re-render, S save",
				result.Stats.Elapsed.Round(time.Millisecond), result.Stats.AverageSamples)
		default:
			return
		}
	}
}

func (a *app) save() {
	name := fmt.Sprintf("render_%s", time.Now().Format("20060102_150405"))
	paths, err := export.Save(a.outputDir, name, a.fb, export.DefaultSaveOptions())
	if err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.status = fmt.Sprintf("saved %s", paths[0])
}

func (a *app) Draw(screen *ebiten.Image) {
	a.screenImg.WritePixels(a.img.Pix)
	screen.DrawImage(a.screenImg, nil)
	ebitenutil.DebugPrint(screen, a.status)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.Width, a.config.Height
}
