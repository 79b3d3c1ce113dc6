package renderer

import (
	"context"

	"github.com/go-trace-lab/spheretracer/pkg/core"
)

// BandUpdate reports a completed row band during an asynchronous render.
// Pixels is a copy of rows [Y0, Y1), row-major, Width pixels per row;
// the receiver owns it.
type BandUpdate struct {
	BandID int
	Y0     int
	Y1     int
	Width  int
	Pixels []core.Vec3
}

// Result is the terminal outcome of an asynchronous render
type Result struct {
	FrameBuffer *FrameBuffer
	Stats       RenderStats
	Err         error
}

// RenderAsync runs the pass as a single background unit of work and
// delivers progress over channels. The band channel receives one update
// per completed row band; the result channel receives exactly one value.
// Both channels are closed when the pass finishes or is cancelled.
//
// The caller should read from both channels; band updates are dropped
// if the band channel is not being drained.
func (r *Renderer) RenderAsync(ctx context.Context) (<-chan BandUpdate, <-chan Result) {
	bandChan := make(chan BandUpdate, 16)
	resultChan := make(chan Result, 1)

	go func() {
		defer close(bandChan)
		defer close(resultChan)

		fb, stats, err := r.renderPass(ctx, func(update BandUpdate) {
			select {
			case bandChan <- update:
			default:
				// Consumer is behind; skip this update rather than stall
				// the render.
			}
		})

		resultChan <- Result{FrameBuffer: fb, Stats: stats, Err: err}
	}()

	return bandChan, resultChan
}
