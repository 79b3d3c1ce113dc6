package renderer

import "github.com/go-trace-lab/spheretracer/pkg/core"

// FrameBuffer is a width×height grid of linear-light color values,
// stored row-major with row 0 at the top of the image. The buffer stays
// scene-linear; display transforms happen downstream.
//
// During a render pass the buffer is owned by the renderer and workers
// write disjoint row bands. Ownership transfers to the caller when the
// pass completes.
type FrameBuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewFrameBuffer allocates a zeroed frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// At returns the linear color at pixel (x, y), y counted from the top
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Set writes the linear color at pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.pixels[y*fb.width+x] = c
}

// Pixels returns the underlying row-major pixel slice
func (fb *FrameBuffer) Pixels() []core.Vec3 {
	return fb.pixels
}

// Rows returns a copy of rows [y0, y1), row-major.
// Used to hand partial results to progress consumers without sharing
// the buffer mid-pass.
func (fb *FrameBuffer) Rows(y0, y1 int) []core.Vec3 {
	out := make([]core.Vec3, (y1-y0)*fb.width)
	copy(out, fb.pixels[y0*fb.width:y1*fb.width])
	return out
}
