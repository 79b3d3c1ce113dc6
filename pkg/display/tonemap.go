// Package display converts scene-linear frame buffers into 8-bit
// display-referred images. The rendering kernel never performs this
// transform itself; its output stays linear.
package display

import (
	"image"
	"image/color"

	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
)

// Options controls the linear-to-display conversion
type Options struct {
	Exposure float64 // Linear scale applied before tonemapping (0 = 1.0)
	Gamma    float64 // Display gamma (0 = 2.2)
	Reinhard bool    // Apply Reinhard tonemapping to compress highlights
	DataPass bool    // Bypass tonemap and gamma: straight 0-1 to 0-255
}

// DefaultOptions returns the standard preview conversion
func DefaultOptions() Options {
	return Options{
		Exposure: 1.0,
		Gamma:    2.2,
		Reinhard: true,
	}
}

// ToRGBA converts a full frame buffer to an 8-bit RGBA image
func ToRGBA(fb *renderer.FrameBuffer, opts Options) *image.RGBA {
	return Convert(fb.Pixels(), fb.Width(), fb.Height(), opts)
}

// Convert converts row-major linear pixels to an 8-bit RGBA image.
// It also accepts partial buffers (e.g. a single row band).
func Convert(pixels []core.Vec3, width, height int, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, PixelColor(pixels[y*width+x], opts))
		}
	}

	return img
}

// PixelColor converts a single linear color value to display RGBA
func PixelColor(c core.Vec3, opts Options) color.RGBA {
	// Utility passes (normals, depth, ...) skip color management: the
	// values only need remapping from 0-1 to 0-255.
	if !opts.DataPass {
		exposure := opts.Exposure
		if exposure == 0 {
			exposure = 1.0
		}
		c = c.Multiply(exposure)

		if opts.Reinhard {
			c = reinhard(c)
		}

		gamma := opts.Gamma
		if gamma == 0 {
			gamma = 2.2
		}
		c = c.GammaCorrect(gamma)
	}

	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// reinhard compresses HDR values into [0,1) per channel: c / (1 + c)
func reinhard(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: c.X / (1 + c.X),
		Y: c.Y / (1 + c.Y),
		Z: c.Z / (1 + c.Z),
	}
}
