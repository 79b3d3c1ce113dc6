package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
)

// WriteHDR serializes the linear frame buffer into a Radiance HDR (RGBE)
// container with run-length encoded scanlines. The buffer's float values
// are written in the shared-exponent RGBE encoding; the RLE compression
// of the encoded bytes is lossless.
func WriteHDR(w io.Writer, fb *renderer.FrameBuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n",
		fb.Height(), fb.Width()); err != nil {
		return err
	}

	width := fb.Width()
	scanline := make([][4]byte, width)

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < width; x++ {
			scanline[x] = floatToRGBE(fb.At(x, y))
		}
		if err := writeScanline(bw, scanline); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// floatToRGBE packs a linear RGB triple into the 4-byte shared-exponent
// RGBE pixel format
func floatToRGBE(c core.Vec3) [4]byte {
	maxComp := math.Max(c.X, math.Max(c.Y, c.Z))
	if maxComp < 1e-32 {
		return [4]byte{}
	}

	frac, exp := math.Frexp(maxComp)
	scale := frac * 256.0 / maxComp

	return [4]byte{
		byte(math.Max(0, c.X) * scale),
		byte(math.Max(0, c.Y) * scale),
		byte(math.Max(0, c.Z) * scale),
		byte(exp + 128),
	}
}

// writeScanline writes one scanline, using the adaptive RLE ("new")
// scanline format when the width allows it and flat pixels otherwise.
func writeScanline(w *bufio.Writer, scanline [][4]byte) error {
	width := len(scanline)

	// The RLE scanline header only encodes widths in this range
	if width < 8 || width > 32767 {
		for _, px := range scanline {
			if _, err := w.Write(px[:]); err != nil {
				return err
			}
		}
		return nil
	}

	header := []byte{2, 2, byte(width >> 8), byte(width & 0xFF)}
	if _, err := w.Write(header); err != nil {
		return err
	}

	// Components are stored planar: all R bytes, then G, B, E
	component := make([]byte, width)
	for comp := 0; comp < 4; comp++ {
		for x := 0; x < width; x++ {
			component[x] = scanline[x][comp]
		}
		if err := writeRLE(w, component); err != nil {
			return err
		}
	}

	return nil
}

// minRunLength is the shortest run worth encoding as a run
const minRunLength = 4

// writeRLE run-length encodes one component plane of a scanline.
// Runs are emitted as {128+len, value}; literal spans as {len, bytes...},
// each capped at 128 entries per the Radiance format.
func writeRLE(w *bufio.Writer, data []byte) error {
	pos := 0
	for pos < len(data) {
		// Find the start of the next run of at least minRunLength
		runStart := pos
		runLength := 0
		for runStart < len(data) {
			runLength = 1
			for runStart+runLength < len(data) &&
				runLength < 127 &&
				data[runStart+runLength] == data[runStart] {
				runLength++
			}
			if runLength >= minRunLength {
				break
			}
			runStart += runLength
		}

		// Emit everything before the run as literal spans
		for pos < runStart {
			span := min(runStart-pos, 128)
			if err := w.WriteByte(byte(span)); err != nil {
				return err
			}
			if _, err := w.Write(data[pos : pos+span]); err != nil {
				return err
			}
			pos += span
		}

		if runStart < len(data) && runLength >= minRunLength {
			if err := w.WriteByte(byte(128 + runLength)); err != nil {
				return err
			}
			if err := w.WriteByte(data[runStart]); err != nil {
				return err
			}
			pos = runStart + runLength
		}
	}

	return nil
}
