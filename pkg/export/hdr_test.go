package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/go-trace-lab/spheretracer/pkg/core"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
)

func TestWriteHDR_Header(t *testing.T) {
	fb := renderer.NewFrameBuffer(16, 4)

	var buf bytes.Buffer
	if err := WriteHDR(&buf, fb); err != nil {
		t.Fatalf("WriteHDR failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "#?RADIANCE\n") {
		t.Error("Output missing the Radiance magic line")
	}
	if !strings.Contains(out, "FORMAT=32-bit_rle_rgbe\n") {
		t.Error("Output missing the RGBE format declaration")
	}
	if !strings.Contains(out, "\n-Y 4 +X 16\n") {
		t.Error("Output missing the resolution line")
	}
}

func TestWriteHDR_RoundTrip(t *testing.T) {
	fb := renderer.NewFrameBuffer(16, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			// Mix flat regions (runs) with a gradient (literals)
			if y < 2 {
				fb.Set(x, y, core.NewVec3(0.5, 0.25, 0.125))
			} else {
				fb.Set(x, y, core.NewVec3(
					float64(x)/16.0,
					0.5+float64(x)/32.0,
					3.0, // HDR value above display range
				))
			}
		}
	}

	var buf bytes.Buffer
	if err := WriteHDR(&buf, fb); err != nil {
		t.Fatalf("WriteHDR failed: %v", err)
	}

	decoded, err := decodeHDR(&buf)
	if err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}

	comparePixels(t, fb, decoded)
}

func TestWriteHDR_NarrowImageFlatEncoding(t *testing.T) {
	// Widths below 8 cannot use RLE scanlines; pixels are written flat
	fb := renderer.NewFrameBuffer(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			fb.Set(x, y, core.NewVec3(0.5, 0.5, 0.5))
		}
	}

	var buf bytes.Buffer
	if err := WriteHDR(&buf, fb); err != nil {
		t.Fatalf("WriteHDR failed: %v", err)
	}

	data := buf.Bytes()
	headerEnd := bytes.Index(data, []byte("+X 4\n")) + len("+X 4\n")
	pixelData := data[headerEnd:]

	if len(pixelData) != 4*2*4 {
		t.Fatalf("Expected %d flat pixel bytes, got %d", 4*2*4, len(pixelData))
	}
	// No RLE scanline marker
	if pixelData[0] == 2 && pixelData[1] == 2 {
		t.Error("Narrow image should not use RLE scanlines")
	}

	decoded, err := decodeHDR(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}
	comparePixels(t, fb, decoded)
}

func TestWriteHDR_BlackIsExact(t *testing.T) {
	fb := renderer.NewFrameBuffer(16, 2)

	var buf bytes.Buffer
	if err := WriteHDR(&buf, fb); err != nil {
		t.Fatalf("WriteHDR failed: %v", err)
	}

	decoded, err := decodeHDR(&buf)
	if err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 16; x++ {
			if decoded.At(x, y) != (core.Vec3{}) {
				t.Fatalf("Black pixel (%d,%d) decoded as %v", x, y, decoded.At(x, y))
			}
		}
	}
}

func TestFloatToRGBE(t *testing.T) {
	tests := []struct {
		name string
		in   core.Vec3
	}{
		{"unit white", core.NewVec3(1, 1, 1)},
		{"primary red", core.NewVec3(1, 0, 0)},
		{"dim gray", core.NewVec3(0.01, 0.01, 0.01)},
		{"hdr highlight", core.NewVec3(50, 20, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgbe := floatToRGBE(tt.in)
			got := rgbeToFloat(rgbe)

			// Shared-exponent encoding is accurate to the mantissa step
			maxComp := math.Max(tt.in.X, math.Max(tt.in.Y, tt.in.Z))
			tolerance := maxComp / 128.0

			if math.Abs(got.X-tt.in.X) > tolerance ||
				math.Abs(got.Y-tt.in.Y) > tolerance ||
				math.Abs(got.Z-tt.in.Z) > tolerance {
				t.Errorf("Round trip %v -> %v exceeds tolerance %g", tt.in, got, tolerance)
			}
		})
	}

	if floatToRGBE(core.Vec3{}) != ([4]byte{}) {
		t.Error("Black must encode as all zero bytes")
	}
}

// comparePixels checks the decoded buffer against the original within
// the RGBE mantissa tolerance.
func comparePixels(t *testing.T, original, decoded *renderer.FrameBuffer) {
	t.Helper()

	if decoded.Width() != original.Width() || decoded.Height() != original.Height() {
		t.Fatalf("Decoded size %dx%d, expected %dx%d",
			decoded.Width(), decoded.Height(), original.Width(), original.Height())
	}

	for y := 0; y < original.Height(); y++ {
		for x := 0; x < original.Width(); x++ {
			want := original.At(x, y)
			got := decoded.At(x, y)

			maxComp := math.Max(want.X, math.Max(want.Y, want.Z))
			tolerance := math.Max(maxComp/128.0, 1e-6)

			if math.Abs(got.X-want.X) > tolerance ||
				math.Abs(got.Y-want.Y) > tolerance ||
				math.Abs(got.Z-want.Z) > tolerance {
				t.Fatalf("Pixel (%d,%d): want %v, got %v (tolerance %g)",
					x, y, want, got, tolerance)
			}
		}
	}
}

// rgbeToFloat reverses the shared-exponent encoding
func rgbeToFloat(rgbe [4]byte) core.Vec3 {
	if rgbe[3] == 0 {
		return core.Vec3{}
	}
	f := math.Ldexp(1.0, int(rgbe[3])-(128+8))
	return core.Vec3{
		X: float64(rgbe[0]) * f,
		Y: float64(rgbe[1]) * f,
		Z: float64(rgbe[2]) * f,
	}
}

// decodeHDR is a minimal Radiance reader covering exactly what WriteHDR
// emits: flat scanlines and the adaptive RLE scanline format.
func decodeHDR(r io.Reader) (*renderer.FrameBuffer, error) {
	br := bufio.NewReader(r)

	magic, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if magic != "#?RADIANCE\n" {
		return nil, fmt.Errorf("bad magic %q", magic)
	}

	// Skip header lines until the blank separator
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if line == "\n" {
			break
		}
	}

	var width, height int
	resolution, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Sscanf(resolution, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("bad resolution line %q: %w", resolution, err)
	}

	fb := renderer.NewFrameBuffer(width, height)
	scanline := make([][4]byte, width)

	for y := 0; y < height; y++ {
		if err := readScanline(br, scanline); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			fb.Set(x, y, rgbeToFloat(scanline[x]))
		}
	}

	return fb, nil
}

func readScanline(br *bufio.Reader, scanline [][4]byte) error {
	width := len(scanline)

	head := make([]byte, 4)
	if _, err := io.ReadFull(br, head); err != nil {
		return err
	}

	if head[0] != 2 || head[1] != 2 {
		// Flat pixels; head already holds the first one
		scanline[0] = [4]byte{head[0], head[1], head[2], head[3]}
		for x := 1; x < width; x++ {
			if _, err := io.ReadFull(br, head); err != nil {
				return err
			}
			scanline[x] = [4]byte{head[0], head[1], head[2], head[3]}
		}
		return nil
	}

	if got := int(head[2])<<8 | int(head[3]); got != width {
		return fmt.Errorf("scanline width %d, expected %d", got, width)
	}

	for comp := 0; comp < 4; comp++ {
		x := 0
		for x < width {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < int(count)-128; i++ {
					scanline[x][comp] = value
					x++
				}
			} else {
				for i := 0; i < int(count); i++ {
					b, err := br.ReadByte()
					if err != nil {
						return err
					}
					scanline[x][comp] = b
					x++
				}
			}
		}
	}

	return nil
}
