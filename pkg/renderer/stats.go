package renderer

import "time"

// RenderStats contains statistics about a completed render pass
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Elapsed        time.Duration // Wall-clock time for the pass
}
