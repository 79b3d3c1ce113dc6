package renderer

import "math/rand"

// bandSeedStride spaces the per-band RNG streams so they stay disjoint
// for any base seed.
const bandSeedStride = 9781

// Band is a horizontal strip of whole rows to be rendered as one unit.
// Each band carries its own deterministic RNG stream, so results do not
// depend on how bands are scheduled across workers.
type Band struct {
	ID     int        // Band index, top to bottom
	Y0     int        // First row (inclusive)
	Y1     int        // Last row (exclusive)
	Random *rand.Rand // Band-specific generator for deterministic results
}

// NewBandGrid splits the image height into row bands of rowsPerBand rows.
// The last band absorbs any remainder.
func NewBandGrid(height, rowsPerBand int, seed int64) []*Band {
	if rowsPerBand <= 0 {
		rowsPerBand = 16
	}

	var bands []*Band
	id := 0
	for y0 := 0; y0 < height; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, height)
		bands = append(bands, &Band{
			ID:     id,
			Y0:     y0,
			Y1:     y1,
			Random: rand.New(rand.NewSource(seed + int64(id)*bandSeedStride)),
		})
		id++
	}

	return bands
}
