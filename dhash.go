// Package fastdhash computes 64-bit perceptual dhash fingerprints straight
// from raw pixel buffers.
//
// The caller supplies bytes plus geometry (width, height, channel count);
// the package never decodes container formats, never materializes a resized
// image, and reads every input byte exactly once.
//
// Design:
//   - Separable area-weighted bin maps instead of a resize step
//   - Integer accumulation throughout (exact, no float drift)
//   - One private accumulator grid per worker, index-ordered merge
//   - Deterministic: identical input → identical hash for any worker count
//
// Visually similar images produce hashes with a small Hamming distance;
// compare them with Hash.Distance or Hash.Similar.
package fastdhash

import (
	"fmt"
	"math/bits"
	"runtime"
)

// Hash is a 64-bit dhash fingerprint. Equality is bitwise. The integer
// ordering of two hashes carries no perceptual meaning; only Hamming
// distance does.
type Hash uint64

// DefaultSimilarityThreshold is the Hamming distance below which two
// hashes are considered to depict the same image.
const DefaultSimilarityThreshold = 11

// New computes the dhash of a raw pixel buffer.
//
// pix is row-major with channels interleaved bytes per pixel: 1 channel is
// grayscale, 2 is gray+alpha, 3 is RGB, 4 is RGBA. The buffer must hold at
// least width×height×channels bytes; it is borrowed for the duration of
// the call and never mutated or retained.
func New(pix []byte, width, height, channels int) (Hash, error) {
	return NewWorkers(pix, width, height, channels, 0)
}

// NewWorkers is New with an explicit worker count. workers <= 0 selects
// runtime.NumCPU; the count is clamped to the number of source rows. The
// hash is bit-identical for every worker count.
func NewWorkers(pix []byte, width, height, channels, workers int) (Hash, error) {
	if width < 1 || height < 1 {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if channels < 1 || channels > 4 {
		return 0, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	if need := width * height * channels; len(pix) < need {
		return 0, fmt.Errorf("%w: %dx%dx%d needs %d bytes, have %d",
			ErrBufferSize, width, height, channels, need, len(pix))
	}

	colBins, err := binWeights(width, gridCols)
	if err != nil {
		return 0, err
	}
	rowBins, err := binWeights(height, gridRows)
	if err != nil {
		return 0, err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}

	grids := accumulate(pix, width, channels, workers, rowBins, colBins)
	grid, err := reduce(grids)
	if err != nil {
		return 0, err
	}
	return pack(grid), nil
}

// pack walks the luminance grid and packs the horizontal gradient signs
// into 64 bits. Bit r·8+c is set when grid[r][c] > grid[r][c+1] (strict;
// ties stay 0), with bit 0 in the most significant position.
func pack(grid lumGrid) Hash {
	var h uint64
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols-1; c++ {
			if grid[r][c] > grid[r][c+1] {
				h |= 1 << (63 - (r*8 + c))
			}
		}
	}
	return Hash(h)
}

// Distance returns the Hamming distance to other, in [0, 64].
func (h Hash) Distance(other Hash) int {
	return bits.OnesCount64(uint64(h ^ other))
}

// Similar reports whether the distance to other is below
// DefaultSimilarityThreshold.
func (h Hash) Similar(other Hash) bool {
	return h.Distance(other) < DefaultSimilarityThreshold
}
