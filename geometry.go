package fastdhash

import "fmt"

// The target grid: 9 luminance columns × 8 rows, giving 8 horizontal
// gradient comparisons per row and 64 bits total.
const (
	gridCols = 9
	gridRows = 8
)

// binWeight is one (target bin, overlap) entry for a single source index.
//
// Overlaps are exact integers: positions along the axis are scaled by
// targetLen, so source index i covers [i·T, (i+1)·T) and target bin b
// covers [b·L, (b+1)·L), all with integer endpoints. The weights of one
// source index sum to targetLen; the common scale divides out when bins
// are normalized, so it is never undone explicitly.
type binWeight struct {
	bin    int
	weight int64
}

// binWeights maps every source index along one axis to the target bins it
// overlaps. Downsampling is separable, so the two axes are mapped
// independently (one call with targetLen 9 for columns, one with 8 for
// rows). No floating point enters the mapping at all, which is what keeps
// the whole pipeline exact and worker-count independent.
func binWeights(srcLen, targetLen int) ([][]binWeight, error) {
	if srcLen < 1 {
		return nil, fmt.Errorf("%w: source length %d", ErrGeometry, srcLen)
	}

	t := int64(targetLen)
	l := int64(srcLen)

	out := make([][]binWeight, srcLen)
	for i := int64(0); i < l; i++ {
		lo := i * t
		hi := lo + t
		first := lo / l

		entries := make([]binWeight, 0, 2)
		for b := first; b < t; b++ {
			binLo := b * l
			if binLo >= hi {
				break
			}
			ov := min(hi, binLo+l) - max(lo, binLo)
			if ov > 0 {
				entries = append(entries, binWeight{bin: int(b), weight: ov})
			}
		}
		if len(entries) == 0 {
			// Cannot happen with integer endpoints, but the mapping must
			// stay total: clamp to the nearest valid bin.
			b := min(first, t-1)
			entries = append(entries, binWeight{bin: int(b), weight: 1})
		}
		out[i] = entries
	}
	return out, nil
}
