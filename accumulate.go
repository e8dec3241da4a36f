package fastdhash

import (
	"fmt"
	"sync"
)

// accumGrid holds one worker's weighted luminance sums and weight totals
// for the 9×8 target grid. Each worker owns exactly one grid; grids merge
// additively, so merge order cannot change the result.
//
// int64 accumulation keeps every sum exact (no float drift): the largest
// per-pixel contribution is 255·lumaScale·8·9 < 2^25, leaving room for
// tens of terapixels per bin.
type accumGrid struct {
	sum    [gridRows][gridCols]int64
	weight [gridRows][gridCols]int64
}

func (g *accumGrid) merge(o *accumGrid) {
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			g.sum[r][c] += o.sum[r][c]
			g.weight[r][c] += o.weight[r][c]
		}
	}
}

// lumGrid is the normalized 9×8 luminance grid, derived once after the
// reduction and read-only afterward.
type lumGrid [gridRows][gridCols]float64

// accumulate splits the source rows into contiguous near-equal ranges,
// one per worker, and streams the buffer in a single pass: every pixel is
// read once and its luminance routed into each overlapping grid bin with
// the product of the row and column overlap weights. Workers share only
// the read-only input; there is no locking and no contention.
func accumulate(pix []byte, width, channels, workers int, rowBins, colBins [][]binWeight) []accumGrid {
	height := len(rowBins)
	grids := make([]accumGrid, workers)
	rowsPer := height / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPer
		y1 := y0 + rowsPer
		if w == workers-1 {
			y1 = height // last range absorbs the remainder
		}
		wg.Add(1)
		go func(g *accumGrid, y0, y1 int) {
			defer wg.Done()
			accumulateRows(g, pix, width, channels, y0, y1, rowBins, colBins)
		}(&grids[w], y0, y1)
	}
	wg.Wait()
	return grids
}

func accumulateRows(g *accumGrid, pix []byte, width, channels, y0, y1 int, rowBins, colBins [][]binWeight) {
	stride := width * channels
	for y := y0; y < y1; y++ {
		rbs := rowBins[y]
		off := y * stride
		for x := 0; x < width; x++ {
			lum := luminance(pix[off:off+channels], channels)
			for _, rb := range rbs {
				row := rb.bin
				lw := lum * rb.weight
				for _, cb := range colBins[x] {
					g.sum[row][cb.bin] += lw * cb.weight
					g.weight[row][cb.bin] += rb.weight * cb.weight
				}
			}
			off += channels
		}
	}
}

// reduce merges the per-worker grids in worker-index order and divides
// each bin's sum by its weight total. With exact integer accumulation the
// result is bit-identical for any worker count and completion order.
func reduce(grids []accumGrid) (lumGrid, error) {
	total := &grids[0]
	for i := 1; i < len(grids); i++ {
		total.merge(&grids[i])
	}

	var grid lumGrid
	for r := 0; r < gridRows; r++ {
		for c := 0; c < gridCols; c++ {
			w := total.weight[r][c]
			if w <= 0 {
				return grid, fmt.Errorf("%w: bin (%d,%d)", ErrDegenerateBin, r, c)
			}
			grid[r][c] = float64(total.sum[r][c]) / float64(w)
		}
	}
	return grid, nil
}
