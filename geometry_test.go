package fastdhash

import (
	"errors"
	"testing"
)

func TestBinWeights_SumPerSourceIndex(t *testing.T) {
	// In scaled units each source interval has length targetLen, so its
	// overlap weights must sum to exactly targetLen.
	for _, srcLen := range []int{1, 5, 8, 9, 10, 37, 100, 1000} {
		for _, targetLen := range []int{gridCols, gridRows} {
			weights, err := binWeights(srcLen, targetLen)
			if err != nil {
				t.Fatalf("binWeights(%d, %d): %v", srcLen, targetLen, err)
			}
			if len(weights) != srcLen {
				t.Fatalf("binWeights(%d, %d): %d entries", srcLen, targetLen, len(weights))
			}
			for i, entries := range weights {
				if len(entries) == 0 {
					t.Fatalf("src %d/%d index %d: no bins", srcLen, targetLen, i)
				}
				var sum int64
				for _, e := range entries {
					if e.bin < 0 || e.bin >= targetLen {
						t.Fatalf("src %d/%d index %d: bin %d out of range", srcLen, targetLen, i, e.bin)
					}
					if e.weight <= 0 {
						t.Fatalf("src %d/%d index %d: weight %d", srcLen, targetLen, i, e.weight)
					}
					sum += e.weight
				}
				if sum != int64(targetLen) {
					t.Fatalf("src %d/%d index %d: weight sum %d, want %d", srcLen, targetLen, i, sum, targetLen)
				}
			}
		}
	}
}

func TestBinWeights_EveryBinCovered(t *testing.T) {
	// Each target bin spans srcLen scaled units, so the weights routed into
	// it across all source indexes must total exactly srcLen.
	for _, srcLen := range []int{1, 3, 8, 9, 17, 640, 999} {
		for _, targetLen := range []int{gridCols, gridRows} {
			weights, err := binWeights(srcLen, targetLen)
			if err != nil {
				t.Fatal(err)
			}
			perBin := make([]int64, targetLen)
			for _, entries := range weights {
				for _, e := range entries {
					perBin[e.bin] += e.weight
				}
			}
			for b, sum := range perBin {
				if sum != int64(srcLen) {
					t.Errorf("src %d/%d bin %d: total %d, want %d", srcLen, targetLen, b, sum, srcLen)
				}
			}
		}
	}
}

func TestBinWeights_ExactDivision(t *testing.T) {
	// 90 columns over 9 bins: each source column belongs to exactly one
	// bin with full weight.
	weights, err := binWeights(90, gridCols)
	if err != nil {
		t.Fatal(err)
	}
	for i, entries := range weights {
		if len(entries) != 1 {
			t.Fatalf("index %d: %d bins, want 1", i, len(entries))
		}
		if entries[0].bin != i/10 {
			t.Errorf("index %d: bin %d, want %d", i, entries[0].bin, i/10)
		}
		if entries[0].weight != int64(gridCols) {
			t.Errorf("index %d: weight %d, want %d", i, entries[0].weight, gridCols)
		}
	}
}

func TestBinWeights_UpsamplingSpansBins(t *testing.T) {
	// A single source index stretched over the whole axis must feed every
	// bin equally.
	weights, err := binWeights(1, gridCols)
	if err != nil {
		t.Fatal(err)
	}
	if len(weights[0]) != gridCols {
		t.Fatalf("got %d bins, want %d", len(weights[0]), gridCols)
	}
	for b, e := range weights[0] {
		if e.bin != b || e.weight != 1 {
			t.Errorf("entry %d: bin %d weight %d", b, e.bin, e.weight)
		}
	}
}

func TestBinWeights_ZeroSource(t *testing.T) {
	if _, err := binWeights(0, gridCols); !errors.Is(err, ErrGeometry) {
		t.Fatalf("got %v, want ErrGeometry", err)
	}
}

func TestReduce_DegenerateBin(t *testing.T) {
	// A zeroed accumulator grid means the geometry mapping never routed a
	// sample anywhere; reduce must refuse it rather than divide by zero.
	_, err := reduce([]accumGrid{{}})
	if !errors.Is(err, ErrDegenerateBin) {
		t.Fatalf("got %v, want ErrDegenerateBin", err)
	}
}
