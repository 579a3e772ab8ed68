package dsp

import "testing"

// TestNormalizedWeightsSumToOne checks that for every destination pixel,
// the sum of normalized integer weights equals exactly 1<<precision.
func TestNormalizedWeightsSumToOne(t *testing.T) {
	filters := []Filter{Box, Triangle, CatmullRom, Mitchell, Lanczos3}
	sizes := [][2]int{{10, 3}, {3, 10}, {7, 7}, {100, 33}, {33, 100}}

	for _, f := range filters {
		for _, sz := range sizes {
			coeffs, err := BuildCoefficients(sz[0], sz[1], f)
			if err != nil {
				t.Fatalf("%s %v: %v", f.Name, sz, err)
			}
			for _, channelWidth := range []int{8, 16} {
				norm, err := Normalize(coeffs, channelWidth)
				if err != nil {
					t.Fatalf("%s %v depth %d: %v", f.Name, sz, channelWidth, err)
				}
				one := int64(1) << uint(norm.Precision)
				for i := range coeffs.Bounds {
					_, size, weights := norm.Chunk(i)
					var sum int64
					for k := 0; k < size; k++ {
						sum += int64(weights[k])
					}
					if sum != one {
						t.Fatalf("%s %v depth %d pixel %d: sum = %d, want %d", f.Name, sz, channelWidth, i, sum, one)
					}
				}
			}
		}
	}
}

func TestBuildCoefficientsRejectsZeroDimension(t *testing.T) {
	if _, err := BuildCoefficients(0, 4, Box); err != ErrZeroDimension {
		t.Fatalf("got %v, want ErrZeroDimension", err)
	}
	if _, err := BuildCoefficients(4, 0, Box); err != ErrZeroDimension {
		t.Fatalf("got %v, want ErrZeroDimension", err)
	}
}
