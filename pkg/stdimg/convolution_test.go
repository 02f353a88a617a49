package stdimg

import (
	"math"
	"testing"
)

func TestGaussianKernel1D(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2.2, 4} {
		kern, half := gaussianKernel1D(r)
		if want := int(math.Ceil(2.5 * r)); half != want {
			t.Fatalf("radius %v: half-width got %d want %d", r, half, want)
		}
		if len(kern) != 2*half+1 {
			t.Fatalf("radius %v: got %d weights want %d", r, len(kern), 2*half+1)
		}
		sum := 0.0
		for i, v := range kern {
			sum += v
			if v != kern[len(kern)-1-i] {
				t.Fatalf("radius %v: kernel not symmetric at %d", r, i)
			}
			if v > kern[half] {
				t.Fatalf("radius %v: weight %d exceeds the center", r, i)
			}
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("radius %v: weights sum to %v", r, sum)
		}
	}
	if kern, half := gaussianKernel1D(0); half != 0 || len(kern) != 1 || kern[0] != 1 {
		t.Fatalf("radius 0: got %v %d", kern, half)
	}
}

func TestBlurStepCounts(t *testing.T) {
	motion := []struct {
		radius float64
		want   int
	}{
		{0.2, 1}, {1.25, 3}, {3, 6}, {19.6, 39}, {30, 40},
	}
	for _, tc := range motion {
		if got := motionSteps(tc.radius); got != tc.want {
			t.Fatalf("motionSteps(%v): got %d want %d", tc.radius, got, tc.want)
		}
	}
	radial := []struct {
		radius float64
		want   int
	}{
		{1, 4}, {3, 5}, {7, 11}, {10, 15}, {50, 30},
	}
	for _, tc := range radial {
		if got := radialSteps(tc.radius); got != tc.want {
			t.Fatalf("radialSteps(%v): got %d want %d", tc.radius, got, tc.want)
		}
	}
}
