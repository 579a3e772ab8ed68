package dsp

import "math"

// Filter is a separable resampling kernel: a 1D weighting function and
// its support radius R (the function is assumed to be 0 outside
// [-R, R]). Filter catalogue grounded on the kernel set
// golang.org/x/image/draw ships (Box, NearestNeighbor, ApproxBiLinear,
// CatmullRom), generalized here to arbitrary filter functions the way
// original_source's convolution module parameterizes over a filter trait.
type Filter struct {
	Name    string
	F       func(x float64) float64
	Support float64
}

// Box is a 1-wide box filter (nearest-neighbour-equivalent averaging).
var Box = Filter{Name: "box", Support: 0.5, F: func(x float64) float64 {
	if x >= -0.5 && x < 0.5 {
		return 1
	}
	return 0
}}

// Triangle is the bilinear (tent) filter.
var Triangle = Filter{Name: "triangle", Support: 1.0, F: func(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return 1 - x
	}
	return 0
}}

// CatmullRom is the Catmull-Rom cubic spline filter (B=0, C=0.5).
var CatmullRom = Filter{Name: "catmullrom", Support: 2.0, F: func(x float64) float64 {
	return cubicBC(x, 0, 0.5)
}}

// Mitchell is the Mitchell-Netravali cubic filter (B=1/3, C=1/3).
var Mitchell = Filter{Name: "mitchell", Support: 2.0, F: func(x float64) float64 {
	return cubicBC(x, 1.0/3, 1.0/3)
}}

func cubicBC(x, b, c float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	}
	if x < 2 {
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}

// Lanczos3 is the 3-lobe Lanczos windowed-sinc filter.
var Lanczos3 = Filter{Name: "lanczos3", Support: 3.0, F: func(x float64) float64 {
	if x == 0 {
		return 1
	}
	ax := math.Abs(x)
	if ax >= 3 {
		return 0
	}
	return sinc(x) * sinc(x/3)
}}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// Bound is the source index range [Start, Start+Size) contributing to one
// destination pixel, with Size <= the coefficients' WindowSize.
type Bound struct {
	Start, Size int
}

// Coefficients is a resize axis's per-destination-pixel sample bounds and
// floating-point weights, created by BuildCoefficients and consumed by
// Normalize then the convolution engine. Values holds, for each
// destination pixel i, exactly WindowSize entries at
// Values[i*WindowSize:(i+1)*WindowSize], zero-padded on the right when
// Bounds[i].Size < WindowSize.
type Coefficients struct {
	Values     []float64
	WindowSize int
	Bounds     []Bound
}

// BuildCoefficients computes, for a resize from source dimension s to
// destination dimension d using filter, each destination pixel's sample
// window and normalized (sum to 1) weights.
func BuildCoefficients(s, d int, f Filter) (*Coefficients, error) {
	if s <= 0 || d <= 0 {
		return nil, ErrZeroDimension
	}
	scale := float64(s) / float64(d)
	filterScale := math.Max(1.0, scale)
	support := f.Support * filterScale

	bounds := make([]Bound, d)
	rawWeights := make([][]float64, d)
	windowSize := 0

	for i := 0; i < d; i++ {
		center := (float64(i) + 0.5) * scale
		left := int(math.Ceil(center - support))
		right := int(math.Floor(center + support))
		if left < 0 {
			left = 0
		}
		if right > s-1 {
			right = s - 1
		}
		if right < left {
			right = left
		}
		size := right - left + 1

		weights := make([]float64, size)
		var sum float64
		for k := 0; k < size; k++ {
			srcX := float64(left+k) + 0.5 - center
			w := f.F(srcX / filterScale)
			weights[k] = w
			sum += w
		}
		if sum != 0 {
			for k := range weights {
				weights[k] /= sum
			}
		}

		bounds[i] = Bound{Start: left, Size: size}
		rawWeights[i] = weights
		if size > windowSize {
			windowSize = size
		}
	}

	values := make([]float64, d*windowSize)
	for i, w := range rawWeights {
		copy(values[i*windowSize:], w)
	}

	return &Coefficients{Values: values, WindowSize: windowSize, Bounds: bounds}, nil
}
