package dsp

import "math"

// Normalized is a companion fixed-point integer weight array for a
// Coefficients bundle, plus the precision P used to produce it. Scaled is
// stored widened to int32 regardless of source channel width; the range
// invariant (fits int16 for 8-bit pixels, int32-safe accumulation for
// 16-bit pixels) is enforced by Normalize, not by the Go storage type.
type Normalized struct {
	Precision  int
	WindowSize int
	Bounds     []Bound
	Scaled     []int32
	channelMax int
}

// Normalize converts c's floating-point weights to fixed-point integer
// weights at the largest precision that keeps every scaled weight within
// its accumulator's safe range, then applies error diffusion so each
// destination pixel's scaled weights sum to exactly 1<<P. channelWidth is
// 8 or 16, matching the source pixel format's ChannelWidth().
func Normalize(c *Coefficients, channelWidth int) (*Normalized, error) {
	var minP, maxP, channelMax int
	switch channelWidth {
	case 8:
		minP, maxP, channelMax = 8, 14, 255
	case 16:
		minP, maxP, channelMax = 32, 32, 65535
	default:
		return nil, ErrUnsupportedFormat
	}

	precision := choosePrecision(c.Values, minP, maxP)

	scaled := make([]int32, len(c.Values))
	one := int64(1) << uint(precision)
	for i, b := range c.Bounds {
		row := c.Values[i*c.WindowSize : i*c.WindowSize+c.WindowSize]
		out := scaled[i*c.WindowSize : i*c.WindowSize+c.WindowSize]
		var sum int64
		for k, w := range row {
			v := int32(math.Round(w * float64(one)))
			out[k] = v
			sum += int64(v)
		}
		diffuseError(out[:b.Size], sum, one)
	}

	return &Normalized{
		Precision:  precision,
		WindowSize: c.WindowSize,
		Bounds:     c.Bounds,
		Scaled:     scaled,
		channelMax: channelMax,
	}, nil
}

// choosePrecision finds the largest P in [minP, maxP] such that every
// weight, scaled by 2^P and rounded, fits in a signed 16-bit integer
// (the width the spec's "i16 (or i32 for 16-bit depth)" coefficient array
// assumes for 8-bit pixels; for 16-bit pixels minP==maxP so there is
// nothing to search).
func choosePrecision(values []float64, minP, maxP int) int {
	var maxAbs float64
	for _, w := range values {
		if a := math.Abs(w); a > maxAbs {
			maxAbs = a
		}
	}
	for p := maxP; p > minP; p-- {
		if maxAbs*float64(int64(1)<<uint(p)) <= 32767 {
			return p
		}
	}
	return minP
}

// diffuseError perturbs the row's non-padding weights by ±1 so their sum
// becomes exactly `one`: the residual is spread one step per tap, starting
// at the largest-magnitude tap and wrapping round the row. A residual
// larger than the row length first adds residual/len(row) to every tap.
func diffuseError(row []int32, sum int64, one int64) {
	diff := one - sum
	if diff == 0 || len(row) == 0 {
		return
	}
	best := 0
	bestAbs := int32(0)
	for i, v := range row {
		a := v
		if a < 0 {
			a = -a
		}
		if a >= bestAbs {
			bestAbs = a
			best = i
		}
	}
	n := int64(len(row))
	step := int32(1)
	if diff < 0 {
		step, diff = -1, -diff
	}
	if q := diff / n; q > 0 {
		for i := range row {
			row[i] += step * int32(q)
		}
	}
	for i := int64(0); i < diff%n; i++ {
		row[(int64(best)+i)%n] += step
	}
}

// Chunk returns destination pixel i's sample window start/size and its
// WindowSize-long (zero-padded) scaled weight slice.
func (n *Normalized) Chunk(i int) (start, size int, weights []int32) {
	b := n.Bounds[i]
	return b.Start, b.Size, n.Scaled[i*n.WindowSize : (i+1)*n.WindowSize]
}

// Initial is the accumulator seed 1<<(P-1), the round-to-nearest bias.
func (n *Normalized) Initial() int64 {
	return int64(1) << uint(n.Precision-1)
}

// Clip performs an arithmetic right shift of sum by P, then saturates to
// [0, channelMax], the per-format channel max rather than a fixed [0,255].
func (n *Normalized) Clip(sum int64) uint32 {
	v := sum >> uint(n.Precision)
	if v < 0 {
		return 0
	}
	if v > int64(n.channelMax) {
		return uint32(n.channelMax)
	}
	return uint32(v)
}
