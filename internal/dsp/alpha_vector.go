package dsp

import "math"

// Vectorized alpha kernel tiers. True SIMD intrinsics need either cgo or
// hand-written .s assembly; neither is available here (see DESIGN.md for
// why no assembly stubs were carried over). These tiers instead reproduce
// the *data-parallel shape* of a real SIMD kernel — gathering blockSize
// pixels, computing all of them before storing, using the same per-lane
// identities a real SSE4.1/AVX2 kernel would (see
// original_source/src/alpha/u8x4/sse4.rs) — as plain Go over a block,
// with the true tail handled by the scalar kernel. The per-pixel math for
// multiply is identical to the scalar kernel, so tiers stay byte-exact;
// divide instead follows a float-reciprocal path matching real SSE4.1
// behavior, which is only accurate to within one unit per channel.

// multiplyAlphaRowU8Vector premultiplies blockSize pixels at a time before
// touching dst, matching how the real SSE4.1 kernel loads a full 128-bit
// register of 4 pixels before storing. The math is exactly the scalar
// identity, so results are byte-identical to multiplyAlphaRowU8.
func multiplyAlphaRowU8Vector(src, dst []U8x4Pixel, blockSize int) {
	n := len(src)
	full := n - n%blockSize
	var block [8]U8x4Pixel // largest supported blockSize (AVX2 = 8)
	for i := 0; i < full; i += blockSize {
		for j := 0; j < blockSize; j++ {
			block[j] = multiplyPixelU8(src[i+j])
		}
		copy(dst[i:i+blockSize], block[:blockSize])
	}
	if full < n {
		multiplyAlphaRowU8(src[full:], dst[full:])
	}
}

// divideAlphaRowU8Vector unpremultiplies using the float-reciprocal path:
// scale = 255*256/alpha computed in float32 and rounded, rather than the
// scalar kernel's exact integer table lookup. This mirrors
// original_source/src/alpha/u8x4/sse4.rs's divide_alpha_four_pixels and
// may disagree with the scalar result by up to one unit per channel.
func divideAlphaRowU8Vector(src, dst []U8x4Pixel, blockSize int) {
	n := len(src)
	full := n - n%blockSize
	var block [8]U8x4Pixel
	for i := 0; i < full; i += blockSize {
		for j := 0; j < blockSize; j++ {
			block[j] = divideAlphaPixelU8Float(src[i+j])
		}
		copy(dst[i:i+blockSize], block[:blockSize])
	}
	if full < n {
		divideAlphaRowU8(src[full:], dst[full:])
	}
}

// divideAlphaPixelU8Float is the float-reciprocal divide kernel used by
// the vector tiers.
func divideAlphaPixelU8Float(p U8x4Pixel) U8x4Pixel {
	a := p[3]
	if a == 0 {
		return U8x4Pixel{}
	}
	scale := float32(255.0*256.0) / float32(a)
	factor := int32(math.Round(float64(scale)))
	// The pixel sits in the high byte of a 16-bit lane (v<<8) before the
	// multiply-high by factor, so (v<<8)*factor>>16 == v*factor>>8.
	mulHi := func(v uint8) uint8 {
		t := (uint32(v) * uint32(factor)) >> 8
		if t > 0xff {
			t = 0xff
		}
		return uint8(t)
	}
	return U8x4Pixel{mulHi(p[0]), mulHi(p[1]), mulHi(p[2]), a}
}

func multiplyAlphaRowU16Vector(src, dst []U16x4Pixel, blockSize int) {
	n := len(src)
	full := n - n%blockSize
	var block [8]U16x4Pixel
	for i := 0; i < full; i += blockSize {
		for j := 0; j < blockSize; j++ {
			block[j] = multiplyPixelU16(src[i+j])
		}
		copy(dst[i:i+blockSize], block[:blockSize])
	}
	if full < n {
		multiplyAlphaRowU16(src[full:], dst[full:])
	}
}

func divideAlphaRowU16Vector(src, dst []U16x4Pixel, blockSize int) {
	n := len(src)
	full := n - n%blockSize
	var block [8]U16x4Pixel
	for i := 0; i < full; i += blockSize {
		for j := 0; j < blockSize; j++ {
			block[j] = divideAlphaPixelU16Float(src[i+j])
		}
		copy(dst[i:i+blockSize], block[:blockSize])
	}
	if full < n {
		divideAlphaRowU16(src[full:], dst[full:])
	}
}

func divideAlphaPixelU16Float(p U16x4Pixel) U16x4Pixel {
	a := p[3]
	if a == 0 {
		return U16x4Pixel{}
	}
	scale := 65535.0 * 65536.0 / float64(a)
	factor := uint64(math.Round(scale))
	mulHi := func(v uint16) uint16 {
		t := (uint64(v) * factor) >> 16
		if t > 0xffff {
			t = 0xffff
		}
		return uint16(t)
	}
	return U16x4Pixel{mulHi(p[0]), mulHi(p[1]), mulHi(p[2]), a}
}

// blockSizeForTier returns the pixel-block width the given SIMD tier
// processes per iteration: 4 for SSE4.1 and NEON (128-bit / 4 pixels), 8
// for AVX2 (256-bit / 8 pixels). Other tiers fall back to the scalar row
// kernels.
func blockSizeForTier(tier CPUExtensions) int {
	switch tier {
	case CPUAVX2:
		return 8
	case CPUSSE41, CPUNEON:
		return 4
	default:
		return 0
	}
}
