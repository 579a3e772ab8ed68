package dsp

// Alpha channel processing: premultiply and unpremultiply kernels for
// 4-channel (RGBA) 8-bit and 16-bit images, generalized to this engine's
// fixed-size U8x4Pixel/U16x4Pixel array layouts, covering both multiply and
// table-based divide, per original_source/src/alpha/common.rs's
// mul_div_255 / mul_div_65535 / div_and_clip identities.

// mulDiv255 computes round(a*b/255) via the fold-carry identity
// ((a*b+128)>>8 + a*b+128) >> 8, exact for a,b in [0,255].
func mulDiv255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8(((t >> 8) + t) >> 8)
}

// mulDiv65535 is the 16-bit analogue of mulDiv255.
func mulDiv65535(a, b uint16) uint16 {
	t := uint32(a)*uint32(b) + 0x8000
	return uint16(((t >> 16) + t) >> 16)
}

// multiplyPixelU8 premultiplies one RGBA8 pixel's color channels by its
// alpha channel, leaving alpha unchanged.
func multiplyPixelU8(p U8x4Pixel) U8x4Pixel {
	a := p[3]
	return U8x4Pixel{mulDiv255(p[0], a), mulDiv255(p[1], a), mulDiv255(p[2], a), a}
}

// dividePixelU8 unpremultiplies one RGBA8 pixel via the table-based
// reciprocal path, the reference (non-approximate) divide semantics.
func dividePixelU8(p U8x4Pixel) U8x4Pixel {
	a := p[3]
	if a == 0 {
		return U8x4Pixel{}
	}
	recip := recipAlpha8[a]
	return U8x4Pixel{divAndClip8(p[0], recip), divAndClip8(p[1], recip), divAndClip8(p[2], recip), a}
}

func multiplyPixelU16(p U16x4Pixel) U16x4Pixel {
	a := p[3]
	return U16x4Pixel{mulDiv65535(p[0], a), mulDiv65535(p[1], a), mulDiv65535(p[2], a), a}
}

func dividePixelU16(p U16x4Pixel) U16x4Pixel {
	a := p[3]
	if a == 0 {
		return U16x4Pixel{}
	}
	recip := recipAlpha16[a]
	return U16x4Pixel{divAndClip16(p[0], recip), divAndClip16(p[1], recip), divAndClip16(p[2], recip), a}
}

// multiplyAlphaRowU8 premultiplies each pixel of src into dst. src and dst
// may be the same slice (in-place), since each pixel read happens before
// its own write and pixels never depend on neighbours.
func multiplyAlphaRowU8(src, dst []U8x4Pixel) {
	for i, p := range src {
		dst[i] = multiplyPixelU8(p)
	}
}

func divideAlphaRowU8(src, dst []U8x4Pixel) {
	for i, p := range src {
		dst[i] = dividePixelU8(p)
	}
}

func multiplyAlphaRowU16(src, dst []U16x4Pixel) {
	for i, p := range src {
		dst[i] = multiplyPixelU16(p)
	}
}

func divideAlphaRowU16(src, dst []U16x4Pixel) {
	for i, p := range src {
		dst[i] = dividePixelU16(p)
	}
}
