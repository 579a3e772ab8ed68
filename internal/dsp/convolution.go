package dsp

import "github.com/deepteams/imgresize/internal/pool"

// Convolution engine: a resize is a horizontal pass (source ->
// intermediate of shape (dstWidth, srcHeight)) followed by a vertical
// pass (intermediate -> destination). Either pass is skipped when its
// axis is unchanged, so resizing only one axis never touches the other.
// Per-pixel-format channel access uses small offset helpers over raw byte
// rows instead of generics over the TypedView pixel types (the alpha
// engine's approach, whose row kernels take typed pixel slices).

// readChannel8 reads channel ch of the pixel at byte offset pixelOff in
// an 8-bit-per-channel buffer.
func readChannel8(buf []byte, pixelOff, ch int) int32 {
	return int32(buf[pixelOff+ch])
}

func writeChannel8(buf []byte, pixelOff, ch int, v uint32) {
	buf[pixelOff+ch] = byte(v)
}

func readChannel16(buf []byte, pixelOff, ch int) int32 {
	off := pixelOff + ch*2
	return int32(uint16(buf[off]) | uint16(buf[off+1])<<8)
}

func writeChannel16(buf []byte, pixelOff, ch int, v uint32) {
	off := pixelOff + ch*2
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

// Resizer runs a separable convolution resize: horizontal pass then
// vertical pass, dispatched per pixel format and (advisory) CPU tier,
// with optional row-partitioned fan-out.
type Resizer struct {
	cpuExt   CPUExtensions
	parallel bool
}

// SetCPUExtensions records the caller's requested SIMD tier. Unchecked:
// the caller asserts the host actually supports the requested tier: the
// dispatcher downgrades to the next lower compiled-and-detected tier
// automatically, but does not validate the assertion itself.
func (r *Resizer) SetCPUExtensions(tag CPUExtensions) { r.cpuExt = tag }

// SetParallel toggles row-partitioned parallel execution.
func (r *Resizer) SetParallel(enabled bool) { r.parallel = enabled }

// Resize writes a resized copy of src into dst using filter. src and dst
// must share a pixel format.
func (r *Resizer) Resize(src, dst *Image, filter Filter) error {
	if src.format != dst.format {
		return ErrFormatMismatch
	}
	if !src.format.Valid() {
		return ErrUnsupportedFormat
	}

	tier := resolveTier(r.cpuExt)
	widthChanged := src.width != dst.width
	heightChanged := src.height != dst.height

	switch {
	case !widthChanged && !heightChanged:
		copy(dst.buf, src.buf)
		return nil
	case widthChanged && !heightChanged:
		return r.runHorizontal(src, dst, filter, tier)
	case !widthChanged && heightChanged:
		return r.runVertical(src, dst, filter, tier)
	default:
		mid, err := NewOwnedImage(dst.width, src.height, src.format)
		if err != nil {
			return err
		}
		if err := r.runHorizontal(src, mid, filter, tier); err != nil {
			return err
		}
		return r.runVertical(mid, dst, filter, tier)
	}
}

func (r *Resizer) runHorizontal(src, dst *Image, filter Filter, tier CPUExtensions) error {
	coeffs, err := BuildCoefficients(src.width, dst.width, filter)
	if err != nil {
		return err
	}
	norm, err := Normalize(coeffs, src.format.ChannelWidth())
	if err != nil {
		return err
	}
	run := func(start, rows int) {
		for y := start; y < start+rows; y++ {
			convolveRowHorizontal(src.Row(y), dst.Row(y), dst.width, src.format, norm, tier)
		}
	}
	if r.parallel {
		RunRows(src.height, run)
	} else {
		run(0, src.height)
	}
	return nil
}

func (r *Resizer) runVertical(src, dst *Image, filter Filter, tier CPUExtensions) error {
	coeffs, err := BuildCoefficients(src.height, dst.height, filter)
	if err != nil {
		return err
	}
	norm, err := Normalize(coeffs, src.format.ChannelWidth())
	if err != nil {
		return err
	}
	stride := src.Stride()
	run := func(start, rows int) {
		for j := start; j < start+rows; j++ {
			convolveColumnVertical(src.buf, stride, src.width, dst.Row(j), src.format, norm, j, tier)
		}
	}
	if r.parallel {
		RunRows(dst.height, run)
	} else {
		run(0, dst.height)
	}
	return nil
}

// convolveRowHorizontal fills one destination row from one source row,
// per destination pixel, per channel, via a scalar accumulation loop.
// The "vector" tiers batch blockSizeForTier(tier) destination pixels
// before touching memory (mirroring the real SIMD kernels' load-many,
// compute-many, store-many shape) but share the exact same per-pixel
// accumulation, so output is bitwise identical across tiers as required.
func convolveRowHorizontal(srcRow, dstRow []byte, dstWidth int, format PixelFormat, norm *Normalized, tier CPUExtensions) {
	bpp := format.BytesPerPixel()
	channels := format.Channels()
	is16 := format.ChannelWidth() == 16
	block := blockSizeForTier(tier)
	if block == 0 {
		block = 1
	}
	scratch := pool.Get(block * bpp)
	defer pool.Put(scratch)

	for i := 0; i < dstWidth; i += block {
		n := block
		if i+n > dstWidth {
			n = dstWidth - i
		}
		for j := 0; j < n; j++ {
			di := i + j
			start, size, weights := norm.Chunk(di)
			out := scratch[j*bpp : (j+1)*bpp]
			for ch := 0; ch < channels; ch++ {
				sum := norm.Initial()
				for k := 0; k < size; k++ {
					var v int32
					if is16 {
						v = readChannel16(srcRow, (start+k)*bpp, ch)
					} else {
						v = readChannel8(srcRow, (start+k)*bpp, ch)
					}
					sum += int64(v) * int64(weights[k])
				}
				clipped := norm.Clip(sum)
				if is16 {
					writeChannel16(out, 0, ch, clipped)
				} else {
					writeChannel8(out, 0, ch, clipped)
				}
			}
		}
		copy(dstRow[i*bpp:(i+n)*bpp], scratch[:n*bpp])
	}
}

// convolveColumnVertical fills destination row j from the source image's
// rows in j's sample window, one destination pixel and channel at a time.
func convolveColumnVertical(srcBuf []byte, srcStride, width int, dstRow []byte, format PixelFormat, norm *Normalized, j int, tier CPUExtensions) {
	bpp := format.BytesPerPixel()
	channels := format.Channels()
	is16 := format.ChannelWidth() == 16

	start, size, weights := norm.Chunk(j)
	for x := 0; x < width; x++ {
		pixelOff := x * bpp
		for ch := 0; ch < channels; ch++ {
			sum := norm.Initial()
			for k := 0; k < size; k++ {
				rowOff := (start+k)*srcStride + pixelOff
				var v int32
				if is16 {
					v = readChannel16(srcBuf, rowOff, ch)
				} else {
					v = readChannel8(srcBuf, rowOff, ch)
				}
				sum += int64(v) * int64(weights[k])
			}
			clipped := norm.Clip(sum)
			if is16 {
				writeChannel16(dstRow, pixelOff, ch, clipped)
			} else {
				writeChannel8(dstRow, pixelOff, ch, clipped)
			}
		}
	}
}
