package dsp

// Alpha premultiply/unpremultiply engine: fails IncompatibleShapes when
// dimensions differ, UnsupportedFormat when the pixel type is not
// 4-channel, and otherwise writes every destination pixel exactly once.

func checkAlphaShapes(src, dst *Image) error {
	if src.width != dst.width || src.height != dst.height {
		return ErrIncompatibleShapes
	}
	if !src.format.HasAlpha() || src.format != dst.format {
		return ErrUnsupportedFormat
	}
	return nil
}

// alphaOp selects which operation (premultiply or unpremultiply) the row
// kernels apply.
type alphaOp int

const (
	opMultiply alphaOp = iota
	opDivide
)

// MultiplyAlpha premultiplies src's RGB channels by its alpha channel,
// writing the result to dst. src and dst must share dimensions and a
// 4-channel pixel format.
func MultiplyAlpha(src, dst *Image, tier CPUExtensions, parallel bool) error {
	return runAlpha(opMultiply, src, dst, tier, parallel)
}

// MultiplyAlphaInPlace premultiplies img's pixels in place.
func MultiplyAlphaInPlace(img *Image, tier CPUExtensions, parallel bool) error {
	return runAlpha(opMultiply, img, img, tier, parallel)
}

// DivideAlpha unpremultiplies src's RGB channels, writing the result to
// dst. When a pixel's alpha is 0 the destination pixel is (0,0,0,0).
func DivideAlpha(src, dst *Image, tier CPUExtensions, parallel bool) error {
	return runAlpha(opDivide, src, dst, tier, parallel)
}

// DivideAlphaInPlace unpremultiplies img's pixels in place.
func DivideAlphaInPlace(img *Image, tier CPUExtensions, parallel bool) error {
	return runAlpha(opDivide, img, img, tier, parallel)
}

func runAlpha(op alphaOp, src, dst *Image, tier CPUExtensions, parallel bool) error {
	if err := checkAlphaShapes(src, dst); err != nil {
		return err
	}
	resolved := resolveTier(tier)
	switch src.format {
	case U8x4:
		srcV, err := AsTyped[U8x4Pixel](src)
		if err != nil {
			return err
		}
		dstV, err := AsTyped[U8x4Pixel](dst)
		if err != nil {
			return err
		}
		run := func(start, rows int) {
			s, d := srcV.SubView(start, rows), dstV.SubView(start, rows)
			for y := 0; y < rows; y++ {
				alphaRowU8(op, resolved, s.Row(y), d.Row(y))
			}
		}
		if parallel {
			RunRows(src.height, run)
		} else {
			run(0, src.height)
		}
		return nil
	case U16x4:
		srcV, err := AsTyped[U16x4Pixel](src)
		if err != nil {
			return err
		}
		dstV, err := AsTyped[U16x4Pixel](dst)
		if err != nil {
			return err
		}
		run := func(start, rows int) {
			s, d := srcV.SubView(start, rows), dstV.SubView(start, rows)
			for y := 0; y < rows; y++ {
				alphaRowU16(op, resolved, s.Row(y), d.Row(y))
			}
		}
		if parallel {
			RunRows(src.height, run)
		} else {
			run(0, src.height)
		}
		return nil
	default:
		return ErrUnsupportedFormat
	}
}

func alphaRowU8(op alphaOp, tier CPUExtensions, src, dst []U8x4Pixel) {
	block := blockSizeForTier(tier)
	switch {
	case op == opMultiply && block > 0:
		multiplyAlphaRowU8Vector(src, dst, block)
	case op == opMultiply:
		multiplyAlphaRowU8(src, dst)
	case op == opDivide && block > 0:
		divideAlphaRowU8Vector(src, dst, block)
	default:
		divideAlphaRowU8(src, dst)
	}
}

func alphaRowU16(op alphaOp, tier CPUExtensions, src, dst []U16x4Pixel) {
	block := blockSizeForTier(tier)
	switch {
	case op == opMultiply && block > 0:
		multiplyAlphaRowU16Vector(src, dst, block)
	case op == opMultiply:
		multiplyAlphaRowU16(src, dst)
	case op == opDivide && block > 0:
		divideAlphaRowU16Vector(src, dst, block)
	default:
		divideAlphaRowU16(src, dst)
	}
}
