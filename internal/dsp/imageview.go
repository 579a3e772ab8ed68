package dsp

import (
	"iter"
	"unsafe"
)

// Image is an untyped (width, height, buffer, format) triple. It either
// owns its buffer or borrows one supplied by the caller; both cases are
// expressed through the same constructor and view API.
type Image struct {
	width, height int
	buf           []byte
	format        PixelFormat
}

// NewImage constructs an Image, borrowing buf. It fails with
// ErrZeroDimension when width or height is non-positive, and with
// ErrInvalidBuffer when buf's length does not equal
// width*height*format.BytesPerPixel().
func NewImage(width, height int, buf []byte, format PixelFormat) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroDimension
	}
	if !format.Valid() {
		return nil, ErrUnsupportedFormat
	}
	want := width * height * format.BytesPerPixel()
	if len(buf) != want {
		return nil, ErrInvalidBuffer
	}
	return &Image{width: width, height: height, buf: buf, format: format}, nil
}

// NewOwnedImage allocates a fresh zeroed buffer sized for the given
// dimensions and format.
func NewOwnedImage(width, height int, format PixelFormat) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroDimension
	}
	if !format.Valid() {
		return nil, ErrUnsupportedFormat
	}
	buf := make([]byte, width*height*format.BytesPerPixel())
	return &Image{width: width, height: height, buf: buf, format: format}, nil
}

func (img *Image) Width() int          { return img.width }
func (img *Image) Height() int         { return img.height }
func (img *Image) Format() PixelFormat { return img.format }
func (img *Image) Bytes() []byte       { return img.buf }
func (img *Image) Stride() int         { return img.width * img.format.BytesPerPixel() }

// Row returns the raw byte slice for row y (no bounds check beyond what
// Go's slicing already performs; y must be in [0, height)).
func (img *Image) Row(y int) []byte {
	stride := img.Stride()
	return img.buf[y*stride : (y+1)*stride]
}

// PixelType is the set of fixed-size pixel representations a TypedView
// may be specialized to. Each corresponds one-to-one with a PixelFormat.
type PixelType interface {
	U8Pixel | U8x2Pixel | U8x3Pixel | U8x4Pixel | U16Pixel | U16x2Pixel | U16x3Pixel | U16x4Pixel
}

type (
	U8Pixel   [1]uint8
	U8x2Pixel [2]uint8
	U8x3Pixel [3]uint8
	U8x4Pixel [4]uint8
	U16Pixel  [1]uint16
	U16x2Pixel [2]uint16
	U16x3Pixel [3]uint16
	U16x4Pixel [4]uint16
)

// FormatOf returns the PixelFormat corresponding to the pixel type T.
func FormatOf[T PixelType]() PixelFormat {
	var zero T
	switch any(zero).(type) {
	case U8Pixel:
		return U8
	case U8x2Pixel:
		return U8x2
	case U8x3Pixel:
		return U8x3
	case U8x4Pixel:
		return U8x4
	case U16Pixel:
		return U16
	case U16x2Pixel:
		return U16x2
	case U16x3Pixel:
		return U16x3
	case U16x4Pixel:
		return U16x4
	default:
		return -1
	}
}

// TypedView is a borrow of an Image specialized to a concrete pixel type
// T. The underlying buffer length is always a multiple of sizeof(T); row
// iteration yields exactly height rows of exactly width typed pixels.
type TypedView[T PixelType] struct {
	width, height int
	pixels        []T
}

// AsTyped reinterprets img as a TypedView[T], a zero-cost view over the
// same backing array. It fails with ErrFormatMismatch when img's runtime
// pixel format does not match T's.
func AsTyped[T PixelType](img *Image) (*TypedView[T], error) {
	if img.format != FormatOf[T]() {
		return nil, ErrFormatMismatch
	}
	var zero T
	n := len(img.buf) / int(unsafe.Sizeof(zero))
	var pixels []T
	if n > 0 {
		pixels = unsafe.Slice((*T)(unsafe.Pointer(&img.buf[0])), n)
	}
	return &TypedView[T]{width: img.width, height: img.height, pixels: pixels}, nil
}

func (v *TypedView[T]) Width() int  { return v.width }
func (v *TypedView[T]) Height() int { return v.height }

// Row returns the typed pixel slice for row y, of length exactly Width().
func (v *TypedView[T]) Row(y int) []T {
	return v.pixels[y*v.width : (y+1)*v.width]
}

// Rows iterates rows starting at offset, yielding (row index, row slice)
// pairs. The mutable and read-only forms share this signature; exclusive
// access for the mutable form is a caller-held contract, not enforced by
// the type system (Go has no borrow checker), matching how the rest of
// this package's in-place kernels already rely on disjoint access.
func (v *TypedView[T]) Rows(offset int) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for y := offset; y < v.height; y++ {
			if !yield(y, v.Row(y)) {
				return
			}
		}
	}
}

// SubView returns a TypedView over rows [startRow, startRow+rows) of v,
// sharing the same backing array. Used by the row partitioner (C8) to
// hand each worker a disjoint slice of rows.
func (v *TypedView[T]) SubView(startRow, rows int) *TypedView[T] {
	return &TypedView[T]{
		width:  v.width,
		height: rows,
		pixels: v.pixels[startRow*v.width : (startRow+rows)*v.width],
	}
}
