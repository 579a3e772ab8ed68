// Package imgresize is a high-performance 2D raster image resampling and
// alpha-compositing engine: separable-convolution resize with a
// user-selectable filter kernel, plus straight-alpha/premultiplied-alpha
// conversion. It is a thin façade over internal/dsp, which holds the
// actual pixel-format, filter, and convolution kernels.
package imgresize

import "github.com/deepteams/imgresize/internal/dsp"

// PixelFormat enumerates the supported pixel layouts.
type PixelFormat = dsp.PixelFormat

const (
	U8    = dsp.U8
	U8x2  = dsp.U8x2
	U8x3  = dsp.U8x3
	U8x4  = dsp.U8x4
	U16   = dsp.U16
	U16x2 = dsp.U16x2
	U16x3 = dsp.U16x3
	U16x4 = dsp.U16x4
)

// CPUExtensions is a coarse SIMD capability tier, ordered None < SSE2 <
// SSE41 < AVX2 (NEON is a separate, non-comparable ARM tier).
type CPUExtensions = dsp.CPUExtensions

const (
	CPUNone  = dsp.CPUNone
	CPUSSE2  = dsp.CPUSSE2
	CPUSSE41 = dsp.CPUSSE41
	CPUAVX2  = dsp.CPUAVX2
	CPUNEON  = dsp.CPUNEON
)

// DetectedCPUExtensions returns the highest SIMD tier available on the
// host process, probed once at package init via golang.org/x/sys/cpu.
func DetectedCPUExtensions() CPUExtensions { return dsp.DetectedCPUExtensions() }

// Errors returned by the core. All are sentinel values; compare with
// errors.Is.
var (
	ErrInvalidBuffer      = dsp.ErrInvalidBuffer
	ErrFormatMismatch     = dsp.ErrFormatMismatch
	ErrIncompatibleShapes = dsp.ErrIncompatibleShapes
	ErrUnsupportedFormat  = dsp.ErrUnsupportedFormat
	ErrZeroDimension      = dsp.ErrZeroDimension
)

// ImageView is a (width, height, buffer, format) image, either owning its
// buffer or borrowing a caller-supplied one.
type ImageView struct {
	img *dsp.Image
}

// NewImageView constructs an ImageView borrowing buf. It fails with
// ErrZeroDimension when width or height is non-positive, and with
// ErrInvalidBuffer when buf's length does not match the dimensions and
// pixel format.
func NewImageView(width, height int, buf []byte, format PixelFormat) (*ImageView, error) {
	img, err := dsp.NewImage(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	return &ImageView{img: img}, nil
}

// NewOwnedImageView allocates a fresh zeroed buffer for the given
// dimensions and format.
func NewOwnedImageView(width, height int, format PixelFormat) (*ImageView, error) {
	img, err := dsp.NewOwnedImage(width, height, format)
	if err != nil {
		return nil, err
	}
	return &ImageView{img: img}, nil
}

func (v *ImageView) Width() int          { return v.img.Width() }
func (v *ImageView) Height() int         { return v.img.Height() }
func (v *ImageView) Format() PixelFormat { return v.img.Format() }
func (v *ImageView) Bytes() []byte       { return v.img.Bytes() }

// Filter is a separable resampling kernel.
type Filter = dsp.Filter

// Standard filter catalogue, grounded on golang.org/x/image/draw's kernel
// set and original_source's convolution module.
var (
	FilterBox        = dsp.Box
	FilterTriangle   = dsp.Triangle
	FilterCatmullRom = dsp.CatmullRom
	FilterMitchell   = dsp.Mitchell
	FilterLanczos3   = dsp.Lanczos3
)

// AlphaEngine premultiplies and unpremultiplies RGBA images (8-bit and
// 16-bit). Its CPU tier and parallel-execution settings are configured
// through the setters below and apply to every subsequent call.
type AlphaEngine struct {
	cpuExt   CPUExtensions
	parallel bool
}

// SetCPUExtensions records the caller's requested SIMD tier. Unchecked:
// the caller asserts the host supports the requested tier; the engine
// downgrades silently to a lower tier if it is not actually available.
func (e *AlphaEngine) SetCPUExtensions(tag CPUExtensions) { e.cpuExt = tag }

// SetParallel toggles row-partitioned parallel execution for every
// subsequent call on this engine.
func (e *AlphaEngine) SetParallel(enabled bool) { e.parallel = enabled }

// MultiplyAlpha premultiplies src's RGB channels by its alpha channel,
// writing dst. Fails with ErrIncompatibleShapes when dimensions differ,
// ErrUnsupportedFormat when the pixel format is not 4-channel.
func (e *AlphaEngine) MultiplyAlpha(src, dst *ImageView) error {
	return dsp.MultiplyAlpha(src.img, dst.img, e.cpuExt, e.parallel)
}

// MultiplyAlphaInPlace premultiplies img's pixels in place.
func (e *AlphaEngine) MultiplyAlphaInPlace(img *ImageView) error {
	return dsp.MultiplyAlphaInPlace(img.img, e.cpuExt, e.parallel)
}

// DivideAlpha unpremultiplies src's RGB channels, writing dst. A pixel
// with alpha 0 maps to (0,0,0,0).
func (e *AlphaEngine) DivideAlpha(src, dst *ImageView) error {
	return dsp.DivideAlpha(src.img, dst.img, e.cpuExt, e.parallel)
}

// DivideAlphaInPlace unpremultiplies img's pixels in place.
func (e *AlphaEngine) DivideAlphaInPlace(img *ImageView) error {
	return dsp.DivideAlphaInPlace(img.img, e.cpuExt, e.parallel)
}

// Resizer runs separable-convolution resizing.
type Resizer struct {
	r dsp.Resizer
}

// SetCPUExtensions records the caller's requested SIMD tier, unchecked.
func (r *Resizer) SetCPUExtensions(tag CPUExtensions) { r.r.SetCPUExtensions(tag) }

// SetParallel toggles row-partitioned parallel execution for every
// subsequent Resize call on this Resizer.
func (r *Resizer) SetParallel(enabled bool) { r.r.SetParallel(enabled) }

// Resize writes a resized copy of src into dst using filter. src and dst
// must share a pixel format (ErrFormatMismatch otherwise).
func (r *Resizer) Resize(src, dst *ImageView, filter Filter) error {
	return r.r.Resize(src.img, dst.img, filter)
}
