// Package dsp provides the low-level resampling and alpha-compositing
// kernels for the imgresize engine: pixel formats, typed image views,
// CPU-feature dispatch, the alpha premultiply/unpremultiply engine, and
// the separable convolution resizer.
package dsp

import "fmt"

// PixelFormat enumerates the supported pixel layouts. Each format has a
// fixed channel count and per-channel bit width; formats with four
// channels are treated as RGBA, with channel index 3 holding alpha.
type PixelFormat int

const (
	U8 PixelFormat = iota
	U8x2
	U8x3
	U8x4
	U16
	U16x2
	U16x3
	U16x4
)

// String implements fmt.Stringer for diagnostic output.
func (f PixelFormat) String() string {
	switch f {
	case U8:
		return "U8"
	case U8x2:
		return "U8x2"
	case U8x3:
		return "U8x3"
	case U8x4:
		return "U8x4"
	case U16:
		return "U16"
	case U16x2:
		return "U16x2"
	case U16x3:
		return "U16x3"
	case U16x4:
		return "U16x4"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Channels returns the channel count for the format.
func (f PixelFormat) Channels() int {
	switch f {
	case U8, U16:
		return 1
	case U8x2, U16x2:
		return 2
	case U8x3, U16x3:
		return 3
	case U8x4, U16x4:
		return 4
	default:
		return 0
	}
}

// ChannelWidth returns the per-channel bit width: 8 or 16.
func (f PixelFormat) ChannelWidth() int {
	switch f {
	case U8, U8x2, U8x3, U8x4:
		return 8
	case U16, U16x2, U16x3, U16x4:
		return 16
	default:
		return 0
	}
}

// BytesPerPixel returns channels * channelWidth/8.
func (f PixelFormat) BytesPerPixel() int {
	return f.Channels() * f.ChannelWidth() / 8
}

// HasAlpha reports whether the format carries an alpha channel at index 3.
// Only the 4-channel formats are treated as RGBA.
func (f PixelFormat) HasAlpha() bool {
	return f.Channels() == 4
}

// ChannelMax returns the maximum representable channel value: 255 for
// 8-bit formats, 65535 for 16-bit formats.
func (f PixelFormat) ChannelMax() int {
	if f.ChannelWidth() == 16 {
		return 65535
	}
	return 255
}

// Valid reports whether f is one of the declared pixel formats.
func (f PixelFormat) Valid() bool {
	return f >= U8 && f <= U16x4
}
