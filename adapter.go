package imgresize

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a standard library image.Image into an owned
// U8x4 ImageView in premultiplied-free (straight-alpha) RGBA byte order
// (R,G,B,A at offsets 0,1,2,3). This is ambient glue for the CLI and for
// cross-checking against golang.org/x/image/draw in tests; it is not
// part of the core resampling/alpha contract.
func FromImage(img image.Image) (*ImageView, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	view, err := NewOwnedImageView(width, height, U8x4)
	if err != nil {
		return nil, err
	}
	buf := view.Bytes()
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == width*4 {
		copy(buf, nrgba.Pix[:width*height*4])
		return view, nil
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := (y*width + x) * 4
			buf[off+0] = c.R
			buf[off+1] = c.G
			buf[off+2] = c.B
			buf[off+3] = c.A
		}
	}
	return view, nil
}

// ToImage converts a straight-alpha U8x4 ImageView into a standard
// library *image.NRGBA.
func ToImage(v *ImageView) (*image.NRGBA, error) {
	if v.Format() != U8x4 {
		return nil, fmt.Errorf("imgresize: ToImage requires U8x4, got %s: %w", v.Format(), ErrFormatMismatch)
	}
	width, height := v.Width(), v.Height()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(out.Pix, v.Bytes())
	return out, nil
}
