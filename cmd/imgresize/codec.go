package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// decodeFile reads an image file, dispatching on its extension. PNG and
// JPEG use the standard library; BMP and TIFF use golang.org/x/image for
// non-stdlib raster formats.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	case ".tif", ".tiff":
		return tiff.Decode(f)
	default:
		img, _, err := image.Decode(f)
		return img, err
	}
}

// encodeFile writes img to path, dispatching on extension the same way
// decodeFile does.
func encodeFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		return tiff.Encode(f, img, nil)
	default:
		return fmt.Errorf("imgresize: unsupported output extension %q", filepath.Ext(path))
	}
}
