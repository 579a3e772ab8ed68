package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "imgresize",
	Short: "Separable-convolution image resizing and alpha compositing",
	Long: `imgresize resizes raster images with a selectable filter kernel and
converts between straight-alpha and premultiplied-alpha representations.`,
}
