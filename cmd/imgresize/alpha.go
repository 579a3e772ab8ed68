package main

import (
	"fmt"

	"github.com/deepteams/imgresize"
	"github.com/spf13/cobra"
)

var premultiplyCmd = &cobra.Command{
	Use:   "premultiply <in> <out>",
	Short: "Premultiply an image's RGB channels by its alpha channel",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlpha(false),
}

var unpremultiplyCmd = &cobra.Command{
	Use:   "unpremultiply <in> <out>",
	Short: "Unpremultiply an image's RGB channels by its alpha channel",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlpha(true),
}

func init() {
	rootCmd.AddCommand(premultiplyCmd)
	rootCmd.AddCommand(unpremultiplyCmd)
}

func runAlpha(divide bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		decoded, err := decodeFile(args[0])
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		src, err := imgresize.FromImage(decoded)
		if err != nil {
			return err
		}
		dst, err := imgresize.NewOwnedImageView(src.Width(), src.Height(), imgresize.U8x4)
		if err != nil {
			return err
		}

		var engine imgresize.AlphaEngine
		engine.SetCPUExtensions(imgresize.DetectedCPUExtensions())
		if divide {
			err = engine.DivideAlpha(src, dst)
		} else {
			err = engine.MultiplyAlpha(src, dst)
		}
		if err != nil {
			return err
		}

		out, err := imgresize.ToImage(dst)
		if err != nil {
			return err
		}
		if err := encodeFile(args[1], out); err != nil {
			return fmt.Errorf("encoding %s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
		return nil
	}
}
