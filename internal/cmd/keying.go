package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/iconkey/internal/chroma"
)

// defaultBrushSize is a nominal brush diameter for CLI sessions; the
// batch and remove commands never paint, but options carry a brush size
// and it must validate.
const defaultBrushSize = 20

// addKeyingFlags registers the shared keying flags on cmd and binds
// them to viper under the given prefix (e.g. "remove.tolerance").
func addKeyingFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().IntP("tolerance", "t", 30, "Max color distance treated as fully background (UI range 0-150)")
	cmd.Flags().IntP("smoothness", "s", 20, "Width of the transparency falloff band (UI range 0-100)")
	cmd.Flags().StringP("color", "c", "#FFFFFF", "Background color as #RRGGBB (ignored with --auto-detect)")
	cmd.Flags().Bool("auto-detect", true, "Estimate the background color from corner samples")
	cmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{prefix + ".tolerance", "tolerance"},
		{prefix + ".smoothness", "smoothness"},
		{prefix + ".color", "color"},
		{prefix + ".auto_detect", "auto-detect"},
		{prefix + ".png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// keyingOptions assembles validated chroma options from the viper keys
// registered by addKeyingFlags.
func keyingOptions(prefix string) (chroma.Options, error) {
	target, err := chroma.ParseHex(viper.GetString(prefix + ".color"))
	if err != nil {
		return chroma.Options{}, err
	}

	opts := chroma.Options{
		Target:     target,
		Tolerance:  viper.GetInt(prefix + ".tolerance"),
		Smoothness: viper.GetInt(prefix + ".smoothness"),
		AutoDetect: viper.GetBool(prefix + ".auto_detect"),
		BrushSize:  defaultBrushSize,
	}
	if err := opts.Validate(); err != nil {
		return chroma.Options{}, err
	}
	return opts, nil
}
