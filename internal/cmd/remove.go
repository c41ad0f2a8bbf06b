package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/iconkey/internal/editor"
	"github.com/MeKo-Tech/iconkey/internal/imgio"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Key out the background of a single image",
	Long:  `Remove the background color from one icon image and write a transparent PNG.`,
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringP("input", "i", "", "Input image path (required)")
	removeCmd.Flags().StringP("output", "o", "", "Output PNG path (default: <input>_transparent.png)")
	addKeyingFlags(removeCmd, "remove")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"remove.input", "input"},
		{"remove.output", "output"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, removeCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	input := viper.GetString("remove.input")
	output := viper.GetString("remove.output")

	if logger == nil {
		initLogging()
	}

	if input == "" {
		return fmt.Errorf("--input is required")
	}
	if output == "" {
		output = deriveOutputPath(input)
	}

	opts, err := keyingOptions("remove")
	if err != nil {
		return err
	}

	img, format, err := imgio.DecodeFile(input)
	if err != nil {
		return fmt.Errorf("no image available: %w", err)
	}

	session, err := editor.NewSession(opts, logger)
	if err != nil {
		return err
	}
	if err := session.Load(img); err != nil {
		return err
	}

	out, err := session.Recomposite()
	if err != nil {
		return fmt.Errorf("failed to composite: %w", err)
	}

	level := imgio.CompressionLevel(viper.GetString("remove.png_compression"))
	if err := imgio.WriteFile(output, out, level); err != nil {
		return err
	}

	info := session.Info()
	logger.Info("Background removed",
		"input", input,
		"format", format,
		"output", output,
		"width", info.Width,
		"height", info.Height,
		"tolerance", opts.Tolerance,
		"smoothness", opts.Smoothness,
		"auto_detect", opts.AutoDetect,
	)
	return nil
}

// deriveOutputPath turns "icon.png" into "icon_transparent.png".
func deriveOutputPath(input string) string {
	base := input
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + "_transparent.png"
}
