package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/iconkey/internal/chroma"
	"github.com/MeKo-Tech/iconkey/internal/imgio"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the estimated background color of an image",
	Long: `Estimate the background color by sampling the four corners and the
top-center pixel, and print it as a hex triple.`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringP("input", "i", "", "Input image path (required)")

	if err := viper.BindPFlag("detect.input", detectCmd.Flags().Lookup("input")); err != nil {
		panic(fmt.Sprintf("failed to bind flag input: %v", err))
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	input := viper.GetString("detect.input")

	if logger == nil {
		initLogging()
	}

	if input == "" {
		return fmt.Errorf("--input is required")
	}

	img, _, err := imgio.DecodeFile(input)
	if err != nil {
		return fmt.Errorf("no image available: %w", err)
	}

	c, err := chroma.EstimateBackground(img)
	if err != nil {
		return err
	}

	logger.Debug("background estimated",
		"input", input,
		"r", c.R, "g", c.G, "b", c.B,
	)

	fmt.Fprintln(cmd.OutOrStdout(), c.Hex())
	return nil
}
