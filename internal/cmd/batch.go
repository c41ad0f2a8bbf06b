package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/iconkey/internal/chroma"
	"github.com/MeKo-Tech/iconkey/internal/imgio"
	"github.com/MeKo-Tech/iconkey/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Key out the background of many images in parallel",
	Long: `Process a glob of input images with a worker pool, writing one
transparent PNG per input into the output directory.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("glob", "", "Input file glob, e.g. \"icons/*.png\" (required)")
	batchCmd.Flags().String("output-dir", "./out", "Output directory for processed images")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", true, "Show progress bar")
	batchCmd.Flags().Bool("allow-failures", false, "Continue even if some images fail")
	addKeyingFlags(batchCmd, "batch")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.glob", "glob"},
		{"batch.output_dir", "output-dir"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	glob := viper.GetString("batch.glob")
	outputDir := viper.GetString("batch.output_dir")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")

	if logger == nil {
		initLogging()
	}

	if glob == "" {
		return fmt.Errorf("--glob is required")
	}

	opts, err := keyingOptions("batch")
	if err != nil {
		return err
	}

	matches, err := filepath.Glob(glob)
	if err != nil {
		return fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no images match %q", glob)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tasks := make([]worker.Task, 0, len(matches))
	for _, input := range matches {
		tasks = append(tasks, worker.Task{
			Input:  input,
			Output: filepath.Join(outputDir, pngName(input)),
		})
	}

	logger.Info("Starting batch processing",
		"images", len(tasks),
		"workers", workers,
		"output_dir", outputDir,
		"tolerance", opts.Tolerance,
		"smoothness", opts.Smoothness,
		"auto_detect", opts.AutoDetect,
	)

	// Cancel cleanly on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers: workers,
		Processor: &keyProcessor{
			opts:  opts,
			level: viper.GetString("batch.png_compression"),
		},
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Error("Failed to process image", "input", res.Task.Input, "error", res.Err)
		}
	}

	logger.Info(progress.Summary())

	if failed > 0 && !allowFailures {
		return fmt.Errorf("%d of %d images failed", failed, len(tasks))
	}
	return nil
}

// keyProcessor applies one keying pass per input file. Auto-detection
// runs per image, so mixed background colors within a batch behave the
// same as processing each file alone.
type keyProcessor struct {
	opts  chroma.Options
	level string
}

func (p *keyProcessor) Process(ctx context.Context, task worker.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, _, err := imgio.DecodeFile(task.Input)
	if err != nil {
		return err
	}

	buf := imgio.ToNRGBA(img)

	opts := p.opts
	if opts.AutoDetect {
		target, err := chroma.EstimateBackground(buf)
		if err != nil {
			return err
		}
		opts.Target = target
	}

	if err := chroma.Apply(buf, opts); err != nil {
		return err
	}

	return imgio.WriteFile(task.Output, buf, imgio.CompressionLevel(p.level))
}

// pngName swaps the input's extension for .png.
func pngName(input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".png"
}
