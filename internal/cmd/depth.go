package cmd

import (
	"fmt"
	"image/png"
	"os"
	"runtime"
	"strconv"

	"github.com/HugoSmits86/nativewebp"
	"github.com/mesh-tools/weightbake/internal/depth"
	"github.com/mesh-tools/weightbake/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var depthCmd = &cobra.Command{
	Use:   "depth input.png range_lower range_upper output.png",
	Short: "Convert an RGB-packed depth snapshot to 16-bit monochrome",
	Long: `Merge the R, G and B channels of a depth snapshot into one 24-bit
value per pixel and rescale the chosen sub-range (two fractions in [0,1],
lower < upper) onto a 16-bit grayscale PNG.`,
	Args: cobra.ExactArgs(4),
	RunE: runDepth,
}

func init() {
	rootCmd.AddCommand(depthCmd)

	depthCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	depthCmd.Flags().Bool("progress", false, "Show progress bar")
	depthCmd.Flags().String("preview", "", "Also write an 8-bit webp preview to this path")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"depth.workers", "workers"},
		{"depth.progress", "progress"},
		{"depth.preview", "preview"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, depthCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runDepth(cmd *cobra.Command, args []string) error {
	workers := viper.GetInt("depth.workers")
	showProgress := viper.GetBool("depth.progress")
	previewPath := viper.GetString("depth.preview")

	if logger == nil {
		initLogging()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	lower, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid range_lower %q: %w", args[1], err)
	}
	upper, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid range_upper %q: %w", args[2], err)
	}

	img, err := loadImage(args[0])
	if err != nil {
		return err
	}

	progress := worker.NewProgress(img.Bounds().Dy(), showProgress)
	converted, err := depth.Convert(cmd.Context(), img, lower, upper, workers, progress.Callback())
	if err != nil {
		return err
	}
	progress.Done()

	out, err := os.Create(args[3])
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, converted); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if previewPath != "" {
		f, err := os.Create(previewPath)
		if err != nil {
			return fmt.Errorf("failed to create preview: %w", err)
		}
		defer f.Close()

		if err := nativewebp.Encode(f, depth.Preview(converted), nil); err != nil {
			return fmt.Errorf("failed to encode preview: %w", err)
		}
		logger.Info("Wrote preview", "path", previewPath)
	}

	logger.Info("Depth conversion complete",
		"input", args[0],
		"output", args[3],
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)
	return nil
}
