package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/mesh-tools/weightbake/internal/bake"
	"github.com/mesh-tools/weightbake/internal/mesh"
	"github.com/mesh-tools/weightbake/internal/pixel"
	"github.com/mesh-tools/weightbake/internal/weightstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var bakeCmd = &cobra.Command{
	Use:   "bake [mesh.json ...]",
	Short: "Bake an image to weight channels along mesh UVs",
	Long: `Sample an image along each mesh's UV coordinates and write the
resulting weights into the weight store, optionally split across several
weight bands.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBake,
}

func init() {
	rootCmd.AddCommand(bakeCmd)

	bakeCmd.Flags().StringP("image", "i", "", "Image to sample (required)")
	bakeCmd.Flags().String("channel", "Weight", "Base weight channel name")
	bakeCmd.Flags().IntP("radius", "r", 1, "Sample radius (1 = single pixel)")
	bakeCmd.Flags().Bool("circle", false, "Use a circular sample mask instead of a square")
	bakeCmd.Flags().IntP("bands", "b", 1, "Number of weight bands to split the result into")
	bakeCmd.Flags().Bool("invert", false, "Invert weights before banding")
	bakeCmd.Flags().Bool("overwrite", true, "Overwrite existing channel contents")
	bakeCmd.Flags().Float32("blur-sigma", 0, "Gaussian pre-blur sigma applied to the image (0 disables)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"bake.image", "image"},
		{"bake.channel", "channel"},
		{"bake.radius", "radius"},
		{"bake.circle", "circle"},
		{"bake.bands", "bands"},
		{"bake.invert", "invert"},
		{"bake.overwrite", "overwrite"},
		{"bake.blur_sigma", "blur-sigma"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, bakeCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBake(cmd *cobra.Command, args []string) error {
	imagePath := viper.GetString("bake.image")
	storePath := viper.GetString("store")
	blurSigma := viper.GetFloat64("bake.blur_sigma")
	opts := bake.ImageOptions{
		Channel:   viper.GetString("bake.channel"),
		Radius:    viper.GetInt("bake.radius"),
		Circle:    viper.GetBool("bake.circle"),
		Bands:     viper.GetInt("bake.bands"),
		Invert:    viper.GetBool("bake.invert"),
		Overwrite: viper.GetBool("bake.overwrite"),
	}

	if logger == nil {
		initLogging()
	}

	if imagePath == "" {
		return fmt.Errorf("--image is required")
	}

	img, err := loadImage(imagePath)
	if err != nil {
		return err
	}
	img = pixel.PreBlur(img, float32(blurSigma))

	grid, err := pixel.FromImage(img)
	if err != nil {
		return fmt.Errorf("image %s: %w", imagePath, err)
	}

	store, err := weightstore.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open weight store: %w", err)
	}
	defer store.Close()

	logger.Info("Baking image to weights",
		"image", imagePath,
		"meshes", len(args),
		"radius", opts.Radius,
		"bands", opts.Bands,
	)

	// A bad mesh aborts that mesh only; the rest still bake.
	failed := 0
	for _, path := range args {
		m, err := mesh.Load(path)
		if err != nil {
			logger.Error("Skipping mesh", "path", path, "error", err)
			failed++
			continue
		}

		writes, err := bake.BakeImage(grid, m, opts)
		if err != nil {
			logger.Error("Bake failed", "mesh", m.Name, "error", err)
			failed++
			continue
		}

		if err := bake.Apply(store, writes, opts.Overwrite); err != nil {
			return fmt.Errorf("mesh %s: %w", m.Name, err)
		}
		logger.Info("Baked mesh", "mesh", m.Name, "writes", len(writes))
	}

	if failed == len(args) {
		return fmt.Errorf("all %d meshes failed to bake", failed)
	}
	if failed > 0 {
		logger.Warn("Some meshes failed to bake", "failed", failed, "total", len(args))
	}
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
