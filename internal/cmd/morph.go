package cmd

import (
	"fmt"

	"github.com/mesh-tools/weightbake/internal/bake"
	"github.com/mesh-tools/weightbake/internal/mesh"
	"github.com/mesh-tools/weightbake/internal/weightstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var morphCmd = &cobra.Command{
	Use:   "morph source.json target.json",
	Short: "Bake a morph target to skeletal joint weights",
	Long: `Decompose the per-vertex displacement from the source mesh to the
target mesh into seven joint weight channels. The meshes must share vertex
topology, and no displacement may exceed the 5m animation budget.`,
	Args: cobra.ExactArgs(2),
	RunE: runMorph,
}

func init() {
	rootCmd.AddCommand(morphCmd)

	morphCmd.Flags().Bool("overwrite", true, "Overwrite existing joint channel contents")

	if err := viper.BindPFlag("morph.overwrite", morphCmd.Flags().Lookup("overwrite")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func runMorph(cmd *cobra.Command, args []string) error {
	storePath := viper.GetString("store")
	overwrite := viper.GetBool("morph.overwrite")

	if logger == nil {
		initLogging()
	}

	src, err := mesh.Load(args[0])
	if err != nil {
		return err
	}
	dst, err := mesh.Load(args[1])
	if err != nil {
		return err
	}

	// The whole operation aborts on the first over-budget vertex; nothing
	// is written in that case.
	writes, err := bake.BakeMorph(src, dst)
	if err != nil {
		return fmt.Errorf("morph %s -> %s: %w", src.Name, dst.Name, err)
	}

	store, err := weightstore.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open weight store: %w", err)
	}
	defer store.Close()

	if err := bake.Apply(store, writes, overwrite); err != nil {
		return err
	}

	logger.Info("Morph bake complete",
		"source", src.Name,
		"target", dst.Name,
		"vertices", len(src.Vertices),
		"writes", len(writes),
	)
	return nil
}
