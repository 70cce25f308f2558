package cmd

import (
	"fmt"

	"github.com/mesh-tools/weightbake/internal/bake"
	"github.com/mesh-tools/weightbake/internal/mesh"
	"github.com/mesh-tools/weightbake/internal/weightstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var animCmd = &cobra.Command{
	Use:   "anim [mesh.json ...]",
	Short: "Bake morph passes for animation triples",
	Long: `Group the given meshes into (left, mid, right) triples ordered by
name and bake a left→mid and a mid→right morph pass for each triple. Each
triple is nudged slightly along X so exporters do not merge coincident
vertices between copies. Pass channels are stored under a
"source->target/" prefix.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runAnim,
}

func init() {
	rootCmd.AddCommand(animCmd)

	animCmd.Flags().Bool("overwrite", true, "Overwrite existing pass channel contents")

	if err := viper.BindPFlag("anim.overwrite", animCmd.Flags().Lookup("overwrite")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func runAnim(cmd *cobra.Command, args []string) error {
	storePath := viper.GetString("store")
	overwrite := viper.GetBool("anim.overwrite")

	if logger == nil {
		initLogging()
	}

	meshes := make([]*mesh.Mesh, 0, len(args))
	for _, path := range args {
		m, err := mesh.Load(path)
		if err != nil {
			return err
		}
		meshes = append(meshes, m)
	}

	passes, err := bake.AnimBatch(meshes)
	if err != nil {
		return err
	}

	store, err := weightstore.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open weight store: %w", err)
	}
	defer store.Close()

	for _, pass := range passes {
		prefix := fmt.Sprintf("%s->%s/", pass.Source.Name, pass.Target.Name)
		if err := bake.Apply(&prefixWriter{store: store, prefix: prefix}, pass.Writes, overwrite); err != nil {
			return fmt.Errorf("pass %s: %w", prefix, err)
		}
		logger.Info("Baked morph pass",
			"source", pass.Source.Name,
			"target", pass.Target.Name,
			"writes", len(pass.Writes),
		)
	}

	logger.Info("Animation batch complete", "meshes", len(meshes), "passes", len(passes))
	return nil
}

// prefixWriter namespaces channel names per morph pass so every pass can
// store the same seven joint channels in one database.
type prefixWriter struct {
	store  *weightstore.Store
	prefix string
}

func (w *prefixWriter) EnsureChannel(name string, overwrite bool) error {
	return w.store.EnsureChannel(w.prefix+name, overwrite)
}

func (w *prefixWriter) WriteWeight(channel string, vertex int, weight float64) error {
	return w.store.WriteWeight(w.prefix+channel, vertex, weight)
}
