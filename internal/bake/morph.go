package bake

import (
	"fmt"
	"sort"

	"github.com/mesh-tools/weightbake/internal/mesh"
	"github.com/mesh-tools/weightbake/internal/morph"
)

// MergeOffset is the positional nudge applied per mesh triple during batch
// processing. Export stages downstream merge coincident vertices across
// meshes; shifting each triple slightly along X keeps otherwise identical
// copies apart. It has no effect on the computed weights since source and
// target move together.
const MergeOffset = 0.00005

// BakeMorph decomposes the per-vertex displacement from src to dst into
// joint weight writes. The meshes must share vertex topology; the first
// over-budget displacement aborts the whole bake with no writes.
func BakeMorph(src, dst *mesh.Mesh) ([]Write, error) {
	if err := mesh.SameTopology(src, dst); err != nil {
		return nil, err
	}

	writes := make([]Write, 0, len(src.Vertices)*morph.NumJoints)
	for vi := range src.Vertices {
		diff := dst.Vertices[vi].Sub(src.Vertices[vi])
		weights, err := morph.Decompose(diff)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", vi, err)
		}
		for j, w := range weights {
			writes = append(writes, Write{Channel: morph.JointNames[j], Vertex: vi, Weight: w})
		}
	}

	return writes, nil
}

// MorphPass is one source→target weighting pass produced by AnimBatch.
type MorphPass struct {
	Source *mesh.Mesh
	Target *mesh.Mesh
	Writes []Write
}

// AnimBatch groups meshes into (left, mid, right) triples ordered by name
// and produces a left→mid and a mid→right pass per triple. Each triple is
// nudged along X by one more MergeOffset than the previous so a downstream
// exporter does not merge coincident vertices between triples. The returned
// passes carry the nudged snapshots.
func AnimBatch(meshes []*mesh.Mesh) ([]MorphPass, error) {
	if len(meshes) == 0 || len(meshes)%3 != 0 {
		return nil, fmt.Errorf("batch needs a multiple of three meshes, got %d", len(meshes))
	}

	sorted := make([]*mesh.Mesh, len(meshes))
	copy(sorted, meshes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	passes := make([]MorphPass, 0, len(sorted)/3*2)
	offset := 0.0
	for t := 0; t < len(sorted)/3; t++ {
		offset += MergeOffset
		left := sorted[t*3].Offset(0, offset)
		mid := sorted[t*3+1].Offset(0, offset)
		right := sorted[t*3+2].Offset(0, offset)

		leftWrites, err := BakeMorph(left, mid)
		if err != nil {
			return nil, fmt.Errorf("triple %d (%s -> %s): %w", t, left.Name, mid.Name, err)
		}
		midWrites, err := BakeMorph(mid, right)
		if err != nil {
			return nil, fmt.Errorf("triple %d (%s -> %s): %w", t, mid.Name, right.Name, err)
		}

		passes = append(passes,
			MorphPass{Source: left, Target: mid, Writes: leftWrites},
			MorphPass{Source: mid, Target: right, Writes: midWrites},
		)
	}

	return passes, nil
}
