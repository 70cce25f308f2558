// Package mesh holds immutable mesh snapshots: per-vertex positions plus the
// loop table mapping face corners to vertices and UV coordinates.
package mesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrTopologyMismatch is returned when two meshes that must share vertex
// topology have different vertex counts.
var ErrTopologyMismatch = errors.New("vertex count mismatch between meshes")

// UV is a 2D texture coordinate. Values outside [0, 1] wrap.
type UV struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Loop references one vertex from a face corner and carries that corner's
// UV. A vertex touched by several faces appears in several loops, possibly
// with different UVs.
type Loop struct {
	Vertex int `json:"vertex"`
	UV     UV  `json:"uv"`
}

// Mesh is a snapshot of the geometry the pipelines need. It is never
// mutated; Offset returns a copy.
type Mesh struct {
	Name     string `json:"name"`
	Vertices []Vec3 `json:"vertices"`
	Loops    []Loop `json:"loops"`
}

// Load reads a mesh snapshot from a JSON file.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}

	var m Mesh
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", path, err)
	}

	return &m, nil
}

// Validate checks internal consistency of the snapshot.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh has no vertices")
	}
	for i, loop := range m.Loops {
		if loop.Vertex < 0 || loop.Vertex >= len(m.Vertices) {
			return fmt.Errorf("loop %d references vertex %d of %d", i, loop.Vertex, len(m.Vertices))
		}
	}
	return nil
}

// SameTopology verifies that two meshes can be paired vertex-for-vertex.
func SameTopology(a, b *Mesh) error {
	if len(a.Vertices) != len(b.Vertices) {
		return fmt.Errorf("%w: %q has %d, %q has %d",
			ErrTopologyMismatch, a.Name, len(a.Vertices), b.Name, len(b.Vertices))
	}
	return nil
}

// Offset returns a copy of the mesh with every vertex nudged by delta along
// the given axis (0=X, 1=Y, 2=Z). Loops are shared with the original.
func (m *Mesh) Offset(axis int, delta float64) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]Vec3, len(m.Vertices)),
		Loops:    m.Loops,
	}
	for i, v := range m.Vertices {
		v[axis] += delta
		out.Vertices[i] = v
	}
	return out
}
