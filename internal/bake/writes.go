// Package bake derives per-vertex weight channels from an image sampled
// along a mesh's UVs, or from the displacement between two same-topology
// meshes. Pipelines are pure: they return the channel writes to perform and
// never touch a writer themselves, so a failed bake applies nothing.
package bake

import "fmt"

// Write replaces one vertex's weight in one channel. Replaces, not
// accumulates: applying the same write twice is idempotent.
type Write struct {
	Channel string
	Vertex  int
	Weight  float64
}

// ChannelWriter is the destination for weight writes.
type ChannelWriter interface {
	// EnsureChannel makes the named channel available. With overwrite set,
	// any existing weights in it are dropped; otherwise they are kept and
	// written over per vertex.
	EnsureChannel(name string, overwrite bool) error
	// WriteWeight replaces the vertex's weight in the channel.
	WriteWeight(channel string, vertex int, weight float64) error
}

// Apply ensures every channel referenced by the writes and applies them in
// order.
func Apply(w ChannelWriter, writes []Write, overwrite bool) error {
	ensured := make(map[string]bool)
	for _, wr := range writes {
		if !ensured[wr.Channel] {
			if err := w.EnsureChannel(wr.Channel, overwrite); err != nil {
				return fmt.Errorf("ensure channel %q: %w", wr.Channel, err)
			}
			ensured[wr.Channel] = true
		}
		if err := w.WriteWeight(wr.Channel, wr.Vertex, wr.Weight); err != nil {
			return fmt.Errorf("write %q vertex %d: %w", wr.Channel, wr.Vertex, err)
		}
	}
	return nil
}

// MemoryWriter collects writes in memory. Used in tests and by commands
// that emit results without a backing store.
type MemoryWriter struct {
	Channels map[string]map[int]float64
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{Channels: make(map[string]map[int]float64)}
}

func (m *MemoryWriter) EnsureChannel(name string, overwrite bool) error {
	if _, ok := m.Channels[name]; !ok || overwrite {
		m.Channels[name] = make(map[int]float64)
	}
	return nil
}

func (m *MemoryWriter) WriteWeight(channel string, vertex int, weight float64) error {
	ch, ok := m.Channels[channel]
	if !ok {
		return fmt.Errorf("unknown channel %q", channel)
	}
	ch[vertex] = weight
	return nil
}
