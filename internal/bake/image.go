package bake

import (
	"fmt"

	"github.com/mesh-tools/weightbake/internal/bands"
	"github.com/mesh-tools/weightbake/internal/mesh"
	"github.com/mesh-tools/weightbake/internal/pixel"
	"github.com/mesh-tools/weightbake/internal/sampler"
)

// ImageOptions configure an image-to-weights bake.
type ImageOptions struct {
	Channel   string // base channel name; bands append a numeric suffix
	Radius    int    // sample radius, 1 = single-pixel lookup
	Circle    bool   // circular sample mask instead of square
	Bands     int    // number of weight bands to split the result into
	Invert    bool   // weight = 1 - weight before banding
	Overwrite bool   // drop existing channel contents before writing
}

// ChannelNames returns the channel name for each band. The first band keeps
// the base name, later bands get zero-padded numeric suffixes.
func (o ImageOptions) ChannelNames() []string {
	names := make([]string, o.Bands)
	for i := range names {
		if i == 0 {
			names[i] = o.Channel
		} else {
			names[i] = fmt.Sprintf("%s.%03d", o.Channel, i)
		}
	}
	return names
}

func (o ImageOptions) validate() error {
	if o.Radius < 1 {
		return fmt.Errorf("sample radius must be >= 1, got %d", o.Radius)
	}
	if o.Bands < 1 {
		return fmt.Errorf("band count must be >= 1, got %d", o.Bands)
	}
	return nil
}

// BakeImage samples the grid along each mesh loop's UV and turns the
// samples into per-vertex, per-band weight writes.
//
// A vertex referenced by several loops gets the pairwise running average of
// its samples in loop order: running = (running + new) / 2. That recurrence
// weights later loops more heavily than a true mean would. It is kept
// exactly as-is so rebakes of existing content reproduce their old weights,
// and it is the reason this aggregation must stay sequential.
func BakeImage(grid *pixel.Grid, m *mesh.Mesh, opts ImageOptions) ([]Write, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, pixel.ErrEmptyImage
	}
	if err := sampler.CheckRadius(grid.Width, grid.Height, opts.Radius); err != nil {
		return nil, err
	}

	var mask *sampler.Mask
	if opts.Circle {
		mask = sampler.Circle(opts.Radius)
	} else {
		mask = sampler.Square(opts.Radius)
	}
	ext := grid.Extend(opts.Radius)

	weights := make(map[int]float64, len(m.Vertices))
	order := make([]int, 0, len(m.Vertices))
	for _, loop := range m.Loops {
		px := sampler.Sample(ext, grid.Width, grid.Height, loop.UV.U, loop.UV.V, mask)
		val := (px[0] + px[1] + px[2]) / 3.0

		if running, ok := weights[loop.Vertex]; ok {
			weights[loop.Vertex] = (running + val) / 2.0
		} else {
			weights[loop.Vertex] = val
			order = append(order, loop.Vertex)
		}
	}

	names := opts.ChannelNames()
	writes := make([]Write, 0, len(order)*opts.Bands)
	for _, vi := range order {
		w := weights[vi]
		if opts.Invert {
			w = 1.0 - w
		}
		for band, bw := range bands.ToBands(w, opts.Bands) {
			writes = append(writes, Write{Channel: names[band], Vertex: vi, Weight: bw})
		}
	}

	return writes, nil
}
