package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// ErrNoLayers is returned when the first layer file is missing
var ErrNoLayers = errors.New("no layer files found")

// LayerOptions describes a layered world on disk
type LayerOptions struct {
	Prefix string // File name prefix; layer y is "<Prefix><yy>.txt"
	Width  int    // Cells per row (X)
	Depth  int    // Rows per layer (Z)
}

// DefaultLayerOptions returns the 16x16 "layer_NN.txt" layout
func DefaultLayerOptions() LayerOptions {
	return LayerOptions{Prefix: "layer_", Width: 16, Depth: 16}
}

// LayerFile returns the file name of layer y
func (o LayerOptions) LayerFile(y int) string {
	return fmt.Sprintf("%s%02d.txt", o.Prefix, y)
}

// KindFromChar maps a layer character to a block kind. Anything else,
// including ' ' and '.', is air.
func KindFromChar(c rune) (block.Kind, bool) {
	switch c {
	case 'g', 'G':
		return block.Grass, true
	case 'd', 'D':
		return block.Dirt, true
	case 's', 'S':
		return block.Stone, true
	case 'l', 'L':
		return block.Log, true
	case 'v', 'V':
		return block.Leaves, true
	case 'w', 'W':
		return block.Water, true
	default:
		return block.None, false
	}
}

// ParseLayer reads one layer at height y. Rows are Z, columns are X. Blank
// lines and lines starting with '#' are skipped; missing rows and cells
// are air. The grid is centered on the origin in X and Z.
func ParseLayer(r io.Reader, y int, opts LayerOptions, logger core.Logger) ([]block.Block, error) {
	var rows [][]rune
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, []rune(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layer %d: %w", y, err)
	}

	if len(rows) < opts.Depth {
		logger.Printf("Warning: layer %d has %d of %d rows, filling with air\n", y, len(rows), opts.Depth)
	}

	var blocks []block.Block
	for z := 0; z < opts.Depth && z < len(rows); z++ {
		row := rows[z]
		for x := 0; x < opts.Width && x < len(row); x++ {
			kind, ok := KindFromChar(row[x])
			if !ok {
				continue
			}
			center := core.NewVec3(
				float64(x)+0.5-float64(opts.Width)*0.5,
				float64(y)+0.5,
				float64(z)+0.5-float64(opts.Depth)*0.5,
			)
			blocks = append(blocks, block.New(center, kind))
		}
	}
	return blocks, nil
}

// LoadLayers reads layer files 00, 01, ... from dir in fsys until one is
// missing. Use os.DirFS for directories on disk.
func LoadLayers(fsys fs.FS, dir string, opts LayerOptions, logger core.Logger) ([]block.Block, error) {
	var blocks []block.Block

	for y := 0; ; y++ {
		name := path.Join(dir, opts.LayerFile(y))
		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			if y == 0 {
				return nil, fmt.Errorf("%w: expected %s", ErrNoLayers, name)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open layer: %w", err)
		}

		layer, err := ParseLayer(f, y, opts, logger)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		blocks = append(blocks, layer...)
	}

	return blocks, nil
}
