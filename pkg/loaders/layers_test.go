package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func TestKindFromChar(t *testing.T) {
	tests := []struct {
		c        rune
		expected block.Kind
		ok       bool
	}{
		{'g', block.Grass, true},
		{'G', block.Grass, true},
		{'d', block.Dirt, true},
		{'S', block.Stone, true},
		{'l', block.Log, true},
		{'v', block.Leaves, true},
		{'W', block.Water, true},
		{' ', block.None, false},
		{'.', block.None, false},
		{'x', block.None, false},
	}
	for _, tt := range tests {
		kind, ok := KindFromChar(tt.c)
		if kind != tt.expected || ok != tt.ok {
			t.Errorf("KindFromChar(%q) = %v, %v; expected %v, %v", tt.c, kind, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseLayer(t *testing.T) {
	opts := LayerOptions{Prefix: "layer_", Width: 4, Depth: 3}
	input := "# ground\n\ngs..\n\n..wv\n"

	logger := &recordingLogger{}
	blocks, err := ParseLayer(strings.NewReader(input), 2, opts, logger)
	if err != nil {
		t.Fatalf("ParseLayer failed: %v", err)
	}

	expected := []block.Block{
		block.New(core.NewVec3(-1.5, 2.5, -1), block.Grass),
		block.New(core.NewVec3(-0.5, 2.5, -1), block.Stone),
		block.New(core.NewVec3(0.5, 2.5, 0), block.Water),
		block.New(core.NewVec3(1.5, 2.5, 0), block.Leaves),
	}
	if len(blocks) != len(expected) {
		t.Fatalf("Expected %d blocks, got %d: %v", len(expected), len(blocks), blocks)
	}
	for i := range expected {
		if blocks[i] != expected[i] {
			t.Errorf("Block %d: expected %+v, got %+v", i, expected[i], blocks[i])
		}
	}

	// Only two of three rows were present
	if len(logger.lines) != 1 {
		t.Errorf("Expected one short-layer warning, got %v", logger.lines)
	}
}

func TestParseLayerIgnoresOverflow(t *testing.T) {
	opts := LayerOptions{Width: 2, Depth: 1}
	blocks, err := ParseLayer(strings.NewReader("sssss\nggggg\n"), 0, opts, core.NopLogger{})
	if err != nil {
		t.Fatalf("ParseLayer failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("Expected 2 blocks inside the layer bounds, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Kind != block.Stone {
			t.Errorf("Expected only first-row stone, got %v", b.Kind)
		}
	}
}

func TestLoadLayers(t *testing.T) {
	fsys := fstest.MapFS{
		"world/layer_00.txt": {Data: []byte("ss\nss\n")},
		"world/layer_01.txt": {Data: []byte("g.\n.w\n")},
		"world/layer_03.txt": {Data: []byte("ll\nll\n")}, // unreachable: 02 is missing
	}
	opts := LayerOptions{Prefix: "layer_", Width: 2, Depth: 2}

	blocks, err := LoadLayers(fsys, "world", opts, core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadLayers failed: %v", err)
	}
	if len(blocks) != 6 {
		t.Fatalf("Expected 6 blocks from two layers, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Kind == block.Log {
			t.Error("Layer after a gap must not be loaded")
		}
	}
	if blocks[4].Center != core.NewVec3(-0.5, 1.5, -0.5) || blocks[4].Kind != block.Grass {
		t.Errorf("Unexpected first block of layer 1: %+v", blocks[4])
	}
}

func TestLoadLayersMissing(t *testing.T) {
	_, err := LoadLayers(fstest.MapFS{}, "world", DefaultLayerOptions(), core.NopLogger{})
	if !errors.Is(err, ErrNoLayers) {
		t.Errorf("Expected ErrNoLayers, got %v", err)
	}
}

func TestLoadLayersFromDisk(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultLayerOptions()
	if err := os.WriteFile(filepath.Join(dir, opts.LayerFile(0)), []byte("d\n"), 0644); err != nil {
		t.Fatalf("Failed to write layer: %v", err)
	}

	blocks, err := LoadLayers(os.DirFS(dir), ".", opts, core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadLayers failed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Center != core.NewVec3(-7.5, 0.5, -7.5) {
		t.Errorf("Unexpected blocks %+v", blocks)
	}
}
