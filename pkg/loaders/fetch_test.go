package loaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/material"
)

func TestFetchAssetsLocalDir(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "layer_00.txt"), []byte("g\n"), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	dst := filepath.Join(t.TempDir(), "cache")

	logger := &recordingLogger{}
	got, err := FetchAssets(context.Background(), src, dst, logger)
	if err != nil {
		t.Fatalf("FetchAssets failed: %v", err)
	}
	if got != dst {
		t.Errorf("Expected %s, got %s", dst, got)
	}
	if _, err := os.Stat(filepath.Join(dst, "layer_00.txt")); err != nil {
		t.Errorf("Expected fetched layer file: %v", err)
	}

	// A second fetch reuses the populated destination
	logger.lines = nil
	if _, err := FetchAssets(context.Background(), "/does/not/exist", dst, logger); err != nil {
		t.Fatalf("Cached FetchAssets failed: %v", err)
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected a single cache message, got %v", logger.lines)
	}
}

func TestResolveMaterials(t *testing.T) {
	ctx := context.Background()

	mats, err := ResolveMaterials(ctx, "", "", &recordingLogger{})
	if err != nil {
		t.Fatalf("Procedural ResolveMaterials failed: %v", err)
	}
	if missing := mats.Missing(); len(missing) != 0 {
		t.Errorf("Expected a complete procedural set, missing %v", missing)
	}

	// A local directory is read in place; every absent slot falls back
	dir := t.TempDir()
	logger := &recordingLogger{}
	mats, err = ResolveMaterials(ctx, dir, filepath.Join(t.TempDir(), "unused"), logger)
	if err != nil {
		t.Fatalf("Local ResolveMaterials failed: %v", err)
	}
	if len(mats.Missing()) != 0 {
		t.Errorf("Expected fallbacks for every slot, missing %v", mats.Missing())
	}
	if len(logger.lines) != len(material.Slots()) {
		t.Errorf("Expected %d warnings, got %d", len(material.Slots()), len(logger.lines))
	}

	if _, err := ResolveMaterials(ctx, "/does/not/exist", filepath.Join(t.TempDir(), "cache"), logger); err == nil {
		t.Error("Expected an error for an unreachable source")
	}
}
