package loaders

import (
	"context"
	"fmt"
	"os"

	getter "github.com/hashicorp/go-getter"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/material"
)

// FetchAssets downloads an asset pack (textures or a layered world) into
// dst. src is any go-getter source: a local directory, an archive URL, or
// a "git::" repository. An existing non-empty dst is reused as a cache.
func FetchAssets(ctx context.Context, src, dst string, logger core.Logger) (string, error) {
	if entries, err := os.ReadDir(dst); err == nil && len(entries) > 0 {
		logger.Printf("Using cached assets in %s\n", dst)
		return dst, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	logger.Printf("Fetching assets from %s\n", src)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("failed to fetch assets from %s: %w", src, err)
	}
	return dst, nil
}

// ResolveMaterials loads the material set named by src. An empty src gives
// the procedural set, a local directory is read in place, and anything
// else is fetched into cacheDir first.
func ResolveMaterials(ctx context.Context, src, cacheDir string, logger core.Logger) (*material.Materials, error) {
	if src == "" {
		return material.NewProceduralMaterials(), nil
	}
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		return LoadMaterials(src, logger)
	}

	dir, err := FetchAssets(ctx, src, cacheDir, logger)
	if err != nil {
		return nil, err
	}
	return LoadMaterials(dir, logger)
}
