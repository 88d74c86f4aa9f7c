package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/material"
)

// LoadImage decodes a PNG or JPEG file
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// LoadTexture loads an image file as a texture
func LoadTexture(filename string) (*material.Texture, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	tex, err := material.NewTextureFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", filename, err)
	}
	return tex, nil
}

// TextureFile returns the file name expected for a slot, e.g. "grass_top.png"
func TextureFile(slot material.Slot) string {
	return slot.String() + ".png"
}

// LoadMaterials loads one texture per slot from dir. A slot whose file is
// missing or unreadable gets the checkerboard fallback and a warning.
// An empty dir selects the built-in procedural textures.
func LoadMaterials(dir string, logger core.Logger) (*material.Materials, error) {
	if dir == "" {
		return material.NewProceduralMaterials(), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path %s is not a directory", dir)
	}

	mats := material.NewMaterials()
	for _, slot := range material.Slots() {
		path := filepath.Join(dir, TextureFile(slot))
		tex, err := LoadTexture(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Printf("Warning: %s not found, using checkerboard\n", path)
			} else {
				logger.Printf("Warning: %v, using checkerboard\n", err)
			}
			tex = material.NewMissingTexture()
		}
		mats.Set(slot, tex)
	}
	return mats, nil
}
