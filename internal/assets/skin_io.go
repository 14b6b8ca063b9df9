// Package assets handles skin image loading and saving. The persistence
// format is a standard lossless raster image: PNG on save, PNG or legacy
// BMP on load.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/pixelforge/skinstudio/internal/skin"
)

// LoadSkin decodes a skin image into a fresh surface. Any failure leaves
// the caller's current raster untouched, since the surface is only built
// after the whole file decodes and validates.
func LoadSkin(path string) (*skin.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening skin %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding skin %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() != skin.AtlasWidth || (b.Dy() != skin.HeightLegacy && b.Dy() != skin.HeightExtended) {
		return nil, fmt.Errorf("skin %s is %dx%d (%s), want %dx%d or %dx%d",
			path, b.Dx(), b.Dy(), format,
			skin.AtlasWidth, skin.HeightLegacy, skin.AtlasWidth, skin.HeightExtended)
	}

	return skin.FromImage(img), nil
}

// SaveSkin encodes the surface as PNG at its current height; a 64-tall
// skin is never silently upgraded to 128. The file is written atomically
// via a temp file in the same directory.
func SaveSkin(path string, s *skin.Surface) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".skin-*.png")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := png.Encode(tmp, s.ToImage()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encoding skin: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing skin: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving skin %s: %w", path, err)
	}
	return nil
}
