// Package export writes rendered frames to image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// ErrNoFrames is returned when encoding an empty recording.
var ErrNoFrames = errors.New("export: no frames recorded")

// Upscale enlarges img by an integer factor with nearest-neighbour sampling so
// pixel edges stay hard. A factor of 1 or less returns img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor)
}

// Fit resizes img to exactly w×h with nearest-neighbour sampling.
func Fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return transform.Resize(img, w, h, transform.NearestNeighbor)
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path, upscaled by factor.
func SavePNG(path string, img image.Image, factor int) error {
	if err := imgio.Save(path, Upscale(img, factor), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return nil
}

// FramePath names the PNG for frame seq inside dir.
func FramePath(dir string, seq int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%04d.png", seq))
}
