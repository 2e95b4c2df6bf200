package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer is a Width×Height grid of ARGB pixels, row-major. It implements
// image.Image so frames can be encoded or scaled directly.
type FrameBuffer struct {
	Width, Height int
	Pix           []uint32
}

// NewFrameBuffer returns a frame filled with bg.
func NewFrameBuffer(w, h int, bg Color) *FrameBuffer {
	f := &FrameBuffer{Width: w, Height: h, Pix: make([]uint32, w*h)}
	p := bg.ARGB()
	for i := range f.Pix {
		f.Pix[i] = p
	}
	return f
}

func (f *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// ARGBAt returns the packed pixel at (x, y), or 0 outside the frame.
func (f *FrameBuffer) ARGBAt(x, y int) uint32 {
	if !f.inBounds(x, y) {
		return 0
	}
	return f.Pix[y*f.Width+x]
}

// Set writes a packed pixel. Out of bounds writes are dropped.
func (f *FrameBuffer) Set(x, y int, argb uint32) {
	if !f.inBounds(x, y) {
		return
	}
	f.Pix[y*f.Width+x] = argb
}

func (f *FrameBuffer) ColorModel() color.Model { return color.NRGBAModel }

func (f *FrameBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *FrameBuffer) At(x, y int) color.Color {
	p := f.ARGBAt(x, y)
	return color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// RGBA copies the frame into dst as straight RGBA pixels, growing dst if it is
// too small.
func (f *FrameBuffer) RGBA(dst []color.RGBA) []color.RGBA {
	if cap(dst) < len(f.Pix) {
		dst = make([]color.RGBA, len(f.Pix))
	}
	dst = dst[:len(f.Pix)]
	for i, p := range f.Pix {
		dst[i] = color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
	}
	return dst
}

// DepthBuffer holds the largest accepted depth per pixel.
type DepthBuffer struct {
	Width, Height int
	Z             []float64
}

// NewDepthBuffer returns a buffer with every entry at -Inf, so the first
// finite depth at a pixel always wins.
func NewDepthBuffer(w, h int) *DepthBuffer {
	d := &DepthBuffer{Width: w, Height: h, Z: make([]float64, w*h)}
	inf := math.Inf(-1)
	for i := range d.Z {
		d.Z[i] = inf
	}
	return d
}

func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return math.Inf(-1)
	}
	return d.Z[y*d.Width+x]
}

// Test accepts z at (x, y) when it is strictly greater than the stored depth,
// recording it. NaN is never accepted.
func (d *DepthBuffer) Test(x, y int, z float64) bool {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return false
	}
	idx := y*d.Width + x
	if z > d.Z[idx] {
		d.Z[idx] = z
		return true
	}
	return false
}
