package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"sync"
	"time"
)

// GIFRecorder accumulates frames into a looping animated GIF. It is safe for
// concurrent use.
type GIFRecorder struct {
	mu     sync.Mutex
	anim   gif.GIF
	delay  int
	factor int
}

// NewGIFRecorder records frames shown for delay each, upscaled by factor.
// GIF delays have 10ms resolution; anything shorter is rounded up.
func NewGIFRecorder(delay time.Duration, factor int) *GIFRecorder {
	cs := int(delay / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	if factor < 1 {
		factor = 1
	}
	return &GIFRecorder{delay: cs, factor: factor}
}

// Add quantizes img to the web-safe palette and appends it.
func (r *GIFRecorder) Add(img image.Image) {
	src := Upscale(img, r.factor)
	b := src.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	draw.Draw(p, p.Rect, src, b.Min, draw.Src)

	r.mu.Lock()
	r.anim.Image = append(r.anim.Image, p)
	r.anim.Delay = append(r.anim.Delay, r.delay)
	r.mu.Unlock()
}

func (r *GIFRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.anim.Image)
}

// Reset drops all recorded frames.
func (r *GIFRecorder) Reset() {
	r.mu.Lock()
	r.anim = gif.GIF{}
	r.mu.Unlock()
}

func (r *GIFRecorder) Encode(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &r.anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return f.Close()
}
