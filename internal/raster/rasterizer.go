package raster

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/spinframe/internal/algebra"
)

// ErrInvalidViewport indicates a frame with a zero or negative dimension.
var ErrInvalidViewport = errors.New("raster: invalid viewport")

// ShadingMode selects how a triangle's pixels are colored.
type ShadingMode uint8

const (
	// ShadingFlat paints the base color unchanged.
	ShadingFlat ShadingMode = iota
	// ShadingDirectional darkens the base color by cos(n.z) of the transformed
	// face normal n.
	ShadingDirectional
)

func (m ShadingMode) String() string {
	switch m {
	case ShadingFlat:
		return "flat"
	case ShadingDirectional:
		return "directional"
	}
	return fmt.Sprintf("ShadingMode(%d)", uint8(m))
}

// ParseShading maps "flat" or "directional" to a mode.
func ParseShading(s string) (ShadingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat":
		return ShadingFlat, nil
	case "directional", "shaded":
		return ShadingDirectional, nil
	}
	return 0, fmt.Errorf("raster: unknown shading %q", s)
}

// Options configure a Rasterizer.
type Options struct {
	Background Color
	Shading    ShadingMode
	// Clamp limits shaded channels to 0..255 instead of truncating.
	Clamp bool
}

func DefaultOptions() Options {
	return Options{Background: Black, Shading: ShadingDirectional}
}

// Stats counts the work done for one frame.
type Stats struct {
	Triangles int
	// Covered counts pixels that passed the containment test.
	Covered int
	// Written counts pixels that also passed the depth test.
	Written int
}

// Rasterizer draws triangle lists into frame buffers. It holds only options,
// so one value may serve any number of frames, one at a time per goroutine.
type Rasterizer struct {
	opts Options
}

func New(opts Options) *Rasterizer {
	return &Rasterizer{opts: opts}
}

func (r *Rasterizer) Options() Options { return r.opts }

// Render draws tris, in order, into a new w×h frame. Each vertex is transformed
// by the 3×3 transform and translated by (w/2, h/2, 0).
func (r *Rasterizer) Render(w, h int, transform algebra.Matrix, tris []Triangle) (*FrameBuffer, Stats, error) {
	var st Stats
	if w <= 0 || h <= 0 {
		return nil, st, fmt.Errorf("render %dx%d: %w", w, h, ErrInvalidViewport)
	}
	if transform.Rows() != 3 || transform.Cols() != 3 {
		return nil, st, fmt.Errorf("render: transform is %dx%d: %w", transform.Rows(), transform.Cols(), algebra.ErrDimensionMismatch)
	}

	fb := NewFrameBuffer(w, h, r.opts.Background)
	zb := NewDepthBuffer(w, h)
	centre := algebra.V3(float64(w/2), float64(h/2), 0)

	for _, t := range tris {
		v1, err := t.P1.Transform(transform)
		if err != nil {
			return nil, st, err
		}
		v2, err := t.P2.Transform(transform)
		if err != nil {
			return nil, st, err
		}
		v3, err := t.P3.Transform(transform)
		if err != nil {
			return nil, st, err
		}
		r.fill(fb, zb, v1.Add(centre), v2.Add(centre), v3.Add(centre), t.Color, &st)
		st.Triangles++
	}
	return fb, st, nil
}

func (r *Rasterizer) fill(fb *FrameBuffer, zb *DepthBuffer, v1, v2, v3 algebra.Vec3, base Color, st *Stats) {
	// Clamp in float space: int conversion of a huge or NaN bound is
	// implementation-defined. The negated comparisons also reject NaN.
	fx0 := math.Max(0, math.Ceil(min3(v1.X, v2.X, v3.X)))
	fx1 := math.Min(float64(fb.Width-1), math.Floor(max3(v1.X, v2.X, v3.X)))
	fy0 := math.Max(0, math.Ceil(min3(v1.Y, v2.Y, v3.Y)))
	fy1 := math.Min(float64(fb.Height-1), math.Floor(max3(v1.Y, v2.Y, v3.Y)))
	if !(fx0 <= fx1) || !(fy0 <= fy1) {
		return
	}
	minX, maxX, minY, maxY := int(fx0), int(fx1), int(fy0), int(fy1)

	pixel := r.color(v1, v2, v3, base).ARGB()

	// No zero-area guard: with area == 0 every weight is NaN or ±Inf and the
	// containment test below rejects every pixel.
	area := triArea2D(v1, v2, v3)
	for y := minY; y <= maxY; y++ {
		py := float64(y)
		for x := minX; x <= maxX; x++ {
			px := float64(x)
			b1 := ((py-v3.Y)*(v2.X-v3.X) + (v2.Y-v3.Y)*(v3.X-px)) / area
			b2 := ((py-v1.Y)*(v3.X-v1.X) + (v3.Y-v1.Y)*(v1.X-px)) / area
			b3 := ((py-v2.Y)*(v1.X-v2.X) + (v1.Y-v2.Y)*(v2.X-px)) / area
			if !unit(b1) || !unit(b2) || !unit(b3) {
				continue
			}
			st.Covered++
			depth := b1*v1.Z + b2*v2.Z + b3*v3.Z
			if !zb.Test(x, y, depth) {
				continue
			}
			fb.Set(x, y, pixel)
			st.Written++
		}
	}
}

func (r *Rasterizer) color(v1, v2, v3 algebra.Vec3, base Color) Color {
	if r.opts.Shading != ShadingDirectional {
		return base
	}
	n := faceNormal(v1, v2, v3)
	return Shade(base, math.Cos(n.Z), r.opts.Clamp)
}

// triArea2D is twice the signed screen-space area of the triangle.
func triArea2D(v1, v2, v3 algebra.Vec3) float64 {
	return (v1.Y-v3.Y)*(v2.X-v3.X) + (v2.Y-v3.Y)*(v3.X-v1.X)
}

// unit reports 0 <= b <= 1; false for NaN.
func unit(b float64) bool { return b >= 0 && b <= 1 }

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }

func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
