// Package metrics summarises a sequence of rendered frames.
package metrics

import (
	"math"

	"github.com/san-kum/spinframe/internal/engine"
)

// Metric accumulates one number over the frames it observes. Metrics satisfy
// engine.Observer.
type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

// Default returns a fresh set of every metric in this package.
func Default() []Metric {
	return []Metric{NewCoverage(), NewOverdraw(), NewSpan("yaw_span", yawOf), NewSpan("pitch_span", pitchOf)}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Coverage is the mean fraction of frame pixels written per frame.
type Coverage struct {
	samples int
	total   float64
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(f engine.Frame) {
	if f.Buffer == nil {
		return
	}
	area := f.Buffer.Width * f.Buffer.Height
	if area == 0 {
		return
	}
	c.total += float64(f.Stats.Written) / float64(area)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.total = 0
	c.samples = 0
}

// Overdraw is the ratio of pixels that passed containment to pixels that
// survived the depth test. 1 means no pixel was drawn twice.
type Overdraw struct {
	covered, written int
}

func NewOverdraw() *Overdraw { return &Overdraw{} }

func (o *Overdraw) Name() string { return "overdraw" }

func (o *Overdraw) Observe(f engine.Frame) {
	o.covered += f.Stats.Covered
	o.written += f.Stats.Written
}

func (o *Overdraw) Value() float64 {
	if o.written == 0 {
		return 0
	}
	return float64(o.covered) / float64(o.written)
}

func (o *Overdraw) Reset() {
	o.covered = 0
	o.written = 0
}

// Span tracks max-min of one angle across frames.
type Span struct {
	name     string
	get      func(engine.Frame) float64
	min, max float64
	samples  int
}

func yawOf(f engine.Frame) float64   { return float64(f.Angles.Yaw) }
func pitchOf(f engine.Frame) float64 { return float64(f.Angles.Pitch) }

func NewSpan(name string, get func(engine.Frame) float64) *Span {
	return &Span{name: name, get: get}
}

func (s *Span) Name() string { return s.name }

func (s *Span) Observe(f engine.Frame) {
	v := s.get(f)
	if s.samples == 0 {
		s.min, s.max = v, v
	}
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
	s.samples++
}

func (s *Span) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.max - s.min
}

func (s *Span) Reset() {
	s.samples = 0
	s.min, s.max = 0, 0
}
