package viz

import (
	"github.com/guptarohit/asciigraph"
)

// History keeps the most recent yaw and pitch samples.
type History struct {
	capacity   int
	Yaw, Pitch []float64
}

func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

func (h *History) Add(yaw, pitch int) {
	h.Yaw = appendBounded(h.Yaw, float64(yaw), h.capacity)
	h.Pitch = appendBounded(h.Pitch, float64(pitch), h.capacity)
}

func (h *History) Len() int { return len(h.Yaw) }

func appendBounded(s []float64, v float64, capacity int) []float64 {
	s = append(s, v)
	if len(s) > capacity {
		s = s[len(s)-capacity:]
	}
	return s
}

// Plot renders both series on one chart, yaw in cyan and pitch in magenta.
// It returns "" until there are two samples.
func Plot(yaw, pitch []float64, width, height int, caption string) string {
	if len(yaw) < 2 || len(pitch) < 2 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{yaw, pitch},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption(caption))
}
