package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/spinframe/internal/export"
)

const halfBlock = "▀"

// FitCells returns the largest pixel size with the aspect ratio of a w×h image
// that fits in cols×rows terminal cells, two pixels per cell vertically.
func FitCells(w, h, cols, rows int) (int, int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	pw, ph := cols, rows*2
	if pw*h > ph*w {
		pw = ph * w / h
	} else {
		ph = pw * h / w
	}
	ph -= ph % 2
	if pw < 1 || ph < 2 {
		return 0, 0
	}
	return pw, ph
}

// HalfBlocks draws img at cols×rows cells using the upper half block, so each
// cell carries two vertically stacked pixels. Runs of identical cells share
// one style.
func HalfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	pw, ph := FitCells(b.Dx(), b.Dy(), cols, rows)
	if pw == 0 {
		return ""
	}
	fit := export.Fit(img, pw, ph)
	fb := fit.Bounds()

	var sb strings.Builder
	for y := 0; y < ph; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run int
		var top, bot string
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bot))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, run)))
			run = 0
		}
		for x := 0; x < pw; x++ {
			t := hex(fit.At(fb.Min.X+x, fb.Min.Y+y))
			bt := hex(fit.At(fb.Min.X+x, fb.Min.Y+y+1))
			if run > 0 && (t != top || bt != bot) {
				flush()
			}
			top, bot = t, bt
			run++
		}
		flush()
	}
	return sb.String()
}

func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
