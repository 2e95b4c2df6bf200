package raster

import (
	"fmt"
	"math"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
)

// ARGB packs the color with an opaque alpha channel.
func (c Color) ARGB() uint32 {
	return 0xFF<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// FromARGB unpacks a pixel, dropping alpha.
func FromARGB(p uint32) Color {
	return Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// Gamma is the exponent of the power-law blend used by Shade.
const Gamma = 2.4

// Shade darkens c by s in gamma space: out = (in^Gamma · s)^(1/Gamma), truncated
// toward zero. With clamp false, results outside 0..255 keep their low 8
// bits, and a negative s gives NaN whose integer conversion is platform
// defined. With clamp true, every channel is limited to 0..255 and NaN maps to 0.
func Shade(c Color, s float64, clamp bool) Color {
	return Color{
		R: shadeChannel(c.R, s, clamp),
		G: shadeChannel(c.G, s, clamp),
		B: shadeChannel(c.B, s, clamp),
	}
}

func shadeChannel(ch uint8, s float64, clamp bool) uint8 {
	v := math.Pow(math.Pow(float64(ch), Gamma)*s, 1/Gamma)
	if !clamp {
		return uint8(int64(v))
	}
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
