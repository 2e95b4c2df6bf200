// Package rotation builds the yaw/pitch transform applied to the scene each frame.
package rotation

import (
	"math"

	"github.com/san-kum/spinframe/internal/algebra"
)

// Heading returns the yaw rotation about the vertical axis.
func Heading(theta float64) algebra.Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	return algebra.MustOfRows([][]float64{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	})
}

// Pitch returns the rotation about the horizontal axis.
func Pitch(phi float64) algebra.Matrix {
	c, s := math.Cos(phi), math.Sin(phi)
	return algebra.MustOfRows([][]float64{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	})
}

// Transform returns Heading(yaw)·Pitch(pitch): applied to a column vector,
// pitch acts first. Angles are in radians.
func Transform(yaw, pitch float64) algebra.Matrix {
	m, _ := Heading(yaw).Multiply(Pitch(pitch))
	return m
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Angles is a snapshot of the yaw and pitch state in whole degrees.
type Angles struct {
	Yaw, Pitch int
}

// Transform converts the snapshot to radians and composes it. No modulo is
// applied; the trigonometry wraps on its own.
func (a Angles) Transform() algebra.Matrix {
	return Transform(Radians(float64(a.Yaw)), Radians(float64(a.Pitch)))
}
