package raster

import "github.com/san-kum/spinframe/internal/algebra"

// Triangle is three vertices and a base color. Winding is not significant.
type Triangle struct {
	P1, P2, P3 algebra.Vec3
	Color      Color
}

func NewTriangle(p1, p2, p3 algebra.Vec3, c Color) Triangle {
	return Triangle{P1: p1, P2: p2, P3: p3, Color: c}
}

// Normal returns the unit face normal (P2-P1)×(P3-P1). Degenerate triangles
// give NaN components.
func (t Triangle) Normal() algebra.Vec3 {
	return faceNormal(t.P1, t.P2, t.P3)
}

func faceNormal(a, b, c algebra.Vec3) algebra.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
