// Package scene supplies the triangle lists the engine draws.
package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/spinframe/internal/algebra"
	"github.com/san-kum/spinframe/internal/config"
	"github.com/san-kum/spinframe/internal/raster"
)

// ErrEmpty is returned by FromConfig for a scene with no faces.
var ErrEmpty = errors.New("scene: no triangles")

// Default is the tetrahedron with vertices at alternating corners of a
// 200-unit cube centred on the origin.
func Default() []raster.Triangle {
	var (
		a = algebra.V3(100, 100, 100)
		b = algebra.V3(-100, -100, 100)
		c = algebra.V3(-100, 100, -100)
		d = algebra.V3(100, -100, -100)
	)
	return []raster.Triangle{
		raster.NewTriangle(a, b, c, raster.White),
		raster.NewTriangle(a, b, d, raster.Red),
		raster.NewTriangle(c, d, a, raster.Green),
		raster.NewTriangle(c, d, b, raster.Blue),
	}
}

// FromConfig builds triangles from config faces. An empty list is an error;
// callers that want a fallback use Load.
func FromConfig(faces []config.TriangleConfig) ([]raster.Triangle, error) {
	if len(faces) == 0 {
		return nil, ErrEmpty
	}
	tris := make([]raster.Triangle, 0, len(faces))
	for i, f := range faces {
		if len(f.Points) != 3 {
			return nil, fmt.Errorf("scene: face %d has %d points", i, len(f.Points))
		}
		var pts [3]algebra.Vec3
		for j, p := range f.Points {
			if len(p) != 3 {
				return nil, fmt.Errorf("scene: face %d point %d has %d coordinates", i, j, len(p))
			}
			pts[j] = algebra.V3(p[0], p[1], p[2])
		}
		col, err := config.ParseColor(f.Color)
		if err != nil {
			return nil, fmt.Errorf("scene: face %d: %w", i, err)
		}
		tris = append(tris, raster.NewTriangle(pts[0], pts[1], pts[2], col))
	}
	return tris, nil
}

// Load returns the configured scene, or Default when none is configured.
func Load(cfg *config.Config) ([]raster.Triangle, error) {
	if len(cfg.Scene) == 0 {
		return Default(), nil
	}
	return FromConfig(cfg.Scene)
}

// ToConfig is the inverse of FromConfig, used by init-config.
func ToConfig(tris []raster.Triangle) []config.TriangleConfig {
	out := make([]config.TriangleConfig, len(tris))
	for i, t := range tris {
		out[i] = config.TriangleConfig{
			Points: [][]float64{
				{t.P1.X, t.P1.Y, t.P1.Z},
				{t.P2.X, t.P2.Y, t.P2.Z},
				{t.P3.X, t.P3.Y, t.P3.Z},
			},
			Color: t.Color.Hex(),
		}
	}
	return out
}
