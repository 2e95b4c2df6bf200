package algebra

import (
	"fmt"
	"math"
)

// Vec3 is an immutable 3D vector, also used as a vertex position.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Length is the Euclidean norm of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns v scaled to unit length. The zero vector has no direction
// and yields NaN components.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vec3) DistanceTo(o Vec3) float64 { return v.Sub(o).Length() }

// Cross returns v×o computed as the skew-symmetric matrix of v times o as a
// column.
func (v Vec3) Cross(o Vec3) Vec3 {
	// 3×3 by 3×1 always conforms.
	m, _ := v.SkewMatrix().Multiply(o.Column())
	return fromColumn(m)
}

// SkewMatrix returns the 3×3 matrix [v]× with [v]×·u == v×u:
//
//	[ 0  -z   y]
//	[ z   0  -x]
//	[-y   x   0]
func (v Vec3) SkewMatrix() Matrix {
	return Matrix{rows: 3, cols: 3, data: []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	}}
}

// Column returns v as a 3×1 matrix.
func (v Vec3) Column() Matrix {
	return Matrix{rows: 3, cols: 1, data: []float64{v.X, v.Y, v.Z}}
}

// VecFromColumn reads a 3×1 matrix back as a vector.
func VecFromColumn(m Matrix) (Vec3, error) {
	if m.rows != 3 || m.cols != 1 {
		return Vec3{}, fmt.Errorf("VecFromColumn %dx%d: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	return fromColumn(m), nil
}

func fromColumn(m Matrix) Vec3 { return Vec3{m.data[0], m.data[1], m.data[2]} }

// Transform returns m·v. m must be 3×3.
func (v Vec3) Transform(m Matrix) (Vec3, error) {
	if m.rows != 3 || m.cols != 3 {
		return Vec3{}, fmt.Errorf("Transform by %dx%d: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	r, err := m.Multiply(v.Column())
	if err != nil {
		return Vec3{}, err
	}
	return fromColumn(r), nil
}

func (v Vec3) String() string { return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z) }
