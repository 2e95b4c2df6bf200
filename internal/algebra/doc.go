// Package algebra provides the small dense linear algebra used by the renderer.
//
// The package defines two value types:
//
//   - [Matrix]: immutable R×C matrix of float64, row-major
//   - [Vec3]: immutable 3-component vector (a vertex)
//
// Matrices are built either directly from rows with [OfRows] or incrementally
// with a [Builder]. No operation mutates its receiver; every result is a new
// value, so matrices may be shared freely between goroutines.
//
// # Errors
//
// Precondition violations are reported with the sentinels [ErrDimensionMismatch],
// [ErrInvalidSize] and [ErrIndexOutOfRange], wrapped with the failing operation.
// Match them with errors.Is.
//
// Degenerate numerics are not errors: normalizing the zero vector yields NaN
// components.
package algebra
