package algebra

import "errors"

var (
	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Multiply
	// where a.Cols() != b.Rows(), or Transform with a matrix that is not 3×3.
	ErrDimensionMismatch = errors.New("algebra: dimension mismatch")

	// ErrInvalidSize indicates a zero or negative matrix dimension.
	ErrInvalidSize = errors.New("algebra: invalid size")

	// ErrIndexOutOfRange indicates a row, column or element index outside bounds.
	ErrIndexOutOfRange = errors.New("algebra: index out of range")
)
