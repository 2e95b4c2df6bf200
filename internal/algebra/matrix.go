package algebra

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is an immutable rows×cols matrix stored row-major in a flat slice.
//
// The zero value has no rows and is rejected by every arithmetic operation.
type Matrix struct {
	rows, cols int
	data       []float64
}

// OfRows builds a matrix from rows. The input is copied; every row must have the
// same, non-zero length.
func OfRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("OfRows: %w", ErrInvalidSize)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return Matrix{}, fmt.Errorf("OfRows: row %d has %d elements, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		data = append(data, row...)
	}
	return Matrix{rows: len(rows), cols: c, data: data}, nil
}

// MustOfRows is like OfRows but panics on malformed input. It is meant for
// matrices written out as literals.
func MustOfRows(rows [][]float64) Matrix {
	m, err := OfRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Generate returns a rows×cols matrix with every element set to v.
func Generate(rows, cols int, v float64) (Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return Matrix{}, fmt.Errorf("Generate: %w", ErrInvalidSize)
	}
	m := zeros(rows, cols)
	for i := range m.data {
		m.data[i] = v
	}
	return m, nil
}

func zeros(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m Matrix) Rows() int { return m.rows }

func (m Matrix) Cols() int { return m.cols }

func (m Matrix) IsSquare() bool { return m.rows == m.cols }

func (m Matrix) valid() bool { return m.rows > 0 && m.cols > 0 }

// At returns the element at (row, col).
func (m Matrix) At(row, col int) (float64, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("At(%d,%d) on %dx%d: %w", row, col, m.rows, m.cols, ErrIndexOutOfRange)
	}
	return m.data[row*m.cols+col], nil
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("Row(%d) on %dx%d: %w", i, m.rows, m.cols, ErrIndexOutOfRange)
	}
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out, nil
}

// Column returns a copy of column j.
func (m Matrix) Column(j int) ([]float64, error) {
	if j < 0 || j >= m.cols {
		return nil, fmt.Errorf("Column(%d) on %dx%d: %w", j, m.rows, m.cols, ErrIndexOutOfRange)
	}
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+j]
	}
	return out, nil
}

// ToRows returns the matrix as freshly allocated rows. OfRows(m.ToRows())
// equals m.
func (m Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// Multiply returns m·o. It requires m.Cols() == o.Rows().
func (m Matrix) Multiply(o Matrix) (Matrix, error) {
	if !m.valid() || !o.valid() {
		return Matrix{}, fmt.Errorf("Multiply: %w", ErrInvalidSize)
	}
	if m.cols != o.rows {
		return Matrix{}, fmt.Errorf("Multiply %dx%d by %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	out := zeros(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.data[i*m.cols+k] * o.data[k*o.cols+j]
			}
			out.data[i*o.cols+j] = sum
		}
	}
	return out, nil
}

// Scale returns the element-wise product of m and s.
func (m Matrix) Scale(s float64) Matrix {
	out := zeros(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = v * s
	}
	return out
}

// Transpose returns the cols×rows transpose of m.
func (m Matrix) Transpose() Matrix {
	out := zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Equal reports whether m and o have the same shape and identical elements.
func (m Matrix) Equal(o Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// ApproxEqual is Equal with an absolute per-element tolerance.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-o.data[i]) > eps {
			return false
		}
	}
	return true
}

// String formats one bracketed row per line.
func (m Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(m.data[i*m.cols+j], 'g', -1, 64))
		}
		b.WriteByte(']')
	}
	return b.String()
}
