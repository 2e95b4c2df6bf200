package algebra

import "fmt"

// Builder stages a matrix row by row. It is not safe for concurrent use.
//
// The first error encountered is kept and returned by Build; later calls on a
// failed builder are no-ops, so calls may be chained:
//
//	m, err := b.PutRow(1, 0).PutRow(0, 1).Build()
type Builder struct {
	rows, cols int
	cursor     int
	buf        [][]float64
	err        error
}

// NewBuilder returns a builder for a rows×cols matrix with every element zero.
func NewBuilder(rows, cols int) (*Builder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewBuilder(%d,%d): %w", rows, cols, ErrInvalidSize)
	}
	b := &Builder{rows: rows, cols: cols}
	b.buf = allocRows(rows, cols)
	return b, nil
}

func allocRows(rows, cols int) [][]float64 {
	buf := make([][]float64, rows)
	for i := range buf {
		buf[i] = make([]float64, cols)
	}
	return buf
}

// PutRow writes vals to the row under the cursor and advances the cursor.
func (b *Builder) PutRow(vals ...float64) *Builder {
	if b.err != nil {
		return b
	}
	b.SetRow(b.cursor, vals...)
	b.cursor++
	return b
}

// SetRow writes vals to row i without moving the cursor. Short rows are
// zero-padded.
func (b *Builder) SetRow(i int, vals ...float64) *Builder {
	if b.err != nil {
		return b
	}
	if i < 0 || i >= b.rows {
		b.err = fmt.Errorf("SetRow(%d) on %d rows: %w", i, b.rows, ErrIndexOutOfRange)
		return b
	}
	if len(vals) > b.cols {
		b.err = fmt.Errorf("SetRow(%d): %d values for %d columns: %w", i, len(vals), b.cols, ErrDimensionMismatch)
		return b
	}
	row := b.buf[i]
	n := copy(row, vals)
	for j := n; j < len(row); j++ {
		row[j] = 0
	}
	return b
}

// SetRows changes the target row count, keeping rows that still fit.
func (b *Builder) SetRows(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("SetRows(%d): %w", n, ErrInvalidSize)
		return b
	}
	b.resize(n, b.cols)
	return b
}

// SetColumns changes the target column count, keeping values that still fit.
func (b *Builder) SetColumns(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("SetColumns(%d): %w", n, ErrInvalidSize)
		return b
	}
	b.resize(b.rows, n)
	return b
}

func (b *Builder) resize(rows, cols int) {
	next := allocRows(rows, cols)
	for i := 0; i < rows && i < b.rows; i++ {
		copy(next[i], b.buf[i])
	}
	b.buf, b.rows, b.cols = next, rows, cols
}

func (b *Builder) Cursor() int { return b.cursor }

// SetCursor moves the cursor. An out of range cursor is only reported by the
// next PutRow.
func (b *Builder) SetCursor(i int) *Builder {
	b.cursor = i
	return b
}

func (b *Builder) Err() error { return b.err }

// Build returns a copy of the staged matrix. Rows never written are zero. The
// builder stays usable afterwards.
func (b *Builder) Build() (Matrix, error) {
	if b.err != nil {
		return Matrix{}, b.err
	}
	m := zeros(b.rows, b.cols)
	for i, row := range b.buf {
		copy(m.data[i*b.cols:], row)
	}
	return m, nil
}
