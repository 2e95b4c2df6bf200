package algebra_test

import (
	"testing"

	"github.com/san-kum/spinframe/internal/algebra"
	"github.com/stretchr/testify/require"
)

func TestOfRowsRoundTrip(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := algebra.OfRows(rows)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, rows, m.ToRows())
}

func TestOfRowsCopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m, err := algebra.OfRows(rows)
	require.NoError(t, err)

	rows[0][0] = 99
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestOfRowsInvalid(t *testing.T) {
	_, err := algebra.OfRows(nil)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)

	_, err = algebra.OfRows([][]float64{{}})
	require.ErrorIs(t, err, algebra.ErrInvalidSize)

	_, err = algebra.OfRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)
}

func TestAccessorsOutOfRange(t *testing.T) {
	m := algebra.MustOfRows([][]float64{{1, 2}, {3, 4}})

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
	_, err = m.Row(2)
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
	_, err = m.Column(-1)
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, row)

	col, err := m.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4}, col)
}

func TestMultiply(t *testing.T) {
	a := algebra.MustOfRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b := algebra.MustOfRows([][]float64{{7, 8}, {9, 10}, {11, 12}})

	got, err := a.Multiply(b)
	require.NoError(t, err)
	want := algebra.MustOfRows([][]float64{{58, 64}, {139, 154}})
	require.True(t, got.Equal(want), "got\n%v", got)
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	a := algebra.MustOfRows([][]float64{{1, 2}})
	_, err := a.Multiply(a)
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)

	_, err = a.Multiply(algebra.Matrix{})
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
}

func TestMultiplyAssociative(t *testing.T) {
	a := algebra.MustOfRows([][]float64{{0.5, -1.25}, {3, 2.2}, {-0.1, 4}})
	b := algebra.MustOfRows([][]float64{{1.5, 0, -2}, {0.3, 7, 1}})
	c := algebra.MustOfRows([][]float64{{2}, {-0.75}, {0.125}})

	ab, err := a.Multiply(b)
	require.NoError(t, err)
	left, err := ab.Multiply(c)
	require.NoError(t, err)

	bc, err := b.Multiply(c)
	require.NoError(t, err)
	right, err := a.Multiply(bc)
	require.NoError(t, err)

	require.True(t, left.ApproxEqual(right, 1e-12))
}

func TestTransposeInvolution(t *testing.T) {
	m := algebra.MustOfRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	tr := m.Transpose()
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToRows())
	require.True(t, tr.Transpose().Equal(m))
}

func TestScale(t *testing.T) {
	m := algebra.MustOfRows([][]float64{{1, -2}, {0.5, 4}})
	require.Equal(t, [][]float64{{2, -4}, {1, 8}}, m.Scale(2).ToRows())
	// receiver untouched
	require.Equal(t, [][]float64{{1, -2}, {0.5, 4}}, m.ToRows())
}

func TestIdentity(t *testing.T) {
	_, err := algebra.Identity(0)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
	_, err = algebra.Identity(-3)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)

	m := algebra.MustOfRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	for _, n := range []int{3, 3, 32} {
		id, err := algebra.Identity(n)
		require.NoError(t, err)
		require.True(t, id.IsSquare())
		if n != 3 {
			continue
		}
		got, err := id.Multiply(m)
		require.NoError(t, err)
		require.True(t, got.Equal(m))
	}
}

func TestGenerate(t *testing.T) {
	m, err := algebra.Generate(2, 3, 1.5)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1.5, 1.5, 1.5}, {1.5, 1.5, 1.5}}, m.ToRows())

	_, err = algebra.Generate(0, 1, 0)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
}

func TestEqual(t *testing.T) {
	a := algebra.MustOfRows([][]float64{{1, 2}})
	require.True(t, a.Equal(algebra.MustOfRows([][]float64{{1, 2}})))
	require.False(t, a.Equal(algebra.MustOfRows([][]float64{{1, 3}})))
	require.False(t, a.Equal(algebra.MustOfRows([][]float64{{1}, {2}})))
}

func TestString(t *testing.T) {
	m := algebra.MustOfRows([][]float64{{1, 0.5}, {-2, 3}})
	require.Equal(t, "[1, 0.5]\n[-2, 3]", m.String())
}
