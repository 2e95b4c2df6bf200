package algebra_test

import (
	"testing"

	"github.com/san-kum/spinframe/internal/algebra"
	"github.com/stretchr/testify/require"
)

func TestNewBuilderInvalidSize(t *testing.T) {
	_, err := algebra.NewBuilder(0, 3)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
	_, err = algebra.NewBuilder(3, -1)
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
}

func TestBuilderPutRowAdvancesCursor(t *testing.T) {
	b, err := algebra.NewBuilder(3, 2)
	require.NoError(t, err)
	require.Equal(t, 0, b.Cursor())

	m, err := b.PutRow(1, 2).PutRow(3).Build()
	require.NoError(t, err)
	require.Equal(t, 2, b.Cursor())
	// unwritten and short rows are zero
	require.Equal(t, [][]float64{{1, 2}, {3, 0}, {0, 0}}, m.ToRows())
}

func TestBuilderSetRow(t *testing.T) {
	b, err := algebra.NewBuilder(2, 2)
	require.NoError(t, err)

	m, err := b.SetRow(1, 5, 6).Build()
	require.NoError(t, err)
	require.Equal(t, 0, b.Cursor())
	require.Equal(t, [][]float64{{0, 0}, {5, 6}}, m.ToRows())
}

func TestBuilderErrorsAreSticky(t *testing.T) {
	b, err := algebra.NewBuilder(1, 2)
	require.NoError(t, err)

	_, err = b.PutRow(1, 2).PutRow(3, 4).Build()
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)

	b, err = algebra.NewBuilder(1, 2)
	require.NoError(t, err)
	_, err = b.PutRow(1, 2, 3).Build()
	require.ErrorIs(t, err, algebra.ErrDimensionMismatch)

	b, err = algebra.NewBuilder(2, 2)
	require.NoError(t, err)
	_, err = b.SetCursor(-1).PutRow(1).Build()
	require.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
	require.Error(t, b.Err())
}

func TestBuilderResizeKeepsValues(t *testing.T) {
	b, err := algebra.NewBuilder(2, 2)
	require.NoError(t, err)
	b.PutRow(1, 2).PutRow(3, 4)

	m, err := b.SetColumns(3).SetRows(3).Build()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 0}, {3, 4, 0}, {0, 0, 0}}, m.ToRows())

	m, err = b.SetRows(1).SetColumns(1).Build()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1}}, m.ToRows())

	_, err = b.SetRows(0).Build()
	require.ErrorIs(t, err, algebra.ErrInvalidSize)
}

func TestBuildCopiesBuffer(t *testing.T) {
	b, err := algebra.NewBuilder(1, 1)
	require.NoError(t, err)
	first, err := b.PutRow(1).Build()
	require.NoError(t, err)

	second, err := b.SetRow(0, 2).Build()
	require.NoError(t, err)

	require.Equal(t, [][]float64{{1}}, first.ToRows())
	require.Equal(t, [][]float64{{2}}, second.ToRows())
}
