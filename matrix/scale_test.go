package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/matrix"
)

func TestScalerDense(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{0, 10, 3}, {5, 20, 3}, {10, 30, 3}})
	require.NoError(t, err)

	s, err := matrix.FitScaler(m, -1, 1)
	require.NoError(t, err)
	mins, maxs := s.Extrema()
	require.Equal(t, []float64{0, 10, 3}, mins)
	require.Equal(t, []float64{10, 30, 3}, maxs)

	out, err := s.Transform(m)
	require.NoError(t, err)
	require.False(t, out.Sparse())
	require.Equal(t, []float64{-1, -1, 3}, out.Row(0).Dense())
	require.Equal(t, []float64{0, 0, 3}, out.Row(1).Dense())
	require.Equal(t, []float64{1, 1, 3}, out.Row(2).Dense())

	row, err := s.TransformVector(matrix.NewDenseVector([]float64{2.5, 15, 7}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-0.5, -0.5, 7}, row, 1e-12)
}

func TestScalerSparseCountsImplicitZeros(t *testing.T) {
	// column 0 stored only as 4 in row 0; row 1 holds an implicit zero.
	m, err := matrix.NewCSR(2, 2, []float64{4, 2}, []int{0, 1}, []int{0, 1, 2})
	require.NoError(t, err)

	s, err := matrix.FitScaler(m, 0, 1)
	require.NoError(t, err)
	mins, maxs := s.Extrema()
	require.Equal(t, []float64{0, 0}, mins)
	require.Equal(t, []float64{4, 2}, maxs)

	out, err := s.Transform(m)
	require.NoError(t, err)
	require.True(t, out.Sparse())
	require.Equal(t, []float64{1, 0}, out.Row(0).ToDense())
	require.Equal(t, []float64{0, 1}, out.Row(1).ToDense())
}

func TestScalerErrors(t *testing.T) {
	m, err := matrix.NewDenseRows([][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = matrix.FitScaler(m, 1, 1)
	require.ErrorIs(t, err, matrix.ErrBadRange)
	_, err = matrix.FitScaler(nil, 0, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	s, err := matrix.FitScaler(m, 0, 1)
	require.NoError(t, err)
	other, err := matrix.NewDenseRows([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	_, err = s.Transform(other)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = s.TransformVector(matrix.NewDenseVector([]float64{1}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
