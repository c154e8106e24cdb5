// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/matrix"
)

// TestValidateFeatureMatrix covers nil inputs (plain and typed) and valid shapes.
func TestValidateFeatureMatrix(t *testing.T) {
	t.Parallel()

	dense := func(r, c int) matrix.FeatureMatrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}
	var nilDense *matrix.Dense
	var nilCSR *matrix.CSR

	tests := []struct {
		name    string
		m       matrix.FeatureMatrix
		wantErr error
	}{
		{"untyped nil", nil, matrix.ErrNilMatrix},
		{"typed nil dense", nilDense, matrix.ErrNilMatrix},
		{"typed nil csr", nilCSR, matrix.ErrNilMatrix},
		{"dense 2x3", dense(2, 3), nil},
		{"csr 2x3", matrix.DenseToCSR(dense(2, 3).(*matrix.Dense)), nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateFeatureMatrix(tc.m)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestValidateVecLen checks dense and sparse logical lengths.
func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	sv, err := matrix.NewSparseVector(4, []int{3}, []float64{1})
	require.NoError(t, err)

	require.NoError(t, matrix.ValidateVecLen(sv, 4))
	require.NoError(t, matrix.ValidateVecLen(matrix.NewDenseVector([]float64{1, 2}), 2))
	require.ErrorIs(t, matrix.ValidateVecLen(sv, 3), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(matrix.NewDenseVector([]float64{1}), 2), matrix.ErrDimensionMismatch)
}

// TestValidateFinite finds NaN/Inf in dense and sparse storage.
func TestValidateFinite(t *testing.T) {
	t.Parallel()

	loose, err := matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(loose), matrix.ErrNaNInf)

	looseCSR, err := matrix.NewCSR(2, 2, []float64{1, math.NaN()}, []int{0, 1}, []int{0, 1, 2}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(looseCSR), matrix.ErrNaNInf)

	clean, err := matrix.NewDenseRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(clean))
}
