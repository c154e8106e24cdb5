package kernel_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
)

func dense(x ...float64) matrix.Vector { return matrix.NewDenseVector(x) }

func sparseOf(t *testing.T, x []float64) matrix.Vector {
	t.Helper()
	var idx []int
	var val []float64
	for j, v := range x {
		if v != 0 {
			idx = append(idx, j)
			val = append(val, v)
		}
	}
	sv, err := matrix.NewSparseVector(len(x), idx, val)
	require.NoError(t, err)

	return sv
}

func TestEvaluateClosedForms(t *testing.T) {
	u := dense(1, 2, 0)
	v := dense(0, 1, 3)

	assert.Equal(t, 2.0, kernel.Evaluate(u, v, kernel.Params{Type: kernel.Linear}))
	assert.InDelta(t, math.Pow(0.5*2+1, 3),
		kernel.Evaluate(u, v, kernel.Params{Type: kernel.Polynomial, Gamma: 0.5, Coef0: 1, Degree: 3}), 1e-12)
	// ‖u−v‖² = 1 + 1 + 9 = 11
	assert.InDelta(t, math.Exp(-0.1*11),
		kernel.Evaluate(u, v, kernel.Params{Type: kernel.RBF, Gamma: 0.1}), 1e-12)
	assert.InDelta(t, math.Tanh(0.5*2-1),
		kernel.Evaluate(u, v, kernel.Params{Type: kernel.Sigmoid, Gamma: 0.5, Coef0: -1}), 1e-12)
	assert.Equal(t, 1.0, kernel.Evaluate(u, u, kernel.Params{Type: kernel.RBF, Gamma: 3}))
}

func TestDenseSparseEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := []kernel.Params{
		{Type: kernel.Linear},
		{Type: kernel.Polynomial, Gamma: 0.3, Coef0: 1, Degree: 2},
		{Type: kernel.RBF, Gamma: 0.25},
		{Type: kernel.Sigmoid, Gamma: 0.05, Coef0: 0.1},
	}
	for trial := 0; trial < 50; trial++ {
		a := make([]float64, 12)
		b := make([]float64, 12)
		for j := range a {
			if rng.Float64() < 0.4 {
				a[j] = rng.NormFloat64()
			}
			if rng.Float64() < 0.4 {
				b[j] = rng.NormFloat64()
			}
		}
		da, db := dense(a...), dense(b...)
		sa, sb := sparseOf(t, a), sparseOf(t, b)
		for _, p := range params {
			want := kernel.Evaluate(da, db, p)
			assert.InDelta(t, want, kernel.Evaluate(sa, sb, p), 1e-12, "sparse/sparse %v", p.Type)
			assert.InDelta(t, want, kernel.Evaluate(sa, db, p), 1e-12, "sparse/dense %v", p.Type)
			assert.InDelta(t, want, kernel.Evaluate(da, sb, p), 1e-12, "dense/sparse %v", p.Type)
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, kernel.Validate(kernel.Params{Type: kernel.Linear, Gamma: -1}))
	require.NoError(t, kernel.Validate(kernel.Params{Type: kernel.RBF, Gamma: 0.5}))

	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.RBF}), kernel.ErrBadGamma)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Sigmoid, Gamma: -2}), kernel.ErrBadGamma)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.RBF, Gamma: math.NaN()}), kernel.ErrBadGamma)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Polynomial, Gamma: 1, Degree: 0}), kernel.ErrBadDegree)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Polynomial, Gamma: 1, Degree: math.MaxInt32 + 1}), kernel.ErrBadDegree)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Linear, Degree: math.MinInt32 - 1}), kernel.ErrBadDegree)
	require.NoError(t, kernel.Validate(kernel.Params{Type: kernel.Polynomial, Gamma: 1, Degree: math.MaxInt32}))
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Polynomial, Gamma: 1, Degree: 2, Coef0: math.Inf(1)}), kernel.ErrBadCoef0)
	require.ErrorIs(t, kernel.Validate(kernel.Params{Type: kernel.Type(9), Gamma: 1}), kernel.ErrUnknownType)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "rbf", kernel.RBF.String())
	assert.Equal(t, "kernel.Type(7)", kernel.Type(7).String())
}

func BenchmarkRBFDense(b *testing.B) {
	x := make([]float64, 256)
	y := make([]float64, 256)
	for i := range x {
		x[i], y[i] = float64(i)/256, float64(256-i)/256
	}
	u, v := dense(x...), dense(y...)
	p := kernel.Params{Type: kernel.RBF, Gamma: 0.01}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = kernel.Evaluate(u, v, p)
	}
}
