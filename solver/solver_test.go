package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
	"github.com/katalvlaran/lvsvm/solver"
)

var linear = kernel.Params{Type: kernel.Linear}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// blobs returns n points per class around (±2, ±2) with labels +1/−1.
func blobs(t testing.TB, n int, seed int64) (*matrix.Dense, []int8) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, 0, 2*n)
	y := make([]int8, 0, 2*n)
	for i := 0; i < n; i++ {
		rows = append(rows, []float64{2 + rng.NormFloat64(), 2 + rng.NormFloat64()})
		y = append(y, 1)
		rows = append(rows, []float64{-2 + rng.NormFloat64(), -2 + rng.NormFloat64()})
		y = append(y, -1)
	}
	x, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)
	return x, y
}

func svcProblem(x matrix.FeatureMatrix, y []int8, p kernel.Params, c float64, cacheBytes int64) solver.Problem {
	l := x.Rows()
	return solver.Problem{
		Q:         solver.NewSVCQ(x, y, p, cacheBytes),
		P:         constant(l, -1),
		Y:         y,
		Alpha:     make([]float64, l),
		C:         constant(l, c),
		Tolerance: 1e-3,
		MaxIter:   -1,
		Shrinking: true,
	}
}

// TestTwoPointsAnalytic: x=0 (+1) and x=2 (−1) give f(x) = 1 − x.
func TestTwoPointsAnalytic(t *testing.T) {
	x, err := matrix.NewDenseRows([][]float64{{0}, {2}})
	require.NoError(t, err)
	res, err := solver.Solve(svcProblem(x, []int8{1, -1}, linear, 10, 0))
	require.NoError(t, err)

	require.Equal(t, solver.Converged, res.Status)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.Alpha, 1e-9)
	assert.InDelta(t, -1.0, res.Rho, 1e-9)
	assert.InDelta(t, -0.5, res.Obj, 1e-9)
	assert.Equal(t, 1, res.Iterations)
}

func TestMaxIterZeroReturnsInitialAlpha(t *testing.T) {
	x, y := blobs(t, 20, 1)
	prob := svcProblem(x, y, linear, 1, 0)
	prob.MaxIter = 0
	res, err := solver.Solve(prob)
	require.NoError(t, err)

	require.Equal(t, solver.IterLimit, res.Status)
	require.Equal(t, 0, res.Iterations)
	require.Equal(t, make([]float64, x.Rows()), res.Alpha)
	require.Equal(t, "iteration limit", res.Status.String())
}

func TestIterLimitIsBestSoFar(t *testing.T) {
	x, y := blobs(t, 50, 2)
	prob := svcProblem(x, y, kernel.Params{Type: kernel.RBF, Gamma: 0.5}, 1, 0)
	prob.MaxIter = 3
	res, err := solver.Solve(prob)
	require.NoError(t, err)
	require.Equal(t, solver.IterLimit, res.Status)
	require.Equal(t, 3, res.Iterations)
	assertFeasible(t, res.Alpha, y, 1)
}

func assertFeasible(t *testing.T, alpha []float64, y []int8, c float64) {
	t.Helper()
	sum := 0.0
	for i, a := range alpha {
		require.GreaterOrEqual(t, a, 0.0)
		require.LessOrEqual(t, a, c+1e-12)
		sum += float64(y[i]) * a
	}
	require.InDelta(t, 0, sum, 1e-9, "equality constraint yᵀα = 0")
}

// TestCacheModesAgree: cached, recompute-only and shrinking-off runs reach the same optimum.
func TestCacheModesAgree(t *testing.T) {
	x, y := blobs(t, 60, 3)
	rbf := kernel.Params{Type: kernel.RBF, Gamma: 0.5}

	cached, err := solver.Solve(svcProblem(x, y, rbf, 1, 0))
	require.NoError(t, err)
	recomputed, err := solver.Solve(svcProblem(x, y, rbf, 1, 1))
	require.NoError(t, err)
	require.Equal(t, cached.Alpha, recomputed.Alpha, "cache must not change arithmetic")
	require.Equal(t, cached.Rho, recomputed.Rho)

	noShrink := svcProblem(x, y, rbf, 1, 0)
	noShrink.Shrinking = false
	plain, err := solver.Solve(noShrink)
	require.NoError(t, err)
	require.InDelta(t, cached.Obj, plain.Obj, 1e-3)
	require.InDelta(t, cached.Rho, plain.Rho, 1e-2)

	assertFeasible(t, cached.Alpha, y, 1)
	assertFeasible(t, plain.Alpha, y, 1)
}

// TestSeparatesBlobs checks the decision function sign on training points.
func TestSeparatesBlobs(t *testing.T) {
	x, y := blobs(t, 40, 4)
	res, err := solver.Solve(svcProblem(x, y, linear, 10, 0))
	require.NoError(t, err)

	correct := 0
	for i := 0; i < x.Rows(); i++ {
		f := -res.Rho
		for j := 0; j < x.Rows(); j++ {
			f += res.Alpha[j] * float64(y[j]) * kernel.Evaluate(x.Row(j), x.Row(i), linear)
		}
		if (f > 0) == (y[i] == 1) {
			correct++
		}
	}
	require.GreaterOrEqual(t, float64(correct)/float64(x.Rows()), 0.95)
}

func TestNuVariantKeepsSums(t *testing.T) {
	x, y := blobs(t, 30, 5)
	l := x.Rows()
	nu := 0.4
	alpha := make([]float64, l)
	sumPos, sumNeg := nu*float64(l)/2, nu*float64(l)/2
	for i := range alpha {
		if y[i] == 1 {
			alpha[i] = min(1, sumPos)
			sumPos -= alpha[i]
		} else {
			alpha[i] = min(1, sumNeg)
			sumNeg -= alpha[i]
		}
	}
	res, err := solver.Solve(solver.Problem{
		Q:         solver.NewSVCQ(x, y, linear, 0),
		P:         make([]float64, l),
		Y:         y,
		Alpha:     alpha,
		C:         constant(l, 1),
		Tolerance: 1e-3,
		MaxIter:   -1,
		Shrinking: true,
		Variant:   solver.Nu,
	})
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.Status)
	require.Greater(t, res.R, 0.0)

	var pos, neg float64
	for i, a := range res.Alpha {
		if y[i] == 1 {
			pos += a
		} else {
			neg += a
		}
	}
	require.InDelta(t, nu*float64(l)/2, pos, 1e-9)
	require.InDelta(t, nu*float64(l)/2, neg, 1e-9)
}

func TestSVRQColumns(t *testing.T) {
	x, err := matrix.NewDenseRows([][]float64{{1, 0}, {0, 2}, {1, 1}})
	require.NoError(t, err)
	p := kernel.Params{Type: kernel.Polynomial, Gamma: 1, Coef0: 1, Degree: 2}
	q := solver.NewSVRQ(x, p, 0)
	require.Equal(t, 6, q.Len())

	sign := []float64{1, 1, 1, -1, -1, -1}
	for a := 0; a < 6; a++ {
		col := append([]float64(nil), q.Column(a, 6)...)
		for b := 0; b < 6; b++ {
			want := sign[a] * sign[b] * kernel.Evaluate(x.Row(a%3), x.Row(b%3), p)
			require.InDelta(t, want, col[b], 1e-12, "Q[%d,%d]", b, a)
		}
		require.InDelta(t, kernel.Evaluate(x.Row(a%3), x.Row(a%3), p), q.Diagonal()[a], 1e-12)
	}

	q.SwapIndex(0, 4)
	col := q.Column(0, 6)
	// variable 0 is now α*_1: sign −1, sample 1
	require.InDelta(t, kernel.Evaluate(x.Row(1), x.Row(1), p), col[0], 1e-12)
}

func TestSolveRejectsMalformed(t *testing.T) {
	_, err := solver.Solve(solver.Problem{})
	require.ErrorIs(t, err, solver.ErrBadProblem)

	x, y := blobs(t, 2, 6)
	prob := svcProblem(x, y, linear, 1, 0)
	prob.P = prob.P[:1]
	_, err = solver.Solve(prob)
	require.ErrorIs(t, err, solver.ErrBadProblem)

	prob = svcProblem(x, y, linear, 1, 0)
	prob.Tolerance = 0
	_, err = solver.Solve(prob)
	require.ErrorIs(t, err, solver.ErrBadProblem)

	prob = svcProblem(x, y, linear, 1, 0)
	prob.Y = []int8{1, 0, 1, -1}
	_, err = solver.Solve(prob)
	require.ErrorIs(t, err, solver.ErrBadProblem)
}

func BenchmarkSolveRBF(b *testing.B) {
	x, y := blobs(b, 200, 9)
	rbf := kernel.Params{Type: kernel.RBF, Gamma: 0.5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(svcProblem(x, y, rbf, 1, 0)); err != nil {
			b.Fatal(err)
		}
	}
}
