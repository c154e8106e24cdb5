package svm_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/matrix"
	"github.com/katalvlaran/lvsvm/svm"
)

func TestPredictIdempotent(t *testing.T) {
	rows, y := blobs(21, [][]float64{{0, 0}, {2, 2}, {2, 0}}, []float64{0, 1, 2}, 20, 0.7)
	m := mustTrain(t, rows, y, svm.DefaultParams())

	for _, row := range rows {
		v := matrix.NewDenseVector(row)
		first, err := m.DecisionValues(v)
		require.NoError(t, err)
		second, err := m.DecisionValues(v)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Len(t, first, 3)
	}
}

func TestPredictBatchMatchesPredict(t *testing.T) {
	rows, y := blobs(22, [][]float64{{0, 0}, {2, 2}}, []float64{-1, 1}, 37, 0.9)
	m := mustTrain(t, rows, y, svm.NewParams(svm.WithNumCores(4)))
	x := mustDense(t, rows)

	batch, err := m.PredictBatch(x)
	require.NoError(t, err)
	require.Len(t, batch, len(rows))
	for i, row := range rows {
		got, err := m.Predict(matrix.NewDenseVector(row))
		require.NoError(t, err)
		assert.Equal(t, got, batch[i], "row %d", i)
	}

	sparseBatch, err := m.PredictBatch(matrix.DenseToCSR(x))
	require.NoError(t, err)
	assert.Equal(t, batch, sparseBatch)
}

func TestConcurrentPredict(t *testing.T) {
	rows, y := blobs(23, [][]float64{{0, 0}, {3, 0}, {0, 3}}, []float64{0, 1, 2}, 15, 0.8)
	m := mustTrain(t, rows, y, svm.DefaultParams())

	want := make([]float64, len(rows))
	for i, row := range rows {
		var err error
		want[i], err = m.Predict(matrix.NewDenseVector(row))
		require.NoError(t, err)
	}

	const goroutines = 8
	got := make([][]float64, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			out := make([]float64, len(rows))
			for i, row := range rows {
				out[i], _ = m.Predict(matrix.NewDenseVector(row))
			}
			got[g] = out
		}(g)
	}
	wg.Wait()
	for g := range got {
		assert.Equal(t, want, got[g])
	}
}

func TestPredictContract(t *testing.T) {
	rows, y := blobs(24, [][]float64{{0, 0}, {2, 2}}, []float64{0, 1}, 10, 0.5)
	m := mustTrain(t, rows, y, svm.DefaultParams())

	_, err := m.Predict(matrix.NewDenseVector([]float64{1, 2, 3}))
	require.ErrorIs(t, err, svm.ErrFeatureCount)
	require.ErrorIs(t, err, svm.ErrContract)

	_, err = m.DecisionValues(matrix.NewDenseVector([]float64{1}))
	require.ErrorIs(t, err, svm.ErrFeatureCount)

	wide, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = m.PredictBatch(wide)
	require.ErrorIs(t, err, svm.ErrFeatureCount)

	_, err = m.PredictBatch(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = m.PredictProbability(matrix.NewDenseVector([]float64{1, 1}))
	require.ErrorIs(t, err, svm.ErrNotProbabilistic)

	_, err = m.SubModel(1)
	require.ErrorIs(t, err, svm.ErrSubModelIndex)

	var nilModel *svm.Model
	_, err = nilModel.Predict(matrix.NewDenseVector([]float64{1, 1}))
	require.ErrorIs(t, err, svm.ErrNilModel)
	_, err = nilModel.PredictBatch(wide)
	require.ErrorIs(t, err, svm.ErrNilModel)
	_, err = svm.Marshal(nilModel)
	require.ErrorIs(t, err, svm.ErrNilModel)
}

func TestSubModelIsACopy(t *testing.T) {
	rows, y := blobs(25, [][]float64{{0, 0}, {2, 2}}, []float64{0, 1}, 10, 0.8)
	m := mustTrain(t, rows, y, svm.DefaultParams())

	sm, err := m.SubModel(0)
	require.NoError(t, err)
	require.NotEmpty(t, sm.Coef)
	before, err := m.DecisionValues(matrix.NewDenseVector(rows[0]))
	require.NoError(t, err)

	sm.Coef[0] += 100
	after, err := m.DecisionValues(matrix.NewDenseVector(rows[0]))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestSparseQuery(t *testing.T) {
	rows, y := blobs(26, [][]float64{{0, 0, 0, 1}, {1, 0, 0, 0}}, []float64{0, 1}, 15, 0.2)
	m := mustTrain(t, rows, y, svm.DefaultParams())

	q, err := matrix.NewSparseVector(4, []int{0}, []float64{1})
	require.NoError(t, err)
	got, err := m.Predict(q)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}
