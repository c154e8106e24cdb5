package svm_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/matrix"
	"github.com/katalvlaran/lvsvm/svm"
)

// blobs draws perClass Gaussian points around each center and shuffles the
// result. Class c gets label labels[c].
func blobs(seed int64, centers [][]float64, labels []float64, perClass int, sigma float64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	var rows [][]float64
	var y []float64
	for c, center := range centers {
		for n := 0; n < perClass; n++ {
			row := make([]float64, len(center))
			for j := range row {
				row[j] = center[j] + sigma*rng.NormFloat64()
			}
			rows = append(rows, row)
			y = append(y, labels[c])
		}
	}
	rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
		y[i], y[j] = y[j], y[i]
	})

	return rows, y
}

func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return d
}

func mustTrain(t testing.TB, rows [][]float64, y []float64, p svm.Params) *svm.Model {
	t.Helper()
	m, err := svm.Train(mustDense(t, rows), y, p)
	require.NoError(t, err)

	return m
}

// accuracy is the share of rows whose prediction equals y.
func accuracy(t testing.TB, m *svm.Model, rows [][]float64, y []float64) float64 {
	t.Helper()
	hit := 0
	for i, row := range rows {
		got, err := m.Predict(matrix.NewDenseVector(row))
		require.NoError(t, err)
		if got == y[i] {
			hit++
		}
	}

	return float64(hit) / float64(len(rows))
}

// recall is the share of rows labelled label that are predicted as label.
func recall(t testing.TB, m *svm.Model, rows [][]float64, y []float64, label float64) float64 {
	t.Helper()
	total, hit := 0, 0
	for i, row := range rows {
		if y[i] != label {
			continue
		}
		total++
		got, err := m.Predict(matrix.NewDenseVector(row))
		require.NoError(t, err)
		if got == label {
			hit++
		}
	}
	require.NotZero(t, total)

	return float64(hit) / float64(total)
}
