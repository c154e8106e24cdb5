package svm

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
)

func (m *Model) checkInput(x matrix.Vector) error {
	if m == nil {
		return ErrNilModel
	}
	if err := matrix.ValidateVecLen(x, m.numFeatures); err != nil {
		return fmt.Errorf("%w: %w", ErrFeatureCount, err)
	}

	return nil
}

// decisionValues evaluates every sub-model on x, computing each support
// vector's kernel value once.
func (m *Model) decisionValues(x matrix.Vector) []float64 {
	var kv []float64
	if m.sv != nil {
		kv = make([]float64, m.sv.Rows())
		for t := range kv {
			kv[t] = kernel.Evaluate(m.sv.Row(t), x, m.params.Kernel)
		}
	}
	dec := make([]float64, len(m.subs))
	for k, s := range m.subs {
		sum := 0.0
		for t, row := range s.SV {
			sum += s.Coef[t] * kv[row]
		}
		dec[k] = sum - s.Rho
	}

	return dec
}

// output maps decision values to a prediction.
func (m *Model) output(dec []float64) float64 {
	if !m.params.Type.IsClassifier() {
		return dec[0]
	}

	return float64(m.labels[m.vote(dec)])
}

// vote returns the class index with most pairwise wins; ties go to the lower
// index. A decision of exactly 0 votes for ClassJ.
func (m *Model) vote(dec []float64) int {
	votes := make([]int, len(m.labels))
	for k, s := range m.subs {
		if dec[k] > 0 {
			votes[s.ClassI]++
		} else {
			votes[s.ClassJ]++
		}
	}
	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}

	return best
}

// DecisionValues returns one value per sub-model, in sub-model order.
//
// Errors: ErrNilModel, ErrFeatureCount.
func (m *Model) DecisionValues(x matrix.Vector) ([]float64, error) {
	if err := m.checkInput(x); err != nil {
		return nil, err
	}

	return m.decisionValues(x), nil
}

// Predict returns the class label (classifiers), the regression estimate or
// the one-class decision value (positive = inlier).
//
// Errors: ErrNilModel, ErrFeatureCount.
func (m *Model) Predict(x matrix.Vector) (float64, error) {
	if err := m.checkInput(x); err != nil {
		return 0, err
	}

	return m.output(m.decisionValues(x)), nil
}

// PredictBatch predicts every row of X, splitting rows across NumCores
// goroutines. Result i belongs to row i.
//
// Errors: ErrNilModel, ErrFeatureCount, or the matrix validation error.
func (m *Model) PredictBatch(X matrix.FeatureMatrix) ([]float64, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if X.Cols() != m.numFeatures {
		return nil, fmt.Errorf("%d columns, want %d: %w", X.Cols(), m.numFeatures, ErrFeatureCount)
	}
	n := X.Rows()
	out := make([]float64, n)
	workers := workerCount(m.params.NumCores, n)
	chunk := (n + workers - 1) / workers

	var eg errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = m.output(m.decisionValues(X.Row(i)))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// PredictProbability returns the predicted label and, for classifiers, one
// probability per class in class order (Labels). For regression models the
// second result is nil; use SVRSigma for the noise scale.
//
// Errors: ErrNilModel, ErrFeatureCount, ErrNotProbabilistic.
func (m *Model) PredictProbability(x matrix.Vector) (float64, []float64, error) {
	if err := m.checkInput(x); err != nil {
		return 0, nil, err
	}
	if !m.params.Probability {
		return 0, nil, ErrNotProbabilistic
	}
	dec := m.decisionValues(x)
	if !m.params.Type.IsClassifier() {
		return dec[0], nil, nil
	}

	k := len(m.labels)
	r := make([][]float64, k)
	for i := range r {
		r[i] = make([]float64, k)
	}
	for t, s := range m.subs {
		p := clampProb(sigmoidPredict(dec[t], s.ProbA, s.ProbB))
		r[s.ClassI][s.ClassJ] = p
		r[s.ClassJ][s.ClassI] = 1 - p
	}
	probs := multiclassProbability(k, r)
	best := 0
	for c := 1; c < k; c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}

	return float64(m.labels[best]), probs, nil
}
