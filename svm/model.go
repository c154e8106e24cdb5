package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
	"github.com/katalvlaran/lvsvm/solver"
)

// SubModel is one binary decision function over the model's shared support
// vectors: f(x) = Σ Coef[t]·K(SV[t], x) − Rho.
//
// For a class pair, f > 0 votes for ClassI. Regression and one-class models
// have a single SubModel with ClassI == ClassJ == 0.
type SubModel struct {
	ClassI, ClassJ int       // indices into Model.Labels
	SV             []int     // rows of Model.SupportVectors
	Coef           []float64 // len(SV)
	Rho            float64

	// Platt sigmoid 1/(1+exp(ProbA·f+ProbB)); zero unless trained with
	// Probability on a classifier.
	ProbA, ProbB float64

	Info SolveInfo
}

// Model is a trained SVM. It is immutable and safe for concurrent use.
type Model struct {
	params      Params
	numFeatures int
	labels      []int                // classifiers only, in class order
	sv          matrix.FeatureMatrix // nil when no support vectors were found
	subs        []SubModel
	svrSigma    float64
}

// Type returns the SVM formulation.
func (m *Model) Type() Type { return m.params.Type }

// Kernel returns the kernel with gamma resolved.
func (m *Model) Kernel() kernel.Params { return m.params.Kernel }

// Params returns the hyperparameters the model was trained with. The
// OnSubModel hook is not retained.
func (m *Model) Params() Params { return modelParams(m.params) }

// NumFeatures returns the input dimension expected by Predict.
func (m *Model) NumFeatures() int { return m.numFeatures }

// NumClasses returns the number of classes; 2 for regression and one-class.
func (m *Model) NumClasses() int {
	if !m.params.Type.IsClassifier() {
		return 2
	}

	return len(m.labels)
}

// Labels returns a copy of the class labels in class order, or nil for
// regression and one-class models.
func (m *Model) Labels() []int {
	if m.labels == nil {
		return nil
	}

	return append([]int(nil), m.labels...)
}

// NumSupportVectors returns the size of the shared support vector set.
func (m *Model) NumSupportVectors() int {
	if m.sv == nil {
		return 0
	}

	return m.sv.Rows()
}

// SupportVectors returns the shared support vector set (nil if empty). The
// matrix must not be modified.
func (m *Model) SupportVectors() matrix.FeatureMatrix { return m.sv }

// NumSubModels returns K(K−1)/2 for K classes, or 1.
func (m *Model) NumSubModels() int { return len(m.subs) }

// SubModel returns a copy of sub-model k.
func (m *Model) SubModel(k int) (SubModel, error) {
	if k < 0 || k >= len(m.subs) {
		return SubModel{}, fmt.Errorf("%d of %d: %w", k, len(m.subs), ErrSubModelIndex)
	}
	s := m.subs[k]
	s.SV = append([]int(nil), s.SV...)
	s.Coef = append([]float64(nil), s.Coef...)

	return s, nil
}

// Converged reports whether every sub-model's solver met the tolerance.
func (m *Model) Converged() bool {
	for _, s := range m.subs {
		if s.Info.Status != solver.Converged {
			return false
		}
	}

	return true
}

// Probability reports whether probability information was fitted.
func (m *Model) Probability() bool { return m.params.Probability }

// SVRSigma returns the Laplace scale of regression residuals, or 0.
func (m *Model) SVRSigma() float64 { return m.svrSigma }

// LinearWeights collapses sub-model k of a linear-kernel model into a primal
// weight vector w and bias b with f(x) = w·x + b.
func (m *Model) LinearWeights(k int) ([]float64, float64, error) {
	if m.params.Kernel.Type != kernel.Linear {
		return nil, 0, fmt.Errorf("kernel %v: %w", m.params.Kernel.Type, ErrNotLinear)
	}
	if k < 0 || k >= len(m.subs) {
		return nil, 0, fmt.Errorf("%d of %d: %w", k, len(m.subs), ErrSubModelIndex)
	}
	s := m.subs[k]
	w := make([]float64, m.numFeatures)
	if len(s.SV) == 0 {
		return w, -s.Rho, nil
	}

	// w = SVᵀ·coef over the rows this sub-model references.
	sv := mat.NewDense(len(s.SV), m.numFeatures, nil)
	for t, row := range s.SV {
		sv.SetRow(t, m.sv.Row(row).ToDense())
	}
	var wv mat.VecDense
	wv.MulVec(sv.T(), mat.NewVecDense(len(s.Coef), append([]float64(nil), s.Coef...)))
	for j := range w {
		w[j] = wv.AtVec(j)
	}

	return w, -s.Rho, nil
}
