package svm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
)

// trainSet is validated training input with derived per-class data.
type trainSet struct {
	x matrix.FeatureMatrix
	y []float64
	// p has gamma resolved.
	p Params
	// groups and weight are set for classifiers only; weight[c] multiplies
	// C for groups.labels[c].
	groups classGroups
	weight []float64
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// prepare validates everything Train needs before any solver runs.
//
// Order: svm type → features → labels → kernel → scalar hyperparameters →
// weight values → class structure (count, weight labels, nu feasibility).
func prepare(x matrix.FeatureMatrix, y []float64, p Params) (*trainSet, error) {
	if !p.Type.valid() {
		return nil, fmt.Errorf("%v: %w", p.Type, ErrBadType)
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if x.Rows() == 0 {
		return nil, ErrNoData
	}
	if err := matrix.ValidateFeatureMatrix(x); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := checkLabels(x.Rows(), y, p.Type); err != nil {
		return nil, err
	}

	if p.Kernel.Type != kernel.Linear && p.Kernel.Gamma == 0 {
		p.Kernel.Gamma = 1 / float64(x.Cols())
	}
	if err := kernel.Validate(p.Kernel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := checkScalars(p); err != nil {
		return nil, err
	}

	ts := &trainSet{x: x, y: y, p: p}
	if p.Type == OneClass && y == nil {
		ts.y = make([]float64, x.Rows())
	}
	if err := checkWeights(p); err != nil {
		return nil, err
	}
	if !p.Type.IsClassifier() {
		return ts, nil
	}

	ts.groups = groupClasses(y)
	if len(ts.groups.labels) < 2 {
		return nil, fmt.Errorf("%d distinct label(s): %w", len(ts.groups.labels), ErrTooFewClasses)
	}
	w, err := classWeights(ts.groups.labels, p)
	if err != nil {
		return nil, err
	}
	ts.weight = w
	if p.Type == NuSVC {
		if err := checkNuFeasible(ts.groups, p.Nu); err != nil {
			return nil, err
		}
	}

	return ts, nil
}

func checkLabels(rows int, y []float64, t Type) error {
	if y == nil && t == OneClass {
		return nil
	}
	if len(y) != rows {
		return fmt.Errorf("%d labels for %d rows: %w", len(y), rows, ErrLabelCount)
	}
	for i, v := range y {
		if !finite(v) {
			return fmt.Errorf("label %d: %w", i, ErrNonFiniteLabel)
		}
		if t.IsClassifier() && (v != math.Trunc(v) || math.Abs(v) > math.MaxInt32) {
			return fmt.Errorf("label %d = %g: %w", i, v, ErrNonIntegralLabel)
		}
	}

	return nil
}

func checkScalars(p Params) error {
	switch p.Type {
	case CSVC, EpsilonSVR, NuSVR:
		if !finite(p.C) || p.C <= 0 {
			return fmt.Errorf("C=%g: %w", p.C, ErrBadCost)
		}
	}
	switch p.Type {
	case NuSVC, OneClass, NuSVR:
		if !(p.Nu > 0 && p.Nu <= 1) {
			return fmt.Errorf("nu=%g: %w", p.Nu, ErrBadNu)
		}
	}
	if p.Type == EpsilonSVR && (!finite(p.Epsilon) || p.Epsilon < 0) {
		return fmt.Errorf("epsilon=%g: %w", p.Epsilon, ErrBadEpsilon)
	}
	if !finite(p.Tolerance) || p.Tolerance <= 0 {
		return fmt.Errorf("tolerance=%g: %w", p.Tolerance, ErrBadTolerance)
	}
	if p.NumCores == 0 || p.NumCores < -1 || p.NumCores > math.MaxInt32 {
		return fmt.Errorf("NumCores=%d: %w", p.NumCores, ErrBadCores)
	}
	if p.Probability && p.Type == OneClass {
		return ErrProbabilityOneClass
	}

	return nil
}

// checkWeights applies to every type: weights are stored on the model even
// when the type ignores them.
func checkWeights(p Params) error {
	if len(p.WeightLabels) != len(p.Weights) {
		return fmt.Errorf("%d labels, %d weights: %w", len(p.WeightLabels), len(p.Weights), ErrWeightLength)
	}
	seen := make(map[int]bool, len(p.WeightLabels))
	for k, l := range p.WeightLabels {
		if seen[l] {
			return fmt.Errorf("duplicate weight label %d: %w", l, ErrBadWeight)
		}
		seen[l] = true
		if !finite(p.Weights[k]) || p.Weights[k] <= 0 {
			return fmt.Errorf("weight %g for label %d: %w", p.Weights[k], l, ErrBadWeight)
		}
	}

	return nil
}

// classWeights maps WeightLabels/Weights onto the class order. Classes
// without an override get 1. p must have passed checkWeights.
func classWeights(labels []int, p Params) ([]float64, error) {
	index := make(map[int]int, len(labels))
	for c, l := range labels {
		index[l] = c
	}
	w := make([]float64, len(labels))
	for c := range w {
		w[c] = 1
	}
	for k, l := range p.WeightLabels {
		c, ok := index[l]
		if !ok {
			return nil, fmt.Errorf("label %d: %w", l, ErrUnknownWeightLabel)
		}
		w[c] = p.Weights[k]
	}

	return w, nil
}

// checkNuFeasible rejects nu when some pair (i, j) has nu·(n_i+n_j)/2 > min(n_i, n_j).
func checkNuFeasible(g classGroups, nu float64) error {
	for _, pr := range enumeratePairs(len(g.labels)) {
		ni, nj := len(g.rows[pr.i]), len(g.rows[pr.j])
		if nu*float64(ni+nj)/2 > float64(min(ni, nj)) {
			return fmt.Errorf("labels %d/%d with nu=%g: %w", g.labels[pr.i], g.labels[pr.j], nu, ErrNuInfeasible)
		}
	}

	return nil
}
