package svm

import (
	"fmt"

	"github.com/katalvlaran/lvsvm/matrix"
)

// CrossValidate returns out-of-fold predictions: entry i is the output for
// row i of a model trained on the other folds.
//
// Classification folds are stratified (each class is shuffled and split
// evenly); other types use one shuffled permutation. The shuffle is seeded
// by p.Seed. folds is clamped to the number of rows.
//
// Errors:
//   - ErrBadFolds if folds < 2.
//   - Any Train error, either on the full input or on a fold.
func CrossValidate(x matrix.FeatureMatrix, y []float64, p Params, folds int) ([]float64, error) {
	if folds < 2 {
		return nil, fmt.Errorf("folds=%d: %w", folds, ErrBadFolds)
	}
	ts, err := prepare(x, y, p)
	if err != nil {
		return nil, err
	}
	l := x.Rows()
	folds = min(folds, l)
	assign := foldAssignment(ts, folds)

	fp := ts.p
	fp.OnSubModel = nil
	out := make([]float64, l)
	for f := 0; f < folds; f++ {
		var trainRows, testRows []int
		for i, a := range assign {
			if a == f {
				testRows = append(testRows, i)
			} else {
				trainRows = append(trainRows, i)
			}
		}
		if len(testRows) == 0 {
			continue
		}
		if err := crossValidateFold(ts, fp, trainRows, testRows, out); err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
	}

	return out, nil
}

// foldAssignment maps each row to its fold.
func foldAssignment(ts *trainSet, folds int) []int {
	rng := rngFromSeed(ts.p.Seed)
	assign := make([]int, ts.x.Rows())
	split := func(rows []int) {
		n := len(rows)
		for f := 0; f < folds; f++ {
			lo, hi := foldBounds(f, folds, n)
			for _, i := range rows[lo:hi] {
				assign[i] = f
			}
		}
	}

	if !ts.p.Type.IsClassifier() {
		split(permRange(len(assign), rng))
		return assign
	}
	for _, rows := range ts.groups.rows {
		shuffled := append([]int(nil), rows...)
		shuffleInts(shuffled, rng)
		split(shuffled)
	}

	return assign
}

func crossValidateFold(ts *trainSet, p Params, trainRows, testRows []int, out []float64) error {
	sub, err := ts.x.SelectRows(trainRows)
	if err != nil {
		return err
	}
	suby := make([]float64, len(trainRows))
	for t, i := range trainRows {
		suby[t] = ts.y[i]
	}

	// A stratified fold can lose every row of a rare class; with one class
	// left the only possible answer is that label.
	if p.Type.IsClassifier() {
		g := groupClasses(suby)
		if len(g.labels) == 1 {
			for _, i := range testRows {
				out[i] = float64(g.labels[0])
			}
			return nil
		}
		p.WeightLabels, p.Weights = presentWeights(g.labels, p.WeightLabels, p.Weights)
	}

	m, err := Train(sub, suby, p)
	if err != nil {
		return err
	}
	for _, i := range testRows {
		row := ts.x.Row(i)
		if p.Probability && p.Type.IsClassifier() {
			out[i], _, err = m.PredictProbability(row)
		} else {
			out[i], err = m.Predict(row)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// presentWeights drops class weights whose label is absent from labels.
func presentWeights(labels, wl []int, w []float64) ([]int, []float64) {
	present := make(map[int]bool, len(labels))
	for _, l := range labels {
		present[l] = true
	}
	var outL []int
	var outW []float64
	for k, l := range wl {
		if present[l] {
			outL = append(outL, l)
			outW = append(outW, w[k])
		}
	}

	return outL, outW
}
