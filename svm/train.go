package svm

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/matrix"
	"github.com/katalvlaran/lvsvm/solver"
)

// Train fits a model to x and y under p. It is TrainContext with a
// background context.
func Train(x matrix.FeatureMatrix, y []float64, p Params) (*Model, error) {
	return TrainContext(context.Background(), x, y, p)
}

// TrainContext validates the input, splits classification problems into
// one-vs-one class pairs and solves them on a worker pool of p.NumCores
// goroutines. Regression and one-class problems are a single solve.
//
// Implementation:
//   - Stage 1: validate (no solver runs on invalid input).
//   - Stage 2: per pair, copy that pair's rows, map labels to ±1 and solve
//     with per-class costs C·weight.
//   - Stage 3: gather the union of support vectors (training-row order) and
//     build one SubModel per pair referencing it.
//
// Behavior highlights:
//   - Class order is the order of first appearance in y.
//   - Hitting MaxIter is not an error; see Model.Converged.
//   - Cancelling ctx stops scheduling further pairs and returns ctx.Err().
//
// Errors:
//   - ErrValidation causes (see errors.go), matrix and kernel sentinels
//     wrapped with ErrValidation, or the context error.
//
// y may be nil for OneClass.
func TrainContext(ctx context.Context, x matrix.FeatureMatrix, y []float64, p Params) (*Model, error) {
	ts, err := prepare(x, y, p)
	if err != nil {
		return nil, err
	}
	if ts.p.Type.IsClassifier() {
		return trainClassifier(ctx, ts)
	}

	return trainSingle(ctx, ts)
}

// workerCount resolves NumCores (-1 = all CPUs) against the number of tasks.
func workerCount(numCores, tasks int) int {
	w := numCores
	if w < 0 {
		w = runtime.NumCPU()
	}

	return max(1, min(w, tasks))
}

// cacheBudget splits MaxMemSize MiB evenly across workers; 0 means unlimited.
func cacheBudget(mib, workers int) int64 {
	if mib <= 0 {
		return 0
	}

	return max(1, (int64(mib)<<20)/int64(workers))
}

// pairResult is the outcome of one class pair.
type pairResult struct {
	rows         []int // training rows of the pair, class i first
	dec          decision
	probA, probB float64
}

func trainClassifier(ctx context.Context, ts *trainSet) (*Model, error) {
	pairs := enumeratePairs(len(ts.groups.labels))
	workers := workerCount(ts.p.NumCores, len(pairs))
	cacheBytes := cacheBudget(ts.p.MaxMemSize, workers)
	results := make([]pairResult, len(pairs))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for k, pr := range pairs {
		k, pr := k, pr
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			res, err := ts.trainPair(k, pr, cacheBytes)
			if err != nil {
				return fmt.Errorf("svm: labels %d/%d: %w", ts.groups.labels[pr.i], ts.groups.labels[pr.j], err)
			}
			results[k] = res
			if ts.p.OnSubModel != nil {
				ts.p.OnSubModel(SubModelInfo{
					Index:  k,
					ClassI: pr.i,
					ClassJ: pr.j,
					NumSV:  countNonZero(res.dec.coef),
					Rho:    res.dec.rho,
					Info:   res.dec.info,
				})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return assembleClassifier(ts, pairs, results)
}

// trainPair solves the binary problem between classes pr.i (+1) and pr.j (−1)
// on a private copy of their rows.
func (ts *trainSet) trainPair(k int, pr pair, cacheBytes int64) (pairResult, error) {
	ri, rj := ts.groups.rows[pr.i], ts.groups.rows[pr.j]
	rows := make([]int, 0, len(ri)+len(rj))
	rows = append(rows, ri...)
	rows = append(rows, rj...)
	sub, err := ts.x.SelectRows(rows)
	if err != nil {
		return pairResult{}, err
	}
	y := make([]float64, len(rows))
	for t := range y {
		if t < len(ri) {
			y[t] = 1
		} else {
			y[t] = -1
		}
	}
	cp, cn := ts.p.C*ts.weight[pr.i], ts.p.C*ts.weight[pr.j]

	out := pairResult{rows: rows}
	if ts.p.Probability {
		out.probA, out.probB, err = binaryProbability(sub, y, &ts.p, cp, cn, cacheBytes, streamRNG(ts.p.Seed, uint64(k)))
		if err != nil {
			return pairResult{}, err
		}
	}
	out.dec, err = solveOne(sub, y, &ts.p, cp, cn, cacheBytes)
	if err != nil {
		return pairResult{}, err
	}

	return out, nil
}

func assembleClassifier(ts *trainSet, pairs []pair, results []pairResult) (*Model, error) {
	isSV := make([]bool, ts.x.Rows())
	for _, r := range results {
		for t, c := range r.dec.coef {
			if c != 0 {
				isSV[r.rows[t]] = true
			}
		}
	}
	svRows, pos := collectRows(isSV)
	sv, err := selectOrNil(ts.x, svRows)
	if err != nil {
		return nil, err
	}

	subs := make([]SubModel, len(pairs))
	for k, pr := range pairs {
		r := results[k]
		sm := SubModel{
			ClassI: pr.i,
			ClassJ: pr.j,
			Rho:    r.dec.rho,
			ProbA:  r.probA,
			ProbB:  r.probB,
			Info:   r.dec.info,
		}
		for t, c := range r.dec.coef {
			if c != 0 {
				sm.SV = append(sm.SV, pos[r.rows[t]])
				sm.Coef = append(sm.Coef, c)
			}
		}
		subs[k] = sm
	}

	return &Model{
		params:      modelParams(ts.p),
		numFeatures: ts.x.Cols(),
		labels:      append([]int(nil), ts.groups.labels...),
		sv:          sv,
		subs:        subs,
	}, nil
}

func trainSingle(ctx context.Context, ts *trainSet) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cacheBytes := cacheBudget(ts.p.MaxMemSize, 1)

	var sigma float64
	if ts.p.Probability && ts.p.Type.IsRegression() {
		var err error
		if sigma, err = svrSigma(ts.x, ts.y, &ts.p, cacheBytes); err != nil {
			return nil, err
		}
	}
	dec, err := solveOne(ts.x, ts.y, &ts.p, ts.p.C, ts.p.C, cacheBytes)
	if err != nil {
		return nil, err
	}

	isSV := make([]bool, ts.x.Rows())
	for i, c := range dec.coef {
		isSV[i] = c != 0
	}
	svRows, _ := collectRows(isSV)
	sv, err := selectOrNil(ts.x, svRows)
	if err != nil {
		return nil, err
	}
	sm := SubModel{Rho: dec.rho, Info: dec.info}
	for _, c := range dec.coef {
		if c != 0 {
			sm.SV = append(sm.SV, len(sm.Coef))
			sm.Coef = append(sm.Coef, c)
		}
	}
	if ts.p.OnSubModel != nil {
		ts.p.OnSubModel(SubModelInfo{NumSV: len(sm.Coef), Rho: sm.Rho, Info: sm.Info})
	}

	return &Model{
		params:      modelParams(ts.p),
		numFeatures: ts.x.Cols(),
		sv:          sv,
		subs:        []SubModel{sm},
		svrSigma:    sigma,
	}, nil
}

// collectRows lists the flagged rows ascending and maps each to its position.
func collectRows(flag []bool) ([]int, map[int]int) {
	var rows []int
	pos := make(map[int]int)
	for i, f := range flag {
		if f {
			pos[i] = len(rows)
			rows = append(rows, i)
		}
	}

	return rows, pos
}

func selectOrNil(x matrix.FeatureMatrix, rows []int) (matrix.FeatureMatrix, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	return x.SelectRows(rows)
}

func countNonZero(v []float64) int {
	n := 0
	for _, c := range v {
		if c != 0 {
			n++
		}
	}

	return n
}

// modelParams is the copy of p stored on a Model: slices cloned, hook dropped.
func modelParams(p Params) Params {
	p.WeightLabels = append([]int(nil), p.WeightLabels...)
	p.Weights = append([]float64(nil), p.Weights...)
	p.OnSubModel = nil

	return p
}

// decision is one solved dual: signed coefficients per training row and rho.
type decision struct {
	coef []float64
	rho  float64
	info SolveInfo
}

// value evaluates Σ coef_t·K(x_t, v) − rho over the non-zero coefficients.
func (d decision) value(x matrix.FeatureMatrix, v matrix.Vector, p *Params) float64 {
	sum := 0.0
	for t, c := range d.coef {
		if c != 0 {
			sum += c * kernel.Evaluate(x.Row(t), v, p.Kernel)
		}
	}

	return sum - d.rho
}

// solveOne builds and solves the dual of p.Type on (x, y). For classifiers y
// holds ±1 and cp/cn are the costs of the +1/−1 sides.
func solveOne(x matrix.FeatureMatrix, y []float64, p *Params, cp, cn float64, cacheBytes int64) (decision, error) {
	l := x.Rows()
	prob := solver.Problem{Tolerance: p.Tolerance, MaxIter: p.MaxIter, Shrinking: p.Shrinking}

	switch p.Type {
	case CSVC:
		signs := toSigns(y)
		prob.Q = solver.NewSVCQ(x, signs, p.Kernel, cacheBytes)
		prob.Y = signs
		prob.P = fill(l, -1)
		prob.Alpha = make([]float64, l)
		prob.C = make([]float64, l)
		for i, s := range signs {
			if s > 0 {
				prob.C[i] = cp
			} else {
				prob.C[i] = cn
			}
		}

	case NuSVC:
		signs := toSigns(y)
		prob.Q = solver.NewSVCQ(x, signs, p.Kernel, cacheBytes)
		prob.Y = signs
		prob.P = make([]float64, l)
		prob.C = fill(l, 1)
		prob.Alpha = make([]float64, l)
		sumPos, sumNeg := p.Nu*float64(l)/2, p.Nu*float64(l)/2
		for i, s := range signs {
			if s > 0 {
				prob.Alpha[i] = min(1, sumPos)
				sumPos -= prob.Alpha[i]
			} else {
				prob.Alpha[i] = min(1, sumNeg)
				sumNeg -= prob.Alpha[i]
			}
		}
		prob.Variant = solver.Nu

	case OneClass:
		prob.Q = solver.NewOneClassQ(x, p.Kernel, cacheBytes)
		prob.Y = make([]int8, l)
		for i := range prob.Y {
			prob.Y[i] = 1
		}
		prob.P = make([]float64, l)
		prob.C = fill(l, 1)
		prob.Alpha = make([]float64, l)
		n := int(p.Nu * float64(l))
		for i := 0; i < n; i++ {
			prob.Alpha[i] = 1
		}
		if n < l {
			prob.Alpha[n] = p.Nu*float64(l) - float64(n)
		}

	case EpsilonSVR, NuSVR:
		prob.Q = solver.NewSVRQ(x, p.Kernel, cacheBytes)
		prob.Y = make([]int8, 2*l)
		prob.P = make([]float64, 2*l)
		prob.C = fill(2*l, p.C)
		prob.Alpha = make([]float64, 2*l)
		sum := p.C * p.Nu * float64(l) / 2
		for i := 0; i < l; i++ {
			prob.Y[i], prob.Y[i+l] = 1, -1
			if p.Type == EpsilonSVR {
				prob.P[i], prob.P[i+l] = p.Epsilon-y[i], p.Epsilon+y[i]
				continue
			}
			a := min(sum, p.C)
			prob.Alpha[i], prob.Alpha[i+l] = a, a
			sum -= a
			prob.P[i], prob.P[i+l] = -y[i], y[i]
		}
		if p.Type == NuSVR {
			prob.Variant = solver.Nu
		}

	default:
		return decision{}, fmt.Errorf("%v: %w", p.Type, ErrBadType)
	}

	res, err := solver.Solve(prob)
	if err != nil {
		return decision{}, err
	}
	d := decision{
		rho:  res.Rho,
		info: SolveInfo{Iterations: res.Iterations, Status: res.Status, Obj: res.Obj},
	}
	d.coef = make([]float64, l)
	switch p.Type {
	case CSVC:
		for i := range d.coef {
			d.coef[i] = res.Alpha[i] * y[i]
		}
	case NuSVC:
		r := res.R
		if r == 0 {
			r = 1
		}
		for i := range d.coef {
			d.coef[i] = res.Alpha[i] * y[i] / r
		}
		d.rho /= r
		d.info.Obj /= r * r
	case OneClass:
		copy(d.coef, res.Alpha)
	default:
		for i := range d.coef {
			d.coef[i] = res.Alpha[i] - res.Alpha[i+l]
		}
	}

	return d, nil
}

func toSigns(y []float64) []int8 {
	s := make([]int8, len(y))
	for i, v := range y {
		if v > 0 {
			s[i] = 1
		} else {
			s[i] = -1
		}
	}

	return s
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
