package svm

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsvm/matrix"
)

const (
	probFolds = 5    // internal cross validation for probability fitting
	minProb   = 1e-7 // pairwise probabilities are clamped to [minProb, 1−minProb]
)

func clampProb(p float64) float64 { return min(max(p, minProb), 1-minProb) }

// foldBounds returns the half-open range of fold f when n items are split
// into folds consecutive parts.
func foldBounds(f, folds, n int) (int, int) { return f * n / folds, (f + 1) * n / folds }

// without returns perm minus the range [lo, hi), as a new slice.
func without(perm []int, lo, hi int) []int {
	out := make([]int, 0, len(perm)-(hi-lo))
	out = append(out, perm[:lo]...)

	return append(out, perm[hi:]...)
}

// binaryProbability fits the Platt sigmoid of a ±1 problem on decision
// values from probFolds-fold cross validation.
func binaryProbability(x matrix.FeatureMatrix, y []float64, p *Params, cp, cn float64, cacheBytes int64, rng *rand.Rand) (float64, float64, error) {
	l := x.Rows()
	perm := permRange(l, rng)
	dec := make([]float64, l)

	for f := 0; f < probFolds; f++ {
		lo, hi := foldBounds(f, probFolds, l)
		if lo == hi {
			continue
		}
		rest := without(perm, lo, hi)
		var pos, neg int
		for _, i := range rest {
			if y[i] > 0 {
				pos++
			} else {
				neg++
			}
		}

		switch {
		case pos == 0 && neg == 0:
			for _, i := range perm[lo:hi] {
				dec[i] = 0
			}
		case neg == 0:
			for _, i := range perm[lo:hi] {
				dec[i] = 1
			}
		case pos == 0:
			for _, i := range perm[lo:hi] {
				dec[i] = -1
			}
		default:
			sub, err := x.SelectRows(rest)
			if err != nil {
				return 0, 0, err
			}
			suby := make([]float64, len(rest))
			for t, i := range rest {
				suby[t] = y[i]
			}
			d, err := solveOne(sub, suby, p, cp, cn, cacheBytes)
			if err != nil {
				return 0, 0, err
			}
			for _, i := range perm[lo:hi] {
				dec[i] = d.value(sub, x.Row(i), p)
			}
		}
	}
	a, b := sigmoidTrain(dec, y)

	return a, b, nil
}

// sigmoidTrain fits A, B of P(y=1|f) = 1/(1+exp(A·f+B)) by Newton's method
// with backtracking, using regularized targets (Platt 2000; Lin, Lin and
// Weng 2007).
func sigmoidTrain(dec, y []float64) (float64, float64) {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12 // Hessian ridge
		eps     = 1e-5
	)
	var prior1, prior0 float64
	for _, v := range y {
		if v > 0 {
			prior1++
		} else {
			prior0++
		}
	}
	hiTarget, loTarget := (prior1+1)/(prior1+2), 1/(prior0+2)
	t := make([]float64, len(y))
	for i, v := range y {
		if v > 0 {
			t[i] = hiTarget
		} else {
			t[i] = loTarget
		}
	}

	objective := func(a, b float64) float64 {
		f := 0.0
		for i, d := range dec {
			fApB := d*a + b
			if fApB >= 0 {
				f += t[i]*fApB + math.Log1p(math.Exp(-fApB))
			} else {
				f += (t[i]-1)*fApB + math.Log1p(math.Exp(fApB))
			}
		}
		return f
	}

	a, b := 0.0, math.Log((prior0+1)/(prior1+1))
	fval := objective(a, b)
	for iter := 0; iter < maxIter; iter++ {
		h11, h22, h21, g1, g2 := sigma, sigma, 0.0, 0.0, 0.0
		for i, d := range dec {
			fApB := d*a + b
			var p, q float64
			if fApB >= 0 {
				e := math.Exp(-fApB)
				p, q = e/(1+e), 1/(1+e)
			} else {
				e := math.Exp(fApB)
				p, q = 1/(1+e), e/(1+e)
			}
			d2 := p * q
			h11 += d * d * d2
			h22 += d2
			h21 += d * d2
			d1 := t[i] - p
			g1 += d * d1
			g2 += d1
		}
		if math.Abs(g1) < eps && math.Abs(g2) < eps {
			break
		}

		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(-h21*g1 + h11*g2) / det
		gd := g1*dA + g2*dB

		step := 1.0
		for step >= minStep {
			na, nb := a+step*dA, b+step*dB
			nf := objective(na, nb)
			if nf < fval+0.0001*step*gd {
				a, b, fval = na, nb, nf
				break
			}
			step /= 2
		}
		if step < minStep {
			break
		}
	}

	return a, b
}

// sigmoidPredict evaluates 1/(1+exp(a·f+b)) without overflow.
func sigmoidPredict(f, a, b float64) float64 {
	fApB := f*a + b
	if fApB >= 0 {
		e := math.Exp(-fApB)
		return e / (1 + e)
	}

	return 1 / (1 + math.Exp(fApB))
}

// multiclassProbability couples pairwise estimates r[i][j] ≈ P(i | i or j)
// into class probabilities (Wu, Lin and Weng 2004, method 2).
func multiclassProbability(k int, r [][]float64) []float64 {
	maxIter := max(100, k)
	eps := 0.005 / float64(k)

	q := mat.NewSymDense(k, nil)
	for t := 0; t < k; t++ {
		diag := 0.0
		for j := 0; j < k; j++ {
			if j == t {
				continue
			}
			diag += r[j][t] * r[j][t]
			if j > t {
				q.SetSym(t, j, -r[j][t]*r[t][j])
			}
		}
		q.SetSym(t, t, diag)
	}

	p := mat.NewVecDense(k, nil)
	for t := 0; t < k; t++ {
		p.SetVec(t, 1/float64(k))
	}
	qp := mat.NewVecDense(k, nil)
	for iter := 0; iter < maxIter; iter++ {
		qp.MulVec(q, p)
		pQp := mat.Dot(p, qp)
		maxErr := 0.0
		for t := 0; t < k; t++ {
			maxErr = max(maxErr, math.Abs(qp.AtVec(t)-pQp))
		}
		if maxErr < eps {
			break
		}
		for t := 0; t < k; t++ {
			qtt := q.At(t, t)
			diff := (-qp.AtVec(t) + pQp) / qtt
			p.SetVec(t, p.AtVec(t)+diff)
			pQp = (pQp + diff*(diff*qtt+2*qp.AtVec(t))) / ((1 + diff) * (1 + diff))
			for j := 0; j < k; j++ {
				qp.SetVec(j, (qp.AtVec(j)+diff*q.At(t, j))/(1+diff))
				p.SetVec(j, p.AtVec(j)/(1+diff))
			}
		}
	}

	out := make([]float64, k)
	for t := range out {
		out[t] = p.AtVec(t)
	}

	return out
}

// svrSigma estimates the Laplace scale of regression residuals from
// probFolds-fold cross validation, ignoring residuals beyond 5 standard
// deviations.
func svrSigma(x matrix.FeatureMatrix, y []float64, p *Params, cacheBytes int64) (float64, error) {
	l := x.Rows()
	perm := permRange(l, streamRNG(p.Seed, 0))
	pred := make([]float64, l)
	for f := 0; f < probFolds; f++ {
		lo, hi := foldBounds(f, probFolds, l)
		if lo == hi {
			continue
		}
		rest := without(perm, lo, hi)
		if len(rest) == 0 {
			continue
		}
		sub, err := x.SelectRows(rest)
		if err != nil {
			return 0, err
		}
		suby := make([]float64, len(rest))
		for t, i := range rest {
			suby[t] = y[i]
		}
		d, err := solveOne(sub, suby, p, p.C, p.C, cacheBytes)
		if err != nil {
			return 0, err
		}
		for _, i := range perm[lo:hi] {
			pred[i] = d.value(sub, x.Row(i), p)
		}
	}

	res := make([]float64, l)
	floats.SubTo(res, y, pred)
	abs := make([]float64, l)
	for i, r := range res {
		abs[i] = math.Abs(r)
	}
	mae := floats.Sum(abs) / float64(l)
	std := math.Sqrt(2 * mae * mae)

	sum, kept := 0.0, 0
	for _, a := range abs {
		if a <= 5*std {
			sum += a
			kept++
		}
	}
	if kept == 0 {
		return mae, nil
	}

	return sum / float64(kept), nil
}
