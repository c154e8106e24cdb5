package solver

import (
	"fmt"
	"math"
)

// tau replaces a non-positive curvature in the two-variable update.
const tau = 1e-12

// shrinkInterval caps the number of iterations between shrinking passes.
const shrinkInterval = 1000

type boundStatus uint8

const (
	lowerBound boundStatus = iota
	upperBound
	free
)

// state is the mutable optimizer state for one Solve call. All per-variable
// slices are kept in the permuted order; active[k] maps back to the
// caller's index.
type state struct {
	l, activeSize int
	q             QMatrix
	qd            []float64
	y             []int8
	p             []float64
	c             []float64
	alpha         []float64
	status        []boundStatus
	g             []float64 // gradient of the objective
	gBar          []float64 // Σ C_j·Q[:,j] over upper-bounded j
	active        []int
	eps           float64
	shrinking     bool
	unshrink      bool
	variant       Variant
}

// Solve minimizes the dual in prob with SMO: second-order working-set
// selection, analytic two-variable steps clipped to the box, and optional
// shrinking with gradient reconstruction.
//
// Implementation:
//   - Stage 1: validate shapes and copy inputs (Alpha is never modified).
//   - Stage 2: G = P + Q·α and Ḡ for upper-bounded variables.
//   - Stage 3: iterate select → update until the KKT gap is below
//     Tolerance (Converged) or MaxIter iterations ran (IterLimit).
//   - Stage 4: restore the full gradient, compute rho and the objective,
//     undo the permutation.
//
// Errors:
//   - ErrBadProblem for malformed input. Hitting MaxIter is not an error.
//
// Complexity:
//   - Each iteration costs two Q columns over the active set plus O(active).
func Solve(prob Problem) (Result, error) {
	if err := checkProblem(prob); err != nil {
		return Result{}, err
	}
	s := newState(prob)
	s.initGradient()

	iter := 0
	status := Converged
	counter := min(s.l, shrinkInterval) + 1
	for {
		if prob.MaxIter >= 0 && iter >= prob.MaxIter {
			status = IterLimit
			break
		}
		counter--
		if counter == 0 {
			counter = min(s.l, shrinkInterval)
			if s.shrinking {
				s.shrink()
			}
		}
		i, j, ok := s.selectWorkingSet()
		if !ok {
			// optimal on the active set: check again on the full set
			s.reconstructGradient()
			s.activeSize = s.l
			if i, j, ok = s.selectWorkingSet(); !ok {
				break
			}
			counter = 1
		}
		iter++
		s.step(i, j)
	}
	if s.activeSize < s.l {
		s.reconstructGradient()
		s.activeSize = s.l
	}

	res := Result{Iterations: iter, Status: status}
	if s.variant == Nu {
		res.Rho, res.R = s.nuRho()
	} else {
		res.Rho = s.rho()
	}
	obj := 0.0
	for k := 0; k < s.l; k++ {
		obj += s.alpha[k] * (s.g[k] + s.p[k])
	}
	res.Obj = obj / 2
	res.Alpha = make([]float64, s.l)
	for k := 0; k < s.l; k++ {
		res.Alpha[s.active[k]] = s.alpha[k]
	}

	return res, nil
}

func checkProblem(prob Problem) error {
	if prob.Q == nil {
		return fmt.Errorf("nil Q: %w", ErrBadProblem)
	}
	l := prob.Q.Len()
	if l == 0 || len(prob.P) != l || len(prob.Y) != l || len(prob.Alpha) != l || len(prob.C) != l || len(prob.Q.Diagonal()) != l {
		return fmt.Errorf("length mismatch with Q.Len()=%d: %w", l, ErrBadProblem)
	}
	if !(prob.Tolerance > 0) {
		return fmt.Errorf("tolerance %g: %w", prob.Tolerance, ErrBadProblem)
	}
	for k := 0; k < l; k++ {
		if prob.Y[k] != 1 && prob.Y[k] != -1 {
			return fmt.Errorf("label %d at %d: %w", prob.Y[k], k, ErrBadProblem)
		}
		if !(prob.C[k] > 0) {
			return fmt.Errorf("bound %g at %d: %w", prob.C[k], k, ErrBadProblem)
		}
	}

	return nil
}

func newState(prob Problem) *state {
	l := prob.Q.Len()
	s := &state{
		l:          l,
		activeSize: l,
		q:          prob.Q,
		qd:         prob.Q.Diagonal(),
		y:          append([]int8(nil), prob.Y...),
		p:          append([]float64(nil), prob.P...),
		c:          append([]float64(nil), prob.C...),
		alpha:      append([]float64(nil), prob.Alpha...),
		status:     make([]boundStatus, l),
		g:          make([]float64, l),
		gBar:       make([]float64, l),
		active:     make([]int, l),
		eps:        prob.Tolerance,
		shrinking:  prob.Shrinking,
		variant:    prob.Variant,
	}
	for k := 0; k < l; k++ {
		s.updateStatus(k)
		s.active[k] = k
	}

	return s
}

func (s *state) updateStatus(k int) {
	switch {
	case s.alpha[k] >= s.c[k]:
		s.status[k] = upperBound
	case s.alpha[k] <= 0:
		s.status[k] = lowerBound
	default:
		s.status[k] = free
	}
}

func (s *state) isUpper(k int) bool { return s.status[k] == upperBound }
func (s *state) isLower(k int) bool { return s.status[k] == lowerBound }
func (s *state) isFree(k int) bool  { return s.status[k] == free }

func (s *state) initGradient() {
	copy(s.g, s.p)
	for i := 0; i < s.l; i++ {
		if s.isLower(i) {
			continue
		}
		qi := s.q.Column(i, s.l)
		ai := s.alpha[i]
		for j := 0; j < s.l; j++ {
			s.g[j] += ai * qi[j]
		}
		if s.isUpper(i) {
			for j := 0; j < s.l; j++ {
				s.gBar[j] += s.c[i] * qi[j]
			}
		}
	}
}

// step performs the analytic update of (α_i, α_j) and refreshes G and Ḡ.
func (s *state) step(i, j int) {
	qi := s.q.Column(i, s.activeSize)
	qj := s.q.Column(j, s.activeSize)
	ci, cj := s.c[i], s.c[j]
	oldI, oldJ := s.alpha[i], s.alpha[j]
	a := s.alpha

	if s.y[i] != s.y[j] {
		quad := s.qd[i] + s.qd[j] + 2*qi[j]
		if quad <= 0 {
			quad = tau
		}
		delta := (-s.g[i] - s.g[j]) / quad
		diff := a[i] - a[j]
		a[i] += delta
		a[j] += delta
		if diff > 0 {
			if a[j] < 0 {
				a[j] = 0
				a[i] = diff
			}
		} else if a[i] < 0 {
			a[i] = 0
			a[j] = -diff
		}
		if diff > ci-cj {
			if a[i] > ci {
				a[i] = ci
				a[j] = ci - diff
			}
		} else if a[j] > cj {
			a[j] = cj
			a[i] = cj + diff
		}
	} else {
		quad := s.qd[i] + s.qd[j] - 2*qi[j]
		if quad <= 0 {
			quad = tau
		}
		delta := (s.g[i] - s.g[j]) / quad
		sum := a[i] + a[j]
		a[i] -= delta
		a[j] += delta
		if sum > ci {
			if a[i] > ci {
				a[i] = ci
				a[j] = sum - ci
			}
		} else if a[j] < 0 {
			a[j] = 0
			a[i] = sum
		}
		if sum > cj {
			if a[j] > cj {
				a[j] = cj
				a[i] = sum - cj
			}
		} else if a[i] < 0 {
			a[i] = 0
			a[j] = sum
		}
	}

	dI, dJ := a[i]-oldI, a[j]-oldJ
	for k := 0; k < s.activeSize; k++ {
		s.g[k] += qi[k]*dI + qj[k]*dJ
	}

	wasUpperI, wasUpperJ := s.isUpper(i), s.isUpper(j)
	s.updateStatus(i)
	s.updateStatus(j)
	if wasUpperI != s.isUpper(i) {
		s.shiftGBar(i, ci, wasUpperI)
	}
	if wasUpperJ != s.isUpper(j) {
		s.shiftGBar(j, cj, wasUpperJ)
	}
}

// shiftGBar removes (leaving=true) or adds variable k's C·Q column to Ḡ.
func (s *state) shiftGBar(k int, ck float64, leaving bool) {
	qk := s.q.Column(k, s.l)
	if leaving {
		ck = -ck
	}
	for t := 0; t < s.l; t++ {
		s.gBar[t] += ck * qk[t]
	}
}

// rho is the bias of the standard variant: the mean of y·G over free
// variables, or the midpoint of the feasible interval when none is free.
func (s *state) rho() float64 {
	nFree := 0
	ub, lb := math.Inf(1), math.Inf(-1)
	sumFree := 0.0
	for k := 0; k < s.activeSize; k++ {
		yg := float64(s.y[k]) * s.g[k]
		switch {
		case s.isUpper(k):
			if s.y[k] == -1 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case s.isLower(k):
			if s.y[k] == 1 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			nFree++
			sumFree += yg
		}
	}
	if nFree > 0 {
		return sumFree / float64(nFree)
	}

	return (ub + lb) / 2
}

// nuRho returns rho = (r1−r2)/2 and r = (r1+r2)/2 from the per-sign biases.
func (s *state) nuRho() (float64, float64) {
	var nFree [2]int
	var sumFree [2]float64
	ub := [2]float64{math.Inf(1), math.Inf(1)}
	lb := [2]float64{math.Inf(-1), math.Inf(-1)}
	for k := 0; k < s.activeSize; k++ {
		side := 0
		if s.y[k] == -1 {
			side = 1
		}
		switch {
		case s.isUpper(k):
			lb[side] = math.Max(lb[side], s.g[k])
		case s.isLower(k):
			ub[side] = math.Min(ub[side], s.g[k])
		default:
			nFree[side]++
			sumFree[side] += s.g[k]
		}
	}
	var r [2]float64
	for side := range r {
		if nFree[side] > 0 {
			r[side] = sumFree[side] / float64(nFree[side])
		} else {
			r[side] = (ub[side] + lb[side]) / 2
		}
	}

	return (r[0] - r[1]) / 2, (r[0] + r[1]) / 2
}
