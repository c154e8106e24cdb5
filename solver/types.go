package solver

import "fmt"

// Variant selects the working-set rule and bias computation.
type Variant int

const (
	// Standard is the single-constraint dual used by C-SVC, one-class and epsilon-SVR.
	Standard Variant = iota
	// Nu keeps separate working sets per label sign (nu-SVC, nu-SVR).
	Nu
)

// Status reports how a Solve call ended.
type Status int

const (
	// Converged means the maximal KKT violation fell below the tolerance.
	Converged Status = iota
	// IterLimit means MaxIter was reached first; the returned alphas are the
	// best-so-far iterate and remain usable.
	IterLimit
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case IterLimit:
		return "iteration limit"
	default:
		return fmt.Sprintf("solver.Status(%d)", int(s))
	}
}

// QMatrix supplies columns of the dual Hessian Q.
//
// The solver permutes variables while shrinking; SwapIndex must swap every
// per-variable quantity the implementation holds, including the diagonal.
type QMatrix interface {
	// Len is the number of dual variables.
	Len() int

	// Column returns Q[0:length, i]. The slice is valid until the second
	// following Column call and must not be modified.
	Column(i, length int) []float64

	// Diagonal returns Q[k,k] for all k. The slice is live: SwapIndex permutes it.
	Diagonal() []float64

	// SwapIndex exchanges variables i and j.
	SwapIndex(i, j int)
}

// Problem describes one dual problem
//
//	min ½αᵀQα + pᵀα  s.t.  yᵀα = Δ,  0 ≤ α_k ≤ C_k
//
// where Δ is implied by the initial Alpha.
type Problem struct {
	Q     QMatrix
	P     []float64 // linear term, len Q.Len()
	Y     []int8    // ±1 labels, len Q.Len()
	Alpha []float64 // feasible starting point; copied, never modified
	C     []float64 // per-variable upper bounds (> 0)

	Tolerance float64 // stopping threshold on the KKT gap (> 0)
	MaxIter   int     // < 0 unbounded; 0 returns the initial Alpha
	Shrinking bool
	Variant   Variant
}

// Result is the outcome of Solve. Alpha is in the original variable order.
type Result struct {
	Alpha      []float64
	Rho        float64
	Obj        float64 // dual objective at Alpha
	R          float64 // Nu variant only: (r1+r2)/2
	Iterations int
	Status     Status
}
