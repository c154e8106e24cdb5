// Package solver implements the SMO optimizer behind every SVM variant.
//
// Solve minimizes the box- and equality-constrained quadratic dual
//
//	min ½αᵀQα + pᵀα   s.t.  yᵀα = Δ,  0 ≤ α_k ≤ C_k
//
// two variables at a time:
//
//  1. Working-set selection: i is the maximal violator of the KKT
//     conditions, j minimizes the second-order estimate of the objective
//     decrease (Fan, Chen, Lin 2005).
//  2. The two-variable subproblem is solved in closed form and clipped back
//     into the box [0, C_i] × [0, C_j].
//  3. The gradient is updated over the active set using two Q columns.
//  4. Every min(l, 1000) iterations variables stuck at a bound are shrunk
//     out of the active set; the full gradient is rebuilt before the final
//     optimality check.
//
// The Nu variant keeps separate working sets for y = +1 and y = −1 and
// reports the extra offset r used by nu-SVC and nu-SVR.
//
// Q columns come from SVCQ, OneClassQ or SVRQ. Each keeps an LRU cache of
// kernel columns bounded by a byte budget; when the budget cannot hold two
// columns, columns are recomputed on demand instead.
//
// Reaching MaxIter is reported through Result.Status and is not an error.
// A Solve call owns all of its state and is safe to run concurrently with
// other Solve calls over distinct QMatrix values.
package solver
