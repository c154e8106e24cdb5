// SPDX-License-Identifier: MIT

// Package matrix - Vector: a single feature row, dense or sparse.
//
// Purpose:
//   - Give kernels one value type that covers both storages without an
//     interface call per element.
//   - Sparse vectors keep (index, value) pairs with strictly increasing
//     indices so that two sparse rows can be merged in one pass.
//
// AI-Hints:
//   - Vectors returned by FeatureMatrix.Row alias matrix storage; treat as read-only.
//   - Use NewSparseVector for caller data; it validates structure.
package matrix

import "fmt"

// Vector is a tagged row view. Exactly one of dense or (idx,val) is in use.
type Vector struct {
	dim    int       // logical length
	dense  []float64 // len == dim when !sparse
	idx    []int     // strictly increasing, in [0, dim)
	val    []float64 // len == len(idx)
	sparse bool
}

// NewDenseVector wraps x (no copy) as a dense Vector of length len(x).
func NewDenseVector(x []float64) Vector {
	return Vector{dim: len(x), dense: x}
}

// NewSparseVector builds a sparse Vector of logical length dim from parallel
// index/value slices (no copy).
//
// Errors:
//   - ErrInvalidDimensions if dim < 0.
//   - ErrDimensionMismatch if len(idx) != len(val).
//   - ErrColumnIndex if an index is outside [0, dim) or indices are not strictly increasing.
//
// Complexity: O(len(idx)).
func NewSparseVector(dim int, idx []int, val []float64) (Vector, error) {
	if dim < 0 {
		return Vector{}, fmt.Errorf("NewSparseVector: %w", ErrInvalidDimensions)
	}
	if len(idx) != len(val) {
		return Vector{}, fmt.Errorf("NewSparseVector: %d indices vs %d values: %w", len(idx), len(val), ErrDimensionMismatch)
	}
	prev := -1
	for k, j := range idx {
		if j < 0 || j >= dim || j <= prev {
			return Vector{}, fmt.Errorf("NewSparseVector: entry %d (col %d): %w", k, j, ErrColumnIndex)
		}
		prev = j
	}

	return Vector{dim: dim, idx: idx, val: val, sparse: true}, nil
}

// Len returns the logical dimension.
func (v Vector) Len() int { return v.dim }

// IsSparse reports whether v stores (index, value) pairs.
func (v Vector) IsSparse() bool { return v.sparse }

// Dense returns the backing slice of a dense vector, or nil for a sparse one.
func (v Vector) Dense() []float64 {
	if v.sparse {
		return nil
	}

	return v.dense
}

// Entries returns the index and value slices of a sparse vector, or nil, nil
// for a dense one.
func (v Vector) Entries() ([]int, []float64) {
	if !v.sparse {
		return nil, nil
	}

	return v.idx, v.val
}

// NNZ returns the number of stored entries (len for dense vectors).
func (v Vector) NNZ() int {
	if v.sparse {
		return len(v.idx)
	}

	return len(v.dense)
}

// At returns entry j, or 0 for an implicit sparse zero or j out of range.
// Complexity: O(1) dense, O(log nnz) sparse.
func (v Vector) At(j int) float64 {
	if j < 0 || j >= v.dim {
		return 0
	}
	if !v.sparse {
		return v.dense[j]
	}
	lo, hi := 0, len(v.idx)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if v.idx[mid] < j {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.idx) && v.idx[lo] == j {
		return v.val[lo]
	}

	return 0
}

// ToDense returns a freshly allocated dense copy of v.
func (v Vector) ToDense() []float64 {
	out := make([]float64, v.dim)
	if !v.sparse {
		copy(out, v.dense)
		return out
	}
	for k, j := range v.idx {
		out[j] = v.val[k]
	}

	return out
}
