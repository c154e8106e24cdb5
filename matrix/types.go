// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and CSR storages.
// This file contains ONLY the public FeatureMatrix contract and the Vector
// row view; storage lives in dense.go / csr.go, errors and options in their
// dedicated files.
package matrix

// FeatureMatrix is a read-only rows × cols table of float64 features, one
// sample per row. Both *Dense and *CSR implement it.
//
// Contract:
//   - Rows() and Cols() are fixed for the lifetime of the value.
//   - Row(i) returns a view that aliases internal storage; callers must not
//     modify it. Row panics on an out-of-range index like a slice would.
//   - SelectRows copies the selected rows (in the given order) into a new
//     matrix of the same representation.
//   - Implementations are safe for concurrent readers.
//
// Complexity notes: Rows/Cols/Row are O(1); SelectRows is O(copied entries).
type FeatureMatrix interface {
	// Rows returns the number of samples.
	Rows() int

	// Cols returns the number of features.
	Cols() int

	// Row returns sample i as a Vector view.
	Row(i int) Vector

	// Sparse reports whether the storage is compressed-row.
	Sparse() bool

	// SelectRows returns a copy holding rows idx[0], idx[1], ... in order.
	// Errors: ErrInvalidDimensions for empty idx, ErrOutOfRange for bad indices.
	SelectRows(idx []int) (FeatureMatrix, error)
}

// Compile-time assertions.
var (
	_ FeatureMatrix = (*Dense)(nil)
	_ FeatureMatrix = (*CSR)(nil)
)
