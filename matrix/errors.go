// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Constructors and accessors return these sentinels (optionally
// wrapped with positional context) and tests check them via errors.Is.
// No exported function panics on user-supplied data.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Call sites
// wrap with fmt.Errorf("ctx: %w", ErrX) at the detection point; callers
// match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> row extents -> column index -> NaN/Inf.

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible lengths between parallel
	// buffers or operands (data vs rows*cols, values vs column indices).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrRowExtents signals a malformed CSR row-start array: wrong length,
	// first entry not 0, decreasing entries, or last entry != nnz.
	ErrRowExtents = errors.New("matrix: invalid row extents")

	// ErrColumnIndex signals a sparse column index outside [0, cols) or
	// column indices that are not strictly increasing within a row.
	ErrColumnIndex = errors.New("matrix: invalid column index")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadRange is returned by the feature scaler when the target interval
	// is empty or non-finite.
	ErrBadRange = errors.New("matrix: invalid scaling range")
)
