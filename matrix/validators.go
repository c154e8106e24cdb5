// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep callers (training, prediction) minimal by delegating nil/shape/length checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → Length).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil *Dense or *CSR stored in the interface.
// Complexity: O(1).
func ValidateNotNil(m FeatureMatrix) error {
	switch t := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if t == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *CSR:
		if t == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateFeatureMatrix – Composite: NotNil → non-empty shape.
// Errors: ErrNilMatrix, ErrInvalidDimensions.
// Complexity: O(1).
func ValidateFeatureMatrix(m FeatureMatrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFeatureMatrix", err)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return validatorErrorf("ValidateFeatureMatrix", ErrInvalidDimensions)
	}

	return nil
}

// ValidateVecLen ensures a vector's logical length equals n.
// Errors: ErrDimensionMismatch.
// Complexity: O(1).
func ValidateVecLen(v Vector, n int) error {
	if v.Len() != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", v.Len(), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite scans every stored entry of m for NaN/Inf.
// Errors: ErrNaNInf wrapped with the row index.
// Complexity: O(stored entries).
func ValidateFinite(m FeatureMatrix) error {
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		vals := row.Dense()
		if row.IsSparse() {
			_, vals = row.Entries()
		}
		for _, x := range vals {
			if isNonFinite(x) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("row %d: %w", i, ErrNaNInf))
			}
		}
	}

	return nil
}
