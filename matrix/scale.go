// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Per-feature min/max scaling into a target interval [lower, upper].
//  - Fit once on training data, then apply the same affine map to any
//    matrix or vector with the same feature count.
//
// Behavior highlights:
//  - Implicit sparse zeros take part in min/max like stored values.
//  - A feature that is constant on the fitted data passes through unchanged.
//  - Transform keeps the representation: Dense in, Dense out; CSR in, CSR out
//    (entries that scale to exactly 0 are dropped).
//
// Determinism & Performance:
//  - Fit is O(rows*cols) for Dense, O(rows + nnz + cols) for CSR.

package matrix

import "fmt"

// Scaler holds the fitted per-feature extrema.
type Scaler struct {
	lower, upper float64
	min, max     []float64
}

// FitScaler records per-column min and max of m for the interval [lower, upper].
// Errors: ErrNilMatrix/ErrInvalidDimensions from validation; ErrBadRange when
// lower >= upper or either bound is non-finite.
func FitScaler(m FeatureMatrix, lower, upper float64) (*Scaler, error) {
	if err := ValidateFeatureMatrix(m); err != nil {
		return nil, fmt.Errorf("FitScaler: %w", err)
	}
	if isNonFinite(lower) || isNonFinite(upper) || lower >= upper {
		return nil, fmt.Errorf("FitScaler: [%g, %g]: %w", lower, upper, ErrBadRange)
	}
	cols := m.Cols()
	s := &Scaler{lower: lower, upper: upper, min: make([]float64, cols), max: make([]float64, cols)}

	first := m.Row(0).ToDense()
	copy(s.min, first)
	copy(s.max, first)
	seen := make([]int, cols) // stored entries per column, for implicit zeros
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		if !row.IsSparse() {
			for j, x := range row.Dense() {
				s.observe(j, x)
			}
			continue
		}
		idx, val := row.Entries()
		for k, j := range idx {
			s.observe(j, val[k])
			seen[j]++
		}
	}
	if m.Sparse() {
		for j := 0; j < cols; j++ {
			if seen[j] < m.Rows() {
				s.observe(j, 0)
			}
		}
	}

	return s, nil
}

func (s *Scaler) observe(j int, x float64) {
	if x < s.min[j] {
		s.min[j] = x
	}
	if x > s.max[j] {
		s.max[j] = x
	}
}

// Cols returns the number of features the scaler was fitted on.
func (s *Scaler) Cols() int { return len(s.min) }

// Extrema returns copies of the fitted per-feature minima and maxima.
func (s *Scaler) Extrema() (mins, maxs []float64) {
	return append([]float64(nil), s.min...), append([]float64(nil), s.max...)
}

// value maps x of feature j.
func (s *Scaler) value(j int, x float64) float64 {
	lo, hi := s.min[j], s.max[j]
	if lo == hi {
		return x
	}
	switch x {
	case lo:
		return s.lower
	case hi:
		return s.upper
	}

	return s.lower + (s.upper-s.lower)*(x-lo)/(hi-lo)
}

// TransformVector returns a scaled dense copy of v.
// Errors: ErrDimensionMismatch when v.Len() differs from the fitted width.
func (s *Scaler) TransformVector(v Vector) ([]float64, error) {
	if err := ValidateVecLen(v, len(s.min)); err != nil {
		return nil, fmt.Errorf("Scaler.TransformVector: %w", err)
	}
	out := v.ToDense()
	for j, x := range out {
		out[j] = s.value(j, x)
	}

	return out, nil
}

// Transform scales every row of m, keeping its representation.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(rows*cols).
func (s *Scaler) Transform(m FeatureMatrix) (FeatureMatrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("Scaler.Transform: %w", err)
	}
	if m.Cols() != len(s.min) {
		return nil, fmt.Errorf("Scaler.Transform: %d cols, want %d: %w", m.Cols(), len(s.min), ErrDimensionMismatch)
	}
	cols := m.Cols()
	d := &Dense{r: m.Rows(), c: cols, data: make([]float64, m.Rows()*cols), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < m.Rows(); i++ {
		row := d.data[i*cols : (i+1)*cols]
		src := m.Row(i)
		for j := range row {
			row[j] = s.value(j, src.At(j))
		}
	}
	if m.Sparse() {
		return DenseToCSR(d), nil
	}

	return d, nil
}
