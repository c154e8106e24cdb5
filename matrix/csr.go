// SPDX-License-Identifier: MIT

// Package matrix - CSR (compressed sparse row) storage.
//
// Layout:
//   - values[nnz]   stored entries, row by row
//   - colIndex[nnz] column of each stored entry
//   - rowStart[r+1] row i occupies [rowStart[i], rowStart[i+1])
//
// Invariants (checked by NewCSR, never re-checked afterwards):
//   - rowStart[0] == 0, non-decreasing, rowStart[r] == nnz.
//   - every colIndex in [0, cols), strictly increasing within a row.
//   - explicit zeros are allowed and kept.
package matrix

import "fmt"

const ctxCSR = "NewCSR"

// CSR is an immutable compressed-row feature matrix.
type CSR struct {
	r, c     int
	values   []float64
	colIndex []int
	rowStart []int
}

// NewCSR validates and copies a CSR triplet.
//
// Implementation:
//   - Stage 1: shape (rows>0, cols>0).
//   - Stage 2: row extents (length, first entry, monotonicity, last == nnz).
//   - Stage 3: parallel lengths, column range and ordering per row.
//   - Stage 4: NaN/Inf scan under the numeric policy, then copy.
//
// Errors:
//   - ErrInvalidDimensions, ErrRowExtents, ErrDimensionMismatch,
//     ErrColumnIndex, ErrNaNInf, each wrapped with the offending position.
//
// Complexity:
//   - Time O(rows + nnz), Space O(rows + nnz).
func NewCSR(rows, cols int, values []float64, colIndex, rowStart []int, opts ...Option) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(rowStart) != rows+1 {
		return nil, fmt.Errorf("%s: len(rowStart)=%d, want %d: %w", ctxCSR, len(rowStart), rows+1, ErrRowExtents)
	}
	if rowStart[0] != 0 {
		return nil, fmt.Errorf("%s: rowStart[0]=%d: %w", ctxCSR, rowStart[0], ErrRowExtents)
	}
	for i := 0; i < rows; i++ {
		if rowStart[i+1] < rowStart[i] {
			return nil, fmt.Errorf("%s: rowStart decreases at row %d: %w", ctxCSR, i, ErrRowExtents)
		}
	}
	nnz := len(values)
	if rowStart[rows] != nnz {
		return nil, fmt.Errorf("%s: rowStart[%d]=%d, nnz=%d: %w", ctxCSR, rows, rowStart[rows], nnz, ErrRowExtents)
	}
	if len(colIndex) != nnz {
		return nil, fmt.Errorf("%s: %d column indices vs %d values: %w", ctxCSR, len(colIndex), nnz, ErrDimensionMismatch)
	}
	for i := 0; i < rows; i++ {
		prev := -1
		for k := rowStart[i]; k < rowStart[i+1]; k++ {
			j := colIndex[k]
			if j < 0 || j >= cols || j <= prev {
				return nil, fmt.Errorf("%s: row %d entry %d (col %d): %w", ctxCSR, i, k, j, ErrColumnIndex)
			}
			prev = j
		}
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range values {
			if isNonFinite(v) {
				return nil, fmt.Errorf("%s: entry %d: %w", ctxCSR, k, ErrNaNInf)
			}
		}
	}

	return &CSR{
		r:        rows,
		c:        cols,
		values:   append([]float64(nil), values...),
		colIndex: append([]int(nil), colIndex...),
		rowStart: append([]int(nil), rowStart...),
	}, nil
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// Sparse reports true.
func (m *CSR) Sparse() bool { return true }

// Row returns row i as a sparse Vector aliasing the backing arrays.
func (m *CSR) Row(i int) Vector {
	lo, hi := m.rowStart[i], m.rowStart[i+1]

	return Vector{
		dim:    m.c,
		idx:    m.colIndex[lo:hi:hi],
		val:    m.values[lo:hi:hi],
		sparse: true,
	}
}

// At returns entry (i, j); absent entries read as 0.
// Errors: ErrOutOfRange.
// Complexity: O(log nnz(row)).
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.Row(i).At(j), nil
}

// SelectRows copies rows idx (in order) into a new CSR.
// Errors: ErrInvalidDimensions for empty idx, ErrOutOfRange for bad indices.
// Complexity: O(len(idx) + copied nnz).
func (m *CSR) SelectRows(idx []int) (FeatureMatrix, error) {
	if len(idx) == 0 {
		return nil, fmt.Errorf("CSR.%s: %w", ctxSelectRows, ErrInvalidDimensions)
	}
	total := 0
	for _, i := range idx {
		if i < 0 || i >= m.r {
			return nil, fmt.Errorf("CSR.%s(%d): %w", ctxSelectRows, i, ErrOutOfRange)
		}
		total += m.rowStart[i+1] - m.rowStart[i]
	}
	out := &CSR{
		r:        len(idx),
		c:        m.c,
		values:   make([]float64, 0, total),
		colIndex: make([]int, 0, total),
		rowStart: make([]int, 1, len(idx)+1),
	}
	for _, i := range idx {
		lo, hi := m.rowStart[i], m.rowStart[i+1]
		out.values = append(out.values, m.values[lo:hi]...)
		out.colIndex = append(out.colIndex, m.colIndex[lo:hi]...)
		out.rowStart = append(out.rowStart, len(out.values))
	}

	return out, nil
}

// ToDense expands m into a Dense with the default numeric policy.
// Complexity: O(r*c).
func (m *CSR) ToDense() *Dense {
	d := &Dense{r: m.r, c: m.c, data: make([]float64, m.r*m.c), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < m.r; i++ {
		for k := m.rowStart[i]; k < m.rowStart[i+1]; k++ {
			d.data[i*m.c+m.colIndex[k]] = m.values[k]
		}
	}

	return d
}

// DenseToCSR compresses d, dropping exact zeros.
// Complexity: O(r*c).
func DenseToCSR(d *Dense) *CSR {
	out := &CSR{r: d.r, c: d.c, rowStart: make([]int, 1, d.r+1)}
	for i := 0; i < d.r; i++ {
		for j, v := range d.data[i*d.c : (i+1)*d.c] {
			if v != 0 {
				out.values = append(out.values, v)
				out.colIndex = append(out.colIndex, j)
			}
		}
		out.rowStart = append(out.rowStart, len(out.values))
	}

	return out
}

// VectorsToCSR packs sparse or dense rows of dimension cols into a CSR,
// dropping exact zeros of dense rows.
// Errors: ErrInvalidDimensions for no rows, ErrDimensionMismatch when a row's
// Len differs from cols.
func VectorsToCSR(cols int, rows []Vector) (*CSR, error) {
	if len(rows) == 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	out := &CSR{r: len(rows), c: cols, rowStart: make([]int, 1, len(rows)+1)}
	for i, v := range rows {
		if v.Len() != cols {
			return nil, fmt.Errorf("VectorsToCSR: row %d has len %d, want %d: %w", i, v.Len(), cols, ErrDimensionMismatch)
		}
		if v.sparse {
			out.values = append(out.values, v.val...)
			out.colIndex = append(out.colIndex, v.idx...)
		} else {
			for j, x := range v.dense {
				if x != 0 {
					out.values = append(out.values, x)
					out.colIndex = append(out.colIndex, j)
				}
			}
		}
		out.rowStart = append(out.rowStart, len(out.values))
	}

	return out, nil
}
