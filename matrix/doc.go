// Package matrix offers the feature-matrix storages consumed by the SVM engine.
//
// The matrix package provides:
//
//   - Dense: row-major rows × cols float64 buffer with safe At/Set accessors.
//   - CSR: validated compressed-sparse-row storage (values, column indices,
//     row starts) for high-dimensional sparse data.
//   - Vector: a single row view, dense or sparse, that kernels evaluate
//     without caring where the row came from.
//   - FeatureMatrix: the read-only contract both storages satisfy, including
//     copy-based row selection used to build per-pair training subsets.
//   - Scaler: per-feature min/max scaling into a target interval.
//
// Constructors validate eagerly (shape, row extents, column ranges, NaN/Inf
// policy) and return sentinel errors checked with errors.Is, so that malformed
// input is rejected before any solver work begins.
package matrix
