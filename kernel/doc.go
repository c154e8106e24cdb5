// Package kernel evaluates SVM kernel functions over matrix.Vector rows.
//
// Supported families:
//
//	Linear      K(u,v) = u·v
//	Polynomial  K(u,v) = (γ·u·v + coef0)^degree
//	RBF         K(u,v) = exp(−γ·‖u−v‖²)
//	Sigmoid     K(u,v) = tanh(γ·u·v + coef0)
//
// Evaluate is pure and safe for concurrent use. Sparse rows are merged on
// their sorted column indices, so implicit zeros cost nothing; mixing a
// dense and a sparse row is supported and yields the same value as two dense
// rows up to floating-point rounding.
//
// Parameters are checked by Validate up front. Evaluate itself never fails:
// invalid gamma or degree are training-time errors, not silently clamped.
package kernel
