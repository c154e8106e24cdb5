// Package lvsvm is a pure-Go Support Vector Machine engine: training,
// prediction and model persistence for dense and sparse data.
//
// 🚀 What is lvsvm?
//
//	A small, dependency-light library that brings together:
//		• Feature storage: dense row-major and CSR-sparse matrices
//		• Kernels: linear, polynomial, RBF, sigmoid
//		• SMO solver: second-order working-set selection, shrinking, LRU kernel cache
//		• Variants: C-SVC, nu-SVC, one-class, epsilon-SVR, nu-SVR
//		• One-vs-one multi-class training on a bounded worker pool
//		• Platt probability estimates and k-fold cross validation
//		• A versioned little-endian binary model format
//
// Under the hood, everything is organized under four subpackages:
//
//	matrix/ — Dense, CSR, Vector, feature scaling
//	kernel/ — kernel families and parameter validation
//	solver/ — Q matrices, kernel column cache, SMO optimizer
//	svm/    — hyperparameters, training, Model, prediction, codec
//
// Quick start:
//
//	x, _ := matrix.NewDenseRows([][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 6}})
//	m, _ := svm.Train(x, []float64{0, 0, 1, 1}, svm.DefaultParams())
//	label, _ := m.Predict(matrix.NewDenseVector([]float64{4.5, 5}))
//
//	go get github.com/katalvlaran/lvsvm
package lvsvm
