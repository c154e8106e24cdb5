// Package svm trains and applies support vector machines.
//
// Five formulations are available through Params.Type:
//
//	CSVC        C-support vector classification (default)
//	NuSVC       nu-support vector classification
//	OneClass    novelty detection; output > 0 means inlier
//	EpsilonSVR  epsilon-insensitive regression
//	NuSVR       nu regression
//
// Classification with K labels is decomposed one-vs-one into K(K−1)/2 binary
// problems, solved on a bounded worker pool (Params.NumCores) and combined by
// majority vote. Ties go to the class seen first in the training labels. The
// support vectors of all pairs are stored once and shared by the sub-models.
//
// Quick start:
//
//	x, _ := matrix.NewDenseRows(rows)
//	m, err := svm.Train(x, labels, svm.DefaultParams())
//	if err != nil { ... }
//	label, _ := m.Predict(matrix.NewDenseVector(sample))
//
// Inputs may be dense (*matrix.Dense) or sparse (*matrix.CSR); both give the
// same model up to floating-point rounding.
//
// Errors are grouped under three kinds matched with errors.Is: ErrValidation
// (bad training input, raised before any solver work), ErrDecode (bad
// serialized model) and ErrContract (misuse of a Model). Hitting MaxIter is
// not an error; check Model.Converged or SubModel.Info.
//
// With Params.Probability set, classifiers fit a Platt sigmoid per pair from
// internal 5-fold cross validation and PredictProbability couples them into
// class probabilities; regressors estimate a Laplace noise scale (SVRSigma).
//
// Models serialize to a compact little-endian format via Marshal/Unmarshal
// (also encoding.BinaryMarshaler and io.WriterTo). A trained or decoded Model
// is immutable and safe for concurrent prediction.
package svm
