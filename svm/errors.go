package svm

import (
	"errors"
	"fmt"
)

// Error kinds. Every sentinel below wraps exactly one of them, so callers can
// branch on the kind with errors.Is(err, ErrValidation) or on the precise
// cause with errors.Is(err, ErrBadNu).
var (
	// ErrValidation: training input or hyperparameters are unusable. Raised
	// before any solver work; no model is returned.
	ErrValidation = errors.New("svm: validation failed")

	// ErrDecode: a serialized model is corrupt, truncated or incompatible.
	ErrDecode = errors.New("svm: decode failed")

	// ErrContract: a caller broke a documented precondition of a Model method.
	ErrContract = errors.New("svm: contract violation")
)

// Validation causes.
var (
	ErrBadType             = fmt.Errorf("%w: unknown svm type", ErrValidation)
	ErrNoData              = fmt.Errorf("%w: training set has no rows", ErrValidation)
	ErrLabelCount          = fmt.Errorf("%w: label count differs from row count", ErrValidation)
	ErrNonIntegralLabel    = fmt.Errorf("%w: classification label is not an integer", ErrValidation)
	ErrNonFiniteLabel      = fmt.Errorf("%w: label is NaN or Inf", ErrValidation)
	ErrTooFewClasses       = fmt.Errorf("%w: classification needs at least 2 distinct labels", ErrValidation)
	ErrWeightLength        = fmt.Errorf("%w: weight labels and weights differ in length", ErrValidation)
	ErrUnknownWeightLabel  = fmt.Errorf("%w: class weight for a label absent from training data", ErrValidation)
	ErrBadWeight           = fmt.Errorf("%w: class weight must be finite and > 0, labels unique", ErrValidation)
	ErrBadCost             = fmt.Errorf("%w: C must be finite and > 0", ErrValidation)
	ErrBadNu               = fmt.Errorf("%w: nu must be in (0, 1]", ErrValidation)
	ErrNuInfeasible        = fmt.Errorf("%w: nu is infeasible for a class pair", ErrValidation)
	ErrBadEpsilon          = fmt.Errorf("%w: epsilon must be finite and >= 0", ErrValidation)
	ErrBadTolerance        = fmt.Errorf("%w: tolerance must be finite and > 0", ErrValidation)
	ErrBadCores            = fmt.Errorf("%w: NumCores must be -1 or in [1, MaxInt32]", ErrValidation)
	ErrProbabilityOneClass = fmt.Errorf("%w: probability estimates are not available for one-class", ErrValidation)
	ErrBadFolds            = fmt.Errorf("%w: cross validation needs at least 2 folds", ErrValidation)
)

// Decode causes.
var (
	ErrBadMagic  = fmt.Errorf("%w: bad magic", ErrDecode)
	ErrVersion   = fmt.Errorf("%w: unsupported version", ErrDecode)
	ErrTruncated = fmt.Errorf("%w: truncated payload", ErrDecode)
	ErrCorrupt   = fmt.Errorf("%w: inconsistent payload", ErrDecode)
)

// Contract causes.
var (
	ErrNilModel         = fmt.Errorf("%w: nil model", ErrContract)
	ErrFeatureCount     = fmt.Errorf("%w: feature count differs from model", ErrContract)
	ErrNotProbabilistic = fmt.Errorf("%w: model has no probability information", ErrContract)
	ErrNotLinear        = fmt.Errorf("%w: model kernel is not linear", ErrContract)
	ErrSubModelIndex    = fmt.Errorf("%w: sub-model index out of range", ErrContract)
)
