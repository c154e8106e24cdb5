package kernel

import "errors"

// Sentinel errors returned by Validate. Callers match them with errors.Is.
var (
	// ErrUnknownType indicates a Type outside the defined families.
	ErrUnknownType = errors.New("kernel: unknown kernel type")

	// ErrBadGamma indicates gamma <= 0 or non-finite for a kernel that uses it.
	ErrBadGamma = errors.New("kernel: gamma must be finite and > 0")

	// ErrBadDegree indicates a polynomial degree below 1 or a degree that
	// does not fit in 32 bits.
	ErrBadDegree = errors.New("kernel: invalid degree")

	// ErrBadCoef0 indicates a non-finite coef0.
	ErrBadCoef0 = errors.New("kernel: coef0 must be finite")
)
