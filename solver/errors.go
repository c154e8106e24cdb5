package solver

import "errors"

// ErrBadProblem is returned by Solve when the Problem is malformed
// (nil Q, slice lengths differing from Q.Len(), labels other than ±1,
// non-positive bounds or tolerance). It signals a caller bug: the svm
// package validates user input before building a Problem.
var ErrBadProblem = errors.New("solver: malformed problem")
