package kernel

import "fmt"

// Type selects the kernel family.
type Type int

const (
	// Linear is u·v.
	Linear Type = iota
	// Polynomial is (γ·u·v + coef0)^degree.
	Polynomial
	// RBF is exp(−γ·‖u−v‖²).
	RBF
	// Sigmoid is tanh(γ·u·v + coef0).
	Sigmoid
)

// String returns the conventional lowercase name.
func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Polynomial:
		return "polynomial"
	case RBF:
		return "rbf"
	case Sigmoid:
		return "sigmoid"
	default:
		return fmt.Sprintf("kernel.Type(%d)", int(t))
	}
}

// Params fully determines a kernel. Fields unused by Type are ignored.
type Params struct {
	Type   Type
	Degree int     // Polynomial only
	Gamma  float64 // Polynomial, RBF, Sigmoid
	Coef0  float64 // Polynomial, Sigmoid
}

// DefaultDegree is the polynomial degree used when callers do not choose one.
const DefaultDegree = 3
