package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvsvm/matrix"
)

// Validate checks p without clamping anything.
//
// Errors:
//   - ErrUnknownType for an undefined Type.
//   - ErrBadGamma when a non-linear kernel has gamma <= 0 or NaN/Inf.
//   - ErrBadDegree when a polynomial kernel has degree < 1, or any kernel
//     has a degree outside the int32 range.
//   - ErrBadCoef0 when coef0 is NaN/Inf.
func Validate(p Params) error {
	if p.Degree > math.MaxInt32 || p.Degree < math.MinInt32 {
		return fmt.Errorf("degree=%d: %w", p.Degree, ErrBadDegree)
	}
	switch p.Type {
	case Linear:
		return nil
	case Polynomial, RBF, Sigmoid:
	default:
		return fmt.Errorf("%v: %w", p.Type, ErrUnknownType)
	}
	if !(p.Gamma > 0) || math.IsInf(p.Gamma, 0) {
		return fmt.Errorf("%v gamma=%g: %w", p.Type, p.Gamma, ErrBadGamma)
	}
	if p.Type == Polynomial && p.Degree < 1 {
		return fmt.Errorf("degree=%d: %w", p.Degree, ErrBadDegree)
	}
	if math.IsNaN(p.Coef0) || math.IsInf(p.Coef0, 0) {
		return fmt.Errorf("coef0=%g: %w", p.Coef0, ErrBadCoef0)
	}

	return nil
}

// Evaluate returns K(u, v) for the family in p. u and v must have the same
// Len; dense, sparse and mixed pairs give the same value up to rounding.
// Evaluate assumes p passed Validate.
func Evaluate(u, v matrix.Vector, p Params) float64 {
	switch p.Type {
	case Linear:
		return Dot(u, v)
	case Polynomial:
		return powi(p.Gamma*Dot(u, v)+p.Coef0, p.Degree)
	case RBF:
		return math.Exp(-p.Gamma * SquaredDistance(u, v))
	case Sigmoid:
		return math.Tanh(p.Gamma*Dot(u, v) + p.Coef0)
	default:
		return 0
	}
}

// Dot returns u·v.
func Dot(u, v matrix.Vector) float64 {
	switch {
	case !u.IsSparse() && !v.IsSparse():
		return floats.Dot(u.Dense(), v.Dense())
	case u.IsSparse() && v.IsSparse():
		ui, uv := u.Entries()
		vi, vv := v.Entries()
		sum := 0.0
		for a, b := 0, 0; a < len(ui) && b < len(vi); {
			switch {
			case ui[a] == vi[b]:
				sum += uv[a] * vv[b]
				a++
				b++
			case ui[a] < vi[b]:
				a++
			default:
				b++
			}
		}
		return sum
	case u.IsSparse():
		return mixedDot(u, v.Dense())
	default:
		return mixedDot(v, u.Dense())
	}
}

func mixedDot(s matrix.Vector, d []float64) float64 {
	idx, val := s.Entries()
	sum := 0.0
	for k, j := range idx {
		sum += val[k] * d[j]
	}

	return sum
}

// SquaredDistance returns ‖u−v‖².
func SquaredDistance(u, v matrix.Vector) float64 {
	switch {
	case !u.IsSparse() && !v.IsSparse():
		d := floats.Distance(u.Dense(), v.Dense(), 2)
		return d * d
	case u.IsSparse() && v.IsSparse():
		ui, uv := u.Entries()
		vi, vv := v.Entries()
		sum := 0.0
		a, b := 0, 0
		for a < len(ui) && b < len(vi) {
			switch {
			case ui[a] == vi[b]:
				d := uv[a] - vv[b]
				sum += d * d
				a++
				b++
			case ui[a] < vi[b]:
				sum += uv[a] * uv[a]
				a++
			default:
				sum += vv[b] * vv[b]
				b++
			}
		}
		for ; a < len(ui); a++ {
			sum += uv[a] * uv[a]
		}
		for ; b < len(vi); b++ {
			sum += vv[b] * vv[b]
		}
		return sum
	case u.IsSparse():
		return mixedDistance(u, v.Dense())
	default:
		return mixedDistance(v, u.Dense())
	}
}

// mixedDistance walks the dense side once and subtracts stored sparse entries.
func mixedDistance(s matrix.Vector, d []float64) float64 {
	idx, val := s.Entries()
	sum := 0.0
	k := 0
	for j, x := range d {
		if k < len(idx) && idx[k] == j {
			x -= val[k]
			k++
		}
		sum += x * x
	}

	return sum
}

// powi computes base^n for n >= 0 by repeated squaring.
func powi(base float64, n int) float64 {
	ret := 1.0
	for t := n; t > 0; t /= 2 {
		if t%2 == 1 {
			ret *= base
		}
		base *= base
	}

	return ret
}
