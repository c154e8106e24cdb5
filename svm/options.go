package svm

import "github.com/katalvlaran/lvsvm/kernel"

// Documented defaults (single source of truth for DefaultParams).
const (
	DefaultC          = 1.0
	DefaultNu         = 0.5
	DefaultEpsilon    = 0.1
	DefaultTolerance  = 1e-3
	DefaultMaxIter    = -1
	DefaultNumCores   = -1
	DefaultMaxMemSize = 100 // MiB
)

// DefaultParams returns C-SVC with an RBF kernel, gamma = 1/NumFeatures,
// C = 1, shrinking on and no iteration cap.
func DefaultParams() Params {
	return Params{
		Type:       CSVC,
		Kernel:     kernel.Params{Type: kernel.RBF, Degree: kernel.DefaultDegree},
		C:          DefaultC,
		Nu:         DefaultNu,
		Epsilon:    DefaultEpsilon,
		Tolerance:  DefaultTolerance,
		MaxIter:    DefaultMaxIter,
		NumCores:   DefaultNumCores,
		MaxMemSize: DefaultMaxMemSize,
		Shrinking:  true,
	}
}

// Option mutates Params. Options never validate; Train does.
type Option func(*Params)

// NewParams applies opts over DefaultParams in order (last writer wins).
func NewParams(opts ...Option) Params {
	p := DefaultParams()
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}

	return p
}

// WithType selects the SVM formulation.
func WithType(t Type) Option { return func(p *Params) { p.Type = t } }

// WithKernel replaces the kernel parameters.
func WithKernel(k kernel.Params) Option { return func(p *Params) { p.Kernel = k } }

// WithLinear selects the linear kernel.
func WithLinear() Option {
	return func(p *Params) { p.Kernel = kernel.Params{Type: kernel.Linear} }
}

// WithRBF selects exp(−γ‖u−v‖²); gamma 0 means 1/NumFeatures.
func WithRBF(gamma float64) Option {
	return func(p *Params) { p.Kernel = kernel.Params{Type: kernel.RBF, Gamma: gamma} }
}

// WithPolynomial selects (γ·u·v + coef0)^degree.
func WithPolynomial(degree int, gamma, coef0 float64) Option {
	return func(p *Params) {
		p.Kernel = kernel.Params{Type: kernel.Polynomial, Degree: degree, Gamma: gamma, Coef0: coef0}
	}
}

// WithSigmoid selects tanh(γ·u·v + coef0).
func WithSigmoid(gamma, coef0 float64) Option {
	return func(p *Params) { p.Kernel = kernel.Params{Type: kernel.Sigmoid, Gamma: gamma, Coef0: coef0} }
}

// WithC sets the cost parameter.
func WithC(c float64) Option { return func(p *Params) { p.C = c } }

// WithNu sets nu.
func WithNu(nu float64) Option { return func(p *Params) { p.Nu = nu } }

// WithEpsilon sets the epsilon-SVR tube width.
func WithEpsilon(eps float64) Option { return func(p *Params) { p.Epsilon = eps } }

// WithTolerance sets the stopping tolerance.
func WithTolerance(tol float64) Option { return func(p *Params) { p.Tolerance = tol } }

// WithClassWeight multiplies C by w for class label.
func WithClassWeight(label int, w float64) Option {
	return func(p *Params) {
		p.WeightLabels = append(p.WeightLabels, label)
		p.Weights = append(p.Weights, w)
	}
}

// WithMaxIter caps solver iterations per sub-model (< 0 unbounded).
func WithMaxIter(n int) Option { return func(p *Params) { p.MaxIter = n } }

// WithProbability enables probability estimates.
func WithProbability() Option { return func(p *Params) { p.Probability = true } }

// WithNumCores bounds the worker pool (-1 = all CPUs).
func WithNumCores(n int) Option { return func(p *Params) { p.NumCores = n } }

// WithMaxMemSize sets the kernel cache budget in MiB (<= 0 unlimited).
func WithMaxMemSize(mib int) Option { return func(p *Params) { p.MaxMemSize = mib } }

// WithShrinking toggles the shrinking heuristic.
func WithShrinking(on bool) Option { return func(p *Params) { p.Shrinking = on } }

// WithSeed fixes the shuffling seed.
func WithSeed(seed int64) Option { return func(p *Params) { p.Seed = seed } }

// WithSubModelHook registers a per-sub-model completion callback.
func WithSubModelHook(fn func(SubModelInfo)) Option {
	return func(p *Params) { p.OnSubModel = fn }
}
