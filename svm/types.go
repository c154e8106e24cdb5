package svm

import (
	"fmt"

	"github.com/katalvlaran/lvsvm/kernel"
	"github.com/katalvlaran/lvsvm/solver"
)

// Type selects the SVM formulation.
type Type int

const (
	// CSVC is C-support vector classification.
	CSVC Type = iota
	// NuSVC is nu-support vector classification.
	NuSVC
	// OneClass is the one-class (novelty detection) SVM.
	OneClass
	// EpsilonSVR is epsilon-insensitive support vector regression.
	EpsilonSVR
	// NuSVR is nu-support vector regression.
	NuSVR
)

// String returns the conventional lowercase name.
func (t Type) String() string {
	switch t {
	case CSVC:
		return "c_svc"
	case NuSVC:
		return "nu_svc"
	case OneClass:
		return "one_class"
	case EpsilonSVR:
		return "epsilon_svr"
	case NuSVR:
		return "nu_svr"
	default:
		return fmt.Sprintf("svm.Type(%d)", int(t))
	}
}

// IsClassifier reports whether t trains one-vs-one class pairs.
func (t Type) IsClassifier() bool { return t == CSVC || t == NuSVC }

// IsRegression reports whether t predicts real-valued targets.
func (t Type) IsRegression() bool { return t == EpsilonSVR || t == NuSVR }

func (t Type) valid() bool { return t >= CSVC && t <= NuSVR }

// Params holds every training hyperparameter. Build one with DefaultParams
// or NewParams and adjust fields or options; Train validates it.
type Params struct {
	Type   Type
	Kernel kernel.Params // Gamma == 0 means 1/NumFeatures for non-linear kernels

	C         float64 // CSVC, EpsilonSVR, NuSVR
	Nu        float64 // NuSVC, OneClass, NuSVR; in (0, 1]
	Epsilon   float64 // EpsilonSVR insensitive-loss width
	Tolerance float64 // KKT stopping threshold

	// WeightLabels[k] gets cost C·Weights[k] (CSVC only).
	WeightLabels []int
	Weights      []float64

	MaxIter     int  // < 0 unbounded
	Probability bool // fit Platt sigmoids (classification) or the Laplace scale (regression)
	NumCores    int  // worker count; -1 uses every CPU
	MaxMemSize  int  // kernel cache budget in MiB shared by the workers; <= 0 unlimited
	Shrinking   bool
	Seed        int64 // shuffles for probability fitting and cross validation; 0 uses a fixed default

	// OnSubModel, if set, is called once per finished sub-model from the
	// worker goroutine that trained it. Calls may run concurrently.
	OnSubModel func(SubModelInfo)
}

// SolveInfo summarizes one solver run. It is not persisted by the codec:
// decoded models report the zero value.
type SolveInfo struct {
	Iterations int
	Status     solver.Status
	Obj        float64
}

// SubModelInfo is passed to Params.OnSubModel.
type SubModelInfo struct {
	Index          int // position in the model's sub-model list
	ClassI, ClassJ int // class indices; 0, 0 for regression and one-class
	NumSV          int
	Rho            float64
	Info           SolveInfo
}
