// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsvm/matrix"
)

// 1) TestDefaultPolicy_RejectsNonFinite verifies the documented default rejects NaN/Inf.
func TestDefaultPolicy_RejectsNonFinite(t *testing.T) {
	if !matrix.DefaultValidateNaNInf {
		t.Fatalf("DefaultValidateNaNInf: got false, want true")
	}
	if _, err := matrix.NewDenseFrom(1, 1, []float64{math.NaN()}); err == nil {
		t.Fatalf("NewDenseFrom accepted NaN under the default policy")
	}
	if _, err := matrix.NewDenseRows([][]float64{{math.Inf(-1)}}); err == nil {
		t.Fatalf("NewDenseRows accepted -Inf under the default policy")
	}
}

// 2) TestOptions_LastWriterWins ensures options fold in order.
func TestOptions_LastWriterWins(t *testing.T) {
	if _, err := matrix.NewDenseFrom(1, 1, []float64{math.NaN()},
		matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf()); err == nil {
		t.Fatalf("strict policy set last was not applied")
	}
	m, err := matrix.NewDenseFrom(1, 1, []float64{math.NaN()},
		matrix.WithValidateNaNInf(), matrix.WithNoValidateNaNInf())
	if err != nil {
		t.Fatalf("loose policy set last was not applied: %v", err)
	}
	v, _ := m.At(0, 0)
	if !math.IsNaN(v) {
		t.Fatalf("stored value: got %v, want NaN", v)
	}
}

// 3) TestOptions_NilIgnored ensures a nil Option is skipped.
func TestOptions_NilIgnored(t *testing.T) {
	if _, err := matrix.NewDense(2, 2, nil); err != nil {
		t.Fatalf("nil option: %v", err)
	}
}

// 4) TestOptions_SetFollowsPolicy checks Dense.Set honours the constructor policy.
func TestOptions_SetFollowsPolicy(t *testing.T) {
	strict, _ := matrix.NewDense(1, 1)
	if err := strict.Set(0, 0, math.Inf(1)); err == nil {
		t.Fatalf("strict Set accepted +Inf")
	}
	loose, _ := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	if err := loose.Set(0, 0, math.Inf(1)); err != nil {
		t.Fatalf("loose Set rejected +Inf: %v", err)
	}
}
