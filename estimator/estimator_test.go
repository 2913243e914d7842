// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimator

import (
	"testing"

	"github.com/ascdrive/stepcool/statespace"
	"github.com/cpmech/gosl/chk"
)

func Test_estimator_one_period_advance(tst *testing.T) {

	chk.PrintTitle("estimator one-period advance")

	cfg := statespace.Default()
	e := New(cfg, 0.1, 10, 20.0, []float32{0, 0, 0})
	e.SetInputs([]float32{5.4168, 16.0000, 4.4368})

	e.PeriodicTask()

	out := e.CurrentOutput()
	chk.Scalar(tst, "y3", 0.05, float64(out[3]), 33.16)
	for i := 0; i < 3; i++ {
		if out[i] > 1 {
			tst.Errorf("y[%d] expected small (<1 degC), got %v", i, out[i])
		}
	}
}

func Test_estimator_setinputs_idempotent(tst *testing.T) {

	chk.PrintTitle("estimator SetInputs idempotence")

	cfg := statespace.Default()

	e1 := New(cfg, 0.1, 10, 20.0, []float32{0, 0, 0})
	e1.SetInputs([]float32{1, 2, 3})
	e1.PeriodicTask()

	e2 := New(cfg, 0.1, 10, 20.0, []float32{0, 0, 0})
	e2.SetInputs([]float32{1, 2, 3})
	e2.SetInputs([]float32{1, 2, 3})
	e2.PeriodicTask()

	o1, o2 := e1.CurrentOutput(), e2.CurrentOutput()
	for i := range o1 {
		if o1[i] != o2[i] {
			tst.Errorf("out[%d] not bitwise identical: %v vs %v", i, o1[i], o2[i])
		}
	}
}

func Test_estimator_setinputs_nil_safety(tst *testing.T) {

	chk.PrintTitle("estimator SetInputs nil-safety")

	cfg := statespace.Default()
	e := New(cfg, 0.1, 10, 20.0, []float32{0, 0, 0})
	e.SetInputs([]float32{9, 9, 9})
	before := append([]float32(nil), e.aveInputs...)

	e.SetInputs(nil)
	e.SetInputs([]float32{1, 2})

	for i := range before {
		if e.aveInputs[i] != before[i] {
			tst.Errorf("aveInputs[%d] changed on invalid SetInputs call", i)
		}
	}
}
