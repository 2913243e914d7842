// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermal

import (
	"testing"

	"github.com/ascdrive/stepcool/statespace"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func defaultConfig() *Config {
	cfg := statespace.Default()
	return &Config{
		StateSpace: cfg,

		EstimatorH:            0.1,
		EstimatorPeriodCounts: 10,
		EstimatorInitialState: []float32{0, 0, 0},

		PredictorH:              1.0,
		PredictorPeriodCounts:   60,
		PredictorOverloadCounts: 10,
		PredictorInitialState:   []float32{0, 0, 0},
		MaxTempThresholds:       []float32{60, 40, 40, 60},
		OverloadInputs:          []float32{5.4168, 23.0400, 5.5027},
		RatedInputs:             []float32{5.4168, 16.0000, 4.4368},

		AmbientTemp: 20.0,
	}
}

func Test_manager_setup_then_cleanup(tst *testing.T) {

	chk.PrintTitle("manager setup/cleanup")

	m := NewManager()
	if m.Ready() {
		tst.Errorf("test failed: manager should not be ready before Setup")
	}
	if !m.Setup(defaultConfig()) {
		tst.Fatalf("Setup failed")
	}
	if !m.Ready() {
		tst.Errorf("test failed: manager should be ready after successful Setup")
	}
	if !m.Cleanup() {
		tst.Errorf("test failed: Cleanup should succeed")
	}
	if m.Ready() {
		tst.Errorf("test failed: manager should not be ready after Cleanup")
	}
}

func Test_manager_setup_rejects_missing_config(tst *testing.T) {

	chk.PrintTitle("manager Setup failure (missing state-space config)")

	m := NewManager()
	if m.Setup(nil) {
		tst.Errorf("test failed: Setup(nil) should fail")
	}
	if m.Setup(&Config{}) {
		tst.Errorf("test failed: Setup with no StateSpace should fail")
	}
}

func Test_manager_tasks_noop_before_setup(tst *testing.T) {

	chk.PrintTitle("manager tasks are no-ops before Setup")

	m := NewManager()
	m.SetInputs([]float32{1, 2, 3})
	m.PeriodicTask()
	m.BackgroundTask()

	out := make([]float32, 4)
	if n := m.GetCurrentTemp(out); n != 0 {
		tst.Errorf("test failed: GetCurrentTemp should copy 0 elements before Setup, got %d", n)
	}
	if m.IsOverloadAvailable() {
		tst.Errorf("test failed: IsOverloadAvailable should be false before Setup")
	}
}

func Test_manager_prms_reach_source_input_calculator(tst *testing.T) {

	chk.PrintTitle("manager wires config prms into the source-input calculator")

	cfg := defaultConfig()
	cfg.Prms = fun.Prms{
		&fun.Prm{N: "PMisc", V: 1.5},
	}

	m := NewManager()
	if !m.Setup(cfg) {
		tst.Fatalf("Setup failed")
	}

	// at zero current and speed u2 reduces to the residual loss, so the
	// overridden PMisc must appear verbatim.
	u := make([]float32, 3)
	if !m.CalculateSourceInputs(0, 0, u) {
		tst.Fatalf("CalculateSourceInputs failed")
	}
	chk.Scalar(tst, "u2", 1e-6, float64(u[2]), 1.5)
}

func Test_manager_end_to_end_tick(tst *testing.T) {

	chk.PrintTitle("manager end-to-end periodic + background tick")

	m := NewManager()
	if !m.Setup(defaultConfig()) {
		tst.Fatalf("Setup failed")
	}

	u := make([]float32, 3)
	if !m.CalculateSourceInputs(5.4168, 209.4, u) {
		tst.Fatalf("CalculateSourceInputs failed")
	}
	m.SetInputs(u)
	m.PeriodicTask()

	cur := make([]float32, 4)
	if n := m.GetCurrentTemp(cur); n != 4 {
		tst.Errorf("test failed: GetCurrentTemp copied %d elements, want 4", n)
	}

	m.BackgroundTask()

	ol := make([]float32, 4)
	if n := m.GetOLTemp(ol); n != 4 {
		tst.Errorf("test failed: GetOLTemp copied %d elements, want 4", n)
	}

	// the peaks are relative-to-ambient temperatures; a sweep from a
	// non-negative state under non-negative inputs cannot dip below
	// zero.
	for j := range ol {
		if ol[j] < 0 {
			tst.Errorf("test failed: maxTemps[%d] unexpectedly negative: %v", j, ol[j])
		}
	}

	_ = m.IsOverloadAvailable()
}
