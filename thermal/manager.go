// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermal wires the estimator and predictor to the shared
// state-space config and pumps the two task contexts (periodic,
// background) a host platform drives them from. It owns the single
// Estimator and Predictor instance pair used by an application; the
// Manager builds both itself in Setup from the Config the host hands
// it, and holds them as fields of the Manager value, not as
// file-local globals. The host does not construct or supply the
// Estimator or Predictor directly.
package thermal

import (
	"github.com/ascdrive/stepcool/estimator"
	"github.com/ascdrive/stepcool/predictor"
	"github.com/ascdrive/stepcool/sourceinput"
	"github.com/ascdrive/stepcool/statespace"
	"github.com/cpmech/gosl/fun"
)

// Config collects the schedule/threshold/profile constants needed to
// set a Manager up; callers normally obtain one from the config
// package's Default or Load.
type Config struct {
	StateSpace *statespace.Config

	EstimatorH            float32
	EstimatorPeriodCounts uint32
	EstimatorInitialState []float32

	PredictorH              float32
	PredictorPeriodCounts   uint32
	PredictorOverloadCounts uint32
	PredictorInitialState   []float32
	MaxTempThresholds       []float32
	OverloadInputs          []float32
	RatedInputs             []float32

	AmbientTemp float32

	// Prms optionally overrides the source-input calculator's physical
	// constants by name; any name not present keeps its default.
	Prms fun.Prms
}

// Manager is the thermal-overload management facade: it owns a single
// Estimator and Predictor pair, wires both to the shared state-space
// config, and exposes the periodic/background task pump plus the
// query surface consumers read from.
type Manager struct {
	cfg *Config

	calc *sourceinput.Calculator
	est  *estimator.Estimator
	pred *predictor.Predictor

	ready bool
}

// NewManager builds an unconfigured Manager; call Setup before using
// it.
func NewManager() *Manager {
	return &Manager{calc: sourceinput.Default()}
}

// Setup allocates the Estimator and Predictor (and their integrator
// scratch), seeding both from cfg, and rebuilds the source-input
// calculator from cfg.Prms. It returns false, leaving the
// Manager unready, if cfg or its state-space config is missing;
// callers must not invoke PeriodicTask/BackgroundTask after a failed
// Setup.
func (m *Manager) Setup(cfg *Config) bool {
	if m == nil || cfg == nil || cfg.StateSpace == nil {
		return false
	}

	m.cfg = cfg
	m.calc = sourceinput.New(cfg.Prms)
	m.est = estimator.New(cfg.StateSpace, cfg.EstimatorH, cfg.EstimatorPeriodCounts, cfg.AmbientTemp, cfg.EstimatorInitialState)
	m.pred = predictor.New(cfg.StateSpace, cfg.PredictorH, cfg.PredictorPeriodCounts, cfg.PredictorOverloadCounts,
		cfg.AmbientTemp, cfg.MaxTempThresholds, cfg.PredictorInitialState, cfg.OverloadInputs, cfg.RatedInputs)

	m.ready = m.est != nil && m.pred != nil
	return m.ready
}

// Cleanup releases the Manager's component instances, making it
// un-ready until Setup is called again. Idempotent.
func (m *Manager) Cleanup() bool {
	if m == nil {
		return false
	}
	m.est = nil
	m.pred = nil
	m.ready = false
	return true
}

// CalculateSourceInputs translates (driveCurrent, omega) into the
// three heat-source power terms used as the estimator's next
// SetInputs argument; exposed on the facade for caller convenience.
func (m *Manager) CalculateSourceInputs(driveCurrentA, omegaRadps float32, out []float32) bool {
	if m == nil {
		return false
	}
	return m.calc.Compute(driveCurrentA, omegaRadps, out)
}

// SetInputs forwards u to the Estimator's held-constant average input
// vector.
func (m *Manager) SetInputs(u []float32) {
	if m == nil || !m.ready {
		return
	}
	m.est.SetInputs(u)
}

// PeriodicTask runs the Estimator's coarse-period step, then copies
// the Estimator's resulting state into the Predictor's seed state and
// refreshes the Predictor's ambient temperature, so the next
// BackgroundTask sweep starts from the latest known operating point.
func (m *Manager) PeriodicTask() {
	if m == nil || !m.ready {
		return
	}
	m.est.PeriodicTask()
	m.pred.SetInitialState(m.est.CurrentState())
	m.pred.UpdateAmbientTemperature(m.est.AmbientTemp())
}

// BackgroundTask runs one Predictor sweep.
func (m *Manager) BackgroundTask() {
	if m == nil || !m.ready {
		return
	}
	m.pred.BackgroundTask()
}

// GetCurrentTemp copies the Estimator's latest outputs into out and
// returns the element count actually copied.
func (m *Manager) GetCurrentTemp(out []float32) int {
	if m == nil || !m.ready {
		return 0
	}
	return copy(out, m.est.CurrentOutput())
}

// GetOLTemp copies the Predictor's latest per-output peak
// temperatures into out and returns the element count actually
// copied.
func (m *Manager) GetOLTemp(out []float32) int {
	if m == nil || !m.ready {
		return 0
	}
	return copy(out, m.pred.MaxTemps())
}

// IsOverloadAvailable delegates to the Predictor's admit decision.
func (m *Manager) IsOverloadAvailable() bool {
	if m == nil || !m.ready {
		return false
	}
	return m.pred.IsOverloadAvailable()
}

// Ready reports whether Setup has completed successfully and Cleanup
// has not been called since; while it is false the task pump and
// queries are silent no-ops.
func (m *Manager) Ready() bool {
	return m != nil && m.ready
}
