// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package predictor implements the thermal overload predictor: using
// the same state-space model as the estimator, it simulates a
// hypothetical future duty cycle (an overload segment followed by a
// rated-load segment) starting from the estimator's latest state,
// records per-output peak temperatures, and compares them against
// ambient-compensated protective thresholds to emit an overload-admit
// decision.
package predictor

import (
	"github.com/ascdrive/stepcool/rk4"
	"github.com/ascdrive/stepcool/statespace"
)

// Predictor runs the predictive sweep and holds the resulting peak
// temperatures and admit decision. The zero value is not usable;
// construct with New.
type Predictor struct {
	cfg *statespace.Config
	scr *rk4.Scratch

	h              float32
	periodCounts   uint32
	overloadCounts uint32

	ambientTemp       float32
	maxTemps          []float32
	maxTempThresholds []float32

	initialState   []float32 // seed for the next sweep, refreshed by the facade from the estimator
	state          []float32 // working state consumed and advanced in place during a sweep
	overloadInputs []float32
	ratedInputs    []float32

	// sub-step scratch, preallocated so BackgroundTask never allocates.
	un    []float32
	unext []float32
	y     []float32
}

// New builds a Predictor wired to cfg. thresholds are the protective
// limits relative to ambientTemp (reference defaults: [60,40,40,60]
// at ambient 20C); overloadInputs/ratedInputs are the fixed profile
// levels used during a sweep. All scratch, including maxTemps, is
// allocated here, once.
func New(cfg *statespace.Config, h float32, periodCounts, overloadCounts uint32, ambientTemp float32, thresholds, initialState, overloadInputs, ratedInputs []float32) *Predictor {
	p := &Predictor{
		cfg:               cfg,
		scr:               rk4.NewScratch(cfg.Nx, cfg.Nu),
		h:                 h,
		periodCounts:      periodCounts,
		overloadCounts:    overloadCounts,
		ambientTemp:       ambientTemp,
		maxTemps:          make([]float32, cfg.Ny),
		maxTempThresholds: make([]float32, cfg.Ny),
		initialState:      make([]float32, cfg.Nx),
		state:             make([]float32, cfg.Nx),
		overloadInputs:    make([]float32, cfg.Nu),
		ratedInputs:       make([]float32, cfg.Nu),
		un:                make([]float32, cfg.Nu),
		unext:             make([]float32, cfg.Nu),
		y:                 make([]float32, cfg.Ny),
	}
	copy(p.maxTempThresholds, thresholds)
	copy(p.initialState, initialState)
	copy(p.overloadInputs, overloadInputs)
	copy(p.ratedInputs, ratedInputs)
	return p
}

// SetInitialState refreshes the seed state the next BackgroundTask
// sweep starts from. The facade calls this after every estimator
// PeriodicTask, with the estimator's resulting state vector. A nil or
// mis-sized s is a no-op.
func (p *Predictor) SetInitialState(s []float32) {
	if p == nil || s == nil || len(s) != p.cfg.Nx {
		return
	}
	copy(p.initialState, s)
}

// UpdateAmbientTemperature shifts maxTempThresholds by the change in
// ambient temperature and records the new ambient, so the protective
// thresholds (expressed relative to a reference ambient) continue to
// track the true ambient.
func (p *Predictor) UpdateAmbientTemperature(ambient float32) {
	if p == nil {
		return
	}
	difference := p.ambientTemp - ambient
	for j := range p.maxTempThresholds {
		p.maxTempThresholds[j] += difference
	}
	p.ambientTemp = ambient
}

// BackgroundTask runs one predictive sweep over the horizon
// (overloadCounts leading steps at the overload input level, then the
// remaining periodCounts-overloadCounts steps at the rated level,
// linearly interpolated across
// the single transition step) and refreshes maxTemps with the peak
// per-output temperature observed over the sweep. The working state
// is reseeded from initialState at entry, since the sweep consumes
// and advances it in place; maxTemps is reset to zero at entry so each
// sweep reports a per-sweep peak rather than a lifetime peak. If a
// sub-step fails, the sweep stops immediately and the peaks
// accumulated so far are kept.
func (p *Predictor) BackgroundTask() {
	if p == nil {
		return
	}
	copy(p.state, p.initialState)
	for j := range p.maxTemps {
		p.maxTemps[j] = 0
	}

	for i := uint32(0); i < p.periodCounts; i++ {
		switch {
		case i < p.overloadCounts:
			copy(p.un, p.overloadInputs)
			copy(p.unext, p.overloadInputs)
		case i == p.overloadCounts:
			copy(p.un, p.overloadInputs)
			copy(p.unext, p.ratedInputs)
		default:
			copy(p.un, p.ratedInputs)
			copy(p.unext, p.ratedInputs)
		}

		if !rk4.Solve(p.cfg, p.scr, p.h, p.state, p.un, p.unext, p.y) {
			break
		}
		for j := range p.maxTemps {
			if p.y[j] > p.maxTemps[j] {
				p.maxTemps[j] = p.y[j]
			}
		}
	}
}

// IsOverloadAvailable returns true iff every tracked output's peak
// from the last BackgroundTask sweep is within its protective
// threshold; it returns false on the first violation.
func (p *Predictor) IsOverloadAvailable() bool {
	if p == nil {
		return false
	}
	for j := range p.maxTemps {
		if p.maxTemps[j] > p.maxTempThresholds[j] {
			return false
		}
	}
	return true
}

// MaxTemps returns the per-output peak temperatures recorded by the
// last BackgroundTask sweep; the slice is owned by the predictor and
// must not be mutated by the caller.
func (p *Predictor) MaxTemps() []float32 {
	return p.maxTemps
}
