// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package estimator implements the thermal estimator: it advances the
// current temperature state one coarse service period per invocation
// by repeatedly stepping the rk4 integrator over fine sub-intervals,
// consuming an averaged heat-source input held constant across the
// period.
package estimator

import (
	"github.com/ascdrive/stepcool/rk4"
	"github.com/ascdrive/stepcool/statespace"
)

// Estimator tracks the motor/driver temperature state at the coarse
// estimator rate. The zero value is not usable; construct with New.
type Estimator struct {
	cfg *statespace.Config
	scr *rk4.Scratch

	h            float32
	periodCounts uint32
	ambientTemp  float32

	state     []float32 // current relative-to-ambient temperature vector
	output    []float32 // most recent plant outputs
	aveInputs []float32 // last inputs supplied via SetInputs, held across the period
}

// New builds an Estimator wired to cfg, seeded from initialState (a
// copy is taken; the caller's slice is not retained), with the given
// sub-step h and period length. All scratch is allocated here, once;
// PeriodicTask and SetInputs perform no allocation.
func New(cfg *statespace.Config, h float32, periodCounts uint32, ambientTemp float32, initialState []float32) *Estimator {
	e := &Estimator{
		cfg:          cfg,
		scr:          rk4.NewScratch(cfg.Nx, cfg.Nu),
		h:            h,
		periodCounts: periodCounts,
		ambientTemp:  ambientTemp,
		state:        make([]float32, cfg.Nx),
		output:       make([]float32, cfg.Ny),
		aveInputs:    make([]float32, cfg.Nu),
	}
	copy(e.state, initialState)
	return e
}

// SetInputs copies u into the estimator's held-constant average input
// vector. Idempotent, last-writer-wins; must not be called
// concurrently with PeriodicTask. A nil or mis-sized u is a no-op.
func (e *Estimator) SetInputs(u []float32) {
	if e == nil || u == nil || len(u) != e.cfg.Nu {
		return
	}
	copy(e.aveInputs, u)
}

// PeriodicTask advances the estimator state by periodCounts sub-steps
// of length h, using aveInputs for both u_n and u_{n+1} at every
// sub-step (held-constant input across the coarse period). If a
// sub-step fails, the sweep stops immediately and the last
// successfully integrated state is retained; it does not roll back.
func (e *Estimator) PeriodicTask() {
	if e == nil {
		return
	}
	for i := uint32(0); i < e.periodCounts; i++ {
		if !rk4.Solve(e.cfg, e.scr, e.h, e.state, e.aveInputs, e.aveInputs, e.output) {
			break
		}
	}
}

// CurrentOutput returns the estimator's most recent plant outputs
// (length Ny); the slice is owned by the estimator and must not be
// mutated by the caller.
func (e *Estimator) CurrentOutput() []float32 {
	return e.output
}

// CurrentState returns the estimator's current temperature state
// vector (length Nx); the slice is owned by the estimator and must
// not be mutated by the caller.
func (e *Estimator) CurrentState() []float32 {
	return e.state
}

// AmbientTemp returns the ambient temperature last used by this
// estimator.
func (e *Estimator) AmbientTemp() float32 {
	return e.ambientTemp
}
