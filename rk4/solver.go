// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rk4 implements a fixed-order state-space integrator using
// the classical fourth-order Runge-Kutta method with linear input
// interpolation across each step.
package rk4

import "github.com/ascdrive/stepcool/statespace"

// Scratch holds the stage buffers a single Solve call needs. It is
// allocated once (by the estimator/predictor at setup) and reused on
// every sub-step so that neither PeriodicTask nor BackgroundTask
// performs any heap allocation in steady state.
type Scratch struct {
	k0, k1, k2, k3 []float32
	xTemp          []float32
	uMid           []float32
}

// NewScratch allocates a Scratch sized for a plant with the given
// number of states and inputs.
func NewScratch(nx, nu int) *Scratch {
	return &Scratch{
		k0:    make([]float32, nx),
		k1:    make([]float32, nx),
		k2:    make([]float32, nx),
		k3:    make([]float32, nx),
		xTemp: make([]float32, nx),
		uMid:  make([]float32, nu),
	}
}

// Solve advances the state-space model described by cfg by one step
// of length h (seconds), using linear interpolation of the input
// between un (start-of-step) and unext (end-of-step) for the
// intermediate RK4 stages.
//
// state is both x_n on entry and x_{n+1} on a successful return: the
// caller owns this buffer and it is read in full before any element is
// overwritten, so state may be the estimator/predictor's own
// persistent state vector (in-place advancement without raw pointer
// aliasing).
//
// out receives y_{n+1} = C*x_{n+1} + D*un — the output uses the
// start-of-step input, not the end-of-step one; this is deliberate and
// must be preserved for reproducibility.
//
// Solve reports false and leaves state/out untouched if cfg, scratch,
// state, un, unext or out is nil or mis-sized; it does not check for
// NaN/Inf propagation, which is the caller's concern.
func Solve(cfg *statespace.Config, scratch *Scratch, h float32, state, un, unext, out []float32) bool {
	if cfg == nil || scratch == nil || state == nil || un == nil || unext == nil || out == nil {
		return false
	}
	if len(state) != cfg.Nx || len(un) != cfg.Nu || len(unext) != cfg.Nu || len(out) != cfg.Ny {
		return false
	}
	if len(scratch.k0) != cfg.Nx || len(scratch.uMid) != cfg.Nu {
		return false
	}

	k0, k1, k2, k3 := scratch.k0, scratch.k1, scratch.k2, scratch.k3
	xTemp, uMid := scratch.xTemp, scratch.uMid

	for i := 0; i < cfg.Nu; i++ {
		uMid[i] = 0.5 * (un[i] + unext[i])
	}

	// K0 = f(x_n, u_n)
	fx(cfg, state, un, k0)

	// K1 = f(x_n + h/2*K0, u_mid)
	for i := 0; i < cfg.Nx; i++ {
		xTemp[i] = state[i] + (h*0.5)*k0[i]
	}
	fx(cfg, xTemp, uMid, k1)

	// K2 = f(x_n + h/2*K1, u_mid)
	for i := 0; i < cfg.Nx; i++ {
		xTemp[i] = state[i] + (h*0.5)*k1[i]
	}
	fx(cfg, xTemp, uMid, k2)

	// K3 = f(x_n + h*K2, u_next)
	for i := 0; i < cfg.Nx; i++ {
		xTemp[i] = state[i] + h*k2[i]
	}
	fx(cfg, xTemp, unext, k3)

	// x_next = x_n + h/6*(K0 + 2*K1 + 2*K2 + K3); output uses x_next
	// with u_n (start-of-step input), not u_next.
	for i := 0; i < cfg.Nx; i++ {
		xTemp[i] = state[i] + (h/6)*(k0[i]+2*k1[i]+2*k2[i]+k3[i])
	}

	generateOutput(cfg, xTemp, un, out)

	copy(state, xTemp)
	return true
}

// fx computes result = A*x + B*u, skipping multiplications against
// matrix entries that are exactly zero or exactly one; this never
// changes the result for nonzero/non-unit entries.
func fx(cfg *statespace.Config, x, u, result []float32) {
	for i := 0; i < cfg.Nx; i++ {
		var sum float32
		row := cfg.A[i]
		for j := 0; j < cfg.Nx; j++ {
			a := row[j]
			if a == 0 {
				continue
			}
			if a == 1 {
				sum += x[j]
				continue
			}
			sum += a * x[j]
		}
		brow := cfg.B[i]
		for j := 0; j < cfg.Nu; j++ {
			b := brow[j]
			if b == 0 {
				continue
			}
			if b == 1 {
				sum += u[j]
				continue
			}
			sum += b * u[j]
		}
		result[i] = sum
	}
}

// generateOutput computes out = C*x + D*u with the same zero/one
// micro-optimization as fx.
func generateOutput(cfg *statespace.Config, x, u, out []float32) {
	for i := 0; i < cfg.Ny; i++ {
		var sum float32
		row := cfg.C[i]
		for j := 0; j < cfg.Nx; j++ {
			c := row[j]
			if c == 0 {
				continue
			}
			if c == 1 {
				sum += x[j]
				continue
			}
			sum += c * x[j]
		}
		drow := cfg.D[i]
		for j := 0; j < cfg.Nu; j++ {
			d := drow[j]
			if d == 0 {
				continue
			}
			if d == 1 {
				sum += u[j]
				continue
			}
			sum += d * u[j]
		}
		out[i] = sum
	}
}
