// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package statespace holds the constant state-space matrices of the
// motor/driver thermal plant shared read-only by the integrator,
// estimator and predictor.
package statespace

import "github.com/cpmech/gosl/chk"

// Config is an immutable continuous-time state-space model
//
//	dx/dt = A*x + B*u
//	y     = C*x + D*u
//
// A is Nx×Nx, B is Nx×Nu, C is Ny×Nx, D is Ny×Nu, all row-major. A
// Config is built once and shared by reference; nothing in this
// package mutates it after construction.
type Config struct {
	Nx int
	Nu int
	Ny int
	A  [][]float32
	B  [][]float32
	C  [][]float32
	D  [][]float32
}

// New builds a Config, checking that the supplied matrices agree with
// the declared dimensions. It is provided for hosts that characterize
// a different plant; the thermal subsystem itself uses Default.
func New(nx, nu, ny int, a, b, c, d [][]float32) (*Config, error) {
	if nx <= 0 || nu <= 0 || ny <= 0 {
		return nil, chk.Err("Nx, Nu and Ny must be positive: Nx=%d, Nu=%d, Ny=%d", nx, nu, ny)
	}
	if len(a) != nx || len(b) != nx || len(c) != ny || len(d) != ny {
		return nil, chk.Err("matrix row counts do not match Nx=%d/Ny=%d", nx, ny)
	}
	for _, row := range a {
		if len(row) != nx {
			return nil, chk.Err("A must be %d by %d", nx, nx)
		}
	}
	for _, row := range b {
		if len(row) != nu {
			return nil, chk.Err("B must be %d by %d", nx, nu)
		}
	}
	for _, row := range c {
		if len(row) != nx {
			return nil, chk.Err("C must be %d by %d", ny, nx)
		}
	}
	for _, row := range d {
		if len(row) != nu {
			return nil, chk.Err("D must be %d by %d", ny, nu)
		}
	}
	return &Config{Nx: nx, Nu: nu, Ny: ny, A: a, B: b, C: c, D: d}, nil
}

// motorDriverPlant holds the stepper-servo thermal plant constants
// from the reference characterization: Nx=3 temperature states, Nu=3
// heat-source inputs, Ny=4 outputs.
var motorDriverPlant = Config{
	Nx: 3,
	Nu: 3,
	Ny: 4,
	A: [][]float32{
		{-1.5603e-02, 1.4710e-02, 3.3201e-04},
		{0, -8.9398e-04, 3.3201e-04},
		{0, 1.0531e-03, -2.6055e-03},
	},
	B: [][]float32{
		{3.2095e-02, 9.4706e-03, 0},
		{1.6690e-03, 1.6690e-03, 0},
		{0, 0, 5.2938e-03},
	},
	C: [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 1},
	},
	D: [][]float32{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 7.475},
	},
}

// Default returns the process-wide motor/driver plant config used by
// the estimator and predictor. The returned pointer is shared and
// must never be mutated by callers.
func Default() *Config {
	return &motorDriverPlant
}
