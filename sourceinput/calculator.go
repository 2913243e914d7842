// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sourceinput translates commanded drive current and
// rotational speed into the heat-source power terms consumed by the
// thermal plant's state-space inputs.
package sourceinput

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// Calculator holds the motor/driver physical constants used to derive
// heat-source power terms from operating conditions. The zero value is
// not usable; construct with Default or New.
type Calculator struct {
	RPhase float32 // motor phase resistance [Ohm]
	RdsOn  float32 // driver MOSFET on-resistance [Ohm]
	VBus   float32 // bus voltage [V]
	FSw    float32 // switching frequency [Hz]
	TRise  float32 // MOSFET rise time [s]
	TFall  float32 // MOSFET fall time [s]
	RSense float32 // current-sense resistance [Ohm]
	PMisc  float32 // fixed residual driver loss [W]
}

// Default returns a Calculator with the reference characterization's
// constants.
func Default() *Calculator {
	return &Calculator{
		RPhase: 1.0,
		RdsOn:  1.325e-2,
		VBus:   48,
		FSw:    1.4e5,
		TRise:  15e-9,
		TFall:  19e-9,
		RSense: 2.0e-2,
		PMisc:  0.27,
	}
}

// New builds a Calculator from a parameter list, falling back to the
// Default constant for any name not present in prms.
func New(prms fun.Prms) *Calculator {
	c := Default()
	for _, p := range prms {
		v := float32(p.V)
		switch p.N {
		case "RPhase":
			c.RPhase = v
		case "RdsOn":
			c.RdsOn = v
		case "VBus":
			c.VBus = v
		case "FSw":
			c.FSw = v
		case "TRise":
			c.TRise = v
		case "TFall":
			c.TFall = v
		case "RSense":
			c.RSense = v
		case "PMisc":
			c.PMisc = v
		}
	}
	return c
}

// Compute fills out[0:3] with the motor core/air-loss, copper-loss and
// driver-loss heat-source power terms [W] for the given drive current
// [A] and rotational speed [rad/s]. It reports false and leaves out
// untouched if out is missing or too short.
func (c *Calculator) Compute(driveCurrentA, omegaRadps float32, out []float32) bool {
	if out == nil || len(out) < 3 {
		return false
	}

	iRmsSq := driveCurrentA * driveCurrentA / 2

	u0 := float32(0.0303 * math.Pow(float64(omegaRadps), 1.44))
	u1 := 2 * c.RPhase * iRmsSq
	u2 := 4*c.RdsOn*iRmsSq +
		4*c.VBus*c.FSw*(c.TRise+c.TFall)*float32(math.Sqrt(float64(iRmsSq))) +
		2*c.RSense*iRmsSq +
		c.PMisc

	out[0] = u0
	out[1] = u1
	out[2] = u2
	return true
}
