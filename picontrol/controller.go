// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package picontrol implements the integer PI controller collaborator:
// a proportional + clamped-integral + feedforward controller that
// saturates its output to a byte. It is out of the
// thermal-overload core; it consumes the torque limit byte the
// predictor's admit decision can tighten.
package picontrol

// Controller is an integer PI controller with anti-windup integral
// clamping. Gains are rational (numerator/divisor) so the control law
// stays in integer arithmetic throughout. The zero
// value has zero gains (Step returns only feedforward, saturated);
// construct with New for a usable controller.
type Controller struct {
	KpNum, KpDiv int32
	KiNum, KiDiv int32

	iSum           int32
	iSumMax        uint8
	iSumMin        uint8
	resetRequested bool
}

// New builds a Controller with the given proportional/integral gains
// (as num/div rational pairs) and integral clamp bounds.
func New(kpNum, kpDiv, kiNum, kiDiv int32, iSumMin, iSumMax uint8) *Controller {
	return &Controller{
		KpNum: kpNum, KpDiv: kpDiv,
		KiNum: kiNum, KiDiv: kiDiv,
		iSumMin: iSumMin, iSumMax: iSumMax,
	}
}

func absInt32(i int32) int32 {
	if i < 0 {
		return -i
	}
	return i
}

func signInt32(i int32) int32 {
	if i < 0 {
		return -1
	}
	return 1
}

func saturateByte(i int32) uint8 {
	if i > 0xFF {
		return 0xFF
	}
	if i < 0 {
		return 0
	}
	return uint8(i)
}

// Step computes one control output for the given setpoint, feedback
// and feedforward, updating and clamping the internal integral
// accumulator. If Reset was called since the last Step, the
// accumulator is zeroed before this step's update. The result is
// feedforward + P-term + I-term, saturated to [0,255].
func (c *Controller) Step(setpoint uint8, feedback int32, feedforward uint8) uint8 {
	if c == nil {
		return feedforward
	}

	e := int32(setpoint) - feedback
	result := int32(feedforward)

	if c.resetRequested {
		c.iSum = 0
		c.resetRequested = false
	}

	c.iSum += e
	switch {
	case absInt32(c.iSum) > int32(c.iSumMax):
		c.iSum = signInt32(c.iSum) * int32(c.iSumMax)
	case absInt32(c.iSum) < int32(c.iSumMin):
		c.iSum = signInt32(c.iSum) * int32(c.iSumMin)
	}

	if c.KpDiv != 0 {
		result += (c.KpNum * e) / c.KpDiv
	}
	if c.KiDiv != 0 {
		result += (c.KiNum * c.iSum) / c.KiDiv
	}

	return saturateByte(result)
}

// Reset arms the controller to zero its integral accumulator on the
// next Step call.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.resetRequested = true
}
