// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package torque implements the stepper-motor torque manager: an
// indexed setpoint table with a saturating setpoint limit, applied
// to an externally supplied torque-setting capability only when the
// limited setpoint or feedforward value actually changes. It is a
// collaborator outside the thermal-overload core; its
// setpoint limit is the lever the overload predictor's admit decision
// tightens.
package torque

// Setpoint selector indexes into the profile table, in motion-phase
// order.
const (
	Off = iota
	Idle
	AccelPlus
	AccelMinus
	Cruise
	DecelPlus
	DecelMinus
	Full
	setpointCount
)

// SetTorque is the capability a Manager invokes to actually apply a
// torque value downstream; it is supplied at construction.
type SetTorque interface {
	SetTorque(value uint8)
}

// SetTorqueFunc adapts a plain function to the SetTorque interface.
type SetTorqueFunc func(value uint8)

// SetTorque calls f(value).
func (f SetTorqueFunc) SetTorque(value uint8) { f(value) }

// Manager tracks the active torque setpoint/feedforward, applies a
// saturating limit, and edge-triggers application of the combined
// value via a SetTorque capability. The zero value is usable with
// setTorque == nil (ForegroundTask becomes a no-op); construct with
// New to wire a capability.
type Manager struct {
	setpointLimit uint8
	setpoints     [setpointCount]uint8

	activeSetpointIndex uint8
	activeSetpointValue uint8
	lastSetpointValue   uint8
	activeFeedforward   uint8
	lastFeedforward     uint8

	setTorque SetTorque
}

// New builds a Manager with the given setpoint table (indexed by the
// constants above) and setTorque capability.
func New(setpoints [setpointCount]uint8, setTorque SetTorque) *Manager {
	return &Manager{
		setpoints:     setpoints,
		setpointLimit: 0xFF,
		setTorque:     setTorque,
	}
}

func applyLimit(value, limit uint8) uint8 {
	if value > limit {
		return limit
	}
	return value
}

// SetTorqueByIndex selects the setpoint table entry at index, applies
// the current setpoint limit, and returns the resulting active
// setpoint value. An out-of-range index leaves the active setpoint
// unchanged and simply returns its current value.
func (m *Manager) SetTorqueByIndex(index uint8) uint8 {
	if m == nil {
		return 0
	}
	if int(index) < setpointCount {
		m.activeSetpointValue = applyLimit(m.setpoints[index], m.setpointLimit)
		m.activeSetpointIndex = index
	}
	return m.activeSetpointValue
}

// SetSetpointLimit installs a new saturating limit, re-clamps the
// currently active setpoint against it, and returns the resulting
// value.
func (m *Manager) SetSetpointLimit(limit uint8) uint8 {
	if m == nil {
		return 0
	}
	m.setpointLimit = limit
	m.activeSetpointValue = applyLimit(m.activeSetpointValue, m.setpointLimit)
	return m.activeSetpointValue
}

// SetFeedforwardValue installs the feedforward term added to the
// setpoint when ForegroundTask applies it.
func (m *Manager) SetFeedforwardValue(feedforward uint8) uint8 {
	if m == nil {
		return 0
	}
	m.activeFeedforward = feedforward
	return m.activeFeedforward
}

// ForegroundTask applies the limited setpoint+feedforward via the
// SetTorque capability, but only when either value has changed since
// the last application. The edge trigger keeps the downstream torque
// command quiet during steady operation.
func (m *Manager) ForegroundTask() {
	if m == nil || m.setTorque == nil {
		return
	}
	changeNeeded := m.lastSetpointValue != m.activeSetpointValue || m.lastFeedforward != m.activeFeedforward
	if !changeNeeded {
		return
	}
	limited := applyLimit(m.activeSetpointValue+m.activeFeedforward, m.setpointLimit)
	m.setTorque.SetTorque(limited)
	m.lastSetpointValue = m.activeSetpointValue
	m.lastFeedforward = m.activeFeedforward
}
