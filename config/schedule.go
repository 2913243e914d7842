// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config loads the estimator/predictor schedule constants,
// ambient default, protective thresholds, and overload/rated input
// profiles from a JSON file, falling back to the reference
// characterization's literal defaults when no file is supplied.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Schedule holds the tunable constants a host platform wires into a
// thermal.Config. Prms, when non-empty, overrides sourceinput's
// physical constants by name (RPhase, RdsOn, VBus, FSw, TRise, TFall,
// RSense, PMisc); any name not present falls back to
// sourceinput.Default's value.
type Schedule struct {
	EstimatorH            float32  `json:"estimatorH"`
	EstimatorPeriodCounts uint32   `json:"estimatorPeriodCounts"`
	EstimatorInitialState []float32 `json:"estimatorInitialState"`

	PredictorH              float32  `json:"predictorH"`
	PredictorPeriodCounts   uint32   `json:"predictorPeriodCounts"`
	PredictorOverloadCounts uint32   `json:"predictorOverloadCounts"`
	PredictorInitialState   []float32 `json:"predictorInitialState"`

	AmbientTemp       float32  `json:"ambientTemp"`
	MaxTempThresholds []float32 `json:"maxTempThresholds"`
	OverloadInputs    []float32 `json:"overloadInputs"`
	RatedInputs       []float32 `json:"ratedInputs"`

	Prms fun.Prms `json:"prms"`
}

// Default returns the reference characterization's default schedule:
// estimator h=0.1s periodCounts=10, predictor h=1.0s periodCounts=60
// overloadCounts=10, ambient 20C, thresholds [60,40,40,60],
// overload/rated input profiles as characterized for the reference
// plant.
func Default() *Schedule {
	return &Schedule{
		EstimatorH:            0.1,
		EstimatorPeriodCounts: 10,
		EstimatorInitialState: []float32{0, 0, 0},

		PredictorH:              1.0,
		PredictorPeriodCounts:   60,
		PredictorOverloadCounts: 10,
		PredictorInitialState:   []float32{0, 0, 0},

		AmbientTemp:       20.0,
		MaxTempThresholds: []float32{60, 40, 40, 60},
		OverloadInputs:    []float32{5.4168, 23.0400, 5.5027},
		RatedInputs:       []float32{5.4168, 16.0000, 4.4368},
	}
}

// Load reads a Schedule from a JSON file at fnpath, starting from
// Default and overwriting only the fields present in the file — a
// partial schedule (e.g. just a tighter set of thresholds) layers
// cleanly on top of the defaults.
func Load(fnpath string) (*Schedule, error) {
	s := Default()

	b, err := io.ReadFile(fnpath)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return s, nil
}
