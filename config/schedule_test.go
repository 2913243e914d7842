// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultScheduleConstants(t *testing.T) {
	s := Default()
	assert.Equal(t, float32(0.1), s.EstimatorH)
	assert.Equal(t, uint32(10), s.EstimatorPeriodCounts)
	assert.Equal(t, float32(1.0), s.PredictorH)
	assert.Equal(t, uint32(60), s.PredictorPeriodCounts)
	assert.Equal(t, uint32(10), s.PredictorOverloadCounts)
	assert.Equal(t, float32(20.0), s.AmbientTemp)
	assert.Equal(t, []float32{60, 40, 40, 60}, s.MaxTempThresholds)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "schedule.json")
	err := os.WriteFile(fn, []byte(`{"maxTempThresholds":[10,10,10,10]}`), 0644)
	assert.NoError(t, err)

	s, err := Load(fn)
	assert.NoError(t, err)
	assert.Equal(t, []float32{10, 10, 10, 10}, s.MaxTempThresholds)
	// everything else should still carry the default
	assert.Equal(t, float32(0.1), s.EstimatorH)
	assert.Equal(t, uint32(60), s.PredictorPeriodCounts)
}

func TestLoadDecodesPrms(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "schedule.json")
	err := os.WriteFile(fn, []byte(`{"prms":[{"n":"VBus","v":24}]}`), 0644)
	assert.NoError(t, err)

	s, err := Load(fn)
	assert.NoError(t, err)
	if assert.Len(t, s.Prms, 1) {
		assert.Equal(t, "VBus", s.Prms[0].N)
		assert.Equal(t, 24.0, s.Prms[0].V)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}
