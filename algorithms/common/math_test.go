package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndStdDev(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(data), 1e-12)

	mean, std := MeanStdDev(data)
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, StandardDeviation(data), std, 1e-12)
}

func TestEmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, StandardDeviation(nil))
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, MeanLogPower(nil))
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, 5.0, RMS([]float64{5, -5, 5, -5}), 1e-12)
}

func TestMeanLogPowerConstantAmplitude(t *testing.T) {
	signal := []float64{3, -3, 3, -3, 3}
	assert.InDelta(t, math.Log10(9), MeanLogPower(signal), 1e-12)
}

func TestMeanLogPowerZeroSample(t *testing.T) {
	assert.True(t, math.IsInf(MeanLogPower([]float64{1, 0, 1}), -1))
}
