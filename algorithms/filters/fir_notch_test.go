package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurodsp/ieeg-extract/algorithms/common"
)

func TestNewFIRNotchValidation(t *testing.T) {
	_, err := NewFIRNotch(500, 60, 4, 200)
	assert.Error(t, err, "even tap count has no symmetric midpoint")

	_, err = NewFIRNotch(500, 60, 0, 201)
	assert.Error(t, err, "width must be positive")

	_, err = NewFIRNotch(500, 260, 4, 201)
	assert.Error(t, err, "center above Nyquist")

	notch, err := NewFIRNotch(500, 60, 4, 413)
	require.NoError(t, err)
	center, width := notch.Center()
	assert.Equal(t, 60.0, center)
	assert.Equal(t, 4.0, width)
}

func TestFIRNotchMagnitudeResponse(t *testing.T) {
	notch, err := NewFIRNotch(500, 60, 4, 413)
	require.NoError(t, err)

	assert.Less(t, notch.MagnitudeDB(60), -30.0, "stop band at center")
	assert.InDelta(t, 0.0, notch.MagnitudeDB(10), 0.1, "pass band below the notch")
	assert.InDelta(t, 0.0, notch.MagnitudeDB(120), 0.1, "pass band above the notch")
}

func TestFIRNotchRemovesToneAndKeepsNeighbors(t *testing.T) {
	const (
		sampleRate = 500.0
		n          = 5000
	)
	notch, err := NewFIRNotch(sampleRate, 60, 4, 413)
	require.NoError(t, err)

	line := make([]float64, n)
	neural := make([]float64, n)
	for i := range line {
		ts := float64(i) / sampleRate
		line[i] = math.Sin(2 * math.Pi * 60 * ts)
		neural[i] = math.Sin(2 * math.Pi * 10 * ts)
	}

	// Judge steady-state behavior away from the filter edge transients.
	lineOut := notch.Apply(line)[1000 : n-1000]
	assert.Less(t, common.RMS(lineOut), 0.05, "line tone removed")

	neuralOut := notch.Apply(neural)[1000 : n-1000]
	ratio := common.RMS(neuralOut) / common.RMS(neural[1000:n-1000])
	assert.InDelta(t, 1.0, ratio, 0.02, "neighbor tone preserved")
}

func TestFIRNotchApplyInPlace(t *testing.T) {
	notch, err := NewFIRNotch(500, 60, 4, 413)
	require.NoError(t, err)

	signal := make([]float64, 2000)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 60 * float64(i) / 500)
	}

	expected := notch.Apply(signal)
	notch.ApplyInPlace(signal)
	assert.Equal(t, expected, signal)
}
