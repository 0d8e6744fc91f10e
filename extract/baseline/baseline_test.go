package baseline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/extract/config"
)

func TestFactorsPoolsTrialsAndWindow(t *testing.T) {
	tensor, err := epoch.NewTensor(2, 2, 101)
	require.NoError(t, err)

	// Channel 0 alternates 4 and 6, channel 1 is constant 10
	for trial := 0; trial < 2; trial++ {
		for s := 0; s < 101; s++ {
			if s%2 == 0 {
				tensor.Set(0, trial, s, 4)
			} else {
				tensor.Set(0, trial, s, 6)
			}
			tensor.Set(1, trial, s, 10)
		}
	}

	tw := epoch.Window{Start: -1, End: 0}
	factor, err := Factors(tensor, tw, tw)
	require.NoError(t, err)
	require.Equal(t, 2, factor.Channels())

	assert.InDelta(t, 5.0, factor.Mean[0], 0.02)
	assert.InDelta(t, 1.0, factor.Std[0], 0.02)
	assert.InDelta(t, 10.0, factor.Mean[1], 1e-12)
	assert.InDelta(t, 0.0, factor.Std[1], 1e-12)
}

func TestFactorsZScoreBaselineWindow(t *testing.T) {
	tensor, err := epoch.NewTensor(1, 3, 201)
	require.NoError(t, err)

	// Offset sine: known mean, nonzero spread
	for trial := 0; trial < 3; trial++ {
		for s := 0; s < 201; s++ {
			tensor.Set(0, trial, s, 2+math.Sin(float64(s)*0.37+float64(trial)))
		}
	}

	tw := epoch.Window{Start: -1, End: 1}
	btw := epoch.Window{Start: -1, End: 0}

	factor, err := Factors(tensor, tw, btw)
	require.NoError(t, err)

	// Z-scoring the baseline window with its own factor recenters it
	times := tw.TimeAxis(201)
	idx := epoch.MaskIndices(times, btw)

	pooled := make([]float64, 0, 3*len(idx))
	for trial := 0; trial < 3; trial++ {
		row := tensor.Row(0, trial)
		for _, j := range idx {
			pooled = append(pooled, (row[j]-factor.Mean[0])/factor.Std[0])
		}
	}

	sum := 0.0
	for _, v := range pooled {
		sum += v
	}
	assert.InDelta(t, 0.0, sum/float64(len(pooled)), 1e-9)
}

func TestFactorsEmptyWindow(t *testing.T) {
	tensor, err := epoch.NewTensor(1, 1, 10)
	require.NoError(t, err)

	_, err = Factors(tensor, epoch.Window{Start: 0, End: 1}, epoch.Window{Start: 5, End: 6})
	require.ErrorIs(t, err, epoch.ErrInvalidWindow)
}

func TestFactorsValidateAgainstTensor(t *testing.T) {
	tensor, err := epoch.NewTensor(3, 1, 10)
	require.NoError(t, err)

	tw := epoch.Window{Start: 0, End: 1}
	factor, err := Factors(tensor, tw, tw)
	require.NoError(t, err)

	require.NoError(t, factor.Validate(3))
	require.ErrorIs(t, factor.Validate(2), config.ErrNormShapeMismatch)
}
