// Package bandpower computes windowed band-limited envelope power for a
// single trial of multichannel data: band-pass filter, magnitude envelope,
// decimation, output windowing and per-channel normalization.
package bandpower

import (
	"errors"
	"fmt"
	"math"

	"github.com/neurodsp/ieeg-extract/algorithms/filters"
	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/extract/config"
)

// ErrInvalidDecimation indicates a decimation factor below 1.
var ErrInvalidDecimation = errors.New("bandpower: decimation factor must be >= 1")

// Params is the call contract of the per-trial band-power routine.
type Params struct {
	// SampleRate is the raw sampling rate in Hz.
	SampleRate float64
	// Band holds the [low, high] pass-band edges in Hz.
	Band [2]float64
	// TrialWindow is the span in seconds covered by the raw timepoint axis.
	TrialWindow epoch.Window
	// OutputWindow is the sub-span to retain, inclusive on both ends.
	OutputWindow epoch.Window
	// FilterTaps is the FIR band-pass length.
	FilterTaps int
	// Decimation keeps every n-th envelope sample. Must be >= 1.
	Decimation int
	// NormFactor gives optional per-channel normalization statistics.
	NormFactor *config.NormFactor
	// NormType selects the normalization method.
	NormType config.NormType
}

// Extract processes one trial given as a (channel x timepoint) slice and
// returns the windowed band-limited envelope per channel. Every channel of
// the trial must have the same length.
func Extract(trial [][]float64, p Params) ([][]float64, error) {
	if len(trial) == 0 || len(trial[0]) == 0 {
		return nil, fmt.Errorf("bandpower: empty trial")
	}
	if p.Decimation < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDecimation, p.Decimation)
	}
	if err := p.NormFactor.Validate(len(trial)); err != nil {
		return nil, err
	}

	bp, err := filters.NewFIRBandpass(p.SampleRate, p.Band[0], p.Band[1], p.FilterTaps)
	if err != nil {
		return nil, err
	}

	decimated := make([][]float64, len(trial))
	for ch, raw := range trial {
		if len(raw) != len(trial[0]) {
			return nil, fmt.Errorf("bandpower: channel %d has %d samples, expected %d", ch, len(raw), len(trial[0]))
		}

		env := envelope(bp.Apply(raw), p.Decimation)
		decimated[ch] = decimate(env, p.Decimation)
	}

	// The decimated samples span the full trial window; select the output
	// sub-window on that time axis.
	times := p.TrialWindow.TimeAxis(len(decimated[0]))
	idx := epoch.MaskIndices(times, p.OutputWindow)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: output window [%g, %g] selects no samples of [%g, %g]",
			epoch.ErrInvalidWindow, p.OutputWindow.Start, p.OutputWindow.End,
			p.TrialWindow.Start, p.TrialWindow.End)
	}

	out := make([][]float64, len(trial))
	for ch := range decimated {
		windowed := make([]float64, len(idx))
		for i, j := range idx {
			windowed[i] = decimated[ch][j]
		}
		p.NormFactor.Apply(ch, windowed, p.NormType)
		out[ch] = windowed
	}

	return out, nil
}

// envelope rectifies the band-limited signal and smooths it with a moving
// average of the decimation length, so the subsequent stride decimation does
// not alias envelope ripple.
func envelope(filtered []float64, smooth int) []float64 {
	rectified := make([]float64, len(filtered))
	for i, v := range filtered {
		rectified[i] = math.Abs(v)
	}

	if smooth < 2 {
		return rectified
	}

	env := make([]float64, len(rectified))
	half := smooth / 2
	for i := range rectified {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(rectified) {
			hi = len(rectified) - 1
		}

		acc := 0.0
		for j := lo; j <= hi; j++ {
			acc += rectified[j]
		}
		env[i] = acc / float64(hi-lo+1)
	}
	return env
}

// decimate keeps every factor-th sample starting at index 0.
func decimate(signal []float64, factor int) []float64 {
	if factor < 2 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	out := make([]float64, 0, (len(signal)+factor-1)/factor)
	for i := 0; i < len(signal); i += factor {
		out = append(out, signal[i])
	}
	return out
}
