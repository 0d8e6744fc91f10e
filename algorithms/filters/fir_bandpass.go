package filters

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/filter/fir"
	"github.com/cwbudde/algo-dsp/dsp/window"
)

// FIRBandpass is a linear-phase band-pass filter built from a Hamming
// windowed-sinc prototype. Apply compensates the filter's group delay, so
// the output stays time-aligned with the input.
type FIRBandpass struct {
	sampleRate float64
	lowHz      float64
	highHz     float64
	taps       []float64
}

// NewFIRBandpass designs a band-pass filter with numTaps coefficients.
//
// Parameters:
//   - sampleRate: sampling rate in Hz
//   - lowHz, highHz: band edges in Hz, 0 < lowHz < highHz < Nyquist
//   - numTaps: FIR length; more taps give a sharper transition band
func NewFIRBandpass(sampleRate, lowHz, highHz float64, numTaps int) (*FIRBandpass, error) {
	taps, err := windowedSincBandpass(sampleRate, lowHz, highHz, numTaps)
	if err != nil {
		return nil, err
	}

	// Scale for unity gain at the band center.
	center := (lowHz + highHz) / 2
	normalizeGain(taps, center, sampleRate)

	return &FIRBandpass{
		sampleRate: sampleRate,
		lowHz:      lowHz,
		highHz:     highHz,
		taps:       taps,
	}, nil
}

// Apply filters a signal and removes the filter's group delay. The result
// has the same length as the input.
func (f *FIRBandpass) Apply(signal []float64) []float64 {
	return applyCompensated(f.taps, signal)
}

// Taps returns a copy of the designed coefficients.
func (f *FIRBandpass) Taps() []float64 {
	taps := make([]float64, len(f.taps))
	copy(taps, f.taps)
	return taps
}

// Band returns the configured band edges in Hz.
func (f *FIRBandpass) Band() (lowHz, highHz float64) {
	return f.lowHz, f.highHz
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *FIRBandpass) MagnitudeDB(freqHz float64) float64 {
	return fir.New(f.taps).MagnitudeDB(freqHz, f.sampleRate)
}

// windowedSincBandpass designs Hamming windowed-sinc band-pass coefficients:
// the difference of two low-pass impulse responses at the band edges,
// centered on the filter midpoint.
func windowedSincBandpass(sampleRate, lowHz, highHz float64, numTaps int) ([]float64, error) {
	nyquist := sampleRate / 2
	if lowHz <= 0 || highHz <= lowHz || highHz >= nyquist {
		return nil, fmt.Errorf("filters: band [%g, %g] Hz invalid for sample rate %g Hz", lowHz, highHz, sampleRate)
	}
	if numTaps < 3 {
		return nil, fmt.Errorf("filters: need at least 3 taps, got %d", numTaps)
	}

	win, err := window.Hamming(numTaps)
	if err != nil {
		return nil, fmt.Errorf("filters: window design: %w", err)
	}

	fl := lowHz / sampleRate
	fh := highHz / sampleRate
	mid := float64(numTaps-1) / 2

	taps := make([]float64, numTaps)
	for n := range taps {
		x := float64(n) - mid
		taps[n] = (2*fh*sinc(2*fh*x) - 2*fl*sinc(2*fl*x)) * win[n]
	}
	return taps, nil
}

// normalizeGain scales taps in place for unity magnitude at freqHz.
func normalizeGain(taps []float64, freqHz, sampleRate float64) {
	gain := cmplx.Abs(fir.New(taps).Response(freqHz, sampleRate))
	if gain > 0 {
		for n := range taps {
			taps[n] /= gain
		}
	}
}

// applyCompensated runs a linear-phase FIR over the signal and shifts the
// output back by the group delay, padding past the end so the trailing
// samples are fully formed. The result has the same length as the input.
func applyCompensated(taps, signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}

	delay := (len(taps) - 1) / 2

	padded := make([]float64, len(signal)+delay)
	copy(padded, signal)

	filtered := make([]float64, len(padded))
	fir.New(taps).ProcessBlockTo(filtered, padded)

	return filtered[delay:]
}

// sinc is the normalized sinc function sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}
