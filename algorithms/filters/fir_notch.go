package filters

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/fir"
)

// FIRNotch is a linear-phase band-stop filter for removing a narrow
// interference band, e.g. power-line noise and its harmonics. Built by
// spectral inversion of the Hamming windowed-sinc band-pass prototype.
type FIRNotch struct {
	sampleRate float64
	centerHz   float64
	widthHz    float64
	taps       []float64
}

// NewFIRNotch designs a notch centered on centerHz with a stop band of
// widthHz. The tap count must be odd so the inversion impulse lands on the
// symmetric midpoint.
func NewFIRNotch(sampleRate, centerHz, widthHz float64, numTaps int) (*FIRNotch, error) {
	if numTaps%2 == 0 {
		return nil, fmt.Errorf("filters: notch needs an odd tap count, got %d", numTaps)
	}
	if widthHz <= 0 {
		return nil, fmt.Errorf("filters: notch width must be positive, got %g Hz", widthHz)
	}

	taps, err := windowedSincBandpass(sampleRate, centerHz-widthHz/2, centerHz+widthHz/2, numTaps)
	if err != nil {
		return nil, err
	}
	normalizeGain(taps, centerHz, sampleRate)

	// Spectral inversion: pass everything except the band.
	for n := range taps {
		taps[n] = -taps[n]
	}
	taps[(numTaps-1)/2] += 1

	normalizeGain(taps, 0, sampleRate)

	return &FIRNotch{
		sampleRate: sampleRate,
		centerHz:   centerHz,
		widthHz:    widthHz,
		taps:       taps,
	}, nil
}

// Apply filters a signal and removes the filter's group delay. The result
// has the same length as the input.
func (f *FIRNotch) Apply(signal []float64) []float64 {
	return applyCompensated(f.taps, signal)
}

// ApplyInPlace filters a signal in place.
func (f *FIRNotch) ApplyInPlace(signal []float64) {
	copy(signal, f.Apply(signal))
}

// Center returns the notch center and stop-band width in Hz.
func (f *FIRNotch) Center() (centerHz, widthHz float64) {
	return f.centerHz, f.widthHz
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *FIRNotch) MagnitudeDB(freqHz float64) float64 {
	return fir.New(f.taps).MagnitudeDB(freqHz, f.sampleRate)
}
