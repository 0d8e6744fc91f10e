package recording

import (
	"fmt"
	"math"

	"github.com/neurodsp/ieeg-extract/algorithms/filters"
	"github.com/neurodsp/ieeg-extract/logging"
)

// SetAverageReference re-references the recording in place to the common
// average: at each timepoint the mean across all channels is subtracted
// from every channel. Mark and drop bad channels first, or their noise
// leaks into the reference.
func (r *Raw) SetAverageReference() {
	if r.Channels() < 2 {
		return
	}

	for s := 0; s < r.Samples(); s++ {
		mean := 0.0
		for ch := range r.data {
			mean += r.data[ch][s]
		}
		mean /= float64(len(r.data))

		for ch := range r.data {
			r.data[ch][s] -= mean
		}
	}

	logging.Debug("applied common average reference", logging.Fields{
		"component": "recording",
		"channels":  r.Channels(),
	})
}

// RemoveLineNoise notches out power-line interference in place at each of
// the given frequencies (e.g. 60, 120, 180 Hz), each with a stop band of
// widthHz. The tap count follows the Hamming transition-width rule for the
// requested stop band, so narrower notches cost longer filters.
func (r *Raw) RemoveLineNoise(freqs []float64, widthHz float64) error {
	if len(freqs) == 0 {
		return fmt.Errorf("recording: no line frequencies given")
	}

	// Hamming transition width is about 3.3/N normalized; odd length keeps
	// the notch midpoint on a sample.
	numTaps := int(math.Ceil(3.3 * r.SampleRate / widthHz))
	if numTaps%2 == 0 {
		numTaps++
	}

	for _, freq := range freqs {
		notch, err := filters.NewFIRNotch(r.SampleRate, freq, widthHz, numTaps)
		if err != nil {
			return fmt.Errorf("recording: line notch at %g Hz: %w", freq, err)
		}

		for ch := range r.data {
			notch.ApplyInPlace(r.data[ch])
		}
	}

	logging.Debug("removed line noise", logging.Fields{
		"component": "recording",
		"freqs_hz":  freqs,
		"width_hz":  widthHz,
	})

	return nil
}

// LineHarmonics returns lineHz and its harmonics up to (not including) the
// Nyquist frequency, the conventional frequency set for RemoveLineNoise.
func (r *Raw) LineHarmonics(lineHz float64) []float64 {
	var freqs []float64
	for f := lineHz; f < r.SampleRate/2; f += lineHz {
		freqs = append(freqs, f)
	}
	return freqs
}
