package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Magnitude computes the single-sided magnitude spectrum of a real signal
// using mjibson/go-dsp. The result has len(signal)/2+1 bins from DC to
// Nyquist.
func Magnitude(signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	spectrum := fft.FFTReal(signal)

	bins := len(signal)/2 + 1
	mag := make([]float64, bins)
	for i := 0; i < bins; i++ {
		mag[i] = cmplx.Abs(spectrum[i])
	}
	return mag
}

// BandPower sums the squared magnitude of all bins whose center frequency
// falls within [lowHz, highHz].
func BandPower(signal []float64, sampleRate, lowHz, highHz float64) float64 {
	mag := Magnitude(signal)
	if len(mag) == 0 {
		return 0.0
	}

	binWidth := sampleRate / float64(len(signal))
	power := 0.0
	for i, m := range mag {
		freq := float64(i) * binWidth
		if freq >= lowHz && freq <= highHz {
			power += m * m
		}
	}
	return power
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(signal []float64, sampleRate float64) float64 {
	mag := Magnitude(signal)
	if len(mag) < 2 {
		return 0.0
	}

	binWidth := sampleRate / float64(len(signal))
	best := 1
	for i := 2; i < len(mag); i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}

	if math.IsNaN(mag[best]) {
		return 0.0
	}
	return float64(best) * binWidth
}
