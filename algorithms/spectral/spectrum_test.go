package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sineWave(freq, sampleRate float64, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return signal
}

func TestMagnitudeBins(t *testing.T) {
	assert.Empty(t, Magnitude(nil))
	assert.Len(t, Magnitude(make([]float64, 256)), 129)
}

func TestDominantFrequency(t *testing.T) {
	const fs = 1000.0

	signal := sineWave(50, fs, 1000)
	assert.InDelta(t, 50.0, DominantFrequency(signal, fs), 1.0)

	signal = sineWave(123, fs, 1000)
	assert.InDelta(t, 123.0, DominantFrequency(signal, fs), 1.0)
}

func TestBandPowerConcentration(t *testing.T) {
	const fs = 1000.0
	signal := sineWave(100, fs, 1000)

	inBand := BandPower(signal, fs, 80, 120)
	outOfBand := BandPower(signal, fs, 200, 400)

	assert.Greater(t, inBand, 0.0)
	assert.Greater(t, inBand, 100*outOfBand)
}
