package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// MeanStdDev returns the mean and sample standard deviation in one pass
func MeanStdDev(data []float64) (mean, std float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return stat.MeanStdDev(data, nil)
}

// PopMeanStdDev returns the mean and population standard deviation
func PopMeanStdDev(data []float64) (mean, std float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return stat.PopMeanStdDev(data, nil)
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MeanLogPower returns the time-averaged log10 power of a signal:
// mean over samples of log10(x^2). A zero sample yields -Inf rather than a
// hidden floor value.
func MeanLogPower(signal []float64) float64 {
	if len(signal) == 0 {
		return 0.0
	}

	acc := 0.0
	for _, v := range signal {
		acc += math.Log10(v * v)
	}
	return acc / float64(len(signal))
}
