package config

import (
	"errors"
	"fmt"

	"github.com/neurodsp/ieeg-extract/epoch"
)

// ErrNormShapeMismatch indicates a normalization factor whose per-channel
// rows do not match the channel count of the data being normalized.
var ErrNormShapeMismatch = errors.New("config: normalization factor shape mismatch")

// NormType selects the per-channel normalization method.
type NormType int

const (
	// NormZScore subtracts the channel mean and divides by the channel
	// standard deviation.
	NormZScore NormType = 1
	// NormMeanSubtract subtracts the channel mean only.
	NormMeanSubtract NormType = 2
)

// NormFactor holds per-channel normalization statistics: one mean and one
// standard deviation per channel. Under NormMeanSubtract the Std column is
// ignored.
type NormFactor struct {
	Mean []float64
	Std  []float64
}

// Channels returns the number of channel rows in the factor.
func (nf *NormFactor) Channels() int {
	if nf == nil {
		return 0
	}
	return len(nf.Mean)
}

// Validate checks the factor against the channel count of the target data.
// A nil factor is valid and means no normalization.
func (nf *NormFactor) Validate(channels int) error {
	if nf == nil {
		return nil
	}
	if len(nf.Mean) != channels || len(nf.Std) != channels {
		return fmt.Errorf("%w: factor has %d mean / %d std rows, data has %d channels",
			ErrNormShapeMismatch, len(nf.Mean), len(nf.Std), channels)
	}
	return nil
}

// Apply normalizes one channel's samples in place. A nil factor leaves the
// samples unchanged.
func (nf *NormFactor) Apply(ch int, samples []float64, typ NormType) {
	if nf == nil {
		return
	}

	switch typ {
	case NormMeanSubtract:
		for i := range samples {
			samples[i] -= nf.Mean[ch]
		}
	default:
		for i := range samples {
			samples[i] = (samples[i] - nf.Mean[ch]) / nf.Std[ch]
		}
	}
}

// ExtractConfig carries the shared call parameters of the LFS and SBP
// extractors.
type ExtractConfig struct {
	// SampleRate is the source sampling rate of the raw tensor in Hz.
	SampleRate float64
	// TargetRate is the output sampling rate in Hz. Must not exceed
	// SampleRate.
	TargetRate float64
	// TrialWindow is the [start, end] span in seconds covered by the raw
	// tensor's timepoint axis.
	TrialWindow epoch.Window
	// OutputWindow is the [start, end] sub-span to retain in the output.
	// Must lie within TrialWindow.
	OutputWindow epoch.Window
	// Name labels the extracted signal.
	Name string
	// NormFactor gives optional per-channel normalization statistics.
	// Nil means no normalization.
	NormFactor *NormFactor
	// NormType selects the normalization method. Defaults to NormZScore.
	NormType NormType
}

// NewExtractConfig builds a config with the default normalization settings:
// no factor, z-score when one is supplied later.
func NewExtractConfig(fs, fDown float64, tw, gtw epoch.Window, name string) ExtractConfig {
	return ExtractConfig{
		SampleRate:   fs,
		TargetRate:   fDown,
		TrialWindow:  tw,
		OutputWindow: gtw,
		Name:         name,
		NormType:     NormZScore,
	}
}
