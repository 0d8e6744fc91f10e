// Package extractors implements the per-trial ieeg signal extraction
// pipelines: low-frequency signal (LFS) and spike-band power (SBP).
package extractors

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/neurodsp/ieeg-extract/algorithms/common"
	"github.com/neurodsp/ieeg-extract/epoch"
)

// ErrRateMismatch indicates a target rate above the source rate.
var ErrRateMismatch = errors.New("extractors: target rate exceeds source rate")

// ExtractedSignal is the windowed band-limited output of one extraction run.
type ExtractedSignal struct {
	// Name is the caller-supplied label.
	Name string
	// Data holds the extracted (channel x trial x timepoint) samples.
	Data *epoch.Tensor
	// SampleRate is the output sampling rate in Hz.
	SampleRate float64
	// Window is the output time window in seconds.
	Window epoch.Window
	// Band is the [low, high] frequency content in Hz.
	Band [2]float64
}

// PowerSummary returns the (channel x trial) matrix of mean log10 power:
// each entry is the time average of log10(x^2) over the extracted window.
func (s *ExtractedSignal) PowerSummary() *mat.Dense {
	summary := mat.NewDense(s.Data.Channels(), s.Data.Trials(), nil)
	for ch := 0; ch < s.Data.Channels(); ch++ {
		for trial := 0; trial < s.Data.Trials(); trial++ {
			summary.Set(ch, trial, common.MeanLogPower(s.Data.Row(ch, trial)))
		}
	}
	return summary
}
