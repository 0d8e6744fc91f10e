package extractors

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/neurodsp/ieeg-extract/algorithms/bandpower"
	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/extract/config"
	"github.com/neurodsp/ieeg-extract/logging"
)

// Spike-band parameters. The 300-1000 Hz envelope is the standard proxy for
// multiunit spiking activity in ieeg recordings.
const (
	SpikeBandLowHz  = 300.0
	SpikeBandHighHz = 1000.0

	spikeBandTaps = 200
)

// DecimationFactor returns the integer decimation corresponding to the rate
// reduction from fs to fDown, rounded to the nearest integer.
func DecimationFactor(fs, fDown float64) int {
	return int(math.Round(fs / fDown))
}

// ExtractSBP extracts spike-band power from a raw trial tensor. Each trial
// is band-pass filtered to 300-1000 Hz with a 200-tap FIR filter, envelope
// extracted, decimated by round(fs/fDown), cut to the output window and
// normalized per channel.
//
// Single-channel tensors are handled as the degenerate one-channel case; the
// output keeps its leading singleton channel axis.
func ExtractSBP(data *epoch.Tensor, cfg config.ExtractConfig) (*ExtractedSignal, *mat.Dense, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "sbp_extractor",
		"name":      cfg.Name,
	})

	if data == nil {
		return nil, nil, fmt.Errorf("extractors: nil input tensor")
	}
	if err := cfg.NormFactor.Validate(data.Channels()); err != nil {
		return nil, nil, err
	}
	if !cfg.TrialWindow.Contains(cfg.OutputWindow) {
		return nil, nil, fmt.Errorf("%w: output window [%g, %g] not within trial window [%g, %g]",
			epoch.ErrInvalidWindow, cfg.OutputWindow.Start, cfg.OutputWindow.End,
			cfg.TrialWindow.Start, cfg.TrialWindow.End)
	}

	decim := DecimationFactor(cfg.SampleRate, cfg.TargetRate)
	if decim < 1 {
		return nil, nil, fmt.Errorf("%w: fs=%g Hz, fDown=%g Hz", bandpower.ErrInvalidDecimation, cfg.SampleRate, cfg.TargetRate)
	}

	params := bandpower.Params{
		SampleRate:   cfg.SampleRate,
		Band:         [2]float64{SpikeBandLowHz, SpikeBandHighHz},
		TrialWindow:  cfg.TrialWindow,
		OutputWindow: cfg.OutputWindow,
		FilterTaps:   spikeBandTaps,
		Decimation:   decim,
		NormFactor:   cfg.NormFactor,
		NormType:     cfg.NormType,
	}

	var out *epoch.Tensor
	for trial := 0; trial < data.Trials(); trial++ {
		channels, err := bandpower.Extract(data.Trial(trial), params)
		if err != nil {
			return nil, nil, fmt.Errorf("extractors: trial %d: %w", trial, err)
		}

		if out == nil {
			out, err = epoch.NewTensor(data.Channels(), data.Trials(), len(channels[0]))
			if err != nil {
				return nil, nil, err
			}
		}

		for ch := range channels {
			if err := out.SetRow(ch, trial, channels[ch]); err != nil {
				return nil, nil, fmt.Errorf("extractors: trial %d: %w", trial, err)
			}
		}
	}

	sig := &ExtractedSignal{
		Name:       cfg.Name,
		Data:       out,
		SampleRate: cfg.TargetRate,
		Window:     cfg.OutputWindow,
		Band:       [2]float64{SpikeBandLowHz, SpikeBandHighHz},
	}

	logger.Debug("extracted spike-band power", logging.Fields{
		"channels":   out.Channels(),
		"trials":     out.Trials(),
		"timepoints": out.Samples(),
		"decimation": decim,
	})

	return sig, sig.PowerSummary(), nil
}
