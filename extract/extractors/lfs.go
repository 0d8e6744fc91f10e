package extractors

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	"gonum.org/v1/gonum/mat"

	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/extract/config"
	"github.com/neurodsp/ieeg-extract/logging"
)

// ExtractLFS extracts the low-frequency signal from a raw trial tensor:
// each trial is resampled to cfg.TargetRate with an anti-aliasing polyphase
// resampler, cut to the output window and normalized per channel.
//
// The returned signal covers the band [0, TargetRate/2] Hz. The second
// return value is the (channel x trial) mean log10 power of the result.
func ExtractLFS(data *epoch.Tensor, cfg config.ExtractConfig) (*ExtractedSignal, *mat.Dense, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "lfs_extractor",
		"name":      cfg.Name,
	})

	if data == nil {
		return nil, nil, fmt.Errorf("extractors: nil input tensor")
	}
	if cfg.TargetRate > cfg.SampleRate {
		return nil, nil, fmt.Errorf("%w: fDown=%g Hz, fs=%g Hz", ErrRateMismatch, cfg.TargetRate, cfg.SampleRate)
	}
	if err := cfg.NormFactor.Validate(data.Channels()); err != nil {
		return nil, nil, err
	}
	if !cfg.TrialWindow.Contains(cfg.OutputWindow) {
		return nil, nil, fmt.Errorf("%w: output window [%g, %g] not within trial window [%g, %g]",
			epoch.ErrInvalidWindow, cfg.OutputWindow.Start, cfg.OutputWindow.End,
			cfg.TrialWindow.Start, cfg.TrialWindow.End)
	}

	needResample := cfg.TargetRate != cfg.SampleRate

	var rs *resample.Resampler
	downSamples := data.Samples()
	if needResample {
		var err error
		rs, err = resample.NewForRates(cfg.SampleRate, cfg.TargetRate)
		if err != nil {
			return nil, nil, fmt.Errorf("extractors: resampler design: %w", err)
		}
		downSamples = rs.PredictOutputLen(data.Samples())
	}

	times := cfg.TrialWindow.TimeAxis(downSamples)
	idx := epoch.MaskIndices(times, cfg.OutputWindow)
	if len(idx) == 0 {
		return nil, nil, fmt.Errorf("%w: output window [%g, %g] selects no samples at %g Hz",
			epoch.ErrInvalidWindow, cfg.OutputWindow.Start, cfg.OutputWindow.End, cfg.TargetRate)
	}

	out, err := epoch.NewTensor(data.Channels(), data.Trials(), len(idx))
	if err != nil {
		return nil, nil, err
	}

	for trial := 0; trial < data.Trials(); trial++ {
		for ch := 0; ch < data.Channels(); ch++ {
			// The downsampled buffer is always rebuilt from the current
			// trial's row, including the equal-rate passthrough case, so no
			// trial can see a stale neighbor's samples.
			down := data.Row(ch, trial)
			if needResample {
				rs.Reset()
				down = rs.Process(down)
			}

			windowed := make([]float64, len(idx))
			for i, j := range idx {
				windowed[i] = down[j]
			}
			cfg.NormFactor.Apply(ch, windowed, cfg.NormType)

			copy(out.Row(ch, trial), windowed)
		}
	}

	sig := &ExtractedSignal{
		Name:       cfg.Name,
		Data:       out,
		SampleRate: cfg.TargetRate,
		Window:     cfg.OutputWindow,
		Band:       [2]float64{0, cfg.TargetRate / 2},
	}

	logger.Debug("extracted low-frequency signal", logging.Fields{
		"channels":   out.Channels(),
		"trials":     out.Trials(),
		"timepoints": out.Samples(),
		"rate_hz":    cfg.TargetRate,
	})

	return sig, sig.PowerSummary(), nil
}
