// Package baseline estimates per-channel normalization statistics from a
// baseline epoch, so task windows can be z-scored against pre-stimulus
// activity.
package baseline

import (
	"fmt"

	"github.com/neurodsp/ieeg-extract/algorithms/common"
	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/extract/config"
)

// Factors pools each channel's samples over all trials and the timepoints of
// the baseline window btw, and returns the per-channel (mean, std) factor.
// tw is the span covered by the tensor's timepoint axis.
func Factors(t *epoch.Tensor, tw, btw epoch.Window) (*config.NormFactor, error) {
	if t == nil {
		return nil, fmt.Errorf("baseline: nil input tensor")
	}

	times := tw.TimeAxis(t.Samples())
	idx := epoch.MaskIndices(times, btw)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: baseline window [%g, %g] selects no samples of [%g, %g]",
			epoch.ErrInvalidWindow, btw.Start, btw.End, tw.Start, tw.End)
	}

	factor := &config.NormFactor{
		Mean: make([]float64, t.Channels()),
		Std:  make([]float64, t.Channels()),
	}

	pooled := make([]float64, 0, t.Trials()*len(idx))
	for ch := 0; ch < t.Channels(); ch++ {
		pooled = pooled[:0]
		for trial := 0; trial < t.Trials(); trial++ {
			row := t.Row(ch, trial)
			for _, j := range idx {
				pooled = append(pooled, row[j])
			}
		}
		factor.Mean[ch], factor.Std[ch] = common.MeanStdDev(pooled)
	}

	return factor, nil
}
