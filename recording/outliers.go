package recording

import (
	"github.com/neurodsp/ieeg-extract/algorithms/common"
	"github.com/neurodsp/ieeg-extract/logging"
)

// MarkOutliers flags channels whose power fluctuation is an outlier against
// the rest of the montage. The statistic per channel is the population
// standard deviation of the squared signal; a channel is flagged when its
// statistic exceeds mean + nStd population standard deviations of the
// remaining channels' statistics. The test repeats for up to the given
// number of rounds, dropping already-flagged channels from the population
// each time, so a single very noisy contact cannot hide a moderately noisy
// one.
//
// Returns the labels of the flagged channels.
func (r *Raw) MarkOutliers(nStd float64, rounds int) []string {
	if rounds < 1 {
		rounds = 1
	}

	// Spread of the squared signal, not of the raw amplitude: a contact
	// with large power swings stands out even when its mean level is
	// ordinary.
	sig := make([]float64, r.Channels())
	for ch := range sig {
		squared := make([]float64, len(r.data[ch]))
		for i, v := range r.data[ch] {
			squared[i] = v * v
		}
		sig[ch] = common.PopStdDev(squared)
	}

	flagged := make([]bool, r.Channels())
	for round := 0; round < rounds; round++ {
		kept := make([]float64, 0, r.Channels())
		for ch, s := range sig {
			if !flagged[ch] {
				kept = append(kept, s)
			}
		}
		if len(kept) < 2 {
			break
		}

		mean, std := common.PopMeanStdDev(kept)
		cutoff := mean + nStd*std

		changed := false
		for ch, s := range sig {
			if !flagged[ch] && s > cutoff {
				flagged[ch] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var labels []string
	for ch, bad := range flagged {
		if bad {
			labels = append(labels, r.Labels[ch])
		}
	}

	if len(labels) > 0 {
		logging.Info("marked outlier channels", logging.Fields{
			"component": "recording",
			"channels":  labels,
			"n_std":     nStd,
		})
	}

	return labels
}
