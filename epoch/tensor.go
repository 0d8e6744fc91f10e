package epoch

import "fmt"

// Tensor is a dense batch of ieeg trials indexed by (channel, trial,
// timepoint). Storage is contiguous with the timepoint axis fastest, so a
// single channel of a single trial is an aligned sub-slice of the backing
// array.
type Tensor struct {
	data     []float64
	channels int
	trials   int
	samples  int
}

// NewTensor allocates a zeroed tensor with the given dimensions.
func NewTensor(channels, trials, samples int) (*Tensor, error) {
	if channels <= 0 || trials <= 0 || samples <= 0 {
		return nil, fmt.Errorf("epoch: invalid tensor dimensions %dx%dx%d", channels, trials, samples)
	}

	return &Tensor{
		data:     make([]float64, channels*trials*samples),
		channels: channels,
		trials:   trials,
		samples:  samples,
	}, nil
}

// Channels returns the number of recording channels.
func (t *Tensor) Channels() int { return t.channels }

// Trials returns the number of trials in the batch.
func (t *Tensor) Trials() int { return t.trials }

// Samples returns the number of timepoints per trial.
func (t *Tensor) Samples() int { return t.samples }

// At returns the sample at (channel, trial, timepoint).
func (t *Tensor) At(ch, trial, sample int) float64 {
	return t.data[t.offset(ch, trial)+sample]
}

// Set stores a sample at (channel, trial, timepoint).
func (t *Tensor) Set(ch, trial, sample int, v float64) {
	t.data[t.offset(ch, trial)+sample] = v
}

// Row returns one channel of one trial as a slice backed by the tensor.
// Mutating the returned slice mutates the tensor.
func (t *Tensor) Row(ch, trial int) []float64 {
	off := t.offset(ch, trial)
	return t.data[off : off+t.samples : off+t.samples]
}

// Trial returns the (channel x timepoint) slice of one trial. The inner
// slices are views backed by the tensor.
func (t *Tensor) Trial(trial int) [][]float64 {
	out := make([][]float64, t.channels)
	for ch := 0; ch < t.channels; ch++ {
		out[ch] = t.Row(ch, trial)
	}
	return out
}

// SetRow copies samples into one channel of one trial. The slice length must
// match the tensor's timepoint count.
func (t *Tensor) SetRow(ch, trial int, samples []float64) error {
	if len(samples) != t.samples {
		return fmt.Errorf("epoch: row length %d does not match tensor timepoints %d", len(samples), t.samples)
	}

	copy(t.Row(ch, trial), samples)
	return nil
}

func (t *Tensor) offset(ch, trial int) int {
	return (ch*t.trials + trial) * t.samples
}
