// Package recording loads continuous multichannel ieeg recordings from
// EDF/EDF+ files and cuts them into event-aligned trial tensors.
package recording

import (
	"fmt"
	"io"
	"math"

	"github.com/OpenPSG/edf"

	"github.com/neurodsp/ieeg-extract/epoch"
	"github.com/neurodsp/ieeg-extract/logging"
)

// Raw is a continuous multichannel recording held in memory.
type Raw struct {
	// Labels holds the channel labels in signal order.
	Labels []string
	// SampleRate is the common sampling rate of all channels in Hz.
	SampleRate float64

	data [][]float64
}

// OpenEDF reads all signals of an EDF/EDF+ file into memory. Every signal
// must share one sampling rate; mixed-rate files (e.g. ieeg plus a slow
// annotation channel) should be split upstream.
//
// Sample decoding goes through the OpenPSG EDF reader; only the layout
// fields the reader keeps private (signal count, record duration, samples
// per record) are parsed here from the fixed-offset header.
func OpenEDF(rs io.ReadSeeker) (*Raw, error) {
	layout, err := readLayout(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("recording: rewind: %w", err)
	}
	reader, err := edf.Open(rs)
	if err != nil {
		return nil, fmt.Errorf("recording: open edf: %w", err)
	}

	raw := &Raw{
		Labels:     layout.labels,
		SampleRate: layout.sampleRate,
		data:       make([][]float64, len(layout.labels)),
	}

	total := layout.dataRecords * layout.samplesPerRecord
	for i := range raw.data {
		sr, err := reader.Signal(i)
		if err != nil {
			return nil, fmt.Errorf("recording: signal %d: %w", i, err)
		}

		buf := make([]float64, total)
		n := 0
		for n < total {
			m, err := sr.Read(buf[n:])
			n += m
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("recording: signal %d: %w", i, err)
			}
		}
		raw.data[i] = buf[:n]
	}

	logging.Debug("loaded edf recording", logging.Fields{
		"component": "recording",
		"channels":  len(raw.Labels),
		"rate_hz":   raw.SampleRate,
		"samples":   raw.Samples(),
	})

	return raw, nil
}

// Channels returns the number of channels.
func (r *Raw) Channels() int { return len(r.data) }

// Samples returns the number of timepoints per channel.
func (r *Raw) Samples() int {
	if len(r.data) == 0 {
		return 0
	}
	return len(r.data[0])
}

// Channel returns one channel's samples backed by the recording.
func (r *Raw) Channel(ch int) []float64 { return r.data[ch] }

// Epochs cuts one fixed-length trial per event onset. Each trial covers
// [onset+tw.Start, onset+tw.End] seconds of the recording; an onset whose
// trial would run past either end of the recording is an error.
func (r *Raw) Epochs(onsets []float64, tw epoch.Window) (*epoch.Tensor, error) {
	if len(onsets) == 0 {
		return nil, fmt.Errorf("recording: no event onsets")
	}

	samples := int(math.Round(tw.Duration()*r.SampleRate)) + 1
	tensor, err := epoch.NewTensor(r.Channels(), len(onsets), samples)
	if err != nil {
		return nil, err
	}

	for trial, onset := range onsets {
		start := int(math.Round((onset + tw.Start) * r.SampleRate))
		if start < 0 || start+samples > r.Samples() {
			return nil, fmt.Errorf("%w: trial %d at onset %gs runs outside the recording",
				epoch.ErrInvalidWindow, trial, onset)
		}

		for ch := 0; ch < r.Channels(); ch++ {
			copy(tensor.Row(ch, trial), r.data[ch][start:start+samples])
		}
	}

	return tensor, nil
}
