package recording

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// edfLayout holds the EDF header fields needed to size the in-memory
// recording: the OpenPSG reader parses these too but does not export them.
type edfLayout struct {
	labels           []string
	sampleRate       float64
	dataRecords      int
	samplesPerRecord int
}

// EDF header geometry: 256 fixed bytes, then per-signal arrays of
// label(16), transducer(80), dimension(8), physical min/max(8+8),
// digital min/max(8+8), prefiltering(80), samples per record(8),
// reserved(32).
const (
	edfFixedHeaderBytes  = 256
	edfSignalHeaderBytes = 256
	edfSamplesFieldStart = 16 + 80 + 8 + 8 + 8 + 8 + 8 + 80
)

func readLayout(rs io.ReadSeeker) (*edfLayout, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("recording: rewind: %w", err)
	}

	fixed := make([]byte, edfFixedHeaderBytes)
	if _, err := io.ReadFull(rs, fixed); err != nil {
		return nil, fmt.Errorf("recording: read header: %w", err)
	}

	dataRecords, err := headerInt(fixed[236:244])
	if err != nil {
		return nil, fmt.Errorf("recording: data record count: %w", err)
	}
	recordDuration, err := headerFloat(fixed[244:252])
	if err != nil {
		return nil, fmt.Errorf("recording: record duration: %w", err)
	}
	signalCount, err := headerInt(fixed[252:256])
	if err != nil {
		return nil, fmt.Errorf("recording: signal count: %w", err)
	}
	if signalCount <= 0 {
		return nil, fmt.Errorf("recording: file has no signals")
	}
	if dataRecords < 0 {
		return nil, fmt.Errorf("recording: unknown data record count")
	}

	perSignal := make([]byte, signalCount*edfSignalHeaderBytes)
	if _, err := io.ReadFull(rs, perSignal); err != nil {
		return nil, fmt.Errorf("recording: read signal headers: %w", err)
	}

	layout := &edfLayout{
		labels:      make([]string, signalCount),
		dataRecords: dataRecords,
	}

	samplesStart := signalCount * edfSamplesFieldStart
	for i := 0; i < signalCount; i++ {
		layout.labels[i] = strings.TrimSpace(string(perSignal[i*16 : (i+1)*16]))

		samples, err := headerInt(perSignal[samplesStart+i*8 : samplesStart+(i+1)*8])
		if err != nil {
			return nil, fmt.Errorf("recording: samples per record for signal %d: %w", i, err)
		}
		if i == 0 {
			layout.samplesPerRecord = samples
		} else if samples != layout.samplesPerRecord {
			return nil, fmt.Errorf("recording: signal %q has %d samples per record, expected %d",
				layout.labels[i], samples, layout.samplesPerRecord)
		}
	}

	duration := time.Duration(recordDuration * float64(time.Second))
	if duration <= 0 {
		return nil, fmt.Errorf("recording: non-positive record duration")
	}
	layout.sampleRate = float64(layout.samplesPerRecord) / duration.Seconds()

	return layout, nil
}

func headerInt(b []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(b)))
}

func headerFloat(b []byte) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
}
