package epoch

import "errors"

// ErrInvalidWindow indicates an output window that falls outside the trial
// window, or one that selects no timepoints at all.
var ErrInvalidWindow = errors.New("epoch: invalid time window")

// Window is a [start, end] span in seconds.
type Window struct {
	Start float64
	End   float64
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// Contains reports whether other lies entirely within w.
func (w Window) Contains(other Window) bool {
	return other.Start >= w.Start && other.End <= w.End && other.Start <= other.End
}

// TimeAxis returns n uniformly spaced timepoints spanning w, endpoints
// included.
func (w Window) TimeAxis(n int) []float64 {
	times := make([]float64, n)
	if n == 1 {
		times[0] = w.Start
		return times
	}

	step := w.Duration() / float64(n-1)
	for i := range times {
		times[i] = w.Start + float64(i)*step
	}
	// Pin the endpoint against accumulated rounding
	times[n-1] = w.End
	return times
}

// MaskIndices returns the indices of timepoints falling within w, inclusive
// on both ends.
func MaskIndices(times []float64, w Window) []int {
	idx := make([]int, 0, len(times))
	for i, t := range times {
		if t >= w.Start && t <= w.End {
			idx = append(idx, i)
		}
	}
	return idx
}
