package analysis

import (
	"fmt"
	"math"

	"github.com/argusdusty/gofft"
	"gonum.org/v1/gonum/dsp/window"
)

// lowPassOrder is the FIR filter order used for anti-alias filtering
// before decimation. 160 taps keeps aliasing out of the top analysis
// octave without noticeable passband ripple.
const lowPassOrder = 160

// lowPass band-limits the signal ahead of decimation, designing (and
// caching) the filter for the given source rate on first use.
func (an *Analyzer) lowPass(signal []float64, rate int) ([]float64, error) {
	taps := an.filters[rate]
	if taps == nil {
		taps = designLowPass(rate)
		an.filters[rate] = taps
	}
	return firFilter(signal, taps)
}

// designLowPass builds a Blackman-windowed sinc FIR with its corner
// just above the highest analysis band, normalized to unity DC gain.
func designLowPass(rate int) []float64 {
	cutoff := bandFreq(bandCount) * 1.05
	wc := 2 * math.Pi * cutoff / float64(rate)

	taps := make([]float64, lowPassOrder+1)
	mid := lowPassOrder / 2
	for i := range taps {
		n := i - mid
		if n == 0 {
			taps[i] = wc / math.Pi
		} else {
			taps[i] = math.Sin(wc*float64(n)) / (math.Pi * float64(n))
		}
	}
	window.Blackman(taps)

	var sum float64
	for _, t := range taps {
		sum += t
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

// firFilter convolves signal with taps using overlap-add FFT blocks,
// then trims the linear-phase group delay so the output stays aligned
// with the input and keeps its length.
func firFilter(signal, taps []float64) ([]float64, error) {
	// Block length must be a power of two for the FFT; the step leaves
	// room for the convolution tail of each block.
	const blockSize = 1 << 15
	step := blockSize - len(taps) + 1

	tapsFreq := make([]complex128, blockSize)
	for i, t := range taps {
		tapsFreq[i] = complex(t, 0)
	}
	if err := gofft.FFT(tapsFreq); err != nil {
		return nil, fmt.Errorf("preparing filter spectrum: %w", err)
	}

	full := make([]float64, len(signal)+len(taps)-1)
	block := make([]complex128, blockSize)
	for start := 0; start < len(signal); start += step {
		end := start + step
		if end > len(signal) {
			end = len(signal)
		}

		for i := range block {
			block[i] = 0
		}
		for i := start; i < end; i++ {
			block[i-start] = complex(signal[i], 0)
		}

		if err := gofft.FFT(block); err != nil {
			return nil, fmt.Errorf("filtering block at sample %d: %w", start, err)
		}
		for i := range block {
			block[i] *= tapsFreq[i]
		}
		if err := gofft.IFFT(block); err != nil {
			return nil, fmt.Errorf("filtering block at sample %d: %w", start, err)
		}

		tail := end - start + len(taps) - 1
		for i := 0; i < tail && start+i < len(full); i++ {
			full[start+i] += real(block[i])
		}
	}

	delay := (len(taps) - 1) / 2
	return full[delay : delay+len(signal)], nil
}

// decimate keeps every factor-th sample. The caller is responsible for
// band-limiting first.
func decimate(signal []float64, factor int) []float64 {
	if factor <= 1 {
		return signal
	}
	out := make([]float64, 0, len(signal)/factor+1)
	for i := 0; i < len(signal); i += factor {
		out = append(out, signal[i])
	}
	return out
}


