package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Pipeline geometry. The analysis front end follows the classic
// KeyFinder design: decimate to a low rate, take long overlapping
// spectral frames, and project them onto a six-octave semitone grid
// rooted at A0.
const (
	// targetFrameRate is the rate the spectral pass runs at. Audio
	// above it is low-pass filtered and decimated down first.
	targetFrameRate = 4410

	// stftFrameSize and stftHopSize set the spectral frame geometry.
	// Long frames buy the frequency resolution the low octaves need.
	stftFrameSize = 16384
	stftHopSize   = 4096

	semitones = 12
	octaves   = 6
	bandCount = semitones * octaves

	// baseFreq anchors band 0 at A0.
	baseFreq = 27.5

	// silenceCode is the engine's sentinel for audio with no tonal
	// content. It sits one past the 24 key codes.
	silenceCode = 24

	// silenceThreshold gates classification: chroma with less total
	// energy than this detects as silence rather than a key.
	silenceThreshold = 1e-9
)

// Result carries everything one analysis pass produced. Every slice is
// freshly allocated per call; the analyzer keeps no reference to it.
type Result struct {
	// KeyCode is the detected key in engine coding, 0-23 for keys and
	// silenceCode for silence.
	KeyCode int

	// Chroma is the 12-bin pitch class energy summed over all frames,
	// bin 0 pinned to A.
	Chroma []float64

	// Chromagram holds the per-frame chroma rows the summary was built
	// from, in frame order.
	Chromagram [][]float64

	// Frames is the number of spectral frames analyzed.
	Frames int
}

// Analyzer is the key detection engine. It owns the FFT plan and the
// per-rate filter and kernel caches, so one Analyzer should be reused
// across tracks rather than rebuilt per call. Analysis itself is
// stateless: nothing observed in one call affects the next.
//
// Analyzer is not safe for concurrent use.
type Analyzer struct {
	fft    *fourier.FFT
	coeffs []complex128
	frame  []float64

	kernels map[int]*chromaKernel
	filters map[int][]float64
}

// NewAnalyzer creates an engine with its spectral workspace allocated
// up front.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		fft:     fourier.NewFFT(stftFrameSize),
		coeffs:  make([]complex128, stftFrameSize/2+1),
		frame:   make([]float64, stftFrameSize),
		kernels: make(map[int]*chromaKernel),
		filters: make(map[int][]float64),
	}
}

// Analyze runs the full detection pipeline over interleaved samples:
// mix to mono, band-limit and decimate, chromagram, classify. The input
// slice is only read; the engine works on its own copy throughout.
// Empty or all-zero audio classifies as silence, not as an error.
func (an *Analyzer) Analyze(samples []float32, frameRate, channels int) (*Result, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("analysis: frame rate must be positive, got %d", frameRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("analysis: channel count must be positive, got %d", channels)
	}

	mono := mixToMono(samples, channels)

	rate := frameRate
	if factor := frameRate / targetFrameRate; factor > 1 {
		filtered, err := an.lowPass(mono, frameRate)
		if err != nil {
			return nil, err
		}
		mono = decimate(filtered, factor)
		rate = frameRate / factor
	}

	chromagram := an.chromagram(mono, rate)

	chroma := make([]float64, semitones)
	for _, row := range chromagram {
		for i, v := range row {
			chroma[i] += v
		}
	}

	return &Result{
		KeyCode:    classify(chroma),
		Chroma:     chroma,
		Chromagram: chromagram,
		Frames:     len(chromagram),
	}, nil
}

// mixToMono collapses interleaved channels into one stream, averaging
// each frame. It always copies, so callers keep sole ownership of the
// samples they passed in. Samples past the last complete frame are
// ignored.
func mixToMono(samples []float32, channels int) []float64 {
	frames := len(samples) / channels
	mono := make([]float64, frames)
	if channels == 1 {
		for i := range mono {
			mono[i] = float64(samples[i])
		}
		return mono
	}
	for f := 0; f < frames; f++ {
		base := f * channels
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(samples[base+c])
		}
		mono[f] = sum / float64(channels)
	}
	return mono
}
