package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/window"
)

// bandFreq returns the centre frequency of semitone band b. Band 0 is
// A0 at 27.5 Hz; each band sits a semitone above the previous one.
func bandFreq(b int) float64 {
	return baseFreq * math.Exp2(float64(b)/semitones)
}

// binWeight ties one spectral bin to a band with its triangular kernel
// weight.
type binWeight struct {
	bin    int
	weight float64
}

// chromaKernel projects a magnitude spectrum onto the semitone bands.
// Weights depend on the decimated frame rate, so kernels are built per
// rate and cached by the analyzer.
type chromaKernel struct {
	rate  int
	bands [bandCount][]binWeight
}

// newChromaKernel precomputes, for every band, the spectral bins under
// its triangular kernel. The kernel for band b rises from the centre of
// band b-1 and falls to the centre of band b+1, so neighbouring bands
// split the energy between their centres. Bands that reach past Nyquist
// are truncated there.
func newChromaKernel(rate int) *chromaKernel {
	k := &chromaKernel{rate: rate}
	binWidth := float64(rate) / stftFrameSize
	for b := 0; b < bandCount; b++ {
		lo := bandFreq(b - 1)
		mid := bandFreq(b)
		hi := bandFreq(b + 1)

		first := int(math.Ceil(lo / binWidth))
		last := int(math.Floor(hi / binWidth))
		if last > stftFrameSize/2 {
			last = stftFrameSize / 2
		}
		for bin := first; bin <= last; bin++ {
			f := float64(bin) * binWidth
			var w float64
			if f < mid {
				w = (f - lo) / (mid - lo)
			} else {
				w = (hi - f) / (hi - mid)
			}
			if w <= 0 {
				continue
			}
			k.bands[b] = append(k.bands[b], binWeight{bin: bin, weight: w})
		}
	}
	return k
}

// chromaRow folds one magnitude spectrum into a 12-bin pitch class row.
// Octaves collapse onto each other: band 0 (A0) and band 12 (A1) both
// land in bin 0.
func (k *chromaKernel) chromaRow(coeffs []complex128) []float64 {
	row := make([]float64, semitones)
	for b := range k.bands {
		var sum float64
		for _, bw := range k.bands[b] {
			sum += cmplx.Abs(coeffs[bw.bin]) * bw.weight
		}
		row[b%semitones] += sum
	}
	return row
}

// chromagram slides Blackman-windowed spectral frames across the mono
// signal and folds each into a chroma row. Trailing frames are
// zero-padded, so any non-empty signal yields at least one row.
func (an *Analyzer) chromagram(mono []float64, rate int) [][]float64 {
	kernel := an.kernels[rate]
	if kernel == nil {
		kernel = newChromaKernel(rate)
		an.kernels[rate] = kernel
	}

	var rows [][]float64
	for start := 0; start < len(mono); start += stftHopSize {
		for i := range an.frame {
			an.frame[i] = 0
		}
		copy(an.frame, mono[start:])
		window.Blackman(an.frame)
		an.fft.Coefficients(an.coeffs, an.frame)
		rows = append(rows, kernel.chromaRow(an.coeffs))
	}
	return rows
}
