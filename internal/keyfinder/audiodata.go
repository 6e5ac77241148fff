package keyfinder

// AudioData holds interleaved PCM samples together with the stream
// parameters key detection needs. It mirrors the detection engine's own
// audio container: a flat sample store, a frame rate, a channel count
// and a write cursor.
//
// Design:
// - Samples are interleaved by frame: frame f occupies indices
//   [f*channels, (f+1)*channels).
// - The write cursor addresses samples, not frames, and moves only when
//   the caller advances it.
// - Writing at or past the end grows the store; rewinding the cursor
//   never shrinks it, so a buffer can be refilled in place.
//
// AudioData is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
type AudioData struct {
	frameRate   int
	channels    int
	samples     []float32
	writeCursor int
}

// NewAudioData creates an empty buffer. Frame rate and channel count
// start unset and must be configured before analysis.
func NewAudioData() *AudioData {
	return &AudioData{}
}

// SetFrameRate sets the sampling rate in frames per second. The rate
// must be positive.
func (a *AudioData) SetFrameRate(rate int) error {
	if rate <= 0 {
		return &InvalidStateError{Op: "SetFrameRate", Reason: "frame rate must be positive"}
	}
	a.frameRate = rate
	return nil
}

// SetChannels sets the number of interleaved channels per frame. The
// count must be positive.
func (a *AudioData) SetChannels(count int) error {
	if count <= 0 {
		return &InvalidStateError{Op: "SetChannels", Reason: "channel count must be positive"}
	}
	a.channels = count
	return nil
}

// FrameRate returns the sampling rate in frames per second, or zero
// when unset.
func (a *AudioData) FrameRate() int {
	return a.frameRate
}

// Channels returns the channel count, or zero when unset.
func (a *AudioData) Channels() int {
	return a.channels
}

// SampleCount returns the number of samples currently stored, across
// all channels.
func (a *AudioData) SampleCount() int {
	return len(a.samples)
}

// FrameCount returns the number of complete frames stored. It fails
// until the channel count is set, since samples cannot be grouped into
// frames without one.
func (a *AudioData) FrameCount() (int, error) {
	if a.channels == 0 {
		return 0, &InvalidStateError{Op: "FrameCount", Reason: "channel count not set"}
	}
	return len(a.samples) / a.channels, nil
}

// ResetCursor rewinds the write cursor to the first sample. Stored
// samples are kept; rewinding exists so a buffer can be overwritten in
// place rather than reallocated.
func (a *AudioData) ResetCursor() {
	a.writeCursor = 0
}

// AdvanceCursor moves the write cursor forward n samples. The cursor
// may end up past the stored samples; the next write grows the store to
// reach it. Negative values are ignored, the cursor rewinds only
// through ResetCursor.
func (a *AudioData) AdvanceCursor(n int) {
	if n > 0 {
		a.writeCursor += n
	}
}

// WriteSampleAtCursor stores v at the cursor position. Writes inside
// the stored range overwrite; writes at or past the end grow the store,
// zero-filling any gap the cursor skipped over. The cursor itself never
// moves, advancing is always explicit.
func (a *AudioData) WriteSampleAtCursor(v float32) {
	if a.writeCursor < len(a.samples) {
		a.samples[a.writeCursor] = v
		return
	}
	if gap := a.writeCursor - len(a.samples); gap > 0 {
		a.samples = append(a.samples, make([]float32, gap)...)
	}
	a.samples = append(a.samples, v)
}

// AddToSampleCount appends n zero-valued samples, pre-sizing the store
// for a known amount of incoming audio.
func (a *AudioData) AddToSampleCount(n int) error {
	if n < 0 {
		return &InvalidStateError{Op: "AddToSampleCount", Reason: "sample count delta must not be negative"}
	}
	a.samples = append(a.samples, make([]float32, n)...)
	return nil
}

// AppendSamples writes samples after the audio already stored: pre-size
// the store, rewind, skip past the existing samples, then write and
// advance one sample at a time. The cursor is left just past the last
// sample written. This is the ingestion path the decoders use.
func (a *AudioData) AppendSamples(samples []float32) {
	old := len(a.samples)
	a.samples = append(a.samples, make([]float32, len(samples))...)
	a.ResetCursor()
	a.AdvanceCursor(old)
	for _, s := range samples {
		a.WriteSampleAtCursor(s)
		a.AdvanceCursor(1)
	}
}

// ReduceToMono mixes interleaved channels down to one by replacing each
// frame with the arithmetic mean of its samples. The reduction happens
// in place; afterwards Channels reports 1 and SampleCount equals the
// old frame count. Samples past the last complete frame are dropped.
// Reducing audio that is already mono is a no-op.
func (a *AudioData) ReduceToMono() error {
	if a.channels == 0 {
		return &InvalidStateError{Op: "ReduceToMono", Reason: "channel count not set"}
	}
	if a.channels == 1 {
		return nil
	}
	frames := len(a.samples) / a.channels
	for f := 0; f < frames; f++ {
		base := f * a.channels
		var sum float32
		for c := 0; c < a.channels; c++ {
			sum += a.samples[base+c]
		}
		a.samples[f] = sum / float32(a.channels)
	}
	a.samples = a.samples[:frames]
	a.channels = 1
	return nil
}

// Downsample keeps every factor-th frame and discards the rest,
// dividing the frame rate by factor. The division truncates: 44100
// downsampled by 8 reports 5512. Decimation is deliberately plain; the
// engine low-pass filters before it ever downsamples, so no filtering
// happens here. A factor of 1 is a no-op.
func (a *AudioData) Downsample(factor int) error {
	if factor < 1 {
		return &InvalidStateError{Op: "Downsample", Reason: "factor must be at least 1"}
	}
	if a.channels == 0 {
		return &InvalidStateError{Op: "Downsample", Reason: "channel count not set"}
	}
	if a.frameRate == 0 {
		return &InvalidStateError{Op: "Downsample", Reason: "frame rate not set"}
	}
	if factor == 1 {
		return nil
	}
	frames := len(a.samples) / a.channels
	kept := 0
	for f := 0; f < frames; f += factor {
		copy(a.samples[kept*a.channels:(kept+1)*a.channels], a.samples[f*a.channels:(f+1)*a.channels])
		kept++
	}
	a.samples = a.samples[:kept*a.channels]
	a.frameRate /= factor
	return nil
}

// checkAnalyzable verifies the stream parameters analysis depends on.
func (a *AudioData) checkAnalyzable(op string) error {
	if a.channels == 0 {
		return &InvalidStateError{Op: op, Reason: "channel count not set"}
	}
	if a.frameRate == 0 {
		return &InvalidStateError{Op: op, Reason: "frame rate not set"}
	}
	return nil
}
