package audio

// Decoder is the interface all format decoders implement. Decoders
// return interleaved samples in their source channel layout; mixing
// down and resampling belong to the analysis buffer, not the decoder.
type Decoder interface {
	// ReadChunk reads up to the given number of frames of interleaved
	// samples, normalized to [-1, 1]. It returns io.EOF once the
	// stream is exhausted.
	ReadChunk(frames int) ([]float32, error)

	// SampleRate returns the stream's frame rate in Hz.
	SampleRate() int

	// NumChannels returns the number of interleaved channels.
	NumChannels() int

	// Close releases the underlying file.
	Close() error
}
