package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files
type FLACDecoder struct {
	stream   *flac.Stream
	file     *os.File
	rate     int
	channels int

	// FLAC blocks rarely line up with the requested chunk size, so
	// samples decoded past the end of a chunk wait here for the next
	// call instead of being dropped.
	pending []float32
}

// NewFLACDecoder creates a new FLAC decoder. Stream parameters come
// from the StreamInfo block, which flac.New reads up front.
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	return &FLACDecoder{
		stream:   stream,
		file:     f,
		rate:     int(stream.Info.SampleRate),
		channels: int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples
func (d *FLACDecoder) ReadChunk(frames int) ([]float32, error) {
	want := frames * d.channels
	out := make([]float32, 0, want)

	if len(d.pending) > 0 {
		take := len(d.pending)
		if take > want {
			take = want
		}
		out = append(out, d.pending[:take]...)
		d.pending = d.pending[take:]
	}

	for len(out) < want {
		frame, err := d.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				if len(out) == 0 {
					return nil, io.EOF
				}
				return out, nil
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		// One subframe per channel; interleave and normalize by the
		// stream's bit depth.
		scale := float32(int64(1) << (frame.BitsPerSample - 1))
		blockLen := len(frame.Subframes[0].Samples)
		for i := 0; i < blockLen; i++ {
			for _, sub := range frame.Subframes {
				v := float32(sub.Samples[i]) / scale
				if len(out) < want {
					out = append(out, v)
				} else {
					d.pending = append(d.pending, v)
				}
			}
		}
	}
	return out, nil
}

// SampleRate returns the sample rate
func (d *FLACDecoder) SampleRate() int {
	return d.rate
}

// NumChannels returns the number of audio channels
func (d *FLACDecoder) NumChannels() int {
	return d.channels
}

// Close closes the decoder and releases resources
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
