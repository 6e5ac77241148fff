package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements Decoder for WAV files
type WAVDecoder struct {
	decoder  *wav.Decoder
	file     *os.File
	rate     int
	bitDepth int
	channels int
}

// NewWAVDecoder creates a new WAV decoder
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}

	// Get format info without reading all samples
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	return &WAVDecoder{
		decoder:  decoder,
		file:     f,
		rate:     int(decoder.SampleRate),
		bitDepth: int(decoder.BitDepth),
		channels: int(decoder.NumChans),
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples
func (d *WAVDecoder) ReadChunk(frames int) ([]float32, error) {
	intBuf := &audio.IntBuffer{
		Data: make([]int, frames*d.channels),
		Format: &audio.Format{
			NumChannels: d.channels,
			SampleRate:  d.rate,
		},
	}

	n, err := d.decoder.PCMBuffer(intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	maxVal := float32(audio.IntMaxSignedValue(d.bitDepth))
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		samples[i] = float32(intBuf.Data[i]) / maxVal
	}
	return samples, nil
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.rate
}

// NumChannels returns the number of audio channels
func (d *WAVDecoder) NumChannels() int {
	return d.channels
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
