package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder implements Decoder for MP3 files
type MP3Decoder struct {
	decoder *mp3.Decoder
	file    *os.File
	rate    int
}

// NewMP3Decoder creates a new MP3 decoder
func NewMP3Decoder(filename string) (*MP3Decoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	return &MP3Decoder{
		decoder: decoder,
		file:    f,
		rate:    decoder.SampleRate(),
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples.
// go-mp3 outputs interleaved 16-bit little-endian stereo, 4 bytes per
// frame: L0 R0 L1 R1 ...
func (d *MP3Decoder) ReadChunk(frames int) ([]float32, error) {
	buf := make([]byte, frames*4)

	n, err := d.decoder.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read MP3 data: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	read := n / 4
	samples := make([]float32, read*2)
	for i := 0; i < read; i++ {
		left := int16(buf[i*4]) | int16(buf[i*4+1])<<8
		right := int16(buf[i*4+2]) | int16(buf[i*4+3])<<8
		samples[i*2] = float32(left) / 32768.0
		samples[i*2+1] = float32(right) / 32768.0
	}
	return samples, nil
}

// SampleRate returns the sample rate
func (d *MP3Decoder) SampleRate() int {
	return d.rate
}

// NumChannels returns the number of audio channels. go-mp3 always
// decodes to stereo.
func (d *MP3Decoder) NumChannels() int {
	return 2
}

// Close closes the decoder and releases resources
func (d *MP3Decoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
