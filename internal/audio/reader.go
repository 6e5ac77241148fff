package audio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/keyjive/internal/config"
	"github.com/linuxmatters/keyjive/internal/keyfinder"
)

// ErrUnsupportedFormat is returned when a file's extension matches no
// known decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Open picks a decoder for the file by its extension
func Open(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)",
		ErrUnsupportedFormat, filepath.Ext(filename), strings.Join(config.SupportedExtensions, ", "))
}

// Load decodes an entire file into a fresh analysis buffer configured
// with the stream's frame rate and channel count.
func Load(filename string) (*keyfinder.AudioData, error) {
	dec, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return ReadAll(dec)
}

// ReadAll drains a decoder chunk by chunk into a fresh analysis buffer.
func ReadAll(dec Decoder) (*keyfinder.AudioData, error) {
	data := keyfinder.NewAudioData()
	if err := data.SetFrameRate(dec.SampleRate()); err != nil {
		return nil, fmt.Errorf("configuring frame rate: %w", err)
	}
	if err := data.SetChannels(dec.NumChannels()); err != nil {
		return nil, fmt.Errorf("configuring channels: %w", err)
	}

	for {
		chunk, err := dec.ReadChunk(config.DecodeChunkFrames)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding audio: %w", err)
		}
		data.AppendSamples(chunk)
	}
	return data, nil
}
