package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV records 16-bit PCM test fixtures the same way real
// encoders do, so the decoders face genuine RIFF files.
func writeTestWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to write fixture samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to finalize fixture: %v", err)
	}
}

func TestWAVDecoderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.wav")
	data := []int{0, 8192, 16384, -16384, 32767, -32768}
	writeTestWAV(t, path, 44100, 1, data)

	dec, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("NewWAVDecoder failed: %v", err)
	}
	defer dec.Close()

	if dec.SampleRate() != 44100 {
		t.Errorf("SampleRate = %d, want 44100", dec.SampleRate())
	}
	if dec.NumChannels() != 1 {
		t.Errorf("NumChannels = %d, want 1", dec.NumChannels())
	}

	chunk, err := dec.ReadChunk(1024)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(chunk) != len(data) {
		t.Fatalf("got %d samples, want %d", len(chunk), len(data))
	}

	// 16-bit PCM scales against the max positive sample value
	maxVal := float32(audio.IntMaxSignedValue(16))
	for i, v := range data {
		want := float32(v) / maxVal
		if chunk[i] != want {
			t.Errorf("sample %d = %v, want %v", i, chunk[i], want)
		}
	}

	// A drained decoder reports EOF, again and again
	if _, err := dec.ReadChunk(1024); !errors.Is(err, io.EOF) {
		t.Errorf("ReadChunk past end = %v, want io.EOF", err)
	}
	if _, err := dec.ReadChunk(1024); !errors.Is(err, io.EOF) {
		t.Errorf("second ReadChunk past end = %v, want io.EOF", err)
	}
}

func TestWAVDecoderStereoChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")

	// Three frames with distinct values per channel
	data := []int{100, -100, 200, -200, 300, -300}
	writeTestWAV(t, path, 22050, 2, data)

	dec, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("NewWAVDecoder failed: %v", err)
	}
	defer dec.Close()

	if dec.NumChannels() != 2 {
		t.Fatalf("NumChannels = %d, want 2", dec.NumChannels())
	}

	// Chunks are counted in frames, delivered interleaved
	chunk, err := dec.ReadChunk(2)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(chunk) != 4 {
		t.Fatalf("first chunk has %d samples, want 4", len(chunk))
	}
	maxVal := float32(audio.IntMaxSignedValue(16))
	for i := 0; i < 4; i++ {
		if want := float32(data[i]) / maxVal; chunk[i] != want {
			t.Errorf("sample %d = %v, want %v", i, chunk[i], want)
		}
	}

	// The final partial chunk carries the remaining frame
	chunk, err = dec.ReadChunk(2)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(chunk) != 2 {
		t.Errorf("final chunk has %d samples, want 2", len(chunk))
	}
}

func TestNewWAVDecoderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not a RIFF file"), 0o644); err != nil {
		t.Fatalf("Failed to write garbage file: %v", err)
	}

	if _, err := NewWAVDecoder(path); err == nil {
		t.Error("NewWAVDecoder accepted a garbage file, want error")
	}

	if _, err := NewWAVDecoder(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("NewWAVDecoder on missing file succeeded, want error")
	}
}
