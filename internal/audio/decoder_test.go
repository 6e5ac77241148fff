package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewMP3DecoderRejectsInvalidInput(t *testing.T) {
	// No frame sync anywhere in plain text
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("certainly not an MPEG stream"), 0o644); err != nil {
		t.Fatalf("Failed to write garbage file: %v", err)
	}
	if _, err := NewMP3Decoder(path); err == nil {
		t.Error("NewMP3Decoder accepted a garbage file, want error")
	}

	if _, err := NewMP3Decoder(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("NewMP3Decoder on missing file succeeded, want error")
	}
}

func TestNewFLACDecoderRejectsInvalidInput(t *testing.T) {
	// The fLaC stream marker is checked up front
	path := filepath.Join(t.TempDir(), "garbage.flac")
	if err := os.WriteFile(path, []byte("no stream marker here"), 0o644); err != nil {
		t.Fatalf("Failed to write garbage file: %v", err)
	}
	if _, err := NewFLACDecoder(path); err == nil {
		t.Error("NewFLACDecoder accepted a garbage file, want error")
	}

	if _, err := NewFLACDecoder(filepath.Join(t.TempDir(), "missing.flac")); err == nil {
		t.Error("NewFLACDecoder on missing file succeeded, want error")
	}
}
