package config

import (
	"strings"
	"testing"
)

func TestSupportedExtensions(t *testing.T) {
	want := []string{".wav", ".mp3", ".flac"}
	if len(SupportedExtensions) != len(want) {
		t.Fatalf("SupportedExtensions has %d entries, want %d", len(SupportedExtensions), len(want))
	}
	for i, ext := range SupportedExtensions {
		if ext != want[i] {
			t.Errorf("SupportedExtensions[%d] = %q, want %q", i, ext, want[i])
		}
		// Dispatch lowercases before matching, so the table must be lowercase
		if ext != strings.ToLower(ext) {
			t.Errorf("extension %q is not lowercase", ext)
		}
		if !strings.HasPrefix(ext, ".") {
			t.Errorf("extension %q has no leading dot", ext)
		}
	}
}

func TestDecodeChunkFrames(t *testing.T) {
	if DecodeChunkFrames <= 0 {
		t.Errorf("DecodeChunkFrames = %d, want positive", DecodeChunkFrames)
	}
}

func TestChromaImageGeometry(t *testing.T) {
	plotWidth := ChromaImageWidth - ChromaMarginLeft - ChromaMarginRight
	plotHeight := ChromaImageHeight - ChromaMarginTop - ChromaMarginBottom

	if plotWidth <= 0 {
		t.Errorf("plot width = %d, want positive", plotWidth)
	}
	if plotHeight < 12 {
		t.Errorf("plot height = %d, want at least one pixel per semitone row", plotHeight)
	}
}
