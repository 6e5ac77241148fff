package config

// Decoding settings
const (
	// DecodeChunkFrames is the number of frames requested from a
	// decoder per read while filling the analysis buffer.
	DecodeChunkFrames = 4096
)

// SupportedExtensions lists the audio formats the CLI accepts, in the
// order they appear in error messages.
var SupportedExtensions = []string{".wav", ".mp3", ".flac"}

// Output settings
const (
	// DefaultNotation is the key notation used when --notation is not
	// given. One of "standard", "camelot", "openkey".
	DefaultNotation = "standard"
)

// Chromagram export settings
const (
	// ChromaImageWidth and ChromaImageHeight are the dimensions of the
	// exported PNG. The per-frame columns are scaled to fit the plot
	// area inside the margins.
	ChromaImageWidth  = 900
	ChromaImageHeight = 240

	// ChromaMarginLeft leaves room for the semitone axis labels;
	// ChromaMarginTop and ChromaMarginBottom frame the plot.
	ChromaMarginLeft   = 40
	ChromaMarginTop    = 12
	ChromaMarginBottom = 12
	ChromaMarginRight  = 12
)
