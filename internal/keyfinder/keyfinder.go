package keyfinder

import (
	"fmt"

	"github.com/linuxmatters/keyjive/internal/analysis"
)

// KeyFinder wraps one detection engine instance. The engine carries
// pre-allocated FFT workspaces, so a single KeyFinder should be reused
// across files rather than rebuilt per call. Detection is synchronous
// and deterministic: the same buffer contents always yield the same
// key, however many times they are analyzed.
//
// KeyFinder is not safe for concurrent use.
type KeyFinder struct {
	engine *analysis.Analyzer
}

// NewKeyFinder creates a detection engine with freshly allocated
// workspaces.
func NewKeyFinder() *KeyFinder {
	return &KeyFinder{engine: analysis.NewAnalyzer()}
}

// TrackAnalysis bundles everything one engine pass produces.
type TrackAnalysis struct {
	// Key is the detected key, or Silence for empty or sub-threshold
	// audio.
	Key Key

	// Chroma holds the total energy per pitch class across the whole
	// track, bin 0 pinned to A.
	Chroma []float64

	// Chromagram holds one 12-value chroma row per analysis frame.
	Chromagram [][]float64
}

// AnalyzeAudio runs key detection over the buffered audio and returns
// the full result in one engine pass. The buffer must have its frame
// rate and channel count set; the samples are read, never modified, and
// may be empty or silent, which detects as Silence rather than failing.
// The returned slices are freshly allocated per call; callers may keep
// or mutate them freely.
func (kf *KeyFinder) AnalyzeAudio(a *AudioData) (*TrackAnalysis, error) {
	return kf.analyze("AnalyzeAudio", a)
}

// KeyOfAudio runs key detection over the buffered audio. Preconditions
// and behaviour match AnalyzeAudio.
func (kf *KeyFinder) KeyOfAudio(a *AudioData) (Key, error) {
	result, err := kf.analyze("KeyOfAudio", a)
	if err != nil {
		return 0, err
	}
	return result.Key, nil
}

// ChromagramOfAudio runs the analysis front end and returns the
// per-frame chroma the classifier saw: one 12-value row per analysis
// frame, bin 0 pinned to A. Preconditions and behaviour match
// AnalyzeAudio.
func (kf *KeyFinder) ChromagramOfAudio(a *AudioData) ([][]float64, error) {
	result, err := kf.analyze("ChromagramOfAudio", a)
	if err != nil {
		return nil, err
	}
	return result.Chromagram, nil
}

func (kf *KeyFinder) analyze(op string, a *AudioData) (*TrackAnalysis, error) {
	if err := a.checkAnalyzable(op); err != nil {
		return nil, err
	}
	result, err := kf.engine.Analyze(a.samples, a.frameRate, a.channels)
	if err != nil {
		return nil, fmt.Errorf("analyzing audio: %w", err)
	}
	key, err := KeyFromCode(result.KeyCode)
	if err != nil {
		return nil, err
	}
	return &TrackAnalysis{
		Key:        key,
		Chroma:     result.Chroma,
		Chromagram: result.Chromagram,
	}, nil
}
