package analysis

import (
	"math"
	"testing"
)

// stereoMix interleaves an equal-amplitude sine mix into two identical
// channels at the given rate.
func stereoMix(rate int, seconds float64, freqs ...float64) []float32 {
	frames := int(float64(rate) * seconds)
	samples := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		var v float64
		for _, freq := range freqs {
			v += math.Sin(2 * math.Pi * freq * float64(f) / float64(rate))
		}
		s := float32(0.3 * v / float64(len(freqs)))
		samples[f*2] = s
		samples[f*2+1] = s
	}
	return samples
}

func TestAnalyzeValidatesFormat(t *testing.T) {
	an := NewAnalyzer()
	samples := make([]float32, 1024)

	if _, err := an.Analyze(samples, 0, 2); err == nil {
		t.Error("Analyze with zero frame rate succeeded, want error")
	}
	if _, err := an.Analyze(samples, -44100, 2); err == nil {
		t.Error("Analyze with negative frame rate succeeded, want error")
	}
	if _, err := an.Analyze(samples, 44100, 0); err == nil {
		t.Error("Analyze with zero channels succeeded, want error")
	}
	if _, err := an.Analyze(samples, 44100, -1); err == nil {
		t.Error("Analyze with negative channels succeeded, want error")
	}
}

func TestAnalyzeSilence(t *testing.T) {
	an := NewAnalyzer()

	// A second of digital silence, stereo at full rate
	result, err := an.Analyze(make([]float32, 44100), 44100, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.KeyCode != silenceCode {
		t.Errorf("KeyCode = %d, want %d (silence)", result.KeyCode, silenceCode)
	}
	if len(result.Chroma) != semitones {
		t.Errorf("Chroma has %d bins, want %d", len(result.Chroma), semitones)
	}
	if result.Frames != len(result.Chromagram) {
		t.Errorf("Frames = %d, Chromagram has %d rows", result.Frames, len(result.Chromagram))
	}

	// Empty input is silence too, with nothing to frame
	result, err = an.Analyze(nil, 44100, 2)
	if err != nil {
		t.Fatalf("Analyze of empty input failed: %v", err)
	}
	if result.KeyCode != silenceCode {
		t.Errorf("KeyCode for empty input = %d, want %d", result.KeyCode, silenceCode)
	}
	if result.Frames != 0 {
		t.Errorf("Frames for empty input = %d, want 0", result.Frames)
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	an := NewAnalyzer()

	// Five seconds of an A major triad at CD rate exercises the whole
	// chain: stereo downmix, anti-alias filter, 10x decimation,
	// chromagram and classification.
	samples := stereoMix(44100, 5.0, 220.0, 277.18, 329.63)

	result, err := an.Analyze(samples, 44100, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.KeyCode != 0 {
		t.Errorf("KeyCode = %d, want 0 (A major)", result.KeyCode)
	}

	// 5 s decimated to 4410 Hz gives 22050 samples, six hops
	if result.Frames != 6 {
		t.Errorf("Frames = %d, want 6", result.Frames)
	}

	// The chord tones carry the chroma energy
	var chordEnergy, totalEnergy float64
	for bin, v := range result.Chroma {
		totalEnergy += v
		if bin == 0 || bin == 4 || bin == 7 {
			chordEnergy += v
		}
	}
	if totalEnergy <= 0 {
		t.Fatal("chroma has no energy")
	}
	if share := chordEnergy / totalEnergy; share < 0.8 {
		t.Errorf("chord bins hold %.1f%% of chroma energy, want at least 80%%", share*100)
	}

	t.Logf("full pipeline: code %d, %d frames, %.1f%% energy on chord bins",
		result.KeyCode, result.Frames, chordEnergy/totalEnergy*100)
}

func TestAnalyzeDeterministic(t *testing.T) {
	an := NewAnalyzer()
	samples := stereoMix(44100, 2.0, 220.0, 277.18, 329.63)

	first, err := an.Analyze(samples, 44100, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := an.Analyze(samples, 44100, 2)
	if err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}

	if first.KeyCode != second.KeyCode {
		t.Errorf("KeyCode changed between runs: %d then %d", first.KeyCode, second.KeyCode)
	}
	for i := range first.Chroma {
		if first.Chroma[i] != second.Chroma[i] {
			t.Errorf("Chroma[%d] changed between runs: %v then %v", i, first.Chroma[i], second.Chroma[i])
		}
	}
}

func TestAnalyzeLeavesInputUntouched(t *testing.T) {
	an := NewAnalyzer()
	samples := stereoMix(44100, 1.0, 220.0)

	before := make([]float32, len(samples))
	copy(before, samples)

	if _, err := an.Analyze(samples, 44100, 2); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := range samples {
		if samples[i] != before[i] {
			t.Fatalf("samples[%d] changed from %v to %v", i, before[i], samples[i])
		}
	}
}

func TestMixToMono(t *testing.T) {
	// Stereo frames average pairwise
	mono := mixToMono([]float32{0.25, 0.75, -0.5, 0.5, 1.0, 0.0}, 2)
	want := []float64{0.5, 0.0, 0.5}
	if len(mono) != len(want) {
		t.Fatalf("mono length = %d, want %d", len(mono), len(want))
	}
	for i, v := range mono {
		if v != want[i] {
			t.Errorf("mono[%d] = %v, want %v", i, v, want[i])
		}
	}

	// A trailing partial frame is dropped
	if mono := mixToMono(make([]float32, 5), 2); len(mono) != 2 {
		t.Errorf("mono length for 5 stereo samples = %d, want 2", len(mono))
	}

	// Mono input is copied, not aliased
	in := []float32{0.1, 0.2, 0.3}
	out := mixToMono(in, 1)
	out[0] = 99
	if in[0] != 0.1 {
		t.Errorf("mixToMono aliased its input: in[0] = %v", in[0])
	}
}


