package analysis

import "testing"

// triadChroma builds a chroma row with unit energy at the given pitch
// class bins, counted in semitones above A.
func triadChroma(bins ...int) []float64 {
	chroma := make([]float64, semitones)
	for _, b := range bins {
		chroma[b] = 1
	}
	return chroma
}

func TestClassifySilence(t *testing.T) {
	// No energy at all
	if code := classify(make([]float64, semitones)); code != silenceCode {
		t.Errorf("classify(zero chroma) = %d, want %d", code, silenceCode)
	}

	// Energy below the silence threshold
	faint := make([]float64, semitones)
	for i := range faint {
		faint[i] = 1e-12
	}
	if code := classify(faint); code != silenceCode {
		t.Errorf("classify(faint chroma) = %d, want %d", code, silenceCode)
	}
}

func TestClassifyTriads(t *testing.T) {
	// Root position triads, one per chroma bin of the chord tones
	cases := []struct {
		name string
		bins []int
		want int
	}{
		{"A major (A C# E)", []int{0, 4, 7}, 0},
		{"A minor (A C E)", []int{0, 3, 7}, 1},
		{"C major (C E G)", []int{3, 7, 10}, 6},
		{"Bb minor (Bb Db F)", []int{1, 4, 8}, 3},
	}
	for _, c := range cases {
		if code := classify(triadChroma(c.bins...)); code != c.want {
			t.Errorf("%s classified as code %d, want %d", c.name, code, c.want)
		}
	}
}

func TestClassifyUniformChromaIsStable(t *testing.T) {
	uniform := make([]float64, semitones)
	for i := range uniform {
		uniform[i] = 1
	}

	first := classify(uniform)
	if first < 0 || first >= silenceCode {
		t.Fatalf("classify(uniform) = %d, want a key code", first)
	}
	// The minor profile hugs a flat spectrum more closely than the major
	if first%2 != 1 {
		t.Errorf("classify(uniform) = %d, want a minor code", first)
	}
	// Ties must break the same way every time
	for i := 0; i < 5; i++ {
		if code := classify(uniform); code != first {
			t.Errorf("classify run %d = %d, want %d", i+2, code, first)
		}
	}
}

func TestProfileSimilarity(t *testing.T) {
	// A chroma that is the profile itself matches its own root perfectly
	chroma := make([]float64, semitones)
	copy(chroma, majorProfile[:])
	score := profileSimilarity(chroma, &majorProfile, 0)
	if score < 1-1e-12 || score > 1+1e-12 {
		t.Errorf("self similarity = %v, want 1.0", score)
	}

	// Rotating the chroma moves the best root with it
	rotated := make([]float64, semitones)
	for i := range rotated {
		rotated[i] = majorProfile[(i-3+semitones)%semitones]
	}
	score = profileSimilarity(rotated, &majorProfile, 3)
	if score < 1-1e-12 || score > 1+1e-12 {
		t.Errorf("rotated self similarity = %v, want 1.0", score)
	}

	// A wrong root scores strictly lower
	wrong := profileSimilarity(chroma, &majorProfile, 5)
	if wrong >= score {
		t.Errorf("wrong root similarity = %v, want below %v", wrong, score)
	}
}
