package analysis

import "math"

// Tone profiles from Ibrahim Sha'ath's KeyFinder work, expressed
// root-relative: index 0 is the tonic, index i the pitch class i
// semitones above it.
var (
	majorProfile = [semitones]float64{6.6, 2.0, 3.5, 2.3, 4.6, 4.0, 2.5, 5.2, 2.4, 3.7, 2.3, 3.4}
	minorProfile = [semitones]float64{6.5, 2.7, 3.5, 5.4, 2.6, 3.5, 2.5, 4.7, 4.0, 2.7, 3.4, 3.2}
)

// classify matches the summed chroma against all 24 key candidates by
// cosine similarity and returns the winning engine code. Candidates are
// scored in code order and ties keep the earlier code, so the result is
// deterministic for identical chroma. Chroma with near-zero energy is
// silence.
func classify(chroma []float64) int {
	var energy float64
	for _, c := range chroma {
		energy += c
	}
	if energy < silenceThreshold {
		return silenceCode
	}

	best := 0
	bestScore := math.Inf(-1)
	for code := 0; code < silenceCode; code++ {
		root := code / 2
		profile := &majorProfile
		if code%2 == 1 {
			profile = &minorProfile
		}
		score := profileSimilarity(chroma, profile, root)
		if score > bestScore {
			bestScore = score
			best = code
		}
	}
	return best
}

// profileSimilarity computes the cosine similarity between the chroma
// and the profile rotated so its tonic sits on the given root, counted
// in semitones above A.
func profileSimilarity(chroma []float64, profile *[semitones]float64, root int) float64 {
	var dot, normC, normP float64
	for i := 0; i < semitones; i++ {
		p := profile[(i-root+semitones)%semitones]
		dot += chroma[i] * p
		normC += chroma[i] * chroma[i]
		normP += p * p
	}
	if normC == 0 || normP == 0 {
		return 0
	}
	return dot / (math.Sqrt(normC) * math.Sqrt(normP))
}


