package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxmatters/keyjive/internal/config"
)

func TestWriteChromagram(t *testing.T) {
	// Six frames sweeping a hot cell up the pitch classes
	chromagram := make([][]float64, 6)
	for f := range chromagram {
		row := make([]float64, 12)
		row[f*2%12] = 1.0
		row[(f*2+7)%12] = 0.4
		chromagram[f] = row
	}

	path := filepath.Join(t.TempDir(), "chroma.png")
	if err := WriteChromagram(path, chromagram); err != nil {
		t.Fatalf("WriteChromagram failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not a decodable PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != config.ChromaImageWidth || bounds.Dy() != config.ChromaImageHeight {
		t.Fatalf("image is %dx%d, want %dx%d",
			bounds.Dx(), bounds.Dy(), config.ChromaImageWidth, config.ChromaImageHeight)
	}

	// The plot area must contain cells brighter than the background, and
	// the margin must contain label pixels
	var plotLit, labelLit bool
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if r8 == backgroundColor.R && g8 == backgroundColor.G && b8 == backgroundColor.B {
				continue
			}
			if x >= config.ChromaMarginLeft {
				plotLit = true
			}
			if x < config.ChromaMarginLeft &&
				r8 == labelColor.R && g8 == labelColor.G && b8 == labelColor.B {
				labelLit = true
			}
		}
	}
	if !plotLit {
		t.Error("plot area contains only background pixels")
	}
	if !labelLit {
		t.Error("left margin contains no axis label pixels")
	}
}

func TestWriteChromagramEmpty(t *testing.T) {
	// No frames still yields a valid image with axis labels
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := WriteChromagram(path, nil); err != nil {
		t.Fatalf("WriteChromagram of empty chromagram failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	if _, err := png.Decode(f); err != nil {
		t.Errorf("Output is not a decodable PNG: %v", err)
	}
}

func TestWriteChromagramBadPath(t *testing.T) {
	err := WriteChromagram(filepath.Join(t.TempDir(), "no", "such", "dir", "x.png"), [][]float64{{1}})
	if err == nil {
		t.Error("WriteChromagram to missing directory succeeded, want error")
	}
}

func TestHeatColor(t *testing.T) {
	// Clamped at both ends of the gradient
	if c := heatColor(-0.5); c != heatStops[0] {
		t.Errorf("heatColor(-0.5) = %v, want first stop %v", c, heatStops[0])
	}
	if c := heatColor(0); c != heatStops[0] {
		t.Errorf("heatColor(0) = %v, want first stop %v", c, heatStops[0])
	}
	if c := heatColor(1); c != heatStops[len(heatStops)-1] {
		t.Errorf("heatColor(1) = %v, want last stop %v", c, heatStops[len(heatStops)-1])
	}
	if c := heatColor(2.0); c != heatStops[len(heatStops)-1] {
		t.Errorf("heatColor(2.0) = %v, want last stop %v", c, heatStops[len(heatStops)-1])
	}

	// In between it interpolates away from both endpoints
	mid := heatColor(0.5)
	if mid == heatStops[0] || mid == heatStops[len(heatStops)-1] {
		t.Errorf("heatColor(0.5) = %v, want an interpolated colour", mid)
	}
	if mid.A != 255 {
		t.Errorf("heatColor(0.5) alpha = %d, want 255", mid.A)
	}
}
