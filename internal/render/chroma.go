package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/linuxmatters/keyjive/internal/config"
)

// semitoneNames labels the vertical axis, A on the bottom row to match
// the analysis engine's pitch class ordering.
var semitoneNames = [12]string{"A", "Bb", "B", "C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab"}

// Groove gradient stops from silence to peak energy
var heatStops = []color.RGBA{
	{R: 0x14, G: 0x13, B: 0x2B, A: 255}, // Near-black indigo
	{R: 0x3D, G: 0x34, B: 0x8B, A: 255}, // Deep indigo
	{R: 0x83, G: 0x38, B: 0xEC, A: 255}, // Electric violet
	{R: 0x3A, G: 0x86, B: 0xFF, A: 255}, // Club blue
	{R: 0x06, G: 0xD6, B: 0xA0, A: 255}, // Neon teal
	{R: 0xFF, G: 0xD1, B: 0x66, A: 255}, // Strobe gold
}

var (
	backgroundColor = color.RGBA{R: 0x0D, G: 0x0C, B: 0x1D, A: 255}
	labelColor      = color.RGBA{R: 0x8D, G: 0x99, B: 0xAE, A: 255}
)

// WriteChromagram renders per-frame pitch class energies as a PNG heat
// map: one column per analysis frame, twelve rows with A at the bottom,
// coloured by energy relative to the loudest cell.
func WriteChromagram(outputPath string, chromagram [][]float64) error {
	img := image.NewRGBA(image.Rect(0, 0, config.ChromaImageWidth, config.ChromaImageHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	plot := image.Rect(
		config.ChromaMarginLeft,
		config.ChromaMarginTop,
		config.ChromaImageWidth-config.ChromaMarginRight,
		config.ChromaImageHeight-config.ChromaMarginBottom,
	)

	if len(chromagram) > 0 {
		cells := buildHeatmap(chromagram)
		// Nearest neighbour keeps the cell edges crisp when scaling up
		draw.NearestNeighbor.Scale(img, plot, cells, cells.Bounds(), draw.Src, nil)
	}

	drawAxisLabels(img, plot)

	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("failed to save chromagram: %w", err)
	}

	return nil
}

// buildHeatmap renders the chromagram at one pixel per cell; scaling to
// the output geometry happens afterwards.
func buildHeatmap(chromagram [][]float64) *image.RGBA {
	cells := image.NewRGBA(image.Rect(0, 0, len(chromagram), 12))

	maxEnergy := 0.0
	for _, row := range chromagram {
		for _, v := range row {
			if v > maxEnergy {
				maxEnergy = v
			}
		}
	}

	if maxEnergy == 0 {
		maxEnergy = 1.0 // Avoid division by zero
	}

	for x, row := range chromagram {
		for sem := 0; sem < 12 && sem < len(row); sem++ {
			y := 11 - sem // A at the bottom
			cells.SetRGBA(x, y, heatColor(row[sem]/maxEnergy))
		}
	}

	return cells
}

// heatColor interpolates the groove gradient for a normalised energy in [0, 1]
func heatColor(v float64) color.RGBA {
	if v <= 0 {
		return heatStops[0]
	}
	if v >= 1 {
		return heatStops[len(heatStops)-1]
	}

	pos := v * float64(len(heatStops)-1)
	idx := int(pos)
	frac := pos - float64(idx)

	lo, hi := heatStops[idx], heatStops[idx+1]
	return color.RGBA{
		R: uint8(float64(lo.R) + frac*(float64(hi.R)-float64(lo.R))),
		G: uint8(float64(lo.G) + frac*(float64(hi.G)-float64(lo.G))),
		B: uint8(float64(lo.B) + frac*(float64(hi.B)-float64(lo.B))),
		A: 255,
	}
}

// drawAxisLabels writes the semitone names down the left margin, one per
// row centre
func drawAxisLabels(img *image.RGBA, plot image.Rectangle) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
	}

	rowHeight := plot.Dy() / 12
	for sem, name := range semitoneNames {
		rowTop := plot.Min.Y + (11-sem)*rowHeight
		baseline := rowTop + rowHeight/2 + face.Ascent/2

		d.Dot = fixed.P(8, baseline)
		d.DrawString(name)
	}
}

// savePNG writes the image to a PNG file
func savePNG(img *image.RGBA, outputPath string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	return png.Encode(outFile, img)
}
