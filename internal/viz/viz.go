// Package viz renders model predictions as console text: a class
// probability bar chart, and an ASCII preview of a grayscale image.
package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const barWidth = 40

// RenderClassProbs writes one bar per class, scaled to barWidth at
// probability 1. logProbs come straight from a log-softmax output row and
// are exponentiated here. labels may be nil, in which case the class index
// is used.
func RenderClassProbs(w io.Writer, logProbs []float32, labels []string) error {
	for i, lp := range logProbs {
		p := math.Exp(float64(lp))
		label := fmt.Sprintf("%d", i)
		if labels != nil {
			label = labels[i]
		}
		bar := strings.Repeat("█", int(p*barWidth+0.5))
		if _, err := fmt.Fprintf(w, "%10s | %-40s %6.3f\n", label, bar, p); err != nil {
			return err
		}
	}
	return nil
}

// RenderImage writes a rows×cols grayscale image as ASCII shades. pixels
// are expected in [0, 1]; values outside are clamped.
func RenderImage(w io.Writer, pixels []float32, rows, cols int) error {
	if len(pixels) != rows*cols {
		return fmt.Errorf("viz: image has %d pixels, want %d (%dx%d)", len(pixels), rows*cols, rows, cols)
	}

	shades := []rune(" .:-=+*#%@")
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := pixels[r*cols+c]
			if p < 0 {
				p = 0
			}
			if p > 1 {
				p = 1
			}
			sb.WriteRune(shades[int(p*float32(len(shades)-1)+0.5)])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
