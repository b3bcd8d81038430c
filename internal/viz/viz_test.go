package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClassProbs(t *testing.T) {
	var sb strings.Builder

	// Certain prediction of class 1.
	certain := float32(0)
	never := float32(math.Inf(-1))
	require.NoError(t, RenderClassProbs(&sb, []float32{never, certain, never}, nil))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, 0, strings.Count(lines[0], "█"))
	assert.Equal(t, barWidth, strings.Count(lines[1], "█"), "probability 1 fills the bar")
	assert.Contains(t, lines[1], " 1.000")
	assert.Contains(t, lines[0], " 0.000")
}

func TestRenderClassProbsCustomLabels(t *testing.T) {
	var sb strings.Builder
	logProb := float32(math.Log(0.5))

	require.NoError(t, RenderClassProbs(&sb, []float32{logProb, logProb}, []string{"cat", "dog"}))

	assert.Contains(t, sb.String(), "cat")
	assert.Contains(t, sb.String(), "dog")
	assert.Contains(t, sb.String(), " 0.500")
}

func TestRenderImage(t *testing.T) {
	var sb strings.Builder

	require.NoError(t, RenderImage(&sb, []float32{0, 1, 0.5, 0}, 2, 2))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, " @", lines[0])
}

func TestRenderImageSizeMismatch(t *testing.T) {
	var sb strings.Builder
	err := RenderImage(&sb, []float32{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestRenderImageClampsOutOfRange(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RenderImage(&sb, []float32{-1, 2}, 1, 2))
	assert.Equal(t, " @\n", sb.String())
}
