package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grid "github.com/uioperator/uictl/internal/grid"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompareIdenticalImages(t *testing.T) {
	a := solidImage(20, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b := solidImage(20, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	result, err := Compare(a, b, 0)
	require.NoError(t, err)

	assert.False(t, result.HasChanges())
	assert.Equal(t, 0, result.ChangedPixels)
	assert.Equal(t, 200, result.TotalPixels)
	assert.Nil(t, result.BoundingBox)
}

func TestCompareDetectsChangedRegion(t *testing.T) {
	before := solidImage(20, 10, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	after := solidImage(20, 10, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	after.SetRGBA(5, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	after.SetRGBA(8, 6, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	result, err := Compare(before, after, 0)
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.Equal(t, 2, result.ChangedPixels)
	assert.InDelta(t, 1.0, result.ChangePercentage, 0.001)
	require.NotNil(t, result.BoundingBox)
	assert.Equal(t, grid.Rectangle{X: 5, Y: 2, Width: 4, Height: 5}, *result.BoundingBox)
}

func TestCompareThresholdSuppressesSmallDeltas(t *testing.T) {
	before := solidImage(10, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	after := solidImage(10, 10, color.RGBA{R: 105, G: 105, B: 105, A: 255})

	// Summed channel delta is 15, below the default threshold of 30.
	result, err := Compare(before, after, 0)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())

	result, err = Compare(before, after, 10)
	require.NoError(t, err)
	assert.True(t, result.HasChanges())
	assert.Equal(t, 100, result.ChangedPixels)
}

func TestCompareDimensionMismatch(t *testing.T) {
	a := solidImage(10, 10, color.RGBA{A: 255})
	b := solidImage(10, 20, color.RGBA{A: 255})

	_, err := Compare(a, b, 0)
	assert.Error(t, err)
}

func TestDiffImageHighlightsChanges(t *testing.T) {
	before := solidImage(10, 10, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	after := solidImage(10, 10, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	after.SetRGBA(3, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	highlight := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	diff, err := DiffImage(before, after, 0, highlight)
	require.NoError(t, err)

	assert.Equal(t, highlight, diff.RGBAAt(3, 4))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, diff.RGBAAt(0, 0))
}
