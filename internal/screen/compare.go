package screen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
)

// DefaultDiffThreshold is the per-pixel channel difference sum above which
// a pixel counts as changed.
const DefaultDiffThreshold = 30

// ComparisonResult describes the pixel-level differences between two
// images of the same size.
type ComparisonResult struct {
	ChangedPixels    int             `json:"changed_pixels"`
	TotalPixels      int             `json:"total_pixels"`
	ChangePercentage float64         `json:"change_percentage"`
	BoundingBox      *grid.Rectangle `json:"bounding_box,omitempty"`
	Width            int             `json:"width"`
	Height           int             `json:"height"`
}

// HasChanges reports whether any pixel differs.
func (r ComparisonResult) HasChanges() bool { return r.ChangedPixels > 0 }

// Compare counts the pixels that differ between before and after by more
// than threshold, and reports the bounding box of the changed area. A
// non-positive threshold uses DefaultDiffThreshold. The images must have
// the same dimensions.
func Compare(before, after image.Image, threshold int) (ComparisonResult, error) {
	if threshold <= 0 {
		threshold = DefaultDiffThreshold
	}

	bb, ab := before.Bounds(), after.Bounds()
	if bb.Dx() != ab.Dx() || bb.Dy() != ab.Dy() {
		return ComparisonResult{}, fmt.Errorf("images must have the same dimensions: %dx%d vs %dx%d",
			bb.Dx(), bb.Dy(), ab.Dx(), ab.Dy())
	}

	width, height := bb.Dx(), bb.Dy()
	changed := 0
	minX, minY := width, height
	maxX, maxY := -1, -1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p1 := before.At(bb.Min.X+x, bb.Min.Y+y)
			p2 := after.At(ab.Min.X+x, ab.Min.Y+y)
			if pixelDiffers(p1, p2, threshold) {
				changed++
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	total := width * height
	result := ComparisonResult{
		ChangedPixels:    changed,
		TotalPixels:      total,
		ChangePercentage: float64(changed) * 100.0 / float64(total),
		Width:            width,
		Height:           height,
	}
	if changed > 0 {
		result.BoundingBox = &grid.Rectangle{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX + 1,
			Height: maxY - minY + 1,
		}
	}

	logger.Debug("Screenshot comparison",
		"changed_pixels", changed, "total_pixels", total,
		"change_percentage", fmt.Sprintf("%.2f", result.ChangePercentage))
	return result, nil
}

// DiffImage returns a copy of after with changed pixels painted in the
// highlight color.
func DiffImage(before, after image.Image, threshold int, highlight color.RGBA) (*image.RGBA, error) {
	if threshold <= 0 {
		threshold = DefaultDiffThreshold
	}

	bb, ab := before.Bounds(), after.Bounds()
	if bb.Dx() != ab.Dx() || bb.Dy() != ab.Dy() {
		return nil, fmt.Errorf("images must have the same dimensions: %dx%d vs %dx%d",
			bb.Dx(), bb.Dy(), ab.Dx(), ab.Dy())
	}

	dst := image.NewRGBA(ab)
	draw.Draw(dst, ab, after, ab.Min, draw.Src)

	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			p1 := before.At(bb.Min.X+x, bb.Min.Y+y)
			p2 := after.At(ab.Min.X+x, ab.Min.Y+y)
			if pixelDiffers(p1, p2, threshold) {
				dst.SetRGBA(ab.Min.X+x, ab.Min.Y+y, highlight)
			}
		}
	}

	return dst, nil
}

func pixelDiffers(p1, p2 color.Color, threshold int) bool {
	r1, g1, b1, _ := p1.RGBA()
	r2, g2, b2, _ := p2.RGBA()

	diff := absInt(int(r1>>8)-int(r2>>8)) +
		absInt(int(g1>>8)-int(g2>>8)) +
		absInt(int(b1>>8)-int(b2>>8))
	return diff > threshold
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
