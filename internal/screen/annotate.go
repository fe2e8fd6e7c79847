package screen

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	grid "github.com/uioperator/uictl/internal/grid"
)

// OverlayOptions controls the grid overlay appearance.
type OverlayOptions struct {
	ShowLabels bool
	LineAlpha  uint8
}

// DefaultOverlayOptions returns the standard overlay appearance.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{ShowLabels: true, LineAlpha: 160}
}

var (
	lineColor  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	labelColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Overlay draws the grid cell boundaries and labels onto a copy of src.
// origin is the screen position of the image's top-left pixel; cells are
// drawn where they fall within the image.
func Overlay(src image.Image, cfg grid.Config, origin grid.Point, opts OverlayOptions) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			cell, err := cfg.CellBounds(row, col, cfg.Bounds)
			if err != nil {
				continue
			}
			// Translate from screen to image coordinates.
			r := image.Rect(
				cell.X-origin.X+b.Min.X,
				cell.Y-origin.Y+b.Min.Y,
				cell.X+cell.Width-origin.X+b.Min.X,
				cell.Y+cell.Height-origin.Y+b.Min.Y,
			)
			drawRectOutline(dst, r.Intersect(b), opts.LineAlpha)

			if opts.ShowLabels {
				drawLabel(dst, cfg.CellLabel(row, col), r.Min.X+4, r.Min.Y+14, b)
			}
		}
	}

	return dst
}

// OverlayScreenshot decodes a screenshot, draws the grid overlay, and
// returns a new screenshot with the annotated pixels.
func OverlayScreenshot(shot *Screenshot, cfg grid.Config, opts OverlayOptions) (*Screenshot, error) {
	img, err := shot.Decode()
	if err != nil {
		return nil, err
	}
	annotated := Overlay(img, cfg, shot.Region.TopLeft(), opts)
	return encode(annotated, shot.Region)
}

func drawRectOutline(dst *image.RGBA, r image.Rectangle, alpha uint8) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		blend(dst, x, r.Min.Y, lineColor, alpha)
		blend(dst, x, r.Max.Y-1, lineColor, alpha)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		blend(dst, r.Min.X, y, lineColor, alpha)
		blend(dst, r.Max.X-1, y, lineColor, alpha)
	}
}

// blend mixes c into the destination pixel at the given opacity.
func blend(dst *image.RGBA, x, y int, c color.RGBA, alpha uint8) {
	base := dst.RGBAAt(x, y)
	a := uint32(alpha)
	inv := 255 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(base.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(base.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(base.B)*inv) / 255),
		A: 255,
	})
}

func drawLabel(dst *image.RGBA, text string, x, y int, bounds image.Rectangle) {
	if x < bounds.Min.X || y < bounds.Min.Y || x >= bounds.Max.X || y >= bounds.Max.Y {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
