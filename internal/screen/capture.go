package screen

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"time"

	uuid "github.com/google/uuid"

	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
)

// Screenshot is a captured screen region encoded as base64 PNG.
type Screenshot struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Format    string         `json:"format"`
	Region    grid.Rectangle `json:"region"`
	Data      string         `json:"data"`
}

// Capturer takes screenshots of the full screen, arbitrary regions, grid
// cells, and the area around the cursor.
type Capturer struct {
	ctrl     display.Controller
	resolver *grid.Resolver
}

// NewCapturer creates a capturer over the given controller and grid
// resolver.
func NewCapturer(ctrl display.Controller, resolver *grid.Resolver) *Capturer {
	return &Capturer{ctrl: ctrl, resolver: resolver}
}

// CaptureFull captures the entire primary display.
func (c *Capturer) CaptureFull(ctx context.Context) (*Screenshot, error) {
	bounds, err := c.ctrl.PrimaryBounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("query screen bounds: %w", err)
	}
	return c.CaptureRegion(ctx, bounds)
}

// CaptureRegion captures the given screen region.
func (c *Capturer) CaptureRegion(ctx context.Context, region grid.Rectangle) (*Screenshot, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("invalid capture region %s", region)
	}

	img, err := c.ctrl.CaptureRegion(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("capture region %s: %w", region, err)
	}
	return encode(img, region)
}

// CaptureCell captures the screen region addressed by a grid coordinate.
func (c *Capturer) CaptureCell(ctx context.Context, coordinate string) (*Screenshot, error) {
	region, err := c.resolver.ResolveToBounds(coordinate)
	if err != nil {
		return nil, err
	}
	return c.CaptureRegion(ctx, region)
}

// CaptureRange captures the smallest region covering two grid coordinates.
func (c *Capturer) CaptureRange(ctx context.Context, from, to string) (*Screenshot, error) {
	a, err := c.resolver.ResolveToBounds(from)
	if err != nil {
		return nil, err
	}
	b, err := c.resolver.ResolveToBounds(to)
	if err != nil {
		return nil, err
	}
	return c.CaptureRegion(ctx, a.Union(b))
}

// CaptureAtCursor captures a width x height region centered on the cursor,
// clamped to the screen edges.
func (c *Capturer) CaptureAtCursor(ctx context.Context, width, height int) (*Screenshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}

	pos, err := c.ctrl.CursorPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("query cursor position: %w", err)
	}
	bounds, err := c.ctrl.PrimaryBounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("query screen bounds: %w", err)
	}

	region := centerRegion(pos, width, height, bounds)
	return c.CaptureRegion(ctx, region)
}

// centerRegion builds a region of the given size centered on p, shifted
// and shrunk as needed to stay inside bounds.
func centerRegion(p grid.Point, width, height int, bounds grid.Rectangle) grid.Rectangle {
	if width > bounds.Width {
		width = bounds.Width
	}
	if height > bounds.Height {
		height = bounds.Height
	}

	x := p.X - width/2
	y := p.Y - height/2

	if x < bounds.X {
		x = bounds.X
	}
	if y < bounds.Y {
		y = bounds.Y
	}
	if x+width > bounds.X+bounds.Width {
		x = bounds.X + bounds.Width - width
	}
	if y+height > bounds.Y+bounds.Height {
		y = bounds.Y + bounds.Height - height
	}

	return grid.Rectangle{X: x, Y: y, Width: width, Height: height}
}

func encode(img image.Image, region grid.Rectangle) (*Screenshot, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}

	shot := &Screenshot{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Format:    "png",
		Region:    region,
		Data:      base64.StdEncoding.EncodeToString(data),
	}
	logger.Debug("Captured screenshot", "id", shot.ID, "region", region.String(), "bytes", len(data))
	return shot, nil
}

// FromImage encodes an image into a Screenshot covering the given screen
// region.
func FromImage(img image.Image, region grid.Rectangle) (*Screenshot, error) {
	return encode(img, region)
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG decodes PNG bytes back into an image.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

// Decode returns the screenshot's pixels as an image.
func (s *Screenshot) Decode() (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(s.Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64 data: %w", err)
	}
	return DecodePNG(raw)
}
