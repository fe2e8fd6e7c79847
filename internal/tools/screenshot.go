package tools

import (
	"context"
	"fmt"
	"image/color"

	mcp_golang "github.com/metoro-io/mcp-golang"

	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
	screen "github.com/uioperator/uictl/internal/screen"
)

// ScreenshotFullArgs are the arguments for screenshot_full.
type ScreenshotFullArgs struct {
	Overlay bool `json:"overlay,omitempty" jsonschema:"description=Draw the grid cell boundaries and labels onto the screenshot"`
}

// ScreenshotRegionArgs are the arguments for screenshot_region. Either
// pixel bounds or grid coordinates select the region.
type ScreenshotRegionArgs struct {
	X         *int   `json:"x,omitempty" jsonschema:"description=Region X pixel coordinate"`
	Y         *int   `json:"y,omitempty" jsonschema:"description=Region Y pixel coordinate"`
	Width     *int   `json:"width,omitempty" jsonschema:"description=Region width in pixels"`
	Height    *int   `json:"height,omitempty" jsonschema:"description=Region height in pixels"`
	GridStart string `json:"grid_start,omitempty" jsonschema:"description=Starting grid cell"`
	GridEnd   string `json:"grid_end,omitempty" jsonschema:"description=Ending grid cell; with grid_start selects the covering range"`
}

// ScreenshotAtCursorArgs are the arguments for screenshot_at_cursor.
type ScreenshotAtCursorArgs struct {
	Width  int `json:"width,omitempty" jsonschema:"description=Capture width in pixels (default 200)"`
	Height int `json:"height,omitempty" jsonschema:"description=Capture height in pixels (default 200)"`
}

// ScreenshotDiffArgs are the arguments for screenshot_diff.
type ScreenshotDiffArgs struct {
	BeforeID  string `json:"before_id,omitempty" jsonschema:"description=Buffered screenshot ID for the before image (default: second most recent)"`
	AfterID   string `json:"after_id,omitempty" jsonschema:"description=Buffered screenshot ID for the after image (default: most recent)"`
	Threshold int    `json:"threshold,omitempty" jsonschema:"description=Per-pixel sensitivity threshold 0-255 (default 30)"`
}

func (s *Service) registerScreenshotTools(server *mcp_golang.Server) error {
	if err := registerTool(s, server, "screenshot_full",
		"Capture the entire screen as base64 PNG", s.handleScreenshotFull); err != nil {
		return err
	}
	if err := registerTool(s, server, "screenshot_region",
		"Capture a region by pixel bounds or grid cells", s.handleScreenshotRegion); err != nil {
		return err
	}
	if err := registerTool(s, server, "screenshot_at_cursor",
		"Capture the region around the current cursor position", s.handleScreenshotAtCursor); err != nil {
		return err
	}
	return registerTool(s, server, "screenshot_diff",
		"Compare two buffered screenshots and report the changed area", s.handleScreenshotDiff)
}

func (s *Service) handleScreenshotFull(args ScreenshotFullArgs) (string, error) {
	shot, err := s.capturer.CaptureFull(context.Background())
	if err != nil {
		return "", err
	}

	if args.Overlay {
		opts := screen.OverlayOptions{
			ShowLabels: s.cfg.Screenshot.Overlay.ShowLabels,
			LineAlpha:  uint8(s.cfg.Screenshot.Overlay.LineAlpha),
		}
		shot, err = screen.OverlayScreenshot(shot, s.store.Snapshot(), opts)
		if err != nil {
			return "", err
		}
	}

	s.remember(shot)
	return fmt.Sprintf("Screenshot captured (%dx%d), id %s. Base64 data:\n%s",
		shot.Region.Width, shot.Region.Height, shot.ID, shot.Data), nil
}

func (s *Service) handleScreenshotRegion(args ScreenshotRegionArgs) (string, error) {
	ctx := context.Background()

	var (
		shot        *screen.Screenshot
		description string
		err         error
	)

	switch {
	case args.GridStart != "" && args.GridEnd != "":
		shot, err = s.capturer.CaptureRange(ctx, args.GridStart, args.GridEnd)
		description = fmt.Sprintf("Grid range %s to %s", args.GridStart, args.GridEnd)
	case args.GridStart != "":
		shot, err = s.capturer.CaptureCell(ctx, args.GridStart)
		description = fmt.Sprintf("Grid cell %s", args.GridStart)
	case args.X != nil && args.Y != nil && args.Width != nil && args.Height != nil:
		region := grid.Rectangle{X: *args.X, Y: *args.Y, Width: *args.Width, Height: *args.Height}
		shot, err = s.capturer.CaptureRegion(ctx, region)
		description = fmt.Sprintf("Region (%d, %d) %dx%d", region.X, region.Y, region.Width, region.Height)
	default:
		return "", fmt.Errorf("no region given: provide x/y/width/height or grid_start")
	}
	if err != nil {
		return "", err
	}

	s.remember(shot)
	return fmt.Sprintf("Screenshot captured: %s, id %s. Base64 data:\n%s",
		description, shot.ID, shot.Data), nil
}

func (s *Service) handleScreenshotAtCursor(args ScreenshotAtCursorArgs) (string, error) {
	width := args.Width
	if width == 0 {
		width = 200
	}
	height := args.Height
	if height == 0 {
		height = 200
	}

	shot, err := s.capturer.CaptureAtCursor(context.Background(), width, height)
	if err != nil {
		return "", err
	}

	s.remember(shot)
	return fmt.Sprintf("Screenshot captured around cursor, region %s, id %s. Base64 data:\n%s",
		shot.Region, shot.ID, shot.Data), nil
}

func (s *Service) handleScreenshotDiff(args ScreenshotDiffArgs) (string, error) {
	if s.buffer == nil {
		return "", fmt.Errorf("screenshot buffer is not enabled")
	}

	before, after, err := s.diffPair(args.BeforeID, args.AfterID)
	if err != nil {
		return "", err
	}

	beforeImg, err := before.Decode()
	if err != nil {
		return "", fmt.Errorf("decode before screenshot: %w", err)
	}
	afterImg, err := after.Decode()
	if err != nil {
		return "", fmt.Errorf("decode after screenshot: %w", err)
	}

	result, err := screen.Compare(beforeImg, afterImg, args.Threshold)
	if err != nil {
		return "", err
	}

	if !result.HasChanges() {
		return fmt.Sprintf("No changes between %s and %s (%d pixels compared)",
			before.ID, after.ID, result.TotalPixels), nil
	}

	diffImg, err := screen.DiffImage(beforeImg, afterImg, args.Threshold,
		color.RGBA{R: 255, G: 0, B: 0, A: 255})
	if err != nil {
		return "", err
	}
	diffShot, err := screen.FromImage(diffImg, after.Region)
	if err != nil {
		return "", err
	}
	s.remember(diffShot)

	return fmt.Sprintf("Changed %d of %d pixels (%.2f%%), bounding box %s. Diff image id %s. Base64 data:\n%s",
		result.ChangedPixels, result.TotalPixels, result.ChangePercentage,
		result.BoundingBox, diffShot.ID, diffShot.Data), nil
}

// diffPair picks the before/after screenshots, defaulting to the two most
// recent buffered captures.
func (s *Service) diffPair(beforeID, afterID string) (*screen.Screenshot, *screen.Screenshot, error) {
	if beforeID != "" && afterID != "" {
		before, err := s.buffer.ByID(beforeID)
		if err != nil {
			return nil, nil, err
		}
		after, err := s.buffer.ByID(afterID)
		if err != nil {
			return nil, nil, err
		}
		return before, after, nil
	}

	recent := s.buffer.Recent(2)
	if len(recent) < 2 {
		return nil, nil, fmt.Errorf("need at least two buffered screenshots to diff, have %d", len(recent))
	}
	// Recent returns newest first.
	return recent[1], recent[0], nil
}

func (s *Service) remember(shot *screen.Screenshot) {
	if s.buffer == nil {
		return
	}
	if err := s.buffer.Add(shot); err != nil {
		logger.Warn("Failed to buffer screenshot", "error", err, "screenshot_id", shot.ID)
	}
}
