package tools

import (
	"context"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/uioperator/uictl/config"
	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	input "github.com/uioperator/uictl/internal/input"
	screen "github.com/uioperator/uictl/internal/screen"
)

// stubController records injected events and serves a fixed 1920x1080
// display so handlers can be exercised without a display server.
type stubController struct {
	calls  []string
	bounds grid.Rectangle
	pos    grid.Point
}

func newStubController() *stubController {
	return &stubController{bounds: grid.Rectangle{Width: 1920, Height: 1080}}
}

func (c *stubController) record(call string) error {
	c.calls = append(c.calls, call)
	return nil
}

func (c *stubController) PrimaryBounds(ctx context.Context) (grid.Rectangle, error) {
	return c.bounds, nil
}

func (c *stubController) CaptureRegion(ctx context.Context, region grid.Rectangle) (image.Image, error) {
	c.calls = append(c.calls, fmt.Sprintf("capture(%s)", region))
	return image.NewRGBA(image.Rect(0, 0, region.Width, region.Height)), nil
}

func (c *stubController) CursorPosition(ctx context.Context) (grid.Point, error) {
	return c.pos, nil
}

func (c *stubController) MoveMouse(ctx context.Context, x, y int) error {
	c.pos = grid.Point{X: x, Y: y}
	return c.record(fmt.Sprintf("move(%d,%d)", x, y))
}

func (c *stubController) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	return c.record(fmt.Sprintf("click(%s,%d)", button, clicks))
}

func (c *stubController) PressMouse(ctx context.Context, button display.MouseButton) error {
	return c.record(fmt.Sprintf("press(%s)", button))
}

func (c *stubController) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	return c.record(fmt.Sprintf("release(%s)", button))
}

func (c *stubController) ScrollMouse(ctx context.Context, amount int, horizontal bool) error {
	return c.record(fmt.Sprintf("scroll(%d,%t)", amount, horizontal))
}

func (c *stubController) TypeText(ctx context.Context, text string, delay time.Duration) error {
	return c.record(fmt.Sprintf("type(%q)", text))
}

func (c *stubController) PressKey(ctx context.Context, key string) error {
	return c.record("presskey(" + key + ")")
}

func (c *stubController) ReleaseKey(ctx context.Context, key string) error {
	return c.record("releasekey(" + key + ")")
}

func (c *stubController) SendKeyCombo(ctx context.Context, combo string) error {
	return c.record("combo(" + combo + ")")
}

func (c *stubController) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *stubController) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Input.TypeDelayMs = 0
	cfg.Input.ClickDelayMs = 0
	cfg.Input.DragDurationMs = 20

	store, err := grid.NewStore(grid.BoundsProviderFunc(func() (grid.Rectangle, error) {
		return grid.Rectangle{Width: 1920, Height: 1080}, nil
	}))
	require.NoError(t, err)

	buffer, err := screen.NewBuffer(4, t.TempDir())
	require.NoError(t, err)

	ctrl := newStubController()
	svc := NewService(cfg, store, ctrl, buffer)
	require.NoError(t, svc.Register(nil))
	return svc, ctrl
}

func TestRegisteredToolNames(t *testing.T) {
	svc, _ := newTestService(t)

	names := svc.ToolNames()
	for _, want := range []string{
		"mouse_move", "mouse_left_click", "mouse_right_click", "mouse_double_click",
		"mouse_middle_click", "mouse_press_left", "mouse_release_left",
		"mouse_press_right", "mouse_release_right", "mouse_scroll", "mouse_drag",
		"key_press", "key_release", "key_type", "key_combo",
		"grid_configure", "grid_get_config", "grid_reset", "grid_to_pixel", "grid_from_pixel",
		"screenshot_full", "screenshot_region", "screenshot_at_cursor", "screenshot_diff",
		"execute_sequence",
	} {
		assert.Contains(t, names, want)
	}
}

func TestInvokeUnknownTool(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("window_resize", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestGridConfigureAndReset(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("grid_configure", map[string]any{
		"rows": 4, "columns": 6, "label_scheme": "numeric",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows x 6 columns (numeric scheme)")

	out, err = svc.Invoke("grid_get_config", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows x 6 columns (numeric scheme)")

	out, err = svc.Invoke("grid_reset", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rows x 3 columns (alphanumeric scheme)")
}

func TestGridConfigureRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("grid_configure", map[string]any{"rows": 40})
	require.Error(t, err)

	_, err = svc.Invoke("grid_configure", map[string]any{"label_scheme": "hex"})
	require.Error(t, err)

	// The previous configuration survives failed calls.
	out, err := svc.Invoke("grid_get_config", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rows x 3 columns (alphanumeric scheme)")
}

func TestGridConfigureZeroUsesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("grid_configure", map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "3 rows x 3 columns (alphanumeric scheme)")
}

func TestGridToPixel(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("grid_to_pixel", map[string]any{"grid": "B2"})
	require.NoError(t, err)
	assert.Contains(t, out, "Grid 'B2' -> Center: (960, 540)")

	_, err = svc.Invoke("grid_to_pixel", map[string]any{"grid": "Z9"})
	assert.Error(t, err)
}

func TestGridFromPixel(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("grid_from_pixel", map[string]any{"x": 0, "y": 0})
	require.NoError(t, err)
	assert.Contains(t, out, "Grid cell 'A1'")

	out, err = svc.Invoke("grid_from_pixel", map[string]any{"x": 1919, "y": 1079})
	require.NoError(t, err)
	assert.Contains(t, out, "Grid cell 'C3'")
}

func TestMouseMoveByGridCoordinate(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_move", map[string]any{"grid": "B2"})
	require.NoError(t, err)
	assert.Equal(t, "Mouse moved to (960, 540)", out)
	assert.Equal(t, []string{"move(960,540)"}, ctrl.calls)
}

func TestMouseMoveGridTakesPrecedenceOverPixels(t *testing.T) {
	svc, ctrl := newTestService(t)

	_, err := svc.Invoke("mouse_move", map[string]any{"grid": "A1", "x": 5, "y": 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"move(320,180)"}, ctrl.calls)
}

func TestMouseMoveRequiresPosition(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("mouse_move", map[string]any{"x": 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no position given")
}

func TestClickAtGridCell(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_left_click", map[string]any{"grid": "A1"})
	require.NoError(t, err)
	assert.Equal(t, "Left clicked at (320, 180)", out)
	assert.Equal(t, []string{"move(320,180)", "click(left,1)"}, ctrl.calls)
}

func TestClickAtCurrentPosition(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_right_click", nil)
	require.NoError(t, err)
	assert.Equal(t, "Right clicked at current position", out)
	assert.Equal(t, []string{"click(right,1)"}, ctrl.calls)
}

func TestDoubleClickWithModifier(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_double_click", map[string]any{"shift": true})
	require.NoError(t, err)
	assert.Equal(t, "Double clicked at current position", out)
	assert.Equal(t, []string{"presskey(shift)", "click(left,2)", "releasekey(shift)"}, ctrl.calls)
}

func TestMousePressRelease(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_press_left", nil)
	require.NoError(t, err)
	assert.Equal(t, "Left mouse button pressed", out)

	out, err = svc.Invoke("mouse_release_left", nil)
	require.NoError(t, err)
	assert.Equal(t, "Left mouse button released", out)

	assert.Equal(t, []string{"press(left)", "release(left)"}, ctrl.calls)
}

func TestMouseScroll(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_scroll", map[string]any{"amount": 5})
	require.NoError(t, err)
	assert.Equal(t, "Scrolled 5 at current position", out)
	assert.Equal(t, []string{"scroll(5,false)"}, ctrl.calls)
}

func TestMouseDragBetweenGridCells(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("mouse_drag", map[string]any{
		"start_grid": "A1", "end_grid": "C3", "duration_ms": 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dragged from (320, 180) to (1600, 900)", out)

	require.NotEmpty(t, ctrl.calls)
	assert.Equal(t, "move(320,180)", ctrl.calls[0])
	assert.Equal(t, "release(left)", ctrl.calls[len(ctrl.calls)-1])
	assert.Contains(t, ctrl.calls, "press(left)")
}

func TestMouseDragStartDefaultsToCursor(t *testing.T) {
	svc, ctrl := newTestService(t)
	ctrl.pos = grid.Point{X: 10, Y: 20}

	out, err := svc.Invoke("mouse_drag", map[string]any{
		"end_x": 50, "end_y": 60, "duration_ms": 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dragged from (10, 20) to (50, 60)", out)
}

func TestMouseDragRequiresEnd(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("mouse_drag", map[string]any{"start_grid": "A1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drag end")
}

func TestKeyTools(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("key_press", map[string]any{"key": "ctrl"})
	require.NoError(t, err)
	assert.Equal(t, "Key pressed: ctrl", out)

	out, err = svc.Invoke("key_release", map[string]any{"key": "ctrl"})
	require.NoError(t, err)
	assert.Equal(t, "Key released: ctrl", out)

	out, err = svc.Invoke("key_type", map[string]any{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Typed 5 characters", out)

	out, err = svc.Invoke("key_combo", map[string]any{"keys": []any{"ctrl", "c"}})
	require.NoError(t, err)
	assert.Equal(t, "Key combo executed: ctrl+c", out)

	assert.Equal(t, []string{
		"presskey(ctrl)", "releasekey(ctrl)", `type("hello")`, "combo(ctrl+c)",
	}, ctrl.calls)
}

func TestScreenshotFull(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("screenshot_full", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Screenshot captured (1920x1080)")
	assert.Contains(t, out, "Base64 data:")
}

func TestScreenshotRegionByGridCell(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("screenshot_region", map[string]any{"grid_start": "A1"})
	require.NoError(t, err)
	assert.Contains(t, out, "Grid cell A1")
	assert.Equal(t, []string{"capture(640x360 at (0, 0))"}, ctrl.calls)
}

func TestScreenshotRegionRequiresBounds(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("screenshot_region", map[string]any{"x": 0, "y": 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no region given")
}

func TestScreenshotDiffNeedsTwoCaptures(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("screenshot_diff", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two buffered screenshots")

	_, err = svc.Invoke("screenshot_full", nil)
	require.NoError(t, err)
	_, err = svc.Invoke("screenshot_full", nil)
	require.NoError(t, err)

	out, err := svc.Invoke("screenshot_diff", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes")
}

func TestExecuteSequenceContinuesPastErrors(t *testing.T) {
	svc, ctrl := newTestService(t)

	out, err := svc.Invoke("execute_sequence", map[string]any{
		"commands": []any{
			map[string]any{"tool": "mouse_move", "params": map[string]any{"x": 5, "y": 5}},
			map[string]any{"tool": "window_resize"},
			map[string]any{"tool": "key_type", "params": map[string]any{"text": "ok"}},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Executing 3 commands:")
	assert.Contains(t, out, "1. mouse_move: Mouse moved to (5, 5)")
	assert.Contains(t, out, "2. window_resize: ERROR: unknown tool: window_resize")
	assert.Contains(t, out, "3. key_type: Typed 2 characters")

	assert.Equal(t, []string{"move(5,5)", `type("ok")`}, ctrl.calls)
}

func TestExecuteSequenceRejectsNesting(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.Invoke("execute_sequence", map[string]any{
		"commands": []any{
			map[string]any{"tool": "execute_sequence"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "sequences cannot be nested")
}

func TestExecuteSequenceRequiresCommands(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Invoke("execute_sequence", map[string]any{"commands": []any{}})
	require.Error(t, err)
}

func TestRateLimitAppliesToInjectionTools(t *testing.T) {
	svc, _ := newTestService(t)
	svc.cfg.Input.RateLimit = config.RateLimitConfig{
		Enabled: true, MaxActionsPerMinute: 1, WindowSeconds: 60,
	}
	// Rebuild the limiter from the updated config.
	svc.limiter = input.NewRateLimiter(svc.cfg.Input.RateLimit)

	_, err := svc.Invoke("key_press", map[string]any{"key": "a"})
	require.NoError(t, err)

	_, err = svc.Invoke("key_press", map[string]any{"key": "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}
