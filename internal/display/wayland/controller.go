package wayland

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"time"

	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
)

// Controller implements display.Controller for wlroots compositors by
// shelling out to grim (capture), wtype (keyboard), and wlrctl (pointer).
// Wayland has no portable injection protocol, so capability is degraded:
// cursor position is unavailable, and pointer ops fail when wlrctl is
// missing.
type Controller struct{}

var _ display.Controller = (*Controller)(nil)

// PrimaryBounds derives the output size from a full-screen grim capture.
// Wayland does not expose output geometry without compositor-specific IPC.
func (c *Controller) PrimaryBounds(ctx context.Context) (grid.Rectangle, error) {
	img, err := c.CaptureRegion(ctx, grid.Rectangle{})
	if err != nil {
		return grid.Rectangle{}, err
	}
	b := img.Bounds()
	return grid.Rectangle{X: 0, Y: 0, Width: b.Dx(), Height: b.Dy()}, nil
}

// CaptureRegion captures via grim; a zero-sized rectangle captures the whole
// output.
func (c *Controller) CaptureRegion(ctx context.Context, region grid.Rectangle) (image.Image, error) {
	args := []string{"-t", "png"}
	if region.Width > 0 && region.Height > 0 {
		args = append(args, "-g", fmt.Sprintf("%d,%d %dx%d", region.X, region.Y, region.Width, region.Height))
	}
	args = append(args, "-") // stdout

	out, err := runTool(ctx, "grim", args...)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to decode grim output: %w", err)
	}
	return img, nil
}

// CursorPosition is not exposed by Wayland for security reasons.
func (c *Controller) CursorPosition(ctx context.Context) (grid.Point, error) {
	return grid.Point{}, fmt.Errorf("cursor position is not supported on Wayland")
}

// MoveMouse moves the pointer via wlrctl.
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	// wlrctl only supports relative motion; jump from the top-left corner.
	if _, err := runTool(ctx, "wlrctl", "pointer", "move", "-100000", "-100000"); err != nil {
		return err
	}
	_, err := runTool(ctx, "wlrctl", "pointer", "move", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

// ClickMouse clicks via wlrctl at the current pointer position.
func (c *Controller) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	for i := 0; i < clicks; i++ {
		if _, err := runTool(ctx, "wlrctl", "pointer", "click", button.String()); err != nil {
			return err
		}
		if i < clicks-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return nil
}

// PressMouse holds a button down via wlrctl.
func (c *Controller) PressMouse(ctx context.Context, button display.MouseButton) error {
	_, err := runTool(ctx, "wlrctl", "pointer", "press", button.String())
	return err
}

// ReleaseMouse releases a held button via wlrctl.
func (c *Controller) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	_, err := runTool(ctx, "wlrctl", "pointer", "release", button.String())
	return err
}

// ScrollMouse scrolls via wlrctl; wlrctl takes dy then dx.
func (c *Controller) ScrollMouse(ctx context.Context, amount int, horizontal bool) error {
	dy, dx := amount, 0
	if horizontal {
		dy, dx = 0, amount
	}
	_, err := runTool(ctx, "wlrctl", "pointer", "scroll", strconv.Itoa(dy), strconv.Itoa(dx))
	return err
}

// TypeText types via wtype.
func (c *Controller) TypeText(ctx context.Context, text string, delay time.Duration) error {
	args := []string{}
	if delay > 0 {
		args = append(args, "-d", strconv.Itoa(int(delay.Milliseconds())))
	}
	args = append(args, "--", text)
	_, err := runTool(ctx, "wtype", args...)
	return err
}

// PressKey holds a named key down via wtype.
func (c *Controller) PressKey(ctx context.Context, key string) error {
	_, err := runTool(ctx, "wtype", "-P", key)
	return err
}

// ReleaseKey releases a named key via wtype.
func (c *Controller) ReleaseKey(ctx context.Context, key string) error {
	_, err := runTool(ctx, "wtype", "-p", key)
	return err
}

// SendKeyCombo sends a modifier combo via wtype -M/-m flags.
func (c *Controller) SendKeyCombo(ctx context.Context, combo string) error {
	mods, key, err := splitCombo(combo)
	if err != nil {
		return err
	}

	args := []string{}
	for _, mod := range mods {
		args = append(args, "-M", mod)
	}
	args = append(args, "-P", key, "-p", key)
	for i := len(mods) - 1; i >= 0; i-- {
		args = append(args, "-m", mods[i])
	}

	_, err = runTool(ctx, "wtype", args...)
	return err
}

// Close is a no-op; every operation runs a short-lived subprocess.
func (c *Controller) Close() error { return nil }

func runTool(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s is required for this operation on Wayland: %w", name, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logger.Debug("Wayland helper failed", "tool", name, "stderr", stderr.String())
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return stdout.Bytes(), nil
}

func splitCombo(combo string) (mods []string, key string, err error) {
	parts := splitComboParts(combo)
	if len(parts) == 0 {
		return nil, "", fmt.Errorf("invalid key combination: %s", combo)
	}
	return parts[:len(parts)-1], parts[len(parts)-1], nil
}

func splitComboParts(combo string) []string {
	var parts []string
	var cur []rune
	for _, r := range combo {
		if r == '+' || r == '-' {
			if len(cur) > 0 {
				parts = append(parts, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

// Provider implements display.Provider for Wayland.
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new Wayland provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Controller returns the subprocess-backed controller; the display argument
// is ignored because the helper tools use $WAYLAND_DISPLAY themselves.
func (p *Provider) Controller(string) (display.Controller, error) {
	return &Controller{}, nil
}

// Info returns the Wayland capability metadata.
func (p *Provider) Info() display.Info {
	return display.Info{
		Name:             "wayland",
		SupportsRegions:  true,
		SupportsMouse:    true,
		SupportsKeyboard: true,
		SupportsCursor:   false,
	}
}

// Available reports whether a Wayland session is active. Wayland takes
// priority over X11 when both are present (XWayland sets $DISPLAY too).
func (p *Provider) Available() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func init() {
	display.Register(NewProvider())
}
