package x11

import (
	"context"
	"image"
	"os"
	"time"

	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
)

// Controller adapts Client to the display.Controller interface.
type Controller struct {
	client *Client
}

var _ display.Controller = (*Controller)(nil)

// PrimaryBounds returns the root screen rectangle. X11 roots are anchored at
// the origin; multi-head offsets are out of scope.
func (c *Controller) PrimaryBounds(ctx context.Context) (grid.Rectangle, error) {
	w, h := c.client.ScreenSize()
	return grid.Rectangle{X: 0, Y: 0, Width: w, Height: h}, nil
}

// CaptureRegion captures the region; a zero-sized rectangle captures the full
// screen.
func (c *Controller) CaptureRegion(ctx context.Context, region grid.Rectangle) (image.Image, error) {
	return c.client.Capture(region.X, region.Y, region.Width, region.Height)
}

// CursorPosition returns the current pointer location.
func (c *Controller) CursorPosition(ctx context.Context) (grid.Point, error) {
	x, y, err := c.client.CursorPosition()
	if err != nil {
		return grid.Point{}, err
	}
	return grid.Point{X: x, Y: y}, nil
}

// MoveMouse warps the pointer to absolute coordinates.
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	return c.client.MoveMouse(x, y)
}

// ClickMouse clicks the given button at the current pointer position.
func (c *Controller) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	return c.client.ClickButton(button.String(), clicks)
}

// PressMouse holds the given button down.
func (c *Controller) PressMouse(ctx context.Context, button display.MouseButton) error {
	return c.client.PressButton(button.String())
}

// ReleaseMouse releases the given button.
func (c *Controller) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	return c.client.ReleaseButton(button.String())
}

// ScrollMouse emits wheel events at the current pointer position.
func (c *Controller) ScrollMouse(ctx context.Context, amount int, horizontal bool) error {
	return c.client.Scroll(amount, horizontal)
}

// TypeText types the text with the given delay between key events.
func (c *Controller) TypeText(ctx context.Context, text string, delay time.Duration) error {
	return c.client.TypeText(text, delay)
}

// PressKey holds a named key down.
func (c *Controller) PressKey(ctx context.Context, key string) error {
	return c.client.PressKey(key)
}

// ReleaseKey releases a named key.
func (c *Controller) ReleaseKey(ctx context.Context, key string) error {
	return c.client.ReleaseKey(key)
}

// SendKeyCombo sends a key combination such as "ctrl+c".
func (c *Controller) SendKeyCombo(ctx context.Context, combo string) error {
	return c.client.SendKeyCombo(combo)
}

// Close closes the X11 connection.
func (c *Controller) Close() error {
	c.client.Close()
	return nil
}

// Provider implements display.Provider for X11.
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new X11 provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Controller connects to the given display (empty uses $DISPLAY).
func (p *Provider) Controller(displayName string) (display.Controller, error) {
	client, err := NewClient(displayName)
	if err != nil {
		return nil, err
	}
	return &Controller{client: client}, nil
}

// Info returns the X11 capability metadata.
func (p *Provider) Info() display.Info {
	return display.Info{
		Name:             "x11",
		SupportsRegions:  true,
		SupportsMouse:    true,
		SupportsKeyboard: true,
		SupportsCursor:   true,
	}
}

// Available reports whether an X display is reachable.
func (p *Provider) Available() bool {
	return os.Getenv("DISPLAY") != ""
}

func init() {
	display.Register(NewProvider())
}
