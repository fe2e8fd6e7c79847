package display

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grid "github.com/uioperator/uictl/internal/grid"
)

type staticController struct {
	bounds grid.Rectangle
	closed bool
}

func (c *staticController) PrimaryBounds(ctx context.Context) (grid.Rectangle, error) {
	return c.bounds, nil
}

func (c *staticController) CaptureRegion(ctx context.Context, region grid.Rectangle) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, region.Width, region.Height)), nil
}

func (c *staticController) CursorPosition(ctx context.Context) (grid.Point, error) {
	return grid.Point{}, nil
}

func (c *staticController) MoveMouse(ctx context.Context, x, y int) error { return nil }

func (c *staticController) ClickMouse(ctx context.Context, button MouseButton, clicks int) error {
	return nil
}

func (c *staticController) PressMouse(ctx context.Context, button MouseButton) error   { return nil }
func (c *staticController) ReleaseMouse(ctx context.Context, button MouseButton) error { return nil }

func (c *staticController) ScrollMouse(ctx context.Context, amount int, horizontal bool) error {
	return nil
}

func (c *staticController) TypeText(ctx context.Context, text string, delay time.Duration) error {
	return nil
}

func (c *staticController) PressKey(ctx context.Context, key string) error   { return nil }
func (c *staticController) ReleaseKey(ctx context.Context, key string) error { return nil }
func (c *staticController) SendKeyCombo(ctx context.Context, combo string) error {
	return nil
}

func (c *staticController) Close() error {
	c.closed = true
	return nil
}

type staticProvider struct {
	name       string
	available  bool
	ctrl       *staticController
	ctrlErr    error
	lastOpened *staticController
}

func (p *staticProvider) Controller(display string) (Controller, error) {
	if p.ctrlErr != nil {
		return nil, p.ctrlErr
	}
	p.lastOpened = p.ctrl
	return p.ctrl, nil
}

func (p *staticProvider) Info() Info {
	return Info{Name: p.name, SupportsRegions: true, SupportsMouse: true, SupportsKeyboard: true, SupportsCursor: true}
}

func (p *staticProvider) Available() bool { return p.available }

func TestDetectReturnsFirstAvailable(t *testing.T) {
	unavailable := &staticProvider{name: "offline", available: false}
	available := &staticProvider{name: "online", available: true}

	Register(unavailable)
	Register(available)

	p, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, "online", p.Info().Name)
}

func TestProvidersPreservesOrder(t *testing.T) {
	first := &staticProvider{name: "first"}
	second := &staticProvider{name: "second"}

	Register(first)
	Register(second)

	ps := Providers()
	require.GreaterOrEqual(t, len(ps), 2)
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Info().Name)
	}
	assert.Contains(t, names, "first")
	assert.Contains(t, names, "second")
	assert.Less(t, indexOf(names, "first"), indexOf(names, "second"))
}

func indexOf(xs []string, want string) int {
	for i, x := range xs {
		if x == want {
			return i
		}
	}
	return -1
}

func TestBoundsProviderSamplesAndCloses(t *testing.T) {
	ctrl := &staticController{bounds: grid.Rectangle{X: 0, Y: 0, Width: 2560, Height: 1440}}
	provider := &staticProvider{name: "test", available: true, ctrl: ctrl}

	bp := BoundsProvider(provider)
	bounds, err := bp.PrimaryBounds()
	require.NoError(t, err)

	assert.Equal(t, grid.Rectangle{Width: 2560, Height: 1440}, bounds)
	assert.True(t, ctrl.closed, "controller is closed after sampling")
}

func TestBoundsProviderPropagatesConnectError(t *testing.T) {
	provider := &staticProvider{name: "broken", ctrlErr: errors.New("cannot open display")}

	_, err := BoundsProvider(provider).PrimaryBounds()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display bounds unavailable")
}

func TestMouseButtonString(t *testing.T) {
	assert.Equal(t, "left", MouseButtonLeft.String())
	assert.Equal(t, "middle", MouseButtonMiddle.String())
	assert.Equal(t, "right", MouseButtonRight.String())
}

func TestParseMouseButton(t *testing.T) {
	assert.Equal(t, MouseButtonRight, ParseMouseButton("right"))
	assert.Equal(t, MouseButtonMiddle, ParseMouseButton("middle"))
	assert.Equal(t, MouseButtonLeft, ParseMouseButton("left"))
	assert.Equal(t, MouseButtonLeft, ParseMouseButton(""))
	assert.Equal(t, MouseButtonLeft, ParseMouseButton("unknown"))
}
