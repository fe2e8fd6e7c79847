package display

import (
	"context"
	"image"
	"time"

	grid "github.com/uioperator/uictl/internal/grid"
)

// Controller abstracts display server-specific operations (X11, Wayland,
// macOS Quartz): capture, pointer injection, and key injection.
type Controller interface {
	// Screen operations
	PrimaryBounds(ctx context.Context) (grid.Rectangle, error)
	CaptureRegion(ctx context.Context, region grid.Rectangle) (image.Image, error)
	CursorPosition(ctx context.Context) (grid.Point, error)

	// Mouse operations
	MoveMouse(ctx context.Context, x, y int) error
	ClickMouse(ctx context.Context, button MouseButton, clicks int) error
	PressMouse(ctx context.Context, button MouseButton) error
	ReleaseMouse(ctx context.Context, button MouseButton) error
	ScrollMouse(ctx context.Context, amount int, horizontal bool) error

	// Keyboard operations
	TypeText(ctx context.Context, text string, delay time.Duration) error
	PressKey(ctx context.Context, key string) error
	ReleaseKey(ctx context.Context, key string) error
	SendKeyCombo(ctx context.Context, combo string) error

	// Lifecycle
	Close() error
}

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// String returns the string representation of a mouse button
func (b MouseButton) String() string {
	switch b {
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "left"
	}
}

// ParseMouseButton parses a string into a MouseButton, defaulting to left.
func ParseMouseButton(s string) MouseButton {
	switch s {
	case "middle":
		return MouseButtonMiddle
	case "right":
		return MouseButtonRight
	default:
		return MouseButtonLeft
	}
}

// Provider creates Controller instances for a specific display server.
type Provider interface {
	// Controller connects to the given display; empty means the default one.
	Controller(display string) (Controller, error)

	// Info returns metadata about the display server.
	Info() Info

	// Available reports whether this display server can be used right now.
	Available() bool
}

// Info contains metadata about a display server's capabilities. Degraded
// backends (Wayland) clear the flags for operations they cannot perform.
type Info struct {
	Name             string // "x11", "wayland", "macos"
	SupportsRegions  bool
	SupportsMouse    bool
	SupportsKeyboard bool
	SupportsCursor   bool
}
