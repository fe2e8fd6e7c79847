//go:build darwin

package macos

import (
	"fmt"
	"image"
	"strings"
	"time"

	robotgo "github.com/go-vgo/robotgo"
)

// Client provides macOS screen control operations using RobotGo.
type Client struct {
	screenWidth  int
	screenHeight int
}

// Modifier and key aliases translated to RobotGo names.
var (
	modifierMap = map[string]string{
		"super":   "cmd",
		"command": "cmd",
		"cmd":     "cmd",
		"ctrl":    "ctrl",
		"control": "ctrl",
		"alt":     "alt",
		"option":  "alt",
		"shift":   "shift",
	}

	specialKeyMap = map[string]string{
		"return":    "enter",
		"escape":    "esc",
		"del":       "delete",
		"spacebar":  "space",
		"pgup":      "pageup",
		"pgdn":      "pagedown",
		"arrowup":   "up",
		"arrowdown": "down",
	}
)

// NewClient creates a new macOS client.
func NewClient() (*Client, error) {
	width, height := robotgo.GetScreenSize()
	return &Client{screenWidth: width, screenHeight: height}, nil
}

// Close is a no-op for RobotGo.
func (c *Client) Close() {}

// ScreenSize returns the primary display dimensions.
func (c *Client) ScreenSize() (int, int) {
	return c.screenWidth, c.screenHeight
}

// Capture grabs the given region; a zero-sized region captures the full
// screen.
func (c *Client) Capture(x, y, width, height int) (image.Image, error) {
	if width == 0 || height == 0 {
		x, y = 0, 0
		width, height = c.screenWidth, c.screenHeight
	}

	if x < 0 || y < 0 || x+width > c.screenWidth || y+height > c.screenHeight {
		return nil, fmt.Errorf("invalid region: (%d,%d,%d,%d) exceeds screen bounds (%d,%d)",
			x, y, width, height, c.screenWidth, c.screenHeight)
	}

	bitmap := robotgo.CaptureScreen(x, y, width, height)
	if bitmap == nil {
		return nil, fmt.Errorf("failed to capture screen")
	}
	defer robotgo.FreeBitmap(bitmap)

	img := robotgo.ToImage(bitmap)
	if img == nil {
		return nil, fmt.Errorf("failed to convert bitmap to image")
	}
	return img, nil
}

// CursorPosition returns the current pointer location.
func (c *Client) CursorPosition() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

// MoveMouse moves the pointer to absolute coordinates.
func (c *Client) MoveMouse(x, y int) error {
	if x < 0 || y < 0 || x > c.screenWidth || y > c.screenHeight {
		return fmt.Errorf("invalid coordinates: (%d,%d) exceeds screen bounds (%d,%d)",
			x, y, c.screenWidth, c.screenHeight)
	}
	robotgo.Move(x, y)
	return nil
}

func robotButton(button string) (string, error) {
	switch button {
	case "left", "right":
		return button, nil
	case "middle":
		return "center", nil
	default:
		return "", fmt.Errorf("invalid button: %s (must be left, right, or middle)", button)
	}
}

// ClickButton clicks at the current pointer position.
func (c *Client) ClickButton(button string, clicks int) error {
	btn, err := robotButton(button)
	if err != nil {
		return err
	}

	for i := 0; i < clicks; i++ {
		if i > 0 {
			time.Sleep(100 * time.Millisecond)
		}
		robotgo.Click(btn, false)
	}
	return nil
}

// PressButton holds a button down until ReleaseButton.
func (c *Client) PressButton(button string) error {
	btn, err := robotButton(button)
	if err != nil {
		return err
	}
	return robotgo.Toggle(btn, "down")
}

// ReleaseButton releases a held button.
func (c *Client) ReleaseButton(button string) error {
	btn, err := robotButton(button)
	if err != nil {
		return err
	}
	return robotgo.Toggle(btn, "up")
}

// Scroll emits wheel movement. Positive amounts scroll down or right.
func (c *Client) Scroll(amount int, horizontal bool) error {
	if amount == 0 {
		return nil
	}

	abs := amount
	var dir string
	switch {
	case horizontal && amount > 0:
		dir = "right"
	case horizontal:
		dir, abs = "left", -amount
	case amount > 0:
		dir = "down"
	default:
		dir, abs = "up", -amount
	}

	robotgo.ScrollDir(abs, dir)
	return nil
}

// TypeText types the text with the given delay between characters.
func (c *Client) TypeText(text string, delay time.Duration) error {
	if delay > 0 {
		for _, char := range text {
			robotgo.Type(string(char))
			time.Sleep(delay)
		}
		return nil
	}
	robotgo.Type(text)
	return nil
}

func translateKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := specialKeyMap[name]; ok {
		return mapped
	}
	if mapped, ok := modifierMap[name]; ok {
		return mapped
	}
	return name
}

// PressKey holds a named key down until ReleaseKey.
func (c *Client) PressKey(name string) error {
	return robotgo.KeyDown(translateKey(name))
}

// ReleaseKey releases a key held by PressKey.
func (c *Client) ReleaseKey(name string) error {
	return robotgo.KeyUp(translateKey(name))
}

// SendKeyCombo sends a key combination such as "cmd+shift+t".
func (c *Client) SendKeyCombo(combo string) error {
	combo = strings.ReplaceAll(combo, "-", "+")
	parts := strings.Split(combo, "+")
	if combo == "" || len(parts) == 0 {
		return fmt.Errorf("invalid key combo: %s", combo)
	}

	key := translateKey(parts[len(parts)-1])
	var modifiers []any
	for _, mod := range parts[:len(parts)-1] {
		mapped, ok := modifierMap[strings.ToLower(strings.TrimSpace(mod))]
		if !ok {
			return fmt.Errorf("unknown modifier: %s", mod)
		}
		modifiers = append(modifiers, mapped)
	}

	if err := robotgo.KeyTap(key, modifiers...); err != nil {
		return fmt.Errorf("failed to send key combo: %w", err)
	}
	return nil
}
