package x11

import (
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	keybind "github.com/BurntSushi/xgbutil/keybind"
	xgraphics "github.com/BurntSushi/xgbutil/xgraphics"

	logger "github.com/uioperator/uictl/internal/logger"
)

// Client wraps an X11 connection and provides capture and XTEST fake-input
// operations.
type Client struct {
	xu     *xgbutil.XUtil
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
}

// X11 key names for characters that need translation before keycode lookup.
var (
	shiftedChars = map[rune]string{
		'!': "exclam", '@': "at", '#': "numbersign", '$': "dollar",
		'%': "percent", '^': "asciicircum", '&': "ampersand", '*': "asterisk",
		'(': "parenleft", ')': "parenright", '_': "underscore", '+': "plus",
		'{': "braceleft", '}': "braceright", '|': "bar", ':': "colon",
		'"': "quotedbl", '<': "less", '>': "greater", '?': "question",
		'~': "asciitilde",
	}

	plainChars = map[rune]string{
		'.': "period", ',': "comma", ';': "semicolon", '\'': "apostrophe",
		'/': "slash", '\\': "backslash", '-': "minus", '=': "equal",
		'[': "bracketleft", ']': "bracketright", '`': "grave",
		'\n': "Return", '\t': "Tab", ' ': "space",
	}

	modifierNames = map[string]string{
		"ctrl":    "Control_L",
		"control": "Control_L",
		"alt":     "Alt_L",
		"shift":   "Shift_L",
		"super":   "Super_L",
		"meta":    "Meta_L",
		"win":     "Super_L",
		"cmd":     "Super_L",
	}
)

// NewClient connects to the given X display (empty uses $DISPLAY) and
// initializes the XTEST extension.
func NewClient(display string) (*Client, error) {
	// xgbutil prints connection noise on stderr; silence it for the handshake.
	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(display)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11 display %s: %w", display, err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("failed to initialize XTEST extension: %w", err)
	}

	keybind.Initialize(xu)

	return &Client{
		xu:     xu,
		conn:   xu.Conn(),
		screen: xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn()),
	}, nil
}

// Close closes the X11 connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// ScreenSize returns the root screen dimensions in pixels.
func (c *Client) ScreenSize() (int, int) {
	return int(c.screen.WidthInPixels), int(c.screen.HeightInPixels)
}

// Capture grabs the given region of the root window; a zero-sized region
// captures the full screen.
func (c *Client) Capture(x, y, width, height int) (image.Image, error) {
	if width == 0 || height == 0 {
		x, y = 0, 0
		width, height = c.ScreenSize()
	}

	ximg, err := xgraphics.NewDrawable(c.xu, xproto.Drawable(c.screen.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to create drawable: %w", err)
	}

	return ximg.SubImage(image.Rect(x, y, x+width, y+height)), nil
}

// CursorPosition returns the pointer location relative to the root window.
func (c *Client) CursorPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.conn, c.screen.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// MoveMouse warps the pointer to absolute root coordinates.
func (c *Client) MoveMouse(x, y int) error {
	err := xproto.WarpPointerChecked(
		c.conn,
		xproto.WindowNone,
		c.screen.Root,
		0, 0,
		0, 0,
		int16(x), int16(y),
	).Check()
	if err != nil {
		return fmt.Errorf("failed to move mouse: %w", err)
	}
	c.conn.Sync()
	return nil
}

func buttonCode(button string) (byte, error) {
	switch button {
	case "left":
		return 1, nil
	case "middle":
		return 2, nil
	case "right":
		return 3, nil
	default:
		return 0, fmt.Errorf("invalid button: %s (must be 'left', 'middle', or 'right')", button)
	}
}

// PressButton sends a button-press event without releasing.
func (c *Client) PressButton(button string) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}
	if err := c.fakeButton(xproto.ButtonPress, code); err != nil {
		return fmt.Errorf("failed to press %s button: %w", button, err)
	}
	c.conn.Sync()
	return nil
}

// ReleaseButton sends a button-release event.
func (c *Client) ReleaseButton(button string) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}
	if err := c.fakeButton(xproto.ButtonRelease, code); err != nil {
		return fmt.Errorf("failed to release %s button: %w", button, err)
	}
	c.conn.Sync()
	return nil
}

// ClickButton performs press+release cycles at the current pointer position.
func (c *Client) ClickButton(button string, clicks int) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}

	for i := 0; i < clicks; i++ {
		if err := c.fakeButton(xproto.ButtonPress, code); err != nil {
			return fmt.Errorf("failed to send button press: %w", err)
		}
		time.Sleep(50 * time.Millisecond)
		if err := c.fakeButton(xproto.ButtonRelease, code); err != nil {
			return fmt.Errorf("failed to send button release: %w", err)
		}
		if i < clicks-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	c.conn.Sync()
	return nil
}

// Scroll emits wheel events. Positive amounts scroll down or right; X11 maps
// the wheel to buttons 4-7.
func (c *Client) Scroll(amount int, horizontal bool) error {
	if amount == 0 {
		return nil
	}

	var code byte
	switch {
	case horizontal && amount > 0:
		code = 7
	case horizontal:
		code = 6
	case amount > 0:
		code = 5
	default:
		code = 4
	}

	steps := amount
	if steps < 0 {
		steps = -steps
	}

	for i := 0; i < steps; i++ {
		if err := c.fakeButton(xproto.ButtonPress, code); err != nil {
			return fmt.Errorf("failed to send scroll press: %w", err)
		}
		if err := c.fakeButton(xproto.ButtonRelease, code); err != nil {
			return fmt.Errorf("failed to send scroll release: %w", err)
		}
		if i < steps-1 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	c.conn.Sync()
	return nil
}

func (c *Client) fakeButton(eventType byte, code byte) error {
	return xtest.FakeInputChecked(c.conn, eventType, code, 0, c.screen.Root, 0, 0, 0).Check()
}

// keyFor maps a character to its X11 key name and shift requirement.
func keyFor(char rune) (string, bool) {
	if char >= 'A' && char <= 'Z' {
		return strings.ToLower(string(char)), true
	}
	if name, ok := shiftedChars[char]; ok {
		return name, true
	}
	if name, ok := plainChars[char]; ok {
		return name, false
	}
	return string(char), false
}

// TypeText types the text character by character with the given delay between
// key events.
func (c *Client) TypeText(text string, delay time.Duration) error {
	for _, char := range text {
		keyStr, needsShift := keyFor(char)

		keycodes := keybind.StrToKeycodes(c.xu, keyStr)
		if len(keycodes) == 0 {
			logger.Debug("No keycode found for character", "char", string(char), "keyStr", keyStr)
			continue
		}

		if err := c.tapKeycode(keycodes[0], needsShift, delay); err != nil {
			return err
		}
	}

	c.conn.Sync()
	return nil
}

func (c *Client) tapKeycode(keycode xproto.Keycode, withShift bool, delay time.Duration) error {
	if withShift {
		if shift := keybind.StrToKeycodes(c.xu, "Shift_L"); len(shift) > 0 {
			_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(shift[0]), 0, c.screen.Root, 0, 0, 0)
			time.Sleep(delay)
		}
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	time.Sleep(delay)
	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	time.Sleep(delay)

	if withShift {
		if shift := keybind.StrToKeycodes(c.xu, "Shift_L"); len(shift) > 0 {
			_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(shift[0]), 0, c.screen.Root, 0, 0, 0)
			time.Sleep(delay)
		}
	}

	return nil
}

// keycodeFor resolves a key name (a character, "Return", "ctrl", ...) to a
// keycode, translating modifier aliases first.
func (c *Client) keycodeFor(name string) (xproto.Keycode, error) {
	name = strings.TrimSpace(name)
	if xName, ok := modifierNames[strings.ToLower(name)]; ok {
		name = xName
	}
	keycodes := keybind.StrToKeycodes(c.xu, name)
	if len(keycodes) == 0 {
		return 0, fmt.Errorf("no keycode found for key: %s", name)
	}
	return keycodes[0], nil
}

// PressKey holds a named key down until ReleaseKey.
func (c *Client) PressKey(name string) error {
	keycode, err := c.keycodeFor(name)
	if err != nil {
		return err
	}
	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	c.conn.Sync()
	return nil
}

// ReleaseKey releases a key held by PressKey.
func (c *Client) ReleaseKey(name string) error {
	keycode, err := c.keycodeFor(name)
	if err != nil {
		return err
	}
	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(keycode), 0, c.screen.Root, 0, 0, 0)
	c.conn.Sync()
	return nil
}

// SendKeyCombo presses modifiers, taps the final key, then releases the
// modifiers in reverse. Accepts "ctrl+c" or "ctrl-shift-t".
func (c *Client) SendKeyCombo(combo string) error {
	combo = strings.ReplaceAll(combo, "-", "+")
	parts := strings.Split(combo, "+")
	if len(parts) == 0 || combo == "" {
		return fmt.Errorf("invalid key combination: %s", combo)
	}

	var modCodes []xproto.Keycode
	for _, mod := range parts[:len(parts)-1] {
		keycode, err := c.keycodeFor(mod)
		if err != nil {
			return fmt.Errorf("no keycode found for modifier: %s", mod)
		}
		modCodes = append(modCodes, keycode)
	}

	mainCode, err := c.keycodeFor(parts[len(parts)-1])
	if err != nil {
		return err
	}

	for _, keycode := range modCodes {
		_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(keycode), 0, c.screen.Root, 0, 0, 0)
		time.Sleep(10 * time.Millisecond)
	}

	_ = xtest.FakeInput(c.conn, xproto.KeyPress, byte(mainCode), 0, c.screen.Root, 0, 0, 0)
	time.Sleep(50 * time.Millisecond)
	_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(mainCode), 0, c.screen.Root, 0, 0, 0)
	time.Sleep(10 * time.Millisecond)

	for i := len(modCodes) - 1; i >= 0; i-- {
		_ = xtest.FakeInput(c.conn, xproto.KeyRelease, byte(modCodes[i]), 0, c.screen.Root, 0, 0, 0)
		time.Sleep(10 * time.Millisecond)
	}

	c.conn.Sync()
	return nil
}
