package input

import (
	"context"
	"fmt"
	"time"

	config "github.com/uioperator/uictl/config"
	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
)

// Mouse provides high-level pointer operations on top of a display
// controller: clicks with modifiers, press/release, scrolling, and smooth
// drags.
type Mouse struct {
	ctrl display.Controller
	cfg  config.InputConfig
}

// NewMouse creates a mouse service over the given controller.
func NewMouse(ctrl display.Controller, cfg config.InputConfig) *Mouse {
	return &Mouse{ctrl: ctrl, cfg: cfg}
}

// ClickOptions modifies how a click is performed.
type ClickOptions struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// MoveTo moves the pointer to the given screen coordinates.
func (m *Mouse) MoveTo(ctx context.Context, x, y int) error {
	return m.ctrl.MoveMouse(ctx, x, y)
}

// Position returns the current pointer position.
func (m *Mouse) Position(ctx context.Context) (grid.Point, error) {
	return m.ctrl.CursorPosition(ctx)
}

// Click performs clicks at the current pointer position.
func (m *Mouse) Click(ctx context.Context, button display.MouseButton, clicks int, opts ClickOptions) error {
	if clicks < 1 {
		clicks = 1
	}
	logger.Debug("Mouse click", "button", button.String(), "clicks", clicks)

	release, err := m.pressModifiers(ctx, opts)
	if err != nil {
		return err
	}
	defer release()

	return m.ctrl.ClickMouse(ctx, button, clicks)
}

// ClickAt moves the pointer and then clicks.
func (m *Mouse) ClickAt(ctx context.Context, x, y int, button display.MouseButton, clicks int, opts ClickOptions) error {
	if err := m.MoveTo(ctx, x, y); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", x, y, err)
	}
	return m.Click(ctx, button, clicks, opts)
}

// Press presses a mouse button without releasing it.
func (m *Mouse) Press(ctx context.Context, button display.MouseButton) error {
	return m.ctrl.PressMouse(ctx, button)
}

// Release releases a previously pressed mouse button.
func (m *Mouse) Release(ctx context.Context, button display.MouseButton) error {
	return m.ctrl.ReleaseMouse(ctx, button)
}

// Scroll scrolls the wheel. Positive amounts scroll down (or right when
// horizontal).
func (m *Mouse) Scroll(ctx context.Context, amount int, horizontal bool) error {
	return m.ctrl.ScrollMouse(ctx, amount, horizontal)
}

// ScrollAt moves the pointer and then scrolls.
func (m *Mouse) ScrollAt(ctx context.Context, x, y, amount int, horizontal bool) error {
	if err := m.MoveTo(ctx, x, y); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", x, y, err)
	}
	return m.Scroll(ctx, amount, horizontal)
}

// Drag presses a button at from, moves the pointer smoothly to to over the
// given duration, and releases the button. A zero duration uses the
// configured default.
func (m *Mouse) Drag(ctx context.Context, from, to grid.Point, button display.MouseButton, duration time.Duration) error {
	if duration <= 0 {
		duration = m.cfg.DragDuration()
	}
	logger.Debug("Mouse drag",
		"from_x", from.X, "from_y", from.Y,
		"to_x", to.X, "to_y", to.Y,
		"button", button.String(), "duration", duration)

	if err := m.MoveTo(ctx, from.X, from.Y); err != nil {
		return fmt.Errorf("move to drag start: %w", err)
	}
	if err := sleep(ctx, settleDelay); err != nil {
		return err
	}

	if err := m.ctrl.PressMouse(ctx, button); err != nil {
		return fmt.Errorf("press %s button: %w", button, err)
	}
	if err := sleep(ctx, settleDelay); err != nil {
		_ = m.ctrl.ReleaseMouse(ctx, button)
		return err
	}

	steps := int(duration / (10 * time.Millisecond))
	if steps < 10 {
		steps = 10
	}
	stepDelay := duration / time.Duration(steps)

	dx := float64(to.X-from.X) / float64(steps)
	dy := float64(to.Y-from.Y) / float64(steps)

	for i := 1; i <= steps; i++ {
		x := from.X + int(dx*float64(i))
		y := from.Y + int(dy*float64(i))
		if err := m.MoveTo(ctx, x, y); err != nil {
			_ = m.ctrl.ReleaseMouse(ctx, button)
			return fmt.Errorf("drag step %d: %w", i, err)
		}
		if err := sleep(ctx, stepDelay); err != nil {
			_ = m.ctrl.ReleaseMouse(ctx, button)
			return err
		}
	}

	// Land exactly on the target before releasing.
	if err := m.MoveTo(ctx, to.X, to.Y); err != nil {
		_ = m.ctrl.ReleaseMouse(ctx, button)
		return fmt.Errorf("move to drag end: %w", err)
	}
	if err := sleep(ctx, settleDelay); err != nil {
		_ = m.ctrl.ReleaseMouse(ctx, button)
		return err
	}

	return m.ctrl.ReleaseMouse(ctx, button)
}

// settleDelay is the pause around button transitions so the target
// application registers the event.
const settleDelay = 50 * time.Millisecond

func (m *Mouse) pressModifiers(ctx context.Context, opts ClickOptions) (func(), error) {
	var pressed []string
	for _, mod := range []struct {
		on  bool
		key string
	}{
		{opts.Shift, "shift"},
		{opts.Ctrl, "ctrl"},
		{opts.Alt, "alt"},
	} {
		if !mod.on {
			continue
		}
		if err := m.ctrl.PressKey(ctx, mod.key); err != nil {
			for i := len(pressed) - 1; i >= 0; i-- {
				_ = m.ctrl.ReleaseKey(ctx, pressed[i])
			}
			return nil, fmt.Errorf("press %s: %w", mod.key, err)
		}
		pressed = append(pressed, mod.key)
	}

	return func() {
		for i := len(pressed) - 1; i >= 0; i-- {
			_ = m.ctrl.ReleaseKey(ctx, pressed[i])
		}
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
