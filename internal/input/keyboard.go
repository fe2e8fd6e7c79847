package input

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	config "github.com/uioperator/uictl/config"
	clipboard "github.com/uioperator/uictl/internal/clipboard"
	display "github.com/uioperator/uictl/internal/display"
	logger "github.com/uioperator/uictl/internal/logger"
)

// Keyboard provides high-level key operations on top of a display
// controller. Long text is pasted through the clipboard when available,
// which is much faster than synthesizing one key event per character.
type Keyboard struct {
	ctrl display.Controller
	cfg  config.InputConfig

	clipOnce sync.Once
	clipErr  error
}

// NewKeyboard creates a keyboard service over the given controller.
func NewKeyboard(ctrl display.Controller, cfg config.InputConfig) *Keyboard {
	return &Keyboard{ctrl: ctrl, cfg: cfg}
}

// Press presses a key by name without releasing it.
func (k *Keyboard) Press(ctx context.Context, key string) error {
	return k.ctrl.PressKey(ctx, key)
}

// Release releases a previously pressed key.
func (k *Keyboard) Release(ctx context.Context, key string) error {
	return k.ctrl.ReleaseKey(ctx, key)
}

// Tap presses and releases a key.
func (k *Keyboard) Tap(ctx context.Context, key string) error {
	if err := k.ctrl.PressKey(ctx, key); err != nil {
		return err
	}
	return k.ctrl.ReleaseKey(ctx, key)
}

// Type types text with the given per-keystroke delay. A negative delay
// uses the configured default. Text at or above the paste threshold goes
// through the clipboard when one is available.
func (k *Keyboard) Type(ctx context.Context, text string, delay time.Duration) error {
	if text == "" {
		return nil
	}
	if delay < 0 {
		delay = k.cfg.TypeDelay()
	}

	if k.cfg.PasteThreshold > 0 && len(text) >= k.cfg.PasteThreshold {
		err := k.Paste(ctx, text)
		if err == nil {
			return nil
		}
		logger.Debug("Clipboard paste unavailable, typing instead", "error", err)
	}

	logger.Debug("Typing text", "length", len(text), "delay", delay)
	return k.ctrl.TypeText(ctx, text, delay)
}

// Paste places text on the clipboard and sends the platform paste combo.
func (k *Keyboard) Paste(ctx context.Context, text string) error {
	k.clipOnce.Do(func() {
		k.clipErr = clipboard.Init()
	})
	if k.clipErr != nil {
		return fmt.Errorf("clipboard init: %w", k.clipErr)
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	if err := sleep(ctx, settleDelay); err != nil {
		return err
	}

	combo := "ctrl+v"
	if runtime.GOOS == "darwin" {
		combo = "cmd+v"
	}
	return k.ctrl.SendKeyCombo(ctx, combo)
}

// Combo sends a key combination such as "ctrl+shift+s". Keys are pressed
// in order and released in reverse.
func (k *Keyboard) Combo(ctx context.Context, combo string) error {
	if strings.TrimSpace(combo) == "" {
		return fmt.Errorf("empty key combination")
	}
	logger.Debug("Sending key combo", "combo", combo)
	return k.ctrl.SendKeyCombo(ctx, combo)
}

// ComboKeys sends a key combination given as individual key names.
func (k *Keyboard) ComboKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key combination")
	}
	return k.Combo(ctx, strings.Join(keys, "+"))
}
