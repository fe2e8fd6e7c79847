package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcp_golang "github.com/metoro-io/mcp-golang"
)

// KeyArgs are the arguments for key_press and key_release.
type KeyArgs struct {
	Key string `json:"key" jsonschema:"required,description=Key name (e.g. 'a' or 'enter' or 'ctrl' or 'f1')"`
}

// KeyTypeArgs are the arguments for key_type.
type KeyTypeArgs struct {
	Text    string `json:"text" jsonschema:"required,description=Text to type"`
	DelayMs *int   `json:"delay_ms,omitempty" jsonschema:"description=Delay between keystrokes in milliseconds (default 50)"`
}

// KeyComboArgs are the arguments for key_combo.
type KeyComboArgs struct {
	Keys []string `json:"keys" jsonschema:"required,description=Keys to press together (e.g. ['ctrl' 'c'])"`
}

func (s *Service) registerKeyboardTools(server *mcp_golang.Server) error {
	if err := registerTool(s, server, "key_press",
		"Press a key without releasing it", s.handleKeyPress); err != nil {
		return err
	}
	if err := registerTool(s, server, "key_release",
		"Release a pressed key", s.handleKeyRelease); err != nil {
		return err
	}
	if err := registerTool(s, server, "key_type",
		"Type a string of text", s.handleKeyType); err != nil {
		return err
	}
	return registerTool(s, server, "key_combo",
		"Execute a key combination (e.g. ctrl+c)", s.handleKeyCombo)
}

func (s *Service) handleKeyPress(args KeyArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("key_press"); err != nil {
		return "", err
	}
	if err := s.keyboard.Press(context.Background(), args.Key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Key pressed: %s", args.Key), nil
}

func (s *Service) handleKeyRelease(args KeyArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("key_release"); err != nil {
		return "", err
	}
	if err := s.keyboard.Release(context.Background(), args.Key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Key released: %s", args.Key), nil
}

func (s *Service) handleKeyType(args KeyTypeArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("key_type"); err != nil {
		return "", err
	}

	delay := time.Duration(-1)
	if args.DelayMs != nil {
		delay = time.Duration(*args.DelayMs) * time.Millisecond
	}
	if err := s.keyboard.Type(context.Background(), args.Text, delay); err != nil {
		return "", err
	}
	return fmt.Sprintf("Typed %d characters", len(args.Text)), nil
}

func (s *Service) handleKeyCombo(args KeyComboArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("key_combo"); err != nil {
		return "", err
	}
	if err := s.keyboard.ComboKeys(context.Background(), args.Keys); err != nil {
		return "", err
	}
	return fmt.Sprintf("Key combo executed: %s", strings.Join(args.Keys, "+")), nil
}
