package tools

import (
	"context"
	"fmt"
	"time"

	mcp_golang "github.com/metoro-io/mcp-golang"

	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	input "github.com/uioperator/uictl/internal/input"
)

// MouseMoveArgs are the arguments for mouse_move.
type MouseMoveArgs struct {
	PositionArgs
}

// ClickArgs are the arguments for the click tools.
type ClickArgs struct {
	PositionArgs
	Shift bool `json:"shift,omitempty" jsonschema:"description=Hold shift during the click"`
	Ctrl  bool `json:"ctrl,omitempty" jsonschema:"description=Hold ctrl during the click"`
	Alt   bool `json:"alt,omitempty" jsonschema:"description=Hold alt during the click"`
}

func (a ClickArgs) options() input.ClickOptions {
	return input.ClickOptions{Shift: a.Shift, Ctrl: a.Ctrl, Alt: a.Alt}
}

// EmptyArgs is the argument struct for tools without parameters.
type EmptyArgs struct{}

// MouseScrollArgs are the arguments for mouse_scroll.
type MouseScrollArgs struct {
	PositionArgs
	Amount     int  `json:"amount" jsonschema:"required,description=Scroll amount (positive = down or right; negative = up or left)"`
	Horizontal bool `json:"horizontal,omitempty" jsonschema:"description=Scroll horizontally instead of vertically"`
}

// MouseDragArgs are the arguments for mouse_drag.
type MouseDragArgs struct {
	StartX     *int   `json:"start_x,omitempty" jsonschema:"description=Starting X pixel coordinate"`
	StartY     *int   `json:"start_y,omitempty" jsonschema:"description=Starting Y pixel coordinate"`
	StartGrid  string `json:"start_grid,omitempty" jsonschema:"description=Starting grid coordinate"`
	EndX       *int   `json:"end_x,omitempty" jsonschema:"description=Ending X pixel coordinate"`
	EndY       *int   `json:"end_y,omitempty" jsonschema:"description=Ending Y pixel coordinate"`
	EndGrid    string `json:"end_grid,omitempty" jsonschema:"description=Ending grid coordinate"`
	Button     string `json:"button,omitempty" jsonschema:"description=Mouse button: left (default) | right | middle"`
	DurationMs int    `json:"duration_ms,omitempty" jsonschema:"description=Drag duration in milliseconds (default 500)"`
}

func (s *Service) registerMouseTools(server *mcp_golang.Server) error {
	if err := registerTool(s, server, "mouse_move",
		"Move mouse to pixel coordinates or grid cell", s.handleMouseMove); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_left_click",
		"Perform left mouse click with optional modifiers", s.clickHandler(display.MouseButtonLeft, 1)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_right_click",
		"Perform right mouse click with optional modifiers", s.clickHandler(display.MouseButtonRight, 1)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_double_click",
		"Perform double left click with optional modifiers", s.clickHandler(display.MouseButtonLeft, 2)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_middle_click",
		"Perform middle button click", s.clickHandler(display.MouseButtonMiddle, 1)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_press_left",
		"Press and hold left mouse button", s.pressHandler(display.MouseButtonLeft)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_release_left",
		"Release left mouse button", s.releaseHandler(display.MouseButtonLeft)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_press_right",
		"Press and hold right mouse button", s.pressHandler(display.MouseButtonRight)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_release_right",
		"Release right mouse button", s.releaseHandler(display.MouseButtonRight)); err != nil {
		return err
	}
	if err := registerTool(s, server, "mouse_scroll",
		"Scroll mouse wheel, optionally at a position", s.handleMouseScroll); err != nil {
		return err
	}
	return registerTool(s, server, "mouse_drag",
		"Drag from point A to point B with smooth movement", s.handleMouseDrag)
}

func (s *Service) handleMouseMove(args MouseMoveArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("mouse_move"); err != nil {
		return "", err
	}

	target, err := s.resolvePosition(args.PositionArgs)
	if err != nil {
		return "", err
	}
	if err := s.mouse.MoveTo(context.Background(), target.X, target.Y); err != nil {
		return "", err
	}
	return fmt.Sprintf("Mouse moved to (%d, %d)", target.X, target.Y), nil
}

func (s *Service) clickHandler(button display.MouseButton, clicks int) func(ClickArgs) (string, error) {
	action := button.String() + "_click"
	if clicks > 1 {
		action = "double_click"
	}

	return func(args ClickArgs) (string, error) {
		if err := s.limiter.CheckAndRecord("mouse_" + action); err != nil {
			return "", err
		}

		ctx := context.Background()
		if args.HasPosition() {
			target, err := s.resolvePosition(args.PositionArgs)
			if err != nil {
				return "", err
			}
			if err := s.mouse.ClickAt(ctx, target.X, target.Y, button, clicks, args.options()); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s at (%d, %d)", clickLabel(button, clicks), target.X, target.Y), nil
		}

		if err := s.mouse.Click(ctx, button, clicks, args.options()); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s at current position", clickLabel(button, clicks)), nil
	}
}

func clickLabel(button display.MouseButton, clicks int) string {
	if clicks > 1 {
		return "Double clicked"
	}
	switch button {
	case display.MouseButtonRight:
		return "Right clicked"
	case display.MouseButtonMiddle:
		return "Middle clicked"
	default:
		return "Left clicked"
	}
}

func (s *Service) pressHandler(button display.MouseButton) func(EmptyArgs) (string, error) {
	return func(EmptyArgs) (string, error) {
		if err := s.limiter.CheckAndRecord("mouse_press"); err != nil {
			return "", err
		}
		if err := s.mouse.Press(context.Background(), button); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s mouse button pressed", titleButton(button)), nil
	}
}

func (s *Service) releaseHandler(button display.MouseButton) func(EmptyArgs) (string, error) {
	return func(EmptyArgs) (string, error) {
		if err := s.limiter.CheckAndRecord("mouse_release"); err != nil {
			return "", err
		}
		if err := s.mouse.Release(context.Background(), button); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s mouse button released", titleButton(button)), nil
	}
}

func titleButton(button display.MouseButton) string {
	switch button {
	case display.MouseButtonRight:
		return "Right"
	case display.MouseButtonMiddle:
		return "Middle"
	default:
		return "Left"
	}
}

func (s *Service) handleMouseScroll(args MouseScrollArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("mouse_scroll"); err != nil {
		return "", err
	}

	ctx := context.Background()
	if args.HasPosition() {
		target, err := s.resolvePosition(args.PositionArgs)
		if err != nil {
			return "", err
		}
		if err := s.mouse.ScrollAt(ctx, target.X, target.Y, args.Amount, args.Horizontal); err != nil {
			return "", err
		}
		return fmt.Sprintf("Scrolled %d at (%d, %d)", args.Amount, target.X, target.Y), nil
	}

	if err := s.mouse.Scroll(ctx, args.Amount, args.Horizontal); err != nil {
		return "", err
	}
	return fmt.Sprintf("Scrolled %d at current position", args.Amount), nil
}

func (s *Service) handleMouseDrag(args MouseDragArgs) (string, error) {
	if err := s.limiter.CheckAndRecord("mouse_drag"); err != nil {
		return "", err
	}

	ctx := context.Background()

	start, err := s.resolveDragEndpoint(ctx, args.StartGrid, args.StartX, args.StartY, true)
	if err != nil {
		return "", fmt.Errorf("drag start: %w", err)
	}
	end, err := s.resolveDragEndpoint(ctx, args.EndGrid, args.EndX, args.EndY, false)
	if err != nil {
		return "", fmt.Errorf("drag end: %w", err)
	}

	button := display.ParseMouseButton(args.Button)
	duration := time.Duration(args.DurationMs) * time.Millisecond

	if err := s.mouse.Drag(ctx, start, end, button, duration); err != nil {
		return "", err
	}
	return fmt.Sprintf("Dragged from (%d, %d) to (%d, %d)", start.X, start.Y, end.X, end.Y), nil
}

// resolveDragEndpoint resolves one end of a drag. A missing start falls
// back to the current pointer position; a missing end is an error.
func (s *Service) resolveDragEndpoint(ctx context.Context, gridCoord string, x, y *int, fallbackToCursor bool) (grid.Point, error) {
	if gridCoord != "" {
		return s.resolver.Resolve(gridCoord)
	}
	if x != nil && y != nil {
		return grid.Point{X: *x, Y: *y}, nil
	}
	if fallbackToCursor {
		return s.mouse.Position(ctx)
	}
	return grid.Point{}, fmt.Errorf("no position given: provide pixel coordinates or a grid coordinate")
}
