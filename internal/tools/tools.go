// Package tools exposes grid addressing, input injection, and screen
// capture as MCP tools.
package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	mcp_golang "github.com/metoro-io/mcp-golang"

	config "github.com/uioperator/uictl/config"
	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	input "github.com/uioperator/uictl/internal/input"
	logger "github.com/uioperator/uictl/internal/logger"
	screen "github.com/uioperator/uictl/internal/screen"
)

// Service wires the grid store, input services, and screen capturer into
// MCP tools. Handlers are also kept in a name-indexed registry so
// execute_sequence can dispatch steps by tool name.
type Service struct {
	cfg      *config.Config
	store    *grid.Store
	resolver *grid.Resolver
	mouse    *input.Mouse
	keyboard *input.Keyboard
	capturer *screen.Capturer
	buffer   *screen.Buffer
	limiter  *input.RateLimiter

	handlers map[string]rawHandler
}

// rawHandler executes a tool from loosely-typed parameters, as supplied
// by execute_sequence steps.
type rawHandler func(params map[string]any) (string, error)

// NewService creates the tool service over the given dependencies.
func NewService(cfg *config.Config, store *grid.Store, ctrl display.Controller, buffer *screen.Buffer) *Service {
	resolver := grid.NewResolver(store)
	return &Service{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		mouse:    input.NewMouse(ctrl, cfg.Input),
		keyboard: input.NewKeyboard(ctrl, cfg.Input),
		capturer: screen.NewCapturer(ctrl, resolver),
		buffer:   buffer,
		limiter:  input.NewRateLimiter(cfg.Input.RateLimit),
		handlers: make(map[string]rawHandler),
	}
}

// Register registers every tool on the MCP server. A nil server only
// populates the dispatch registry, which tests use.
func (s *Service) Register(server *mcp_golang.Server) error {
	if err := s.registerMouseTools(server); err != nil {
		return err
	}
	if err := s.registerKeyboardTools(server); err != nil {
		return err
	}
	if err := s.registerGridTools(server); err != nil {
		return err
	}
	if err := s.registerScreenshotTools(server); err != nil {
		return err
	}
	return s.registerSequenceTool(server)
}

// ToolNames returns the registered tool names in sorted order.
func (s *Service) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolver exposes the grid resolver for direct use by CLI commands.
func (s *Service) Resolver() *grid.Resolver {
	return s.resolver
}

// Invoke dispatches a tool by name with loosely-typed parameters.
func (s *Service) Invoke(name string, params map[string]any) (string, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return handler(params)
}

// registerTool adds a typed handler to both the MCP server and the
// dispatch registry.
func registerTool[T any](s *Service, server *mcp_golang.Server, name, description string, fn func(T) (string, error)) error {
	s.handlers[name] = func(params map[string]any) (string, error) {
		data, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("encode parameters for %s: %w", name, err)
		}
		var args T
		if err := json.Unmarshal(data, &args); err != nil {
			return "", fmt.Errorf("decode parameters for %s: %w", name, err)
		}
		return fn(args)
	}

	if server == nil {
		return nil
	}
	return server.RegisterTool(name, description, func(args T) (*mcp_golang.ToolResponse, error) {
		result, err := fn(args)
		if err != nil {
			logger.Warn("Tool failed", "tool", name, "error", err)
			return mcp_golang.NewToolResponse(
				mcp_golang.NewTextContent(fmt.Sprintf("Error: %v", err)),
			), nil
		}
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(result)), nil
	})
}

// SequenceStep is one entry of an execute_sequence call.
type SequenceStep struct {
	Tool         string         `json:"tool" jsonschema:"required,description=Tool name to execute"`
	Params       map[string]any `json:"params" jsonschema:"description=Tool parameters"`
	DelayAfterMs int            `json:"delay_after_ms" jsonschema:"description=Pause after this step in milliseconds"`
}

// ExecuteSequenceArgs are the arguments for execute_sequence.
type ExecuteSequenceArgs struct {
	Commands []SequenceStep `json:"commands" jsonschema:"required,description=Commands to execute in order"`
}

func (s *Service) registerSequenceTool(server *mcp_golang.Server) error {
	return registerTool(s, server, "execute_sequence",
		"Execute a list of tool calls in order with optional delays; a failed step is reported and execution continues",
		s.handleExecuteSequence)
}

func (s *Service) handleExecuteSequence(args ExecuteSequenceArgs) (string, error) {
	if len(args.Commands) == 0 {
		return "", fmt.Errorf("no commands provided")
	}

	var results strings.Builder
	fmt.Fprintf(&results, "Executing %d commands:\n", len(args.Commands))

	for i, step := range args.Commands {
		if step.Tool == "execute_sequence" {
			fmt.Fprintf(&results, "%d. %s: ERROR: sequences cannot be nested\n", i+1, step.Tool)
			continue
		}

		fmt.Fprintf(&results, "%d. %s: ", i+1, step.Tool)
		result, err := s.Invoke(step.Tool, step.Params)
		if err != nil {
			fmt.Fprintf(&results, "ERROR: %v\n", err)
		} else {
			results.WriteString(result)
			results.WriteString("\n")
		}

		if step.DelayAfterMs > 0 && i < len(args.Commands)-1 {
			time.Sleep(time.Duration(step.DelayAfterMs) * time.Millisecond)
		}
	}

	return results.String(), nil
}

// PositionArgs addresses a screen location either by pixel coordinates or
// by grid coordinate.
type PositionArgs struct {
	X    *int   `json:"x,omitempty" jsonschema:"description=X pixel coordinate"`
	Y    *int   `json:"y,omitempty" jsonschema:"description=Y pixel coordinate"`
	Grid string `json:"grid,omitempty" jsonschema:"description=Grid coordinate (e.g. 'A1' or 'A1.B3')"`
}

// HasPosition reports whether the arguments specify a location.
func (p PositionArgs) HasPosition() bool {
	return p.Grid != "" || (p.X != nil && p.Y != nil)
}

// resolvePosition converts position arguments to a screen point. Grid
// coordinates take precedence over pixel coordinates.
func (s *Service) resolvePosition(p PositionArgs) (grid.Point, error) {
	if p.Grid != "" {
		return s.resolver.Resolve(p.Grid)
	}
	if p.X != nil && p.Y != nil {
		return grid.Point{X: *p.X, Y: *p.Y}, nil
	}
	return grid.Point{}, fmt.Errorf("no position given: provide x and y, or a grid coordinate")
}
