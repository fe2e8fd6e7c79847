package tools

import (
	"fmt"

	mcp_golang "github.com/metoro-io/mcp-golang"

	grid "github.com/uioperator/uictl/internal/grid"
)

// GridConfigureArgs are the arguments for grid_configure.
type GridConfigureArgs struct {
	Rows        int    `json:"rows,omitempty" jsonschema:"description=Number of rows (1-26; default 3)"`
	Columns     int    `json:"columns,omitempty" jsonschema:"description=Number of columns (1-26; default 3)"`
	LabelScheme string `json:"label_scheme,omitempty" jsonschema:"description=Cell label scheme: alphanumeric (default) | numeric | alpha"`
}

// GridToPixelArgs are the arguments for grid_to_pixel.
type GridToPixelArgs struct {
	Grid string `json:"grid" jsonschema:"required,description=Grid coordinate (e.g. 'A1' or 'A1.B3')"`
}

// GridFromPixelArgs are the arguments for grid_from_pixel.
type GridFromPixelArgs struct {
	X int `json:"x" jsonschema:"required,description=X pixel coordinate"`
	Y int `json:"y" jsonschema:"required,description=Y pixel coordinate"`
}

func (s *Service) registerGridTools(server *mcp_golang.Server) error {
	if err := registerTool(s, server, "grid_configure",
		"Configure grid dimensions and labeling scheme", s.handleGridConfigure); err != nil {
		return err
	}
	if err := registerTool(s, server, "grid_get_config",
		"Get current grid configuration", s.handleGridGetConfig); err != nil {
		return err
	}
	if err := registerTool(s, server, "grid_reset",
		"Reset the grid to defaults (3x3, alphanumeric)", s.handleGridReset); err != nil {
		return err
	}
	if err := registerTool(s, server, "grid_to_pixel",
		"Convert grid coordinate to pixel coordinate", s.handleGridToPixel); err != nil {
		return err
	}
	return registerTool(s, server, "grid_from_pixel",
		"Convert pixel coordinate to the containing grid cell", s.handleGridFromPixel)
}

func (s *Service) handleGridConfigure(args GridConfigureArgs) (string, error) {
	rows := args.Rows
	if rows == 0 {
		rows = grid.DefaultRows
	}
	columns := args.Columns
	if columns == 0 {
		columns = grid.DefaultColumns
	}

	scheme := grid.SchemeAlphanumeric
	if args.LabelScheme != "" {
		var err error
		scheme, err = grid.ParseScheme(args.LabelScheme)
		if err != nil {
			return "", err
		}
	}

	if _, err := s.store.Configure(rows, columns, scheme); err != nil {
		return "", err
	}
	return s.resolver.Describe(), nil
}

func (s *Service) handleGridGetConfig(EmptyArgs) (string, error) {
	return s.resolver.Describe(), nil
}

func (s *Service) handleGridReset(EmptyArgs) (string, error) {
	if _, err := s.store.Reset(); err != nil {
		return "", err
	}
	return s.resolver.Describe(), nil
}

func (s *Service) handleGridToPixel(args GridToPixelArgs) (string, error) {
	center, err := s.resolver.Resolve(args.Grid)
	if err != nil {
		return "", err
	}
	bounds, err := s.resolver.ResolveToBounds(args.Grid)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Grid '%s' -> Center: (%d, %d), Bounds: %s",
		args.Grid, center.X, center.Y, bounds), nil
}

func (s *Service) handleGridFromPixel(args GridFromPixelArgs) (string, error) {
	label, err := s.resolver.PointToGrid(args.X, args.Y)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Pixel (%d, %d) -> Grid cell '%s'", args.X, args.Y, label), nil
}
