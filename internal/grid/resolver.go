package grid

import (
	"fmt"

	logger "github.com/uioperator/uictl/internal/logger"
)

// ResolveToBounds walks the coordinate against one configuration snapshot,
// narrowing the snapshot bounds one level at a time. Every level reuses the
// same rows, columns and scheme: "A1.B3" subdivides the A1 cell with exactly
// the shape of the top-level grid. Tool callers are written against this flat
// behavior. The call fails on the first invalid level; no partial rectangle
// is returned.
func ResolveToBounds(c Coordinate, cfg Config) (Rectangle, error) {
	current := cfg.Bounds
	for _, level := range c.levels {
		row, col, err := cfg.ParseLabel(level)
		if err != nil {
			return Rectangle{}, fmt.Errorf("level %q of %q: %w", level, c.original, err)
		}
		current, err = cfg.CellBounds(row, col, current)
		if err != nil {
			return Rectangle{}, err
		}
	}
	return current, nil
}

// Resolve returns the center of the cell the coordinate resolves to.
func Resolve(c Coordinate, cfg Config) (Point, error) {
	bounds, err := ResolveToBounds(c, cfg)
	if err != nil {
		return Point{}, err
	}
	return bounds.Center(), nil
}

// PointToCell maps a pixel back to its top-level cell label. Points outside
// the configured bounds snap to the nearest edge cell rather than failing.
func PointToCell(x, y int, cfg Config) (string, error) {
	cw := cfg.CellWidth()
	ch := cfg.CellHeight()
	if cw <= 0 || ch <= 0 {
		return "", fmt.Errorf("%w: bounds %s are smaller than the %dx%d grid",
			ErrInvalidConfiguration, cfg.Bounds, cfg.Rows, cfg.Columns)
	}
	col := clamp((x-cfg.Bounds.X)/cw, 0, cfg.Columns-1)
	row := clamp((y-cfg.Bounds.Y)/ch, 0, cfg.Rows-1)
	return cfg.CellLabel(row, col), nil
}

// AllLabels enumerates the top-level grid of cell labels, row-major.
func AllLabels(cfg Config) [][]string {
	labels := make([][]string, cfg.Rows)
	for row := 0; row < cfg.Rows; row++ {
		labels[row] = make([]string, cfg.Columns)
		for col := 0; col < cfg.Columns; col++ {
			labels[row][col] = cfg.CellLabel(row, col)
		}
	}
	return labels
}

// AllCenters enumerates the center point of every top-level cell, row-major.
func AllCenters(cfg Config) [][]Point {
	cw := cfg.CellWidth()
	ch := cfg.CellHeight()
	centers := make([][]Point, cfg.Rows)
	for row := 0; row < cfg.Rows; row++ {
		centers[row] = make([]Point, cfg.Columns)
		for col := 0; col < cfg.Columns; col++ {
			cell := Rectangle{
				X:      cfg.Bounds.X + col*cw,
				Y:      cfg.Bounds.Y + row*ch,
				Width:  cw,
				Height: ch,
			}
			centers[row][col] = cell.Center()
		}
	}
	return centers
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Resolver turns coordinate strings into screen geometry. Every method takes
// one Store snapshot at entry and resolves entirely against it.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver reading snapshots from the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveToBounds parses the coordinate and returns its bounding rectangle.
func (r *Resolver) ResolveToBounds(coordinate string) (Rectangle, error) {
	c, err := ParseCoordinate(coordinate)
	if err != nil {
		return Rectangle{}, err
	}
	bounds, err := ResolveToBounds(c, r.store.Snapshot())
	if err != nil {
		return Rectangle{}, err
	}
	logger.Debug("Resolved coordinate", "coordinate", c.String(), "bounds", bounds.String())
	return bounds, nil
}

// Resolve parses the coordinate and returns the center of its cell.
func (r *Resolver) Resolve(coordinate string) (Point, error) {
	bounds, err := r.ResolveToBounds(coordinate)
	if err != nil {
		return Point{}, err
	}
	return bounds.Center(), nil
}

// PointToGrid converts pixel coordinates to the top-level cell label under
// the current configuration.
func (r *Resolver) PointToGrid(x, y int) (string, error) {
	return PointToCell(x, y, r.store.Snapshot())
}

// IsValidCoordinate reports whether the coordinate parses and every level is
// addressable under the current configuration. Advisory use only: all errors
// become false.
func (r *Resolver) IsValidCoordinate(coordinate string) bool {
	c, err := ParseCoordinate(coordinate)
	if err != nil {
		return false
	}
	cfg := r.store.Snapshot()
	for _, level := range c.levels {
		if _, _, err := cfg.ParseLabel(level); err != nil {
			return false
		}
	}
	return true
}

// AllLabels enumerates the top-level cell labels under the current
// configuration.
func (r *Resolver) AllLabels() [][]string {
	return AllLabels(r.store.Snapshot())
}

// AllCenters enumerates the top-level cell centers under the current
// configuration.
func (r *Resolver) AllCenters() [][]Point {
	return AllCenters(r.store.Snapshot())
}

// Describe returns the human-readable summary of the current configuration.
func (r *Resolver) Describe() string {
	return r.store.Snapshot().Describe()
}
