package grid

import (
	"fmt"
	"strings"
)

const (
	// MinAxis and MaxAxis bound rows and columns so single-letter axes stay
	// unambiguous under the alphanumeric and alpha schemes.
	MinAxis = 1
	MaxAxis = 26

	// DefaultRows and DefaultColumns describe the grid active at startup and
	// after Reset.
	DefaultRows    = 3
	DefaultColumns = 3
)

// Config is one immutable snapshot of the active subdivision scheme and the
// rectangle it is laid over. A resolver takes a snapshot once per call and
// uses it for the whole walk, so a concurrent Configure never changes the
// grid shape mid-resolution.
type Config struct {
	Rows    int
	Columns int
	Scheme  Scheme
	Bounds  Rectangle
}

// NewConfig validates and builds a configuration value.
func NewConfig(rows, columns int, scheme Scheme, bounds Rectangle) (Config, error) {
	if rows < MinAxis || rows > MaxAxis {
		return Config{}, fmt.Errorf("%w: rows=%d", ErrInvalidConfiguration, rows)
	}
	if columns < MinAxis || columns > MaxAxis {
		return Config{}, fmt.Errorf("%w: columns=%d", ErrInvalidConfiguration, columns)
	}
	return Config{Rows: rows, Columns: columns, Scheme: scheme, Bounds: bounds}, nil
}

// CellWidth returns the top-level cell width in pixels, truncating.
func (c Config) CellWidth() int { return c.Bounds.Width / c.Columns }

// CellHeight returns the top-level cell height in pixels, truncating.
func (c Config) CellHeight() int { return c.Bounds.Height / c.Rows }

// CellBounds divides parent into Rows x Columns equal cells using truncating
// integer division and returns the rectangle at row, col (0-based).
func (c Config) CellBounds(row, col int, parent Rectangle) (Rectangle, error) {
	if row < 0 || row >= c.Rows || col < 0 || col >= c.Columns {
		return Rectangle{}, fmt.Errorf("%w: row=%d col=%d in a %dx%d grid",
			ErrIndexOutOfBounds, row, col, c.Rows, c.Columns)
	}
	cw := parent.Width / c.Columns
	ch := parent.Height / c.Rows
	return Rectangle{X: parent.X + col*cw, Y: parent.Y + row*ch, Width: cw, Height: ch}, nil
}

// CellLabel renders the label of the cell at row, col under the active scheme.
func (c Config) CellLabel(row, col int) string {
	return c.Scheme.CellLabel(row, col)
}

// ParseLabel decodes a single-level label and range-checks it against the
// configured grid extent. Malformed text yields ErrInvalidLabelSyntax;
// well-formed labels naming a cell outside the grid yield ErrIndexOutOfBounds.
func (c Config) ParseLabel(label string) (row, col int, err error) {
	row, col, err = c.Scheme.DecodeLabel(label)
	if err != nil {
		return 0, 0, err
	}
	if row < 0 || row >= c.Rows {
		return 0, 0, fmt.Errorf("%w: row %d of %q (grid has %d rows)",
			ErrIndexOutOfBounds, row+1, label, c.Rows)
	}
	if col < 0 || col >= c.Columns {
		return 0, 0, fmt.Errorf("%w: column %d of %q (grid has %d columns)",
			ErrIndexOutOfBounds, col+1, label, c.Columns)
	}
	return row, col, nil
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d %s over %s", c.Rows, c.Columns, c.Scheme, c.Bounds)
}

// Describe returns a human-readable summary of the configuration. Diagnostic
// text only; nothing machine-parses it.
func (c Config) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid: %d rows x %d columns (%s scheme)\n", c.Rows, c.Columns, c.Scheme)
	fmt.Fprintf(&b, "Screen: %dx%d at (%d, %d)\n",
		c.Bounds.Width, c.Bounds.Height, c.Bounds.X, c.Bounds.Y)
	fmt.Fprintf(&b, "Cell size: %dx%d pixels\n", c.CellWidth(), c.CellHeight())
	fmt.Fprintf(&b, "Cell labels: %s to %s",
		c.CellLabel(0, 0), c.CellLabel(c.Rows-1, c.Columns-1))
	return b.String()
}
