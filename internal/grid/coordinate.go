package grid

import (
	"fmt"
	"strings"
)

// Coordinate is a parsed dotted grid coordinate such as "A1" or "A1.B3.C2".
// Each level after the first re-subdivides the previously resolved cell. The
// value is immutable; deriving a parent or child produces a new Coordinate.
type Coordinate struct {
	levels   []string
	original string
}

// ParseCoordinate trims and upper-cases the input, splits it on dots, and
// validates that every level is non-empty. Label grammar is not checked here;
// that depends on a scheme (see ValidCoordinate and Config.ParseLabel).
func ParseCoordinate(s string) (Coordinate, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return Coordinate{}, ErrEmptyCoordinate
	}
	parts := strings.Split(normalized, ".")
	levels := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrEmptyLevel, s)
		}
		levels = append(levels, part)
	}
	return Coordinate{levels: levels, original: normalized}, nil
}

// ValidCoordinate reports whether s parses and every level matches the scheme
// grammar. Syntax only: no row or column range is consulted.
func ValidCoordinate(s string, scheme Scheme) bool {
	c, err := ParseCoordinate(s)
	if err != nil {
		return false
	}
	for _, level := range c.levels {
		if !scheme.Valid(level) {
			return false
		}
	}
	return true
}

// Depth returns the number of levels; 1 for a simple coordinate.
func (c Coordinate) Depth() int { return len(c.levels) }

// Level returns the label at the given depth (0-based).
func (c Coordinate) Level(i int) string { return c.levels[i] }

// Levels returns a copy of all levels in order.
func (c Coordinate) Levels() []string {
	out := make([]string, len(c.levels))
	copy(out, c.levels)
	return out
}

// TopLevel returns the first level.
func (c Coordinate) TopLevel() string { return c.levels[0] }

// DeepestLevel returns the last level.
func (c Coordinate) DeepestLevel() string { return c.levels[len(c.levels)-1] }

// HasSubGrid reports whether the coordinate addresses below the top level.
func (c Coordinate) HasSubGrid() bool { return len(c.levels) > 1 }

// Parent returns the coordinate with the deepest level removed.
func (c Coordinate) Parent() (Coordinate, error) {
	if len(c.levels) <= 1 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrNoParent, c.original)
	}
	return ParseCoordinate(strings.Join(c.levels[:len(c.levels)-1], "."))
}

// WithSubLevel returns the coordinate extended by one deeper level.
func (c Coordinate) WithSubLevel(label string) (Coordinate, error) {
	return ParseCoordinate(c.original + "." + label)
}

// String returns the normalized coordinate string. Two coordinates that
// differ only in casing or surrounding whitespace render identically, so the
// string doubles as an equality key.
func (c Coordinate) String() string { return c.original }

// Equal reports value equality on the normalized string.
func (c Coordinate) Equal(other Coordinate) bool { return c.original == other.original }
