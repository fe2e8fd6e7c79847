package grid

import "errors"

// Validation failures surfaced by the grid system. All of them are terminal
// for the call that produced them; retrying without a prior Configure or a
// different input cannot succeed.
var (
	// ErrInvalidConfiguration is returned when rows or columns fall outside
	// the [1,26] range supported by the label schemes.
	ErrInvalidConfiguration = errors.New("rows and columns must be between 1 and 26")

	// ErrEmptyCoordinate is returned when a coordinate string is blank.
	ErrEmptyCoordinate = errors.New("coordinate is empty")

	// ErrEmptyLevel is returned when a dotted coordinate contains an empty
	// segment, as in "A1..B2".
	ErrEmptyLevel = errors.New("coordinate has an empty level")

	// ErrInvalidLabelSyntax is returned when a level does not match the
	// grammar of the active scheme.
	ErrInvalidLabelSyntax = errors.New("label does not match the active scheme")

	// ErrIndexOutOfBounds is returned when a well-formed label names a row or
	// column beyond the configured grid extent.
	ErrIndexOutOfBounds = errors.New("cell index outside the configured grid")

	// ErrNoParent is returned when Parent is called on a depth-1 coordinate.
	ErrNoParent = errors.New("top-level coordinate has no parent")
)
