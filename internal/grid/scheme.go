package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Scheme selects how cell labels are rendered and parsed. The set is closed;
// every switch over it handles all three variants.
type Scheme int

const (
	// SchemeAlphanumeric labels cells with a column letter and a 1-based row
	// number: A1, B3, C10.
	SchemeAlphanumeric Scheme = iota
	// SchemeNumeric labels cells with 1-based row-column numbers: 1-1, 2-3.
	SchemeNumeric
	// SchemeAlpha labels cells with a column letter followed by a row letter:
	// AA, BC.
	SchemeAlpha
)

// String returns the canonical lower-case scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeNumeric:
		return "numeric"
	case SchemeAlpha:
		return "alpha"
	default:
		return "alphanumeric"
	}
}

// ParseScheme parses a scheme name, case-insensitively.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alphanumeric":
		return SchemeAlphanumeric, nil
	case "numeric":
		return SchemeNumeric, nil
	case "alpha":
		return SchemeAlpha, nil
	default:
		return SchemeAlphanumeric, fmt.Errorf("unknown label scheme %q (must be alphanumeric, numeric, or alpha)", name)
	}
}

// CellLabel renders the label for the cell at row, col (0-based indices).
func (s Scheme) CellLabel(row, col int) string {
	switch s {
	case SchemeNumeric:
		return fmt.Sprintf("%d-%d", row+1, col+1)
	case SchemeAlpha:
		return string([]byte{byte('A' + col), byte('A' + row)})
	default:
		return fmt.Sprintf("%c%d", 'A'+col, row+1)
	}
}

// DecodeLabel parses a single-level label into 0-based row and column
// indices. Input is case-insensitive. The check is purely syntactic; range
// validation against a configured grid happens in Config.ParseLabel.
func (s Scheme) DecodeLabel(label string) (row, col int, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	switch s {
	case SchemeNumeric:
		return decodeNumeric(label)
	case SchemeAlpha:
		return decodeAlpha(label)
	default:
		return decodeAlphanumeric(label)
	}
}

// Valid reports whether the label matches the scheme grammar.
func (s Scheme) Valid(label string) bool {
	_, _, err := s.DecodeLabel(label)
	return err == nil
}

func decodeAlphanumeric(label string) (int, int, error) {
	if len(label) < 2 {
		return 0, 0, fmt.Errorf("%w: %q is too short for a letter-number label", ErrInvalidLabelSyntax, label)
	}
	c := label[0]
	if c < 'A' || c > 'Z' {
		return 0, 0, fmt.Errorf("%w: %q does not start with a column letter", ErrInvalidLabelSyntax, label)
	}
	n, err := parseDigits(label[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q has no row number", ErrInvalidLabelSyntax, label)
	}
	return n - 1, int(c - 'A'), nil
}

func decodeNumeric(label string) (int, int, error) {
	first, second, ok := strings.Cut(label, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not a row-column pair", ErrInvalidLabelSyntax, label)
	}
	r, err := parseDigits(first)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q has a malformed row number", ErrInvalidLabelSyntax, label)
	}
	c, err := parseDigits(second)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q has a malformed column number", ErrInvalidLabelSyntax, label)
	}
	return r - 1, c - 1, nil
}

func decodeAlpha(label string) (int, int, error) {
	if len(label) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not exactly two letters", ErrInvalidLabelSyntax, label)
	}
	colChar, rowChar := label[0], label[1]
	if colChar < 'A' || colChar > 'Z' || rowChar < 'A' || rowChar > 'Z' {
		return 0, 0, fmt.Errorf("%w: %q is not exactly two letters", ErrInvalidLabelSyntax, label)
	}
	return int(rowChar - 'A'), int(colChar - 'A'), nil
}

// parseDigits parses a non-empty all-digit string. strconv.Atoi alone would
// also accept a sign, which the label grammar does not.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
