package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = Rectangle{X: 0, Y: 0, Width: 1920, Height: 1080}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
		wantErr bool
	}{
		{"default 3x3", 3, 3, false},
		{"minimum 1x1", 1, 1, false},
		{"maximum 26x26", 26, 26, false},
		{"asymmetric", 4, 6, false},
		{"zero rows", 0, 3, true},
		{"zero columns", 3, 0, true},
		{"negative rows", -1, 3, true},
		{"rows too large", 27, 3, true},
		{"columns too large", 3, 27, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.rows, tt.columns, SchemeAlphanumeric, testBounds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, cfg.Rows)
			assert.Equal(t, tt.columns, cfg.Columns)
			assert.Equal(t, testBounds, cfg.Bounds)
		})
	}
}

func TestCellDimensionsTruncate(t *testing.T) {
	cfg, err := NewConfig(3, 3, SchemeAlphanumeric, Rectangle{Width: 1000, Height: 1000})
	require.NoError(t, err)

	// 1000/3 truncates to 333; the remainder is not distributed.
	assert.Equal(t, 333, cfg.CellWidth())
	assert.Equal(t, 333, cfg.CellHeight())
}

func TestCellBounds(t *testing.T) {
	cfg, err := NewConfig(3, 3, SchemeAlphanumeric, testBounds)
	require.NoError(t, err)

	tests := []struct {
		name string
		row  int
		col  int
		want Rectangle
	}{
		{"top left", 0, 0, Rectangle{X: 0, Y: 0, Width: 640, Height: 360}},
		{"center", 1, 1, Rectangle{X: 640, Y: 360, Width: 640, Height: 360}},
		{"bottom right", 2, 2, Rectangle{X: 1280, Y: 720, Width: 640, Height: 360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.CellBounds(tt.row, tt.col, cfg.Bounds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, err := cfg.CellBounds(3, 0, cfg.Bounds)
		assert.ErrorIs(t, err, ErrIndexOutOfBounds)
		_, err = cfg.CellBounds(0, -1, cfg.Bounds)
		assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	})
}

func TestCellBoundsOffsetOrigin(t *testing.T) {
	cfg, err := NewConfig(2, 2, SchemeAlphanumeric, Rectangle{X: 100, Y: 50, Width: 400, Height: 200})
	require.NoError(t, err)

	got, err := cfg.CellBounds(1, 1, cfg.Bounds)
	require.NoError(t, err)
	assert.Equal(t, Rectangle{X: 300, Y: 150, Width: 200, Height: 100}, got)
}

func TestParseLabel(t *testing.T) {
	cfg, err := NewConfig(3, 3, SchemeAlphanumeric, testBounds)
	require.NoError(t, err)

	tests := []struct {
		name    string
		label   string
		wantRow int
		wantCol int
		wantErr error
	}{
		{"first cell", "A1", 0, 0, nil},
		{"last cell", "C3", 2, 2, nil},
		{"lower case", "b2", 1, 1, nil},
		{"column out of range", "Z1", 0, 0, ErrIndexOutOfBounds},
		{"row out of range", "A9", 0, 0, ErrIndexOutOfBounds},
		{"grammar valid but zero row", "A0", 0, 0, ErrIndexOutOfBounds},
		{"malformed", "A", 0, 0, ErrInvalidLabelSyntax},
		{"empty", "", 0, 0, ErrInvalidLabelSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := cfg.ParseLabel(tt.label)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRow, row)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestDescribe(t *testing.T) {
	cfg, err := NewConfig(3, 4, SchemeAlphanumeric, testBounds)
	require.NoError(t, err)

	desc := cfg.Describe()
	assert.Contains(t, desc, "3 rows x 4 columns")
	assert.Contains(t, desc, "alphanumeric")
	assert.Contains(t, desc, "1920x1080")
	assert.Contains(t, desc, "A1")
	assert.Contains(t, desc, "D3")
}
