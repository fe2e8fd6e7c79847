package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedBounds(r Rectangle) BoundsProvider {
	return BoundsProviderFunc(func() (Rectangle, error) { return r, nil })
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	store, err := NewStore(fixedBounds(testBounds))
	require.NoError(t, err)
	return NewResolver(store)
}

func TestResolveToBounds(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name       string
		coordinate string
		want       Rectangle
	}{
		{"top left cell", "A1", Rectangle{X: 0, Y: 0, Width: 640, Height: 360}},
		{"center cell", "B2", Rectangle{X: 640, Y: 360, Width: 640, Height: 360}},
		{"bottom right cell", "C3", Rectangle{X: 1280, Y: 720, Width: 640, Height: 360}},
		{"nested subdivision", "A1.B2", Rectangle{X: 213, Y: 120, Width: 213, Height: 120}},
		{"lower case", "b2", Rectangle{X: 640, Y: 360, Width: 640, Height: 360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveToBounds(tt.coordinate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCenter(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name       string
		coordinate string
		want       Point
	}{
		{"top left cell", "A1", Point{X: 320, Y: 180}},
		{"center cell", "B2", Point{X: 960, Y: 540}},
		{"nested cell", "A1.B2", Point{X: 319, Y: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.coordinate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNestedCellContainedInParent(t *testing.T) {
	r := newTestResolver(t)

	parent, err := r.ResolveToBounds("A1")
	require.NoError(t, err)
	child, err := r.ResolveToBounds("A1.B2")
	require.NoError(t, err)

	assert.True(t, parent.Contains(child.TopLeft()))
	assert.True(t, parent.Contains(child.BottomRight()))
	grandchild, err := r.ResolveToBounds("A1.B2.C3")
	require.NoError(t, err)
	assert.True(t, child.Contains(grandchild.TopLeft()))
}

func TestResolveErrors(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name       string
		coordinate string
		wantErr    error
	}{
		{"empty coordinate", "", ErrEmptyCoordinate},
		{"empty level", "A1..B2", ErrEmptyLevel},
		{"column out of range", "Z1", ErrIndexOutOfBounds},
		{"nested level out of range", "A1.Z9", ErrIndexOutOfBounds},
		{"malformed label", "A1.X", ErrInvalidLabelSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ResolveToBounds(tt.coordinate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPointToGrid(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"origin", 0, 0, "A1"},
		{"center of screen", 960, 540, "B2"},
		{"bottom right corner", 1919, 1079, "C3"},
		{"on a cell boundary", 640, 360, "B2"},
		{"left of screen clamps", -50, 500, "A2"},
		{"beyond screen clamps", 5000, 5000, "C3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.PointToGrid(tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointToGridRoundTripsCellCenters(t *testing.T) {
	r := newTestResolver(t)

	labels := r.AllLabels()
	centers := r.AllCenters()
	for i := range labels {
		for j := range labels[i] {
			got, err := r.PointToGrid(centers[i][j].X, centers[i][j].Y)
			require.NoError(t, err)
			assert.Equal(t, labels[i][j], got)
		}
	}
}

func TestPointToCellDegenerateBounds(t *testing.T) {
	cfg, err := NewConfig(26, 26, SchemeAlphanumeric, Rectangle{Width: 10, Height: 10})
	require.NoError(t, err)

	_, err = PointToCell(5, 5, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestIsValidCoordinate(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		coordinate string
		want       bool
	}{
		{"A1", true},
		{"C3", true},
		{"A1.B2.C3", true},
		{"Z1", false},
		{"A0", false},
		{"A1.Z9", false},
		{"", false},
		{"A1..B2", false},
	}

	for _, tt := range tests {
		t.Run(tt.coordinate, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsValidCoordinate(tt.coordinate))
		})
	}
}

func TestAllLabels(t *testing.T) {
	r := newTestResolver(t)

	labels := r.AllLabels()
	require.Len(t, labels, 3)
	assert.Equal(t, []string{"A1", "B1", "C1"}, labels[0])
	assert.Equal(t, []string{"A3", "B3", "C3"}, labels[2])
}

func TestAllCenters(t *testing.T) {
	r := newTestResolver(t)

	centers := r.AllCenters()
	require.Len(t, centers, 3)
	assert.Equal(t, Point{X: 320, Y: 180}, centers[0][0])
	assert.Equal(t, Point{X: 960, Y: 540}, centers[1][1])
	assert.Equal(t, Point{X: 1600, Y: 900}, centers[2][2])
}
