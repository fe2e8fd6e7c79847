package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleCenterTruncates(t *testing.T) {
	tests := []struct {
		name string
		rect Rectangle
		want Point
	}{
		{"even dimensions", Rectangle{X: 0, Y: 0, Width: 100, Height: 50}, Point{X: 50, Y: 25}},
		{"odd dimensions truncate", Rectangle{X: 0, Y: 0, Width: 101, Height: 51}, Point{X: 50, Y: 25}},
		{"offset origin", Rectangle{X: 213, Y: 120, Width: 213, Height: 120}, Point{X: 319, Y: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rect.Center())
		})
	}
}

func TestRectangleContains(t *testing.T) {
	r := Rectangle{X: 10, Y: 10, Width: 100, Height: 50}

	assert.True(t, r.Contains(Point{X: 10, Y: 10}))
	assert.True(t, r.Contains(Point{X: 109, Y: 59}))
	assert.False(t, r.Contains(Point{X: 110, Y: 59}))
	assert.False(t, r.Contains(Point{X: 9, Y: 10}))
}

func TestRectangleUnion(t *testing.T) {
	a := Rectangle{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rectangle{X: 200, Y: 50, Width: 100, Height: 100}

	got := a.Union(b)
	assert.Equal(t, Rectangle{X: 0, Y: 0, Width: 300, Height: 150}, got)

	// Union is symmetric.
	assert.Equal(t, got, b.Union(a))
}
