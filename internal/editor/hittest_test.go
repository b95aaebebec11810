package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"raceline-editor/internal/viewport"
)

func TestNearest(t *testing.T) {
	markers := []viewport.ScreenPoint{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 14, Y: 10}, {X: 16, Y: 10}}

	tests := []struct {
		name   string
		at     viewport.ScreenPoint
		radius float64
		want   int
	}{
		{"exact", viewport.ScreenPoint{X: 20, Y: 10}, 3, 1},
		{"closest wins", viewport.ScreenPoint{X: 13, Y: 11}, 5, 2},
		{"tie picks lowest index", viewport.ScreenPoint{X: 15, Y: 10}, 5, 2},
		{"on the radius", viewport.ScreenPoint{X: 10, Y: 7}, 3, 0},
		{"outside radius", viewport.ScreenPoint{X: 10, Y: 0}, 3, NoHit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nearest(markers, tt.at, tt.radius))
		})
	}

	assert.Equal(t, NoHit, Nearest(nil, viewport.ScreenPoint{}, 100))
}
