package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		ok   bool
	}{
		{"unit", NewRect(0, 1, 0, 1), true},
		{"offset", NewRect(-500, 500, 100, 200), true},
		{"zero width", NewRect(3, 3, 0, 1), false},
		{"zero height", NewRect(0, 1, 7, 7), false},
		{"inverted", NewRect(1, 0, 0, 1), false},
		{"nan", NewRect(float32(math.NaN()), 1, 0, 1), false},
		{"inf", NewRect(0, float32(math.Inf(1)), 0, 1), false},
		{"overflowing width", NewRect(-math.MaxFloat32, math.MaxFloat32, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rect.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDegenerate)
			}
		})
	}
}

func TestPanAndZoom(t *testing.T) {
	r := NewRect(0, 100, 0, 50)

	p := r.Pan(0.1, -0.2)
	assert.Equal(t, NewRect(10, 110, -10, 40), p)
	assert.Equal(t, r.Width(), p.Width())

	z := r.Zoom(0.5)
	require.NoError(t, z.Validate())
	assert.InDelta(t, 50, z.Width(), 1e-5)
	assert.InDelta(t, 25, z.Height(), 1e-5)
	cx, cy := z.Centre()
	assert.InDelta(t, 50, cx, 1e-5)
	assert.InDelta(t, 25, cy, 1e-5)
}

func TestContains(t *testing.T) {
	r := NewRect(0, 10, 0, 10)
	assert.True(t, r.Contains(0, 10))
	assert.True(t, r.Contains(5, 5))
	assert.False(t, r.Contains(-0.1, 5))
	assert.False(t, r.Contains(5, 10.1))
}
