package rendering

import (
	"math"
	"testing"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraScale(t *testing.T) {
	worlds := []geom.Rect{
		geom.NewRect(0, 1024, 0, 768),
		geom.NewRect(-10, 10, -5, 5),
		geom.NewRect(300, 301, 2, 4.5),
	}
	for _, world := range worlds {
		t.Run(world.String(), func(t *testing.T) {
			c, err := NewCamera(world, geom.Dim{W: 800, H: 600}, 4)
			require.NoError(t, err)

			assert.InDelta(t, 2/(world.X2-world.X1), c.ScaleX, 1e-6)
			assert.InDelta(t, -2/(world.Y2-world.Y1), c.ScaleY, 1e-6)

			m2 := c.Mat2()
			assert.Equal(t, c.ScaleX, m2.At(0, 0))
			assert.Equal(t, c.ScaleY, m2.At(1, 1))
			assert.Zero(t, m2.At(0, 1))
			assert.Zero(t, m2.At(1, 0))
		})
	}
}

func TestCameraMapsCornersToClipSpace(t *testing.T) {
	world := geom.NewRect(100, 300, -50, 50)
	c, err := NewCamera(world, geom.Dim{W: 640, H: 480}, 1)
	require.NoError(t, err)

	x, y := c.Project(world.X1, world.Y1)
	assert.InDelta(t, -1, x, 1e-5)
	assert.InDelta(t, 1, y, 1e-5, "top of the world is the top of the screen")

	x, y = c.Project(world.X2, world.Y2)
	assert.InDelta(t, 1, x, 1e-5)
	assert.InDelta(t, -1, y, 1e-5)

	cx, cy := world.Centre()
	x, y = c.Project(cx, cy)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
}

func TestCameraPointSizeLinearInViewportWidth(t *testing.T) {
	world := geom.NewRect(0, 200, 0, 100)

	base, err := NewCamera(world, geom.Dim{W: 100, H: 100}, 6)
	require.NoError(t, err)
	assert.InDelta(t, 3, base.PointSize, 1e-6)

	for _, k := range []int{2, 3, 7, 19} {
		c, err := NewCamera(world, geom.Dim{W: 100 * k, H: 100}, 6)
		require.NoError(t, err)
		assert.InDelta(t, base.PointSize*float32(k), c.PointSize, 1e-4)
	}

	// height does not take part
	tall, err := NewCamera(world, geom.Dim{W: 100, H: 9000}, 6)
	require.NoError(t, err)
	assert.Equal(t, base.PointSize, tall.PointSize)
}

func TestCameraRejectsBadInput(t *testing.T) {
	good := geom.NewRect(0, 1, 0, 1)

	_, err := NewCamera(geom.NewRect(5, 5, 0, 1), geom.Dim{W: 10, H: 10}, 1)
	assert.ErrorIs(t, err, ErrDegenerateWorld)
	assert.ErrorIs(t, err, geom.ErrDegenerate)

	_, err = NewCamera(geom.NewRect(0, 1, 2, 2), geom.Dim{W: 10, H: 10}, 1)
	assert.ErrorIs(t, err, ErrDegenerateWorld)

	_, err = NewCamera(good, geom.Dim{W: 0, H: 10}, 1)
	assert.ErrorIs(t, err, ErrBadViewport)

	_, err = NewCamera(good, geom.Dim{W: 10, H: -1}, 1)
	assert.ErrorIs(t, err, ErrBadViewport)

	_, err = NewCamera(good, geom.Dim{W: 10, H: 10}, -1)
	assert.ErrorIs(t, err, ErrBadPointSize)

	_, err = NewCamera(good, geom.Dim{W: 10, H: 10}, float32(math.NaN()))
	assert.ErrorIs(t, err, ErrBadPointSize)
}
