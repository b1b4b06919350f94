package rendering

import (
	"errors"
	"fmt"
	"math"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrDegenerateWorld = errors.New("degenerate world rectangle")
	ErrBadViewport     = errors.New("viewport must have a positive size")
	ErrBadPointSize    = errors.New("point size must be a finite non-negative number")
)

// Camera maps world coordinates onto clip space. World Y grows downwards
// (screen convention), clip Y grows upwards, hence the negative ScaleY.
type Camera struct {
	ScaleX float32
	ScaleY float32
	TX     float32
	TY     float32

	// PointSize is the gl_PointSize in pixels that makes a sprite span the
	// requested world-space size at the current viewport width.
	PointSize float32
}

func NewCamera(world geom.Rect, viewport geom.Dim, pointSize float32) (Camera, error) {
	if err := world.Validate(); err != nil {
		return Camera{}, fmt.Errorf("%w: %w", ErrDegenerateWorld, err)
	}
	if viewport.W <= 0 || viewport.H <= 0 {
		return Camera{}, fmt.Errorf("%w: got %s", ErrBadViewport, viewport)
	}
	if pointSize < 0 || math.IsNaN(float64(pointSize)) || math.IsInf(float64(pointSize), 0) {
		return Camera{}, fmt.Errorf("%w: got %g", ErrBadPointSize, pointSize)
	}

	w := world.Width()
	h := world.Height()

	return Camera{
		ScaleX:    2 / w,
		ScaleY:    -2 / h,
		TX:        -(world.X1 + world.X2) / w,
		TY:        (world.Y1 + world.Y2) / h,
		PointSize: pointSize * (float32(viewport.W) / w),
	}, nil
}

// Mat2 is the scale part of the transform. The flat program adds Offset
// after it.
func (c Camera) Mat2() mgl32.Mat2 {
	return mgl32.Mat2{
		c.ScaleX, 0,
		0, c.ScaleY,
	}
}

// Offset is the translation part of the transform, in clip units.
func (c Camera) Offset() mgl32.Vec2 {
	return mgl32.Vec2{c.TX, c.TY}
}

// Mat3 is the full affine transform, applied to vec3(position, 1.0).
func (c Camera) Mat3() mgl32.Mat3 {
	return mgl32.Mat3{
		c.ScaleX, 0, 0,
		0, c.ScaleY, 0,
		c.TX, c.TY, 1,
	}
}

// Project applies Mat3 to a world point, which is what the vertex shader
// does on the GPU.
func (c Camera) Project(x, y float32) (float32, float32) {
	v := c.Mat3().Mul3x1(mgl32.Vec3{x, y, 1})
	return v.X(), v.Y()
}
