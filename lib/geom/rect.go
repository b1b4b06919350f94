package geom

import (
	"errors"
	"fmt"
	"math"
)

var ErrDegenerate = errors.New("degenerate rectangle")

// Rect is an axis aligned rectangle in world coordinates. X1,Y1 is the
// top-left corner as seen on screen.
type Rect struct {
	X1 float32 `yaml:"x1" json:"x1"`
	X2 float32 `yaml:"x2" json:"x2"`
	Y1 float32 `yaml:"y1" json:"y1"`
	Y2 float32 `yaml:"y2" json:"y2"`
}

func NewRect(x1, x2, y1, y2 float32) Rect {
	return Rect{X1: x1, X2: x2, Y1: y1, Y2: y2}
}

func (r Rect) Width() float32 {
	return r.X2 - r.X1
}

func (r Rect) Height() float32 {
	return r.Y2 - r.Y1
}

func (r Rect) Centre() (float32, float32) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate rejects rectangles that cannot be mapped onto a viewport: the
// extent on both axes must be finite and strictly positive.
func (r Rect) Validate() error {
	for _, v := range []float32{r.X1, r.X2, r.Y1, r.Y2} {
		if !finite(v) {
			return fmt.Errorf("%w: %s has a non-finite edge", ErrDegenerate, r)
		}
	}
	if !finite(r.Width()) || !finite(r.Height()) {
		return fmt.Errorf("%w: %s overflows", ErrDegenerate, r)
	}
	if r.Width() <= 0 {
		return fmt.Errorf("%w: %s has width %g", ErrDegenerate, r, r.Width())
	}
	if r.Height() <= 0 {
		return fmt.Errorf("%w: %s has height %g", ErrDegenerate, r, r.Height())
	}
	return nil
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Pan moves the rectangle by a fraction of its own size.
func (r Rect) Pan(fx, fy float32) Rect {
	dx := r.Width() * fx
	dy := r.Height() * fy
	return Rect{X1: r.X1 + dx, X2: r.X2 + dx, Y1: r.Y1 + dy, Y2: r.Y2 + dy}
}

// Zoom scales the rectangle around its centre. A factor below 1 zooms in.
func (r Rect) Zoom(factor float32) Rect {
	cx, cy := r.Centre()
	hw := r.Width() * factor / 2
	hh := r.Height() * factor / 2
	return Rect{X1: cx - hw, X2: cx + hw, Y1: cy - hh, Y2: cy + hh}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g..%g]x[%g..%g]", r.X1, r.X2, r.Y1, r.Y2)
}

// Dim is a size in pixels.
type Dim struct {
	W int `yaml:"width" json:"width"`
	H int `yaml:"height" json:"height"`
}

func (d Dim) String() string {
	return fmt.Sprintf("%dx%d", d.W, d.H)
}
