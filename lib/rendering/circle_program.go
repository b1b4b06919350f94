package rendering

import (
	"errors"
	"fmt"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/metrics"
	"github.com/fosdem/pointsprite/lib/rendering/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrRange = errors.New("draw range out of bounds")

// Style is what a single draw call varies: colour and size of the sprites
// and whether they are square.
type Style struct {
	Colour    mgl32.Vec3
	PointSize float32
	Square    bool
}

type CircleProgram struct {
	gl      gpu.GL
	program *shaders.Program
	vao     uint32
	metrics metrics.ProgramMetrics

	matrixUniform    int32
	offsetUniform    int32
	pointSizeUniform int32
	colourUniform    int32
	squareUniform    int32
	positionAttrib   int32
	alphaAttrib      int32

	released bool
}

func NewCircleProgram(gl gpu.GL, kind shaders.Kind) (*CircleProgram, error) {
	program, err := shaders.BuildProgram(gl, kind)
	if err != nil {
		return nil, err
	}

	p := &CircleProgram{
		gl:      gl,
		program: program,
		metrics: metrics.NewProgramMetrics(kind.String()),
	}

	p.vao = gl.GenVertexArray()
	gl.BindVertexArray(p.vao)

	gl.UseProgram(program.ID)
	p.matrixUniform = gl.UniformLocation(program.ID, "mmatrix")
	p.pointSizeUniform = gl.UniformLocation(program.ID, "point_size")
	p.colourUniform = gl.UniformLocation(program.ID, "bcol")
	p.offsetUniform = -1
	p.squareUniform = -1
	p.alphaAttrib = -1
	if kind == shaders.Flat {
		p.offsetUniform = gl.UniformLocation(program.ID, "offset")
	}
	if kind == shaders.Circle {
		p.squareUniform = gl.UniformLocation(program.ID, "square")
		p.alphaAttrib = gl.AttribLocation(program.ID, "alpha")
	}
	p.positionAttrib = gl.AttribLocation(program.ID, "position")
	if p.positionAttrib < 0 {
		p.Release()
		return nil, fmt.Errorf("%s program has no position attribute", kind)
	}
	gpu.Check(gl, "NewCircleProgram")

	return p, nil
}

func (p *CircleProgram) Kind() shaders.Kind {
	return p.program.Kind
}

// NewDrawSession clears the current framebuffer to back and returns a session
// drawing through the camera for world.
func (p *CircleProgram) NewDrawSession(back mgl32.Vec3, world geom.Rect) *DrawSession {
	p.gl.EnableAlphaBlend()
	p.gl.ClearColor(back[0], back[1], back[2], 1.0)
	p.gl.Clear()
	gpu.Check(p.gl, "Clear")
	return &DrawSession{program: p, world: world}
}

// Release deletes the vertex array and the program. Calling it again does
// nothing.
func (p *CircleProgram) Release() {
	if p.released {
		return
	}
	p.released = true
	p.gl.DeleteVertexArray(p.vao)
	p.program.Release()
}

func (p *CircleProgram) setUniforms(camera Camera, style Style) {
	gl := p.gl
	gl.UseProgram(p.program.ID)

	switch p.program.Kind {
	case shaders.Flat:
		gl.UniformMatrix2(p.matrixUniform, camera.Mat2())
		gl.Uniform2f(p.offsetUniform, camera.Offset())
	default:
		gl.UniformMatrix3(p.matrixUniform, camera.Mat3())
	}
	gl.Uniform1f(p.pointSizeUniform, camera.PointSize)
	gl.Uniform3f(p.colourUniform, style.Colour)
	if p.squareUniform >= 0 {
		square := int32(0)
		if style.Square {
			square = 1
		}
		gl.Uniform1i(p.squareUniform, square)
	}
	gpu.Check(gl, "setUniforms")
}

func (p *CircleProgram) bindVertices(buf VertexSource) {
	gl := p.gl
	layout := buf.Layout()

	gl.BindVertexArray(p.vao)
	gl.BindArrayBuffer(buf.ID())

	pos := uint32(p.positionAttrib)
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointer(pos, 2, layout.Stride, 0)

	if p.alphaAttrib >= 0 {
		alpha := uint32(p.alphaAttrib)
		if layout.HasAlpha {
			gl.EnableVertexAttribArray(alpha)
			gl.VertexAttribPointer(alpha, 1, layout.Stride, layout.AlphaOffset)
		} else {
			// the default generic attribute would make every point invisible
			gl.DisableVertexAttribArray(alpha)
			gl.VertexAttrib1f(alpha, 1.0)
		}
	}
	gpu.Check(gl, "bindVertices")
}

// DrawSession draws any number of buffer sections into one cleared frame.
type DrawSession struct {
	program *CircleProgram
	world   geom.Rect
}

func (s *DrawSession) World() geom.Rect {
	return s.world
}

// DrawSection draws vertices [start, end) of buf. dim is the size of the
// viewport in pixels; style.PointSize is in world units.
func (s *DrawSession) DrawSection(dim geom.Dim, buf VertexSource, start, end int, style Style) error {
	if start < 0 || start > end || end > buf.Len() {
		return fmt.Errorf("%w: [%d, %d) of %d vertices", ErrRange, start, end, buf.Len())
	}
	camera, err := NewCamera(s.world, dim, style.PointSize)
	if err != nil {
		return err
	}
	p := s.program
	if p.released {
		return fmt.Errorf("draw with released %s program", p.Kind())
	}

	p.setUniforms(camera, style)
	p.bindVertices(buf)

	count := end - start
	if count == 0 {
		return nil
	}
	p.gl.DrawPoints(int32(start), int32(count))
	gpu.Check(p.gl, "DrawArrays")

	p.metrics.DrawCalls.Inc()
	p.metrics.PointsDrawn.Add(float64(count))
	return nil
}
