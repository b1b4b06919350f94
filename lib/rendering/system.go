package rendering

import (
	"fmt"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/metrics"
	"github.com/fosdem/pointsprite/lib/rendering/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.Module("rendering")

// Surface is the window side of the pipeline.
type Surface interface {
	FramebufferSize() (width, height int)
	SwapBuffers()
}

type Options struct {
	NumVertices int
	World       geom.Rect
	PointSize   float32
	BackColour  mgl32.Vec3
	BotColour   mgl32.Vec3
	Square      bool
}

// System draws one vertex buffer onto one surface. Buffers of Point use the
// flat program, buffers of AlphaPoint the circle program.
type System[V Vertex] struct {
	gl      gpu.GL
	surface Surface
	program *CircleProgram
	buffer  *Buffer[V]

	world      geom.Rect
	pointSize  float32
	backColour mgl32.Vec3
	botColour  mgl32.Vec3
	square     bool

	released bool
}

func KindFor[V Vertex]() shaders.Kind {
	if LayoutOf[V]().HasAlpha {
		return shaders.Circle
	}
	return shaders.Flat
}

// NewSystem compiles the program matching V and allocates the vertex buffer.
// The GL context of surface must be current.
func NewSystem[V Vertex](gl gpu.GL, surface Surface, opts Options) (*System[V], error) {
	if err := opts.World.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateWorld, err)
	}
	program, err := NewCircleProgram(gl, KindFor[V]())
	if err != nil {
		return nil, err
	}

	s := &System[V]{
		gl:         gl,
		surface:    surface,
		program:    program,
		buffer:     NewBuffer[V](gl, opts.NumVertices),
		world:      opts.World,
		pointSize:  opts.PointSize,
		backColour: opts.BackColour,
		botColour:  opts.BotColour,
		square:     opts.Square,
	}
	if _, err := s.camera(); err != nil {
		s.Release()
		return nil, err
	}
	logger.Info(fmt.Sprintf("%s program ready, %d vertices, world %s", program.Kind(), opts.NumVertices, opts.World))
	return s, nil
}

func (s *System[V]) Dim() geom.Dim {
	w, h := s.surface.FramebufferSize()
	return geom.Dim{W: w, H: h}
}

func (s *System[V]) NumVertices() int {
	return s.buffer.Len()
}

func (s *System[V]) Buffer() *Buffer[V] {
	return s.buffer
}

func (s *System[V]) Program() *CircleProgram {
	return s.program
}

func (s *System[V]) World() geom.Rect {
	return s.world
}

func (s *System[V]) PointSize() float32 {
	return s.pointSize
}

func (s *System[V]) Square() bool {
	return s.square
}

func (s *System[V]) BotColour() mgl32.Vec3 {
	return s.botColour
}

func (s *System[V]) SetBotColour(c mgl32.Vec3) {
	s.botColour = c
}

func (s *System[V]) SetBackColour(c mgl32.Vec3) {
	s.backColour = c
}

func (s *System[V]) SetSquare(square bool) {
	s.square = square
}

// SetCamera changes the visible part of the world and the world-space size of
// the points. Nothing changes if the combination is invalid.
func (s *System[V]) SetCamera(world geom.Rect, pointSize float32) error {
	_, err := NewCamera(world, s.checkDim(), pointSize)
	if err != nil {
		return err
	}
	s.world = world
	s.pointSize = pointSize
	return nil
}

func (s *System[V]) camera() (Camera, error) {
	return NewCamera(s.world, s.checkDim(), s.pointSize)
}

// checkDim is the viewport size used for validation. A minimised window has
// no size, so only the world and point size are checked then.
func (s *System[V]) checkDim() geom.Dim {
	dim := s.Dim()
	if dim.W <= 0 || dim.H <= 0 {
		return geom.Dim{W: 1, H: 1}
	}
	return dim
}

func (s *System[V]) Update(verts []V) error {
	return s.buffer.Update(verts)
}

// RegenerateBuffer resizes the vertex buffer to numVertices.
func (s *System[V]) RegenerateBuffer(numVertices int) error {
	err := s.buffer.Resize(numVertices)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("vertex buffer resized to %d", numVertices))
	return nil
}

// Frame starts a new frame: sets the viewport and clears to the background
// colour. Draw sections on the returned session, then call Present.
func (s *System[V]) Frame() *DrawSession {
	dim := s.Dim()
	s.gl.Viewport(0, 0, int32(dim.W), int32(dim.H))
	return s.program.NewDrawSession(s.backColour, s.world)
}

// DrawSection draws [start, end) of the system's buffer in the current frame.
func (s *System[V]) DrawSection(session *DrawSession, colour mgl32.Vec3, start, end int) error {
	dim := s.Dim()
	if dim.W <= 0 || dim.H <= 0 {
		return nil
	}
	return session.DrawSection(dim, s.buffer, start, end, Style{
		Colour:    colour,
		PointSize: s.pointSize,
		Square:    s.square,
	})
}

func (s *System[V]) Present() {
	s.surface.SwapBuffers()
	gpu.Check(s.gl, "SwapBuffers")
	metrics.FramesPresented.Inc()
}

// Draw renders vertices [start, end) in colour as a complete frame.
func (s *System[V]) Draw(colour mgl32.Vec3, start, end int) error {
	session := s.Frame()
	err := s.DrawSection(session, colour, start, end)
	if err != nil {
		return err
	}
	s.Present()
	return nil
}

// DrawAll renders the whole buffer in the bot colour.
func (s *System[V]) DrawAll() error {
	return s.Draw(s.botColour, 0, s.buffer.Len())
}

// Release frees the buffer and the program. Calling it again does nothing.
func (s *System[V]) Release() {
	if s.released {
		return
	}
	s.released = true
	s.buffer.Release()
	s.program.Release()
}
