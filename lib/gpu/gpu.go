package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

const NoError uint32 = 0

// GL is the part of the OpenGL ES 3.0 API the renderer talks to. All calls
// must come from the thread that owns the current context.
type GL interface {
	CreateShader(stage ShaderStage) uint32
	// CompileShader sets the source of shader, compiles it and reports the
	// compile status together with the info log.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	// LinkProgram attaches the given shaders to program and links it.
	LinkProgram(program uint32, shaders ...uint32) (ok bool, infoLog string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	AttribLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v mgl32.Vec2)
	Uniform3f(location int32, v mgl32.Vec3)
	UniformMatrix2(location int32, m mgl32.Mat2)
	UniformMatrix3(location int32, m mgl32.Mat3)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindArrayBuffer(buffer uint32)
	// BufferData (re)allocates the store of the bound array buffer.
	BufferData(size int, data unsafe.Pointer, usage Usage)
	BufferSubData(offset int, size int, data unsafe.Pointer)

	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttrib1f(index uint32, v float32)
	VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr)

	EnableAlphaBlend()
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawPoints(first int32, count int32)

	GetError() uint32
}

// Error is raised (as a panic value) when the context reports an error code
// after a call. These are bugs, not conditions to recover from.
type Error struct {
	Op   string
	Code uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("GL error 0x%04x after %s", e.Code, e.Op)
}

// Check panics with an *Error if the context has an error code pending.
func Check(gl GL, op string) {
	if code := gl.GetError(); code != NoError {
		panic(&Error{Op: op, Code: code})
	}
}
