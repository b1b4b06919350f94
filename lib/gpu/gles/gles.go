// Package gles implements gpu.GL on top of the OpenGL ES 3 bindings.
package gles

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/log"
	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.Module("gles")

type Context struct{}

// Init loads the GL function pointers. A context must be current on the
// calling thread.
func Init() (*Context, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL ES context: %w", err)
	}

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	glsl := gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
	logger.Info(fmt.Sprintf("OpenGL version %s / %s / %s (GLSL %s)", vendor, renderer, version, glsl))

	return &Context{}, nil
}

var _ gpu.GL = (*Context)(nil)

func (c *Context) CreateShader(stage gpu.ShaderStage) uint32 {
	switch stage {
	case gpu.VertexShader:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case gpu.FragmentShader:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		panic(fmt.Sprintf("unknown shader stage %s", stage))
	}
}

func (c *Context) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		return false, strings.TrimRight(clog, "\x00")
	}
	return true, ""
}

func (c *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logmsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
		return false, strings.TrimRight(logmsg, "\x00")
	}
	return true, ""
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (c *Context) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (c *Context) Uniform2f(location int32, v mgl32.Vec2) {
	gl.Uniform2f(location, v[0], v[1])
}

func (c *Context) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (c *Context) UniformMatrix2(location int32, m mgl32.Mat2) {
	gl.UniformMatrix2fv(location, 1, false, &m[0])
}

func (c *Context) UniformMatrix3(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (c *Context) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (c *Context) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (c *Context) BufferData(size int, data unsafe.Pointer, usage gpu.Usage) {
	gl.BufferData(gl.ARRAY_BUFFER, size, data, usageEnum(usage))
}

func (c *Context) BufferSubData(offset int, size int, data unsafe.Pointer) {
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, size, data)
}

func (c *Context) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (c *Context) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *Context) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (c *Context) VertexAttrib1f(index uint32, v float32) {
	gl.VertexAttrib1f(index, v)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (c *Context) EnableAlphaBlend() {
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.BLEND)
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (c *Context) DrawPoints(first int32, count int32) {
	gl.DrawArrays(gl.POINTS, first, count)
}

func (c *Context) GetError() uint32 {
	return gl.GetError()
}

func usageEnum(u gpu.Usage) uint32 {
	switch u {
	case gpu.StaticDraw:
		return gl.STATIC_DRAW
	case gpu.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gpu.StreamDraw:
		return gl.STREAM_DRAW
	default:
		panic("unknown buffer usage")
	}
}
