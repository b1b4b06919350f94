// Package gputest provides a recording gpu.GL for tests that run without a
// display.
package gputest

import (
	"fmt"
	"unsafe"

	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

type Draw struct {
	Program uint32
	Buffer  uint32
	First   int32
	Count   int32
}

type AttribPointer struct {
	Size   int32
	Stride int32
	Offset uintptr
}

// Fake hands out increasing object names and records what happens to them.
type Fake struct {
	next uint32

	Shaders  map[uint32]gpu.ShaderStage
	Programs map[uint32]bool
	Buffers  map[uint32][]byte
	VAOs     map[uint32]bool

	// Deleted counts deletions per object name, across all object kinds.
	Deleted map[uint32]int

	Sources map[uint32]string

	BoundBuffer  uint32
	BoundVAO     uint32
	BoundProgram uint32

	Uniforms     map[string]any
	Attribs      map[string]int32
	Pointers     map[uint32]AttribPointer
	Enabled      map[uint32]bool
	ConstAttribs map[uint32]float32

	Blend       bool
	Clears      int
	ClearColour mgl32.Vec4
	ViewportW   int32
	ViewportH   int32
	Draws       []Draw

	// FailCompile makes compiling the given stage fail with the given log.
	FailCompile map[gpu.ShaderStage]string
	FailLink    string
	// PendingError is returned by the next GetError call.
	PendingError uint32

	locations map[int32]string
}

func New() *Fake {
	return &Fake{
		Shaders:      map[uint32]gpu.ShaderStage{},
		Programs:     map[uint32]bool{},
		Buffers:      map[uint32][]byte{},
		VAOs:         map[uint32]bool{},
		Deleted:      map[uint32]int{},
		Sources:      map[uint32]string{},
		Uniforms:     map[string]any{},
		Attribs:      map[string]int32{"position": 0, "alpha": 1},
		Pointers:     map[uint32]AttribPointer{},
		Enabled:      map[uint32]bool{},
		ConstAttribs: map[uint32]float32{},
		FailCompile:  map[gpu.ShaderStage]string{},
		locations:    map[int32]string{},
	}
}

var _ gpu.GL = (*Fake)(nil)

func (f *Fake) name() uint32 {
	f.next++
	return f.next
}

// Live returns the number of objects that have been created but not deleted.
func (f *Fake) Live() int {
	live := 0
	for id := range f.Shaders {
		if f.Deleted[id] == 0 {
			live++
		}
	}
	for id := range f.Programs {
		if f.Deleted[id] == 0 {
			live++
		}
	}
	for id := range f.Buffers {
		if f.Deleted[id] == 0 {
			live++
		}
	}
	for id := range f.VAOs {
		if f.Deleted[id] == 0 {
			live++
		}
	}
	return live
}

func (f *Fake) CreateShader(stage gpu.ShaderStage) uint32 {
	id := f.name()
	f.Shaders[id] = stage
	return id
}

func (f *Fake) CompileShader(shader uint32, source string) (bool, string) {
	f.Sources[shader] = source
	if msg, ok := f.FailCompile[f.Shaders[shader]]; ok {
		return false, msg
	}
	return true, ""
}

func (f *Fake) DeleteShader(shader uint32) {
	f.Deleted[shader]++
}

func (f *Fake) CreateProgram() uint32 {
	id := f.name()
	f.Programs[id] = true
	return id
}

func (f *Fake) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	if f.FailLink != "" {
		return false, f.FailLink
	}
	return true, ""
}

func (f *Fake) DeleteProgram(program uint32) {
	f.Deleted[program]++
}

func (f *Fake) UseProgram(program uint32) {
	f.BoundProgram = program
}

func (f *Fake) UniformLocation(program uint32, name string) int32 {
	loc := int32(len(f.locations) + 10)
	for l, n := range f.locations {
		if n == name {
			return l
		}
	}
	f.locations[loc] = name
	return loc
}

func (f *Fake) AttribLocation(program uint32, name string) int32 {
	if loc, ok := f.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *Fake) uniform(location int32, v any) {
	name, ok := f.locations[location]
	if !ok {
		name = fmt.Sprintf("loc%d", location)
	}
	f.Uniforms[name] = v
}

func (f *Fake) Uniform1i(location int32, v int32) { f.uniform(location, v) }
func (f *Fake) Uniform1f(location int32, v float32) { f.uniform(location, v) }
func (f *Fake) Uniform2f(location int32, v mgl32.Vec2) { f.uniform(location, v) }
func (f *Fake) Uniform3f(location int32, v mgl32.Vec3) { f.uniform(location, v) }
func (f *Fake) UniformMatrix2(location int32, m mgl32.Mat2) { f.uniform(location, m) }
func (f *Fake) UniformMatrix3(location int32, m mgl32.Mat3) { f.uniform(location, m) }
func (f *Fake) VertexAttrib1f(index uint32, v float32) { f.ConstAttribs[index] = v }
func (f *Fake) EnableVertexAttribArray(index uint32) { f.Enabled[index] = true }
func (f *Fake) DisableVertexAttribArray(index uint32) { f.Enabled[index] = false }
func (f *Fake) Viewport(x, y, width, height int32) { f.ViewportW, f.ViewportH = width, height }
func (f *Fake) EnableAlphaBlend() { f.Blend = true }
func (f *Fake) ClearColor(r, g, b, a float32) { f.ClearColour = mgl32.Vec4{r, g, b, a} }
func (f *Fake) BindVertexArray(vao uint32) { f.BoundVAO = vao }
func (f *Fake) BindArrayBuffer(buffer uint32) { f.BoundBuffer = buffer }
func (f *Fake) DeleteBuffer(buffer uint32) { f.Deleted[buffer]++ }
func (f *Fake) DeleteVertexArray(vao uint32) { f.Deleted[vao]++ }

func (f *Fake) Clear() {
	f.Clears++
}

func (f *Fake) GenBuffer() uint32 {
	id := f.name()
	f.Buffers[id] = nil
	return id
}

func (f *Fake) GenVertexArray() uint32 {
	id := f.name()
	f.VAOs[id] = true
	return id
}

func (f *Fake) bound() uint32 {
	if f.BoundBuffer == 0 {
		panic("gputest: no array buffer bound")
	}
	if f.Deleted[f.BoundBuffer] > 0 {
		panic(fmt.Sprintf("gputest: buffer %d used after delete", f.BoundBuffer))
	}
	return f.BoundBuffer
}

func (f *Fake) BufferData(size int, data unsafe.Pointer, usage gpu.Usage) {
	id := f.bound()
	store := make([]byte, size)
	if data != nil && size > 0 {
		copy(store, unsafe.Slice((*byte)(data), size))
	}
	f.Buffers[id] = store
}

func (f *Fake) BufferSubData(offset int, size int, data unsafe.Pointer) {
	id := f.bound()
	store := f.Buffers[id]
	if offset+size > len(store) {
		// a real driver reports GL_INVALID_VALUE here
		f.PendingError = 0x0501
		return
	}
	if size > 0 {
		copy(store[offset:], unsafe.Slice((*byte)(data), size))
	}
}

func (f *Fake) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	f.bound()
	f.Pointers[index] = AttribPointer{Size: size, Stride: stride, Offset: offset}
}

func (f *Fake) DrawPoints(first int32, count int32) {
	f.Draws = append(f.Draws, Draw{Program: f.BoundProgram, Buffer: f.BoundBuffer, First: first, Count: count})
}

func (f *Fake) GetError() uint32 {
	code := f.PendingError
	f.PendingError = gpu.NoError
	return code
}

// Floats reinterprets the store of buffer id as float32s.
func (f *Fake) Floats(id uint32) []float32 {
	store := f.Buffers[id]
	if len(store) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&store[0])), len(store)/4)
}
