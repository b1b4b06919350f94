package rendering

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/metrics"
)

const f32 = 4

var (
	ErrLengthMismatch = errors.New("vertex count does not match buffer length")
	ErrReleased       = errors.New("buffer already released")
)

// Point is a bare position.
type Point [2]float32

// AlphaPoint is a position followed by an opacity in [0, 1].
type AlphaPoint [3]float32

func (p Point) X() float32 { return p[0] }
func (p Point) Y() float32 { return p[1] }

func (p AlphaPoint) X() float32     { return p[0] }
func (p AlphaPoint) Y() float32     { return p[1] }
func (p AlphaPoint) Alpha() float32 { return p[2] }

type Vertex interface {
	Point | AlphaPoint
}

// Layout describes how a vertex type sits in a buffer.
type Layout struct {
	Stride      int32
	Components  int32
	HasAlpha    bool
	AlphaOffset uintptr
}

func LayoutOf[V Vertex]() Layout {
	var v V
	size := int32(unsafe.Sizeof(v))
	l := Layout{
		Stride:     size,
		Components: size / f32,
	}
	if l.Components > 2 {
		l.HasAlpha = true
		l.AlphaOffset = 2 * f32
	}
	return l
}

// VertexSource is what a draw session needs from a buffer.
type VertexSource interface {
	ID() uint32
	Len() int
	Layout() Layout
}

// VertexUploadCounter counts the bytes copied into vertex buffers since
// startup.
var VertexUploadCounter uint64

// Buffer keeps a host copy of the vertices next to the GPU buffer object
// holding the same data. The GPU store always has room for exactly Len()
// vertices.
type Buffer[V Vertex] struct {
	gl       gpu.GL
	vbo      uint32
	verts    []V
	released bool
}

func NewBuffer[V Vertex](gl gpu.GL, numVertices int) *Buffer[V] {
	if numVertices < 0 {
		panic(fmt.Sprintf("negative vertex count %d", numVertices))
	}
	b := &Buffer[V]{
		gl:    gl,
		vbo:   gl.GenBuffer(),
		verts: make([]V, numVertices),
	}
	b.allocate()
	return b
}

func (b *Buffer[V]) ID() uint32 {
	return b.vbo
}

func (b *Buffer[V]) Len() int {
	return len(b.verts)
}

func (b *Buffer[V]) Layout() Layout {
	return LayoutOf[V]()
}

// Verts returns the host copy for in-place edits. Call Sync afterwards to
// push them to the GPU.
func (b *Buffer[V]) Verts() []V {
	return b.verts
}

func (b *Buffer[V]) Released() bool {
	return b.released
}

// Sync copies the whole host copy into the GPU buffer.
func (b *Buffer[V]) Sync() error {
	if b.released {
		return ErrReleased
	}
	size := b.byteSize()
	b.gl.BindArrayBuffer(b.vbo)
	if size > 0 {
		b.gl.BufferSubData(0, size, unsafe.Pointer(&b.verts[0]))
	}
	gpu.Check(b.gl, "BufferSubData")
	b.uploaded(size)
	return nil
}

// Update replaces the buffer contents. verts must have exactly Len()
// elements; use Resize first to change the vertex count.
func (b *Buffer[V]) Update(verts []V) error {
	if b.released {
		return ErrReleased
	}
	if len(verts) != len(b.verts) {
		return fmt.Errorf("%w: got %d, buffer holds %d", ErrLengthMismatch, len(verts), len(b.verts))
	}
	copy(b.verts, verts)
	return b.Sync()
}

// UpdateWith maps items onto the vertices of b and uploads the result.
func UpdateWith[T any, V Vertex](b *Buffer[V], items []T, fn func(*T) V) error {
	if b.released {
		return ErrReleased
	}
	if len(items) != len(b.verts) {
		return fmt.Errorf("%w: got %d, buffer holds %d", ErrLengthMismatch, len(items), len(b.verts))
	}
	for i := range items {
		b.verts[i] = fn(&items[i])
	}
	return b.Sync()
}

// Resize changes the vertex count and reallocates the GPU store to match.
// Existing vertices up to the new length are kept, new ones are zero.
func (b *Buffer[V]) Resize(numVertices int) error {
	if b.released {
		return ErrReleased
	}
	if numVertices < 0 {
		return fmt.Errorf("negative vertex count %d", numVertices)
	}
	if numVertices <= cap(b.verts) {
		old := len(b.verts)
		b.verts = b.verts[:numVertices]
		clear(b.verts[min(old, numVertices):])
	} else {
		verts := make([]V, numVertices)
		copy(verts, b.verts)
		b.verts = verts
	}
	b.allocate()
	return nil
}

// Release deletes the GPU buffer. Calling it again does nothing.
func (b *Buffer[V]) Release() {
	if b.released {
		return
	}
	b.released = true
	b.gl.DeleteBuffer(b.vbo)
	b.verts = nil
}

func (b *Buffer[V]) allocate() {
	size := b.byteSize()
	var data unsafe.Pointer
	if size > 0 {
		data = unsafe.Pointer(&b.verts[0])
	}
	b.gl.BindArrayBuffer(b.vbo)
	b.gl.BufferData(size, data, gpu.DynamicDraw)
	gpu.Check(b.gl, "BufferData")

	metrics.BufferAllocations.Inc()
	metrics.BufferVertices.Set(float64(len(b.verts)))
	b.uploaded(size)
}

func (b *Buffer[V]) byteSize() int {
	var v V
	return len(b.verts) * int(unsafe.Sizeof(v))
}

func (b *Buffer[V]) uploaded(size int) {
	VertexUploadCounter += uint64(size)
	metrics.VertexBytesUploaded.Add(float64(size))
}
