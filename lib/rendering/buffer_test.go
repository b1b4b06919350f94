package rendering

import (
	"testing"

	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	p := LayoutOf[Point]()
	assert.Equal(t, Layout{Stride: 8, Components: 2}, p)

	a := LayoutOf[AlphaPoint]()
	assert.Equal(t, Layout{Stride: 12, Components: 3, HasAlpha: true, AlphaOffset: 8}, a)
}

func TestNewBufferAllocatesZeroedStore(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[AlphaPoint](fake, 4)

	assert.Equal(t, 4, b.Len())
	assert.Len(t, fake.Buffers[b.ID()], 4*12)
	assert.Equal(t, make([]float32, 12), fake.Floats(b.ID()))
}

func TestResizeThenUpdateSameLength(t *testing.T) {
	for _, n := range []int{0, 1, 3, 257} {
		fake := gputest.New()
		b := NewBuffer[Point](fake, 2)

		require.NoError(t, b.Resize(n))
		verts := make([]Point, n)
		for i := range verts {
			verts[i] = Point{float32(i), float32(-i)}
		}
		require.NoError(t, b.Update(verts))

		assert.Equal(t, n, b.Len())
		assert.Len(t, fake.Buffers[b.ID()], n*8)
		if n > 0 {
			got := fake.Floats(b.ID())
			assert.Equal(t, float32(n-1), got[2*(n-1)])
			assert.Equal(t, float32(-(n - 1)), got[2*(n-1)+1])
		}
	}
}

func TestResizeThenUpdateOtherLengthIsRejected(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[AlphaPoint](fake, 0)
	require.NoError(t, b.Resize(5))

	for _, m := range []int{0, 4, 6, 50} {
		err := b.Update(make([]AlphaPoint, m))
		assert.ErrorIs(t, err, ErrLengthMismatch, "m=%d", m)
		assert.Equal(t, 5, b.Len())
		assert.Len(t, fake.Buffers[b.ID()], 5*12)
	}
}

func TestResizeKeepsPrefixAndZeroesTail(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[Point](fake, 3)
	require.NoError(t, b.Update([]Point{{1, 1}, {2, 2}, {3, 3}}))

	require.NoError(t, b.Resize(1))
	assert.Equal(t, []Point{{1, 1}}, b.Verts())

	require.NoError(t, b.Resize(3))
	assert.Equal(t, []Point{{1, 1}, {0, 0}, {0, 0}}, b.Verts())
	assert.Equal(t, []float32{1, 1, 0, 0, 0, 0}, fake.Floats(b.ID()))
}

func TestVertsThenSync(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[AlphaPoint](fake, 2)

	b.Verts()[1] = AlphaPoint{5, 6, 0.5}
	require.NoError(t, b.Sync())

	assert.Equal(t, []float32{0, 0, 0, 5, 6, 0.5}, fake.Floats(b.ID()))
}

type bot struct {
	x, y float32
	fast bool
}

func TestUpdateWith(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[AlphaPoint](fake, 2)
	bots := []bot{{1, 2, true}, {3, 4, false}}

	err := UpdateWith(b, bots, func(b *bot) AlphaPoint {
		alpha := float32(0.25)
		if b.fast {
			alpha = 1
		}
		return AlphaPoint{b.x, b.y, alpha}
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 1, 3, 4, 0.25}, fake.Floats(b.ID()))

	err = UpdateWith(b, bots[:1], func(b *bot) AlphaPoint { return AlphaPoint{} })
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestReleaseExactlyOnce(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[Point](fake, 8)
	id := b.ID()

	b.Release()
	b.Release()

	assert.Equal(t, 1, fake.Deleted[id])
	assert.True(t, b.Released())
	assert.Zero(t, fake.Live())

	assert.ErrorIs(t, b.Update(nil), ErrReleased)
	assert.ErrorIs(t, b.Sync(), ErrReleased)
	assert.ErrorIs(t, b.Resize(2), ErrReleased)
	assert.Equal(t, 1, fake.Deleted[id])
}

func TestGLErrorPanics(t *testing.T) {
	fake := gputest.New()
	b := NewBuffer[Point](fake, 1)

	fake.PendingError = 0x0505
	assert.PanicsWithError(t, (&gpu.Error{Op: "BufferSubData", Code: 0x0505}).Error(), func() {
		_ = b.Sync()
	})
}
