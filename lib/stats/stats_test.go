package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSCountsFramesPerSecond(t *testing.T) {
	s := New()
	t0 := s.start

	for i := 1; i <= 30; i++ {
		s.update(t0.Add(time.Duration(i)*time.Second/31), 10)
	}
	assert.Zero(t, s.FPS)

	s.update(t0.Add(time.Second), 10)
	assert.Equal(t, uint64(31), s.FPS)
	assert.Equal(t, 10, s.Vertices)
	assert.InDelta(t, 1.0, s.Uptime, 1e-9)
}

func TestUploadAverage(t *testing.T) {
	s := New()
	s.update(s.start.Add(2*time.Second), 0)
	assert.InDelta(t, float64(s.VertexUpload)/(2*1024*1024), s.VertexUploadAvgMb, 1e-9)
}
