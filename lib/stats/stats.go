package stats

import (
	"time"

	"github.com/fosdem/pointsprite/lib/rendering"
)

type Stats struct {
	VertexUpload      uint64  `json:"vertex_upload"`
	VertexUploadAvgMb float64 `json:"vertex_upload_avg_mb"`
	Uptime            float64 `json:"uptime"`
	FPS               uint64  `json:"fps"`
	Vertices          int     `json:"vertices"`
	WsClients         int     `json:"ws_clients"`

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
}

func New() *Stats {
	now := time.Now()
	return &Stats{start: now, frameTimer: now}
}

// Update is called once per presented frame.
func (s *Stats) Update(vertices int) {
	s.update(time.Now(), vertices)
}

func (s *Stats) update(now time.Time, vertices int) {
	s.frameCounter++
	if now.Sub(s.frameTimer) >= time.Second {
		s.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}

	s.Vertices = vertices
	s.Uptime = now.Sub(s.start).Seconds()
	s.VertexUpload = rendering.VertexUploadCounter
	if s.Uptime > 0 {
		s.VertexUploadAvgMb = float64(s.VertexUpload) / (s.Uptime * 1024 * 1024)
	}
}
