package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesPresented = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointsprite_frames_presented_total",
		Help: "Total number of frames swapped onto the window",
	})
	DrawCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointsprite_draw_calls_total",
		Help: "Total number of point draw calls issued",
	}, []string{"program"})
	PointsDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointsprite_points_drawn_total",
		Help: "Total number of point sprites submitted in draw calls",
	}, []string{"program"})
	VertexBytesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointsprite_vertex_bytes_uploaded_total",
		Help: "Total number of vertex bytes copied into GPU buffers",
	})
	BufferAllocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointsprite_buffer_allocations_total",
		Help: "Total number of GPU buffer (re)allocations",
	})
	BufferVertices = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pointsprite_buffer_vertices",
		Help: "Number of vertices in the most recently allocated buffer",
	})
	ShaderBuildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointsprite_shader_build_failures_total",
		Help: "Total number of shader compile or link failures",
	}, []string{"stage"})
	ConfigReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointsprite_config_reloads_total",
		Help: "Total number of config reloads triggered by file changes",
	}, []string{"result"})
)

type ProgramMetrics struct {
	DrawCalls   prometheus.Counter
	PointsDrawn prometheus.Counter
}

func NewProgramMetrics(program string) ProgramMetrics {
	p := ProgramMetrics{
		DrawCalls:   DrawCalls.WithLabelValues(program),
		PointsDrawn: PointsDrawn.WithLabelValues(program),
	}
	p.DrawCalls.Add(0)
	p.PointsDrawn.Add(0)
	return p
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
