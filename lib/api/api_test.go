package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosdem/pointsprite/lib/config"
	"github.com/fosdem/pointsprite/lib/geom"
)

func newTestApi() *Api {
	return New(&config.ApiCfg{Bind: "127.0.0.1:0"})
}

func do(t *testing.T, a *Api, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStats(t *testing.T) {
	a := newTestApi()
	a.FrameDone(128)

	rec := do(t, a, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(128), got["vertices"])
	assert.Contains(t, got, "fps")
	assert.Contains(t, got, "vertex_upload_avg_mb")
}

func TestKill(t *testing.T) {
	a := newTestApi()
	rec := do(t, a, http.MethodPost, "/api/kill", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.ShutdownRequested.Load())
}

func TestGetCamera(t *testing.T) {
	a := newTestApi()
	a.PublishCamera(CameraReq{World: geom.NewRect(0, 10, 0, 5), PointSize: 2, Square: true})

	rec := do(t, a, http.MethodGet, "/api/camera", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got CameraReq
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, geom.NewRect(0, 10, 0, 5), got.World)
	assert.Equal(t, float32(2), got.PointSize)
	assert.True(t, got.Square)
}

func TestPutCameraIsQueued(t *testing.T) {
	a := newTestApi()

	rec := do(t, a, http.MethodPut, "/api/camera", `{"world":{"x1":0,"x2":100,"y1":0,"y2":50},"point_size":4}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case c := <-a.CameraRequests():
		assert.Equal(t, geom.NewRect(0, 100, 0, 50), c.World)
		assert.Equal(t, float32(4), c.PointSize)
	default:
		t.Fatal("camera change was not queued")
	}

	// nothing is applied until the render thread publishes it
	assert.Equal(t, CameraReq{}, a.CurrentCamera())
}

func TestPutCameraNewestWins(t *testing.T) {
	a := newTestApi()
	do(t, a, http.MethodPut, "/api/camera", `{"world":{"x1":0,"x2":1,"y1":0,"y2":1},"point_size":1}`)
	do(t, a, http.MethodPut, "/api/camera", `{"world":{"x1":0,"x2":2,"y1":0,"y2":2},"point_size":1}`)

	c := <-a.CameraRequests()
	assert.Equal(t, float32(2), c.World.X2)
	assert.Empty(t, a.CameraRequests())
}

func TestPutCameraRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"degenerate world", `{"world":{"x1":1,"x2":1,"y1":0,"y2":1},"point_size":1}`},
		{"inverted world", `{"world":{"x1":0,"x2":1,"y1":1,"y2":0},"point_size":1}`},
		{"zero point size", `{"world":{"x1":0,"x2":1,"y1":0,"y2":1},"point_size":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi()
			rec := do(t, a, http.MethodPut, "/api/camera", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, a.CameraRequests())
		})
	}
}

func TestMetricsAndSwagger(t *testing.T) {
	a := newTestApi()

	rec := do(t, a, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pointsprite_")

	rec = do(t, a, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/camera")
}

func TestProfilerOnlyWhenEnabled(t *testing.T) {
	a := newTestApi()
	rec := do(t, a, http.MethodGet, "/prof", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebsocketStreamsStats(t *testing.T) {
	a := newTestApi()
	a.wsPeriod = 20 * time.Millisecond
	a.FrameDone(7)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, float64(1), got["ws_clients"])
	assert.Equal(t, float64(7), got["vertices"])

	// keeps streaming on the ticker
	_, _, err = ws.ReadMessage()
	assert.NoError(t, err)
}
