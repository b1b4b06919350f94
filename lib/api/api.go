// Package api is the HTTP control surface of the viewer.
//
//	@title			pointsprite
//	@version		1.0
//	@description	Live stats and camera control for the point sprite viewer.
//	@BasePath		/
package api

//go:generate go tool swag init -g api.go -o docs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/pprof"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fosdem/pointsprite/lib/api/docs"
	"github.com/fosdem/pointsprite/lib/config"
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/metrics"
	"github.com/fosdem/pointsprite/lib/stats"
)

var logger = log.Module("api")

type Api struct {
	srv http.Server
	mux *http.ServeMux
	cfg *config.ApiCfg

	// ShutdownRequested is set by /api/kill and polled by the frame loop.
	ShutdownRequested atomic.Bool

	statsMu sync.Mutex
	Stats   *stats.Stats

	cam camera

	wsMu      sync.Mutex
	wsClients map[*websocket.Conn]bool
	wsPeriod  time.Duration
}

func New(cfg *config.ApiCfg) *Api {
	a := &Api{
		mux:       http.NewServeMux(),
		cfg:       cfg,
		Stats:     stats.New(),
		wsClients: make(map[*websocket.Conn]bool),
		wsPeriod:  2 * time.Second,
	}
	a.cam.init()
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux

	if cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("/api/kill", a.suicide)
	a.mux.HandleFunc("/api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/camera", a.getCamera)
	a.mux.HandleFunc("PUT /api/camera", a.putCamera)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/swagger/", httpSwagger.WrapHandler)
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Close(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

// FrameDone folds one presented frame into the stats.
func (a *Api) FrameDone(vertices int) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	a.Stats.Update(vertices)
}

func (a *Api) statsJSON() ([]byte, error) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	return json.Marshal(a.Stats)
}

// @Summary	Record a 10 second CPU profile
// @Router		/prof [get]
// @Tags		debug
// @Produce	octet-stream
// @Success	200
func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Stop the viewer
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	logger.Info("shutting down as per api request")
	a.ShutdownRequested.Store(true)
	writeOk(w)
}

// @Summary	Fetch render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Stats
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	packet, err := a.statsJSON()
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(append(packet, '\n')); err != nil {
		logger.Warn("could not write response", "err", err)
	}
}

func writeOk(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		logger.Warn("could not write response", "err", err)
	}
}

// ServeInBackground starts the web server when the config has an api
// section. It returns nil otherwise.
func ServeInBackground(cfg *config.ApiCfg) *Api {
	if cfg == nil {
		return nil
	}
	a := New(cfg)

	logger.Info("starting web server", "bind", cfg.Bind)
	go func() {
		err := a.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped", "err", err)
		}
	}()
	return a
}
