package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/fosdem/pointsprite/lib/geom"
)

var ErrBadPointSize = errors.New("point size must be a positive finite number")

// CameraReq is the camera as seen from the outside: the world rectangle that
// fills the window and the point size in world units.
type CameraReq struct {
	World     geom.Rect `json:"world"`
	PointSize float32   `json:"point_size" example:"10"`
	Square    bool      `json:"square"`
}

func (c CameraReq) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	p := float64(c.PointSize)
	if !(p > 0) || math.IsInf(p, 0) {
		return ErrBadPointSize
	}
	return nil
}

// camera holds the last camera the render thread reported and at most one
// pending change. GL lives on the render thread, so requests are queued and
// picked up between frames.
type camera struct {
	mu      sync.Mutex
	current CameraReq
	pending chan CameraReq
}

func (c *camera) init() {
	c.pending = make(chan CameraReq, 1)
}

// PublishCamera records the camera the render thread is using.
func (a *Api) PublishCamera(c CameraReq) {
	a.cam.mu.Lock()
	a.cam.current = c
	a.cam.mu.Unlock()
}

func (a *Api) CurrentCamera() CameraReq {
	a.cam.mu.Lock()
	defer a.cam.mu.Unlock()
	return a.cam.current
}

// CameraRequests delivers validated camera changes. A newer request replaces
// one that has not been picked up yet.
func (a *Api) CameraRequests() <-chan CameraReq {
	return a.cam.pending
}

func (a *Api) queueCamera(c CameraReq) {
	a.cam.mu.Lock()
	defer a.cam.mu.Unlock()
	for {
		select {
		case a.cam.pending <- c:
			return
		default:
		}
		select {
		case <-a.cam.pending:
		default:
		}
	}
}

// @Summary	Get the current camera
// @Router		/api/camera [get]
// @Tags		camera
// @Produce	json
// @Success	200	{object}	CameraReq
func (a *Api) getCamera(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.CurrentCamera())
	if err != nil {
		logger.Warn("could not write response", "err", err)
	}
}

// @Summary	Move the camera
// @Router		/api/camera [put]
// @Param		cameraReq	body	CameraReq	true	"New camera"
// @Tags		camera
// @Accept		json
// @Success	202
// @Failure	400	{string}	string	"Could not decode json request"
func (a *Api) putCamera(w http.ResponseWriter, req *http.Request) {
	var cameraReq CameraReq
	err := json.NewDecoder(req.Body).Decode(&cameraReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not decode json request: %s", err), http.StatusBadRequest)
		return
	}
	if err := cameraReq.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("invalid camera: %s", err), http.StatusBadRequest)
		return
	}
	a.queueCamera(cameraReq)
	logger.Info("camera change queued", "world", cameraReq.World.String())

	w.WriteHeader(http.StatusAccepted)
	writeOk(w)
}
