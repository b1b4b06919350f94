// Package viewer runs the frame loop: one window, one swarm, optional api and
// config reloading.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/fosdem/pointsprite/lib/api"
	"github.com/fosdem/pointsprite/lib/config"
	"github.com/fosdem/pointsprite/lib/gpu/gles"
	"github.com/fosdem/pointsprite/lib/kbdctl"
	"github.com/fosdem/pointsprite/lib/rendering"
	"github.com/fosdem/pointsprite/lib/rendering/shaders"
	"github.com/fosdem/pointsprite/lib/sim"
	"github.com/fosdem/pointsprite/lib/utils"
	"github.com/fosdem/pointsprite/lib/window"
)

// MakeWindowAndDraw opens the window and draws until asked to stop. It must
// be called from the main thread.
func MakeWindowAndDraw(cfg *config.Config, cfgFilename string) error {
	if cfg.DumpShaders != "" {
		err := shaders.DumpSources(string(cfg.DumpShaders), cfg.Kind())
		if err != nil {
			return fmt.Errorf("could not dump shaders: %w", err)
		}
	}

	win, err := window.New(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	gl, err := gles.Init()
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}

	switch cfg.Kind() {
	case shaders.Flat:
		scene, err := NewScene(gl, win, cfg, (*sim.Swarm).Point)
		if err != nil {
			return err
		}
		return run(scene, win, cfg, cfgFilename)
	default:
		scene, err := NewScene(gl, win, cfg, (*sim.Swarm).Vertex)
		if err != nil {
			return err
		}
		return run(scene, win, cfg, cfgFilename)
	}
}

func run[V rendering.Vertex](scene *Scene[V], win *window.Window, cfg *config.Config, cfgFilename string) error {
	defer scene.Release()

	kbdctl.SetupShortcutKeys(scene, win)

	reloads := make(chan *config.Config, 1)
	if cfg.Watch {
		watcher, err := config.Watch(cfgFilename, func(c *config.Config) {
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		})
		if err != nil {
			logger.Warn("config reloading disabled", "err", err)
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	a := api.ServeInBackground(cfg.Api)
	var cameraRequests <-chan api.CameraReq
	if a != nil {
		cameraRequests = a.CameraRequests()
		a.PublishCamera(scene.Camera())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = a.Close(ctx)
		}()
	}

	deltaTimer := utils.DeltaTimer{Max: 250 * time.Millisecond}
	for !scene.ShutdownRequested() {
		dt := deltaTimer.NextSeconds()

		select {
		case c := <-reloads:
			if err := scene.Apply(c); err != nil {
				logger.Error("could not apply reloaded config", "err", err)
			}
		case c := <-cameraRequests:
			if err := scene.ApplyCamera(c); err != nil {
				logger.Error("could not apply camera", "err", err)
			}
		default:
		}

		if win.Resized() {
			dim := scene.System.Dim()
			logger.Debug(fmt.Sprintf("viewport now %s", dim))
		}

		if err := scene.Frame(dt); err != nil {
			return err
		}

		if win.ShouldClose() || (a != nil && a.ShutdownRequested.Load()) {
			scene.RequestShutdown()
		}

		// Maintenance
		if a != nil {
			a.FrameDone(scene.System.NumVertices())
			a.PublishCamera(scene.Camera())
		}
		kbdctl.Poll()
	}
	logger.Info("shutting down")
	return nil
}
