package window

import (
	"fmt"

	"github.com/fosdem/pointsprite/lib/config"
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var logger = log.Module("window")

// Window is a GLFW window with a current OpenGL ES 3.0 context.
type Window struct {
	*glfw.Window

	resized bool
}

// New creates the window and makes its context current on the calling
// thread, which must be the locked main thread.
func New(cfg *config.WindowCfg) (*Window, error) {
	logger.Debug("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	// we are targeting only OpenGL ES 3.0 and GLSL 300 es
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	var monitor *glfw.Monitor
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
		logger.Info(fmt.Sprintf("fullscreen on '%s' %dx%d", monitor.GetName(), width, height))
	}

	gw, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	gw.MakeContextCurrent()

	if cfg.VsyncEnabled() {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{Window: gw}
	gw.SetFramebufferSizeCallback(func(_ *glfw.Window, width int, height int) {
		logger.Debug(fmt.Sprintf("framebuffer resized to %dx%d", width, height))
		w.resized = true
	})
	return w, nil
}

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-DPI screens.
func (w *Window) FramebufferSize() (int, int) {
	return w.GetFramebufferSize()
}

// Resized reports whether the framebuffer changed size since the last call.
func (w *Window) Resized() bool {
	r := w.resized
	w.resized = false
	return r
}

func Poll() {
	glfw.PollEvents()
}

func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
