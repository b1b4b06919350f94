package kbdctl

import (
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var logger = log.Module("kbdctl")

// Controls is what the keyboard can change about a running viewer.
type Controls interface {
	RequestShutdown()
	ToggleSquare()
	ScalePointSize(factor float32)
	Pan(fx, fy float32)
	Zoom(factor float32)
}

const (
	panStep  = 0.05
	zoomStep = 1.1
	sizeStep = 1.25
)

func SetupShortcutKeys(c Controls, w *window.Window) {
	w.SetKeyCallback(keyCallback(c))
}

func Poll() {
	window.Poll()
}

func keyCallback(c Controls) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			if key == glfw.KeyQ &&
				mods&glfw.ModControl != 0 &&
				mods&glfw.ModShift != 0 {
				logger.Info("told to quit, exiting")
				c.RequestShutdown()
			}
			return
		}

		// everything else repeats while held
		switch key {
		case glfw.KeyS:
			if action == glfw.Press {
				c.ToggleSquare()
			}
		case glfw.KeyEqual, glfw.KeyKPAdd:
			c.ScalePointSize(sizeStep)
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			c.ScalePointSize(1 / sizeStep)
		case glfw.KeyLeft:
			c.Pan(-panStep, 0)
		case glfw.KeyRight:
			c.Pan(panStep, 0)
		case glfw.KeyUp:
			c.Pan(0, -panStep)
		case glfw.KeyDown:
			c.Pan(0, panStep)
		case glfw.KeyLeftBracket:
			c.Zoom(1 / zoomStep)
		case glfw.KeyRightBracket:
			c.Zoom(zoomStep)
		}
	}
}
