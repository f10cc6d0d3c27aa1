package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/musou1500/learn-wgpu/core"
)

// translateKey maps GLFW key codes onto the window-library independent
// keys the camera controller understands.
func translateKey(key glfw.Key) core.Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KeyA + core.Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return core.Key0 + core.Key(key-glfw.Key0)
	}

	switch key {
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyEnter:
		return core.KeyEnter
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyTab:
		return core.KeyTab
	case glfw.KeyRight:
		return core.KeyArrowRight
	case glfw.KeyLeft:
		return core.KeyArrowLeft
	case glfw.KeyDown:
		return core.KeyArrowDown
	case glfw.KeyUp:
		return core.KeyArrowUp
	case glfw.KeyLeftShift:
		return core.KeyLeftShift
	case glfw.KeyLeftControl:
		return core.KeyLeftControl
	case glfw.KeyLeftAlt:
		return core.KeyLeftAlt
	}
	return core.KeyUnknown
}

// InstallCallbacks wires window events into the renderer state. Look
// deltas only reach the controller while the left mouse button is
// held, so a free cursor does not spin the camera.
func (s *State) InstallCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		pressed := action != glfw.Release
		s.Controller.ProcessKeyboard(translateKey(key), pressed)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			s.mousePressed = action == glfw.Press
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if s.haveMouse && s.mousePressed {
			s.Controller.HandleMouse(xpos-s.lastMouseX, ypos-s.lastMouseY)
		}
		s.lastMouseX = xpos
		s.lastMouseY = ypos
		s.haveMouse = true
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		s.Controller.HandleMouseScroll(core.ScrollLines, float32(yoff))
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		s.Resize(uint32(width), uint32(height))
	})
}
