// Package window opens the GLFW window with a GL 4.1 core context and samples
// its input into one snapshot per frame.
package window

import (
	"fmt"

	"github.com/ThatOtherAndrew/acsim/internal/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *WindowError) Unwrap() error { return e.err }

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

var keyMap = [...]struct {
	key   input.Key
	glfwK glfw.Key
}{
	{input.KeyW, glfw.KeyW},
	{input.KeyA, glfw.KeyA},
	{input.KeyS, glfw.KeyS},
	{input.KeyD, glfw.KeyD},
	{input.KeyQ, glfw.KeyQ},
	{input.KeyE, glfw.KeyE},
	{input.KeyUp, glfw.KeyUp},
	{input.KeyDown, glfw.KeyDown},
	{input.KeySpace, glfw.KeySpace},
	{input.KeyL, glfw.KeyL},
	{input.KeyT, glfw.KeyT},
	{input.KeyC, glfw.KeyC},
	{input.KeyEscape, glfw.KeyEscape},
}

type Window struct {
	window *glfw.Window
	scroll float64
	hidden bool
}

// New initializes GLFW and opens the window with a current GL context. The
// caller must hold the OS thread for the life of the window.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{"failed to initialize GLFW", err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	width, height := opts.Width, opts.Height
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor != nil {
			mode := monitor.GetVideoMode()
			width, height = mode.Width, mode.Height
		}
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{"failed to create window", err}
	}
	win.MakeContextCurrent()
	// The frame loop paces itself.
	glfw.SwapInterval(0)

	w := &Window{window: win}
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.scroll += yoff
	})
	return w, nil
}

// Snapshot samples keys, cursor and the left button, and hands over the
// scroll offset accumulated since the previous call. Sizes are in screen
// coordinates, the space cursor positions are reported in.
func (w *Window) Snapshot() input.Snapshot {
	var snap input.Snapshot
	for _, k := range keyMap {
		snap.Keys[k.key] = w.window.GetKey(k.glfwK) == glfw.Press
	}
	snap.CursorX, snap.CursorY = w.window.GetCursorPos()
	snap.MouseDown = w.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	snap.ScrollY = w.scroll
	w.scroll = 0
	snap.Width, snap.Height = w.window.GetSize()
	return snap
}

// SetCursorHidden hides the OS cursor over the window. Repeated calls with
// the same value are free.
func (w *Window) SetCursorHidden(hidden bool) {
	if hidden == w.hidden {
		return
	}
	w.hidden = hidden
	mode := glfw.CursorNormal
	if hidden {
		mode = glfw.CursorHidden
	}
	w.window.SetInputMode(glfw.CursorMode, mode)
}

func (w *Window) GetSize() (int, int) {
	return w.window.GetSize()
}

// FramebufferSize is the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.window.SetShouldClose(v)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}
