package opengl

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/achilleasa/pray/input"
	"github.com/achilleasa/pray/log"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window modes.
type WindowMode uint8

const (
	Windowed WindowMode = iota
	Fullscreen
	BorderlessNative
)

// Implements Stringer.
func (m WindowMode) String() string {
	switch m {
	case Windowed:
		return "windowed"
	case Fullscreen:
		return "fullscreen"
	case BorderlessNative:
		return "borderless"
	default:
		return fmt.Sprintf("WindowMode(%d)", m)
	}
}

// Window configuration.
type Config struct {
	Title  string
	Width  uint32
	Height uint32
	Mode   WindowMode

	// "primary" or a zero-based monitor index.
	Monitor string
}

// A glfw window that displays a BGRA surface.
type Window struct {
	logger log.Logger

	window *glfw.Window
	queue  *input.Queue

	width  int
	height int

	// Host side copy of the surface.
	pixels []byte

	// opengl handles
	texture uint32
	texFbo  uint32

	cursorLocked bool
	lastX, lastY float64
}

func init() {
	// glfw event handling must run on the main thread.
	runtime.LockOSThread()
}

// Open a window and set up the texture that backs the surface. Input events
// are pushed to queue.
func NewWindow(cfg Config, queue *input.Queue) (*Window, error) {
	var err error
	if err = glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	w := &Window{
		logger: log.New("display"),
		queue:  queue,
		width:  int(cfg.Width),
		height: int(cfg.Height),
	}

	var monitor *glfw.Monitor
	if cfg.Mode != Windowed {
		monitor, err = selectMonitor(cfg.Monitor)
		if err != nil {
			glfw.Terminate()
			return nil, err
		}
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if cfg.Mode == BorderlessNative {
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		w.width, w.height = mode.Width, mode.Height
	}

	w.window, err = glfw.CreateWindow(w.width, w.height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	w.window.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err = gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not init opengl: %s", err.Error())
	}

	w.pixels = make([]byte, 4*w.width*w.height)
	w.initSurface()

	// Bind event callbacks
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.window.SetKeyCallback(w.onKeyEvent)
	w.window.SetMouseButtonCallback(w.onMouseEvent)
	w.window.SetCursorPosCallback(w.onCursorPosEvent)
	w.window.SetScrollCallback(w.onScrollEvent)
	w.lastX, w.lastY = w.window.GetCursorPos()

	w.logger.Noticef("opened %dx%d %s window (opengl %s)", w.width, w.height, cfg.Mode, gl.GoStr(gl.GetString(gl.VERSION)))
	return w, nil
}

func (w *Window) initSurface() {
	// Setup texture for image data
	gl.GenTextures(1, &w.texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w.width), int32(w.height), 0, gl.BGRA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &w.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, w.texture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// Get the surface dimensions.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Get the host side copy of the surface. Pixels are stored as b,g,r,a with
// row 0 at the bottom.
func (w *Window) Pixels() []byte {
	return w.pixels
}

// Upload the surface to the texture and blit it to the default framebuffer.
func (w *Window) Present() error {
	width, height := int32(w.width), int32(w.height)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, width, height, gl.BGRA, gl.UNSIGNED_BYTE, gl.Ptr(&w.pixels[0]))

	// Copy texture data to framebuffer
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.texFbo)
	gl.BlitFramebuffer(0, 0, width, height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	w.window.SwapBuffers()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("display: opengl error 0x%x while presenting surface", code)
	}
	return nil
}

// Process pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Check whether the user requested the window to close.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Toggle cursor lock. While locked the cursor is hidden and motion events
// report unbounded displacement. It returns the new lock state.
func (w *Window) ToggleCursorLock() bool {
	w.cursorLocked = !w.cursorLocked
	if w.cursorLocked {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	w.lastX, w.lastY = w.window.GetCursorPos()
	return w.cursorLocked
}

// Move the cursor.
func (w *Window) SetCursorPos(x, y float64) {
	w.window.SetCursorPos(x, y)
	w.lastX, w.lastY = x, y
}

// Destroy the window and release the opengl resources.
func (w *Window) Close() {
	if w.window == nil {
		return
	}

	if w.texFbo != 0 {
		gl.DeleteFramebuffers(1, &w.texFbo)
		w.texFbo = 0
	}
	if w.texture != 0 {
		gl.DeleteTextures(1, &w.texture)
		w.texture = 0
	}

	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
}

func (w *Window) onKeyEvent(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
		return
	}

	code := uint64(key)
	label := glfw.GetKeyName(key, scancode)
	switch action {
	case glfw.Press, glfw.Repeat:
		w.queue.Push(input.KeyPress{Code: code, Label: label})
	case glfw.Release:
		w.queue.Push(input.KeyRelease{Code: code, Label: label})
	}
}

func (w *Window) onMouseEvent(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	x, y := win.GetCursorPos()
	switch action {
	case glfw.Press:
		w.queue.Push(input.ButtonPress{Button: uint32(button), X: int(x), Y: int(y)})
	case glfw.Release:
		w.queue.Push(input.ButtonRelease{Button: uint32(button), X: int(x), Y: int(y)})
	}
}

func (w *Window) onCursorPosEvent(win *glfw.Window, xPos, yPos float64) {
	dx, dy := xPos-w.lastX, yPos-w.lastY
	w.lastX, w.lastY = xPos, yPos
	w.queue.Push(input.MotionNotify{X: int(xPos), Y: int(yPos), DX: dx, DY: dy})
}

func (w *Window) onScrollEvent(win *glfw.Window, xOff, yOff float64) {
	x, y := win.GetCursorPos()
	w.queue.Push(input.MouseWheel{DeltaX: xOff, DeltaY: yOff, X: int(x), Y: int(y)})
}

// Select a monitor by name; "primary" (or an empty name) selects the primary monitor.
func selectMonitor(name string) (*glfw.Monitor, error) {
	monitors := glfw.GetMonitors()
	index, err := MonitorIndex(name, len(monitors))
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return glfw.GetPrimaryMonitor(), nil
	}
	return monitors[index], nil
}

// Parse a monitor selector. It returns -1 for the primary monitor.
func MonitorIndex(name string, count int) (int, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" || name == "primary" {
		return -1, nil
	}

	index, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("display: invalid monitor %q", name)
	}
	if index < 0 || index >= count {
		return 0, fmt.Errorf("display: monitor index %d out of range [0, %d)", index, count)
	}
	return index, nil
}
