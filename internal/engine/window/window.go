// Package window opens the SDL2 window the client draws into and owns its
// OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// GLMajor and GLMinor select the core profile version. Zero means 4.1,
	// the highest macOS offers.
	GLMajor, GLMinor int
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	cursors   map[sdl.SystemCursor]*sdl.Cursor
	cursor    sdl.SystemCursor
	cursorSet bool
	// release undoes the steps of New in reverse order.
	release []func()
	log     *zap.Logger
}

// New initializes SDL2 and opens a window with a current OpenGL context.
func New(cfg Config) (_ *Window, err error) {
	w := &Window{
		cursors: make(map[sdl.SystemCursor]*sdl.Cursor),
		log:     logger.Named("window"),
	}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init: %w", err)
	}
	w.release = append(w.release, sdl.Quit)

	major, minor := cfg.GLMajor, cfg.GLMinor
	if major == 0 {
		major, minor = 4, 1
	}
	for _, a := range []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, major},
		{sdl.GL_CONTEXT_MINOR_VERSION, minor},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
	} {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return nil, fmt.Errorf("SDL_GL_SetAttribute(%d): %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	w.sdlWindow, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow: %w", err)
	}
	win := w.sdlWindow
	w.release = append(w.release, func() { win.Destroy() })

	w.glContext, err = win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext: %w", err)
	}
	ctx := w.glContext
	w.release = append(w.release, func() { sdl.GLDeleteContext(ctx) })

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval not supported", zap.Int("interval", interval), zap.Error(err))
	}

	dw, dh := w.DrawableSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.String("gl", fmt.Sprintf("%d.%d", major, minor)),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close frees the cursors, the context and the window, then shuts SDL down.
// It is safe to call on a partially created window.
func (w *Window) Close() {
	for id, c := range w.cursors {
		sdl.FreeCursor(c)
		delete(w.cursors, id)
	}
	for i := len(w.release) - 1; i >= 0; i-- {
		w.release[i]()
	}
	w.release = nil
	w.log.Debug("window closed")
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the window size in screen coordinates. Panels and pointer
// events use this space.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels. It is larger than
// GetSize on HiDPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetCursor shows the system cursor matching a pointer hint.
func (w *Window) SetCursor(state ui.CursorState) {
	id := cursorFor(state)
	if w.cursorSet && id == w.cursor {
		return
	}
	c, ok := w.cursors[id]
	if !ok {
		c = sdl.CreateSystemCursor(id)
		w.cursors[id] = c
	}
	sdl.SetCursor(c)
	w.cursor, w.cursorSet = id, true
}

func cursorFor(state ui.CursorState) sdl.SystemCursor {
	switch state {
	case ui.CursorCanClick, ui.CursorClicking:
		return sdl.SystemCursor(sdl.SYSTEM_CURSOR_HAND)
	case ui.CursorCanGrab, ui.CursorGrabbing:
		return sdl.SystemCursor(sdl.SYSTEM_CURSOR_SIZEALL)
	}
	return sdl.SystemCursor(sdl.SYSTEM_CURSOR_ARROW)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
