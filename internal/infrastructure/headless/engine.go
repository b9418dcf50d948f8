// Package headless implements a browser engine without rendering. Surfaces
// keep their geometry, URL and history in memory and emit the same events a
// real engine would. Used for CI runs and tests.
package headless

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLoadDelay makes LoadURL complete on its own after d. With zero (the
// default) loads stay pending until CompleteLoad is called.
func WithLoadDelay(d time.Duration) Option {
	return func(e *Engine) { e.loadDelay = d }
}

// Engine is an in-memory port.BrowserEngine.
type Engine struct {
	mu          sync.Mutex
	nextID      entity.SurfaceID
	surfaces    map[entity.SurfaceID]*Surface
	windows     map[int]*Window
	loadDelay   time.Duration
	appDevTools int
}

var _ port.BrowserEngine = (*Engine)(nil)

// New creates an engine with no windows.
func New(opts ...Option) *Engine {
	e := &Engine{
		surfaces: make(map[entity.SurfaceID]*Surface),
		windows:  make(map[int]*Window),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenWindow creates (or resizes) the native window nativeID.
func (e *Engine) OpenWindow(nativeID int, content entity.Bounds) *Window {
	e.mu.Lock()
	defer e.mu.Unlock()

	if w, ok := e.windows[nativeID]; ok {
		w.setContentBounds(content)
		return w
	}
	w := &Window{id: nativeID, content: content}
	e.windows[nativeID] = w
	return w
}

// CreateSurface implements port.BrowserEngine.
func (e *Engine) CreateSurface(_ context.Context, opts port.SurfaceOptions) (port.Surface, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	s := newSurface(e, e.nextID, opts)
	e.surfaces[s.id] = s
	return s, nil
}

// Surface implements port.BrowserEngine.
func (e *Engine) Surface(id entity.SurfaceID) (port.Surface, bool) {
	s, ok := e.HeadlessSurface(id)
	if !ok {
		return nil, false
	}
	return s, true
}

// HeadlessSurface resolves a live surface with its simulation helpers.
func (e *Engine) HeadlessSurface(id entity.SurfaceID) (*Surface, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.surfaces[id]
	return s, ok
}

// Window implements port.BrowserEngine.
func (e *Engine) Window(nativeID int) (port.NativeWindow, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	w, ok := e.windows[nativeID]
	if !ok {
		return nil, false
	}
	return w, true
}

// OpenAppDevTools implements port.BrowserEngine.
func (e *Engine) OpenAppDevTools() {
	e.mu.Lock()
	e.appDevTools++
	e.mu.Unlock()
}

// AppDevToolsOpened returns how many times app devtools were requested.
func (e *Engine) AppDevToolsOpened() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.appDevTools
}

// LiveSurfaces returns the number of surfaces not yet destroyed.
func (e *Engine) LiveSurfaces() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.surfaces)
}

func (e *Engine) forget(s *Surface) {
	e.mu.Lock()
	delete(e.surfaces, s.id)
	windows := make([]*Window, 0, len(e.windows))
	for _, w := range e.windows {
		windows = append(windows, w)
	}
	e.mu.Unlock()

	for _, w := range windows {
		w.dropIfAttached(s)
	}
}

// Window is an in-memory native window.
type Window struct {
	mu       sync.Mutex
	id       int
	content  entity.Bounds
	attached *Surface
}

var _ port.NativeWindow = (*Window)(nil)

// ID implements port.NativeWindow.
func (w *Window) ID() int {
	return w.id
}

// ContentBounds implements port.NativeWindow.
func (w *Window) ContentBounds() entity.Bounds {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.content
}

func (w *Window) setContentBounds(b entity.Bounds) {
	w.mu.Lock()
	w.content = b
	w.mu.Unlock()
}

// Surface implements port.NativeWindow.
func (w *Window) Surface() port.Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.attached == nil {
		return nil
	}
	return w.attached
}

// SetSurface implements port.NativeWindow.
func (w *Window) SetSurface(s port.Surface) {
	var hs *Surface
	if s != nil {
		hs, _ = s.(*Surface)
	}

	w.mu.Lock()
	w.attached = hs
	w.mu.Unlock()
}

func (w *Window) dropIfAttached(s *Surface) {
	w.mu.Lock()
	if w.attached == s {
		w.attached = nil
	}
	w.mu.Unlock()
}
