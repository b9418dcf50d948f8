package headless

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
)

// ErrDestroyed is returned by operations on a destroyed surface.
var ErrDestroyed = errors.New("surface destroyed")

// Surface is an in-memory browsing surface.
type Surface struct {
	engine *Engine
	id     entity.SurfaceID
	opts   port.SurfaceOptions
	events *event.Source

	mu        sync.Mutex
	bounds    entity.Bounds
	url       string
	loading   bool
	destroyed bool
	reloads   int
	stops     int
	devTools  []entity.DevToolsMode
	scripts   []string
	results   map[string]any
}

var _ port.Surface = (*Surface)(nil)

func newSurface(e *Engine, id entity.SurfaceID, opts port.SurfaceOptions) *Surface {
	return &Surface{
		engine:  e,
		id:      id,
		opts:    opts,
		events:  event.NewSource(),
		results: make(map[string]any),
	}
}

// ID implements port.Surface.
func (s *Surface) ID() entity.SurfaceID { return s.id }

// Options returns the options the surface was created with.
func (s *Surface) Options() port.SurfaceOptions { return s.opts }

// Events implements port.Surface.
func (s *Surface) Events() *event.Source { return s.events }

// SetBounds implements port.Surface.
func (s *Surface) SetBounds(b entity.Bounds) {
	s.mu.Lock()
	s.bounds = b
	s.mu.Unlock()
}

// Bounds implements port.Surface.
func (s *Surface) Bounds() entity.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// LoadURL implements port.Surface.
func (s *Surface) LoadURL(_ context.Context, url string) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return ErrDestroyed
	}
	s.url = url
	s.loading = true
	delay := s.engine.loadDelay
	s.mu.Unlock()

	if delay > 0 {
		time.AfterFunc(delay, func() { s.CompleteLoad(url, false) })
	}
	return nil
}

// CompleteLoad simulates a full navigation to url: start, commit, finish,
// stop.
func (s *Surface) CompleteLoad(url string, replace bool) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.url = url
	s.loading = true
	s.mu.Unlock()

	s.events.Emit(event.LoadStarted{})
	s.events.Emit(event.NavigationCommitted{URL: url, ReplaceEntry: replace})

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	s.events.Emit(event.LoadFinished{})
	s.events.Emit(event.LoadStopped{})
}

// Simulate emits an arbitrary event.
func (s *Surface) Simulate(ev event.Event) {
	s.events.Emit(ev)
}

// Reload implements port.Surface.
func (s *Surface) Reload() {
	s.mu.Lock()
	s.reloads++
	s.mu.Unlock()
}

// Stop implements port.Surface.
func (s *Surface) Stop() {
	s.mu.Lock()
	s.stops++
	s.loading = false
	s.mu.Unlock()
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// IsLoading implements port.Surface.
func (s *Surface) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetScriptResult makes ExecuteJavaScript(code) return value.
func (s *Surface) SetScriptResult(code string, value any) {
	s.mu.Lock()
	s.results[code] = value
	s.mu.Unlock()
}

// ExecuteJavaScript implements port.Surface. Unknown scripts evaluate to nil.
func (s *Surface) ExecuteJavaScript(_ context.Context, code string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return nil, ErrDestroyed
	}
	s.scripts = append(s.scripts, code)
	return s.results[code], nil
}

// Scripts returns every script executed so far.
func (s *Surface) Scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scripts...)
}

// OpenDevTools implements port.Surface.
func (s *Surface) OpenDevTools(mode entity.DevToolsMode) {
	s.mu.Lock()
	s.devTools = append(s.devTools, mode)
	s.mu.Unlock()
}

// DevTools returns the modes devtools were opened with.
func (s *Surface) DevTools() []entity.DevToolsMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.DevToolsMode(nil), s.devTools...)
}

// Reloads returns the number of Reload calls.
func (s *Surface) Reloads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloads
}

// Stops returns the number of Stop calls.
func (s *Surface) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// IsDestroyed implements port.Surface.
func (s *Surface) IsDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Destroy implements port.Surface.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.mu.Unlock()

	s.events.Close()
	s.engine.forget(s)
}
