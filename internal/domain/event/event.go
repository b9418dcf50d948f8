// Package event defines the events a browsing surface emits and a typed
// subscription source scoped to the surface's lifetime.
package event

import (
	"reflect"
	"sync"

	"github.com/bnema/gamedesk/internal/domain/entity"
)

// Event is any browsing-surface event.
type Event interface {
	surfaceEvent()
}

// LoadStarted fires when the surface starts loading a document.
type LoadStarted struct{}

// LoadStopped fires when the surface stops loading, successfully or not.
type LoadStopped struct{}

// LoadFinished fires when the main document finished loading.
type LoadFinished struct{}

// TitleUpdated carries a new page title.
type TitleUpdated struct {
	Title string
}

// FaviconUpdated carries the page's favicon candidates, best first.
type FaviconUpdated struct {
	Favicons []string
}

// NewWindowRequested fires when the page asks to open a new window.
type NewWindowRequested struct {
	URL         string
	FrameName   string
	Disposition entity.WindowDisposition
}

// NavigationCommitted fires when a navigation entry is committed.
type NavigationCommitted struct {
	URL          string
	InPage       bool
	ReplaceEntry bool
}

// ContextMenuRequested fires on a right click inside the page.
type ContextMenuRequested struct {
	X, Y    int
	LinkURL string
}

func (LoadStarted) surfaceEvent()          {}
func (LoadStopped) surfaceEvent()          {}
func (LoadFinished) surfaceEvent()         {}
func (TitleUpdated) surfaceEvent()         {}
func (FaviconUpdated) surfaceEvent()       {}
func (NewWindowRequested) surfaceEvent()   {}
func (NavigationCommitted) surfaceEvent()  {}
func (ContextMenuRequested) surfaceEvent() {}

type subscription struct {
	id   uint64
	once bool
	fn   func(Event)
}

// Source dispatches surface events to typed handlers. Close drops every
// handler; subsequent Emit and On calls are no-ops.
type Source struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[reflect.Type][]subscription
	closed bool
}

// NewSource creates an open event source.
func NewSource() *Source {
	return &Source{subs: make(map[reflect.Type][]subscription)}
}

// Unsubscribe removes a single handler.
type Unsubscribe func()

func subscribe[E Event](s *Source, once bool, fn func(E)) Unsubscribe {
	key := reflect.TypeFor[E]()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.subs[key] = append(s.subs[key], subscription{
		id:   id,
		once: once,
		fn:   func(ev Event) { fn(ev.(E)) },
	})

	return func() { s.remove(key, id) }
}

// On registers fn for every event of type E.
func On[E Event](s *Source, fn func(E)) Unsubscribe {
	return subscribe(s, false, fn)
}

// Once registers fn for the next event of type E only.
func Once[E Event](s *Source, fn func(E)) Unsubscribe {
	return subscribe(s, true, fn)
}

func (s *Source) remove(key reflect.Type, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subs[key]
	for i, sub := range subs {
		if sub.id == id {
			s.subs[key] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to its handlers in registration order. Handlers run on
// the caller's goroutine, outside the source lock.
func (s *Source) Emit(ev Event) {
	key := reflect.TypeOf(ev)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	subs := s.subs[key]
	handlers := make([]func(Event), 0, len(subs))
	kept := subs[:0:0]
	for _, sub := range subs {
		handlers = append(handlers, sub.fn)
		if !sub.once {
			kept = append(kept, sub)
		}
	}
	s.subs[key] = kept
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Len returns the number of live handlers.
func (s *Source) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, subs := range s.subs {
		n += len(subs)
	}
	return n
}

// Close drops every handler.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.subs = make(map[reflect.Type][]subscription)
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
