// Package store holds the application state and routes actions through
// the reducer and the registered reactors, all on the main loop.
package store

import (
	"context"
	"sync"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
)

// Store owns the application state. Writes only happen on the loop; reads
// are safe from any goroutine.
type Store struct {
	ctx     context.Context
	loop    *mainloop.Loop
	watcher *Watcher

	mu    sync.RWMutex
	state *entity.State

	observers []func(action.Action)
}

// New creates a store on loop. ctx carries the logger handed to reactors.
func New(ctx context.Context, loop *mainloop.Loop, watcher *Watcher) *Store {
	if watcher == nil {
		watcher = NewWatcher()
	}
	On(watcher, closeModalReactor)

	return &Store{
		ctx:     logging.WithComponent(ctx, "store"),
		loop:    loop,
		watcher: watcher,
		state:   entity.NewState(),
	}
}

// closeModalReactor confirms modal removal to the reactors that care
// about overlays.
func closeModalReactor(_ context.Context, st *Store, a action.CloseModal) {
	st.Dispatch(action.ModalClosed{Window: a.Window, ID: a.ID})
}

// Loop returns the loop the store runs on.
func (s *Store) Loop() *mainloop.Loop {
	return s.loop
}

// Observe registers fn to be called on the loop after each action has been
// reduced and routed. Must be called before the loop starts.
func (s *Store) Observe(fn func(action.Action)) {
	s.observers = append(s.observers, fn)
}

// Dispatch schedules a on the loop. Never blocks.
func (s *Store) Dispatch(a action.Action) {
	if a == nil {
		return
	}
	s.loop.Post(func() { s.apply(a) })
}

func (s *Store) apply(a action.Action) {
	log := logging.FromContext(s.ctx)
	log.Trace().Str("action", a.Name()).Msg("dispatch")

	s.mu.Lock()
	Reduce(s.state, a)
	s.mu.Unlock()

	s.watcher.dispatch(s.ctx, s, a)

	for _, fn := range s.observers {
		fn(a)
	}
}

// Read calls fn with the live state under a read lock. fn must not retain
// or mutate the state.
func (s *Store) Read(fn func(st *entity.State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Snapshot returns a deep copy of the state.
func (s *Store) Snapshot() *entity.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Window returns a copy of a window's state.
func (s *Store) Window(id entity.WindowID) (*entity.Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := s.state.Window(id)
	if w == nil {
		return nil, false
	}
	return w.Clone(), true
}

// Tab returns a copy of a tab's state.
func (s *Store) Tab(window entity.WindowID, tab entity.TabID) (*entity.TabInstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.state.Tab(window, tab)
	if t == nil {
		return nil, false
	}
	return t.Clone(), true
}

// UserID returns the logged-in user's id.
func (s *Store) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Profile.UserID
}
