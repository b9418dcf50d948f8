package store

import (
	"context"
	"reflect"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/logging"
)

type route struct {
	name string
	fn   func(ctx context.Context, st *Store, a action.Action)
}

// Watcher routes reduced actions to the reactors registered for their type.
type Watcher struct {
	routes map[reflect.Type][]route
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{routes: make(map[reflect.Type][]route)}
}

// On registers fn for actions of type A. fn runs on the loop after the
// action has been reduced; handlers for one action run in registration
// order.
func On[A action.Action](w *Watcher, fn func(ctx context.Context, st *Store, a A)) {
	var zero A
	key := reflect.TypeFor[A]()
	w.routes[key] = append(w.routes[key], route{
		name: zero.Name(),
		fn: func(ctx context.Context, st *Store, a action.Action) {
			fn(ctx, st, a.(A))
		},
	})
}

// Handles reports how many handlers are registered for A.
func Handles[A action.Action](w *Watcher) int {
	return len(w.routes[reflect.TypeFor[A]()])
}

func (w *Watcher) dispatch(ctx context.Context, st *Store, a action.Action) {
	for _, r := range w.routes[reflect.TypeOf(a)] {
		w.invoke(ctx, st, r, a)
	}
}

// invoke isolates handlers from each other: a panicking reactor is logged
// and the remaining handlers still run.
func (w *Watcher) invoke(ctx context.Context, st *Store, r route, a action.Action) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.FromContext(ctx).Error().
				Str("action", r.name).
				Interface("panic", rec).
				Msg("reactor panicked")
		}
	}()
	r.fn(ctx, st, a)
}
