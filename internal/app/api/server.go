// Package api exposes the control server: a small HTTP surface used by
// integration tests and tooling to inspect window state and inject actions.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Store is the part of the application store the server needs.
type Store interface {
	Dispatch(a action.Action)
	Snapshot() *entity.State
}

// Poster schedules work on the main loop.
type Poster interface {
	Post(fn func())
}

// Registry reports how many hidden surfaces are parked.
type Registry interface {
	Len() int
}

// Deps wires the server to the running application. Games is optional;
// without it manage-game requests answer 503.
type Deps struct {
	Store    Store
	Loop     Poster
	Registry Registry
	Games    repository.GameRepository
}

type server struct {
	deps Deps
}

// NewServer builds the control API handler.
func NewServer(ctx context.Context, deps Deps) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logging.WithComponent(ctx, "api")))
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("gamedesk control API", "1.0.0")
	cfg.DocsPath = ""
	cfg.CreateHooks = nil
	api := humachi.New(router, cfg)

	s := &server{deps: deps}
	s.registerStateHandlers(api)
	s.registerActionHandlers(api)

	return router
}

// Serve listens on addr until ctx is done, then shuts the server down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	log := logging.FromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("control API listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("control API stopped")
	return nil
}

// dispatch feeds a into the store and waits until the loop has reduced it.
func (s *server) dispatch(ctx context.Context, a action.Action) error {
	s.deps.Store.Dispatch(a)
	if s.deps.Loop == nil {
		return nil
	}

	done := make(chan struct{})
	s.deps.Loop.Post(func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return huma.Error504GatewayTimeout("action not applied in time")
	}
}

// window resolves a window id, defaulting to the root window.
func (s *server) window(id string) (entity.WindowID, *entity.Window, error) {
	wid := entity.WindowID(id)
	if wid == "" {
		wid = entity.RootWindow
	}
	w := s.deps.Store.Snapshot().Window(wid)
	if w == nil {
		return wid, nil, huma.Error404NotFound("unknown window " + string(wid))
	}
	return wid, w, nil
}

func (s *server) tab(windowID, tabID string) (entity.WindowID, entity.TabID, error) {
	wid, w, err := s.window(windowID)
	if err != nil {
		return wid, "", err
	}
	if tabID == "" {
		if w.ActiveTab == "" {
			return wid, "", huma.Error404NotFound("window has no active tab")
		}
		return wid, w.ActiveTab, nil
	}
	tid := entity.TabID(tabID)
	if w.Tab(tid) == nil {
		return wid, "", huma.Error404NotFound("unknown tab " + tabID)
	}
	return wid, tid, nil
}
