package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bnema/gamedesk/internal/app/api"
	"github.com/bnema/gamedesk/internal/app/store"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/domain/repository/mocks"
	"github.com/bnema/gamedesk/internal/infrastructure/headless"
	"github.com/bnema/gamedesk/internal/ui/coordinator"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testTab  = entity.TabID("tab-1")
	nativeID = 3
)

type fixture struct {
	handler http.Handler
	engine  *headless.Engine
	window  *headless.Window

	mu      sync.Mutex
	actions []string
}

func newFixture(t *testing.T, games repository.GameRepository) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	loop := mainloop.New()
	watcher := store.NewWatcher()
	st := store.New(ctx, loop, watcher)
	engine := headless.New()
	registry := coordinator.NewSurfaceRegistry()

	coord := coordinator.NewWebContentsCoordinator(engine, registry, loop, st, coordinator.Options{})
	coord.Register(watcher)

	f := &fixture{
		engine: engine,
		window: engine.OpenWindow(nativeID, entity.Bounds{Width: 1280, Height: 720}),
	}
	st.Observe(func(a action.Action) {
		f.mu.Lock()
		f.actions = append(f.actions, a.Name())
		f.mu.Unlock()
	})

	st.Dispatch(action.ProfileLoggedIn{UserID: 9})
	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: nativeID})
	st.Dispatch(action.TabOpened{Window: entity.RootWindow, Tab: testTab, URL: "https://itch.io/games"})
	loop.Flush()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		coord.Close()
		loop.Close()
	})

	f.handler = api.NewServer(ctx, api.Deps{Store: st, Loop: loop, Registry: registry, Games: games})
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) post(t *testing.T, name string, body any) (api.ActionResult, int) {
	t.Helper()

	if body == nil {
		body = map[string]any{}
	}
	rec := f.do(t, http.MethodPost, "/api/v1/actions/"+name, body)
	var result api.ActionResult
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	}
	return result, rec.Code
}

func (f *fixture) state(t *testing.T) api.StateView {
	t.Helper()

	rec := f.do(t, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view api.StateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func (f *fixture) rootWindow(t *testing.T) api.WindowView {
	t.Helper()
	view := f.state(t)
	require.Len(t, view.Windows, 1)
	return view.Windows[0]
}

func (f *fixture) seen(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.actions {
		if n == name {
			return true
		}
	}
	return false
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestState_ListsWindowsAndTabs(t *testing.T) {
	f := newFixture(t, nil)

	view := f.state(t)

	assert.Equal(t, int64(9), view.UserID)
	assert.Zero(t, view.RegistrySize)
	require.Len(t, view.Windows, 1)
	w := view.Windows[0]
	assert.Equal(t, entity.RootWindow, w.ID)
	assert.Equal(t, nativeID, w.NativeID)
	assert.Equal(t, testTab, w.ActiveTab)
	require.Len(t, w.Tabs, 1)
	assert.Equal(t, "https://itch.io/games", w.Tabs[0].URL)
	assert.Empty(t, w.Modals)
}

func TestModal_OpenThenCloseTopmost(t *testing.T) {
	f := newFixture(t, nil)

	opened, code := f.post(t, "open-modal", map[string]any{"title": "prompt.test"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "open-modal", opened.Action)
	require.NotEmpty(t, opened.ModalID)

	w := f.rootWindow(t)
	require.Len(t, w.Modals, 1)
	assert.Equal(t, opened.ModalID, w.Modals[0].ID)
	assert.Equal(t, "prompt.test", w.Modals[0].Title.Key)

	closed, code := f.post(t, "close-modal", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, opened.ModalID, closed.ModalID)
	assert.Empty(t, f.rootWindow(t).Modals)
	assert.Eventually(t, func() bool { return f.seen("modal-closed") }, time.Second, 10*time.Millisecond)
}

func TestModal_CloseErrors(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "close-modal", nil)
	assert.Equal(t, http.StatusConflict, code)

	_, code = f.post(t, "close-modal", map[string]any{"id": "modal-missing"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOpenModal_RequiresTitle(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "open-modal", map[string]any{"message": "no title"})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestActions_UnknownWindowOrTab(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "stop", map[string]any{"window": "nope"})
	assert.Equal(t, http.StatusNotFound, code)

	_, code = f.post(t, "reload", map[string]any{"tab": "tab-missing"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContextMenu_PopupAndClose(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "popup-context-menu", map[string]any{"x": 10, "y": 20, "linkURL": "https://itch.io/"})
	require.Equal(t, http.StatusOK, code)
	menu := f.rootWindow(t).ContextMenu
	assert.True(t, menu.Open)
	assert.Equal(t, 10, menu.X)
	assert.Equal(t, 20, menu.Y)

	_, code = f.post(t, "close-context-menu", nil)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, f.rootWindow(t).ContextMenu.Open)
}

func TestNavigate_OpensFocusedTab(t *testing.T) {
	f := newFixture(t, nil)

	result, code := f.post(t, "navigate", map[string]any{"url": "https://itch.io/jams"})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, result.TabID)

	w := f.rootWindow(t)
	assert.Equal(t, result.TabID, w.ActiveTab)
	require.Len(t, w.Tabs, 2)
	assert.Equal(t, "https://itch.io/jams", w.Tabs[1].URL)
}

func TestSurfaceLifecycle_OverHTTP(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "metrics", map[string]any{
		"initialURL": "https://itch.io/games",
		"metrics":    map[string]any{"left": 0, "top": 40, "width": 1280, "height": 680},
	})
	require.Equal(t, http.StatusOK, code)
	require.Eventually(t, func() bool {
		return f.rootWindow(t).Tabs[0].WebContentsID.Valid()
	}, time.Second, 10*time.Millisecond)
	require.NotNil(t, f.window.Surface())

	_, code = f.post(t, "open-modal", map[string]any{"title": "prompt.test"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, f.state(t).RegistrySize)
	assert.Nil(t, f.window.Surface())

	_, code = f.post(t, "close-modal", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Eventually(t, func() bool { return f.state(t).RegistrySize == 0 }, time.Second, 10*time.Millisecond)

	_, code = f.post(t, "fullscreen", map[string]any{"htmlFullscreen": true})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, f.rootWindow(t).HTMLFullscreen)

	result, code := f.post(t, "reload", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, testTab, result.TabID)

	_, code = f.post(t, "stop", nil)
	require.Equal(t, http.StatusOK, code)

	_, code = f.post(t, "close-tab-surface", map[string]any{"tab": string(testTab)})
	require.Equal(t, http.StatusOK, code)
	assert.Eventually(t, func() bool { return f.engine.LiveSurfaces() == 0 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return f.seen("tab-lost-web-contents") }, time.Second, 10*time.Millisecond)
}

func TestManageGame(t *testing.T) {
	games := mocks.NewMockGameRepository(t)
	games.EXPECT().FindByID(mock.Anything, int64(3)).Return(&entity.Game{ID: 3, Title: "Celeste"}, nil)
	games.EXPECT().FindByID(mock.Anything, int64(4)).Return(nil, nil)
	f := newFixture(t, games)

	result, code := f.post(t, "manage-game", map[string]any{"gameId": 3})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "manage-game", result.Action)
	assert.True(t, f.seen("manage-game"))

	_, code = f.post(t, "manage-game", map[string]any{"gameId": 4})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestManageGame_WithoutLibrary(t *testing.T) {
	f := newFixture(t, nil)

	_, code := f.post(t, "manage-game", map[string]any{"gameId": 3})

	assert.Equal(t, http.StatusServiceUnavailable, code)
}
