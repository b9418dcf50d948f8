// Package coordinator ties browsing surfaces to the tabs that own them. It
// reacts to store actions on the main loop, creating, resizing, hiding and
// destroying native surfaces, and forwards surface events back as actions.
package coordinator

import (
	"context"
	"time"

	"github.com/bnema/gamedesk/internal/app/store"
	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
)

// metaPathScript reads the in-app path a storefront page advertises.
const metaPathScript = `(document.querySelector('meta[name="itch:path"]') || {}).content`

const scriptTimeout = 10 * time.Second

type tabKey struct {
	window entity.WindowID
	tab    entity.TabID
}

func (k tabKey) String() string {
	return string(k.window) + "/" + string(k.tab)
}

// WebContentsCoordinator manages the lifecycle of tab surfaces. All of its
// handlers run on the main loop.
type WebContentsCoordinator struct {
	engine    port.BrowserEngine
	registry  *SurfaceRegistry
	loop      *mainloop.Loop
	settings  *settingsHolder
	forwarder *EventForwarder
	metrics   *mainloop.Coalescer

	// pending holds surfaces created for a tab whose TabGotWebContents has
	// not been reduced yet. Loop-only.
	pending map[tabKey]entity.SurfaceID
}

// NewWebContentsCoordinator creates a coordinator. The registry is owned by
// the caller; dispatcher receives every action the forwarder emits.
func NewWebContentsCoordinator(
	engine port.BrowserEngine,
	registry *SurfaceRegistry,
	loop *mainloop.Loop,
	dispatcher port.Dispatcher,
	opts Options,
) *WebContentsCoordinator {
	if registry == nil {
		registry = NewSurfaceRegistry()
	}
	settings := newSettingsHolder(opts)

	return &WebContentsCoordinator{
		engine:    engine,
		registry:  registry,
		loop:      loop,
		settings:  settings,
		forwarder: newEventForwarder(dispatcher, loop, settings),
		metrics:   mainloop.NewCoalescer(loop.Post),
		pending:   make(map[tabKey]entity.SurfaceID),
	}
}

// Registry returns the hidden surface registry.
func (c *WebContentsCoordinator) Registry() *SurfaceRegistry {
	return c.registry
}

// Forwarder returns the event forwarder.
func (c *WebContentsCoordinator) Forwarder() *EventForwarder {
	return c.forwarder
}

// Options returns the current options.
func (c *WebContentsCoordinator) Options() Options {
	return c.settings.options()
}

// SetOptions swaps the options. Surfaces already past their first load keep
// what they got.
func (c *WebContentsCoordinator) SetOptions(opts Options) {
	c.settings.set(opts)
}

// Register subscribes the coordinator to the actions it reacts to.
func (c *WebContentsCoordinator) Register(w *store.Watcher) {
	store.On(w, c.onFullscreenChanged)
	store.On(w, c.onMetricsReceived)
	store.On(w, c.onSurfaceAttached)
	store.On(w, c.onSurfaceDetaching)
	store.On(w, c.onModalOpened)
	store.On(w, c.onModalClosed)
	store.On(w, c.onContextMenuOpened)
	store.On(w, c.onContextMenuClosed)
	store.On(w, c.onAnalyzePage)
	store.On(w, c.onTabReloaded)
	store.On(w, c.onCommandStop)
	store.On(w, c.onCommandLocation)
	store.On(w, c.onCommandBack)
	store.On(w, c.onOpenDevTools)
}

// Close drops coalesced work.
func (c *WebContentsCoordinator) Close() {
	c.metrics.Destroy()
}

func (c *WebContentsCoordinator) nativeWindow(ctx context.Context, w *entity.Window) (port.NativeWindow, bool) {
	nw, ok := c.engine.Window(w.NativeID)
	if !ok {
		logging.FromContext(ctx).Warn().
			Err(port.ErrWindowNotFound).
			Int("native_id", w.NativeID).
			Msg("could not resolve native window")
	}
	return nw, ok
}

// surfaceFor resolves the live surface of a tab, if any.
func (c *WebContentsCoordinator) surfaceFor(ctx context.Context, st *store.Store, window entity.WindowID, tab entity.TabID) (port.Surface, bool) {
	ti, ok := st.Tab(window, tab)
	if !ok {
		return nil, false
	}
	id := ti.SurfaceID()
	if !id.Valid() {
		return nil, false
	}

	s, ok := c.engine.Surface(id)
	if !ok || s.IsDestroyed() {
		logging.FromContext(ctx).Warn().
			Err(port.ErrSurfaceNotFound).
			Int64("surface_id", int64(id)).
			Msg("could not find surface")
		return nil, false
	}
	return s, true
}

func (c *WebContentsCoordinator) activeTab(st *store.Store, window entity.WindowID) (entity.TabID, bool) {
	w, ok := st.Window(window)
	if !ok || w.ActiveTab == "" {
		return "", false
	}
	return w.ActiveTab, true
}

func (c *WebContentsCoordinator) setFullscreen(ctx context.Context, nw port.NativeWindow, s port.Surface) {
	if s == nil {
		s = nw.Surface()
	}
	if s == nil {
		logging.FromContext(ctx).Debug().Msg("no surface to make fullscreen")
		return
	}
	s.SetBounds(entity.FullscreenBounds(nw.ContentBounds()))
}

func (c *WebContentsCoordinator) onFullscreenChanged(ctx context.Context, st *store.Store, a action.WindHTMLFullscreenChanged) {
	if !a.HTMLFullscreen {
		return
	}
	ctx = logging.WithWindowID(ctx, string(a.Window))

	w, ok := st.Window(a.Window)
	if !ok {
		return
	}
	nw, ok := c.nativeWindow(ctx, w)
	if !ok {
		return
	}
	c.setFullscreen(ctx, nw, nil)
}

func (c *WebContentsCoordinator) onMetricsReceived(ctx context.Context, st *store.Store, a action.TabGotWebContentsMetrics) {
	key := tabKey{window: a.Window, tab: a.Tab}
	c.metrics.Post(key.String(), func() {
		c.applyMetrics(ctx, st, key, a)
	})
}

func (c *WebContentsCoordinator) applyMetrics(ctx context.Context, st *store.Store, key tabKey, a action.TabGotWebContentsMetrics) {
	ctx = logging.WithTabID(logging.WithWindowID(ctx, string(a.Window)), string(a.Tab))
	log := logging.FromContext(ctx)

	w, ok := st.Window(a.Window)
	if !ok {
		log.Warn().Msg("metrics for unknown window")
		return
	}
	ti := w.Tab(a.Tab)
	if ti == nil {
		log.Warn().Msg("metrics for unknown tab")
		return
	}
	if ti.Detaching {
		log.Debug().Msg("ignoring metrics while detaching")
		return
	}

	id := ti.SurfaceID()
	if !id.Valid() {
		id = c.pending[key]
	}
	if id.Valid() {
		s, ok := c.engine.Surface(id)
		if !ok {
			log.Warn().Err(port.ErrSurfaceNotFound).Int64("surface_id", int64(id)).Msg("could not find surface")
			return
		}
		if w.HTMLFullscreen {
			if nw, ok := c.nativeWindow(ctx, w); ok {
				c.setFullscreen(ctx, nw, s)
			}
			return
		}
		s.SetBounds(a.Metrics.Bounds())
		return
	}

	nw, ok := c.nativeWindow(ctx, w)
	if !ok {
		return
	}

	s, err := c.engine.CreateSurface(ctx, port.SurfaceOptions{
		Partition:       entity.PartitionForUser(st.UserID()),
		NodeIntegration: false,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not create surface")
		return
	}
	s.SetBounds(a.Metrics.Bounds())
	nw.SetSurface(s)
	c.pending[key] = s.ID()

	loadLog := logging.FromContext(logging.WithURL(logging.WithSurfaceID(ctx, int64(s.ID())), a.InitialURL))
	loadLog.Debug().Msg("loading url")
	if err := s.LoadURL(ctx, a.InitialURL); err != nil {
		loadLog.Error().Err(err).Msg("could not load url")
	}

	st.Dispatch(action.TabGotWebContents{Window: a.Window, Tab: a.Tab, WebContentsID: s.ID()})
}

func (c *WebContentsCoordinator) onSurfaceAttached(ctx context.Context, st *store.Store, a action.TabGotWebContents) {
	ctx = logging.WithTabID(logging.WithWindowID(ctx, string(a.Window)), string(a.Tab))
	log := logging.FromContext(ctx)

	key := tabKey{window: a.Window, tab: a.Tab}
	if c.pending[key] == a.WebContentsID {
		delete(c.pending, key)
	}

	s, ok := c.engine.Surface(a.WebContentsID)
	if !ok {
		log.Warn().Err(port.ErrSurfaceNotFound).Int64("surface_id", int64(a.WebContentsID)).Msg("could not get surface for tab")
		return
	}
	log.Debug().Int64("surface_id", int64(a.WebContentsID)).Msg("got surface")

	c.forwarder.Attach(ctx, a.Window, a.Tab, s)
	st.Dispatch(action.TabDataFetched{
		Window: a.Window,
		Tab:    a.Tab,
		Data:   action.WebSurface(a.WebContentsID, s.IsLoading()),
	})
}

func (c *WebContentsCoordinator) onSurfaceDetaching(ctx context.Context, st *store.Store, a action.TabLosingWebContents) {
	ctx = logging.WithTabID(logging.WithWindowID(ctx, string(a.Window)), string(a.Tab))
	log := logging.FromContext(ctx)

	w, ok := st.Window(a.Window)
	if !ok || w.Tab(a.Tab) == nil {
		log.Warn().Msg("losing surface of unknown tab")
		return
	}
	key := tabKey{window: a.Window, tab: a.Tab}
	id := w.Tab(a.Tab).SurfaceID()
	if !id.Valid() {
		id = c.pending[key]
	}
	delete(c.pending, key)

	if id.Valid() {
		if nw, ok := c.nativeWindow(ctx, w); ok {
			if attached := nw.Surface(); attached != nil && attached.ID() == id {
				nw.SetSurface(nil)
			}
		}
		c.registry.Remove(id)
		c.forwarder.Forget(id)

		if s, ok := c.engine.Surface(id); ok {
			s.Destroy()
			log.Debug().Int64("surface_id", int64(id)).Msg("destroyed surface")
		} else {
			log.Warn().Err(port.ErrSurfaceNotFound).Int64("surface_id", int64(id)).Msg("surface already gone")
		}
	}

	st.Dispatch(action.TabLostWebContents{Window: a.Window, Tab: a.Tab})
}

// hide parks the window's attached surface in the registry.
func (c *WebContentsCoordinator) hide(ctx context.Context, st *store.Store, window entity.WindowID) {
	w, ok := st.Window(window)
	if !ok {
		return
	}
	nw, ok := c.nativeWindow(ctx, w)
	if !ok {
		return
	}

	s := nw.Surface()
	if s == nil {
		return
	}
	c.registry.Put(s)
	nw.SetSurface(nil)
	logging.FromContext(ctx).Debug().Int64("surface_id", int64(s.ID())).Msg("hid surface")
}

// show reattaches the active tab's hidden surface once no overlay remains.
func (c *WebContentsCoordinator) show(ctx context.Context, st *store.Store, window entity.WindowID) {
	w, ok := st.Window(window)
	if !ok {
		return
	}
	if w.HasModals() || w.ContextMenu.Open {
		return
	}

	ti := w.Active()
	if ti == nil || ti.Detaching {
		return
	}
	id := ti.SurfaceID()
	if !id.Valid() || !c.registry.Contains(id) {
		return
	}

	nw, ok := c.nativeWindow(ctx, w)
	if !ok {
		return
	}
	s, _ := c.registry.Take(id)
	if s.IsDestroyed() {
		return
	}
	nw.SetSurface(s)
	logging.FromContext(ctx).Debug().Int64("surface_id", int64(id)).Msg("showed surface")
}

func (c *WebContentsCoordinator) onModalOpened(ctx context.Context, st *store.Store, a action.OpenModal) {
	c.hide(logging.WithWindowID(ctx, string(a.Window)), st, a.Window)
}

func (c *WebContentsCoordinator) onModalClosed(ctx context.Context, st *store.Store, a action.ModalClosed) {
	c.show(logging.WithWindowID(ctx, string(a.Window)), st, a.Window)
}

func (c *WebContentsCoordinator) onContextMenuOpened(ctx context.Context, st *store.Store, a action.PopupContextMenu) {
	c.hide(logging.WithWindowID(ctx, string(a.Window)), st, a.Window)
}

func (c *WebContentsCoordinator) onContextMenuClosed(ctx context.Context, st *store.Store, a action.CloseContextMenu) {
	c.show(logging.WithWindowID(ctx, string(a.Window)), st, a.Window)
}

func (c *WebContentsCoordinator) onAnalyzePage(ctx context.Context, st *store.Store, a action.AnalyzePage) {
	ctx = logging.WithTabID(logging.WithWindowID(ctx, string(a.Window)), string(a.Tab))

	s, ok := c.surfaceFor(ctx, st, a.Window, a.Tab)
	if !ok {
		return
	}

	c.loop.Go(func() {
		sctx, cancel := context.WithTimeout(ctx, scriptTimeout)
		defer cancel()

		v, err := s.ExecuteJavaScript(sctx, metaPathScript)
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("could not analyze page")
		}
		path, _ := v.(string)
		c.loop.Post(func() {
			c.applyAnalysis(ctx, st, a, s, path)
		})
	})
}

// applyAnalysis runs on the loop. The result only applies when the tab
// still exists and its surface has not navigated away meanwhile.
func (c *WebContentsCoordinator) applyAnalysis(ctx context.Context, st *store.Store, a action.AnalyzePage, s port.Surface, path string) {
	log := logging.FromContext(ctx)

	if _, ok := st.Tab(a.Window, a.Tab); !ok {
		return
	}
	if s.IsDestroyed() || s.URL() != a.URL {
		log.Debug().Str("url", a.URL).Msg("page changed before analysis finished")
		return
	}

	resource := path
	if resource == "" {
		wk, err := c.settings.classifier().Classify(a.URL)
		if err != nil {
			log.Warn().Err(err).Msg("could not classify url")
		}
		if wk != nil {
			resource = wk.Resource
		}
	}
	if resource == "" {
		return
	}

	log.Debug().Str("resource", resource).Msg("got resource")
	st.Dispatch(action.EvolveTab{
		Window:   a.Window,
		Tab:      a.Tab,
		URL:      a.URL,
		Resource: resource,
		Replace:  true,
	})
}

func (c *WebContentsCoordinator) onTabReloaded(ctx context.Context, st *store.Store, a action.TabReloaded) {
	if s, ok := c.surfaceFor(ctx, st, a.Window, a.Tab); ok {
		s.Reload()
	}
}

func (c *WebContentsCoordinator) onCommandStop(ctx context.Context, st *store.Store, a action.CommandStop) {
	tab, ok := c.activeTab(st, a.Window)
	if !ok {
		return
	}
	if s, ok := c.surfaceFor(ctx, st, a.Window, tab); ok {
		s.Stop()
	}
}

func (c *WebContentsCoordinator) onCommandLocation(_ context.Context, st *store.Store, a action.CommandLocation) {
	c.setEditingAddress(st, a.Window, true)
}

func (c *WebContentsCoordinator) onCommandBack(_ context.Context, st *store.Store, a action.CommandBack) {
	c.setEditingAddress(st, a.Window, false)
}

func (c *WebContentsCoordinator) setEditingAddress(st *store.Store, window entity.WindowID, editing bool) {
	tab, ok := c.activeTab(st, window)
	if !ok {
		return
	}
	st.Dispatch(action.TabDataFetched{Window: window, Tab: tab, Data: action.WebEditingAddress(editing)})
}

func (c *WebContentsCoordinator) onOpenDevTools(ctx context.Context, st *store.Store, a action.OpenDevTools) {
	if a.ForApp {
		c.engine.OpenAppDevTools()
		return
	}
	tab, ok := c.activeTab(st, a.Window)
	if !ok {
		return
	}
	if s, ok := c.surfaceFor(ctx, st, a.Window, tab); ok {
		s.OpenDevTools(entity.DevToolsBottom)
	}
}

