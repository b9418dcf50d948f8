package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
	domainurl "github.com/bnema/gamedesk/internal/domain/url"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
)

// EventForwarder translates surface events into actions. Handlers may run
// on engine goroutines, so they only dispatch and never touch state.
type EventForwarder struct {
	dispatcher port.Dispatcher
	loop       *mainloop.Loop
	settings   *settingsHolder

	mu    sync.Mutex
	wired map[entity.SurfaceID][]event.Unsubscribe
}

func newEventForwarder(dispatcher port.Dispatcher, loop *mainloop.Loop, settings *settingsHolder) *EventForwarder {
	return &EventForwarder{
		dispatcher: dispatcher,
		loop:       loop,
		settings:   settings,
		wired:      make(map[entity.SurfaceID][]event.Unsubscribe),
	}
}

// Wired reports whether the surface id has subscriptions.
func (f *EventForwarder) Wired(id entity.SurfaceID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.wired[id]
	return ok
}

// Attach subscribes to s on behalf of a tab. Returns false when s was
// already wired.
func (f *EventForwarder) Attach(ctx context.Context, window entity.WindowID, tab entity.TabID, s port.Surface) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := s.ID()
	if _, ok := f.wired[id]; ok {
		return false
	}

	ctx = logging.WithSurfaceID(logging.WithTabID(logging.WithWindowID(ctx, string(window)), string(tab)), int64(id))
	src := s.Events()

	pushData := func(data entity.TabDataPatch) {
		f.dispatcher.Dispatch(action.TabDataFetched{Window: window, Tab: tab, Data: data})
	}

	f.wired[id] = []event.Unsubscribe{
		event.Once(src, func(event.LoadFinished) {
			f.firstLoad(ctx, window, s)
		}),
		event.On(src, func(event.LoadFinished) {
			f.loadFinished(ctx, window, tab, s)
		}),
		event.On(src, func(event.LoadStarted) {
			pushData(action.WebLoading(true))
		}),
		event.On(src, func(event.LoadStopped) {
			pushData(action.WebLoading(false))
		}),
		event.On(src, func(ev event.TitleUpdated) {
			logging.FromContext(ctx).Debug().Str("title", ev.Title).Msg("title updated")
			pushData(action.Label(ev.Title))
		}),
		event.On(src, func(ev event.FaviconUpdated) {
			if len(ev.Favicons) == 0 {
				return
			}
			pushData(action.WebFavicon(ev.Favicons[0]))
		}),
		event.On(src, func(ev event.NewWindowRequested) {
			background := ev.Disposition == entity.DispositionBackgroundTab
			f.dispatcher.Dispatch(action.NewNavigate(window, ev.URL, background))
		}),
		event.On(src, func(ev event.NavigationCommitted) {
			f.didNavigate(ctx, window, tab, ev)
		}),
	}

	logging.FromContext(ctx).Debug().Msg("forwarding surface events")
	return true
}

// Forget drops the subscriptions of a surface.
func (f *EventForwarder) Forget(id entity.SurfaceID) {
	f.mu.Lock()
	unsubs := f.wired[id]
	delete(f.wired, id)
	f.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

func (f *EventForwarder) track(id entity.SurfaceID, unsub event.Unsubscribe) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.wired[id]; !ok {
		unsub()
		return
	}
	f.wired[id] = append(f.wired[id], unsub)
}

func (f *EventForwarder) firstLoad(ctx context.Context, window entity.WindowID, s port.Surface) {
	log := logging.FromContext(ctx)
	opts := f.settings.options()
	if opts.DontShowWebviews {
		log.Debug().Msg("first load, webviews hidden")
		return
	}

	f.track(s.ID(), event.On(s.Events(), func(ev event.ContextMenuRequested) {
		f.dispatcher.Dispatch(action.PopupContextMenu{
			Window:  window,
			X:       ev.X,
			Y:       ev.Y,
			LinkURL: ev.LinkURL,
		})
	}))

	if opts.DevTools > 1 {
		s.OpenDevTools(entity.DevToolsDetach)
	}
	log.Debug().Msg("first load")
}

func (f *EventForwarder) loadFinished(ctx context.Context, window entity.WindowID, tab entity.TabID, s port.Surface) {
	script := initScript(tab)
	f.loop.Go(func() {
		if _, err := s.ExecuteJavaScript(ctx, script); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("init script failed")
		}
	})

	f.dispatcher.Dispatch(action.AnalyzePage{Window: window, Tab: tab, URL: s.URL()})
}

func (f *EventForwarder) didNavigate(ctx context.Context, window entity.WindowID, tab entity.TabID, ev event.NavigationCommitted) {
	if domainurl.IsBlank(ev.URL) {
		return
	}

	f.dispatcher.Dispatch(action.TabDataFetched{
		Window: window,
		Tab:    tab,
		Data: entity.TabDataPatch{Web: &entity.WebPatch{
			Committed: &entity.Committed{URL: ev.URL, Replace: ev.ReplaceEntry},
		}},
	})

	url, resource := ev.URL, ""
	wk, err := f.settings.classifier().Classify(ev.URL)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("could not classify url")
	}
	if wk != nil {
		logging.FromContext(ctx).Debug().Str("url", wk.URL).Str("resource", wk.Resource).Msg("caught well-known url")
		url, resource = wk.URL, wk.Resource
	}

	f.dispatcher.Dispatch(action.EvolveTab{
		Window:   window,
		Tab:      tab,
		URL:      url,
		Resource: resource,
		Replace:  ev.ReplaceEntry,
	})
}

// initScript lets the page's bootstrap know which tab it lives in.
func initScript(tab entity.TabID) string {
	quoted, _ := json.Marshal(string(tab))
	return fmt.Sprintf("window.__itchInit && window.__itchInit(%s)", quoted)
}
