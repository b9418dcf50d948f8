package coordinator

import (
	"context"

	"github.com/bnema/gamedesk/internal/app/store"
	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/logging"
)

// DefaultChromeHeight is the strip kept above surfaces for the shell's own
// tab bar.
const DefaultChromeHeight = 40

// ShellCoordinator reports layout slots when no renderer runs alongside the
// engine. A focused tab without a surface gets the window's content area
// below the chrome strip.
type ShellCoordinator struct {
	engine       port.BrowserEngine
	chromeHeight int
}

// NewShellCoordinator creates a ShellCoordinator. A negative chromeHeight
// uses DefaultChromeHeight.
func NewShellCoordinator(engine port.BrowserEngine, chromeHeight int) *ShellCoordinator {
	if chromeHeight < 0 {
		chromeHeight = DefaultChromeHeight
	}
	return &ShellCoordinator{engine: engine, chromeHeight: chromeHeight}
}

// Register subscribes the coordinator to tab focus changes.
func (c *ShellCoordinator) Register(w *store.Watcher) {
	store.On(w, func(ctx context.Context, st *store.Store, a action.Navigate) {
		c.report(ctx, st, a.Window, a.Tab)
	})
	store.On(w, func(ctx context.Context, st *store.Store, a action.TabOpened) {
		c.report(ctx, st, a.Window, a.Tab)
	})
	store.On(w, func(ctx context.Context, st *store.Store, a action.TabFocused) {
		c.report(ctx, st, a.Window, a.Tab)
	})
}

func (c *ShellCoordinator) report(ctx context.Context, st *store.Store, window entity.WindowID, tab entity.TabID) {
	w, ok := st.Window(window)
	if !ok || w.ActiveTab != tab {
		return
	}
	ti := w.Tab(tab)
	if ti == nil || ti.HasSurface() {
		return
	}
	nw, ok := c.engine.Window(w.NativeID)
	if !ok {
		logging.FromContext(ctx).Warn().Int("native_id", w.NativeID).Msg("no native window for shell")
		return
	}

	st.Dispatch(action.TabGotWebContentsMetrics{
		Window:     window,
		Tab:        tab,
		InitialURL: ti.URL(),
		Metrics:    SlotFor(nw.ContentBounds(), c.chromeHeight),
	})
}

// SlotFor returns the surface slot of a content area below a chrome strip.
func SlotFor(content entity.Bounds, chromeHeight int) entity.Metrics {
	height := content.Height - chromeHeight
	if height < 0 {
		height = 0
	}
	return entity.Metrics{Top: chromeHeight, Width: content.Width, Height: height}
}
