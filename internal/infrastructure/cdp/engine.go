// Package cdp implements browsing surfaces on top of a Chromium instance
// driven over the DevTools protocol. Each surface is a page target; each
// partition maps onto its own browser context.
package cdp

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// Config selects and tunes the Chromium instance.
type Config struct {
	// RemoteURL attaches to an already running browser, e.g.
	// "ws://127.0.0.1:9222". When empty a browser is launched.
	RemoteURL   string
	ExecPath    string
	UserDataDir string
	Headless    bool
	Width       int
	Height      int
}

func (c Config) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-session-crashed-bubble", true),
		chromedp.Flag("headless", c.Headless),
	)
	if c.Width > 0 && c.Height > 0 {
		opts = append(opts, chromedp.WindowSize(c.Width, c.Height))
	}
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	if c.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(c.UserDataDir))
	}
	return opts
}

// Engine is a port.BrowserEngine backed by Chromium.
type Engine struct {
	ctx           context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu         sync.Mutex
	nextID     entity.SurfaceID
	surfaces   map[entity.SurfaceID]*Surface
	windows    map[int]*Window
	partitions map[string]partition
}

// partition anchors a browser context with a blank page so it outlives
// the surfaces using it.
type partition struct {
	id     cdp.BrowserContextID
	cancel context.CancelFunc
}

var _ port.BrowserEngine = (*Engine)(nil)

// New starts (or attaches to) the browser.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	ctx = logging.WithComponent(ctx, "cdp")
	log := logging.FromContext(ctx)

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.RemoteURL != "" {
		log.Info().Str("url", cfg.RemoteURL).Msg("connecting to chromium")
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	} else {
		log.Info().Bool("headless", cfg.Headless).Msg("launching chromium")
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), cfg.allocatorOptions()...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Engine{
		ctx:           ctx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		surfaces:      make(map[entity.SurfaceID]*Surface),
		windows:       make(map[int]*Window),
		partitions:    make(map[string]partition),
	}, nil
}

// OpenWindow registers the native window nativeID with its content size.
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

// browserContext returns the browser context of a partition, creating it
// on first use. Must be called with e.mu held.
func (e *Engine) browserContext(name string) (cdp.BrowserContextID, error) {
	if p, ok := e.partitions[name]; ok {
		return p.id, nil
	}

	anchorCtx, cancel := chromedp.NewContext(e.browserCtx, chromedp.WithNewBrowserContext())
	if err := chromedp.Run(anchorCtx); err != nil {
		cancel()
		return "", fmt.Errorf("failed to create browser context for %q: %w", name, err)
	}

	id := chromedp.FromContext(anchorCtx).BrowserContextID
	e.partitions[name] = partition{id: id, cancel: cancel}
	return id, nil
}

// CreateSurface implements port.BrowserEngine.
func (e *Engine) CreateSurface(ctx context.Context, opts port.SurfaceOptions) (port.Surface, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ctxOpts []chromedp.ContextOption
	if opts.Partition != "" {
		bcID, err := e.browserContext(opts.Partition)
		if err != nil {
			return nil, err
		}
		ctxOpts = append(ctxOpts, chromedp.WithExistingBrowserContext(bcID))
	}

	e.nextID++
	targetCtx, cancel := chromedp.NewContext(e.browserCtx, ctxOpts...)
	s := newSurface(e, e.nextID, opts, targetCtx, cancel)

	if err := s.start(ctx); err != nil {
		cancel()
		return nil, err
	}
	e.surfaces[s.id] = s
	return s, nil
}

// Surface implements port.BrowserEngine.
func (e *Engine) Surface(id entity.SurfaceID) (port.Surface, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.surfaces[id]
	if !ok {
		return nil, false
	}
	return s, true
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

// OpenAppDevTools logs the inspector of the browser itself.
func (e *Engine) OpenAppDevTools() {
	c := chromedp.FromContext(e.browserCtx)
	if c == nil || c.Target == nil {
		return
	}
	logging.FromContext(e.ctx).Info().
		Str("target_id", string(c.Target.TargetID)).
		Msg("app devtools requested; attach an inspector to this target")
}

// Close destroys every surface and shuts the browser down.
func (e *Engine) Close() error {
	e.mu.Lock()
	surfaces := make([]*Surface, 0, len(e.surfaces))
	for _, s := range e.surfaces {
		surfaces = append(surfaces, s)
	}
	partitions := e.partitions
	e.partitions = make(map[string]partition)
	e.mu.Unlock()

	for _, s := range surfaces {
		s.Destroy()
	}
	for _, p := range partitions {
		p.cancel()
	}

	e.browserCancel()
	e.allocCancel()
	logging.FromContext(e.ctx).Info().Msg("browser closed")
	return nil
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

// Window is the native window surfaces are shown in. Attaching a surface
// brings its page to the front.
type Window struct {
	mu       sync.Mutex
	id       int
	content  entity.Bounds
	attached *Surface
}

var _ port.NativeWindow = (*Window)(nil)

// ID implements port.NativeWindow.
func (w *Window) ID() int { return w.id }

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
	var cs *Surface
	if s != nil {
		cs, _ = s.(*Surface)
	}

	w.mu.Lock()
	w.attached = cs
	w.mu.Unlock()

	if cs != nil {
		cs.bringToFront()
	}
}

func (w *Window) dropIfAttached(s *Surface) {
	w.mu.Lock()
	if w.attached == s {
		w.attached = nil
	}
	w.mu.Unlock()
}
