package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// ErrDestroyed is returned by operations on a destroyed surface.
var ErrDestroyed = errors.New("surface destroyed")

const commandTimeout = 10 * time.Second

// Surface is a Chromium page target.
type Surface struct {
	engine *Engine
	id     entity.SurfaceID
	opts   port.SurfaceOptions
	ctx    context.Context
	cancel context.CancelFunc
	events *event.Source

	mu        sync.Mutex
	bounds    entity.Bounds
	url       string
	title     string
	loading   bool
	destroyed bool
	mainFrame cdp.FrameID
}

var _ port.Surface = (*Surface)(nil)

func newSurface(e *Engine, id entity.SurfaceID, opts port.SurfaceOptions, ctx context.Context, cancel context.CancelFunc) *Surface {
	return &Surface{
		engine: e,
		id:     id,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		events: event.NewSource(),
	}
}

// start creates the page target and enables the domains events come from.
func (s *Surface) start(ctx context.Context) error {
	chromedp.ListenTarget(s.ctx, s.handle)

	err := chromedp.Run(s.ctx,
		page.Enable(),
		runtime.Enable(),
		runtime.AddBinding(contextMenuBinding),
		runtime.AddBinding(openLinkBinding),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, hook := range []string{contextMenuHook, openLinkHook} {
				if _, err := page.AddScriptToEvaluateOnNewDocument(hook).Do(ctx); err != nil {
					return err
				}
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start surface: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Int64("surface_id", int64(s.id)).
		Str("partition", s.opts.Partition).
		Msg("surface created")
	return nil
}

func (s *Surface) logger() *zerolog.Logger {
	l := logging.FromContext(s.engine.ctx).With().Int64("surface_id", int64(s.id)).Logger()
	return &l
}

// exec runs actions against the page off the caller's goroutine.
func (s *Surface) exec(what string, actions ...chromedp.Action) {
	if s.IsDestroyed() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(s.ctx, commandTimeout)
		defer cancel()
		if err := chromedp.Run(ctx, actions...); err != nil && !s.IsDestroyed() {
			s.logger().Error().Err(err).Str("command", what).Msg("surface command failed")
		}
	}()
}

// ID implements port.Surface.
func (s *Surface) ID() entity.SurfaceID { return s.id }

// Events implements port.Surface.
func (s *Surface) Events() *event.Source { return s.events }

// SetBounds implements port.Surface. Chromium only honors the size; the
// position is kept for the layout.
func (s *Surface) SetBounds(b entity.Bounds) {
	s.mu.Lock()
	s.bounds = b
	s.mu.Unlock()

	s.exec("set-bounds", chromedp.ActionFunc(func(ctx context.Context) error {
		cur := s.Bounds()
		if cur.Width <= 0 || cur.Height <= 0 {
			return nil
		}
		return emulation.SetDeviceMetricsOverride(int64(cur.Width), int64(cur.Height), 1, false).Do(ctx)
	}))
}

// Bounds implements port.Surface.
func (s *Surface) Bounds() entity.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// LoadURL implements port.Surface.
func (s *Surface) LoadURL(_ context.Context, url string) error {
	if url == "" {
		return errors.New("empty url")
	}
	if s.IsDestroyed() {
		return ErrDestroyed
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.exec("navigate", chromedp.ActionFunc(func(ctx context.Context) error {
		var res page.NavigateReturns
		if err := cdp.Execute(ctx, page.CommandNavigate, page.Navigate(url), &res); err != nil {
			return err
		}
		if res.ErrorText != "" {
			return fmt.Errorf("navigation to %s failed: %s", url, res.ErrorText)
		}
		return nil
	}))
	return nil
}

// Reload implements port.Surface.
func (s *Surface) Reload() {
	s.exec("reload", page.Reload())
}

// Stop implements port.Surface.
func (s *Surface) Stop() {
	s.exec("stop", page.StopLoading())
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

// ExecuteJavaScript implements port.Surface. The evaluation is bounded by
// both ctx and the surface lifetime.
func (s *Surface) ExecuteJavaScript(ctx context.Context, code string) (any, error) {
	if s.IsDestroyed() {
		return nil, ErrDestroyed
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var result any
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, exc, err := runtime.Evaluate(code).
			WithReturnByValue(true).
			WithAwaitPromise(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return fmt.Errorf("script exception: %s", exc.Text)
		}
		result, err = decodeResult(obj)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// OpenDevTools logs where an inspector can attach; the protocol cannot pop
// the devtools UI by itself.
func (s *Surface) OpenDevTools(mode entity.DevToolsMode) {
	c := chromedp.FromContext(s.ctx)
	if c == nil || c.Target == nil {
		return
	}
	s.logger().Info().
		Str("mode", string(mode)).
		Str("target_id", string(c.Target.TargetID)).
		Msg("devtools requested; attach an inspector to this target")
}

func (s *Surface) bringToFront() {
	s.exec("bring-to-front", page.BringToFront())
}

// IsDestroyed implements port.Surface.
func (s *Surface) IsDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Destroy implements port.Surface. Closes the page target.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.mu.Unlock()

	s.events.Close()
	s.cancel()
	s.engine.forget(s)
}

// handle runs on the chromedp event goroutine and must not block.
func (s *Surface) handle(ev any) {
	switch e := ev.(type) {
	case *page.EventFrameNavigated:
		if e.Frame.ParentID != "" {
			return
		}
		s.mu.Lock()
		s.mainFrame = e.Frame.ID
		s.url = e.Frame.URL
		s.mu.Unlock()
		s.events.Emit(event.NavigationCommitted{URL: e.Frame.URL})

	case *page.EventNavigatedWithinDocument:
		if !s.isMainFrame(e.FrameID) {
			return
		}
		s.mu.Lock()
		s.url = e.URL
		s.mu.Unlock()
		s.events.Emit(event.NavigationCommitted{URL: e.URL, InPage: true})
		go s.refreshTitle()

	case *page.EventFrameStartedLoading:
		if !s.isMainFrame(e.FrameID) {
			return
		}
		s.setLoading(true)
		s.events.Emit(event.LoadStarted{})

	case *page.EventFrameStoppedLoading:
		if !s.isMainFrame(e.FrameID) {
			return
		}
		s.setLoading(false)
		s.events.Emit(event.LoadStopped{})

	case *page.EventLoadEventFired:
		s.events.Emit(event.LoadFinished{})
		go s.refreshTitle()
		go s.refreshFavicons()

	case *page.EventWindowOpen:
		s.events.Emit(event.NewWindowRequested{
			URL:         e.URL,
			FrameName:   e.WindowName,
			Disposition: dispositionFor(e.WindowFeatures),
		})

	case *runtime.EventBindingCalled:
		switch e.Name {
		case contextMenuBinding:
			ev, err := parseContextMenu(e.Payload)
			if err != nil {
				s.logger().Warn().Err(err).Msg("bad context menu payload")
				return
			}
			s.events.Emit(ev)
		case openLinkBinding:
			ev, err := parseOpenLink(e.Payload)
			if err != nil {
				s.logger().Warn().Err(err).Msg("bad link request payload")
				return
			}
			s.events.Emit(ev)
		}
	}
}

func (s *Surface) isMainFrame(id cdp.FrameID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mainFrame == "" || s.mainFrame == id
}

func (s *Surface) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Surface) refreshTitle() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	v, err := s.ExecuteJavaScript(ctx, titleScript)
	if err != nil {
		return
	}
	title, _ := v.(string)

	s.mu.Lock()
	changed := title != s.title
	s.title = title
	s.mu.Unlock()

	if changed {
		s.events.Emit(event.TitleUpdated{Title: title})
	}
}

func (s *Surface) refreshFavicons() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	v, err := s.ExecuteJavaScript(ctx, faviconScript)
	if err != nil {
		return
	}
	if favicons := stringSlice(v); len(favicons) > 0 {
		s.events.Emit(event.FaviconUpdated{Favicons: favicons})
	}
}

func decodeResult(obj *runtime.RemoteObject) (any, error) {
	if obj == nil || obj.Type == runtime.TypeUndefined || len(obj.Value) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(obj.Value), &v); err != nil {
		return nil, fmt.Errorf("failed to decode script result: %w", err)
	}
	return v, nil
}
