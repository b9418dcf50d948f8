package cdp

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
)

// contextMenuBinding is the page-side function the hook reports through.
const contextMenuBinding = "__gamedeskContextMenu"

// contextMenuHook forwards right clicks, with the link under the pointer.
const contextMenuHook = `document.addEventListener("contextmenu", function (ev) {
  var a = ev.target && ev.target.closest ? ev.target.closest("a[href]") : null;
  window.` + contextMenuBinding + `(JSON.stringify({x: ev.clientX, y: ev.clientY, linkURL: a ? a.href : ""}));
}, true);`

// openLinkBinding receives links the user asked to open elsewhere.
const openLinkBinding = "__gamedeskOpenLink"

// openLinkHook takes over middle, ctrl/cmd and shift clicks on links and
// reports where the user wants them opened.
const openLinkHook = `(function () {
  function report(ev) {
    var a = ev.target && ev.target.closest ? ev.target.closest("a[href]") : null;
    if (!a) return;
    var background = ev.button === 1 || ev.ctrlKey || ev.metaKey;
    if (!background && !ev.shiftKey) return;
    ev.preventDefault();
    window.` + openLinkBinding + `(JSON.stringify({url: a.href, background: background, window: ev.shiftKey && !background}));
  }
  document.addEventListener("auxclick", function (ev) { if (ev.button === 1) report(ev); }, true);
  document.addEventListener("click", report, true);
})();`

const titleScript = `document.title`

const faviconScript = `Array.from(document.querySelectorAll('link[rel~="icon"]')).map(function (l) { return l.href; })`

type contextMenuPayload struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	LinkURL string  `json:"linkURL"`
}

func parseContextMenu(payload string) (event.ContextMenuRequested, error) {
	var p contextMenuPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return event.ContextMenuRequested{}, fmt.Errorf("failed to decode context menu: %w", err)
	}
	return event.ContextMenuRequested{X: int(p.X), Y: int(p.Y), LinkURL: p.LinkURL}, nil
}

type openLinkPayload struct {
	URL        string `json:"url"`
	Background bool   `json:"background"`
	Window     bool   `json:"window"`
}

func parseOpenLink(payload string) (event.NewWindowRequested, error) {
	var p openLinkPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return event.NewWindowRequested{}, fmt.Errorf("failed to decode link request: %w", err)
	}
	disposition := entity.DispositionForegroundTab
	switch {
	case p.Background:
		disposition = entity.DispositionBackgroundTab
	case p.Window:
		disposition = entity.DispositionNewWindow
	}
	return event.NewWindowRequested{URL: p.URL, Disposition: disposition}, nil
}

// dispositionFor guesses how a window.open call wants to be shown. Pages
// asking for popup features get a window; everything else a tab.
func dispositionFor(features []string) entity.WindowDisposition {
	if slices.Contains(features, "popup") || slices.Contains(features, "popup=1") {
		return entity.DispositionNewWindow
	}
	return entity.DispositionForegroundTab
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
