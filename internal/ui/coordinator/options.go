package coordinator

import (
	"sync/atomic"

	domainurl "github.com/bnema/gamedesk/internal/domain/url"
)

// Options tunes surface behavior. Safe to swap at runtime.
type Options struct {
	// DevTools above 1 opens detached devtools on each surface's first load.
	DevTools int
	// DontShowWebviews skips the first-load extras (context menu, devtools).
	DontShowWebviews bool
	// PrimaryDomain is the storefront domain navigations are classified
	// against.
	PrimaryDomain string
}

type settings struct {
	opts       Options
	classifier *domainurl.Classifier
}

type settingsHolder struct {
	v atomic.Pointer[settings]
}

func newSettingsHolder(opts Options) *settingsHolder {
	h := &settingsHolder{}
	h.set(opts)
	return h
}

func (h *settingsHolder) set(opts Options) {
	classifier := domainurl.NewClassifier(opts.PrimaryDomain)
	opts.PrimaryDomain = classifier.Domain()
	h.v.Store(&settings{opts: opts, classifier: classifier})
}

func (h *settingsHolder) options() Options {
	return h.v.Load().opts
}

func (h *settingsHolder) classifier() *domainurl.Classifier {
	return h.v.Load().classifier
}
