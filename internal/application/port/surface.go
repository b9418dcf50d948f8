// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of the browser engine and the download service.
package port

import (
	"context"
	"errors"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
)

// ErrSurfaceNotFound is returned when a surface id no longer resolves.
var ErrSurfaceNotFound = errors.New("surface not found")

// ErrWindowNotFound is returned when a native window id no longer resolves.
var ErrWindowNotFound = errors.New("native window not found")

// SurfaceOptions configures a new browsing surface.
type SurfaceOptions struct {
	// Partition isolates cookies and storage, e.g. "persist:itchio-42".
	Partition string
	// NodeIntegration exposes native APIs to page scripts. Always off for
	// remote content.
	NodeIntegration bool
}

// Surface is a native embedded web-rendering region.
type Surface interface {
	// ID returns the surface identifier. Stable for the surface lifetime.
	ID() entity.SurfaceID

	SetBounds(bounds entity.Bounds)
	Bounds() entity.Bounds

	// LoadURL starts navigating to url. It does not wait for the load.
	LoadURL(ctx context.Context, url string) error
	Reload()
	Stop()

	URL() string
	IsLoading() bool

	// ExecuteJavaScript evaluates code in the page and returns its
	// JSON-compatible result. May block until the page answers.
	ExecuteJavaScript(ctx context.Context, code string) (any, error)

	OpenDevTools(mode entity.DevToolsMode)

	// Events returns the surface's event source. It is closed on Destroy.
	Events() *event.Source

	IsDestroyed() bool
	Destroy()
}

// NativeWindow is an application window able to host one surface.
type NativeWindow interface {
	ID() int
	// ContentBounds returns the window's content area size.
	ContentBounds() entity.Bounds
	// Surface returns the attached surface, or nil.
	Surface() Surface
	// SetSurface attaches s, detaching any previous surface without
	// destroying it. A nil s only detaches.
	SetSurface(s Surface)
}

// BrowserEngine creates and resolves native surfaces and windows.
type BrowserEngine interface {
	CreateSurface(ctx context.Context, opts SurfaceOptions) (Surface, error)
	// Surface resolves a live surface by id.
	Surface(id entity.SurfaceID) (Surface, bool)
	// Window resolves a native window by id.
	Window(nativeID int) (NativeWindow, bool)
	// OpenAppDevTools opens developer tools for the application shell.
	OpenAppDevTools()
}
