// Package action defines the application's action vocabulary. Actions are
// plain values: the store reduces them into state, then routes them to the
// reactors registered for their type.
package action

import "github.com/bnema/gamedesk/internal/domain/entity"

// Action is a message flowing through the store.
type Action interface {
	Name() string
}

// --- session ---

// ProfileLoggedIn sets the current user.
type ProfileLoggedIn struct {
	UserID int64
}

// WindowOpened registers an application window backed by a native window.
type WindowOpened struct {
	Window   entity.WindowID
	NativeID int
}

// TabOpened adds a tab to a window.
type TabOpened struct {
	Window     entity.WindowID
	Tab        entity.TabID
	URL        string
	Background bool
}

// TabFocused makes a tab the active one.
type TabFocused struct {
	Window entity.WindowID
	Tab    entity.TabID
}

// TabParamsChanged merges UI parameters into a tab's parameter set.
type TabParamsChanged struct {
	Tab    entity.TabID
	Params entity.TabParams
}

// --- browsing surfaces ---

// WindHTMLFullscreenChanged reports a page entering or leaving HTML fullscreen.
type WindHTMLFullscreenChanged struct {
	Window         entity.WindowID
	HTMLFullscreen bool
}

// TabGotWebContentsMetrics reports the layout slot of a tab's surface.
type TabGotWebContentsMetrics struct {
	Window     entity.WindowID
	Tab        entity.TabID
	InitialURL string
	Metrics    entity.Metrics
}

// TabGotWebContents publishes the surface created for a tab.
type TabGotWebContents struct {
	Window        entity.WindowID
	Tab           entity.TabID
	WebContentsID entity.SurfaceID
}

// TabLosingWebContents requests that a tab's surface be torn down.
type TabLosingWebContents struct {
	Window entity.WindowID
	Tab    entity.TabID
}

// TabLostWebContents confirms that a tab no longer has a surface.
type TabLostWebContents struct {
	Window entity.WindowID
	Tab    entity.TabID
}

// TabDataFetched merges fetched data into a tab.
type TabDataFetched struct {
	Window entity.WindowID
	Tab    entity.TabID
	Data   entity.TabDataPatch
}

// EvolveTab moves a tab to a new URL and resource.
type EvolveTab struct {
	Window   entity.WindowID
	Tab      entity.TabID
	URL      string
	Resource string
	Replace  bool
}

// Navigate opens url in a new tab of the window. Tab is the id the new tab
// gets; use NewNavigate to have one generated.
type Navigate struct {
	Window     entity.WindowID
	Tab        entity.TabID
	URL        string
	Background bool
}

// AnalyzePage asks for the in-app path advertised by the loaded page.
type AnalyzePage struct {
	Window entity.WindowID
	Tab    entity.TabID
	URL    string
}

// TabReloaded reloads a tab's page.
type TabReloaded struct {
	Window entity.WindowID
	Tab    entity.TabID
}

// CommandStop stops loading the active tab.
type CommandStop struct {
	Window entity.WindowID
}

// CommandLocation starts editing the active tab's address.
type CommandLocation struct {
	Window entity.WindowID
}

// CommandBack leaves address editing.
type CommandBack struct {
	Window entity.WindowID
}

// OpenDevTools opens developer tools for the active tab, or for the
// application shell when ForApp is set.
type OpenDevTools struct {
	Window entity.WindowID
	ForApp bool
}

// --- overlays ---

// OpenModal opens a modal dialog.
type OpenModal struct {
	Window entity.WindowID
	Modal  entity.Modal
}

// CloseModal closes a modal; an empty ID closes the topmost one.
type CloseModal struct {
	Window entity.WindowID
	ID     string
}

// ModalClosed is emitted after a modal has been removed from state.
type ModalClosed struct {
	Window entity.WindowID
	ID     string
}

// UpdateModalWidgetParams replaces an open modal's widget params.
type UpdateModalWidgetParams struct {
	ID           string
	WidgetParams any
}

// PopupContextMenu opens a context menu in the window.
type PopupContextMenu struct {
	Window  entity.WindowID
	X, Y    int
	LinkURL string
}

// CloseContextMenu closes the window's context menu.
type CloseContextMenu struct {
	Window entity.WindowID
}

// --- library ---

// ManageGame opens the manage-game dialog for a game.
type ManageGame struct {
	Window entity.WindowID
	Game   *entity.Game
}

func (ProfileLoggedIn) Name() string           { return "profile-logged-in" }
func (WindowOpened) Name() string              { return "window-opened" }
func (TabOpened) Name() string                 { return "tab-opened" }
func (TabFocused) Name() string                { return "tab-focused" }
func (TabParamsChanged) Name() string          { return "tab-params-changed" }
func (WindHTMLFullscreenChanged) Name() string { return "wind-html-fullscreen-changed" }
func (TabGotWebContentsMetrics) Name() string  { return "tab-got-web-contents-metrics" }
func (TabGotWebContents) Name() string         { return "tab-got-web-contents" }
func (TabLosingWebContents) Name() string      { return "tab-losing-web-contents" }
func (TabLostWebContents) Name() string        { return "tab-lost-web-contents" }
func (TabDataFetched) Name() string            { return "tab-data-fetched" }
func (EvolveTab) Name() string                 { return "evolve-tab" }
func (Navigate) Name() string                  { return "navigate" }
func (AnalyzePage) Name() string               { return "analyze-page" }
func (TabReloaded) Name() string               { return "tab-reloaded" }
func (CommandStop) Name() string               { return "command-stop" }
func (CommandLocation) Name() string           { return "command-location" }
func (CommandBack) Name() string               { return "command-back" }
func (OpenDevTools) Name() string              { return "open-dev-tools" }
func (OpenModal) Name() string                 { return "open-modal" }
func (CloseModal) Name() string                { return "close-modal" }
func (ModalClosed) Name() string               { return "modal-closed" }
func (UpdateModalWidgetParams) Name() string   { return "update-modal-widget-params" }
func (PopupContextMenu) Name() string          { return "popup-context-menu" }
func (CloseContextMenu) Name() string          { return "close-context-menu" }
func (ManageGame) Name() string                { return "manage-game" }
