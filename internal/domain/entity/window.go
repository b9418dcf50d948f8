package entity

// WindowID identifies an application window.
type WindowID string

// RootWindow is the main window every session starts with.
const RootWindow WindowID = "root"

// LocalizedString is a translation key with its interpolation values.
type LocalizedString struct {
	Key    string         `json:"key"`
	Values map[string]any `json:"values,omitempty"`
}

// ModalButton is one button of a modal dialog. Action names the action
// dispatched on click.
type ModalButton struct {
	Label     LocalizedString `json:"label"`
	Action    string          `json:"action"`
	ClassName string          `json:"className,omitempty"`
}

// Modal is an open dialog in a window.
type Modal struct {
	ID           string          `json:"id"`
	Title        LocalizedString `json:"title"`
	Message      string          `json:"message,omitempty"`
	Buttons      []ModalButton   `json:"buttons,omitempty"`
	Widget       string          `json:"widget,omitempty"`
	WidgetParams any             `json:"widgetParams,omitempty"`
}

// ContextMenu is the window's context menu state.
type ContextMenu struct {
	Open    bool   `json:"open"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	LinkURL string `json:"linkURL,omitempty"`
}

// Window is the state of one application window.
type Window struct {
	ID             WindowID               `json:"id"`
	NativeID       int                    `json:"nativeId"`
	HTMLFullscreen bool                   `json:"htmlFullscreen"`
	Modals         []Modal                `json:"modals"`
	ContextMenu    ContextMenu            `json:"contextMenu"`
	ActiveTab      TabID                  `json:"activeTab"`
	TabOrder       []TabID                `json:"tabOrder"`
	Tabs           map[TabID]*TabInstance `json:"tabs"`
}

// NewWindow creates an empty window bound to a native window id.
func NewWindow(id WindowID, nativeID int) *Window {
	return &Window{
		ID:       id,
		NativeID: nativeID,
		Tabs:     make(map[TabID]*TabInstance),
	}
}

// Tab returns a tab by id, or nil.
func (w *Window) Tab(id TabID) *TabInstance {
	return w.Tabs[id]
}

// Active returns the focused tab, or nil.
func (w *Window) Active() *TabInstance {
	return w.Tabs[w.ActiveTab]
}

// HasModals reports whether any modal is open in the window.
func (w *Window) HasModals() bool {
	return len(w.Modals) > 0
}

// AddTab appends a tab, focusing it when focus is set or when it is the
// first tab of the window.
func (w *Window) AddTab(tab *TabInstance, focus bool) {
	if _, exists := w.Tabs[tab.ID]; !exists {
		w.TabOrder = append(w.TabOrder, tab.ID)
	}
	w.Tabs[tab.ID] = tab
	if focus || w.ActiveTab == "" {
		w.ActiveTab = tab.ID
	}
}

// RemoveModal drops a modal by id and reports whether it was open.
func (w *Window) RemoveModal(id string) bool {
	for i, m := range w.Modals {
		if m.ID == id {
			w.Modals = append(w.Modals[:i], w.Modals[i+1:]...)
			return true
		}
	}
	return false
}

// Modal returns a pointer to an open modal, or nil.
func (w *Window) Modal(id string) *Modal {
	for i := range w.Modals {
		if w.Modals[i].ID == id {
			return &w.Modals[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the window. Widget params are shared.
func (w *Window) Clone() *Window {
	c := *w
	c.Modals = append([]Modal(nil), w.Modals...)
	c.TabOrder = append([]TabID(nil), w.TabOrder...)
	c.Tabs = make(map[TabID]*TabInstance, len(w.Tabs))
	for id, tab := range w.Tabs {
		c.Tabs[id] = tab.Clone()
	}
	return &c
}
