package entity

// TabID uniquely identifies a tab within the session.
type TabID string

// TabWeb is the browsing-surface related state of a tab.
type TabWeb struct {
	WebContentsID  SurfaceID `json:"webContentsId,omitempty"`
	Loading        bool      `json:"loading"`
	Favicon        string    `json:"favicon,omitempty"`
	EditingAddress bool      `json:"editingAddress"`
	History        []string  `json:"history,omitempty"`
}

// WebPatch is a partial update of TabWeb; nil fields are left untouched.
type WebPatch struct {
	WebContentsID  *SurfaceID `json:"webContentsId,omitempty"`
	Loading        *bool      `json:"loading,omitempty"`
	Favicon        *string    `json:"favicon,omitempty"`
	EditingAddress *bool      `json:"editingAddress,omitempty"`
	Committed      *Committed `json:"committed,omitempty"`
}

// Committed records one navigation the surface committed to its own
// history.
type Committed struct {
	URL     string `json:"url"`
	Replace bool   `json:"replace,omitempty"`
}

// Apply merges the patch into w.
func (w *TabWeb) Apply(p WebPatch) {
	if p.WebContentsID != nil {
		w.WebContentsID = *p.WebContentsID
	}
	if p.Loading != nil {
		w.Loading = *p.Loading
	}
	if p.Favicon != nil {
		w.Favicon = *p.Favicon
	}
	if p.EditingAddress != nil {
		w.EditingAddress = *p.EditingAddress
	}
	if p.Committed != nil {
		if p.Committed.Replace && len(w.History) > 0 {
			w.History[len(w.History)-1] = p.Committed.URL
		} else {
			w.History = append(w.History, p.Committed.URL)
		}
	}
}

// TabData holds fetched, displayable data about a tab.
type TabData struct {
	Label string  `json:"label,omitempty"`
	Web   *TabWeb `json:"web,omitempty"`
}

// TabDataPatch is a partial update of TabData.
type TabDataPatch struct {
	Label *string   `json:"label,omitempty"`
	Web   *WebPatch `json:"web,omitempty"`
}

// HistoryEntry is one step of a tab's in-app navigation history.
type HistoryEntry struct {
	URL      string `json:"url"`
	Resource string `json:"resource,omitempty"`
}

// TabInstance is a logical tab, whether or not it currently hosts a surface.
type TabInstance struct {
	ID           TabID          `json:"id"`
	History      []HistoryEntry `json:"history"`
	CurrentIndex int            `json:"currentIndex"`

	// Detaching is set between the request to drop the tab's surface and
	// the confirmation that it is gone.
	Detaching bool    `json:"detaching"`
	Data      TabData `json:"data"`
}

// NewTabInstance creates a tab positioned on url.
func NewTabInstance(id TabID, url, resource string) *TabInstance {
	return &TabInstance{
		ID:      id,
		History: []HistoryEntry{{URL: url, Resource: resource}},
	}
}

// Current returns the history entry the tab is on.
func (t *TabInstance) Current() HistoryEntry {
	if t.CurrentIndex < 0 || t.CurrentIndex >= len(t.History) {
		return HistoryEntry{}
	}
	return t.History[t.CurrentIndex]
}

// URL returns the current URL.
func (t *TabInstance) URL() string {
	return t.Current().URL
}

// Resource returns the current resource tag.
func (t *TabInstance) Resource() string {
	return t.Current().Resource
}

// SurfaceID returns the tab's browsing surface, or zero.
func (t *TabInstance) SurfaceID() SurfaceID {
	if t.Data.Web == nil {
		return 0
	}
	return t.Data.Web.WebContentsID
}

// HasSurface reports whether a surface has been published for the tab.
func (t *TabInstance) HasSurface() bool {
	return t.SurfaceID().Valid()
}

// Evolve moves the tab to url. With replace, the current entry is rewritten;
// otherwise forward history is dropped and a new entry is pushed. Navigating
// to the URL already current only refreshes its resource.
func (t *TabInstance) Evolve(url, resource string, replace bool) {
	entry := HistoryEntry{URL: url, Resource: resource}

	if len(t.History) == 0 {
		t.History = []HistoryEntry{entry}
		t.CurrentIndex = 0
		return
	}

	if replace || t.Current().URL == url {
		t.History[t.CurrentIndex] = entry
		return
	}

	t.History = append(t.History[:t.CurrentIndex+1], entry)
	t.CurrentIndex = len(t.History) - 1
}

// ApplyData merges a data patch, creating the web record on demand.
func (t *TabInstance) ApplyData(p TabDataPatch) {
	if p.Label != nil {
		t.Data.Label = *p.Label
	}
	if p.Web != nil {
		if t.Data.Web == nil {
			t.Data.Web = &TabWeb{}
		}
		t.Data.Web.Apply(*p.Web)
	}
}

// Clone returns a deep copy of the tab.
func (t *TabInstance) Clone() *TabInstance {
	c := *t
	c.History = append([]HistoryEntry(nil), t.History...)
	if t.Data.Web != nil {
		web := *t.Data.Web
		web.History = append([]string(nil), t.Data.Web.History...)
		c.Data.Web = &web
	}
	return &c
}
