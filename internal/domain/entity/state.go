package entity

// Profile is the logged-in user.
type Profile struct {
	UserID int64 `json:"userId"`
}

// TabParams are free-form per-tab UI parameters (sort column, layout...).
type TabParams map[string]any

// State is the whole application state driven by the action stream.
type State struct {
	Profile   Profile              `json:"profile"`
	Windows   map[WindowID]*Window `json:"windows"`
	TabParams map[TabID]TabParams  `json:"tabParams"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Windows:   make(map[WindowID]*Window),
		TabParams: make(map[TabID]TabParams),
	}
}

// Window returns a window by id, or nil.
func (s *State) Window(id WindowID) *Window {
	return s.Windows[id]
}

// Tab returns a tab by window and id, or nil.
func (s *State) Tab(window WindowID, tab TabID) *TabInstance {
	w := s.Windows[window]
	if w == nil {
		return nil
	}
	return w.Tab(tab)
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s *State) Clone() *State {
	c := &State{
		Profile:   s.Profile,
		Windows:   make(map[WindowID]*Window, len(s.Windows)),
		TabParams: make(map[TabID]TabParams, len(s.TabParams)),
	}
	for id, w := range s.Windows {
		c.Windows[id] = w.Clone()
	}
	for id, params := range s.TabParams {
		cp := make(TabParams, len(params))
		for k, v := range params {
			cp[k] = v
		}
		c.TabParams[id] = cp
	}
	return c
}
