package store

import (
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
)

// Reduce applies a to st in place. Actions naming unknown windows or tabs
// leave the state untouched.
func Reduce(st *entity.State, a action.Action) {
	switch a := a.(type) {
	case action.ProfileLoggedIn:
		st.Profile.UserID = a.UserID

	case action.WindowOpened:
		if w := st.Window(a.Window); w != nil {
			w.NativeID = a.NativeID
			return
		}
		st.Windows[a.Window] = entity.NewWindow(a.Window, a.NativeID)

	case action.TabOpened:
		if w := st.Window(a.Window); w != nil {
			w.AddTab(entity.NewTabInstance(a.Tab, a.URL, ""), !a.Background)
		}

	case action.Navigate:
		if w := st.Window(a.Window); w != nil && a.Tab != "" {
			w.AddTab(entity.NewTabInstance(a.Tab, a.URL, ""), !a.Background)
		}

	case action.TabFocused:
		if w := st.Window(a.Window); w != nil && w.Tab(a.Tab) != nil {
			w.ActiveTab = a.Tab
		}

	case action.TabParamsChanged:
		params := st.TabParams[a.Tab]
		if params == nil {
			params = make(entity.TabParams, len(a.Params))
			st.TabParams[a.Tab] = params
		}
		for k, v := range a.Params {
			params[k] = v
		}

	case action.WindHTMLFullscreenChanged:
		if w := st.Window(a.Window); w != nil {
			w.HTMLFullscreen = a.HTMLFullscreen
		}

	case action.TabDataFetched:
		if tab := st.Tab(a.Window, a.Tab); tab != nil {
			tab.ApplyData(a.Data)
		}

	case action.EvolveTab:
		if tab := st.Tab(a.Window, a.Tab); tab != nil {
			tab.Evolve(a.URL, a.Resource, a.Replace)
		}

	case action.TabLosingWebContents:
		if tab := st.Tab(a.Window, a.Tab); tab != nil {
			tab.Detaching = true
		}

	case action.TabLostWebContents:
		if tab := st.Tab(a.Window, a.Tab); tab != nil {
			tab.Detaching = false
			if tab.Data.Web != nil {
				tab.Data.Web.WebContentsID = 0
				tab.Data.Web.Loading = false
			}
		}

	case action.OpenModal:
		if w := st.Window(a.Window); w != nil {
			w.Modals = append(w.Modals, a.Modal)
		}

	case action.CloseModal:
		w := st.Window(a.Window)
		if w == nil || !w.HasModals() {
			return
		}
		if a.ID == "" {
			w.Modals = w.Modals[:len(w.Modals)-1]
			return
		}
		w.RemoveModal(a.ID)

	case action.UpdateModalWidgetParams:
		for _, w := range st.Windows {
			if m := w.Modal(a.ID); m != nil {
				m.WidgetParams = a.WidgetParams
				return
			}
		}

	case action.PopupContextMenu:
		if w := st.Window(a.Window); w != nil {
			w.ContextMenu = entity.ContextMenu{Open: true, X: a.X, Y: a.Y, LinkURL: a.LinkURL}
		}

	case action.CloseContextMenu:
		if w := st.Window(a.Window); w != nil {
			w.ContextMenu = entity.ContextMenu{}
		}
	}
}
