package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/danielgtaylor/huma/v2"
)

// TabView summarizes a tab for the state endpoint.
type TabView struct {
	ID            entity.TabID     `json:"id"`
	URL           string           `json:"url"`
	Resource      string           `json:"resource,omitempty"`
	Label         string           `json:"label,omitempty"`
	WebContentsID entity.SurfaceID `json:"webContentsId,omitempty"`
	Loading       bool             `json:"loading"`
	Detaching     bool             `json:"detaching"`
}

// WindowView summarizes a window for the state endpoint.
type WindowView struct {
	ID             entity.WindowID    `json:"id"`
	NativeID       int                `json:"nativeId"`
	HTMLFullscreen bool               `json:"htmlFullscreen"`
	ActiveTab      entity.TabID       `json:"activeTab,omitempty"`
	Tabs           []TabView          `json:"tabs"`
	Modals         []entity.Modal     `json:"modals"`
	ContextMenu    entity.ContextMenu `json:"contextMenu"`
}

// StateView is the body of GET /api/v1/state.
type StateView struct {
	UserID       int64        `json:"userId"`
	Windows      []WindowView `json:"windows"`
	RegistrySize int          `json:"registrySize"`
}

type healthOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

type stateOutput struct {
	Body StateView
}

func (s *server) registerStateHandlers(api huma.API) {
	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/health", Summary: "Health check", Tags: []string{"Health"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			out := &healthOutput{}
			out.Body.Status = "ok"
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-state", Method: http.MethodGet, Path: "/api/v1/state", Summary: "Window, tab and modal state", Tags: []string{"State"}},
		func(ctx context.Context, input *struct{}) (*stateOutput, error) {
			out := &stateOutput{}
			out.Body = s.stateView()
			return out, nil
		})
}

func (s *server) stateView() StateView {
	st := s.deps.Store.Snapshot()
	view := StateView{
		UserID:  st.Profile.UserID,
		Windows: make([]WindowView, 0, len(st.Windows)),
	}
	if s.deps.Registry != nil {
		view.RegistrySize = s.deps.Registry.Len()
	}

	for _, w := range st.Windows {
		view.Windows = append(view.Windows, windowView(w))
	}
	sort.Slice(view.Windows, func(i, j int) bool { return view.Windows[i].ID < view.Windows[j].ID })
	return view
}

func windowView(w *entity.Window) WindowView {
	wv := WindowView{
		ID:             w.ID,
		NativeID:       w.NativeID,
		HTMLFullscreen: w.HTMLFullscreen,
		ActiveTab:      w.ActiveTab,
		Tabs:           make([]TabView, 0, len(w.TabOrder)),
		Modals:         w.Modals,
		ContextMenu:    w.ContextMenu,
	}
	if wv.Modals == nil {
		wv.Modals = []entity.Modal{}
	}

	for _, id := range w.TabOrder {
		t := w.Tab(id)
		if t == nil {
			continue
		}
		cur := t.Current()
		tv := TabView{
			ID:        t.ID,
			URL:       cur.URL,
			Resource:  cur.Resource,
			Label:     t.Data.Label,
			Detaching: t.Detaching,
		}
		if t.Data.Web != nil {
			tv.WebContentsID = t.Data.Web.WebContentsID
			tv.Loading = t.Data.Web.Loading
		}
		wv.Tabs = append(wv.Tabs, tv)
	}
	return wv
}
