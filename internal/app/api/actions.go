package api

import (
	"context"
	"net/http"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/danielgtaylor/huma/v2"
)

// ActionResult is the body returned by every action endpoint.
type ActionResult struct {
	Action  string       `json:"action"`
	ModalID string       `json:"modalId,omitempty"`
	TabID   entity.TabID `json:"tabId,omitempty"`
}

type actionOutput struct {
	Body ActionResult
}

type windowBody struct {
	Window string `json:"window,omitempty" doc:"Window id, root when empty"`
}

type tabBody struct {
	Window string `json:"window,omitempty" doc:"Window id, root when empty"`
	Tab    string `json:"tab,omitempty" doc:"Tab id, active tab when empty"`
}

type openModalInput struct {
	Body struct {
		Window       string               `json:"window,omitempty" doc:"Window id, root when empty"`
		ID           string               `json:"id,omitempty"`
		Title        string               `json:"title" minLength:"1"`
		Message      string               `json:"message,omitempty"`
		Widget       string               `json:"widget,omitempty"`
		WidgetParams map[string]any       `json:"widgetParams,omitempty"`
		Buttons      []entity.ModalButton `json:"buttons,omitempty"`
	}
}

type closeModalInput struct {
	Body struct {
		Window string `json:"window,omitempty" doc:"Window id, root when empty"`
		ID     string `json:"id,omitempty" doc:"Modal id, topmost when empty"`
	}
}

type contextMenuInput struct {
	Body struct {
		Window  string `json:"window,omitempty" doc:"Window id, root when empty"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		LinkURL string `json:"linkURL,omitempty"`
	}
}

type windowInput struct {
	Body windowBody
}

type fullscreenInput struct {
	Body struct {
		Window         string `json:"window,omitempty" doc:"Window id, root when empty"`
		HTMLFullscreen bool   `json:"htmlFullscreen"`
	}
}

type metricsInput struct {
	Body struct {
		Window     string         `json:"window,omitempty" doc:"Window id, root when empty"`
		Tab        string         `json:"tab,omitempty" doc:"Tab id, active tab when empty"`
		InitialURL string         `json:"initialURL,omitempty"`
		Metrics    entity.Metrics `json:"metrics"`
	}
}

type navigateInput struct {
	Body struct {
		Window     string `json:"window,omitempty" doc:"Window id, root when empty"`
		URL        string `json:"url" minLength:"1"`
		Background bool   `json:"background,omitempty"`
	}
}

type tabInput struct {
	Body tabBody
}

type manageGameInput struct {
	Body struct {
		Window string `json:"window,omitempty" doc:"Window id, root when empty"`
		GameID int64  `json:"gameId" minimum:"1"`
	}
}

// registerAction mounts POST /api/v1/actions/{name}. build turns the request
// into the action to dispatch and the result to report once it is reduced.
func registerAction[I any](api huma.API, s *server, name, summary string, build func(ctx context.Context, in *I) (action.Action, ActionResult, error)) {
	huma.Register(api, huma.Operation{
		OperationID: name,
		Method:      http.MethodPost,
		Path:        "/api/v1/actions/" + name,
		Summary:     summary,
		Tags:        []string{"Actions"},
	}, func(ctx context.Context, in *I) (*actionOutput, error) {
		a, result, err := build(ctx, in)
		if err != nil {
			return nil, err
		}
		if err := s.dispatch(ctx, a); err != nil {
			return nil, err
		}
		result.Action = a.Name()
		return &actionOutput{Body: result}, nil
	})
}

func (s *server) registerActionHandlers(api huma.API) {
	registerAction(api, s, "open-modal", "Open a modal", func(ctx context.Context, in *openModalInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		modal := entity.Modal{
			ID:      in.Body.ID,
			Title:   entity.LocalizedString{Key: in.Body.Title},
			Message: in.Body.Message,
			Buttons: in.Body.Buttons,
			Widget:  in.Body.Widget,
		}
		if in.Body.WidgetParams != nil {
			modal.WidgetParams = in.Body.WidgetParams
		}
		a := action.NewOpenModal(wid, modal)
		return a, ActionResult{ModalID: a.Modal.ID}, nil
	})

	registerAction(api, s, "close-modal", "Close a modal", func(ctx context.Context, in *closeModalInput) (action.Action, ActionResult, error) {
		wid, w, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		id := in.Body.ID
		if id == "" {
			if !w.HasModals() {
				return nil, ActionResult{}, huma.Error409Conflict("no modal open")
			}
			id = w.Modals[len(w.Modals)-1].ID
		} else if w.Modal(id) == nil {
			return nil, ActionResult{}, huma.Error404NotFound("unknown modal " + id)
		}
		return action.CloseModal{Window: wid, ID: id}, ActionResult{ModalID: id}, nil
	})

	registerAction(api, s, "popup-context-menu", "Open the context menu", func(ctx context.Context, in *contextMenuInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.PopupContextMenu{Window: wid, X: in.Body.X, Y: in.Body.Y, LinkURL: in.Body.LinkURL}, ActionResult{}, nil
	})

	registerAction(api, s, "close-context-menu", "Close the context menu", func(ctx context.Context, in *windowInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.CloseContextMenu{Window: wid}, ActionResult{}, nil
	})

	registerAction(api, s, "fullscreen", "Report HTML fullscreen", func(ctx context.Context, in *fullscreenInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.WindHTMLFullscreenChanged{Window: wid, HTMLFullscreen: in.Body.HTMLFullscreen}, ActionResult{}, nil
	})

	registerAction(api, s, "metrics", "Report a tab's surface slot", func(ctx context.Context, in *metricsInput) (action.Action, ActionResult, error) {
		wid, tid, err := s.tab(in.Body.Window, in.Body.Tab)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.TabGotWebContentsMetrics{
			Window:     wid,
			Tab:        tid,
			InitialURL: in.Body.InitialURL,
			Metrics:    in.Body.Metrics,
		}, ActionResult{TabID: tid}, nil
	})

	registerAction(api, s, "navigate", "Open a URL in a new tab", func(ctx context.Context, in *navigateInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		a := action.NewNavigate(wid, in.Body.URL, in.Body.Background)
		return a, ActionResult{TabID: a.Tab}, nil
	})

	registerAction(api, s, "close-tab-surface", "Tear down a tab's surface", func(ctx context.Context, in *tabInput) (action.Action, ActionResult, error) {
		wid, tid, err := s.tab(in.Body.Window, in.Body.Tab)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.TabLosingWebContents{Window: wid, Tab: tid}, ActionResult{TabID: tid}, nil
	})

	registerAction(api, s, "reload", "Reload a tab", func(ctx context.Context, in *tabInput) (action.Action, ActionResult, error) {
		wid, tid, err := s.tab(in.Body.Window, in.Body.Tab)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.TabReloaded{Window: wid, Tab: tid}, ActionResult{TabID: tid}, nil
	})

	registerAction(api, s, "stop", "Stop loading the active tab", func(ctx context.Context, in *windowInput) (action.Action, ActionResult, error) {
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return action.CommandStop{Window: wid}, ActionResult{}, nil
	})

	registerAction(api, s, "manage-game", "Open the manage-game dialog", func(ctx context.Context, in *manageGameInput) (action.Action, ActionResult, error) {
		if s.deps.Games == nil {
			return nil, ActionResult{}, huma.Error503ServiceUnavailable("game library unavailable")
		}
		wid, _, err := s.window(in.Body.Window)
		if err != nil {
			return nil, ActionResult{}, err
		}
		game, err := s.deps.Games.FindByID(ctx, in.Body.GameID)
		if err != nil {
			return nil, ActionResult{}, huma.Error500InternalServerError("find game", err)
		}
		if game == nil {
			return nil, ActionResult{}, huma.Error404NotFound("unknown game")
		}
		return action.ManageGame{Window: wid, Game: game}, ActionResult{}, nil
	})
}
