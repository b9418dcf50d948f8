package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
)

// ErrNoCredentials is returned when no API key is available to query the
// download service for a game.
var ErrNoCredentials = errors.New("no game credentials")

// Manage-game modal constants.
const (
	ManageGameWidget     = "manage-game"
	ManageGameTitleKey   = "prompt.manage_game.title"
	ManageGameCloseLabel = "prompt.action.close"
)

// ManageGameInput identifies the game to manage and the window hosting
// the dialog.
type ManageGameInput struct {
	Window entity.WindowID
	Game   *entity.Game
}

// ManageGameOutput reports what the dialog ended up showing.
type ManageGameOutput struct {
	ModalID string
	Caves   []*entity.Cave
	Uploads []entity.Upload
}

// ManageGameUseCase opens the manage-game dialog and fills it with the
// uploads compatible with this machine.
type ManageGameUseCase struct {
	caves      repository.CaveRepository
	creds      port.CredentialsProvider
	uploads    port.UploadFinder
	dispatcher port.Dispatcher
}

// NewManageGameUseCase creates a new ManageGameUseCase.
func NewManageGameUseCase(
	caves repository.CaveRepository,
	creds port.CredentialsProvider,
	uploads port.UploadFinder,
	dispatcher port.Dispatcher,
) *ManageGameUseCase {
	return &ManageGameUseCase{
		caves:      caves,
		creds:      creds,
		uploads:    uploads,
		dispatcher: dispatcher,
	}
}

// Execute opens the dialog in a loading state, then looks up uploads and
// publishes them. The dialog always leaves the loading state, even when
// credentials are missing or the lookup fails. It blocks on the download
// service, so callers run it off the main loop.
func (uc *ManageGameUseCase) Execute(ctx context.Context, input ManageGameInput) (*ManageGameOutput, error) {
	if input.Game == nil {
		return nil, errors.New("manage game: nil game")
	}
	game := input.Game
	log := logging.FromContext(ctx).With().Int64("game_id", game.ID).Logger()

	caves, err := uc.caves.ListByGame(ctx, game.ID)
	if err != nil {
		log.Warn().Err(err).Msg("could not list caves")
		caves = nil
	}
	if caves == nil {
		caves = []*entity.Cave{}
	}

	params := entity.ManageGameParams{
		Game:           game,
		Caves:          caves,
		AllUploads:     []entity.Upload{},
		LoadingUploads: true,
	}

	open := action.NewOpenModal(input.Window, entity.Modal{
		Title: entity.LocalizedString{
			Key:    ManageGameTitleKey,
			Values: map[string]any{"title": game.Title},
		},
		Buttons: []entity.ModalButton{{
			Label:     entity.LocalizedString{Key: ManageGameCloseLabel},
			Action:    action.CloseModal{}.Name(),
			ClassName: "secondary",
		}},
		Widget:       ManageGameWidget,
		WidgetParams: params,
	})
	uc.dispatcher.Dispatch(open)
	out := &ManageGameOutput{ModalID: open.Modal.ID, Caves: caves, Uploads: params.AllUploads}

	defer func() {
		params.AllUploads = out.Uploads
		params.LoadingUploads = false
		uc.dispatcher.Dispatch(action.UpdateModalWidgetParams{
			ID:           out.ModalID,
			WidgetParams: params,
		})
	}()

	creds, err := uc.creds.GameCredentials(ctx, game)
	if err != nil {
		return out, fmt.Errorf("resolve credentials for game %d: %w", game.ID, err)
	}
	if creds == nil || creds.APIKey == "" {
		return out, fmt.Errorf("game %d: %w", game.ID, ErrNoCredentials)
	}

	uploads, err := uc.uploads.FindUploads(ctx, game, *creds)
	if err != nil {
		log.Warn().Err(err).Msg("could not list uploads")
		return out, nil
	}
	if uploads != nil {
		out.Uploads = uploads
	}

	log.Debug().Int("uploads", len(out.Uploads)).Int("caves", len(caves)).Msg("manage-game dialog filled")
	return out, nil
}
