package coordinator

import (
	"context"
	"errors"

	"github.com/bnema/gamedesk/internal/app/store"
	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/logging"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
)

// LibraryCoordinator runs library dialogs off the main loop.
type LibraryCoordinator struct {
	manageGame *usecase.ManageGameUseCase
	loop       *mainloop.Loop
}

// NewLibraryCoordinator creates a LibraryCoordinator.
func NewLibraryCoordinator(manageGame *usecase.ManageGameUseCase, loop *mainloop.Loop) *LibraryCoordinator {
	return &LibraryCoordinator{manageGame: manageGame, loop: loop}
}

// Register subscribes the coordinator to library actions.
func (c *LibraryCoordinator) Register(w *store.Watcher) {
	store.On(w, c.onManageGame)
}

func (c *LibraryCoordinator) onManageGame(ctx context.Context, _ *store.Store, a action.ManageGame) {
	log := logging.FromContext(ctx)
	if a.Game == nil {
		log.Warn().Str("window", string(a.Window)).Msg("manage-game without a game")
		return
	}

	ctx = logging.WithWindowID(ctx, string(a.Window))
	c.loop.Go(func() {
		out, err := c.manageGame.Execute(ctx, usecase.ManageGameInput{Window: a.Window, Game: a.Game})
		switch {
		case errors.Is(err, usecase.ErrNoCredentials):
			log.Warn().Int64("game_id", a.Game.ID).Msg("no game credentials, can't list uploads")
		case err != nil:
			log.Error().Err(err).Int64("game_id", a.Game.ID).Msg("manage-game failed")
		default:
			log.Debug().Str("modal", out.ModalID).Int("uploads", len(out.Uploads)).Msg("manage-game ready")
		}
	})
}
