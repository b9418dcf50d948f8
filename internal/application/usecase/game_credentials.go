package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
)

// GameCredentialsResolver picks the API key of the current user, falling
// back to the most recently connected account, and attaches the user's
// download key for the game when one exists.
type GameCredentialsResolver struct {
	accounts repository.AccountRepository
	keys     repository.DownloadKeyRepository
	userID   func() int64
}

var _ port.CredentialsProvider = (*GameCredentialsResolver)(nil)

// NewGameCredentialsResolver creates a resolver. userID returns the
// logged-in user, or 0 when nobody is logged in.
func NewGameCredentialsResolver(
	accounts repository.AccountRepository,
	keys repository.DownloadKeyRepository,
	userID func() int64,
) *GameCredentialsResolver {
	if userID == nil {
		userID = func() int64 { return 0 }
	}
	return &GameCredentialsResolver{accounts: accounts, keys: keys, userID: userID}
}

// GameCredentials returns nil credentials, without error, when no account
// has an API key.
func (r *GameCredentialsResolver) GameCredentials(ctx context.Context, game *entity.Game) (*entity.GameCredentials, error) {
	log := logging.FromContext(ctx)

	var (
		account *entity.Account
		err     error
	)
	if id := r.userID(); id != 0 {
		account, err = r.accounts.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find account %d: %w", id, err)
		}
	}
	if account == nil {
		account, err = r.accounts.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("find latest account: %w", err)
		}
	}
	if account == nil || account.APIKey == "" {
		log.Debug().Msg("no account with an api key")
		return nil, nil
	}

	creds := &entity.GameCredentials{APIKey: account.APIKey}
	if game == nil {
		return creds, nil
	}

	key, err := r.keys.FindByGame(ctx, game.ID, account.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("game_id", game.ID).Msg("could not look up download key")
		return creds, nil
	}
	if key != nil {
		creds.DownloadKey = key.ID
	}
	return creds, nil
}
