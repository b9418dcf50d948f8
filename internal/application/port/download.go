package port

import (
	"context"

	"github.com/bnema/gamedesk/internal/domain/entity"
)

// UploadFinder lists the uploads of a game compatible with this machine.
// Implemented by the background download service client.
type UploadFinder interface {
	FindUploads(ctx context.Context, game *entity.Game, creds entity.GameCredentials) ([]entity.Upload, error)
}

// CredentialsProvider resolves the credentials to use for a game.
type CredentialsProvider interface {
	GameCredentials(ctx context.Context, game *entity.Game) (*entity.GameCredentials, error)
}
