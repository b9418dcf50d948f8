package butler

import (
	"context"
	"fmt"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
)

// MethodFindUploads lists the uploads of a game.
const MethodFindUploads = "Game.FindUploads"

type findUploadsParams struct {
	Game        *entity.Game           `json:"game"`
	Credentials entity.GameCredentials `json:"credentials"`
}

type findUploadsResult struct {
	Uploads []entity.Upload `json:"uploads"`
}

var _ port.UploadFinder = (*Client)(nil)

// FindUploads implements port.UploadFinder.
func (c *Client) FindUploads(ctx context.Context, game *entity.Game, creds entity.GameCredentials) ([]entity.Upload, error) {
	if game == nil {
		return nil, fmt.Errorf("butler: find uploads: nil game")
	}

	var res findUploadsResult
	if err := c.Call(ctx, MethodFindUploads, findUploadsParams{Game: game, Credentials: creds}, &res); err != nil {
		return nil, fmt.Errorf("find uploads for game %d: %w", game.ID, err)
	}
	if res.Uploads == nil {
		res.Uploads = []entity.Upload{}
	}
	return res.Uploads, nil
}
