package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Upload cache defaults.
const (
	DefaultUploadEntries = 64
	DefaultUploadTTL     = 5 * time.Minute
)

type uploadKey struct {
	gameID      int64
	apiKey      string
	downloadKey int64
}

// UploadFinder caches upload lookups per game and credentials, and
// collapses concurrent lookups for the same key into one call.
type UploadFinder struct {
	next    port.UploadFinder
	entries *TTL[uploadKey, []entity.Upload]
	group   singleflight.Group
}

var _ port.UploadFinder = (*UploadFinder)(nil)

// NewUploadFinder wraps next. Failed lookups are not cached.
func NewUploadFinder(next port.UploadFinder, capacity int, ttl time.Duration) *UploadFinder {
	return &UploadFinder{
		next:    next,
		entries: NewTTL[uploadKey, []entity.Upload](capacity, ttl),
	}
}

// FindUploads returns a cached result when one is live.
func (f *UploadFinder) FindUploads(ctx context.Context, game *entity.Game, creds entity.GameCredentials) ([]entity.Upload, error) {
	if game == nil {
		return f.next.FindUploads(ctx, game, creds)
	}
	key := uploadKey{gameID: game.ID, apiKey: creds.APIKey, downloadKey: creds.DownloadKey}
	if uploads, ok := f.entries.Get(key); ok {
		logging.FromContext(ctx).Debug().Int64("game_id", game.ID).Msg("uploads served from cache")
		return uploads, nil
	}

	flightKey := fmt.Sprintf("%d/%s/%d", key.gameID, key.apiKey, key.downloadKey)
	v, err, _ := f.group.Do(flightKey, func() (any, error) {
		uploads, err := f.next.FindUploads(ctx, game, creds)
		if err != nil {
			return nil, err
		}
		f.entries.Set(key, uploads)
		return uploads, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Upload), nil
}
