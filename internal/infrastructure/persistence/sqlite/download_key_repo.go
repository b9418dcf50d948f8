package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
)

type downloadKeyRepo struct {
	db *sql.DB
}

// NewDownloadKeyRepository creates a SQLite-backed download key repository.
func NewDownloadKeyRepository(db *sql.DB) repository.DownloadKeyRepository {
	return &downloadKeyRepo{db: db}
}

func (r *downloadKeyRepo) Save(ctx context.Context, key *entity.DownloadKey) error {
	if key == nil {
		return errors.New("nil download key")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO download_keys (id, game_id, owner_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			game_id = excluded.game_id,
			owner_id = excluded.owner_id,
			created_at = excluded.created_at`,
		key.ID, key.GameID, key.OwnerID, toMillis(key.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save download key %d: %w", key.ID, err)
	}
	return nil
}

// FindByGame returns the newest key ownerID holds for gameID, or nil.
func (r *downloadKeyRepo) FindByGame(ctx context.Context, gameID, ownerID int64) (*entity.DownloadKey, error) {
	var (
		k       entity.DownloadKey
		created int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, game_id, owner_id, created_at
		FROM download_keys
		WHERE game_id = ? AND owner_id = ?
		ORDER BY created_at DESC
		LIMIT 1`, gameID, ownerID,
	).Scan(&k.ID, &k.GameID, &k.OwnerID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find download key for game %d: %w", gameID, err)
	}
	k.CreatedAt = fromMillis(created)
	return &k, nil
}
