package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
)

const gameColumns = `id, title, short_text, url, cover_url, still_cover_url, published_at, p_windows, p_linux, p_osx`

type gameRepo struct {
	db *sql.DB
}

// NewGameRepository creates a SQLite-backed game repository.
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepo{db: db}
}

func (r *gameRepo) Save(ctx context.Context, game *entity.Game) error {
	if game == nil {
		return errors.New("nil game")
	}
	logging.FromContext(ctx).Debug().Int64("game_id", game.ID).Str("title", game.Title).Msg("saving game")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games (`+gameColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			short_text = excluded.short_text,
			url = excluded.url,
			cover_url = excluded.cover_url,
			still_cover_url = excluded.still_cover_url,
			published_at = excluded.published_at,
			p_windows = excluded.p_windows,
			p_linux = excluded.p_linux,
			p_osx = excluded.p_osx,
			updated_at = excluded.updated_at`,
		game.ID, game.Title, game.ShortText, game.URL, game.CoverURL, game.StillCoverURL,
		nullMillis(game.PublishedAt),
		boolInt(game.Platforms.Windows), boolInt(game.Platforms.Linux), boolInt(game.Platforms.OSX),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save game %d: %w", game.ID, err)
	}
	return nil
}

func (r *gameRepo) FindByID(ctx context.Context, id int64) (*entity.Game, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game %d: %w", id, err)
	}
	return game, nil
}

func (r *gameRepo) List(ctx context.Context) ([]*entity.Game, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY title COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*entity.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanGame(s rowScanner) (*entity.Game, error) {
	var (
		g                   entity.Game
		published           sql.NullInt64
		windows, linux, osx int64
	)
	if err := s.Scan(&g.ID, &g.Title, &g.ShortText, &g.URL, &g.CoverURL, &g.StillCoverURL,
		&published, &windows, &linux, &osx); err != nil {
		return nil, err
	}
	g.PublishedAt = timePtr(published)
	g.Platforms = entity.Platforms{Windows: windows != 0, Linux: linux != 0, OSX: osx != 0}
	return &g, nil
}
