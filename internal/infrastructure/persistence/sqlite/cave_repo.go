package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
)

const caveColumns = `id, game_id, upload_id, install_folder, seconds_run, last_touched_at, installed_at`

type caveRepo struct {
	db *sql.DB
}

// NewCaveRepository creates a SQLite-backed cave repository.
func NewCaveRepository(db *sql.DB) repository.CaveRepository {
	return &caveRepo{db: db}
}

func (r *caveRepo) Save(ctx context.Context, cave *entity.Cave) error {
	if cave == nil || cave.ID == "" {
		return errors.New("cave needs an id")
	}
	logging.FromContext(ctx).Debug().Str("cave_id", cave.ID).Int64("game_id", cave.GameID).Msg("saving cave")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO caves (`+caveColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			game_id = excluded.game_id,
			upload_id = excluded.upload_id,
			install_folder = excluded.install_folder,
			seconds_run = excluded.seconds_run,
			last_touched_at = excluded.last_touched_at,
			installed_at = excluded.installed_at`,
		cave.ID, cave.GameID, cave.UploadID, cave.InstallFolder, cave.SecondsRun,
		nullMillis(cave.LastTouchedAt), toMillis(cave.InstalledAt),
	)
	if err != nil {
		return fmt.Errorf("save cave %s: %w", cave.ID, err)
	}
	return nil
}

func (r *caveRepo) FindByID(ctx context.Context, id string) (*entity.Cave, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+caveColumns+` FROM caves WHERE id = ?`, id)
	cave, err := scanCave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cave %s: %w", id, err)
	}
	return cave, nil
}

func (r *caveRepo) ListByGame(ctx context.Context, gameID int64) ([]*entity.Cave, error) {
	return r.query(ctx, `SELECT `+caveColumns+` FROM caves WHERE game_id = ? ORDER BY installed_at`, gameID)
}

func (r *caveRepo) List(ctx context.Context) ([]*entity.Cave, error) {
	return r.query(ctx, `SELECT `+caveColumns+` FROM caves ORDER BY installed_at`)
}

func (r *caveRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM caves WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete cave %s: %w", id, err)
	}
	return nil
}

func (r *caveRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Cave, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list caves: %w", err)
	}
	defer rows.Close()

	caves := []*entity.Cave{}
	for rows.Next() {
		cave, err := scanCave(rows)
		if err != nil {
			return nil, fmt.Errorf("list caves: %w", err)
		}
		caves = append(caves, cave)
	}
	return caves, rows.Err()
}

func scanCave(s rowScanner) (*entity.Cave, error) {
	var (
		c           entity.Cave
		lastTouched sql.NullInt64
		installed   int64
	)
	if err := s.Scan(&c.ID, &c.GameID, &c.UploadID, &c.InstallFolder, &c.SecondsRun, &lastTouched, &installed); err != nil {
		return nil, err
	}
	c.LastTouchedAt = timePtr(lastTouched)
	c.InstalledAt = fromMillis(installed)
	return &c, nil
}
