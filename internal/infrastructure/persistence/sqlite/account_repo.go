package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
)

type accountRepo struct {
	db *sql.DB
}

// NewAccountRepository creates a SQLite-backed account repository.
func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Save(ctx context.Context, a *entity.Account) error {
	if a == nil || a.UserID == 0 {
		return errors.New("account needs a user id")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, username, api_key, last_connected_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			api_key = excluded.api_key,
			last_connected_at = excluded.last_connected_at`,
		a.UserID, a.Username, a.APIKey, toMillis(a.LastConnectedAt),
	)
	if err != nil {
		return fmt.Errorf("save account %d: %w", a.UserID, err)
	}
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, userID int64) (*entity.Account, error) {
	return r.one(ctx, `SELECT user_id, username, api_key, last_connected_at FROM accounts WHERE user_id = ?`, userID)
}

func (r *accountRepo) Latest(ctx context.Context) (*entity.Account, error) {
	return r.one(ctx, `SELECT user_id, username, api_key, last_connected_at FROM accounts ORDER BY last_connected_at DESC LIMIT 1`)
}

func (r *accountRepo) one(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	var (
		a         entity.Account
		connected int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.UserID, &a.Username, &a.APIKey, &connected)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	a.LastConnectedAt = fromMillis(connected)
	return &a, nil
}
