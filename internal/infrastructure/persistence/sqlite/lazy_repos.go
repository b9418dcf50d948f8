// Package sqlite stores the local library (games, caves, download keys,
// accounts) in SQLite.
//
// # Lazy repositories
//
// The Lazy* wrappers implement the same repository interfaces as the eager
// ones but only open the database when first used. The desktop session
// wires these so that startup never waits on the database.
package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
)

type lazy[R any] struct {
	provider port.DatabaseProvider
	build    func(*sql.DB) R
	once     sync.Once
	repo     R
	err      error
}

func (l *lazy[R]) get(ctx context.Context) (R, error) {
	l.once.Do(func() {
		db, err := l.provider.DB(ctx)
		if err != nil {
			l.err = err
			return
		}
		l.repo = l.build(db)
	})
	return l.repo, l.err
}

// LazyGameRepository is a GameRepository opening the database on first use.
type LazyGameRepository struct{ l lazy[repository.GameRepository] }

// NewLazyGameRepository creates a lazy game repository.
func NewLazyGameRepository(provider port.DatabaseProvider) *LazyGameRepository {
	return &LazyGameRepository{l: lazy[repository.GameRepository]{provider: provider, build: NewGameRepository}}
}

func (r *LazyGameRepository) Save(ctx context.Context, game *entity.Game) error {
	repo, err := r.l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, game)
}

func (r *LazyGameRepository) FindByID(ctx context.Context, id int64) (*entity.Game, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (r *LazyGameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// LazyCaveRepository is a CaveRepository opening the database on first use.
type LazyCaveRepository struct{ l lazy[repository.CaveRepository] }

// NewLazyCaveRepository creates a lazy cave repository.
func NewLazyCaveRepository(provider port.DatabaseProvider) *LazyCaveRepository {
	return &LazyCaveRepository{l: lazy[repository.CaveRepository]{provider: provider, build: NewCaveRepository}}
}

func (r *LazyCaveRepository) Save(ctx context.Context, cave *entity.Cave) error {
	repo, err := r.l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, cave)
}

func (r *LazyCaveRepository) FindByID(ctx context.Context, id string) (*entity.Cave, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (r *LazyCaveRepository) ListByGame(ctx context.Context, gameID int64) ([]*entity.Cave, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.ListByGame(ctx, gameID)
}

func (r *LazyCaveRepository) List(ctx context.Context) ([]*entity.Cave, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (r *LazyCaveRepository) Delete(ctx context.Context, id string) error {
	repo, err := r.l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// LazyDownloadKeyRepository is a DownloadKeyRepository opening the
// database on first use.
type LazyDownloadKeyRepository struct{ l lazy[repository.DownloadKeyRepository] }

// NewLazyDownloadKeyRepository creates a lazy download key repository.
func NewLazyDownloadKeyRepository(provider port.DatabaseProvider) *LazyDownloadKeyRepository {
	return &LazyDownloadKeyRepository{l: lazy[repository.DownloadKeyRepository]{provider: provider, build: NewDownloadKeyRepository}}
}

func (r *LazyDownloadKeyRepository) Save(ctx context.Context, key *entity.DownloadKey) error {
	repo, err := r.l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, key)
}

func (r *LazyDownloadKeyRepository) FindByGame(ctx context.Context, gameID, ownerID int64) (*entity.DownloadKey, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByGame(ctx, gameID, ownerID)
}

// LazyAccountRepository is an AccountRepository opening the database on
// first use.
type LazyAccountRepository struct{ l lazy[repository.AccountRepository] }

// NewLazyAccountRepository creates a lazy account repository.
func NewLazyAccountRepository(provider port.DatabaseProvider) *LazyAccountRepository {
	return &LazyAccountRepository{l: lazy[repository.AccountRepository]{provider: provider, build: NewAccountRepository}}
}

func (r *LazyAccountRepository) Save(ctx context.Context, a *entity.Account) error {
	repo, err := r.l.get(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, a)
}

func (r *LazyAccountRepository) FindByID(ctx context.Context, userID int64) (*entity.Account, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, userID)
}

func (r *LazyAccountRepository) Latest(ctx context.Context) (*entity.Account, error) {
	repo, err := r.l.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Latest(ctx)
}

var (
	_ repository.GameRepository        = (*LazyGameRepository)(nil)
	_ repository.CaveRepository        = (*LazyCaveRepository)(nil)
	_ repository.DownloadKeyRepository = (*LazyDownloadKeyRepository)(nil)
	_ repository.AccountRepository     = (*LazyAccountRepository)(nil)
)
