// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/gamedesk/internal/domain/entity"
)

// GameRepository stores games seen by the client.
type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	FindByID(ctx context.Context, id int64) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
}

// CaveRepository stores local installations.
type CaveRepository interface {
	Save(ctx context.Context, cave *entity.Cave) error
	FindByID(ctx context.Context, id string) (*entity.Cave, error)
	ListByGame(ctx context.Context, gameID int64) ([]*entity.Cave, error)
	List(ctx context.Context) ([]*entity.Cave, error)
	Delete(ctx context.Context, id string) error
}

// DownloadKeyRepository stores download keys owned by users.
type DownloadKeyRepository interface {
	Save(ctx context.Context, key *entity.DownloadKey) error
	FindByGame(ctx context.Context, gameID, ownerID int64) (*entity.DownloadKey, error)
}

// AccountRepository stores the accounts logged in on this machine.
type AccountRepository interface {
	Save(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, userID int64) (*entity.Account, error)
	// Latest returns the most recently connected account, or nil.
	Latest(ctx context.Context) (*entity.Account, error)
}
