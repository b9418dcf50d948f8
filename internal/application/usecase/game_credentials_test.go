package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/domain/entity"
	repomocks "github.com/bnema/gamedesk/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGameCredentialsResolver_UsesLoggedInUser(t *testing.T) {
	ctx := testContext()
	accounts := repomocks.NewMockAccountRepository(t)
	keys := repomocks.NewMockDownloadKeyRepository(t)

	accounts.EXPECT().FindByID(mock.Anything, int64(42)).Return(&entity.Account{UserID: 42, APIKey: "key-42"}, nil)
	keys.EXPECT().FindByGame(mock.Anything, int64(7), int64(42)).Return(&entity.DownloadKey{ID: 900, GameID: 7, OwnerID: 42}, nil)

	r := usecase.NewGameCredentialsResolver(accounts, keys, func() int64 { return 42 })
	creds, err := r.GameCredentials(ctx, celeste)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, entity.GameCredentials{APIKey: "key-42", DownloadKey: 900}, *creds)
}

func TestGameCredentialsResolver_FallsBackToLatestAccount(t *testing.T) {
	ctx := testContext()
	accounts := repomocks.NewMockAccountRepository(t)
	keys := repomocks.NewMockDownloadKeyRepository(t)

	accounts.EXPECT().Latest(mock.Anything).Return(&entity.Account{UserID: 5, APIKey: "key-5"}, nil)
	keys.EXPECT().FindByGame(mock.Anything, int64(7), int64(5)).Return(nil, nil)

	r := usecase.NewGameCredentialsResolver(accounts, keys, nil)
	creds, err := r.GameCredentials(ctx, celeste)
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "key-5", creds.APIKey)
	assert.Zero(t, creds.DownloadKey)
}

func TestGameCredentialsResolver_NoAccount(t *testing.T) {
	ctx := testContext()
	accounts := repomocks.NewMockAccountRepository(t)
	keys := repomocks.NewMockDownloadKeyRepository(t)

	accounts.EXPECT().FindByID(mock.Anything, int64(42)).Return(nil, nil)
	accounts.EXPECT().Latest(mock.Anything).Return(nil, nil)

	r := usecase.NewGameCredentialsResolver(accounts, keys, func() int64 { return 42 })
	creds, err := r.GameCredentials(ctx, celeste)
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestGameCredentialsResolver_KeyLookupFailureKeepsAPIKey(t *testing.T) {
	ctx := testContext()
	accounts := repomocks.NewMockAccountRepository(t)
	keys := repomocks.NewMockDownloadKeyRepository(t)

	accounts.EXPECT().Latest(mock.Anything).Return(&entity.Account{UserID: 5, APIKey: "key-5"}, nil)
	keys.EXPECT().FindByGame(mock.Anything, int64(7), int64(5)).Return(nil, errors.New("locked"))

	r := usecase.NewGameCredentialsResolver(accounts, keys, nil)
	creds, err := r.GameCredentials(ctx, celeste)
	require.NoError(t, err)
	assert.Equal(t, "key-5", creds.APIKey)
}

func TestGameCredentialsResolver_AccountErrorPropagates(t *testing.T) {
	ctx := testContext()
	accounts := repomocks.NewMockAccountRepository(t)
	keys := repomocks.NewMockDownloadKeyRepository(t)
	boom := errors.New("boom")

	accounts.EXPECT().Latest(mock.Anything).Return(nil, boom)

	r := usecase.NewGameCredentialsResolver(accounts, keys, nil)
	_, err := r.GameCredentials(ctx, celeste)
	assert.ErrorIs(t, err, boom)
}
