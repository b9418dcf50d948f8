package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	portmocks "github.com/bnema/gamedesk/internal/application/port/mocks"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	game    = &entity.Game{ID: 7, Title: "Celeste"}
	creds   = entity.GameCredentials{APIKey: "k"}
	uploads = []entity.Upload{{ID: 1, Filename: "celeste.zip"}}
)

func TestUploadFinder_CachesPerGameAndCredentials(t *testing.T) {
	ctx := context.Background()
	next := portmocks.NewMockUploadFinder(t)
	next.EXPECT().FindUploads(mock.Anything, game, creds).Return(uploads, nil).Once()
	other := entity.GameCredentials{APIKey: "k", DownloadKey: 9}
	next.EXPECT().FindUploads(mock.Anything, game, other).Return(nil, nil).Once()

	f := cache.NewUploadFinder(next, cache.DefaultUploadEntries, time.Hour)

	for range 3 {
		got, err := f.FindUploads(ctx, game, creds)
		require.NoError(t, err)
		assert.Equal(t, uploads, got)
	}

	got, err := f.FindUploads(ctx, game, other)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUploadFinder_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := portmocks.NewMockUploadFinder(t)
	next.EXPECT().FindUploads(mock.Anything, game, creds).Return(nil, errors.New("offline")).Once()
	next.EXPECT().FindUploads(mock.Anything, game, creds).Return(uploads, nil).Once()

	f := cache.NewUploadFinder(next, 4, time.Hour)

	_, err := f.FindUploads(ctx, game, creds)
	require.Error(t, err)

	got, err := f.FindUploads(ctx, game, creds)
	require.NoError(t, err)
	assert.Equal(t, uploads, got)
}

func TestUploadFinder_CollapsesConcurrentLookups(t *testing.T) {
	ctx := context.Background()
	next := portmocks.NewMockUploadFinder(t)
	release := make(chan struct{})
	var calls atomic.Int32
	next.EXPECT().FindUploads(mock.Anything, game, creds).
		RunAndReturn(func(context.Context, *entity.Game, entity.GameCredentials) ([]entity.Upload, error) {
			calls.Add(1)
			<-release
			return uploads, nil
		})

	f := cache.NewUploadFinder(next, 4, time.Hour)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.FindUploads(ctx, game, creds)
			assert.NoError(t, err)
			assert.Equal(t, uploads, got)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
