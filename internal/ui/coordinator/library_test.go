package coordinator

import (
	"context"
	"testing"

	"github.com/bnema/gamedesk/internal/app/store"
	portmocks "github.com/bnema/gamedesk/internal/application/port/mocks"
	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	repomocks "github.com/bnema/gamedesk/internal/domain/repository/mocks"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type libraryHarness struct {
	loop    *mainloop.Loop
	st      *store.Store
	caves   *repomocks.MockCaveRepository
	creds   *portmocks.MockCredentialsProvider
	uploads *portmocks.MockUploadFinder
}

func newLibraryHarness(t *testing.T) *libraryHarness {
	t.Helper()
	loop := mainloop.New()
	watcher := store.NewWatcher()
	st := store.New(context.Background(), loop, watcher)

	h := &libraryHarness{
		loop:    loop,
		st:      st,
		caves:   repomocks.NewMockCaveRepository(t),
		creds:   portmocks.NewMockCredentialsProvider(t),
		uploads: portmocks.NewMockUploadFinder(t),
	}
	uc := usecase.NewManageGameUseCase(h.caves, h.creds, h.uploads, st)
	NewLibraryCoordinator(uc, loop).Register(watcher)

	st.Dispatch(action.WindowOpened{Window: testWindow, NativeID: nativeID})
	loop.Flush()
	return h
}

func TestLibraryCoordinator_ManageGameFillsModal(t *testing.T) {
	h := newLibraryHarness(t)
	game := &entity.Game{ID: 3, Title: "Overland"}
	creds := &entity.GameCredentials{APIKey: "k"}
	uploads := []entity.Upload{{ID: 11, Filename: "overland.exe"}}

	h.caves.EXPECT().ListByGame(mock.Anything, int64(3)).Return(nil, nil)
	h.creds.EXPECT().GameCredentials(mock.Anything, game).Return(creds, nil)
	h.uploads.EXPECT().FindUploads(mock.Anything, game, *creds).Return(uploads, nil)

	h.st.Dispatch(action.ManageGame{Window: testWindow, Game: game})
	h.loop.Flush()

	w, ok := h.st.Window(testWindow)
	require.True(t, ok)
	require.Len(t, w.Modals, 1)
	modal := w.Modals[0]
	assert.Equal(t, usecase.ManageGameWidget, modal.Widget)

	params, ok := modal.WidgetParams.(entity.ManageGameParams)
	require.True(t, ok)
	assert.False(t, params.LoadingUploads)
	assert.Equal(t, uploads, params.AllUploads)
}

func TestLibraryCoordinator_MissingCredentialsLeavesModalIdle(t *testing.T) {
	h := newLibraryHarness(t)
	game := &entity.Game{ID: 3, Title: "Overland"}

	h.caves.EXPECT().ListByGame(mock.Anything, int64(3)).Return(nil, nil)
	h.creds.EXPECT().GameCredentials(mock.Anything, game).Return(nil, nil)

	h.st.Dispatch(action.ManageGame{Window: testWindow, Game: game})
	h.loop.Flush()

	w, _ := h.st.Window(testWindow)
	require.Len(t, w.Modals, 1)
	params := w.Modals[0].WidgetParams.(entity.ManageGameParams)
	assert.False(t, params.LoadingUploads)
	assert.Empty(t, params.AllUploads)
}

func TestLibraryCoordinator_IgnoresNilGame(t *testing.T) {
	h := newLibraryHarness(t)

	h.st.Dispatch(action.ManageGame{Window: testWindow})
	h.loop.Flush()

	w, _ := h.st.Window(testWindow)
	assert.Empty(t, w.Modals)
}
