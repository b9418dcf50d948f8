package usecase_test

import (
	"errors"
	"testing"

	portmocks "github.com/bnema/gamedesk/internal/application/port/mocks"
	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	repomocks "github.com/bnema/gamedesk/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type manageGameHarness struct {
	caves      *repomocks.MockCaveRepository
	creds      *portmocks.MockCredentialsProvider
	uploads    *portmocks.MockUploadFinder
	dispatcher *portmocks.MockDispatcher
	dispatched []action.Action
	uc         *usecase.ManageGameUseCase
}

func newManageGameHarness(t *testing.T) *manageGameHarness {
	h := &manageGameHarness{
		caves:      repomocks.NewMockCaveRepository(t),
		creds:      portmocks.NewMockCredentialsProvider(t),
		uploads:    portmocks.NewMockUploadFinder(t),
		dispatcher: portmocks.NewMockDispatcher(t),
	}
	h.dispatcher.EXPECT().Dispatch(mock.Anything).Run(func(a action.Action) {
		h.dispatched = append(h.dispatched, a)
	})
	h.uc = usecase.NewManageGameUseCase(h.caves, h.creds, h.uploads, h.dispatcher)
	return h
}

func (h *manageGameHarness) openAndFinal(t *testing.T) (action.OpenModal, action.UpdateModalWidgetParams) {
	t.Helper()
	require.Len(t, h.dispatched, 2)
	open, ok := h.dispatched[0].(action.OpenModal)
	require.True(t, ok, "first action opens the modal")
	final, ok := h.dispatched[1].(action.UpdateModalWidgetParams)
	require.True(t, ok, "last action updates the widget params")
	return open, final
}

var celeste = &entity.Game{ID: 7, Title: "Celeste"}

func TestManageGameUseCase_FillsUploads(t *testing.T) {
	ctx := testContext()
	h := newManageGameHarness(t)

	caves := []*entity.Cave{{ID: "cave-1", GameID: 7}}
	uploads := []entity.Upload{{ID: 100, Filename: "celeste-linux.zip"}}
	creds := &entity.GameCredentials{APIKey: "secret", DownloadKey: 3}

	h.caves.EXPECT().ListByGame(mock.Anything, int64(7)).Return(caves, nil)
	h.creds.EXPECT().GameCredentials(mock.Anything, celeste).Return(creds, nil)
	h.uploads.EXPECT().FindUploads(mock.Anything, celeste, *creds).Return(uploads, nil)

	out, err := h.uc.Execute(ctx, usecase.ManageGameInput{Window: entity.RootWindow, Game: celeste})
	require.NoError(t, err)
	assert.Equal(t, uploads, out.Uploads)

	open, final := h.openAndFinal(t)
	assert.Equal(t, entity.RootWindow, open.Window)
	assert.NotEmpty(t, open.Modal.ID)
	assert.Equal(t, out.ModalID, open.Modal.ID)
	assert.Equal(t, usecase.ManageGameTitleKey, open.Modal.Title.Key)
	assert.Equal(t, "Celeste", open.Modal.Title.Values["title"])
	assert.Equal(t, usecase.ManageGameWidget, open.Modal.Widget)
	require.Len(t, open.Modal.Buttons, 1)
	assert.Equal(t, "close-modal", open.Modal.Buttons[0].Action)

	initial := open.Modal.WidgetParams.(entity.ManageGameParams)
	assert.True(t, initial.LoadingUploads)
	assert.Empty(t, initial.AllUploads)
	assert.NotNil(t, initial.AllUploads)
	assert.Equal(t, caves, initial.Caves)

	assert.Equal(t, open.Modal.ID, final.ID)
	params := final.WidgetParams.(entity.ManageGameParams)
	assert.False(t, params.LoadingUploads)
	assert.Equal(t, uploads, params.AllUploads)
	assert.Equal(t, caves, params.Caves)
}

func TestManageGameUseCase_MissingCredentialsStillFinishesLoading(t *testing.T) {
	ctx := testContext()
	h := newManageGameHarness(t)

	h.caves.EXPECT().ListByGame(mock.Anything, int64(7)).Return(nil, nil)
	h.creds.EXPECT().GameCredentials(mock.Anything, celeste).Return(nil, nil)

	out, err := h.uc.Execute(ctx, usecase.ManageGameInput{Window: entity.RootWindow, Game: celeste})
	require.ErrorIs(t, err, usecase.ErrNoCredentials)
	require.NotNil(t, out)

	_, final := h.openAndFinal(t)
	params := final.WidgetParams.(entity.ManageGameParams)
	assert.False(t, params.LoadingUploads)
	assert.Empty(t, params.AllUploads)
	assert.NotNil(t, params.Caves)
	h.uploads.AssertNotCalled(t, "FindUploads", mock.Anything, mock.Anything, mock.Anything)
}

func TestManageGameUseCase_CredentialsErrorIsWrapped(t *testing.T) {
	ctx := testContext()
	h := newManageGameHarness(t)
	boom := errors.New("db locked")

	h.caves.EXPECT().ListByGame(mock.Anything, int64(7)).Return(nil, nil)
	h.creds.EXPECT().GameCredentials(mock.Anything, celeste).Return(nil, boom)

	_, err := h.uc.Execute(ctx, usecase.ManageGameInput{Game: celeste})
	require.ErrorIs(t, err, boom)
	_, final := h.openAndFinal(t)
	assert.False(t, final.WidgetParams.(entity.ManageGameParams).LoadingUploads)
}

func TestManageGameUseCase_UploadFailureIsNotAnError(t *testing.T) {
	ctx := testContext()
	h := newManageGameHarness(t)

	h.caves.EXPECT().ListByGame(mock.Anything, int64(7)).Return(nil, errors.New("no table"))
	h.creds.EXPECT().GameCredentials(mock.Anything, celeste).Return(&entity.GameCredentials{APIKey: "k"}, nil)
	h.uploads.EXPECT().FindUploads(mock.Anything, celeste, entity.GameCredentials{APIKey: "k"}).
		Return(nil, errors.New("butler went away"))

	out, err := h.uc.Execute(ctx, usecase.ManageGameInput{Game: celeste})
	require.NoError(t, err)
	assert.Empty(t, out.Uploads)
	assert.Empty(t, out.Caves, "cave lookup failure leaves the list empty")

	_, final := h.openAndFinal(t)
	params := final.WidgetParams.(entity.ManageGameParams)
	assert.False(t, params.LoadingUploads)
	assert.NotNil(t, params.AllUploads)
}

func TestManageGameUseCase_NilGame(t *testing.T) {
	uc := usecase.NewManageGameUseCase(
		repomocks.NewMockCaveRepository(t),
		portmocks.NewMockCredentialsProvider(t),
		portmocks.NewMockUploadFinder(t),
		portmocks.NewMockDispatcher(t),
	)
	_, err := uc.Execute(testContext(), usecase.ManageGameInput{})
	assert.Error(t, err)
}
