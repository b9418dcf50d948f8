package store

import (
	"context"
	"testing"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/ui/mainloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReducesBeforeReacting(t *testing.T) {
	w := NewWatcher()
	var modalsSeen int
	On(w, func(_ context.Context, st *Store, a action.OpenModal) {
		win, ok := st.Window(a.Window)
		require.True(t, ok)
		modalsSeen = len(win.Modals)
	})

	loop := mainloop.New()
	st := New(context.Background(), loop, w)
	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: 1})
	st.Dispatch(action.NewOpenModal(entity.RootWindow, entity.Modal{}))
	loop.Flush()

	assert.Equal(t, 1, modalsSeen)
}

func TestStore_CloseModalEmitsModalClosed(t *testing.T) {
	w := NewWatcher()
	var closed []action.ModalClosed
	On(w, func(_ context.Context, _ *Store, a action.ModalClosed) {
		closed = append(closed, a)
	})

	loop := mainloop.New()
	st := New(context.Background(), loop, w)
	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: 1})
	st.Dispatch(action.OpenModal{Window: entity.RootWindow, Modal: entity.Modal{ID: "m1"}})
	st.Dispatch(action.CloseModal{Window: entity.RootWindow, ID: "m1"})
	loop.Flush()

	require.Len(t, closed, 1)
	assert.Equal(t, "m1", closed[0].ID)
	win, _ := st.Window(entity.RootWindow)
	assert.False(t, win.HasModals())
}

func TestStore_PanickingReactorDoesNotStopOthers(t *testing.T) {
	w := NewWatcher()
	ran := false
	On(w, func(context.Context, *Store, action.CommandStop) { panic("boom") })
	On(w, func(context.Context, *Store, action.CommandStop) { ran = true })

	loop := mainloop.New()
	st := New(context.Background(), loop, w)
	st.Dispatch(action.CommandStop{Window: entity.RootWindow})
	loop.Flush()

	assert.True(t, ran)
	assert.Equal(t, 2, Handles[action.CommandStop](w))
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	loop := mainloop.New()
	st := New(context.Background(), loop, nil)
	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: 1})
	st.Dispatch(action.ProfileLoggedIn{UserID: 7})
	loop.Flush()

	snap := st.Snapshot()
	snap.Windows[entity.RootWindow].HTMLFullscreen = true

	win, ok := st.Window(entity.RootWindow)
	require.True(t, ok)
	assert.False(t, win.HTMLFullscreen)
	assert.Equal(t, int64(7), st.UserID())

	_, ok = st.Tab(entity.RootWindow, "missing")
	assert.False(t, ok)
}

func TestStore_ObserversSeeEveryAction(t *testing.T) {
	loop := mainloop.New()
	st := New(context.Background(), loop, nil)
	var names []string
	st.Observe(func(a action.Action) { names = append(names, a.Name()) })

	st.Dispatch(action.WindowOpened{Window: entity.RootWindow, NativeID: 1})
	st.Dispatch(action.CloseModal{Window: entity.RootWindow})
	loop.Flush()

	assert.Equal(t, []string{"window-opened", "close-modal", "modal-closed"}, names)
}
