package headless

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_CreateAttachDestroy(t *testing.T) {
	e := New()
	w := e.OpenWindow(1, entity.Bounds{Width: 800, Height: 600})

	s, err := e.CreateSurface(context.Background(), port.SurfaceOptions{Partition: "persist:itchio-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.SurfaceID(1), s.ID())

	w.SetSurface(s)
	assert.Equal(t, s, w.Surface())

	got, ok := e.Surface(s.ID())
	require.True(t, ok)
	assert.Equal(t, s, got)

	s.Destroy()
	assert.True(t, s.IsDestroyed())
	assert.Nil(t, w.Surface(), "destroy detaches from its window")
	_, ok = e.Surface(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, e.LiveSurfaces())
}

func TestWindow_SurfaceNilWhenDetached(t *testing.T) {
	w := New().OpenWindow(1, entity.Bounds{})
	assert.Nil(t, w.Surface())
	w.SetSurface(nil)
	assert.Nil(t, w.Surface())
}

func TestSurface_CompleteLoadEmitsSequence(t *testing.T) {
	e := New()
	ps, err := e.CreateSurface(context.Background(), port.SurfaceOptions{})
	require.NoError(t, err)
	s := ps.(*Surface)

	var seen []string
	event.On(s.Events(), func(event.LoadStarted) { seen = append(seen, "start") })
	event.On(s.Events(), func(ev event.NavigationCommitted) { seen = append(seen, "commit "+ev.URL) })
	event.On(s.Events(), func(event.LoadFinished) { seen = append(seen, "finish") })
	event.On(s.Events(), func(event.LoadStopped) { seen = append(seen, "stop") })

	require.NoError(t, s.LoadURL(context.Background(), "https://itch.io"))
	assert.True(t, s.IsLoading())
	assert.Empty(t, seen, "loads stay pending without a delay")

	s.CompleteLoad("https://itch.io", false)
	assert.Equal(t, []string{"start", "commit https://itch.io", "finish", "stop"}, seen)
	assert.False(t, s.IsLoading())
}

func TestSurface_LoadDelayCompletesOnItsOwn(t *testing.T) {
	e := New(WithLoadDelay(5 * time.Millisecond))
	ps, err := e.CreateSurface(context.Background(), port.SurfaceOptions{})
	require.NoError(t, err)

	done := make(chan struct{})
	event.Once(ps.Events(), func(event.LoadFinished) { close(done) })
	require.NoError(t, ps.LoadURL(context.Background(), "https://itch.io"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load never finished")
	}
}

func TestSurface_ScriptsAndDestroyedErrors(t *testing.T) {
	e := New()
	ps, err := e.CreateSurface(context.Background(), port.SurfaceOptions{})
	require.NoError(t, err)
	s := ps.(*Surface)

	s.SetScriptResult("1+1", float64(2))
	v, err := s.ExecuteJavaScript(context.Background(), "1+1")
	require.NoError(t, err)
	assert.Equal(t, float64(2), v)
	assert.Equal(t, []string{"1+1"}, s.Scripts())

	s.Destroy()
	_, err = s.ExecuteJavaScript(context.Background(), "1+1")
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.ErrorIs(t, s.LoadURL(context.Background(), "x"), ErrDestroyed)
}
