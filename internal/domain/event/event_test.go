package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_OnDeliversTypedEvents(t *testing.T) {
	src := NewSource()

	var titles []string
	On(src, func(ev TitleUpdated) { titles = append(titles, ev.Title) })
	loads := 0
	On(src, func(LoadStarted) { loads++ })

	src.Emit(TitleUpdated{Title: "a"})
	src.Emit(LoadStarted{})
	src.Emit(TitleUpdated{Title: "b"})
	src.Emit(LoadStopped{})

	assert.Equal(t, []string{"a", "b"}, titles)
	assert.Equal(t, 1, loads)
}

func TestSource_OnceFiresOnlyOnce(t *testing.T) {
	src := NewSource()

	once, every := 0, 0
	Once(src, func(LoadFinished) { once++ })
	On(src, func(LoadFinished) { every++ })

	src.Emit(LoadFinished{})
	src.Emit(LoadFinished{})

	assert.Equal(t, 1, once)
	assert.Equal(t, 2, every)
	assert.Equal(t, 1, src.Len())
}

func TestSource_Unsubscribe(t *testing.T) {
	src := NewSource()

	calls := 0
	unsub := On(src, func(LoadStarted) { calls++ })
	src.Emit(LoadStarted{})
	unsub()
	src.Emit(LoadStarted{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, src.Len())
}

func TestSource_CloseDropsHandlers(t *testing.T) {
	src := NewSource()

	calls := 0
	On(src, func(LoadStarted) { calls++ })
	src.Close()
	src.Emit(LoadStarted{})
	On(src, func(LoadStarted) { calls++ })
	src.Emit(LoadStarted{})

	assert.Equal(t, 0, calls)
	assert.True(t, src.Closed())
	assert.Equal(t, 0, src.Len())
}

func TestSource_HandlerMaySubscribeDuringEmit(t *testing.T) {
	src := NewSource()

	nested := 0
	Once(src, func(LoadFinished) {
		On(src, func(LoadFinished) { nested++ })
	})

	src.Emit(LoadFinished{})
	src.Emit(LoadFinished{})

	assert.Equal(t, 1, nested)
}
