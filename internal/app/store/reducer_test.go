package store

import (
	"testing"

	"github.com/bnema/gamedesk/internal/domain/action"
	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededState() *entity.State {
	st := entity.NewState()
	Reduce(st, action.WindowOpened{Window: entity.RootWindow, NativeID: 1})
	Reduce(st, action.TabOpened{Window: entity.RootWindow, Tab: "t1", URL: "https://itch.io"})
	return st
}

func TestReduce_TabParamsChangedMerges(t *testing.T) {
	st := entity.NewState()

	Reduce(st, action.TabParamsChanged{Tab: "library", Params: entity.TabParams{"sortBy": "title"}})
	Reduce(st, action.TabParamsChanged{Tab: "library", Params: entity.TabParams{"sortDirection": "DESC"}})
	Reduce(st, action.TabParamsChanged{Tab: "library", Params: entity.TabParams{"sortBy": "lastTouchedAt"}})

	assert.Equal(t, entity.TabParams{"sortBy": "lastTouchedAt", "sortDirection": "DESC"}, st.TabParams["library"])
	assert.NotContains(t, st.TabParams, entity.TabID("other"))
}

func TestReduce_NavigateOpensTab(t *testing.T) {
	st := seededState()

	Reduce(st, action.Navigate{Window: entity.RootWindow, Tab: "bg", URL: "https://a.itch.io", Background: true})
	w := st.Window(entity.RootWindow)
	require.NotNil(t, w.Tab("bg"))
	assert.Equal(t, entity.TabID("t1"), w.ActiveTab)

	Reduce(st, action.Navigate{Window: entity.RootWindow, Tab: "fg", URL: "https://b.itch.io"})
	assert.Equal(t, entity.TabID("fg"), w.ActiveTab)
	assert.Equal(t, "https://b.itch.io", w.Tab("fg").URL())
}

func TestReduce_TabDataFetchedAndLifecycle(t *testing.T) {
	st := seededState()

	Reduce(st, action.TabDataFetched{Window: entity.RootWindow, Tab: "t1", Data: action.WebSurface(5, true)})
	Reduce(st, action.TabDataFetched{Window: entity.RootWindow, Tab: "t1", Data: action.Label("itch.io")})
	tab := st.Tab(entity.RootWindow, "t1")
	assert.Equal(t, entity.SurfaceID(5), tab.SurfaceID())
	assert.True(t, tab.Data.Web.Loading)
	assert.Equal(t, "itch.io", tab.Data.Label)

	Reduce(st, action.TabLosingWebContents{Window: entity.RootWindow, Tab: "t1"})
	assert.True(t, tab.Detaching)
	assert.Equal(t, entity.SurfaceID(5), tab.SurfaceID(), "id kept until the surface is gone")

	Reduce(st, action.TabLostWebContents{Window: entity.RootWindow, Tab: "t1"})
	assert.False(t, tab.Detaching)
	assert.False(t, tab.HasSurface())
	assert.False(t, tab.Data.Web.Loading)
}

func TestReduce_Modals(t *testing.T) {
	st := seededState()
	w := st.Window(entity.RootWindow)

	Reduce(st, action.OpenModal{Window: entity.RootWindow, Modal: entity.Modal{ID: "a"}})
	Reduce(st, action.OpenModal{Window: entity.RootWindow, Modal: entity.Modal{ID: "b"}})
	Reduce(st, action.UpdateModalWidgetParams{ID: "a", WidgetParams: "params"})
	assert.Equal(t, "params", w.Modal("a").WidgetParams)

	Reduce(st, action.CloseModal{Window: entity.RootWindow})
	require.Len(t, w.Modals, 1)
	assert.Equal(t, "a", w.Modals[0].ID)

	Reduce(st, action.CloseModal{Window: entity.RootWindow, ID: "a"})
	assert.False(t, w.HasModals())

	Reduce(st, action.CloseModal{Window: entity.RootWindow})
	assert.False(t, w.HasModals())
}

func TestReduce_ContextMenuAndFullscreen(t *testing.T) {
	st := seededState()
	w := st.Window(entity.RootWindow)

	Reduce(st, action.PopupContextMenu{Window: entity.RootWindow, X: 3, Y: 4})
	assert.True(t, w.ContextMenu.Open)
	assert.Equal(t, 3, w.ContextMenu.X)

	Reduce(st, action.CloseContextMenu{Window: entity.RootWindow})
	assert.False(t, w.ContextMenu.Open)

	Reduce(st, action.WindHTMLFullscreenChanged{Window: entity.RootWindow, HTMLFullscreen: true})
	assert.True(t, w.HTMLFullscreen)
}

func TestReduce_EvolveTab(t *testing.T) {
	st := seededState()

	Reduce(st, action.EvolveTab{Window: entity.RootWindow, Tab: "t1", URL: "https://itch.io/c/3", Resource: "collections/3"})
	tab := st.Tab(entity.RootWindow, "t1")
	assert.Equal(t, "collections/3", tab.Resource())
	assert.Len(t, tab.History, 2)

	Reduce(st, action.EvolveTab{Window: "nope", Tab: "t1", URL: "x"})
	assert.Equal(t, "https://itch.io/c/3", tab.URL())
}

func TestReduce_UnknownWindowIsIgnored(t *testing.T) {
	st := entity.NewState()
	Reduce(st, action.TabOpened{Window: "ghost", Tab: "t"})
	Reduce(st, action.OpenModal{Window: "ghost"})
	Reduce(st, action.PopupContextMenu{Window: "ghost"})
	assert.Empty(t, st.Windows)
}
