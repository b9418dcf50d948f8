package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabInstance_EvolvePushesAndTruncatesForward(t *testing.T) {
	tab := NewTabInstance("t1", "https://itch.io", "")
	tab.Evolve("https://itch.io/c/1", "collections/1", false)
	tab.Evolve("https://itch.io/c/2", "collections/2", false)
	require.Len(t, tab.History, 3)
	assert.Equal(t, 2, tab.CurrentIndex)

	tab.CurrentIndex = 0
	tab.Evolve("https://itch.io/games", "", false)
	require.Len(t, tab.History, 2)
	assert.Equal(t, "https://itch.io/games", tab.URL())
	assert.Equal(t, 1, tab.CurrentIndex)
}

func TestTabInstance_EvolveReplace(t *testing.T) {
	tab := NewTabInstance("t1", "https://itch.io/c/1", "")
	tab.Evolve("https://itch.io/c/1", "collections/1", true)
	require.Len(t, tab.History, 1)
	assert.Equal(t, "collections/1", tab.Resource())

	tab.Evolve("https://a.itch.io/a", "", false)
	tab.Evolve("https://a.itch.io/a?x=1", "", true)
	require.Len(t, tab.History, 2)
	assert.Equal(t, "https://a.itch.io/a?x=1", tab.URL())
}

func TestTabInstance_EvolveSameURLRefreshesResource(t *testing.T) {
	tab := NewTabInstance("t1", "https://itch.io/c/9", "")
	tab.Evolve("https://itch.io/c/9", "collections/9", false)
	require.Len(t, tab.History, 1)
	assert.Equal(t, "collections/9", tab.Resource())
}

func TestTabInstance_ApplyDataCreatesWeb(t *testing.T) {
	tab := NewTabInstance("t1", "about:blank", "")
	assert.False(t, tab.HasSurface())

	id := SurfaceID(7)
	loading := true
	tab.ApplyData(TabDataPatch{Web: &WebPatch{WebContentsID: &id, Loading: &loading}})
	require.NotNil(t, tab.Data.Web)
	assert.Equal(t, SurfaceID(7), tab.SurfaceID())
	assert.True(t, tab.Data.Web.Loading)

	favicon := "https://itch.io/favicon.ico"
	tab.ApplyData(TabDataPatch{Web: &WebPatch{Favicon: &favicon}})
	assert.Equal(t, SurfaceID(7), tab.SurfaceID(), "partial patch keeps other fields")
	assert.Equal(t, favicon, tab.Data.Web.Favicon)
}

func TestTabWeb_CommittedBuildsHistory(t *testing.T) {
	var web TabWeb
	web.Apply(WebPatch{Committed: &Committed{URL: "https://itch.io/games"}})
	web.Apply(WebPatch{Committed: &Committed{URL: "https://itch.io/c/1"}})
	web.Apply(WebPatch{Committed: &Committed{URL: "https://itch.io/c/1/jams", Replace: true}})
	assert.Equal(t, []string{"https://itch.io/games", "https://itch.io/c/1/jams"}, web.History)

	var fresh TabWeb
	fresh.Apply(WebPatch{Committed: &Committed{URL: "https://itch.io", Replace: true}})
	assert.Equal(t, []string{"https://itch.io"}, fresh.History, "replace on empty history pushes")
}

func TestState_CloneIsDeep(t *testing.T) {
	s := NewState()
	w := NewWindow(RootWindow, 1)
	w.AddTab(NewTabInstance("t1", "https://itch.io", ""), true)
	w.Tabs["t1"].Data.Web = &TabWeb{WebContentsID: 3}
	s.Windows[RootWindow] = w
	s.TabParams["t1"] = TabParams{"sortBy": "title"}

	c := s.Clone()
	c.Windows[RootWindow].Tabs["t1"].Data.Web.WebContentsID = 9
	c.Windows[RootWindow].Modals = append(c.Windows[RootWindow].Modals, Modal{ID: "m"})
	c.TabParams["t1"]["sortBy"] = "publishedAt"

	assert.Equal(t, SurfaceID(3), s.Tab(RootWindow, "t1").SurfaceID())
	assert.False(t, s.Window(RootWindow).HasModals())
	assert.Equal(t, "title", s.TabParams["t1"]["sortBy"])
}

func TestWindow_AddTabFocus(t *testing.T) {
	w := NewWindow(RootWindow, 1)
	w.AddTab(NewTabInstance("a", "u", ""), false)
	assert.Equal(t, TabID("a"), w.ActiveTab, "first tab is focused")

	w.AddTab(NewTabInstance("b", "u", ""), false)
	assert.Equal(t, TabID("a"), w.ActiveTab)

	w.AddTab(NewTabInstance("c", "u", ""), true)
	assert.Equal(t, TabID("c"), w.ActiveTab)
	assert.Equal(t, []TabID{"a", "b", "c"}, w.TabOrder)
}

func TestPartitionForUser(t *testing.T) {
	assert.Equal(t, "persist:itchio-42", PartitionForUser(42))
}

func TestPlatformsSupports(t *testing.T) {
	p := Platforms{Linux: true}
	assert.True(t, p.Supports("linux"))
	assert.False(t, p.Supports("windows"))
	assert.False(t, p.Supports("plan9"))
}
