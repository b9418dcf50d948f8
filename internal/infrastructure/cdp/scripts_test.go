package cdp

import (
	"testing"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/event"
	"github.com/chromedp/cdproto/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContextMenu(t *testing.T) {
	ev, err := parseContextMenu(`{"x":12.6,"y":40,"linkURL":"https://itch.io/game"}`)
	require.NoError(t, err)
	assert.Equal(t, event.ContextMenuRequested{X: 12, Y: 40, LinkURL: "https://itch.io/game"}, ev)

	_, err = parseContextMenu(`not json`)
	assert.Error(t, err)
}

func TestDispositionFor(t *testing.T) {
	assert.Equal(t, entity.DispositionForegroundTab, dispositionFor(nil))
	assert.Equal(t, entity.DispositionForegroundTab, dispositionFor([]string{"noopener"}))
	assert.Equal(t, entity.DispositionNewWindow, dispositionFor([]string{"popup"}))
}

func TestParseOpenLink(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    entity.WindowDisposition
	}{
		{"middle or ctrl click", `{"url":"https://itch.io/games","background":true}`, entity.DispositionBackgroundTab},
		{"shift click", `{"url":"https://itch.io/games","window":true}`, entity.DispositionNewWindow},
		{"plain", `{"url":"https://itch.io/games"}`, entity.DispositionForegroundTab},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := parseOpenLink(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, "https://itch.io/games", ev.URL)
			assert.Equal(t, tt.want, ev.Disposition)
		})
	}

	_, err := parseOpenLink(`{`)
	assert.Error(t, err)
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringSlice([]any{"a", 3.0, "", "b"}))
	assert.Nil(t, stringSlice("nope"))
}

func TestDecodeResult(t *testing.T) {
	v, err := decodeResult(&runtime.RemoteObject{Type: runtime.TypeUndefined})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = decodeResult(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = decodeResult(&runtime.RemoteObject{Type: runtime.TypeString, Value: []byte(`"games/42"`)})
	require.NoError(t, err)
	assert.Equal(t, "games/42", v)
}

func TestConfigAllocatorOptions(t *testing.T) {
	base := len(Config{}.allocatorOptions())
	full := len(Config{ExecPath: "/usr/bin/chromium", UserDataDir: "/tmp/p", Width: 800, Height: 600}.allocatorOptions())
	assert.Equal(t, base+3, full)
}
