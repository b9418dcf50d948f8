package butler

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverRequest struct {
	ID     *int64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// handlerFunc answers one request; returning nil result and nil error
// sends no response at all.
type handlerFunc func(conn net.Conn, req serverRequest) (result any, rpcErr *RPCError)

// fakeButler is an in-process JSON-RPC websocket server.
type fakeButler struct {
	srv *httptest.Server

	mu      sync.Mutex
	methods []string
	conns   []net.Conn
}

func newFakeButler(t *testing.T, handle handlerFunc) *fakeButler {
	t.Helper()
	fb := &fakeButler{}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			return
		}
		fb.mu.Lock()
		fb.conns = append(fb.conns, conn)
		fb.mu.Unlock()

		go func() {
			defer conn.Close()
			for {
				data, err := wsutil.ReadClientText(conn)
				if err != nil {
					return
				}
				var req serverRequest
				if json.Unmarshal(data, &req) != nil {
					continue
				}
				fb.mu.Lock()
				fb.methods = append(fb.methods, req.Method)
				fb.mu.Unlock()

				if req.ID == nil {
					continue
				}
				result, rpcErr := handle(conn, req)
				if result == nil && rpcErr == nil {
					continue
				}
				resp := map[string]any{"jsonrpc": "2.0", "id": *req.ID}
				if rpcErr != nil {
					resp["error"] = rpcErr
				} else {
					resp["result"] = result
				}
				out, _ := json.Marshal(resp)
				_ = wsutil.WriteServerText(conn, out)
			}
		}()
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeButler) url() string {
	return "ws" + strings.TrimPrefix(fb.srv.URL, "http")
}

func (fb *fakeButler) seen() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.methods...)
}

func dial(t *testing.T, fb *fakeButler, secret string) *Client {
	t.Helper()
	c, err := Dial(context.Background(), Config{Address: fb.url(), Secret: secret, Timeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_FindUploads(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, req serverRequest) (any, *RPCError) {
		if req.Method != MethodFindUploads {
			return nil, &RPCError{Code: CodeMethodNotFound, Message: "nope"}
		}
		var p findUploadsParams
		if err := json.Unmarshal(req.Params, &p); err != nil || p.Credentials.APIKey != "key" {
			return nil, &RPCError{Code: CodeInternalError, Message: "bad params"}
		}
		return findUploadsResult{Uploads: []entity.Upload{
			{ID: 1, Filename: "game-linux.zip", Platforms: entity.Platforms{Linux: true}},
			{ID: 2, Filename: "game-win.zip", Platforms: entity.Platforms{Windows: true}},
		}}, nil
	})
	c := dial(t, fb, "")

	uploads, err := c.FindUploads(context.Background(), &entity.Game{ID: 42, Title: "Overland"}, entity.GameCredentials{APIKey: "key"})
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "game-linux.zip", uploads[0].Filename)
	assert.True(t, uploads[0].Platforms.Linux)
}

func TestClient_RPCError(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, _ serverRequest) (any, *RPCError) {
		return nil, &RPCError{Code: 2001, Message: "no credentials"}
	})
	c := dial(t, fb, "")

	_, err := c.FindUploads(context.Background(), &entity.Game{ID: 1}, entity.GameCredentials{})
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, int64(2001), rpcErr.Code)
	assert.Equal(t, "no credentials", rpcErr.Message)
}

func TestClient_AuthenticatesWithSecret(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, req serverRequest) (any, *RPCError) {
		return map[string]any{"ok": true}, nil
	})
	dial(t, fb, "s3cret")
	assert.Equal(t, []string{"Meta.Authenticate"}, fb.seen())
}

func TestClient_AuthenticationFailure(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, _ serverRequest) (any, *RPCError) {
		return nil, &RPCError{Code: 401, Message: "bad secret"}
	})
	_, err := Dial(context.Background(), Config{Address: fb.url(), Secret: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad secret")
}

func TestClient_Notifications(t *testing.T) {
	fb := newFakeButler(t, func(conn net.Conn, req serverRequest) (any, *RPCError) {
		note, _ := json.Marshal(map[string]any{
			"jsonrpc": "2.0",
			"method":  "Log",
			"params":  map[string]string{"level": "info", "message": "hello"},
		})
		_ = wsutil.WriteServerText(conn, note)
		return map[string]any{}, nil
	})
	c := dial(t, fb, "")

	got := make(chan string, 1)
	c.OnNotification(func(method string, _ json.RawMessage) { got <- method })

	require.NoError(t, c.Call(context.Background(), "Version.Get", nil, nil))
	select {
	case m := <-got:
		assert.Equal(t, "Log", m)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestClient_CallTimesOut(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, _ serverRequest) (any, *RPCError) {
		return nil, nil
	})
	c := dial(t, fb, "")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.Call(ctx, "Never.Answers", nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_ClosedFailsPendingAndNewCalls(t *testing.T) {
	fb := newFakeButler(t, func(_ net.Conn, _ serverRequest) (any, *RPCError) {
		return nil, nil
	})
	c := dial(t, fb, "")

	errc := make(chan error, 1)
	go func() { errc <- c.Call(context.Background(), "Never.Answers", nil, nil) }()

	require.Eventually(t, func() bool { return len(fb.seen()) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, c.Close())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("pending call not released")
	}
	assert.ErrorIs(t, c.Call(context.Background(), "X", nil, nil), ErrClosed)
}

func TestDial_EmptyAddress(t *testing.T) {
	_, err := Dial(context.Background(), Config{})
	assert.Error(t, err)
}
