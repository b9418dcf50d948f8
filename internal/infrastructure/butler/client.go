// Package butler talks JSON-RPC 2.0 to the background download service
// over a websocket.
package butler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/gamedesk/internal/logging"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// ErrClosed is returned for calls on, or pending at, a closed connection.
var ErrClosed = errors.New("butler: connection closed")

// Standard JSON-RPC error codes.
const (
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// RPCError is an error object returned by the service.
type RPCError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("butler: rpc error %d: %s", e.Code, e.Message)
}

// Config locates the service.
type Config struct {
	// Address is a websocket URL such as "ws://127.0.0.1:13360".
	Address string
	// Secret, when set, is sent with Meta.Authenticate right after dialing.
	Secret string
	// Timeout bounds each call without its own deadline.
	Timeout time.Duration
}

type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NotificationHandler receives server notifications such as Log.
type NotificationHandler func(method string, params json.RawMessage)

// Client is a JSON-RPC client. Safe for concurrent use.
type Client struct {
	ctx     context.Context
	conn    net.Conn
	timeout time.Duration

	writeMu sync.Mutex
	seq     atomic.Int64

	pendingMu sync.Mutex
	pending   map[int64]chan message

	notifyMu sync.RWMutex
	notify   NotificationHandler

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the service and authenticates when a secret is set.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("butler: empty address")
	}
	log := logging.FromContext(ctx)
	log.Debug().Str("address", cfg.Address).Msg("butler connecting")

	conn, _, _, err := ws.Dial(ctx, cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("butler: dial: %w", err)
	}

	c := newClient(logging.WithComponent(ctx, "butler"), conn, cfg.Timeout)
	go c.readLoop()

	if cfg.Secret != "" {
		params := struct {
			Secret string `json:"secret"`
		}{Secret: cfg.Secret}
		if err := c.Call(ctx, "Meta.Authenticate", params, nil); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("butler: authenticate: %w", err)
		}
	}
	return c, nil
}

func newClient(ctx context.Context, conn net.Conn, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		ctx:     ctx,
		conn:    conn,
		timeout: timeout,
		pending: make(map[int64]chan message),
		done:    make(chan struct{}),
	}
}

// OnNotification sets the handler for server notifications.
func (c *Client) OnNotification(fn NotificationHandler) {
	c.notifyMu.Lock()
	c.notify = fn
	c.notifyMu.Unlock()
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Call sends method with params and decodes the result into result, which
// may be nil.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	id := c.seq.Add(1)
	ch := make(chan message, 1)
	c.pendingMu.Lock()
	select {
	case <-c.done:
		c.pendingMu.Unlock()
		return ErrClosed
	default:
	}
	c.pending[id] = ch
	c.pendingMu.Unlock()

	data, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		c.deletePending(id)
		return fmt.Errorf("butler: marshal %s: %w", method, err)
	}

	if err := c.write(data); err != nil {
		c.deletePending(id)
		return fmt.Errorf("butler: send %s: %w", method, err)
	}

	select {
	case msg, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if msg.Error != nil {
			return msg.Error
		}
		if result == nil || len(msg.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(msg.Result, result); err != nil {
			return fmt.Errorf("butler: decode %s result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		c.deletePending(id)
		return ctx.Err()
	}
}

func (c *Client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wsutil.WriteClientText(c.conn, data)
}

func (c *Client) deletePending(id int64) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

func (c *Client) readLoop() {
	log := logging.FromContext(c.ctx)
	defer c.shutdown()

	for {
		data, err := wsutil.ReadServerText(c.conn)
		if err != nil {
			select {
			case <-c.done:
			default:
				log.Debug().Err(err).Msg("butler read loop exit")
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("butler sent malformed message")
			continue
		}

		switch {
		case msg.Method != "" && msg.ID == nil:
			c.dispatchNotification(msg.Method, msg.Params)
		case msg.Method != "":
			c.rejectRequest(*msg.ID, msg.Method)
		case msg.ID != nil:
			c.pendingMu.Lock()
			ch, ok := c.pending[*msg.ID]
			delete(c.pending, *msg.ID)
			c.pendingMu.Unlock()
			if ok {
				ch <- msg
			}
		}
	}
}

func (c *Client) dispatchNotification(method string, params json.RawMessage) {
	c.notifyMu.RLock()
	fn := c.notify
	c.notifyMu.RUnlock()

	if fn != nil {
		fn(method, params)
		return
	}
	logging.FromContext(c.ctx).Trace().Str("method", method).Msg("butler notification")
}

// rejectRequest answers server-to-client calls, none of which are
// implemented.
func (c *Client) rejectRequest(id int64, method string) {
	resp := struct {
		JSONRPC string    `json:"jsonrpc"`
		ID      int64     `json:"id"`
		Error   *RPCError `json:"error"`
	}{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: CodeMethodNotFound, Message: "method not found: " + method},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.write(data); err != nil {
		logging.FromContext(c.ctx).Debug().Err(err).Str("method", method).Msg("could not reject butler request")
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})

	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// Close closes the connection and fails pending calls with ErrClosed.
func (c *Client) Close() error {
	c.shutdown()
	return nil
}
