package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// cdpRequest is one DevTools protocol command.
type cdpRequest struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// cdpMessage is anything the browser sends back: a command response
// (non-zero ID) or an event notification (Method set, ID zero).
type cdpMessage struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *cdpError       `json:"error"`
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *cdpError) Error() string {
	return fmt.Sprintf("cdp error %d: %s", e.Code, e.Message)
}

// cdpConn is a DevTools protocol connection over a websocket. Command
// responses are correlated to calls by ID; events are logged and
// otherwise dropped, since element state is always re-polled rather
// than event-driven.
type cdpConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	nextID  int64

	pendingMu sync.Mutex
	pending   map[int64]chan cdpMessage

	closeOnce sync.Once
	closed    chan struct{}
}

// dialCDP connects to a DevTools websocket endpoint and starts the
// read pump.
func dialCDP(ctx context.Context, wsURL string) (*cdpConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial devtools endpoint: %w", err)
	}

	c := &cdpConn{
		conn:    conn,
		pending: make(map[int64]chan cdpMessage),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *cdpConn) readLoop() {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg cdpMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Warn("Unparseable devtools message",
				zap.Int("length", len(data)),
				zap.Error(err),
			)
			continue
		}

		if msg.ID == 0 {
			// Event notification
			logging.Debug("Devtools event", zap.String("method", msg.Method))
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.pendingMu.Unlock()

		if ok {
			ch <- msg
		}
	}
}

// Call sends a command and waits for its response.
func (c *cdpConn) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.writeMu.Lock()
	c.nextID++
	id := c.nextID

	ch := make(chan cdpMessage, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()

	err := c.conn.WriteJSON(cdpRequest{ID: id, Method: method, Params: params})
	c.writeMu.Unlock()

	if err != nil {
		c.drop(id)
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}

	select {
	case msg := <-ch:
		if msg.Error != nil {
			return nil, msg.Error
		}
		return msg.Result, nil
	case <-ctx.Done():
		c.drop(id)
		return nil, ctx.Err()
	case <-c.closed:
		return nil, fmt.Errorf("devtools connection closed during %s", method)
	}
}

func (c *cdpConn) drop(id int64) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

// Close shuts the connection down and unblocks every pending call.
func (c *cdpConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
	return nil
}

// evalResult is the shape of a Runtime.evaluate response when
// returnByValue is requested.
type evalResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text      string `json:"text"`
		Exception *struct {
			Description string `json:"description"`
		} `json:"exception"`
	} `json:"exceptionDetails"`
}

// eval runs a JavaScript expression in the page and decodes the
// by-value result into out (which may be nil).
func (c *cdpConn) eval(ctx context.Context, expression string, out any) error {
	raw, err := c.Call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
	})
	if err != nil {
		return err
	}

	var result evalResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("failed to decode evaluate result: %w", err)
	}

	if result.ExceptionDetails != nil {
		detail := result.ExceptionDetails.Text
		if result.ExceptionDetails.Exception != nil {
			detail = result.ExceptionDetails.Exception.Description
		}
		return fmt.Errorf("page script failed: %s", detail)
	}

	if out != nil && result.Result.Value != nil {
		if err := json.Unmarshal(result.Result.Value, out); err != nil {
			return fmt.Errorf("failed to decode evaluate value: %w", err)
		}
	}
	return nil
}
