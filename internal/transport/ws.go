package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"ikasama/internal/log"
	"ikasama/internal/match"
	"ikasama/internal/protocol"
)

// Client is the websocket transport: it writes client frames and feeds
// server frames to the handler from a single read loop.
type Client struct {
	conn    *websocket.Conn
	handler Handler
	logger  log.EventLogger
	ctx     context.Context
	cancel  context.CancelFunc

	// Cursor frames are best-effort position mirroring; everything beyond
	// the rate just drops.
	cursorLimit *rate.Limiter
}

// Dial connects to ws://host/ws/{roomID}?mode={create|join} and starts the
// read loop.
func Dial(ctx context.Context, host, roomID, mode string, handler Handler, logger log.EventLogger) (*Client, error) {
	url := fmt.Sprintf("ws://%s/ws/%s?mode=%s", host, roomID, mode)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	cctx, cancel := context.WithCancel(ctx)
	c := &Client{
		conn:        conn,
		handler:     handler,
		logger:      logger,
		ctx:         cctx,
		cancel:      cancel,
		cursorLimit: rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
	}
	logger.Log(log.NewTransportOpenEvent(url))
	go c.readLoop()
	go c.pingLoop()
	return c, nil
}

// pingLoop keeps idle connections alive; the server answers with pong
// frames, which Dispatch swallows.
func (c *Client) pingLoop() {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-t.C:
			if err := c.Ping(); err != nil {
				return
			}
		}
	}
}

func (c *Client) readLoop() {
	defer c.cancel()
	for {
		_, data, err := c.conn.Read(c.ctx)
		if err != nil {
			c.handler.HandleClosed(err.Error())
			return
		}
		if err := Dispatch(c.handler, data); err != nil {
			c.logger.Log(log.NewProtocolErrorEvent(err.Error()))
			c.handler.HandleError(err.Error())
			c.conn.Close(websocket.StatusProtocolError, "bad frame")
			return
		}
	}
}

// Send writes one frame. Cursor frames past the broadcast rate are silently
// dropped.
func (c *Client) Send(msg protocol.ClientMessage) error {
	if msg.Action == protocol.ActionCursor && !c.cursorLimit.Allow() {
		return nil
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return c.conn.Write(c.ctx, websocket.MessageText, raw)
}

// Ping sends a keepalive frame.
func (c *Client) Ping() error {
	return c.Send(protocol.ClientMessage{Type: protocol.TypePing})
}

// Close shuts the connection down; the read loop reports the closure to the
// handler.
func (c *Client) Close() error {
	c.cancel()
	return c.conn.Close(websocket.StatusNormalClosure, "leaving")
}

// FirstAttack asks the server to flip the first-attack coin. One-shot, used
// by the simpler hybrid flow at match start.
func FirstAttack(ctx context.Context, host string) (match.Role, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+host+"/api/first_attack", nil)
	if err != nil {
		return match.RoleNone, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return match.RoleNone, fmt.Errorf("first_attack: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return match.RoleNone, fmt.Errorf("first_attack: status %d", resp.StatusCode)
	}
	var out protocol.FirstAttackResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return match.RoleNone, fmt.Errorf("first_attack decode: %w", err)
	}
	if !out.First.Seated() {
		return match.RoleNone, fmt.Errorf("first_attack: bad seat %q", out.First)
	}
	return out.First, nil
}
