// Package socket is the transport layer: a gorilla/websocket server, one
// read/write pump pair per connection and the router dispatching wire
// events to the business services.
package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat-relay/contract"
	"chat-relay/sink"
)

// Conn is one live websocket connection. Session state (identity, token,
// role) is written only by the authenticate handler and read only on the
// same read-pump goroutine, so it needs no locking.
type Conn struct {
	id   string
	ws   *websocket.Conn
	sink *sink.BufferedSink
	log  *slog.Logger

	userID  string
	token   string
	role    contract.Role
	keypair contract.Keypair

	writeTimeout time.Duration
	pongTimeout  time.Duration
}

func newConn(ws *websocket.Conn, out *sink.BufferedSink, log *slog.Logger, writeTimeout, pongTimeout time.Duration) *Conn {
	id := uuid.NewString()
	return &Conn{
		id:           id,
		ws:           ws,
		sink:         out,
		log:          log.With("conn_id", id),
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
	}
}

func (c *Conn) ID() string { return c.id }

// Reply pushes a frame to this connection through its own sink, taking
// the same path as fan-out deliveries so ordering on the wire is the
// queue order.
func (c *Conn) Reply(ctx context.Context, event string, data any) {
	if err := c.sink.Deliver(ctx, contract.Frame{Event: event, Data: data}); err != nil {
		c.log.Debug("reply dropped", "event", event, "error", err)
	}
}

// readPump decodes inbound frames and hands them to the router. It owns
// the websocket read side; returning closes the connection.
func (c *Conn) readPump(ctx context.Context, router *Router, maxMessageSize int64) {
	defer c.close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.pongTimeout))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("read failed", "error", err)
			}
			return
		}

		var frame wireFrame
		if err := json.Unmarshal(payload, &frame); err != nil || frame.Event == "" {
			c.log.Debug("malformed frame dropped")
			continue
		}

		if !router.Dispatch(ctx, c, frame) {
			return
		}
	}
}

// writePump drains the sink into the websocket and keeps the connection
// alive with pings. It owns the websocket write side.
func (c *Conn) writePump() {
	pingInterval := c.pongTimeout * 9 / 10
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame := <-c.sink.Frames():
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteJSON(outFrame{Event: frame.Event, Data: frame.Data}); err != nil {
				c.log.Debug("write failed", "event", frame.Event, "error", err)
				return
			}
		case <-c.sink.Done():
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Conn) close() {
	c.sink.Close()
	_ = c.ws.Close()
}

// wireFrame is one inbound event: a name plus its raw payload.
type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outFrame mirrors wireFrame for the outbound direction.
type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
