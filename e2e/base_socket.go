package e2e

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

const frameWait = 10 * time.Second

type BaseSocketSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSocketSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.RelayAddr == "" {
		s.T().Skip("RELAY_ADDR not set, skipping e2e suite")
	}
}

// wireFrame is the relay's symmetric frame shape: a named event plus an
// event-specific body.
type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// relayClient wraps one websocket connection with frame-level logging.
type relayClient struct {
	t      *testing.T
	ws     *websocket.Conn
	config Config
}

// Dial opens a connection to the relay with a colorized header for the
// step in logs.
func (s *BaseSocketSuite) Dial(t *testing.T, name string) *relayClient {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	u := url.URL{Scheme: "ws", Host: s.Config.RelayAddr, Path: "/"}
	ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	s.Require().NoError(err, "Failed to connect to relay at "+u.String())

	client := &relayClient{t: t, ws: ws, config: s.Config}
	t.Cleanup(client.Close)
	return client
}

// WithRelay runs one scenario step against a fresh connection.
func (s *BaseSocketSuite) WithRelay(name string, fn func(c *relayClient)) {
	client := s.Dial(s.T(), name)
	defer client.Close()
	fn(client)
}

// Send pushes one frame. The body is marshaled in place so scenarios can
// pass plain structs or maps.
func (c *relayClient) Send(event string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	frame := wireFrame{Event: event, Data: body}
	c.logFrame("SEND", frame)

	if err := c.ws.SetWriteDeadline(time.Now().Add(frameWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(frame)
}

// Recv blocks for the next frame, skipping control messages.
func (c *relayClient) Recv() (wireFrame, error) {
	var frame wireFrame
	if err := c.ws.SetReadDeadline(time.Now().Add(frameWait)); err != nil {
		return frame, err
	}
	if err := c.ws.ReadJSON(&frame); err != nil {
		return frame, err
	}
	c.logFrame("RECV", frame)
	return frame, nil
}

func (c *relayClient) Close() {
	_ = c.ws.Close()
}

// logFrame dumps full frame bodies if E2E_DEBUG_JSON is enabled
func (c *relayClient) logFrame(direction string, frame wireFrame) {
	if !c.config.DebugJSON {
		c.t.Logf("WS %s [%s]", direction, frame.Event)
		return
	}
	pretty, err := json.MarshalIndent(json.RawMessage(frame.Data), "", "  ")
	if err != nil {
		pretty = frame.Data
	}
	c.t.Logf("WS %s [%s]\n%s", direction, frame.Event, pretty)
}

// decodeBody unmarshals a frame body into a loose map for assertions.
func decodeBody(s *suite.Suite, frame wireFrame) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(frame.Data, &body))
	return body
}
