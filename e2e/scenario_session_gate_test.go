package e2e

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type testSessionGateSuite struct {
	BaseSocketSuite
}

func TestSessionGateSuite(t *testing.T) {
	suite.Run(t, &testSessionGateSuite{})
}

// Every event except authenticate must be refused on a fresh connection,
// and the refusal must terminate the transport.
func (s *testSessionGateSuite) TestUnauthenticatedEventIsRefused() {
	s.WithRelay("Unauthenticated request is refused and disconnected", func(c *relayClient) {
		s.Require().NoError(c.Send("get_info_self", map[string]any{"key": "throwaway"}))

		// The refusal frame and the close race on the write side, so
		// drain until the socket dies and check whatever arrives first.
		sawRefusal := false
		for {
			frame, err := c.Recv()
			if err != nil {
				break
			}
			s.Require().Equal("get_info_self", frame.Event)
			body := decodeBody(&s.Suite, frame)
			s.Require().EqualValues(0, body["code"])
			s.Require().Equal("unauthorized", body["error"])
			sawRefusal = true
		}
		s.T().Logf("Connection closed by relay (refusal frame observed: %v)", sawRefusal)
	})
}

// An authenticate envelope the relay cannot open must read as a
// credential failure, never as a recoverable validation error.
func (s *testSessionGateSuite) TestMalformedAuthenticateIsRefused() {
	s.WithRelay("Malformed authenticate envelope is refused", func(c *relayClient) {
		s.Require().NoError(c.Send("authenticate", map[string]any{
			"data": map[string]any{"bogus": true},
			"key":  "throwaway",
		}))

		closed := false
		for {
			frame, err := c.Recv()
			if err != nil {
				closed = true
				break
			}
			s.Require().Equal("authenticated", frame.Event)
			body := decodeBody(&s.Suite, frame)
			s.Require().EqualValues(0, body["code"])
			s.Require().Equal("unauthorized", body["error"])
		}
		s.Require().True(closed, "Relay kept the connection open after a failed authentication")
	})
}

// Frames that do not parse as events are dropped without killing the
// connection; a later well-formed frame still gets an answer.
func (s *testSessionGateSuite) TestMalformedFrameIsDropped() {
	s.WithRelay("Malformed frame is dropped, connection survives", func(c *relayClient) {
		s.Require().NoError(c.ws.WriteMessage(websocket.TextMessage, []byte("not json at all")))

		s.Require().NoError(c.Send("get_info_self", map[string]any{"key": "throwaway"}))
		frame, err := c.Recv()
		if err != nil {
			// Acceptable: the refusal may be lost to the close race.
			return
		}
		s.Require().Equal("get_info_self", frame.Event)
	})
}
