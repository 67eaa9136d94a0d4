package socket

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/services"
	"chat-relay/sink"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Stubs embed the service interfaces so only the methods a test exercises
// need an override; an unexpected call panics on the nil interface.

type stubSession struct {
	services.ISessionService
	authenticate func(ctx context.Context, connID, envelope, responseKey string) (services.AuthResult, error)
	verify       func(token string) (string, error)
	verifyServer func(token string) error
}

func (s *stubSession) Authenticate(ctx context.Context, connID, envelope, responseKey string) (services.AuthResult, error) {
	return s.authenticate(ctx, connID, envelope, responseKey)
}

func (s *stubSession) Verify(token string) (string, error) { return s.verify(token) }

func (s *stubSession) VerifyServer(token string) error { return s.verifyServer(token) }

type stubRooms struct {
	services.IRoomService
	joinByKey        func(ctx context.Context, userID, key, password string) (string, error)
	acceptServerRoom func(ctx context.Context, room domain.Room) error
}

func (s *stubRooms) JoinByKey(ctx context.Context, userID, key, password string) (string, error) {
	return s.joinByKey(ctx, userID, key, password)
}

func (s *stubRooms) AcceptServerRoom(ctx context.Context, room domain.Room) error {
	return s.acceptServerRoom(ctx, room)
}

type stubMessages struct {
	services.IMessageService
	send        func(ctx context.Context, senderID, roomID string, input services.MessageInput) (domain.Message, error)
	loadContent func(ctx context.Context, roomID string, cursor *string, withHistory bool) (services.ChatContent, error)
}

func (s *stubMessages) Send(ctx context.Context, senderID, roomID string, input services.MessageInput) (domain.Message, error) {
	return s.send(ctx, senderID, roomID, input)
}

func (s *stubMessages) LoadContent(ctx context.Context, roomID string, cursor *string, withHistory bool) (services.ChatContent, error) {
	return s.loadContent(ctx, roomID, cursor, withHistory)
}

func testConn(t *testing.T) *Conn {
	t.Helper()
	out := sink.NewBufferedSink(slog.Default(), 16, time.Second)
	c := newConn(nil, out, slog.Default(), time.Second, time.Minute)
	t.Cleanup(out.Close)
	return c
}

func nextFrame(t *testing.T, c *Conn) contract.Frame {
	t.Helper()
	select {
	case frame := <-c.sink.Frames():
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return contract.Frame{}
	}
}

func verifyAs(userID string) *stubSession {
	return &stubSession{verify: func(token string) (string, error) { return userID, nil }}
}

func TestRouter_Dispatch_UnauthenticatedConnectionIsClosed(t *testing.T) {
	req := require.New(t)
	router := NewRouter(slog.Default(), &stubSession{}, nil, nil, nil, nil)
	c := testConn(t)

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{Event: "send_message", Data: []byte(`{}`)})
	req.False(keepOpen)

	frame := nextFrame(t, c)
	req.Equal("send_message_return", frame.Event)
	data := frame.Data.(map[string]any)
	req.Equal(0, data["code"])
	req.Equal("unauthorized", data["error"])
}

func TestRouter_Dispatch_StaleTokenIsClosed(t *testing.T) {
	req := require.New(t)
	session := &stubSession{verify: func(token string) (string, error) {
		return "", apperrors.ErrUnauthorized
	}}
	router := NewRouter(slog.Default(), session, nil, nil, nil, nil)
	c := testConn(t)
	c.role = contract.RoleUser
	c.token = "expired"

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{Event: "join_chat", Data: []byte(`{"key":"x"}`)})
	req.False(keepOpen)
}

func TestRouter_Dispatch_UnknownEventKeepsConnection(t *testing.T) {
	req := require.New(t)
	router := NewRouter(slog.Default(), verifyAs("alice"), nil, nil, nil, nil)
	c := testConn(t)
	c.role = contract.RoleUser

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{Event: "no_such_event", Data: []byte(`{}`)})
	req.True(keepOpen)

	frame := nextFrame(t, c)
	req.Equal("no_such_event", frame.Event)
	req.Equal("error_params", frame.Data.(map[string]any)["error"])
}

func TestRouter_Authenticate_User(t *testing.T) {
	req := require.New(t)
	session := &stubSession{authenticate: func(ctx context.Context, connID, envelope, responseKey string) (services.AuthResult, error) {
		req.Equal(`{"sealed":true}`, envelope)
		req.Equal("client-key", responseKey)
		return services.AuthResult{
			Role:     contract.RoleUser,
			UserID:   "alice",
			Token:    "jwt",
			Envelope: `{"sealed":"profile"}`,
		}, nil
	}}
	router := NewRouter(slog.Default(), session, nil, nil, nil, nil)
	c := testConn(t)

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{
		Event: "authenticate",
		Data:  []byte(`{"data":{"sealed":true},"key":"client-key"}`),
	})
	req.True(keepOpen)
	req.Equal(contract.RoleUser, c.role)
	req.Equal("alice", c.userID)
	req.Equal("jwt", c.token)

	frame := nextFrame(t, c)
	req.Equal("authenticated", frame.Event)
}

func TestRouter_Authenticate_FailureDisconnects(t *testing.T) {
	req := require.New(t)
	session := &stubSession{authenticate: func(ctx context.Context, connID, envelope, responseKey string) (services.AuthResult, error) {
		return services.AuthResult{}, apperrors.ErrDecryption
	}}
	router := NewRouter(slog.Default(), session, nil, nil, nil, nil)
	c := testConn(t)

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{
		Event: "authenticate",
		Data:  []byte(`{"data":{"sealed":true}}`),
	})
	req.False(keepOpen)
	req.Empty(c.userID)

	frame := nextFrame(t, c)
	req.Equal("authenticated", frame.Event)
	req.Equal("unauthorized", frame.Data.(map[string]any)["error"])
}

func TestRouter_JoinChat(t *testing.T) {
	req := require.New(t)
	rooms := &stubRooms{joinByKey: func(ctx context.Context, userID, key, password string) (string, error) {
		req.Equal("alice", userID)
		req.Equal("s3cret", key)
		req.Equal("hunter2", password)
		return "room-1", nil
	}}
	router := NewRouter(slog.Default(), verifyAs("alice"), rooms, nil, nil, nil)
	c := testConn(t)
	c.role = contract.RoleUser

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{Event: "join_chat", Data: []byte(`{"key":"s3cret","pasw":"hunter2"}`)})
	req.True(keepOpen)

	frame := nextFrame(t, c)
	req.Equal("join_chat", frame.Event)
	data := frame.Data.(map[string]any)
	req.Equal(1, data["code"])
	req.Equal([]string{"room-1"}, data["matchedChats"])
}

func TestRouter_SendMessage_SealedPayload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cryptor := mocks.NewMockCryptor(ctrl)
	cryptor.EXPECT().
		Decrypt(gomock.Any(), `{"sealed":true}`).
		Return(`{"chatId":"room-1","message":{"type":"text","content":"hello"}}`, nil)

	messages := &stubMessages{send: func(ctx context.Context, senderID, roomID string, input services.MessageInput) (domain.Message, error) {
		req.Equal("alice", senderID)
		req.Equal("room-1", roomID)
		req.Equal("hello", input.Text)
		return domain.Message{}, nil
	}}
	router := NewRouter(slog.Default(), verifyAs("alice"), nil, messages, nil, cryptor)
	c := testConn(t)
	c.role = contract.RoleUser

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{
		Event: "send_message",
		Data:  []byte(`{"data":{"sealed":true},"key":"client-key"}`),
	})
	req.True(keepOpen)
}

func TestRouter_LoadChatContent_OpenTypeGatesHistory(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cryptor := mocks.NewMockCryptor(ctrl)
	cryptor.EXPECT().
		Decrypt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, envelope string) (string, error) {
			return envelope, nil
		}).Times(2)
	cryptor.EXPECT().
		Encrypt(gomock.Any(), "client-key", gomock.Any()).
		Return(`{"sealed":"reply"}`, nil).Times(2)

	var wantHistory []bool
	messages := &stubMessages{loadContent: func(ctx context.Context, roomID string, cursor *string, withHistory bool) (services.ChatContent, error) {
		req.Equal("room-1", roomID)
		wantHistory = append(wantHistory, withHistory)
		return services.ChatContent{RoomID: roomID}, nil
	}}
	router := NewRouter(slog.Default(), verifyAs("alice"), nil, messages, nil, cryptor)
	c := testConn(t)
	c.role = contract.RoleUser

	// An "online" open reads the log; a background open only needs the
	// participant roster.
	req.True(router.Dispatch(context.Background(), c, wireFrame{
		Event: "load_chat_content",
		Data:  []byte(`{"data":{"chatId":"room-1","type":"online"},"key":"client-key"}`),
	}))
	req.True(router.Dispatch(context.Background(), c, wireFrame{
		Event: "load_chat_content",
		Data:  []byte(`{"data":{"chatId":"room-1","type":"offline"},"key":"client-key"}`),
	}))
	req.Equal([]bool{true, false}, wantHistory)
}

func TestRouter_ServerEvents_RequireServerRole(t *testing.T) {
	req := require.New(t)
	router := NewRouter(slog.Default(), verifyAs("alice"), nil, nil, nil, nil)
	c := testConn(t)
	c.role = contract.RoleUser

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{
		Event: "send_new_chat_server",
		Data:  []byte(`{"chat":{"id":"room-x"}}`),
	})
	req.False(keepOpen)
}

func TestRouter_ServerRoomAnnouncement(t *testing.T) {
	req := require.New(t)
	session := &stubSession{verifyServer: func(token string) error { return nil }}
	rooms := &stubRooms{acceptServerRoom: func(ctx context.Context, room domain.Room) error {
		req.Equal("room-x", room.ID)
		req.Equal("alice", room.Owner)
		return nil
	}}
	router := NewRouter(slog.Default(), session, rooms, nil, nil, nil)
	c := testConn(t)
	c.role = contract.RoleServer

	keepOpen := router.Dispatch(context.Background(), c, wireFrame{
		Event: "send_new_chat_server",
		Data:  []byte(`{"chat":{"id":"room-x","owner":"alice"}}`),
	})
	req.True(keepOpen)

	frame := nextFrame(t, c)
	req.Equal("send_new_chat_server", frame.Event)
	req.Equal(1, frame.Data.(map[string]any)["code"])
}
