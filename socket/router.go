package socket

import (
	"context"
	"encoding/json"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/services"
)

// Router maps wire events to service calls. Every handler except
// authenticate re-verifies the credential bound to the connection before
// touching any state; a credential failure closes the transport.
type Router struct {
	session  services.ISessionService
	rooms    services.IRoomService
	messages services.IMessageService
	users    services.IUserService
	cryptor  contract.Cryptor
	log      *slog.Logger
}

func NewRouter(
	log *slog.Logger,
	session services.ISessionService,
	rooms services.IRoomService,
	messages services.IMessageService,
	users services.IUserService,
	cryptor contract.Cryptor,
) *Router {
	return &Router{
		session:  session,
		rooms:    rooms,
		messages: messages,
		users:    users,
		cryptor:  cryptor,
		log:      log,
	}
}

type handlerFunc func(ctx context.Context, c *Conn, raw json.RawMessage) error

// responseEvent names the frame a failed handler answers on. Most events
// ack on their own name; the exceptions mirror the client protocol.
var responseEvent = map[string]string{
	"authenticate":          "authenticated",
	"create_chat":           "chat_created",
	"create_temporary_chat": "chat_created",
	"del_chat":              "del_chat_return",
	"get_info_chat":         "chat_info",
	"get_info_chats":        "chats_info",
	"load_chat_content":     "load_chat_content_return",
	"get_info_user":         "get_info_user_return",
	"get_info_users":        "get_info_users_return",
	"send_message":          "send_message_return",
}

// Dispatch runs one inbound frame. The return value reports whether the
// connection may keep reading; false means the access-control policy
// demands a disconnect.
func (r *Router) Dispatch(ctx context.Context, c *Conn, frame wireFrame) bool {
	handler, err := r.resolve(c, frame.Event)
	if err == nil {
		err = handler(ctx, c, frame.Data)
	}
	if err == nil {
		return true
	}

	event := frame.Event
	if response, ok := responseEvent[event]; ok {
		event = response
	}
	r.log.Warn("operation failed",
		"event", frame.Event,
		"conn_id", c.id,
		"user_id", c.userID,
		"error", err,
	)
	c.Reply(ctx, event, map[string]any{"code": 0, "error": apperrors.WireLabel(err)})
	return !apperrors.Disconnects(err)
}

// resolve picks the handler and runs the per-operation credential check.
func (r *Router) resolve(c *Conn, event string) (handlerFunc, error) {
	if event == "authenticate" {
		return r.onAuthenticate, nil
	}

	switch c.role {
	case contract.RoleUser:
		userID, err := r.session.Verify(c.token)
		if err != nil {
			return nil, err
		}
		c.userID = userID
	case contract.RoleServer:
		if err := r.session.VerifyServer(c.token); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.ErrUnauthorized
	}

	handlers := map[string]handlerFunc{
		"create_chat":           r.onCreateChat,
		"create_temporary_chat": r.onCreateTemporaryChat,
		"join_chat":             r.onJoinChat,
		"add_user_in_chat":      r.onAddUserInChat,
		"del_user_in_chat":      r.onDelUserInChat,
		"del_user_in_chat_self": r.onDelSelfInChat,
		"del_chat":              r.onDelChat,
		"save_settings_chat":    r.onSaveSettingsChat,
		"get_info_chat":         r.onGetInfoChat,
		"get_info_chats":        r.onGetInfoChats,
		"load_chat_content":     r.onLoadChatContent,
		"send_message":          r.onSendMessage,
		"del_msg":               r.onDelMsg,
		"generate_key_chat":     r.onGenerateKeyChat,
		"get_key_chat":          r.onGetKeyChat,
		"del_key_chat":          r.onDelKeyChat,
		"get_info_self":         r.onGetInfoSelf,
		"save_profile":          r.onSaveProfile,
		"get_info_user":         r.onGetInfoUser,
		"get_info_users":        r.onGetInfoUsers,
		"send_new_chat_server":  r.onNewServerRoom,
		"update_chat_server":    r.onUpdateServerRoom,
	}
	handler, ok := handlers[event]
	if !ok {
		return nil, apperrors.ErrValidation
	}
	return handler, nil
}

// sealedRequest is the common shape of envelope-bearing events: an opaque
// encrypted payload plus the caller's key for the encrypted response.
type sealedRequest struct {
	Data json.RawMessage `json:"data"`
	Type string          `json:"type"`
	Key  string          `json:"key"`
}

// open decrypts a sealed request body into out.
func (r *Router) open(ctx context.Context, raw json.RawMessage, out any) (sealedRequest, error) {
	var req sealedRequest
	if err := json.Unmarshal(raw, &req); err != nil || len(req.Data) == 0 {
		return req, apperrors.ErrValidation
	}
	plaintext, err := r.cryptor.Decrypt(ctx, string(req.Data))
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal([]byte(plaintext), out); err != nil {
		return req, apperrors.ErrValidation
	}
	return req, nil
}

// sealedReply encrypts a response payload for the caller's key and pushes
// it on the response event.
func (r *Router) sealedReply(ctx context.Context, c *Conn, event, key string, payload any) error {
	plain, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	envelope, err := r.cryptor.Encrypt(ctx, key, string(plain))
	if err != nil {
		return err
	}
	c.Reply(ctx, event, map[string]any{"data": json.RawMessage(envelope)})
	return nil
}

func (r *Router) onAuthenticate(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var req sealedRequest
	if err := json.Unmarshal(raw, &req); err != nil || len(req.Data) == 0 {
		return apperrors.ErrUnauthorized
	}

	result, err := r.session.Authenticate(ctx, c.id, string(req.Data), req.Key)
	if err != nil {
		// The gate fails closed: any authentication failure, decryption
		// included, terminates the transport.
		return apperrors.ErrUnauthorized
	}

	c.role = result.Role
	c.userID = result.UserID
	c.token = result.Token
	c.keypair = result.Keypair

	if result.Role == contract.RoleServer {
		c.Reply(ctx, "authenticated", map[string]any{"code": 1})
		return nil
	}
	c.Reply(ctx, "authenticated", map[string]any{"data": json.RawMessage(result.Envelope)})
	return nil
}

type createChatPayload struct {
	Chat services.RoomSpec `json:"chat"`
}

func (r *Router) onCreateChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload createChatPayload
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	_, err := r.rooms.Create(ctx, c.userID, payload.Chat)
	return err
}

func (r *Router) onCreateTemporaryChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload createChatPayload
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	_, err := r.rooms.CreateTemporary(ctx, c.userID, payload.Chat)
	return err
}

func (r *Router) onJoinChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		Key      string `json:"key"`
		Password string `json:"pasw"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Key == "" {
		return apperrors.ErrValidation
	}
	roomID, err := r.rooms.JoinByKey(ctx, c.userID, payload.Key, payload.Password)
	if err != nil {
		return err
	}
	c.Reply(ctx, "join_chat", map[string]any{"code": 1, "matchedChats": []string{roomID}})
	return nil
}

type memberPayload struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

func (r *Router) onAddUserInChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload memberPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" || payload.UserID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.AddParticipant(ctx, payload.ID, payload.UserID); err != nil {
		return err
	}
	c.Reply(ctx, "add_user_in_chat", map[string]any{"code": 1})
	return nil
}

func (r *Router) onDelUserInChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload memberPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" || payload.UserID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.RemoveParticipant(ctx, payload.ID, payload.UserID); err != nil {
		return err
	}
	c.Reply(ctx, "del_user_in_chat", map[string]any{"code": 1})
	return nil
}

func (r *Router) onDelSelfInChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ID string `json:"id"`
	}
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	if payload.ID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.RemoveSelf(ctx, payload.ID, c.userID); err != nil {
		return err
	}
	c.Reply(ctx, "del_user_in_chat_self", map[string]any{"code": 1})
	return nil
}

func (r *Router) onDelChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.Delete(ctx, payload.ChatID); err != nil {
		return err
	}
	c.Reply(ctx, "del_chat_return", map[string]any{"code": 1})
	return nil
}

func (r *Router) onSaveSettingsChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ID       string            `json:"id"`
		DataChat services.RoomPatch `json:"dataChat"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.SaveSettings(ctx, c.userID, payload.ID, payload.DataChat); err != nil {
		return err
	}
	c.Reply(ctx, "save_settings_chat", map[string]any{"code": 1})
	return nil
}

func (r *Router) onGetInfoChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ChatID   string `json:"chatId"`
		Type     string `json:"type"`
		TypeChat string `json:"typeChat"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChatID == "" {
		return apperrors.ErrValidation
	}
	room, err := r.rooms.Info(ctx, payload.ChatID, payload.TypeChat == "server")
	if err != nil {
		return err
	}
	c.Reply(ctx, "chat_info", map[string]any{"code": 1, "chat": room, "type": payload.Type})
	return nil
}

func (r *Router) onGetInfoChats(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		Chats []string `json:"chats"`
	}
	req, err := r.open(ctx, raw, &payload)
	if err != nil {
		return err
	}
	rooms, err := r.rooms.InfoMany(ctx, c.userID, payload.Chats)
	if err != nil {
		return err
	}
	return r.sealedReply(ctx, c, "chats_info", req.Key, map[string]any{"code": 1, "chats": rooms})
}

func (r *Router) onLoadChatContent(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ChatID string  `json:"chatId"`
		Type   string  `json:"type"`
		Cursor *string `json:"cursor"`
	}
	req, err := r.open(ctx, raw, &payload)
	if err != nil {
		return err
	}
	if payload.ChatID == "" {
		return apperrors.ErrValidation
	}
	// Only an "online" open pulls the message log; anything else is a
	// background open that needs the participant roster only.
	content, err := r.messages.LoadContent(ctx, payload.ChatID, payload.Cursor, payload.Type == "online")
	if err != nil {
		return err
	}
	return r.sealedReply(ctx, c, "load_chat_content_return", req.Key, map[string]any{
		"code":         1,
		"chatId":       content.RoomID,
		"messages":     content.Messages,
		"participants": content.Participants,
		"cursor":       content.NextCursor,
	})
}

func (r *Router) onSendMessage(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		ChatID  string                `json:"chatId"`
		Message services.MessageInput `json:"message"`
	}
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	if payload.ChatID == "" {
		return apperrors.ErrValidation
	}
	_, err := r.messages.Send(ctx, c.userID, payload.ChatID, payload.Message)
	return err
}

func (r *Router) onDelMsg(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		IDChat string `json:"idChat"`
		IDMsg  string `json:"idMsg"`
	}
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	if payload.IDChat == "" || payload.IDMsg == "" {
		return apperrors.ErrValidation
	}
	if err := r.messages.Delete(ctx, c.userID, payload.IDChat, payload.IDMsg); err != nil {
		return err
	}
	c.Reply(ctx, "del_msg", map[string]any{"code": 1})
	return nil
}

type keyPayload struct {
	ID string `json:"id"`
}

func (r *Router) onGenerateKeyChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload keyPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" {
		return apperrors.ErrValidation
	}
	key, err := r.rooms.Rekey(ctx, payload.ID)
	if err != nil {
		return err
	}
	c.Reply(ctx, "generate_key_chat", map[string]any{"code": 1, "key": key})
	return nil
}

func (r *Router) onGetKeyChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload keyPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" {
		return apperrors.ErrValidation
	}
	key, err := r.rooms.GetKey(ctx, payload.ID)
	if err != nil {
		return err
	}
	c.Reply(ctx, "get_key_chat", map[string]any{"code": 1, "key": key})
	return nil
}

func (r *Router) onDelKeyChat(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload keyPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == "" {
		return apperrors.ErrValidation
	}
	if err := r.rooms.DropKey(ctx, payload.ID); err != nil {
		return err
	}
	c.Reply(ctx, "del_key_chat", map[string]any{"code": 1})
	return nil
}

func (r *Router) onGetInfoSelf(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var req sealedRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.Key == "" {
		return apperrors.ErrValidation
	}
	profile, err := r.users.Self(ctx, c.userID)
	if err != nil {
		return err
	}
	return r.sealedReply(ctx, c, "get_info_self", req.Key, map[string]any{"code": 1, "user": profile})
}

func (r *Router) onSaveProfile(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		Data services.ProfilePatch `json:"data"`
	}
	if _, err := r.open(ctx, raw, &payload); err != nil {
		return err
	}
	if _, err := r.users.SaveProfile(ctx, c.userID, payload.Data); err != nil {
		return err
	}
	c.Reply(ctx, "save_profile", map[string]any{"code": 1})
	return nil
}

func (r *Router) onGetInfoUser(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		UserID string `json:"userId"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.UserID == "" {
		return apperrors.ErrValidation
	}
	profile, err := r.users.PublicProfile(ctx, payload.UserID)
	if err != nil {
		return err
	}
	c.Reply(ctx, "get_info_user_return", map[string]any{"code": 1, "user": profile, "type": payload.Type})
	return nil
}

func (r *Router) onGetInfoUsers(ctx context.Context, c *Conn, raw json.RawMessage) error {
	var payload struct {
		UserIDs []string `json:"userIds"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.UserIDs) == 0 {
		return apperrors.ErrValidation
	}
	profiles, err := r.users.PublicProfiles(ctx, payload.UserIDs)
	if err != nil {
		return err
	}
	c.Reply(ctx, "get_info_users_return", map[string]any{"code": 1, "users": profiles})
	return nil
}

func (r *Router) onNewServerRoom(ctx context.Context, c *Conn, raw json.RawMessage) error {
	if c.role != contract.RoleServer {
		return apperrors.ErrUnauthorized
	}
	var payload struct {
		Chat domain.Room `json:"chat"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperrors.ErrValidation
	}
	if err := r.rooms.AcceptServerRoom(ctx, payload.Chat); err != nil {
		return err
	}
	c.Reply(ctx, "send_new_chat_server", map[string]any{"code": 1})
	return nil
}

func (r *Router) onUpdateServerRoom(ctx context.Context, c *Conn, raw json.RawMessage) error {
	if c.role != contract.RoleServer {
		return apperrors.ErrUnauthorized
	}
	var payload struct {
		DataChat domain.Room `json:"dataChat"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperrors.ErrValidation
	}
	r.rooms.PatchServerRoom(c.id, payload.DataChat)
	return nil
}
