package services

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/repositories"
)

type IMessageService interface {
	Send(ctx context.Context, senderID, roomID string, input MessageInput) (domain.Message, error)
	Delete(ctx context.Context, callerID, roomID, messageID string) error
	LoadContent(ctx context.Context, roomID string, cursor *string, withHistory bool) (ChatContent, error)
}

// ChatContent is one page of a room's log plus the public profiles of its
// participants, newest page first, each page in chronological order.
type ChatContent struct {
	RoomID       string                          `json:"chatId"`
	Messages     []domain.Message                `json:"messages"`
	Participants map[string]domain.PublicProfile `json:"participants"`
	NextCursor   *string                         `json:"cursor,omitempty"`
}

// MessageService is the fan-out engine: it normalizes bodies, persists
// them and pushes the persisted record to every participant's live
// connections. Persistence always happens before any broadcast, so a
// received frame is proof of a durable record.
type MessageService struct {
	messages    repositories.IMessageRepository
	rooms       repositories.IRoomRepository
	users       repositories.IUserRepository
	registry    contract.IRegistry
	serverCache contract.IServerCache
	uploader    contract.Uploader
	log         *slog.Logger
}

func NewMessageService(
	log *slog.Logger,
	messages repositories.IMessageRepository,
	rooms repositories.IRoomRepository,
	users repositories.IUserRepository,
	registry contract.IRegistry,
	serverCache contract.IServerCache,
	uploader contract.Uploader,
) *MessageService {
	return &MessageService{
		messages:    messages,
		rooms:       rooms,
		users:       users,
		registry:    registry,
		serverCache: serverCache,
		uploader:    uploader,
		log:         log,
	}
}

// Send persists then broadcasts. Rooms hosted by a federated server are
// not persisted here: the whole event is redirected to the hosting
// connection, which runs its own fan-out.
func (s *MessageService) Send(ctx context.Context, senderID, roomID string, input MessageInput) (domain.Message, error) {
	if err := validated(input); err != nil {
		return domain.Message{}, err
	}

	if serverConn, ok := s.serverCache.ServerForRoom(roomID); ok {
		msg := domain.Message{
			ID:     uuid.New(),
			Room:   roomID,
			Sender: senderID,
			Kind:   domain.MessageKind(input.Kind),
			Text:   input.Text,
			At:     time.Now().UTC(),
		}
		return msg, s.redirect(ctx, serverConn, contract.Frame{
			Event: "send_message",
			Data: map[string]any{
				"idChat":  roomID,
				"from":    senderID,
				"message": msg,
			},
		})
	}

	room, err := s.rooms.Get(roomID)
	if err != nil {
		return domain.Message{}, err
	}
	if !room.HasParticipant(senderID) {
		return domain.Message{}, apperrors.ErrUnauthorized
	}

	msg := domain.Message{
		ID:     uuid.New(),
		Room:   roomID,
		Sender: senderID,
		Kind:   domain.MessageKind(input.Kind),
		At:     time.Now().UTC(),
	}
	switch msg.Kind {
	case domain.MessageFile:
		if input.File == nil {
			return domain.Message{}, apperrors.ErrValidation
		}
		msg.File = s.normalizeFile(ctx, input.File)
	default:
		msg.Text = input.Text
	}

	if err := s.messages.Store(msg); err != nil {
		return domain.Message{}, err
	}

	s.broadcast(ctx, room, contract.Frame{Event: "send_message_return", Data: map[string]any{
		"code": 1,
		"data": msg,
	}})
	return msg, nil
}

// normalizeFile trades the binary payload for a stored reference and
// sniffs the MIME type from the decoded bytes. Upload failures are soft:
// the record keeps name and size with an empty URL.
func (s *MessageService) normalizeFile(ctx context.Context, file *FileInput) *domain.FileRef {
	ref := &domain.FileRef{Name: file.Name, Size: file.Size}

	raw := file.Base64
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		ref.Mime = mimetype.Detect(decoded).String()
	}

	url, err := s.uploader.UploadFile(ctx, file.Base64, file.Name)
	if err != nil {
		s.log.Warn("file upload failed", "name", file.Name, "error", err)
		return ref
	}
	ref.URL = url
	return ref
}

// broadcast delivers a frame to every live connection of every room
// participant. A dead or slow connection drops its copy; nothing retries.
func (s *MessageService) broadcast(ctx context.Context, room domain.Room, frame contract.Frame) {
	for _, userID := range room.Participants {
		for _, sink := range s.registry.FindByIdentity(userID) {
			if err := sink.Deliver(ctx, frame); err != nil {
				s.log.Debug("broadcast frame dropped", "room_id", room.ID, "user_id", userID, "error", err)
			}
		}
	}
}

// Delete removes one message from the log. Server-hosted rooms redirect
// to the hosting connection.
func (s *MessageService) Delete(ctx context.Context, callerID, roomID, messageID string) error {
	if serverConn, ok := s.serverCache.ServerForRoom(roomID); ok {
		return s.redirect(ctx, serverConn, contract.Frame{
			Event: "del_msg",
			Data: map[string]any{
				"idChat": roomID,
				"from":   callerID,
				"idMsg":  messageID,
			},
		})
	}
	return s.messages.Delete(roomID, messageID)
}

// LoadContent returns one page of history plus participant profiles.
// Clients opening a room in the background ask for participants only,
// withHistory false, and skip the log read entirely. Participants with no
// identity record still appear, with empty profile fields, so old rooms
// keep rendering.
func (s *MessageService) LoadContent(ctx context.Context, roomID string, cursor *string, withHistory bool) (ChatContent, error) {
	room, err := s.rooms.Get(roomID)
	if err != nil {
		return ChatContent{}, err
	}

	profiles := make(map[string]domain.PublicProfile, len(room.Participants))
	users, err := s.users.GetMany(room.Participants)
	if err != nil {
		return ChatContent{}, err
	}
	for _, userID := range room.Participants {
		if user, ok := users[userID]; ok {
			profiles[userID] = user.Public()
		} else {
			profiles[userID] = domain.PublicProfile{ID: userID}
		}
	}

	if !withHistory {
		return ChatContent{RoomID: roomID, Participants: profiles}, nil
	}

	messages, next, err := s.messages.GetMessages(roomID, cursor)
	if err != nil {
		return ChatContent{}, err
	}

	return ChatContent{
		RoomID:       roomID,
		Messages:     messages,
		Participants: profiles,
		NextCursor:   next,
	}, nil
}

func (s *MessageService) redirect(ctx context.Context, serverConn string, frame contract.Frame) error {
	sink, ok := s.registry.SinkByConn(serverConn)
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	return sink.Deliver(ctx, frame)
}
