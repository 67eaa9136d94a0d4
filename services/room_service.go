package services

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	apperrors "chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/runtime"
)

type IRoomService interface {
	Create(ctx context.Context, ownerID string, spec RoomSpec) (domain.Room, error)
	CreateTemporary(ctx context.Context, ownerID string, spec RoomSpec) (domain.Room, error)
	AddParticipant(ctx context.Context, roomID, userID string) error
	RemoveParticipant(ctx context.Context, roomID, userID string) error
	RemoveSelf(ctx context.Context, roomID, userID string) error
	Delete(ctx context.Context, roomID string) error
	SaveSettings(ctx context.Context, callerID, roomID string, patch RoomPatch) error
	Rekey(ctx context.Context, roomID string) (string, error)
	GetKey(ctx context.Context, roomID string) (string, error)
	DropKey(ctx context.Context, roomID string) error
	JoinByKey(ctx context.Context, userID, key, password string) (string, error)
	Info(ctx context.Context, roomID string, serverHosted bool) (domain.Room, error)
	InfoMany(ctx context.Context, callerID string, roomIDs []string) (map[string]domain.Room, error)
	AcceptServerRoom(ctx context.Context, room domain.Room) error
	PatchServerRoom(connID string, patch domain.Room)
}

// RoomService is the room directory: creation, membership, settings, the
// shared join key and the cascading delete. It also owns the glue between
// locally persisted rooms and rooms advertised by federated servers.
type RoomService struct {
	rooms       repositories.IRoomRepository
	users       repositories.IUserRepository
	registry    contract.IRegistry
	serverCache contract.IServerCache
	lifecycle   *runtime.Lifecycle
	uploader    contract.Uploader
	site        contract.ExpiryTracker
	mailer      contract.Mailer
	log         *slog.Logger
}

func NewRoomService(
	log *slog.Logger,
	rooms repositories.IRoomRepository,
	users repositories.IUserRepository,
	registry contract.IRegistry,
	serverCache contract.IServerCache,
	lifecycle *runtime.Lifecycle,
	uploader contract.Uploader,
	site contract.ExpiryTracker,
	mailer contract.Mailer,
) *RoomService {
	return &RoomService{
		rooms:       rooms,
		users:       users,
		registry:    registry,
		serverCache: serverCache,
		lifecycle:   lifecycle,
		uploader:    uploader,
		site:        site,
		mailer:      mailer,
		log:         log,
	}
}

// Create persists a new room with the owner as sole participant and links
// it into the owner's membership list. Avatar upload failures are soft:
// the room is created with an empty reference.
func (s *RoomService) Create(ctx context.Context, ownerID string, spec RoomSpec) (domain.Room, error) {
	if err := validated(spec); err != nil {
		return domain.Room{}, err
	}

	room, err := s.rooms.Create(domain.Room{
		Kind:         domain.RoomKind(spec.Privacy),
		Avatar:       s.uploadAvatar(ctx, spec.Avatar),
		Participants: []string{ownerID},
		Name:         spec.Name,
		Desc:         spec.Desc,
		Owner:        ownerID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.Room{}, err
	}

	if err := s.users.AddChat(ownerID, room.ID); err != nil {
		return domain.Room{}, err
	}

	s.notifyNewRoom(ctx, room)
	return room, nil
}

// CreateTemporary is Create plus the time-box bookkeeping: the room is
// tracked for expiry, registered with the public site before the caller is
// acknowledged, and the join password is mailed to the owner when one is
// set. Site and mail failures are soft.
func (s *RoomService) CreateTemporary(ctx context.Context, ownerID string, spec RoomSpec) (domain.Room, error) {
	if err := validated(spec); err != nil {
		return domain.Room{}, err
	}

	// Zero hours is a valid deadline: the room expires at its own creation
	// time and the next listing reaps it.
	room, err := s.rooms.Create(domain.Room{
		Kind:            domain.RoomTemporary,
		Avatar:          s.uploadAvatar(ctx, spec.Avatar),
		Participants:    []string{ownerID},
		Name:            spec.Name,
		Desc:            spec.Desc,
		Owner:           ownerID,
		CreatedAt:       time.Now().UTC(),
		ExpirationHours: spec.ExpirationHours,
		Password:        spec.Password,
	})
	if err != nil {
		return domain.Room{}, err
	}

	if err := s.users.AddChat(ownerID, room.ID); err != nil {
		return domain.Room{}, err
	}

	s.lifecycle.Track(room)

	if s.site != nil {
		err := s.site.RegisterTemporaryRoom(ctx, room.ID,
			room.CreatedAt.Format(time.RFC3339), room.ExpirationHours, room.Password)
		if err != nil {
			s.log.Warn("site registration failed", "room_id", room.ID, "error", err)
		}
	}

	if s.mailer != nil && room.Password != "" {
		s.mailPassword(room)
	}

	s.notifyNewRoom(ctx, room)
	return room, nil
}

// mailPassword sends the join password to the owner's registered address,
// fire-and-forget.
func (s *RoomService) mailPassword(room domain.Room) {
	owner, err := s.users.Get(room.Owner)
	if err != nil || owner.Email == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.SendVerificationCode(ctx, owner.Email, room.Password); err != nil {
			s.log.Warn("join password mail failed", "room_id", room.ID, "error", err)
		}
	}()
}

// notifyNewRoom pushes the created room to every live connection of its
// owner, so other devices of the same account pick it up immediately.
func (s *RoomService) notifyNewRoom(ctx context.Context, room domain.Room) {
	frame := contract.Frame{Event: "create_new_chat", Data: map[string]any{
		"code":   1,
		"chatId": room.ID,
		"chat":   room,
	}}
	for _, sink := range s.registry.FindByIdentity(room.Owner) {
		if err := sink.Deliver(ctx, frame); err != nil {
			s.log.Debug("create notification dropped", "room_id", room.ID, "error", err)
		}
	}
}

func (s *RoomService) AddParticipant(ctx context.Context, roomID, userID string) error {
	_, err := s.rooms.Mutate(roomID, func(room *domain.Room) error {
		room.AddParticipant(userID)
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.users.AddChat(userID, roomID); err != nil {
		s.log.Warn("membership backlink failed", "room_id", roomID, "user_id", userID, "error", err)
	}
	return nil
}

func (s *RoomService) RemoveParticipant(ctx context.Context, roomID, userID string) error {
	_, err := s.rooms.Mutate(roomID, func(room *domain.Room) error {
		room.RemoveParticipant(userID)
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.users.RemoveChat(userID, roomID); err != nil {
		s.log.Warn("membership backlink failed", "room_id", roomID, "user_id", userID, "error", err)
	}
	return nil
}

// RemoveSelf is the "leave chat" path, RemoveParticipant scoped to the
// caller's own identity.
func (s *RoomService) RemoveSelf(ctx context.Context, roomID, userID string) error {
	return s.RemoveParticipant(ctx, roomID, userID)
}

// Delete cascades: the room id is unlinked from every participant's
// membership list, then the room record and its message log are dropped.
// Missing participant records are skipped, never abort the deletion.
func (s *RoomService) Delete(ctx context.Context, roomID string) error {
	room, err := s.rooms.Get(roomID)
	if err != nil {
		return err
	}

	for _, userID := range room.Participants {
		if err := s.users.RemoveChat(userID, roomID); err != nil {
			s.log.Warn("participant unlink skipped", "room_id", roomID, "user_id", userID, "error", err)
		}
	}

	if err := s.rooms.Delete(roomID); err != nil {
		return err
	}
	s.lifecycle.Untrack(roomID)
	return nil
}

// SaveSettings patches name, description and avatar. Rooms hosted by a
// federated server are not patched locally: the request is redirected to
// the hosting connection, which owns the record.
func (s *RoomService) SaveSettings(ctx context.Context, callerID, roomID string, patch RoomPatch) error {
	if err := validated(patch); err != nil {
		return err
	}

	if serverConn, ok := s.serverCache.ServerForRoom(roomID); ok {
		return s.redirect(ctx, serverConn, contract.Frame{
			Event: "save_settings_chat",
			Data: map[string]any{
				"idChat":   roomID,
				"from":     callerID,
				"dataChat": patch,
			},
		})
	}

	avatar := ""
	if patch.Avatar != nil {
		avatar = s.uploadAvatar(ctx, *patch.Avatar)
	}

	_, err := s.rooms.Mutate(roomID, func(room *domain.Room) error {
		room.Name = patch.Name
		room.Desc = patch.Desc
		if patch.Avatar != nil {
			room.Avatar = avatar
		}
		return nil
	})
	return err
}

// Rekey issues a fresh shared join key for the room.
func (s *RoomService) Rekey(ctx context.Context, roomID string) (string, error) {
	newKey := domain.NewJoinKey()
	_, err := s.rooms.Mutate(roomID, func(room *domain.Room) error {
		room.Key = newKey
		return nil
	})
	if err != nil {
		return "", err
	}
	return newKey, nil
}

func (s *RoomService) GetKey(ctx context.Context, roomID string) (string, error) {
	room, err := s.rooms.Get(roomID)
	if err != nil {
		return "", err
	}
	return room.Key, nil
}

// DropKey unsets the join key. The room survives; joining by key simply
// stops matching it.
func (s *RoomService) DropKey(ctx context.Context, roomID string) error {
	_, err := s.rooms.Mutate(roomID, func(room *domain.Room) error {
		room.Key = ""
		return nil
	})
	return err
}

// JoinByKey scans all rooms for a matching join key, first match wins,
// and joins the caller to it. Temporary rooms additionally gate the join
// on their password. A key matching nothing mutates no state.
func (s *RoomService) JoinByKey(ctx context.Context, userID, key, password string) (string, error) {
	room, err := s.rooms.FindByKey(key)
	if err != nil {
		return "", err
	}
	if room.Kind == domain.RoomTemporary {
		// Track is a no-op for known rooms and re-registers rooms the
		// tracker lost, so the password check always finds its entry.
		s.lifecycle.Track(room)
		if err := s.lifecycle.CheckPassword(room.ID, password); err != nil {
			return "", err
		}
	}
	if err := s.AddParticipant(ctx, room.ID, userID); err != nil {
		return "", err
	}
	return room.ID, nil
}

// Info resolves one room, either from the local store or, for
// server-hosted rooms, from the advertisement cache.
func (s *RoomService) Info(ctx context.Context, roomID string, serverHosted bool) (domain.Room, error) {
	if serverHosted {
		cached := s.serverCache.RoomsByIDs([]string{roomID})
		room, ok := cached[roomID]
		if !ok {
			return domain.Room{}, apperrors.ErrRoomNotFound
		}
		return room, nil
	}
	return s.rooms.Get(roomID)
}

// InfoMany resolves a batch of rooms for a caller, consulting the local
// store first and the server cache for the rest. Requested ids that exist
// nowhere are pruned from the caller's membership list.
func (s *RoomService) InfoMany(ctx context.Context, callerID string, roomIDs []string) (map[string]domain.Room, error) {
	// Listing is the lazy reaping trigger: expired temporary rooms are
	// cascade-deleted before the batch read so they never show up here.
	s.lifecycle.Active(ctx)

	found, err := s.rooms.GetMany(roomIDs)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, id := range roomIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	for id, room := range s.serverCache.RoomsByIDs(missing) {
		found[id] = room
	}

	for _, id := range roomIDs {
		if _, ok := found[id]; ok {
			continue
		}
		if err := s.users.RemoveChat(callerID, id); err != nil {
			s.log.Debug("stale membership prune failed", "user_id", callerID, "room_id", id, "error", err)
		}
	}
	return found, nil
}

// AcceptServerRoom handles a federated server announcing a room created on
// its side for a local user: the owner's membership list gains the room id
// and the owner's live connections are notified.
func (s *RoomService) AcceptServerRoom(ctx context.Context, room domain.Room) error {
	if room.ID == "" || room.Owner == "" {
		return apperrors.ErrValidation
	}
	if err := s.users.AddChat(room.Owner, room.ID); err != nil {
		return err
	}
	s.notifyNewRoom(ctx, room)
	return nil
}

// PatchServerRoom merges a federated server's update into its own cached
// advertisement.
func (s *RoomService) PatchServerRoom(connID string, patch domain.Room) {
	s.serverCache.UpdateRoom(connID, patch)
}

// redirect delivers a frame to the federated connection hosting a room.
func (s *RoomService) redirect(ctx context.Context, serverConn string, frame contract.Frame) error {
	sink, ok := s.registry.SinkByConn(serverConn)
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	return sink.Deliver(ctx, frame)
}

// uploadAvatar trades a base64 payload for a stored reference. Soft
// failure: an upload error becomes an empty reference, the parent
// operation proceeds.
func (s *RoomService) uploadAvatar(ctx context.Context, base64Data string) string {
	if base64Data == "" {
		return ""
	}
	url, err := s.uploader.UploadAvatar(ctx, base64Data)
	if err != nil {
		s.log.Warn("avatar upload failed", "error", err)
		return ""
	}
	return url
}
