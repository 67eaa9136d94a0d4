package runtime

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync"
	"time"

	"chat-relay/domain"
	apperrors "chat-relay/errors"
)

// RoomDeleter cascades a room deletion: the room record, its messages and
// its membership references. Wired to the room service at startup.
type RoomDeleter func(ctx context.Context, roomID string) error

// RoomExists reports whether the room is still present in the store.
type RoomExists func(roomID string) (bool, error)

type trackedRoom struct {
	roomID    string
	createdAt time.Time
	expiresAt time.Time
	password  string
}

// Lifecycle tracks temporary rooms and their deadlines. Expiry is lazy:
// nothing fires on a timer, expired entries are collected and their rooms
// cascade-deleted the next time anyone asks for the active set. The list
// is also reconciled against the store so that a room deleted by its owner
// disappears from listings without waiting for its deadline.
type Lifecycle struct {
	mu      sync.Mutex
	entries []trackedRoom
	deleter RoomDeleter
	exists  RoomExists
	log     *slog.Logger
}

func NewLifecycle(log *slog.Logger) *Lifecycle {
	return &Lifecycle{log: log}
}

// Bind wires the store callbacks. Called once at startup, after the room
// service exists; the lifecycle cannot depend on it directly.
func (l *Lifecycle) Bind(deleter RoomDeleter, exists RoomExists) {
	l.deleter = deleter
	l.exists = exists
}

// Track registers a temporary room. Rooms of any other kind and duplicate
// ids are ignored.
func (l *Lifecycle) Track(room domain.Room) {
	if room.Kind != domain.RoomTemporary {
		return
	}
	expiresAt, ok := room.ExpiresAt()
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.roomID == room.ID {
			return
		}
	}
	l.entries = append(l.entries, trackedRoom{
		roomID:    room.ID,
		createdAt: room.CreatedAt,
		expiresAt: expiresAt,
		password:  room.Password,
	})
}

// Seed registers a batch of stored rooms at startup, so deadlines of
// temporary rooms that survived a restart are enforced again. Track
// filters out every other kind.
func (l *Lifecycle) Seed(rooms []domain.Room) {
	for _, room := range rooms {
		l.Track(room)
	}
}

// Untrack drops a room from the list without deleting anything, for rooms
// removed through the normal delete path.
func (l *Lifecycle) Untrack(roomID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, entry := range l.entries {
		if entry.roomID == roomID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// Active purges expired and vanished entries, cascade-deleting the rooms
// whose deadline passed, then returns the ids of the survivors. The lock
// is not held across deleter or exists calls; the cascade delete may call
// back into Untrack. A failed cascade delete is logged and the entry kept
// for the next pass.
func (l *Lifecycle) Active(ctx context.Context) []string {
	now := time.Now()

	l.mu.Lock()
	snapshot := make([]trackedRoom, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	active := make([]string, 0, len(snapshot))
	for _, entry := range snapshot {
		if now.After(entry.expiresAt) {
			if l.deleter != nil {
				if err := l.deleter(ctx, entry.roomID); err != nil {
					l.log.Error("failed to delete expired room", "room_id", entry.roomID, "error", err)
					continue
				}
			}
			l.Untrack(entry.roomID)
			continue
		}
		if l.exists != nil {
			ok, err := l.exists(entry.roomID)
			if err != nil {
				l.log.Error("failed to check room existence", "room_id", entry.roomID, "error", err)
			} else if !ok {
				l.Untrack(entry.roomID)
				continue
			}
		}
		active = append(active, entry.roomID)
	}
	return active
}

// CheckPassword verifies a join password against a tracked room. Rooms
// without a password accept any input.
func (l *Lifecycle) CheckPassword(roomID, password string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.roomID != roomID {
			continue
		}
		if entry.password == "" {
			return nil
		}
		if subtle.ConstantTimeCompare([]byte(entry.password), []byte(password)) == 1 {
			return nil
		}
		return apperrors.ErrUnauthorized
	}
	return apperrors.ErrRoomNotFound
}
