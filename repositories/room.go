//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/domain"
	apperrors "chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	roomKeyPrefix = "room:"
	// Create gives up regenerating ids after this many collisions; with a
	// 24-char random id this effectively never happens.
	maxIDAttempts = 16
)

type IRoomRepository interface {
	Create(spec domain.Room) (domain.Room, error)
	Get(roomID string) (domain.Room, error)
	GetMany(roomIDs []string) (map[string]domain.Room, error)
	List() ([]domain.Room, error)
	Exists(roomID string) (bool, error)
	Mutate(roomID string, fn func(*domain.Room) error) (domain.Room, error)
	Delete(roomID string) error
	FindByKey(key string) (domain.Room, error)
}

type RoomRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) *RoomRepository {
	return &RoomRepository{db: db, log: log}
}

func roomKey(roomID string) []byte {
	return []byte(roomKeyPrefix + roomID)
}

// Create persists the initial room record. The candidate id is generated
// here and regenerated until it does not collide with an existing room;
// the uniqueness check and the insert commit in the same transaction.
func (r *RoomRepository) Create(spec domain.Room) (domain.Room, error) {
	if spec.CreatedAt.IsZero() {
		spec.CreatedAt = time.Now().UTC()
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			spec.ID = domain.NewRoomID()
			_, err := txn.Get(roomKey(spec.ID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				bytes, err := json.Marshal(spec)
				if err != nil {
					return err
				}
				return txn.Set(roomKey(spec.ID), bytes)
			}
			if err != nil {
				return err
			}
			r.log.Warn("room id collision, regenerating", "room_id", spec.ID)
		}
		return apperrors.ErrConflict
	})
	if err != nil {
		return domain.Room{}, storeErr("create room", err)
	}
	return spec, nil
}

func (r *RoomRepository) Get(roomID string) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		return readRoom(txn, roomID, &room)
	})
	if err != nil {
		return domain.Room{}, storeErr("get room", err)
	}
	return room, nil
}

// GetMany resolves a batch of room ids, silently skipping ids that no
// longer exist. Membership lists may carry stale ids; the caller prunes.
func (r *RoomRepository) GetMany(roomIDs []string) (map[string]domain.Room, error) {
	result := make(map[string]domain.Room, len(roomIDs))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range roomIDs {
			var room domain.Room
			err := readRoom(txn, id, &room)
			if errors.Is(err, apperrors.ErrRoomNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			result[id] = room
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("get rooms", err)
	}
	return result, nil
}

func (r *RoomRepository) List() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(roomKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var room domain.Room
				if err := json.Unmarshal(val, &room); err != nil {
					return err
				}
				rooms = append(rooms, room)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("list rooms", err)
	}
	return rooms, nil
}

func (r *RoomRepository) Exists(roomID string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(roomKey(roomID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("room exists", err)
	}
	return true, nil
}

// Mutate applies fn to the room record inside a single transaction: the
// read, the mutation and the write commit atomically, so two racing
// participant updates cannot lose each other.
func (r *RoomRepository) Mutate(roomID string, fn func(*domain.Room) error) (domain.Room, error) {
	var room domain.Room
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := readRoom(txn, roomID, &room); err != nil {
			return err
		}
		if err := fn(&room); err != nil {
			return err
		}
		bytes, err := json.Marshal(room)
		if err != nil {
			return err
		}
		return txn.Set(roomKey(roomID), bytes)
	})
	if err != nil {
		return domain.Room{}, storeErr("mutate room", err)
	}
	return room, nil
}

// Delete drops the room record and its whole message log. Removal from the
// participants' membership lists is orchestrated by the caller, which must
// tolerate missing participant records.
func (r *RoomRepository) Delete(roomID string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(roomKey(roomID)); err != nil {
			return err
		}
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		defer it.Close()
		prefix := []byte(messageKeyPrefix(roomID))
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeErr("delete room", err)
	}
	return nil
}

// FindByKey scans every room for a matching join secret. O(rooms), which is
// acceptable because key-based join is rare and admin-scale. First match
// wins; iteration order over the keyspace is not meaningful to callers.
func (r *RoomRepository) FindByKey(key string) (domain.Room, error) {
	if key == "" {
		return domain.Room{}, apperrors.ErrRoomNotFound
	}
	rooms, err := r.List()
	if err != nil {
		return domain.Room{}, err
	}
	for _, room := range rooms {
		if room.Key == key {
			return room, nil
		}
	}
	return domain.Room{}, apperrors.ErrRoomNotFound
}

func readRoom(txn *badger.Txn, roomID string, out *domain.Room) error {
	item, err := txn.Get(roomKey(roomID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// storeErr keeps domain errors visible to errors.Is while tagging real
// persistence failures as ErrStore.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrRoomNotFound) ||
		errors.Is(err, apperrors.ErrUserNotFound) ||
		errors.Is(err, apperrors.ErrMessageNotFound) ||
		errors.Is(err, apperrors.ErrConflict) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStore, op, err)
}
