//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"chat-relay/domain"
	apperrors "chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
)

const userKeyPrefix = "user:"

type IUserRepository interface {
	Create(user domain.Identity) (domain.Identity, error)
	Get(userID string) (domain.Identity, error)
	GetMany(userIDs []string) (map[string]domain.Identity, error)
	Mutate(userID string, fn func(*domain.Identity) error) (domain.Identity, error)
	AddChat(userID, roomID string) error
	RemoveChat(userID, roomID string) error
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

func userKey(userID string) []byte {
	return []byte(userKeyPrefix + userID)
}

// Create persists a new identity record. Registration itself lives in the
// external authentication service; the relay's data layer still supports
// inserts for tooling and federated bootstrap.
func (u *UserRepository) Create(user domain.Identity) (domain.Identity, error) {
	if user.ID == "" {
		user.ID = domain.NewUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(user.ID)); err == nil {
			return apperrors.ErrConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		bytes, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), bytes)
	})
	if err != nil {
		return domain.Identity{}, storeErr("create user", err)
	}
	return user, nil
}

func (u *UserRepository) Get(userID string) (domain.Identity, error) {
	var user domain.Identity
	err := u.db.View(func(txn *badger.Txn) error {
		return readUser(txn, userID, &user)
	})
	if err != nil {
		return domain.Identity{}, storeErr("get user", err)
	}
	return user, nil
}

// GetMany resolves a batch of identity ids, skipping absent records so a
// room with a deleted participant still renders.
func (u *UserRepository) GetMany(userIDs []string) (map[string]domain.Identity, error) {
	result := make(map[string]domain.Identity, len(userIDs))
	err := u.db.View(func(txn *badger.Txn) error {
		for _, id := range userIDs {
			var user domain.Identity
			err := readUser(txn, id, &user)
			if errors.Is(err, apperrors.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			result[id] = user
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("get users", err)
	}
	return result, nil
}

// Mutate applies fn to the identity record atomically, same contract as
// RoomRepository.Mutate.
func (u *UserRepository) Mutate(userID string, fn func(*domain.Identity) error) (domain.Identity, error) {
	var user domain.Identity
	err := u.db.Update(func(txn *badger.Txn) error {
		if err := readUser(txn, userID, &user); err != nil {
			return err
		}
		if err := fn(&user); err != nil {
			return err
		}
		bytes, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(userID), bytes)
	})
	if err != nil {
		return domain.Identity{}, storeErr("mutate user", err)
	}
	return user, nil
}

// AddChat idempotently links a room into the membership list.
func (u *UserRepository) AddChat(userID, roomID string) error {
	_, err := u.Mutate(userID, func(user *domain.Identity) error {
		user.AddChat(roomID)
		return nil
	})
	return err
}

// RemoveChat idempotently unlinks a room from the membership list.
func (u *UserRepository) RemoveChat(userID, roomID string) error {
	_, err := u.Mutate(userID, func(user *domain.Identity) error {
		user.RemoveChat(roomID)
		return nil
	})
	return err
}

func readUser(txn *badger.Txn, userID string, out *domain.Identity) error {
	item, err := txn.Get(userKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
