//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"chat-relay/domain"
	apperrors "chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	Store(message domain.Message) error
	GetMessages(roomID string, cursor *string) ([]domain.Message, *string, error)
	Delete(roomID string, messageID string) error
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

func messageKeyPrefix(roomID string) string {
	return fmt.Sprintf("msg:%s:", roomID)
}

// Store persists a message in the room's append-only log.
// The key is formatted as "msg:{room_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the message UUID as a collision
//     disconnector if two messages arrive at the same nanosecond.
func (m MessageRepository) Store(message domain.Message) error {
	key := fmt.Sprintf("%s%019d:%s",
		messageKeyPrefix(message.Room),
		message.At.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	return storeErr("store message", err)
}

// GetMessages retrieves one page of a room's log using a reverse prefix
// scan: the newest page comes first, each page reads chronologically.
// Thanks to the padded timestamp in the key the scan order is exactly
// reverse-chronological; the page is flipped before returning. It stops
// once the configured limit is reached and returns an opaque cursor for
// the next page, nil once the log is exhausted.
func (m MessageRepository) GetMessages(roomID string, cursor *string) ([]domain.Message, *string, error) {
	var rawMessages [][]byte
	var lastKey string
	var hasMore bool
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := messageKeyPrefix(roomID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible timestamp, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(rawMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				hasMore = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				rawMessages = append(rawMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, storeErr("get messages", err)
	}

	messages := make([]domain.Message, 0, len(rawMessages))
	for _, b := range rawMessages {
		var message domain.Message
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	// Scan order is newest first; readers get the page in chronological
	// order.
	lo.Reverse(messages)
	if !hasMore {
		return messages, nil, nil
	}
	return messages, &lastKey, nil
}

// Delete removes a single message from a room's log. The message id alone
// does not address a key, so the room prefix is scanned for the matching
// uuid suffix.
func (m MessageRepository) Delete(roomID string, messageID string) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		defer it.Close()
		prefix := []byte(messageKeyPrefix(roomID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if strings.HasSuffix(key, ":"+messageID) {
				return txn.Delete([]byte(key))
			}
		}
		return apperrors.ErrMessageNotFound
	})
	if errors.Is(err, apperrors.ErrMessageNotFound) {
		return err
	}
	return storeErr("delete message", err)
}
