package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	MessageText MessageKind = "text"
	MessageFile MessageKind = "file"
)

// FileRef replaces a file message body once the binary payload has been
// handed to the upload collaborator. An empty URL means the upload failed
// softly and only the metadata survives.
type FileRef struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
	Mime string `json:"mime,omitempty"`
}

// Message is one immutable entry of a room's append-only log.
type Message struct {
	ID     uuid.UUID   `json:"id"`
	Room   string      `json:"chatId"`
	Sender string      `json:"sender"`
	Kind   MessageKind `json:"type"`
	Text   string      `json:"content,omitempty"`
	File   *FileRef    `json:"file,omitempty"`
	At     time.Time   `json:"time"`
}
