// Package services implements the relay's business operations on top of
// the repositories, the runtime state and the upstream collaborators. The
// socket layer decodes frames into the payload structs below and calls one
// service method per wire event.
package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "chat-relay/errors"
)

var validate = validator.New()

// validated wraps validator failures into the wire-visible validation kind.
func validated(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

// RoomSpec is the client's description of a room to create.
type RoomSpec struct {
	Name            string  `json:"name" validate:"required,max=128"`
	Desc            string  `json:"desc" validate:"max=1024"`
	Privacy         string  `json:"privacy" validate:"required,oneof=direct group temporary"`
	Avatar          string  `json:"avatar"`
	ExpirationHours float64 `json:"expirationHours" validate:"gte=0"`
	Password        string  `json:"password" validate:"max=128"`
}

// RoomPatch is a partial settings update. Nil avatar means keep the
// current one; a non-nil value passes through the upload collaborator.
type RoomPatch struct {
	Name   string  `json:"name" validate:"required,max=128"`
	Desc   string  `json:"desc" validate:"max=1024"`
	Avatar *string `json:"avatar"`
}

// MessageInput is the normalized body of a send_message request.
type MessageInput struct {
	Kind string     `json:"type" validate:"required,oneof=text file"`
	Text string     `json:"content"`
	File *FileInput `json:"file"`
}

// FileInput carries the binary payload of a file message, still base64.
type FileInput struct {
	Name   string `json:"fileName" validate:"required,max=256"`
	Size   int64  `json:"fileSize" validate:"gte=0"`
	Base64 string `json:"base64Data" validate:"required"`
}

// ProfilePatch mirrors RoomPatch for identities.
type ProfilePatch struct {
	Name   string  `json:"name" validate:"required,max=128"`
	Desc   string  `json:"desc" validate:"max=1024"`
	Avatar *string `json:"avatar"`
}
