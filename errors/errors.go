package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrConflict        = fmt.Errorf("conflict")
	ErrValidation      = fmt.Errorf("invalid payload")
	ErrUpstream        = fmt.Errorf("upstream failure")
	ErrStore           = fmt.Errorf("store failure")

	ErrAlreadyAttached = fmt.Errorf("connection already authenticated")
	ErrDecryption      = fmt.Errorf("%w: decryption failed", ErrUpstream)
	ErrEncryption      = fmt.Errorf("%w: encryption failed", ErrUpstream)
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrSinkClosed      = fmt.Errorf("sink closed")
	ErrSlowConsumer    = fmt.Errorf("slow consumer")
)

// Wire failure labels sent back to clients in `{code:0, error:<label>}`
// responses. Raw upstream details never leave the process.
const (
	labelUnauthorized = "unauthorized"
	labelNotFound     = "not_found"
	labelConflict     = "conflict"
	labelValidation   = "error_params"
	labelUpstream     = "upstream_error"
	labelServer       = "server_error"
)

// WireLabel maps an internal error to the label exposed on the wire.
// Unknown errors collapse to a generic server_error so persistence or
// collaborator details cannot leak to clients.
func WireLabel(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAlreadyAttached):
		return labelUnauthorized
	case errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrMessageNotFound):
		return labelNotFound
	case errors.Is(err, ErrConflict):
		return labelConflict
	case errors.Is(err, ErrValidation):
		return labelValidation
	case errors.Is(err, ErrUpstream):
		return labelUpstream
	default:
		return labelServer
	}
}

// Disconnects reports whether the error must terminate the transport.
// The access-control policy is fail closed: any credential failure kills
// the connection, everything else is answered with a failure frame.
func Disconnects(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrAlreadyAttached)
}
