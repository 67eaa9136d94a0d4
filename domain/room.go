// Package domain contains core concepts of the chat relay.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"time"

	"github.com/samber/lo"
)

type RoomKind string

const (
	RoomDirect    RoomKind = "direct"
	RoomGroup     RoomKind = "group"
	RoomTemporary RoomKind = "temporary"
	// RoomServer marks a room hosted by a federated peer. It never has a
	// local config record; it only exists as a cached advertisement.
	RoomServer RoomKind = "server"
)

// Room is the per-room config record. It mirrors one durable document in
// the store; the participant set is a unique list and the owner is always
// a member.
type Room struct {
	ID           string   `json:"id"`
	Kind         RoomKind `json:"type"`
	Avatar       string   `json:"avatar"`
	Participants []string `json:"participants"`
	Name         string   `json:"name"`
	Desc         string   `json:"desc"`
	Owner        string   `json:"owner"`
	CreatedAt    time.Time `json:"createdAt"`

	// Temporary rooms only.
	ExpirationHours float64 `json:"expirationHours,omitempty"`
	Password        string  `json:"password,omitempty"`

	// Optional shared join secret, independent of membership.
	Key string `json:"key,omitempty"`
}

// AddParticipant inserts an identity into the participant set.
// Returns false when the identity was already a member.
func (r *Room) AddParticipant(identityID string) bool {
	if lo.Contains(r.Participants, identityID) {
		return false
	}
	r.Participants = append(r.Participants, identityID)
	return true
}

// RemoveParticipant drops an identity from the participant set.
// Returns false when the identity was not a member.
func (r *Room) RemoveParticipant(identityID string) bool {
	before := len(r.Participants)
	r.Participants = lo.Without(r.Participants, identityID)
	return len(r.Participants) != before
}

func (r *Room) HasParticipant(identityID string) bool {
	return lo.Contains(r.Participants, identityID)
}

// ExpiresAt resolves the absolute expiry of a temporary room.
// The second return is false for rooms that never expire.
func (r *Room) ExpiresAt() (time.Time, bool) {
	if r.Kind != RoomTemporary {
		return time.Time{}, false
	}
	return r.CreatedAt.Add(time.Duration(r.ExpirationHours * float64(time.Hour))), true
}

func (r *Room) Expired(now time.Time) bool {
	at, ok := r.ExpiresAt()
	return ok && !at.After(now)
}
