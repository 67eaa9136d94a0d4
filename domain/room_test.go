package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoom_AddParticipant_IsUnique(t *testing.T) {
	req := require.New(t)
	room := Room{Participants: []string{"alice"}}

	req.True(room.AddParticipant("bob"))
	req.False(room.AddParticipant("bob"))
	req.Equal([]string{"alice", "bob"}, room.Participants)
}

func TestRoom_RemoveParticipant(t *testing.T) {
	req := require.New(t)
	room := Room{Participants: []string{"alice", "bob"}}

	req.True(room.RemoveParticipant("alice"))
	req.False(room.RemoveParticipant("alice"))
	req.Equal([]string{"bob"}, room.Participants)
	req.True(room.HasParticipant("bob"))
	req.False(room.HasParticipant("alice"))
}

func TestRoom_ExpiresAt_OnlyForTemporary(t *testing.T) {
	req := require.New(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	permanent := Room{Kind: RoomGroup, CreatedAt: createdAt, ExpirationHours: 2}
	_, ok := permanent.ExpiresAt()
	req.False(ok)
	req.False(permanent.Expired(createdAt.Add(100 * time.Hour)))

	temporary := Room{Kind: RoomTemporary, CreatedAt: createdAt, ExpirationHours: 1.5}
	at, ok := temporary.ExpiresAt()
	req.True(ok)
	req.Equal(createdAt.Add(90*time.Minute), at)
}

func TestRoom_Expired_BoundaryIsInclusive(t *testing.T) {
	req := require.New(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	room := Room{Kind: RoomTemporary, CreatedAt: createdAt, ExpirationHours: 1}

	deadline := createdAt.Add(time.Hour)
	req.False(room.Expired(deadline.Add(-time.Second)))
	req.True(room.Expired(deadline))
	req.True(room.Expired(deadline.Add(time.Second)))
}
