package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity_AddChat_IsUnique(t *testing.T) {
	req := require.New(t)
	user := Identity{ID: "u1"}

	req.True(user.AddChat("room-a"))
	req.False(user.AddChat("room-a"))
	req.True(user.AddChat("room-b"))
	req.Equal([]string{"room-a", "room-b"}, user.Chats)

	req.True(user.RemoveChat("room-a"))
	req.False(user.RemoveChat("room-a"))
	req.Equal([]string{"room-b"}, user.Chats)
}

func TestIdentity_Profile_StripsSensitiveFields(t *testing.T) {
	req := require.New(t)
	user := Identity{
		ID:           "u1",
		Name:         "Alice",
		Email:        "alice@example.com",
		Desc:         "hi",
		Avatar:       "http://cdn/a.png",
		PasswordHash: "$argon2id$...",
		Chats:        []string{"room-a"},
	}

	profile := user.Profile()
	req.Equal("u1", profile.ID)
	req.Equal("Alice", profile.Name)
	req.Equal([]string{"room-a"}, profile.Chats)

	public := user.Public()
	req.Equal(PublicProfile{ID: "u1", Name: "Alice", Avatar: "http://cdn/a.png"}, public)
}
