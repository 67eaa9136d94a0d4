package domain

import (
	"time"

	"github.com/samber/lo"
)

// Identity is a registered end-user account. The chats list is the user's
// room-membership list, ordered by insertion; it may carry stale room ids
// which are pruned lazily when the list is read against the store.
type Identity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Desc         string    `json:"desc"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"password"`
	Chats        []string  `json:"chats"`
	CreatedAt    time.Time `json:"time"`
}

// AddChat appends a room id to the membership list, keeping it a set.
func (u *Identity) AddChat(roomID string) bool {
	if lo.Contains(u.Chats, roomID) {
		return false
	}
	u.Chats = append(u.Chats, roomID)
	return true
}

func (u *Identity) RemoveChat(roomID string) bool {
	before := len(u.Chats)
	u.Chats = lo.Without(u.Chats, roomID)
	return len(u.Chats) != before
}

// Profile is the transformed, non-sensitive projection of an Identity
// returned to authenticated callers.
type Profile struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Desc   string   `json:"desc"`
	Avatar string   `json:"avatar"`
	Chats  []string `json:"chats"`
}

func (u Identity) Profile() Profile {
	return Profile{
		ID:     u.ID,
		Name:   u.Name,
		Desc:   u.Desc,
		Avatar: u.Avatar,
		Chats:  u.Chats,
	}
}

// PublicProfile is the subset other participants may see.
type PublicProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (u Identity) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
