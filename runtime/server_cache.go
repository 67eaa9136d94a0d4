package runtime

import (
	"log/slog"
	"sync"

	"chat-relay/domain"
)

// ServerRoomCache holds room advertisements from federated relay servers.
// An advertisement is the batch of rooms a peer server presented when it
// authenticated; it lives exactly as long as the peer's connection and is
// dropped wholesale when the connection goes away.
type ServerRoomCache struct {
	mu      sync.RWMutex
	servers map[string]map[string]domain.Room
	log     *slog.Logger
}

func NewServerRoomCache(log *slog.Logger) *ServerRoomCache {
	return &ServerRoomCache{
		servers: make(map[string]map[string]domain.Room),
		log:     log,
	}
}

// AddServer records a peer's advertised rooms, replacing any previous
// advertisement from the same connection.
func (c *ServerRoomCache) AddServer(connID string, rooms []domain.Room) {
	byID := make(map[string]domain.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	c.mu.Lock()
	c.servers[connID] = byID
	c.mu.Unlock()

	c.log.Debug("server rooms advertised", "conn_id", connID, "rooms", len(byID))
}

func (c *ServerRoomCache) RemoveServer(connID string) {
	c.mu.Lock()
	delete(c.servers, connID)
	c.mu.Unlock()
}

// RoomsByIDs resolves ids against every live advertisement. When two
// servers advertise the same room id, the first one found wins; peers are
// expected to keep ids globally unique so the case is theoretical.
func (c *ServerRoomCache) RoomsByIDs(ids []string) map[string]domain.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]domain.Room)
	for _, id := range ids {
		for _, rooms := range c.servers {
			if room, ok := rooms[id]; ok {
				found[id] = room
				break
			}
		}
	}
	return found
}

// ServerForRoom returns the connection id of the peer hosting a room.
func (c *ServerRoomCache) ServerForRoom(roomID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for connID, rooms := range c.servers {
		if _, ok := rooms[roomID]; ok {
			return connID, true
		}
	}
	return "", false
}

// UpdateRoom merges a partial room update into a peer's advertisement.
// Only the mutable presentation fields are taken from the patch; identity
// fields stay as advertised. Unknown room ids are ignored.
func (c *ServerRoomCache) UpdateRoom(connID string, patch domain.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, ok := c.servers[connID]
	if !ok {
		return
	}
	room, ok := rooms[patch.ID]
	if !ok {
		return
	}
	if patch.Name != "" {
		room.Name = patch.Name
	}
	if patch.Desc != "" {
		room.Desc = patch.Desc
	}
	if patch.Avatar != "" {
		room.Avatar = patch.Avatar
	}
	if patch.Participants != nil {
		room.Participants = patch.Participants
	}
	rooms[patch.ID] = room
}
