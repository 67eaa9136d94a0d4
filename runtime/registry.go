// Package runtime holds the process-local state of the relay: the live
// connection registry, the federated server-room cache and the temporary
// room lifecycle tracker. Everything here is rebuilt from zero on restart
// and is never the source of truth for anything durable.
package runtime

import (
	"log/slog"
	"sync"

	"chat-relay/contract"
	apperrors "chat-relay/errors"
)

type connection struct {
	id         string
	identityID string
	role       contract.Role
	sink       contract.EventSink
}

// Registry tracks live transport connections. A connection is registered
// on transport accept with no identity, bound at most once to an identity
// after the gate accepts it, and removed on disconnect. An identity may
// have several live connections (multiple devices or tabs).
type Registry struct {
	mu         sync.RWMutex
	conns      map[string]*connection
	byIdentity map[string]map[string]struct{}
	cache      contract.IServerCache
	log        *slog.Logger
}

func NewRegistry(log *slog.Logger, cache contract.IServerCache) *Registry {
	return &Registry{
		conns:      make(map[string]*connection),
		byIdentity: make(map[string]map[string]struct{}),
		cache:      cache,
		log:        log,
	}
}

// Register adds an unauthenticated connection. Idempotent per connection id.
func (r *Registry) Register(connID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[connID] = &connection{id: connID, sink: sink}
}

// AttachIdentity binds an authenticated identity to a connection. A second
// attach on the same connection fails: the gate's state machine has no
// transition from Authenticated back to Unauthenticated.
func (r *Registry) AttachIdentity(connID, identityID string, role contract.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return apperrors.ErrUnauthorized
	}
	if conn.identityID != "" {
		return apperrors.ErrAlreadyAttached
	}
	conn.identityID = identityID
	conn.role = role

	if _, ok := r.byIdentity[identityID]; !ok {
		r.byIdentity[identityID] = make(map[string]struct{})
	}
	r.byIdentity[identityID][connID] = struct{}{}
	return nil
}

// FindByIdentity returns the sinks of every live connection bound to the
// identity. The result is a snapshot; connections may die right after.
func (r *Registry) FindByIdentity(identityID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connIDs, ok := r.byIdentity[identityID]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(connIDs))
	for connID := range connIDs {
		if conn, exists := r.conns[connID]; exists {
			sinks = append(sinks, conn.sink)
		}
	}
	return sinks
}

// ForEach iterates a snapshot of all live connections. Field values are
// copied under the read lock, since AttachIdentity mutates entries in
// place, and fn runs without it, so fn may block or call back into the
// registry; a connection added mid-iteration is simply missed, which
// callers accept for fan-out.
func (r *Registry) ForEach(fn func(connID, identityID string, role contract.Role, sink contract.EventSink)) {
	r.mu.RLock()
	snapshot := make([]connection, 0, len(r.conns))
	for _, conn := range r.conns {
		snapshot = append(snapshot, *conn)
	}
	r.mu.RUnlock()

	for _, conn := range snapshot {
		fn(conn.id, conn.identityID, conn.role, conn.sink)
	}
}

func (r *Registry) SinkByConn(connID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[connID]
	if !ok {
		return nil, false
	}
	return conn.sink, true
}

// Remove unregisters a connection on disconnect. Idempotent. Removing a
// federated-server connection purges its room advertisements from the
// ephemeral cache.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	conn, ok := r.conns[connID]
	if ok {
		delete(r.conns, connID)
		if conn.identityID != "" {
			if set, exists := r.byIdentity[conn.identityID]; exists {
				delete(set, connID)
				if len(set) == 0 {
					delete(r.byIdentity, conn.identityID)
				}
			}
		}
	}
	r.mu.Unlock()

	if ok && conn.role == contract.RoleServer && r.cache != nil {
		r.cache.RemoveServer(connID)
		r.log.Debug("purged server advertisements", "conn_id", connID)
	}
}
