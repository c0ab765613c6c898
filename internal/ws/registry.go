package ws

import "sync"

type connState struct {
	userID int64
	authed bool
	groups map[int64]struct{}
}

// Registry tracks live connections and their channel subscriptions. It holds
// in-memory state only; every mutation goes through one of its methods under
// the lock, so subscriber snapshots always see a consistent map.
type Registry struct {
	mu       sync.RWMutex
	conns    map[string]*connState
	channels map[int64]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[string]*connState),
		channels: make(map[int64]map[string]struct{}),
	}
}

// Register creates an unauthenticated connection record.
func (r *Registry) Register(connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[connID]; ok {
		return ErrDuplicateConnection
	}
	r.conns[connID] = &connState{groups: make(map[int64]struct{})}
	return nil
}

// AttachIdentity binds an authenticated user to the connection. Idempotent.
func (r *Registry) AttachIdentity(connID string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	c.userID = userID
	c.authed = true
	return nil
}

// UserOf returns the authenticated user of a connection.
func (r *Registry) UserOf(connID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[connID]
	if !ok {
		return 0, ErrUnknownConnection
	}
	if !c.authed {
		return 0, ErrNotAuthenticated
	}
	return c.userID, nil
}

// Subscribe adds the connection to the group's channel, creating the channel
// on first use. The connection must be authenticated.
func (r *Registry) Subscribe(connID string, groupID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	if !c.authed {
		return ErrNotAuthenticated
	}

	ch, ok := r.channels[groupID]
	if !ok {
		ch = make(map[string]struct{})
		r.channels[groupID] = ch
	}
	ch[connID] = struct{}{}
	c.groups[groupID] = struct{}{}
	return nil
}

// Unsubscribe removes the connection from the group's channel. Removing a
// connection that was never subscribed is a no-op.
func (r *Registry) Unsubscribe(connID string, groupID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.channels[groupID]; ok {
		delete(ch, connID)
	}
	if c, ok := r.conns[connID]; ok {
		delete(c.groups, groupID)
	}
}

// Deregister removes the connection from every channel it joined, then drops
// the connection record. Safe to call more than once.
func (r *Registry) Deregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[connID]
	if !ok {
		return
	}
	for groupID := range c.groups {
		if ch, ok := r.channels[groupID]; ok {
			delete(ch, connID)
		}
	}
	delete(r.conns, connID)
}

// SubscribersOf returns a snapshot of the connection IDs subscribed to the
// group's channel.
func (r *Registry) SubscribersOf(groupID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch := r.channels[groupID]
	ids := make([]string, 0, len(ch))
	for id := range ch {
		ids = append(ids, id)
	}
	return ids
}
