package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

// Client-to-server commands.
const (
	CommandJoin  = "join"
	CommandLeave = "leave"
	CommandSend  = "sendMessage"
)

// Server-to-client events.
const (
	EventConnectionSuccess = "connection-success"
	EventGroupJoined       = "group-joined"
	EventNewMessage        = "newMessage"
	EventJoinError         = "join-group-error"
	EventMessageError      = "message-error"
)

// Envelope frames every message on the wire in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type groupPayload struct {
	GroupID int64 `json:"groupId"`
}

type sendPayload struct {
	GroupID int64  `json:"groupId"`
	Content string `json:"content"`
}

type errorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Peer is one live connection the gateway can deliver events to.
type Peer interface {
	ID() string
	Send(event string, data any) error
}

// TokenVerifier maps a bearer credential to a user identity or fails.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// MessageStore is the slice of the store the gateway needs: membership
// lookups and message persistence.
type MessageStore interface {
	GetGroup(id int64) (*models.Group, error)
	IsGroupMember(groupID, userID int64) (bool, error)
	SaveMessage(groupID, senderID int64, content string) (*models.Message, error)
	AppendGroupMessage(groupID, messageID int64) error
}

// Gateway wires connection lifecycle, command dispatch and fan-out together.
type Gateway struct {
	registry *Registry
	verifier TokenVerifier
	store    MessageStore

	mu    sync.RWMutex
	peers map[string]Peer
}

func NewGateway(verifier TokenVerifier, store MessageStore) *Gateway {
	return &Gateway{
		registry: NewRegistry(),
		verifier: verifier,
		store:    store,
		peers:    make(map[string]Peer),
	}
}

// Connect registers and authenticates a new connection. On error the caller
// must close the underlying transport; no state is left behind.
func (g *Gateway) Connect(peer Peer, token string) error {
	if err := g.registry.Register(peer.ID()); err != nil {
		return err
	}

	userID, err := g.verifier.Verify(token)
	if err != nil {
		g.registry.Deregister(peer.ID())
		return err
	}
	if err := g.registry.AttachIdentity(peer.ID(), userID); err != nil {
		g.registry.Deregister(peer.ID())
		return err
	}

	g.mu.Lock()
	g.peers[peer.ID()] = peer
	g.mu.Unlock()

	if err := peer.Send(EventConnectionSuccess, map[string]string{"status": "connected"}); err != nil {
		log.Printf("ws: connection-success to %s: %v", peer.ID(), err)
	}
	return nil
}

// Disconnect tears down a connection. Idempotent.
func (g *Gateway) Disconnect(connID string) {
	g.registry.Deregister(connID)

	g.mu.Lock()
	delete(g.peers, connID)
	g.mu.Unlock()
}

// HandleCommand dispatches one inbound frame from a connection.
func (g *Gateway) HandleCommand(connID string, raw []byte) {
	peer := g.peer(connID)
	if peer == nil {
		log.Printf("ws: command from unknown connection %s", connID)
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.sendError(peer, EventMessageError, http.StatusBadRequest, "malformed frame")
		return
	}

	switch env.Event {
	case CommandJoin:
		var p groupPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			g.sendError(peer, EventJoinError, http.StatusBadRequest, "malformed payload")
			return
		}
		g.handleJoin(peer, p.GroupID)
	case CommandLeave:
		var p groupPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		g.registry.Unsubscribe(connID, p.GroupID)
	case CommandSend:
		var p sendPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			g.sendError(peer, EventMessageError, http.StatusBadRequest, "malformed payload")
			return
		}
		g.handleSend(peer, p.GroupID, p.Content)
	default:
		log.Printf("ws: unknown event %q from %s", env.Event, connID)
	}
}

func (g *Gateway) handleJoin(peer Peer, groupID int64) {
	if err := g.authorize(peer.ID(), groupID); err != nil {
		g.fail(peer, EventJoinError, err)
		return
	}
	if err := g.registry.Subscribe(peer.ID(), groupID); err != nil {
		g.fail(peer, EventJoinError, err)
		return
	}
	if err := peer.Send(EventGroupJoined, groupPayload{GroupID: groupID}); err != nil {
		log.Printf("ws: group-joined to %s: %v", peer.ID(), err)
	}
}

func (g *Gateway) handleSend(peer Peer, groupID int64, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		g.fail(peer, EventMessageError, ErrInvalidContent)
		return
	}

	// Membership is re-checked on every send; it may have changed since join.
	userID, err := g.registry.UserOf(peer.ID())
	if err != nil {
		g.fail(peer, EventMessageError, err)
		return
	}
	if err := g.authorize(peer.ID(), groupID); err != nil {
		g.fail(peer, EventMessageError, err)
		return
	}

	msg, err := g.store.SaveMessage(groupID, userID, content)
	if err != nil {
		log.Printf("ws: save message from %s: %v", peer.ID(), err)
		g.fail(peer, EventMessageError, err)
		return
	}

	// The message already exists; a failed link append must not unsend it.
	if err := g.store.AppendGroupMessage(groupID, msg.ID); err != nil {
		log.Printf("ws: append message %d to group %d: %v", msg.ID, groupID, err)
	}

	g.Broadcast(groupID, EventNewMessage, msg)
}

// authorize verifies the connection is authenticated and its user is a
// current member of the group.
func (g *Gateway) authorize(connID string, groupID int64) error {
	userID, err := g.registry.UserOf(connID)
	if err != nil {
		return err
	}

	if _, err := g.store.GetGroup(groupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	member, err := g.store.IsGroupMember(groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrForbidden
	}
	return nil
}

// Broadcast delivers an event to every connection subscribed to the group's
// channel. Delivery is best-effort: one unreachable peer never blocks the
// rest.
func (g *Gateway) Broadcast(groupID int64, event string, data any) {
	for _, connID := range g.registry.SubscribersOf(groupID) {
		peer := g.peer(connID)
		if peer == nil {
			continue
		}
		if err := peer.Send(event, data); err != nil {
			log.Printf("ws: broadcast %s to %s: %v", event, connID, err)
		}
	}
}

// NotifyUser delivers an event to every live connection authenticated as the
// given user. Best-effort, same as Broadcast.
func (g *Gateway) NotifyUser(userID int64, event string, data any) {
	g.mu.RLock()
	peers := make([]Peer, 0, len(g.peers))
	for _, p := range g.peers {
		peers = append(peers, p)
	}
	g.mu.RUnlock()

	for _, p := range peers {
		id, err := g.registry.UserOf(p.ID())
		if err != nil || id != userID {
			continue
		}
		if err := p.Send(event, data); err != nil {
			log.Printf("ws: notify %s to %s: %v", event, p.ID(), err)
		}
	}
}

func (g *Gateway) peer(connID string) Peer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.peers[connID]
}

func (g *Gateway) fail(peer Peer, event string, err error) {
	switch {
	case errors.Is(err, ErrDuplicateConnection), errors.Is(err, ErrUnknownConnection):
		// Registry invariant violation; nothing useful to tell the peer.
		log.Printf("ws: registry invariant on %s: %v", peer.ID(), err)
		return
	}
	g.sendError(peer, event, statusFor(err), err.Error())
}

func (g *Gateway) sendError(peer Peer, event string, status int, message string) {
	if err := peer.Send(event, errorPayload{Status: status, Message: message}); err != nil {
		log.Printf("ws: error event to %s: %v", peer.ID(), err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrGroupNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
