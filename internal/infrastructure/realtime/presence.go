package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Broadcaster is the fan-out capability handed to the application layer.
// Delivery is fire-and-forget: emitting to a user with no live connections
// is a silent no-op, and per-connection write failures never surface to
// the caller. The durable record lives in the stores, not the socket.
type Broadcaster interface {
	EmitToUser(userID string, event string, payload any)
}

// Event is the wire frame for server-to-client pushes.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Presence tracks which users currently have live connections. A user's
// "room" is the set of all their connections (multiple tabs/devices are
// legal). State is process-wide and in-memory only; a restart empties the
// registry and clients re-register on reconnect.
type Presence struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Connection // userID -> connID -> conn
	users map[string]string                 // connID -> userID
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{
		rooms: make(map[string]map[string]*Connection),
		users: make(map[string]string),
	}
}

var _ Broadcaster = (*Presence)(nil)

// Join registers conn under userID's room. Idempotent per handle: joining
// the same connection again is a no-op, so repeated join frames never
// duplicate delivery. A handle re-joining under a different user is moved.
func (p *Presence) Join(userID string, conn *Connection) {
	p.mu.Lock()
	if current, ok := p.users[conn.ID]; ok {
		if current == userID {
			p.mu.Unlock()
			return
		}
		p.removeLocked(conn.ID)
	}

	room := p.rooms[userID]
	if room == nil {
		room = make(map[string]*Connection)
		p.rooms[userID] = room
	}
	room[conn.ID] = conn
	p.users[conn.ID] = userID
	p.mu.Unlock()

	conn.Start()
}

// Leave removes the connection from whatever room it belongs to. Safe to
// call for handles that never joined or already left.
func (p *Presence) Leave(conn *Connection) {
	if conn == nil {
		return
	}
	p.mu.Lock()
	p.removeLocked(conn.ID)
	p.mu.Unlock()
}

// EmitToUser delivers the event to every live connection registered for
// userID. Serialization failures and slow-client drops are logged and
// swallowed; they never fail the caller.
func (p *Presence) EmitToUser(userID string, event string, payload any) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Str("user_id", userID).Msg("drop realtime event: encode failed")
		return
	}

	p.mu.RLock()
	room := p.rooms[userID]
	conns := make([]*Connection, 0, len(room))
	for _, c := range room {
		conns = append(conns, c)
	}
	p.mu.RUnlock()

	for _, c := range conns {
		if err := c.Send(data); err != nil {
			log.Debug().Err(err).Str("event", event).Str("user_id", userID).Msg("drop realtime event: send failed")
		}
	}
}

// ConnectionCount reports how many live connections userID currently has.
func (p *Presence) ConnectionCount(userID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rooms[userID])
}

// Close terminates all tracked connections and clears the registry.
func (p *Presence) Close() {
	p.mu.Lock()
	conns := make([]*Connection, 0, len(p.users))
	for _, room := range p.rooms {
		for _, c := range room {
			conns = append(conns, c)
		}
	}
	p.rooms = make(map[string]map[string]*Connection)
	p.users = make(map[string]string)
	p.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.CloseGoingAway, "server shutdown")
	}
}

func (p *Presence) removeLocked(connID string) {
	userID, ok := p.users[connID]
	if !ok {
		return
	}
	delete(p.users, connID)
	room := p.rooms[userID]
	delete(room, connID)
	if len(room) == 0 {
		delete(p.rooms, userID)
	}
}
